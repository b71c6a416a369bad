/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package signals

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-shutdown/coordinator"
)

// Option represents a functional option for configuring a Bridge.
type Option func(*Bridge)

// WithSignals sets the signals the Bridge treats as a termination request.
func WithSignals(signals ...os.Signal) Option {
	return func(b *Bridge) {
		b.signals = signals
	}
}

// WithLogHandler sets a custom slog handler for the Bridge.
func WithLogHandler(handler slog.Handler) Option {
	return func(b *Bridge) {
		if handler != nil {
			b.logger = slog.New(handler.WithGroup("signals.Bridge"))
		}
	}
}

// WithReportCallback sets a function that receives the report of a
// signal-triggered shutdown. It runs on the goroutine that performed the
// shutdown, before Run can return.
func WithReportCallback(fn func(*coordinator.Report)) Option {
	return func(b *Bridge) {
		b.onReport = fn
	}
}
