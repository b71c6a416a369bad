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

package coordinator

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robbyt/go-shutdown/cancellation"
)

// Option represents a functional option for configuring a Coordinator.
type Option func(*Coordinator)

// WithLogHandler sets a custom slog handler for the Coordinator instance.
// For example, to use a custom JSON handler with debug level:
//
//	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	c, err := coordinator.New(coordinator.WithLogHandler(handler))
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Coordinator) {
		if handler != nil {
			c.logger = slog.New(handler.WithGroup("Coordinator"))
		}
	}
}

// WithSignal makes the Coordinator raise an existing cancellation signal instead
// of creating its own. Useful when workers were handed the signal before the
// Coordinator existed.
func WithSignal(sig *cancellation.Signal) Option {
	return func(c *Coordinator) {
		if sig != nil {
			c.signal = sig
		}
	}
}

// WithMetrics registers the Coordinator's prometheus collectors with reg.
// Without this option the collectors are still updated but never exported.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Coordinator) {
		c.registerer = reg
	}
}
