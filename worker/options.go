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

package worker

import (
	"log/slog"
	"time"
)

// TaskOption represents a functional option for configuring a Task.
type TaskOption func(*Task)

// WithName sets the name the Task reports in logs and shutdown reports.
func WithName(name string) TaskOption {
	return func(t *Task) {
		if name != "" {
			t.name = name
		}
	}
}

// WithQuantum sets the deadline of each work slice.
func WithQuantum(quantum time.Duration) TaskOption {
	return func(t *Task) {
		t.quantum = quantum
	}
}

// WithSlice sets the work performed in each slice.
func WithSlice(slice SliceFunc) TaskOption {
	return func(t *Task) {
		t.slice = slice
	}
}

// WithLogHandler sets a custom slog handler for the Task.
func WithLogHandler(handler slog.Handler) TaskOption {
	return func(t *Task) {
		if handler != nil {
			t.logger = slog.New(handler.WithGroup("worker.Task"))
		}
	}
}
