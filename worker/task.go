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

// Package worker provides cancellable units of work and the handles used to
// join them once they have stopped.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robbyt/go-shutdown/cancellation"
)

// DefaultQuantum is the upper bound on a single work slice when none is configured.
const DefaultQuantum = 10 * time.Millisecond

// SliceFunc performs one bounded unit of work. The context carries a deadline
// one quantum away; a slice is expected to return by then. The context is not
// cancelled by the cancellation signal, so an in-flight slice always finishes.
type SliceFunc func(ctx context.Context) error

// Runner is a unit of work that runs until the cancellation signal is raised.
type Runner interface {
	fmt.Stringer // Runners need a String() method to be identifiable in logs and reports

	// Run blocks until sig is set or the work fails, and returns the outcome.
	Run(sig *cancellation.Signal) Outcome
}

// Task is a Runner that repeatedly performs a SliceFunc, checking the
// cancellation signal between slices.
type Task struct {
	name    string
	quantum time.Duration
	slice   SliceFunc
	slices  atomic.Uint64
	logger  *slog.Logger
}

var _ Runner = (*Task)(nil)

// NewTask creates a Task. Without options it idles for DefaultQuantum per slice.
func NewTask(opts ...TaskOption) (*Task, error) {
	t := &Task{
		name:    "task",
		quantum: DefaultQuantum,
		slice:   Idle,
		logger:  slog.Default().WithGroup("worker.Task"),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.quantum <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidQuantum, t.quantum)
	}
	if t.slice == nil {
		t.slice = Idle
	}

	return t, nil
}

// Idle is the default SliceFunc: it waits until the slice deadline passes.
func Idle(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// String returns a string representation of the Task.
func (t *Task) String() string {
	return t.name
}

// Quantum returns the configured slice duration.
func (t *Task) Quantum() time.Duration {
	return t.quantum
}

// Slices returns the number of slices that completed without error.
func (t *Task) Slices() uint64 {
	return t.slices.Load()
}

// Run loops until sig is set. A slice that returns an error or panics ends the
// loop with a failed Outcome; the panic does not escape Run.
func (t *Task) Run(sig *cancellation.Signal) Outcome {
	if sig == nil {
		return Failed(ErrNilSignal)
	}

	t.logger.Debug("Starting", "task", t.name, "quantum", t.quantum)
	for !sig.IsSet() {
		if err := t.runSlice(); err != nil {
			t.logger.Debug("Slice failed", "task", t.name, "error", err)
			return Failed(err)
		}
	}

	t.logger.Debug("Cancellation observed", "task", t.name, "slices", t.Slices())
	return Succeeded()
}

func (t *Task) runSlice() (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), t.quantum)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Worker: t.name, Value: r}
		}
	}()

	if err = t.slice(ctx); err != nil {
		return err
	}
	t.slices.Add(1)
	return nil
}
