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

package runner

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robbyt/go-shutdown/signals"
	"github.com/robbyt/go-shutdown/worker"
)

var (
	// ErrInvalidWorkers is returned when the worker count is negative
	ErrInvalidWorkers = errors.New("worker count must not be negative")

	// ErrInvalidShutdownAfter is returned when the shutdown timer is negative
	ErrInvalidShutdownAfter = errors.New("shutdown-after must not be negative")
)

// Config holds the settings of one run.
type Config struct {
	// Workers is the number of tasks to start.
	Workers int

	// Quantum bounds each work slice.
	Quantum time.Duration

	// ShutdownAfter triggers a shutdown without a signal once it elapses. Zero waits for a signal.
	ShutdownAfter time.Duration

	// Signals are the termination signals handed to the signal bridge.
	Signals []os.Signal

	// MetricsFile, when set, receives the coordinator metrics in the Prometheus
	// text format after shutdown.
	MetricsFile string

	// SliceFor optionally overrides the work slice of the worker at index.
	SliceFor func(index int) worker.SliceFunc
}

// DefaultConfig returns the settings that reproduce the two-thread fixture.
func DefaultConfig() Config {
	return Config{
		Workers: 2,
		Quantum: worker.DefaultQuantum,
		Signals: signals.TerminationSignals,
	}
}

// Validate checks the Config for values that cannot be run.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: got %s", worker.ErrInvalidQuantum, c.Quantum)
	}
	if c.ShutdownAfter < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidShutdownAfter, c.ShutdownAfter)
	}
	if len(c.Signals) == 0 {
		return signals.ErrNoSignals
	}
	return nil
}
