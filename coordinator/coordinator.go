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

// Package coordinator owns a cancellation signal and a set of started workers,
// and turns a shutdown request into an ordered, aggregated report of how each
// worker ended.
package coordinator

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robbyt/go-shutdown/cancellation"
	"github.com/robbyt/go-shutdown/internal/finitestate"
	"github.com/robbyt/go-shutdown/worker"
)

// Coordinator broadcasts cancellation to its workers and joins them in
// registration order. States move Running -> ShuttingDown -> Terminated.
type Coordinator struct {
	mu           sync.Mutex // guards handles and the Running -> ShuttingDown transition
	handles      []Joiner
	signal       *cancellation.Signal
	fsm          *finitestate.Machine
	shutdownOnce sync.Once
	done         chan struct{}
	report       atomic.Pointer[Report]
	registerer   prometheus.Registerer
	metrics      *metrics
	logger       *slog.Logger
}

// New creates a Coordinator in the Running state.
func New(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		signal: cancellation.New(),
		done:   make(chan struct{}),
		logger: slog.Default().WithGroup("Coordinator"),
	}

	for _, opt := range opts {
		opt(c)
	}

	machine, err := finitestate.New(c.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("unable to create fsm: %w", err)
	}
	c.fsm = machine

	m, err := newMetrics(c.registerer)
	if err != nil {
		return nil, fmt.Errorf("unable to register metrics: %w", err)
	}
	c.metrics = m

	return c, nil
}

// String returns a string representation of the Coordinator instance.
func (c *Coordinator) String() string {
	return fmt.Sprintf("Coordinator<workers: %d, state: %s>", c.Len(), c.GetState())
}

// Signal returns the cancellation signal raised by Shutdown.
func (c *Coordinator) Signal() *cancellation.Signal {
	return c.signal
}

// Len returns the number of registered workers.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Register appends h to the join order. It fails with ErrInvalidState once
// shutdown has begun, leaving the registered set untouched.
func (c *Coordinator) Register(h Joiner) error {
	if h == nil {
		return ErrNilJoiner
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRunningLocked(); err != nil {
		c.logger.Error("Registration rejected", "worker", h, "error", err)
		return err
	}
	c.appendLocked(h)
	return nil
}

// Go spawns r with the Coordinator's signal and registers the resulting
// Handle. Nothing is spawned once shutdown has begun.
func (c *Coordinator) Go(r worker.Runner) (*worker.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRunningLocked(); err != nil {
		return nil, err
	}

	h, err := worker.Spawn(r, c.signal)
	if err != nil {
		return nil, fmt.Errorf("unable to spawn worker: %w", err)
	}
	c.appendLocked(h)
	return h, nil
}

func (c *Coordinator) checkRunningLocked() error {
	if state := c.fsm.GetState(); state != finitestate.StatusRunning {
		return fmt.Errorf("%w: %w (state: %s)", ErrInvalidState, ErrRegistrationAfterShutdown, state)
	}
	return nil
}

func (c *Coordinator) appendLocked(h Joiner) {
	c.handles = append(c.handles, h)
	c.metrics.registered.Inc()
	c.logger.Debug("Registered", "worker", h, "index", len(c.handles)-1)
}

// Shutdown raises the cancellation signal, joins every registered worker in
// registration order and returns the aggregate report. It is safe to call
// more than once and from several goroutines: later callers block until the
// first call finishes and receive the same report. Shutdown never fails;
// worker failures are recorded in the report.
func (c *Coordinator) Shutdown() *Report {
	c.shutdownOnce.Do(func() {
		c.logger.Info("Graceful shutdown has been initiated...")
		start := time.Now()

		handles := c.beginShutdown()
		c.signal.Set()

		c.logger.Debug("Waiting for workers to complete...", "workers", len(handles))
		report := c.joinAll(handles)
		report.Duration = time.Since(start)
		c.report.Store(report)

		if err := c.fsm.Transition(finitestate.StatusTerminated); err != nil {
			c.logger.Error("Failed to transition to Terminated state", "error", err)
		}
		c.metrics.observe(report)
		close(c.done)

		c.logger.Info("Shutdown complete.",
			"workers", len(handles),
			"failures", len(report.Failures),
			"duration", report.Duration)
	})
	return c.report.Load()
}

// beginShutdown closes registration and returns the join order.
func (c *Coordinator) beginShutdown() []Joiner {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fsm.Transition(finitestate.StatusShuttingDown); err != nil {
		c.logger.Error("Failed to transition to ShuttingDown state", "error", err)
	}
	return slices.Clone(c.handles)
}

func (c *Coordinator) joinAll(handles []Joiner) *Report {
	report := &Report{
		AllSucceeded: true,
		Failures:     []Failure{},
		Outcomes:     make([]worker.Outcome, 0, len(handles)),
	}

	for i, h := range handles {
		out := c.join(h)
		report.Outcomes = append(report.Outcomes, out)
		if out.OK() {
			c.logger.Debug("Joined", "worker", h, "index", i)
			continue
		}

		report.AllSucceeded = false
		report.Failures = append(report.Failures, Failure{Index: i, Worker: h.String(), Err: out.Err})
		c.logger.Warn("Worker failed", "worker", h, "index", i, "error", out.Err)
	}

	return report
}

// join converts join errors and panics from a Joiner into a failed outcome.
func (c *Coordinator) join(h Joiner) (out worker.Outcome) {
	defer func() {
		if v := recover(); v != nil {
			out = worker.Failed(&worker.PanicError{Worker: h.String(), Value: v})
		}
	}()

	o, err := h.Join()
	if err != nil {
		return worker.Failed(fmt.Errorf("unable to join: %w", err))
	}
	return o
}

// Done returns a channel that is closed once Shutdown has joined every worker.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Report returns the shutdown report, or nil while the Coordinator has not terminated.
func (c *Coordinator) Report() *Report {
	return c.report.Load()
}
