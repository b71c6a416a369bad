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

// Package signals turns an asynchronous OS termination signal into a single
// synchronous shutdown call made from an ordinary goroutine.
//
// The Go runtime's signal handler only queues the signal; os/signal then
// delivers it on a channel. Bridge.Run owns the goroutine that receives it and
// hands the blocking shutdown to a goroutine of its own, so no joining ever
// happens in handler context. The subscription stays installed until Run
// returns, which keeps repeated signals from falling back to the default
// action while the shutdown is still in progress.
package signals

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/robbyt/go-shutdown/coordinator"
	"github.com/robbyt/go-shutdown/internal/lifecycle"
)

// Shutdowner is the target of a Bridge, usually a *coordinator.Coordinator.
type Shutdowner interface {
	Shutdown() *coordinator.Report
}

var _ Shutdowner = (*coordinator.Coordinator)(nil)

// Bridge listens for termination signals and calls Shutdown exactly once.
type Bridge struct {
	target     Shutdowner
	SignalChan chan os.Signal
	signals    []os.Signal
	guard      *lifecycle.Guard
	ready      chan struct{}
	readyOnce  sync.Once
	report     atomic.Pointer[coordinator.Report]
	onReport   func(*coordinator.Report)
	logger     *slog.Logger
}

// New creates a Bridge for target. It listens for TerminationSignals unless
// WithSignals is given.
func New(target Shutdowner, opts ...Option) (*Bridge, error) {
	if target == nil {
		return nil, ErrNilTarget
	}

	b := &Bridge{
		target:     target,
		SignalChan: make(chan os.Signal, 1), // OS signals must be buffered
		signals:    TerminationSignals,
		guard:      lifecycle.New(),
		ready:      make(chan struct{}),
		logger:     slog.Default().WithGroup("signals.Bridge"),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.signals) == 0 {
		return nil, ErrNoSignals
	}
	return b, nil
}

// String returns a string representation of the Bridge.
func (b *Bridge) String() string {
	return fmt.Sprintf("Bridge<signals: %v>", b.signals)
}

// Run installs the signal subscription and blocks until ctx is done or Stop
// is called. The first signal starts exactly one Shutdown call on the target;
// later signals are logged and dropped. Run keeps the subscription until it
// returns, and it does not return while a shutdown it started is running.
// Run may be called only once.
func (b *Bridge) Run(ctx context.Context) error {
	done, err := b.guard.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAlreadyRunning, err)
	}
	defer done()

	signal.Notify(b.SignalChan, b.signals...)
	defer signal.Stop(b.SignalChan)
	b.readyOnce.Do(func() { close(b.ready) })
	b.logger.Debug("Listening for signals", "signals", b.signals)

	var finished <-chan struct{}
	for {
		select {
		case <-ctx.Done():
			b.logger.Debug("Context canceled; no longer listening")
			waitFinished(finished)
			return nil
		case <-b.guard.StopCh():
			b.logger.Debug("Stopped; no longer listening")
			waitFinished(finished)
			return nil
		case sig := <-b.SignalChan:
			if finished != nil {
				b.logger.Warn("Shutdown already requested; ignoring signal", "signal", sig)
				continue
			}
			b.logger.Info("Received signal", "signal", sig)
			finished = b.handoff()
		}
	}
}

// handoff calls Shutdown on the target from a new goroutine. The returned
// channel is closed once the report has been stored.
func (b *Bridge) handoff() <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		report := b.target.Shutdown()
		b.report.Store(report)
		b.logger.Debug("Shutdown finished", "report", report)
		if b.onReport != nil {
			b.onReport(report)
		}
	}()
	return finished
}

// waitFinished blocks on a handoff started by Run. A nil channel means no
// shutdown was started.
func waitFinished(finished <-chan struct{}) {
	if finished != nil {
		<-finished
	}
}

// Stop makes Run return and blocks until it has. Stop never shuts down the
// target itself, but it waits for a shutdown already started by a signal.
func (b *Bridge) Stop() {
	b.guard.Stop()
}

// Ready returns a channel that is closed once the signal subscription is installed.
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Report returns the report produced by a signal-triggered shutdown, or nil.
func (b *Bridge) Report() *coordinator.Report {
	return b.report.Load()
}
