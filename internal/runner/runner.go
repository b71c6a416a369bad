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

// Package runner starts a pool of workers under a shutdown coordinator, waits
// for a termination request and prints the fixture's console contract.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robbyt/go-shutdown/coordinator"
	"github.com/robbyt/go-shutdown/signals"
	"github.com/robbyt/go-shutdown/worker"
	"golang.org/x/sync/errgroup"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run starts cfg.Workers tasks, prints "threads started", and waits until a
// termination signal, the shutdown timer or ctx ends the run. It then prints
// "OK" to stdout, or one "thread <index> failed!" line per failed worker to
// stderr, and returns the exit code. The returned error reports a run that
// could not be set up or a metrics file that could not be written; in the
// latter case the exit code still reflects the report.
func Run(
	ctx context.Context,
	cfg Config,
	stdout, stderr io.Writer,
	handler slog.Handler,
) (int, error) {
	s, err := start(cfg, stdout, stderr, handler)
	if err != nil {
		return ExitUsage, err
	}
	return s.wait(ctx)
}

// session is a started run: workers are registered and the signal bridge is
// built but not yet listening.
type session struct {
	cfg            Config
	stdout, stderr io.Writer
	coordinator    *coordinator.Coordinator
	bridge         *signals.Bridge
	registry       *prometheus.Registry
	logger         *slog.Logger
}

func start(cfg Config, stdout, stderr io.Writer, handler slog.Handler) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		handler = slog.Default().Handler()
	}
	logger := slog.New(handler.WithGroup("runner"))

	registry := prometheus.NewRegistry()
	c, err := coordinator.New(
		coordinator.WithLogHandler(handler),
		coordinator.WithMetrics(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create coordinator: %w", err)
	}

	startWorkers(c, cfg, handler, logger)
	fmt.Fprintln(stdout, "threads started")

	bridge, err := signals.New(c,
		signals.WithSignals(cfg.Signals...),
		signals.WithLogHandler(handler),
	)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("unable to create signal bridge: %w", err)
	}

	return &session{
		cfg:         cfg,
		stdout:      stdout,
		stderr:      stderr,
		coordinator: c,
		bridge:      bridge,
		registry:    registry,
		logger:      logger,
	}, nil
}

// wait runs the signal bridge next to the shutdown trigger. The bridge keeps
// its subscription until the report has been written, so a repeated signal
// never reaches the default action while output is still pending.
func (s *session) wait(ctx context.Context) (int, error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Stopped explicitly once the report is written.
		return s.bridge.Run(context.WithoutCancel(gCtx))
	})

	code := ExitFailure
	g.Go(func() error {
		defer s.bridge.Stop()

		report := waitForShutdown(gCtx, s.coordinator, s.cfg.ShutdownAfter, s.logger)
		code = writeReport(report, s.stdout, s.stderr)
		return s.writeMetrics()
	})

	err := g.Wait()
	return code, err
}

func (s *session) writeMetrics() error {
	if s.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.cfg.MetricsFile, s.registry); err != nil {
		return fmt.Errorf("unable to write metrics to %s: %w", s.cfg.MetricsFile, err)
	}
	s.logger.Debug("Metrics written", "file", s.cfg.MetricsFile)
	return nil
}

// startWorkers spawns the configured tasks. A task that cannot be created or
// started is logged and never registered.
func startWorkers(c *coordinator.Coordinator, cfg Config, handler slog.Handler, logger *slog.Logger) {
	for i := range cfg.Workers {
		opts := []worker.TaskOption{
			worker.WithName(fmt.Sprintf("thread-%d", i)),
			worker.WithQuantum(cfg.Quantum),
			worker.WithLogHandler(handler),
		}
		if cfg.SliceFor != nil {
			opts = append(opts, worker.WithSlice(cfg.SliceFor(i)))
		}

		task, err := worker.NewTask(opts...)
		if err != nil {
			logger.Error("Unable to create worker", "index", i, "error", err)
			continue
		}
		if _, err := c.Go(task); err != nil {
			logger.Error("Unable to start worker", "index", i, "error", err)
			continue
		}
	}
	logger.Debug("Workers started", "workers", c.Len())
}

// waitForShutdown returns the report once the coordinator has terminated. If
// the timer fires or ctx ends first, it performs the shutdown itself.
func waitForShutdown(
	ctx context.Context,
	c *coordinator.Coordinator,
	after time.Duration,
	logger *slog.Logger,
) *coordinator.Report {
	var timeout <-chan time.Time
	if after > 0 {
		timer := time.NewTimer(after)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-c.Done():
	case <-timeout:
		logger.Info("Shutdown timer fired", "after", after)
	case <-ctx.Done():
		logger.Debug("Run context done")
	}
	return c.Shutdown()
}

func writeReport(report *coordinator.Report, stdout, stderr io.Writer) int {
	if report.AllSucceeded {
		fmt.Fprintln(stdout, "OK")
		return ExitOK
	}
	for _, f := range report.Failures {
		fmt.Fprintf(stderr, "thread %d failed!\n", f.Index)
	}
	return ExitFailure
}
