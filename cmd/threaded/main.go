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

// Command threaded starts a pool of busy workers and shuts them down
// gracefully on SIGTERM or SIGINT, printing "OK" when every worker stopped
// cleanly.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/robbyt/go-shutdown/internal/runner"
	"github.com/spf13/cobra"
)

// exitError carries a non-zero exit code out of the command without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCommand() *cobra.Command {
	cfg := runner.DefaultConfig()
	logLevel := "info"

	cmd := &cobra.Command{
		Use:           "threaded",
		Short:         "Run busy workers until a termination signal, then join them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})

			code, err := runner.Run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), handler)
			if err != nil {
				return err
			}
			if code != runner.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of workers to start")
	flags.DurationVar(&cfg.Quantum, "quantum", cfg.Quantum, "upper bound of one work slice")
	flags.DurationVar(&cfg.ShutdownAfter, "shutdown-after", cfg.ShutdownAfter,
		"shut down after this long without waiting for a signal (0 waits)")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile,
		"write coordinator metrics in Prometheus text format to this file on exit")
	flags.StringVar(&logLevel, "log-level", logLevel, "log level: debug, info, warn or error")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(runner.ExitUsage)
	}
}
