// Package finitestate wraps go-fsm with the lifecycle states of a shutdown coordinator.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	// StatusRunning accepts worker registrations.
	StatusRunning = "Running"
	// StatusShuttingDown has raised the cancellation signal and is joining workers.
	StatusShuttingDown = "ShuttingDown"
	// StatusTerminated has joined every worker and produced a report.
	StatusTerminated = "Terminated"
)

// CoordinatorTransitions allows only the forward path Running -> ShuttingDown -> Terminated.
var CoordinatorTransitions = map[string][]string{
	StatusRunning:      {StatusShuttingDown},
	StatusShuttingDown: {StatusTerminated},
	StatusTerminated:   {},
}

// Machine is a wrapper around go-fsm.Machine that provides additional functionality.
type Machine struct {
	*fsm.Machine
}

// IsRunning reports whether the machine still accepts registrations.
func (m *Machine) IsRunning() bool {
	return m.GetState() == StatusRunning
}

// IsTerminated reports whether the machine reached its final state.
func (m *Machine) IsTerminated() bool {
	return m.GetState() == StatusTerminated
}

// New creates a coordinator state machine in StatusRunning.
func New(handler slog.Handler) (*Machine, error) {
	f, err := fsm.New(handler, StatusRunning, CoordinatorTransitions)
	if err != nil {
		return nil, err
	}
	return &Machine{Machine: f}, nil
}
