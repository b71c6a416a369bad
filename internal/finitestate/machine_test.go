package finitestate

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := newMachine(t)
	assert.Equal(t, StatusRunning, m.GetState())
	assert.True(t, m.IsRunning())
	assert.False(t, m.IsTerminated())
}

func TestMachine_ForwardPath(t *testing.T) {
	t.Parallel()

	m := newMachine(t)

	require.NoError(t, m.Transition(StatusShuttingDown))
	assert.Equal(t, StatusShuttingDown, m.GetState())
	assert.False(t, m.IsRunning())

	require.NoError(t, m.Transition(StatusTerminated))
	assert.True(t, m.IsTerminated())
}

func TestMachine_RejectsInvalidTransitions(t *testing.T) {
	t.Parallel()

	t.Run("cannot skip ShuttingDown", func(t *testing.T) {
		m := newMachine(t)
		require.Error(t, m.Transition(StatusTerminated))
		assert.Equal(t, StatusRunning, m.GetState(), "state must not change on a failed transition")
	})

	t.Run("cannot go back to Running", func(t *testing.T) {
		m := newMachine(t)
		require.NoError(t, m.Transition(StatusShuttingDown))
		require.Error(t, m.Transition(StatusRunning))
		assert.Equal(t, StatusShuttingDown, m.GetState())
	})

	t.Run("Terminated is final", func(t *testing.T) {
		m := newMachine(t)
		require.NoError(t, m.Transition(StatusShuttingDown))
		require.NoError(t, m.Transition(StatusTerminated))
		require.Error(t, m.Transition(StatusShuttingDown))
		require.Error(t, m.Transition(StatusRunning))
		assert.Equal(t, StatusTerminated, m.GetState())
	})
}

func TestMachine_TransitionIfCurrentState(t *testing.T) {
	t.Parallel()

	m := newMachine(t)
	require.Error(t, m.TransitionIfCurrentState(StatusShuttingDown, StatusTerminated))
	require.NoError(t, m.TransitionIfCurrentState(StatusRunning, StatusShuttingDown))
	assert.Equal(t, StatusShuttingDown, m.GetState())
}

func TestMachine_GetStateChan(t *testing.T) {
	t.Parallel()

	m := newMachine(t)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	ch := m.GetStateChan(ctx)

	select {
	case state := <-ch:
		assert.Equal(t, StatusRunning, state)
	case <-time.After(time.Second):
		t.Fatal("expected the current state to be sent")
	}

	require.NoError(t, m.Transition(StatusShuttingDown))
	select {
	case state := <-ch:
		assert.Equal(t, StatusShuttingDown, state)
	case <-time.After(time.Second):
		t.Fatal("expected the new state to be sent")
	}
}
