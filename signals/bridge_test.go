package signals

import (
	"context"
	"io"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"github.com/robbyt/go-shutdown/coordinator"
	"github.com/robbyt/go-shutdown/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShutdowner is a testify mock of the Shutdowner interface.
type MockShutdowner struct {
	mock.Mock
}

func (m *MockShutdowner) Shutdown() *coordinator.Report {
	args := m.Called()
	return args.Get(0).(*coordinator.Report)
}

func discardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

func runBridge(t *testing.T, ctx context.Context, b *Bridge) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- b.Run(ctx) }()

	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("bridge did not install its signal subscription")
	}
	return errCh
}

func waitReport(t *testing.T, b *Bridge) *coordinator.Report {
	t.Helper()
	require.Eventually(t, func() bool { return b.Report() != nil },
		2*time.Second, time.Millisecond, "signal did not produce a report")
	return b.Report()
}

func waitRun(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil target", func(t *testing.T) {
		b, err := New(nil)
		require.ErrorIs(t, err, ErrNilTarget)
		assert.Nil(t, b)
	})

	t.Run("empty signal set", func(t *testing.T) {
		b, err := New(&MockShutdowner{}, WithSignals())
		require.ErrorIs(t, err, ErrNoSignals)
		assert.Nil(t, b)
	})

	t.Run("defaults", func(t *testing.T) {
		b, err := New(&MockShutdowner{}, WithLogHandler(nil))
		require.NoError(t, err)
		assert.Equal(t, TerminationSignals, b.signals)
		assert.Equal(t, 1, cap(b.SignalChan))
		assert.NotNil(t, b.logger)
		assert.Nil(t, b.Report())
	})

	t.Run("custom signals", func(t *testing.T) {
		b, err := New(&MockShutdowner{}, WithSignals(syscall.SIGUSR1))
		require.NoError(t, err)
		assert.Equal(t, "Bridge<signals: [user defined signal 1]>", b.String())
	})
}

func TestBridge_SignalTriggersShutdownOnce(t *testing.T) {
	t.Parallel()

	want := &coordinator.Report{AllSucceeded: true, Failures: []coordinator.Failure{}}
	target := &MockShutdowner{}
	target.On("Shutdown").Return(want).Once()

	reports := make(chan *coordinator.Report, 1)
	b, err := New(target,
		WithSignals(syscall.SIGUSR1),
		WithLogHandler(discardHandler()),
		WithReportCallback(func(r *coordinator.Report) { reports <- r }),
	)
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)
	b.SignalChan <- syscall.SIGUSR1
	assert.Same(t, want, waitReport(t, b))
	assert.Same(t, want, <-reports)

	// Run is still listening and drops later deliveries.
	b.SignalChan <- syscall.SIGUSR1
	b.SignalChan <- syscall.SIGUSR1

	b.Stop()
	waitRun(t, errCh)
	target.AssertNumberOfCalls(t, "Shutdown", 1)
}

func TestBridge_DuplicateSignalDuringShutdown(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	want := &coordinator.Report{AllSucceeded: true, Failures: []coordinator.Failure{}}
	target := &MockShutdowner{}
	target.On("Shutdown").Return(want).Once().Run(func(mock.Arguments) {
		close(entered)
		<-release
	})

	b, err := New(target, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)
	b.SignalChan <- syscall.SIGUSR1
	<-entered

	// Both sends complete only if Run keeps receiving while Shutdown blocks.
	b.SignalChan <- syscall.SIGUSR1
	b.SignalChan <- syscall.SIGUSR1
	assert.Nil(t, b.Report())

	close(release)
	assert.Same(t, want, waitReport(t, b))

	b.Stop()
	waitRun(t, errCh)
	target.AssertNumberOfCalls(t, "Shutdown", 1)
}

func TestBridge_StopWaitsForShutdown(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	want := &coordinator.Report{AllSucceeded: true, Failures: []coordinator.Failure{}}
	target := &MockShutdowner{}
	target.On("Shutdown").Return(want).Once().Run(func(mock.Arguments) {
		close(entered)
		time.Sleep(50 * time.Millisecond)
	})

	b, err := New(target, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)
	b.SignalChan <- syscall.SIGUSR1
	<-entered

	b.Stop()
	assert.Same(t, want, b.Report())
	waitRun(t, errCh)
}

func TestBridge_ContextCancelDoesNotShutdown(t *testing.T) {
	t.Parallel()

	target := &MockShutdowner{}
	b, err := New(target, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	errCh := runBridge(t, ctx, b)
	cancel()

	waitRun(t, errCh)
	target.AssertNotCalled(t, "Shutdown")
	assert.Nil(t, b.Report())
}

func TestBridge_StopDoesNotShutdown(t *testing.T) {
	t.Parallel()

	target := &MockShutdowner{}
	b, err := New(target, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)
	b.Stop()

	waitRun(t, errCh)
	target.AssertNotCalled(t, "Shutdown")
}

func TestBridge_RunTwice(t *testing.T) {
	t.Parallel()

	b, err := New(&MockShutdowner{}, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)

	err = b.Run(t.Context())
	require.ErrorIs(t, err, ErrAlreadyRunning)

	b.Stop()
	waitRun(t, errCh)
}

func TestBridge_WithCoordinator(t *testing.T) {
	t.Parallel()

	c, err := coordinator.New(coordinator.WithLogHandler(discardHandler()))
	require.NoError(t, err)

	for range 2 {
		task, err := worker.NewTask(worker.WithLogHandler(discardHandler()))
		require.NoError(t, err)
		_, err = c.Go(task)
		require.NoError(t, err)
	}

	b, err := New(c, WithSignals(syscall.SIGUSR1), WithLogHandler(discardHandler()))
	require.NoError(t, err)

	errCh := runBridge(t, t.Context(), b)
	b.SignalChan <- syscall.SIGUSR1
	report := waitReport(t, b)
	b.Stop()
	waitRun(t, errCh)

	assert.True(t, report.AllSucceeded)
	assert.Len(t, report.Outcomes, 2)
	assert.Same(t, report, c.Report())
}
