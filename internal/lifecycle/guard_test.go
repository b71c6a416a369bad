package lifecycle

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_StopBlocksUntilRunReturns(t *testing.T) {
	t.Parallel()
	synctest.Test(t, func(t *testing.T) {
		g := New()

		runReturned := atomic.Bool{}
		begun := make(chan struct{})
		go func() {
			done, err := g.Begin()
			assert.NoError(t, err)
			defer done()
			close(begun)
			<-g.StopCh()
			time.Sleep(time.Second)
			runReturned.Store(true)
		}()

		<-begun
		g.Stop()

		assert.True(t, runReturned.Load(), "Run should have returned before Stop unblocked")
	})
}

func TestGuard_StopBeforeRun(t *testing.T) {
	t.Parallel()
	synctest.Test(t, func(t *testing.T) {
		g := New()
		g.Stop()

		select {
		case <-g.StopCh():
		default:
			t.Fatal("StopCh should be closed")
		}

		done, err := g.Begin()
		require.NoError(t, err)
		done()

		select {
		case <-g.Finished():
		default:
			t.Fatal("Finished should be closed after done")
		}
	})
}

func TestGuard_BeginTwice(t *testing.T) {
	t.Parallel()

	g := New()
	done, err := g.Begin()
	require.NoError(t, err)
	defer done()

	second, err := g.Begin()
	require.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Nil(t, second)
}

func TestGuard_DoneIsIdempotent(t *testing.T) {
	t.Parallel()

	g := New()
	done, err := g.Begin()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		done()
		done()
	})
}

func TestGuard_MultipleConcurrentStops(t *testing.T) {
	t.Parallel()
	synctest.Test(t, func(t *testing.T) {
		g := New()
		begun := make(chan struct{})

		go func() {
			done, err := g.Begin()
			assert.NoError(t, err)
			defer done()
			close(begun)
			<-g.StopCh()
		}()

		<-begun
		var wg sync.WaitGroup
		for range 5 {
			wg.Go(g.Stop)
		}
		wg.Wait()

		select {
		case <-g.Finished():
		default:
			t.Fatal("Run should have finished")
		}
	})
}
