// Package lifecycle coordinates a component's single Run call with any number of Stop calls.
package lifecycle

import (
	"errors"
	"sync"
)

// ErrAlreadyStarted is returned by Begin when Run was already started once.
var ErrAlreadyStarted = errors.New("already started")

// Guard lets Stop wait for an in-progress Run to return. Run may begin only
// once. Stop before Run returns immediately, and the later Run sees StopCh
// already closed.
type Guard struct {
	mu       sync.Mutex
	stopOnce sync.Once
	begun    bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a new Guard.
func New() *Guard {
	return &Guard{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Begin is called at the top of Run. The returned done function must be
// deferred to signal that Run has returned.
func (g *Guard) Begin() (done func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.begun {
		return nil, ErrAlreadyStarted
	}
	g.begun = true

	var doneOnce sync.Once
	return func() { doneOnce.Do(func() { close(g.doneCh) }) }, nil
}

// Stop closes StopCh and, if Run has begun, blocks until it returns.
// Safe to call from multiple goroutines concurrently.
func (g *Guard) Stop() {
	g.stopOnce.Do(func() { close(g.stopCh) })

	g.mu.Lock()
	begun := g.begun
	g.mu.Unlock()

	if begun {
		<-g.doneCh
	}
}

// StopCh returns a channel that is closed when Stop is called.
func (g *Guard) StopCh() <-chan struct{} {
	return g.stopCh
}

// Finished returns a channel that is closed once Run has returned.
func (g *Guard) Finished() <-chan struct{} {
	return g.doneCh
}
