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

package worker

import (
	"fmt"
	"sync/atomic"

	"github.com/robbyt/go-shutdown/cancellation"
)

// noCopy triggers go vet's copylocks check when a Handle is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle represents one started worker. It has a single consumer: the first
// Join receives the outcome, any later Join fails with ErrDoubleJoin.
type Handle struct {
	_       noCopy
	name    string
	done    chan struct{}
	outcome Outcome
	joined  atomic.Bool
}

// Spawn starts r on a new goroutine and returns its Handle. Nothing is started
// when an error is returned, so a Handle always refers to a running or finished worker.
func Spawn(r Runner, sig *cancellation.Signal) (*Handle, error) {
	if r == nil {
		return nil, ErrNilRunner
	}
	if sig == nil {
		return nil, ErrNilSignal
	}

	h := &Handle{
		name: r.String(),
		done: make(chan struct{}),
	}
	go h.run(r, sig)
	return h, nil
}

func (h *Handle) run(r Runner, sig *cancellation.Signal) {
	defer close(h.done)
	defer func() {
		if v := recover(); v != nil {
			h.outcome = Failed(&PanicError{Worker: h.name, Value: v})
		}
	}()
	h.outcome = r.Run(sig)
}

// Join blocks until the worker has returned and yields its outcome. If the
// worker already returned, the stored outcome is returned immediately.
func (h *Handle) Join() (Outcome, error) {
	if !h.joined.CompareAndSwap(false, true) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrDoubleJoin, h.name)
	}
	<-h.done
	return h.outcome, nil
}

// Done returns a channel that is closed once the worker has returned.
// Waiting on it does not consume the outcome.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// String returns the name of the worker behind this Handle.
func (h *Handle) String() string {
	return h.name
}
