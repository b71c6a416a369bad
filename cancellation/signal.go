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

// Package cancellation provides a one-shot, cross-goroutine stop flag that
// workers poll between units of work.
package cancellation

import (
	"sync"
	"sync/atomic"
)

// Signal is a flag that moves from unset to set exactly once and never resets.
// Reads and writes go through sync/atomic, so a Set on one goroutine is
// observed by IsSet on every other goroutine. The zero value is not usable,
// create one with New.
type Signal struct {
	set  atomic.Bool
	once sync.Once
	done chan struct{}
}

// New returns an unset Signal.
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Set raises the flag. It returns true only for the call that changed the
// flag from unset to set; every later call is a no-op returning false.
func (s *Signal) Set() bool {
	flipped := false
	s.once.Do(func() {
		s.set.Store(true)
		close(s.done)
		flipped = true
	})
	return flipped
}

// IsSet reports whether the flag has been raised.
func (s *Signal) IsSet() bool {
	return s.set.Load()
}

// Done returns a channel that is closed once the flag is raised.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// String returns a string representation of the Signal.
func (s *Signal) String() string {
	if s.IsSet() {
		return "Signal<set>"
	}
	return "Signal<unset>"
}
