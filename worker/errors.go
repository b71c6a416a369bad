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
	"errors"
	"fmt"
)

var (
	// ErrDoubleJoin is returned when Join is called more than once on the same Handle
	ErrDoubleJoin = errors.New("worker handle already joined")

	// ErrNilRunner is returned when Spawn is given a nil Runner
	ErrNilRunner = errors.New("runner is nil")

	// ErrNilSignal is returned when Spawn or Run is given a nil cancellation signal
	ErrNilSignal = errors.New("cancellation signal is nil")

	// ErrInvalidQuantum is returned when a Task is configured with a non-positive quantum
	ErrInvalidQuantum = errors.New("quantum must be greater than zero")

	// ErrUnknownFailure marks a failure that was reported without a reason
	ErrUnknownFailure = errors.New("worker failed without a reason")
)

// PanicError wraps a value recovered from a panicking worker.
type PanicError struct {
	Worker string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %s panicked: %v", e.Worker, e.Value)
}
