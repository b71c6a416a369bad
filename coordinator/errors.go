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

package coordinator

import "errors"

var (
	// ErrInvalidState is returned when an operation is not allowed in the current state
	ErrInvalidState = errors.New("invalid coordinator state")

	// ErrRegistrationAfterShutdown is returned when a worker is registered after shutdown began
	ErrRegistrationAfterShutdown = errors.New("registration after shutdown")

	// ErrNilJoiner is returned when Register is called with a nil Joiner
	ErrNilJoiner = errors.New("joiner is nil")
)
