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

package signals

import "errors"

var (
	// ErrNilTarget is returned when a Bridge is created without a Shutdowner
	ErrNilTarget = errors.New("shutdown target is nil")

	// ErrNoSignals is returned when a Bridge is configured with an empty signal set
	ErrNoSignals = errors.New("no signals to listen for")

	// ErrAlreadyRunning is returned when Run is called a second time
	ErrAlreadyRunning = errors.New("bridge already running")
)
