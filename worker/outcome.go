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

import "fmt"

// Outcome is the result a worker produces exactly once, when it terminates.
// A nil Err means the worker succeeded.
type Outcome struct {
	Err error
}

// Succeeded returns a successful Outcome.
func Succeeded() Outcome {
	return Outcome{}
}

// Failed returns a failed Outcome carrying reason. A nil reason is replaced
// with ErrUnknownFailure so that a failure can never be mistaken for success.
func Failed(reason error) Outcome {
	if reason == nil {
		reason = ErrUnknownFailure
	}
	return Outcome{Err: reason}
}

// OK reports whether the worker succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// String returns a string representation of the Outcome.
func (o Outcome) String() string {
	if o.OK() {
		return "Success"
	}
	return fmt.Sprintf("Failed(%v)", o.Err)
}
