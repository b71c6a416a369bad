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

import (
	"fmt"

	"github.com/robbyt/go-shutdown/worker"
)

// Joiner represents a started worker whose outcome can be collected once.
type Joiner interface {
	fmt.Stringer // Joiners need a String() method to be identifiable in logs and reports

	// Join blocks until the worker has terminated and returns its outcome.
	// It is called exactly once per registered Joiner, by Shutdown.
	Join() (worker.Outcome, error)
}

var _ Joiner = (*worker.Handle)(nil)
