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
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robbyt/go-shutdown/worker"
)

// Failure records a worker that did not succeed, by its registration index.
type Failure struct {
	Index  int
	Worker string
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("thread %d failed: %v", f.Index, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report aggregates the outcome of every worker joined by one shutdown.
// Outcomes and Failures are both in registration order.
type Report struct {
	AllSucceeded bool
	Failures     []Failure
	Outcomes     []worker.Outcome
	Duration     time.Duration
}

// Err returns every failure combined into one error, or nil when all workers succeeded.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}

	var result *multierror.Error
	for _, f := range r.Failures {
		result = multierror.Append(result, f)
	}
	return result.ErrorOrNil()
}

// String returns a string representation of the Report.
func (r *Report) String() string {
	if r == nil {
		return "Report<nil>"
	}

	indexes := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		indexes[i] = fmt.Sprint(f.Index)
	}
	return fmt.Sprintf("Report<workers: %d, succeeded: %t, failed: [%s]>",
		len(r.Outcomes), r.AllSucceeded, strings.Join(indexes, ","))
}
