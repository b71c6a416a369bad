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

/*
The mocks package provides testify/mock implementations of the worker and
coordinator interfaces:

Example:
```go
import (

	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robbyt/go-shutdown/coordinator"
	"github.com/robbyt/go-shutdown/mocks"
	"github.com/robbyt/go-shutdown/worker"

)

	func TestMyComponent(t *testing.T) {
	    joiner := mocks.NewMockJoiner()
	    joiner.On("Join").Return(worker.Succeeded(), nil).Once()
	    joiner.On("String").Return("w0").Maybe()

	    c, _ := coordinator.New()
	    _ = c.Register(joiner)
	    report := c.Shutdown()

	    assert.True(t, report.AllSucceeded)
	    joiner.AssertExpectations(t)
	}

```
*/
package mocks

import (
	"time"

	"github.com/robbyt/go-shutdown/cancellation"
	"github.com/robbyt/go-shutdown/worker"
	"github.com/stretchr/testify/mock"
)

// MockJoiner is a mock implementation of the coordinator.Joiner interface.
// DelayJoin simulates a worker that takes that long to finish after being asked.
type MockJoiner struct {
	mock.Mock
	DelayJoin time.Duration
}

// NewMockJoiner creates a new MockJoiner with no delay.
func NewMockJoiner() *MockJoiner {
	return &MockJoiner{}
}

// Join sleeps for DelayJoin and returns the mocked outcome and error.
func (m *MockJoiner) Join() (worker.Outcome, error) {
	time.Sleep(m.DelayJoin)
	args := m.Called()
	return args.Get(0).(worker.Outcome), args.Error(1)
}

// String returns a string representation of the mock joiner.
// It can be mocked by doing mock.On("String").Return("customValue") in tests.
func (m *MockJoiner) String() string {
	if mock := m.Called(); mock.Get(0) != nil {
		return mock.String(0)
	}
	return "MockJoiner"
}

// MockRunner is a mock implementation of the worker.Runner interface. When
// WaitForSignal is true, Run blocks until the signal is raised before
// recording the call.
type MockRunner struct {
	mock.Mock
	WaitForSignal bool
}

// NewMockRunner creates a new MockRunner that waits for the cancellation signal.
func NewMockRunner() *MockRunner {
	return &MockRunner{WaitForSignal: true}
}

// Run mocks the Run method of the worker.Runner interface.
func (m *MockRunner) Run(sig *cancellation.Signal) worker.Outcome {
	if m.WaitForSignal {
		<-sig.Done()
	}
	args := m.Called(sig)
	return args.Get(0).(worker.Outcome)
}

// String returns a string representation of the mock runner.
func (m *MockRunner) String() string {
	if mock := m.Called(); mock.Get(0) != nil {
		return mock.String(0)
	}
	return "MockRunner"
}
