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
	"context"

	"github.com/robbyt/go-shutdown/internal/finitestate"
)

// GetState returns the current state of the Coordinator.
func (c *Coordinator) GetState() string {
	return c.fsm.GetState()
}

// GetStateChan returns a channel that receives the current state and every
// later transition. The channel is closed when ctx is done.
func (c *Coordinator) GetStateChan(ctx context.Context) <-chan string {
	return c.fsm.GetStateChan(ctx)
}

// IsRunning returns true while the Coordinator accepts registrations.
func (c *Coordinator) IsRunning() bool {
	return c.fsm.GetState() == finitestate.StatusRunning
}
