/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.*/

package firestarr

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Iteration is one save-point's worth of scenario replicates: all of them
// share the same ignition and weather window, and their final fire sizes
// feed the same SafeVector for the convergence check (§4.7, C7).
type Iteration struct {
	mu        sync.Mutex
	id        uuid.UUID
	scenarios []*Scenario
	sizes     *SafeVector
	start     time.Time
	cancel    context.CancelFunc
}

// NewIteration returns an empty Iteration starting at start, tagged with a
// fresh run ID that Model's progress log lines report. Output file names
// do not include it.
func NewIteration(start time.Time) *Iteration {
	return &Iteration{id: uuid.New(), sizes: NewSafeVector(), start: start}
}

// ID returns the run ID this Iteration's scenarios and log lines are
// tagged with.
func (it *Iteration) ID() uuid.UUID {
	return it.id
}

// StartTime returns the start time this Iteration's scenarios share.
func (it *Iteration) StartTime() time.Time {
	return it.start
}

// Sizes returns the SafeVector every completed scenario's fire size is
// appended to.
func (it *Iteration) Sizes() *SafeVector {
	return it.sizes
}

// reset clears it back to holding no scenarios, ready to accept a fresh
// batch for a new save point. The scenario slice's backing array is
// reused; Sizes is replaced with a new, empty SafeVector.
func (it *Iteration) reset(start time.Time) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.id = uuid.New()
	it.start = start
	it.scenarios = it.scenarios[:0]
	it.sizes = NewSafeVector()
}

// Add registers a scenario as belonging to this Iteration, to be run and
// whose result feeds Sizes.
func (it *Iteration) Add(s *Scenario) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.scenarios = append(it.scenarios, s)
}

// RecordResult appends a completed scenario's fire size to Sizes. Results
// from Cancelled scenarios are not recorded (§7: ScenarioCancelled is
// soft and never surfaced as a value, so it contributes nothing to the
// convergence statistics).
func (it *Iteration) RecordResult(r ScenarioResult) {
	if r.State != ScenarioCompleted {
		return
	}
	it.sizes.Add(r.FireSize)
}

// SetCancel stores the cancel func for the context Model runs this
// Iteration's scenarios under, so a later Cancel call can reach it.
func (it *Iteration) SetCancel(cancel context.CancelFunc) {
	it.mu.Lock()
	it.cancel = cancel
	it.mu.Unlock()
}

// Cancel requests that every scenario registered with it stop at its next
// opportunity, via the context Model started them under.
func (it *Iteration) Cancel() {
	it.mu.Lock()
	c := it.cancel
	it.mu.Unlock()
	if c != nil {
		c()
	}
}
