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

// Package semaphore implements a small counting semaphore used to bound
// the number of scenarios that run concurrently. It is a buffered-channel
// semaphore in the style of the teacher's own job-channel throttling
// (see sr/distributed.go's numGetters/jobChan pattern), rather than an
// external dependency, because the only operation needed is slot
// admission -- no per-task result or error propagation, which is what
// golang.org/x/sync/errgroup is reserved for elsewhere in this module.
package semaphore

import "context"

// Semaphore bounds concurrent access to N slots.
type Semaphore struct {
	slots chan struct{}
}

// New returns a Semaphore with n slots. An n below 1 is clamped to 1.
func New(n int) *Semaphore {
	if n < 1 {
		n = 1
	}
	return &Semaphore{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is available or ctx is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (s *Semaphore) Release() {
	<-s.slots
}

// Cap returns the number of slots.
func (s *Semaphore) Cap() int {
	return cap(s.slots)
}
