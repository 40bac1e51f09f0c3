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

import "sync"

// Pool recycles the large, short-lived-per-scenario allocations described
// in §4.9 (C9): BurnedData's fixed-size bitset and IntensityMap's backing
// map are each ~megabytes, and a convergence run may execute thousands of
// scenarios, so allocating fresh ones per scenario would dominate GC time.
// Pool wraps sync.Pool with a typed reset hook run on release, so a value
// handed out by Get always starts from a known, template-derived state
// rather than whatever the previous borrower left behind.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// NewPool returns a Pool that creates new values with newItem and resets
// released ones with reset. reset is called under Put, before the item is
// made available to the next Get.
func NewPool[T any](newItem func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any { return newItem() }
	return p
}

// Get returns an item from the pool, allocating a new one via newItem if
// the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets item and returns it to the pool for reuse.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		p.reset(item)
	}
	p.pool.Put(item)
}
