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

package semaphore

import (
	"context"
	"testing"
	"time"
)

func TestAcquireReleaseRoundTrip(t *testing.T) {
	s := New(2)
	ctx := context.Background()
	if err := s.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	s.Release()
	s.Release()
}

func TestAcquireBlocksWhenFull(t *testing.T) {
	s := New(1)
	ctx := context.Background()
	if err := s.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	blocked := make(chan error, 1)
	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	go func() {
		blocked <- s.Acquire(cctx)
	}()

	select {
	case err := <-blocked:
		if err == nil {
			t.Error("Acquire succeeded on a full semaphore, want blocked until timeout")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire never returned")
	}
}

func TestNewClampsToOne(t *testing.T) {
	s := New(0)
	if s.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1 for New(0)", s.Cap())
	}
}

func TestCapReportsConfiguredSize(t *testing.T) {
	s := New(4)
	if s.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", s.Cap())
	}
}
