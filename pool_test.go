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

import "testing"

func TestPoolReusesReleasedItems(t *testing.T) {
	created := 0
	p := NewPool(
		func() *int { created++; v := 0; return &v },
		func(v *int) { *v = 0 },
	)

	a := p.Get()
	*a = 42
	p.Put(a)

	b := p.Get()
	if b != a {
		t.Error("Get after Put did not return the recycled item")
	}
	if *b != 0 {
		t.Errorf("recycled item = %d, want reset to 0", *b)
	}
	if created != 1 {
		t.Errorf("newItem called %d times, want 1", created)
	}
}

func TestPoolAllocatesWhenEmpty(t *testing.T) {
	created := 0
	p := NewPool(
		func() *int { created++; v := 0; return &v },
		func(v *int) {},
	)
	a := p.Get()
	b := p.Get()
	if a == b {
		t.Error("two concurrent Gets from an empty pool returned the same pointer")
	}
	if created != 2 {
		t.Errorf("newItem called %d times, want 2", created)
	}
}

func TestPoolNilResetIsSafe(t *testing.T) {
	p := NewPool(func() *int { v := 0; return &v }, nil)
	v := p.Get()
	p.Put(v)
}
