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

func TestBurnedDataSetAndHasBurned(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4}
	b := NewBurnedData(grid)
	loc := Location{Row: 1, Column: 2}
	if b.HasBurned(loc) {
		t.Error("fresh BurnedData should report nothing burned")
	}
	b.set(loc)
	if !b.HasBurned(loc) {
		t.Error("HasBurned should be true after set")
	}
	if b.HasBurned(Location{Row: 0, Column: 0}) {
		t.Error("setting one cell should not burn another")
	}
}

func TestBurnedDataCopyFrom(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4}
	template := NewBurnedData(grid)
	template.set(Location{Row: 2, Column: 2})

	other := NewBurnedData(grid)
	other.set(Location{Row: 0, Column: 0})
	other.CopyFrom(template)

	if other.HasBurned(Location{Row: 0, Column: 0}) {
		t.Error("CopyFrom should discard the receiver's prior state")
	}
	if !other.HasBurned(Location{Row: 2, Column: 2}) {
		t.Error("CopyFrom should adopt the template's burned cells")
	}
}

func TestBurnedDataClear(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4}
	b := NewBurnedData(grid)
	b.set(Location{Row: 1, Column: 1})
	b.Clear()
	if b.Count() != 0 {
		t.Errorf("Count() = %d after Clear, want 0", b.Count())
	}
}

func TestBurnedDataCount(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4}
	b := NewBurnedData(grid)
	locs := []Location{{Row: 0, Column: 0}, {Row: 1, Column: 1}, {Row: 2, Column: 3}}
	for _, loc := range locs {
		b.set(loc)
	}
	if got := b.Count(); got != len(locs) {
		t.Errorf("Count() = %d, want %d", got, len(locs))
	}
}
