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

func TestNewPointIgnitionIsOneCell(t *testing.T) {
	loc := Location{Row: 5, Column: 5}
	ig := NewPointIgnition(loc)
	if len(ig.Perimeter.Burned) != 1 || ig.Perimeter.Burned[0] != loc {
		t.Errorf("Burned = %v, want [%v]", ig.Perimeter.Burned, loc)
	}
	if len(ig.Perimeter.Edge) != 1 || ig.Perimeter.Edge[0] != loc {
		t.Errorf("Edge = %v, want [%v]", ig.Perimeter.Edge, loc)
	}
}

func TestNewCirclePerimeterContainsCenter(t *testing.T) {
	grid := Grid{Rows: 21, Columns: 21, CellSize: 10}
	center := Location{Row: 10, Column: 10}
	p := NewCirclePerimeter(grid, center, 5)

	found := false
	for _, loc := range p.Burned {
		if loc == center {
			found = true
		}
	}
	if !found {
		t.Error("circle perimeter does not contain its own center")
	}
	if len(p.Edge) == 0 {
		t.Error("circle perimeter has no edge cells")
	}
	if len(p.Edge) > len(p.Burned) {
		t.Error("more edge cells than burned cells")
	}
}

func TestNewCirclePerimeterClipsToGrid(t *testing.T) {
	grid := Grid{Rows: 5, Columns: 5, CellSize: 10}
	center := Location{Row: 0, Column: 0}
	p := NewCirclePerimeter(grid, center, 3)
	for _, loc := range p.Burned {
		if !grid.Contains(loc) {
			t.Errorf("burned cell %v falls outside the grid", loc)
		}
	}
}

func TestNewIgnitionFromPerimeterWrapsAsIs(t *testing.T) {
	perim := Perimeter{
		Burned: []Location{{Row: 1, Column: 1}, {Row: 1, Column: 2}},
		Edge:   []Location{{Row: 1, Column: 2}},
	}
	ig := NewIgnitionFromPerimeter(perim)
	if len(ig.Perimeter.Burned) != 2 || len(ig.Perimeter.Edge) != 1 {
		t.Errorf("ignition perimeter = %+v, want to match input", ig.Perimeter)
	}
}
