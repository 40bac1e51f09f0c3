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

func TestLocationHashRoundTrip(t *testing.T) {
	loc := Location{Row: 12, Column: 345}
	got := LocationFromHash(loc.Hash())
	if got != loc {
		t.Errorf("LocationFromHash(Hash()) = %v, want %v", got, loc)
	}
}

func TestClampSlope(t *testing.T) {
	cases := map[float64]float64{-10: 0, 0: 0, 250: 250, 500: 500, 600: 500}
	for in, want := range cases {
		if got := ClampSlope(in); got != want {
			t.Errorf("ClampSlope(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeAspect(t *testing.T) {
	cases := map[float64]float64{0: 0, 359: 359, 360: 0, 720: 0, -1: 359, -361: 359}
	for in, want := range cases {
		if got := NormalizeAspect(in); got != want {
			t.Errorf("NormalizeAspect(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestGridSameExtent(t *testing.T) {
	a := Grid{Rows: 10, Columns: 10, CellSize: 30}
	b := a
	if !a.SameExtent(b) {
		t.Error("identical grids should have the same extent")
	}
	b.Rows = 11
	if a.SameExtent(b) {
		t.Error("grids with different row counts should not share an extent")
	}
}

func TestGridCellAreaHectares(t *testing.T) {
	g := Grid{CellSize: 100}
	if got := g.CellAreaHectares(); got != 1 {
		t.Errorf("CellAreaHectares() = %v, want 1 for a 100m cell", got)
	}
}

func TestNeighbors8ClipsAtEdge(t *testing.T) {
	g := Grid{Rows: 3, Columns: 3}
	corner := Neighbors8(g, Location{Row: 0, Column: 0})
	if len(corner) != 4 {
		t.Errorf("corner cell has %d neighbors (incl. self), want 4", len(corner))
	}
	center := Neighbors8(g, Location{Row: 1, Column: 1})
	if len(center) != 9 {
		t.Errorf("center cell has %d neighbors (incl. self), want 9", len(center))
	}
}

func TestGridContains(t *testing.T) {
	g := Grid{Rows: 5, Columns: 5}
	if !g.Contains(Location{Row: 0, Column: 0}) {
		t.Error("grid should contain its own origin")
	}
	if g.Contains(Location{Row: -1, Column: 0}) {
		t.Error("grid should not contain a negative row")
	}
	if g.Contains(Location{Row: 5, Column: 0}) {
		t.Error("grid should not contain row == Rows")
	}
}
