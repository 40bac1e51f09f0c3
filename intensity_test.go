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

func TestIntensityMapBurnAndQuery(t *testing.T) {
	grid := Grid{Rows: 3, Columns: 3, CellSize: 100}
	unburnable := NewBurnedData(grid)
	im := NewIntensityMap(grid, unburnable)

	loc := Location{Row: 1, Column: 1}
	if im.HasBurned(loc) {
		t.Error("fresh IntensityMap should not report anything burned")
	}
	im.Burn(loc, 250)
	if !im.HasBurned(loc) {
		t.Error("HasBurned should be true after Burn")
	}
	v, ok := im.Intensity(loc)
	if !ok || v != 250 {
		t.Errorf("Intensity(loc) = (%v, %v), want (250, true)", v, ok)
	}
}

func TestIntensityMapApplyPerimeter(t *testing.T) {
	grid := Grid{Rows: 5, Columns: 5, CellSize: 100}
	unburnable := NewBurnedData(grid)
	im := NewIntensityMap(grid, unburnable)

	perim := []Location{{Row: 2, Column: 2}, {Row: 2, Column: 3}, {Row: 3, Column: 2}}
	im.ApplyPerimeter(perim)
	for _, loc := range perim {
		if !im.HasBurned(loc) {
			t.Errorf("perimeter cell %v did not burn", loc)
		}
	}
	if len(im.Burned()) != len(perim) {
		t.Errorf("Burned() returned %d cells, want %d", len(im.Burned()), len(perim))
	}
}

func TestIntensityMapIsSurrounded(t *testing.T) {
	grid := Grid{Rows: 3, Columns: 3, CellSize: 100}
	unburnable := NewBurnedData(grid)
	im := NewIntensityMap(grid, unburnable)

	center := Location{Row: 1, Column: 1}
	if im.IsSurrounded(center) {
		t.Error("an unburned cell cannot be surrounded")
	}
	for _, n := range Neighbors8(grid, center) {
		im.Burn(n, 1)
	}
	if !im.IsSurrounded(center) {
		t.Error("a cell whose full 8-neighborhood has burned should be surrounded")
	}
}

func TestIntensityMapFireSize(t *testing.T) {
	grid := Grid{Rows: 5, Columns: 5, CellSize: 100} // 1 hectare per cell
	unburnable := NewBurnedData(grid)
	im := NewIntensityMap(grid, unburnable)
	im.Burn(Location{Row: 0, Column: 0}, 1)
	im.Burn(Location{Row: 0, Column: 1}, 1)
	if got := im.FireSize(); got != 2 {
		t.Errorf("FireSize() = %v, want 2 hectares", got)
	}
}

func TestIntensityMapResetRestoresTemplate(t *testing.T) {
	grid := Grid{Rows: 3, Columns: 3, CellSize: 100}
	unburnable := NewBurnedData(grid)
	unburnable.set(Location{Row: 0, Column: 0})
	im := NewIntensityMap(grid, unburnable)

	im.Burn(Location{Row: 1, Column: 1}, 5)
	im.reset(unburnable)

	if im.HasBurned(Location{Row: 1, Column: 1}) {
		t.Error("reset should clear previously burned cells not in the template")
	}
	if !im.HasBurned(Location{Row: 0, Column: 0}) {
		t.Error("reset should restore the template's unburnable cells")
	}
	if len(im.Burned()) != 0 {
		t.Error("reset should clear the intensity map")
	}
}
