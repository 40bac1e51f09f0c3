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

// Environment is the immutable landscape: the fuel code, slope and aspect
// of every cell, plus the elevation raster they were derived from. It is
// built once per process (typically by the env package's raster loader)
// and never mutated afterward; every Scenario reads the same Environment
// concurrently.
type Environment struct {
	Grid Grid

	cells      []Cell    // row-major, len == Grid.NumCells()
	elevation  []int16   // row-major, meters
	unburnable *BurnedData
}

// NewEnvironment builds an Environment from a grid and parallel per-cell
// slices. cells and elevation must each have Grid.NumCells() entries in
// row-major order. The unburnable mask is derived once here from the
// fuel codes in cells, matching the teacher's pattern of precomputing
// a boundary/derived mask once at construction (framework.go's
// InitInMAPdata building boundary cell slices up front).
func NewEnvironment(grid Grid, cells []Cell, elevation []int16) (*Environment, error) {
	if len(cells) != grid.NumCells() {
		return nil, &InvalidInputError{Msg: "cell slice length does not match grid dimensions"}
	}
	if len(elevation) != grid.NumCells() {
		return nil, &InvalidInputError{Msg: "elevation slice length does not match grid dimensions"}
	}
	unburnable := NewBurnedData(grid)
	for _, c := range cells {
		if !c.Burnable() {
			unburnable.burnLocked(c.Location, 0)
		}
	}
	return &Environment{
		Grid:       grid,
		cells:      cells,
		elevation:  elevation,
		unburnable: unburnable,
	}, nil
}

// Cell returns the cell at (row, column). Cells outside the grid's bounds
// return a sentinel cell with InvalidSlope, InvalidAspect and FuelCode ==
// InvalidFuelCode, which is therefore unburnable (§8: "for all cells c not in
// data-bounds, cell(c) returns the nodata sentinel").
func (e *Environment) Cell(row, column int) Cell {
	loc := Location{Row: row, Column: column}
	if !e.Grid.Contains(loc) {
		return Cell{Location: loc, Slope: InvalidSlope, Aspect: InvalidAspect, FuelCode: InvalidFuelCode}
	}
	return e.cells[row*e.Grid.Columns+column]
}

// Offset returns the cell dr rows and dc columns away from the cell
// identified by loc.
func (e *Environment) Offset(loc Location, dr, dc int) Cell {
	n := Offset(loc, dr, dc)
	return e.Cell(n.Row, n.Column)
}

// Elevation returns the elevation in meters at (row, column), or 0 outside
// the grid's bounds.
func (e *Environment) Elevation(row, column int) int16 {
	loc := Location{Row: row, Column: column}
	if !e.Grid.Contains(loc) {
		return 0
	}
	return e.elevation[row*e.Grid.Columns+column]
}

// Unburnable returns the template BurnedData with 1 set for every cell
// whose fuel is null -- the seed state every Scenario's IntensityMap is
// reset from.
func (e *Environment) Unburnable() *BurnedData {
	return e.unburnable
}

// BurnableCells returns every cell in row-major order whose fuel reference
// is usable -- the distinct start-cell set surface mode (§4.8 mode 2)
// enumerates exactly once each.
func (e *Environment) BurnableCells() []Location {
	out := make([]Location, 0, len(e.cells))
	for _, c := range e.cells {
		if c.Burnable() {
			out = append(out, c.Location)
		}
	}
	return out
}
