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
	"github.com/ctessum/geom"
)

// MaxRows and MaxColumns bound any grid this package will load: 4096x4096
// cells, clipped around the ignition.
const (
	MaxRows    = 4096
	MaxColumns = 4096
)

// Sentinel values for fields that don't apply to a cell (edges of the
// elevation raster, or cells with no fuel).
const (
	InvalidSlope    = -1.0
	InvalidAspect   = -1.0
	InvalidFuelCode = FuelCode(-1)
)

// FuelCode references an entry in a FuelBehaviour registry (see
// spreadkernel.go), or InvalidFuelCode for a cell with no fuel data, or
// fuel data the registry doesn't recognize.
type FuelCode int16

// Location identifies a cell by row and column, independent of any one
// grid's backing storage.
type Location struct {
	Row, Column int
}

// Hash returns the packed cell index used throughout the model as a map
// key and bitset index: row*MaxColumns + column.
func (l Location) Hash() int64 {
	return int64(l.Row)*MaxColumns + int64(l.Column)
}

// LocationFromHash is the inverse of Location.Hash.
func LocationFromHash(hash int64) Location {
	return Location{
		Row:    int(hash / MaxColumns),
		Column: int(hash % MaxColumns),
	}
}

// Cell is an immutable landscape unit: its position, slope, aspect and
// fuel reference. Cells never change once the Environment that owns them
// is built.
type Cell struct {
	Location Location
	Slope    float64 // percent, clamped to [0, 500]
	Aspect   float64 // compass degrees [0, 359], or InvalidAspect
	FuelCode FuelCode
}

// Hash returns the cell's packed index, matching Location.Hash.
func (c Cell) Hash() int64 { return c.Location.Hash() }

// Burnable reports whether the cell has a usable fuel reference. Cells
// with InvalidFuelCode are permanently part of the unburnable mask.
func (c Cell) Burnable() bool { return c.FuelCode != InvalidFuelCode }

// ClampSlope clamps a percent slope value into the valid range.
func ClampSlope(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 500:
		return 500
	default:
		return pct
	}
}

// NormalizeAspect wraps a compass-degree aspect into [0, 359].
func NormalizeAspect(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Grid describes a rectangular, row-major raster extent shared by every
// input and output layer in one run: fuel, elevation, burned/intensity and
// probability grids must all report the same Grid.
type Grid struct {
	Rows, Columns int
	CellSize      float64 // meters
	LowerLeft     geom.Point
	UpperRight    geom.Point
	Projection    string // Proj4 string
}

// NumCells returns the number of cells in the grid.
func (g Grid) NumCells() int { return g.Rows * g.Columns }

// Contains reports whether loc is within the grid's bounds.
func (g Grid) Contains(loc Location) bool {
	return loc.Row >= 0 && loc.Row < g.Rows && loc.Column >= 0 && loc.Column < g.Columns
}

// SameExtent reports whether two grids share the same origin, size,
// resolution and cell count -- the alignment invariant required before
// rasters can be combined (§3: "All rasters used together must align").
func (g Grid) SameExtent(o Grid) bool {
	return g.Rows == o.Rows && g.Columns == o.Columns &&
		g.CellSize == o.CellSize &&
		g.LowerLeft == o.LowerLeft && g.UpperRight == o.UpperRight
}

// CellAreaHectares returns the area of one grid cell in hectares.
func (g Grid) CellAreaHectares() float64 {
	return g.CellSize * g.CellSize / 10000.0
}

// Offset returns the location dr rows and dc columns away from loc.
func Offset(loc Location, dr, dc int) Location {
	return Location{Row: loc.Row + dr, Column: loc.Column + dc}
}

// Neighbors8 returns the (up to) 8 neighbors of loc, clipped to the grid's
// bounds, plus loc itself -- used by IntensityMap.IsSurrounded.
func Neighbors8(g Grid, loc Location) []Location {
	out := make([]Location, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := Offset(loc, dr, dc)
			if g.Contains(n) {
				out = append(out, n)
			}
		}
	}
	return out
}
