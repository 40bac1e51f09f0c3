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

import "math"

// Ignition is the starting condition for a Scenario: either a single point
// or a pre-existing fire perimeter. A point ignition is normalized into a
// one-cell circular Perimeter at construction, so Scenario only ever deals
// with one shape (mirroring the original implementation's Perimeter, which
// always holds a burned-cell list plus an edge list regardless of how the
// fire started).
type Ignition struct {
	Perimeter Perimeter
}

// Perimeter holds the full set of already-burned locations for an
// existing fire, plus the subset of those locations on its outer edge
// (the cells IntensityMap seeds its ApplyPerimeter call from).
type Perimeter struct {
	Burned []Location
	Edge   []Location
}

// NewPointIgnition builds the one-cell Perimeter for a fire starting at a
// single location: it starts as a single burned point with itself as its
// only edge cell.
func NewPointIgnition(loc Location) Ignition {
	return Ignition{Perimeter: Perimeter{Burned: []Location{loc}, Edge: []Location{loc}}}
}

// NewCirclePerimeter builds a Perimeter approximating a filled circle of
// the given radius (in cells) centered on loc, clipped to grid's bounds.
// Edge holds every burned cell with at least one non-burned (or
// out-of-grid) 8-neighbor.
func NewCirclePerimeter(grid Grid, center Location, radiusCells float64) Perimeter {
	burnedSet := make(map[Location]bool)
	r := int(math.Ceil(radiusCells))
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			if float64(dr*dr+dc*dc) > radiusCells*radiusCells {
				continue
			}
			loc := Offset(center, dr, dc)
			if !grid.Contains(loc) {
				continue
			}
			burnedSet[loc] = true
		}
	}
	burned := make([]Location, 0, len(burnedSet))
	for loc := range burnedSet {
		burned = append(burned, loc)
	}
	var edge []Location
	for loc := range burnedSet {
		onEdge := false
		for _, n := range Neighbors8(grid, loc) {
			if n == loc {
				continue
			}
			if !burnedSet[n] {
				onEdge = true
				break
			}
		}
		if !onEdge {
			// a neighbor fell outside the grid and Neighbors8 clipped it
			// away entirely, which also marks this cell as an edge cell
			if len(Neighbors8(grid, loc)) < 9 {
				onEdge = true
			}
		}
		if onEdge {
			edge = append(edge, loc)
		}
	}
	return Perimeter{Burned: burned, Edge: edge}
}

// NewIgnitionFromPerimeter wraps a pre-built Perimeter, e.g. one parsed
// from an input shapefile by the env package, as an Ignition.
func NewIgnitionFromPerimeter(p Perimeter) Ignition {
	return Ignition{Perimeter: p}
}
