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

// CellularKernel is a concrete, reference SpreadKernel: at every step it
// looks at the 8 neighbors of every burned cell recorded in state, and
// burns a neighbor that lies within 90 degrees of the fuel behaviour's
// spread direction once that rate of spread (not projected onto the
// neighbor's bearing) would cover the cell-center distance within dt. This is deliberately simple next to the full
// elliptical-growth model a production FuelBehaviour/SpreadKernel pair
// would implement -- CellularKernel exists so Model and Scenario have a
// runnable default, not as the final word on fire growth physics.
type CellularKernel struct{}

// Step implements SpreadKernel.
func (CellularKernel) Step(env *Environment, state *IntensityMap, fuels *FuelRegistry, weather FireWeather, dt float64) ([]Location, error) {
	edge := state.Burned()
	var newlyBurned []Location
	seen := make(map[Location]bool)

	for _, bc := range edge {
		cell := env.Cell(bc.Location.Row, bc.Location.Column)
		if !cell.Burnable() {
			continue
		}
		behaviour, err := fuels.Lookup(cell.FuelCode)
		if err != nil {
			return nil, err
		}
		if behaviour.Extinguishes(cell, weather) {
			continue
		}
		ros, direction, err := behaviour.SpreadParameters(cell, weather)
		if err != nil {
			return nil, err
		}
		if ros <= 0 {
			continue
		}

		for _, n := range Neighbors8(env.Grid, bc.Location) {
			if n == bc.Location || state.HasBurned(n) || seen[n] {
				continue
			}
			neighborCell := env.Cell(n.Row, n.Column)
			if !neighborCell.Burnable() {
				continue
			}
			if !withinSpreadCone(bc.Location, n, direction) {
				continue
			}
			distance := cellDistance(env.Grid, bc.Location, n)
			travelTime := distance / ros
			if travelTime > dt {
				continue
			}
			intensity, err := behaviour.Intensity(neighborCell, weather, ros)
			if err != nil {
				return nil, err
			}
			state.Burn(n, intensity)
			seen[n] = true
			newlyBurned = append(newlyBurned, n)
		}
	}
	return newlyBurned, nil
}

// withinSpreadCone reports whether to is roughly downwind of the spread
// direction from, within a 90-degree cone either side, so fire only grows
// toward the side it's actually spreading toward rather than uniformly in
// all 8 directions.
func withinSpreadCone(from, to Location, direction float64) bool {
	dr, dc := to.Row-from.Row, to.Column-from.Column
	bearing := math.Atan2(float64(dc), float64(-dr)) * 180 / math.Pi
	bearing = NormalizeAspect(bearing)
	diff := math.Abs(bearing - direction)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= 90
}

// cellDistance returns the center-to-center distance, in meters, between
// two adjacent or diagonal cells.
func cellDistance(grid Grid, a, b Location) float64 {
	dr, dc := a.Row-b.Row, a.Column-b.Column
	if dr != 0 && dc != 0 {
		return grid.CellSize * math.Sqrt2
	}
	return grid.CellSize
}
