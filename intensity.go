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

import "sync"

// IntensitySize is the fireline intensity of a burned cell, in kW/m.
type IntensitySize uint16

// IntensityMap is the mutable per-scenario state of which cells have
// burned and at what intensity. Burn, Intensity and Burned take m's
// mutex; HasBurned, IsSurrounded and FireSize read the burned bitset under
// that BurnedData's own read lock.
type IntensityMap struct {
	mu         sync.Mutex
	grid       Grid
	burned     *BurnedData
	intensity  map[Location]IntensitySize
}

// NewIntensityMap returns an empty IntensityMap seeded from the
// environment's unburnable mask, sized for grid.
func NewIntensityMap(grid Grid, unburnable *BurnedData) *IntensityMap {
	b := NewBurnedData(grid)
	b.CopyFrom(unburnable)
	return &IntensityMap{
		grid:      grid,
		burned:    b,
		intensity: make(map[Location]IntensitySize),
	}
}

// reset clears the map back to unburnable's template state, reusing its
// own backing storage -- the hook Pool[*IntensityMap] calls on release.
func (m *IntensityMap) reset(unburnable *BurnedData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.burned.CopyFrom(unburnable)
	for k := range m.intensity {
		delete(m.intensity, k)
	}
}

// ApplyPerimeter burns every cell in perimeter at intensity 1, matching
// §4.4: "parallel burn(loc, 1) for every perimeter cell." The burns are
// independent of each other (no cell appears twice for a well-formed
// perimeter) so they are applied concurrently, synchronized by m's own
// mutex, rather than sequentially.
func (m *IntensityMap) ApplyPerimeter(perimeter []Location) {
	var wg sync.WaitGroup
	wg.Add(len(perimeter))
	for _, loc := range perimeter {
		loc := loc
		go func() {
			defer wg.Done()
			m.Burn(loc, 1)
		}()
	}
	wg.Wait()
}

// Burn records loc as burned at the given intensity and sets its burned
// bit.
func (m *IntensityMap) Burn(loc Location, intensity IntensitySize) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intensity[loc] = intensity
	m.burned.set(loc)
}

// HasBurned reports whether loc has burned (or was never burnable).
func (m *IntensityMap) HasBurned(loc Location) bool {
	return m.burned.HasBurned(loc)
}

// IsSurrounded reports whether loc and all 8 of its neighbors (clipped to
// the grid's bounds) have burned.
func (m *IntensityMap) IsSurrounded(loc Location) bool {
	if !m.HasBurned(loc) {
		return false
	}
	for _, n := range Neighbors8(m.grid, loc) {
		if !m.HasBurned(n) {
			return false
		}
	}
	return true
}

// FireSize returns the total area of burned cells, in hectares.
func (m *IntensityMap) FireSize() float64 {
	return float64(m.burned.Count()) * m.grid.CellAreaHectares()
}

// Intensity returns the recorded intensity at loc and whether loc is
// present in the sparse map at all.
func (m *IntensityMap) Intensity(loc Location) (IntensitySize, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.intensity[loc]
	return v, ok
}

// Burned returns every (location, intensity) pair recorded so far. The
// returned slice is a snapshot; mutating it does not affect m.
func (m *IntensityMap) Burned() []BurnedCell {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]BurnedCell, 0, len(m.intensity))
	for loc, v := range m.intensity {
		out = append(out, BurnedCell{Location: loc, Intensity: v})
	}
	return out
}

// BurnedCell pairs a burned location with its recorded intensity.
type BurnedCell struct {
	Location  Location
	Intensity IntensitySize
}
