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
	"testing"
	"time"

	"github.com/ctessum/sparse"
)

func TestProbabilityMapAddProbability(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4, CellSize: 100}
	bands := Bands{LowMax: 100, MedMax: 300}
	p := NewProbabilityMap(grid, bands)

	unburnable := NewBurnedData(grid)
	im := NewIntensityMap(grid, unburnable)
	im.Burn(Location{Row: 0, Column: 0}, 50)  // low
	im.Burn(Location{Row: 0, Column: 1}, 200) // moderate
	im.Burn(Location{Row: 0, Column: 2}, 500) // high
	p.AddProbability(im)

	if p.NumRuns() != 1 {
		t.Errorf("NumRuns() = %d, want 1", p.NumRuns())
	}
	if got := p.Probability(Location{Row: 0, Column: 0}); got != 1 {
		t.Errorf("Probability(burned cell) = %v, want 1", got)
	}
	if got := p.Probability(Location{Row: 3, Column: 3}); got != 0 {
		t.Errorf("Probability(never burned cell) = %v, want 0", got)
	}
	if len(p.Sizes()) != 1 {
		t.Errorf("Sizes() has %d entries, want 1", len(p.Sizes()))
	}
}

func TestProbabilityMapAddProbabilitiesMerges(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4, CellSize: 100}
	bands := Bands{LowMax: 100, MedMax: 300}
	a := NewProbabilityMap(grid, bands)
	b := NewProbabilityMap(grid, bands)

	unburnable := NewBurnedData(grid)
	imA := NewIntensityMap(grid, unburnable)
	imA.Burn(Location{Row: 1, Column: 1}, 50)
	a.AddProbability(imA)

	imB := NewIntensityMap(grid, unburnable)
	imB.Burn(Location{Row: 1, Column: 1}, 50)
	b.AddProbability(imB)

	if err := a.AddProbabilities(b); err != nil {
		t.Fatal(err)
	}
	if a.NumRuns() != 2 {
		t.Errorf("NumRuns() after merge = %d, want 2", a.NumRuns())
	}
	if got := a.Probability(Location{Row: 1, Column: 1}); got != 1 {
		t.Errorf("Probability() after merge = %v, want 1", got)
	}
}

func TestProbabilityMapAddProbabilitiesRejectsMismatchedExtent(t *testing.T) {
	a := NewProbabilityMap(Grid{Rows: 4, Columns: 4}, Bands{LowMax: 100, MedMax: 300})
	b := NewProbabilityMap(Grid{Rows: 5, Columns: 5}, Bands{LowMax: 100, MedMax: 300})
	if err := a.AddProbabilities(b); err == nil {
		t.Fatal("expected an error merging maps with different extents")
	}
}

func TestProbabilityMapAddProbabilitiesRejectsMismatchedBands(t *testing.T) {
	grid := Grid{Rows: 4, Columns: 4}
	a := NewProbabilityMap(grid, Bands{LowMax: 100, MedMax: 300})
	b := NewProbabilityMap(grid, Bands{LowMax: 50, MedMax: 200})
	if err := a.AddProbabilities(b); err == nil {
		t.Fatal("expected an error merging maps with different bands")
	}
}

func TestBandsBandOf(t *testing.T) {
	bands := Bands{LowMax: 100, MedMax: 300}
	cases := map[IntensitySize]IntensityBand{
		0:   BandLow,
		100: BandLow,
		101: BandModerate,
		300: BandModerate,
		301: BandHigh,
	}
	for v, want := range cases {
		if got := bands.bandOf(v); got != want {
			t.Errorf("bandOf(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestProcessingStatusTag(t *testing.T) {
	cases := map[ProcessingStatus]byte{Unprocessed: 'U', Processing: 'P', Processed: 'F'}
	for status, want := range cases {
		if got := status.Tag(); got != want {
			t.Errorf("Tag() for %v = %c, want %c", status, got, want)
		}
	}
}

func TestProbabilityMapSaveAllWritesFinalAndCleansInterim(t *testing.T) {
	orig := writeCountGrid
	writeCountGrid = func(path string, grid *sparse.DenseArrayInt, perimeter []Location, status ProcessingStatus) error {
		return nil
	}
	t.Cleanup(func() { writeCountGrid = orig })

	dir := t.TempDir()
	grid := Grid{Rows: 2, Columns: 2, CellSize: 100}
	p := NewProbabilityMap(grid, Bands{LowMax: 100, MedMax: 300})

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	interimTime := start.Add(time.Hour)
	if err := p.SaveAll(dir, start, interimTime, true, nil, Processing); err != nil {
		t.Fatalf("interim SaveAll failed: %v", err)
	}
	if len(p.interimPaths) == 0 {
		t.Error("interim SaveAll should record interim paths for later cleanup")
	}

	finalTime := start.Add(2 * time.Hour)
	if err := p.SaveAll(dir, start, finalTime, false, nil, Processed); err != nil {
		t.Fatalf("final SaveAll failed: %v", err)
	}
	if len(p.interimPaths) != 0 {
		t.Error("final SaveAll should clear recorded interim paths")
	}
}
