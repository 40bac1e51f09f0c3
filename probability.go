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
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ctessum/sparse"
)

// ProcessingStatus distinguishes partial from final probability products
// (§4.5, §6.4). Its Tag is part of every output file name; SaveAll also
// passes it to writeCountGrid with the perimeter cells, but the default
// writeCountGrid does not stamp it into any cell.
type ProcessingStatus int

const (
	Unprocessed ProcessingStatus = 2
	Processing  ProcessingStatus = 3
	Processed   ProcessingStatus = 4
)

// Tag returns the one-character file-name tag for the status (§6.4).
func (s ProcessingStatus) Tag() byte {
	switch s {
	case Unprocessed:
		return 'U'
	case Processing:
		return 'P'
	default:
		return 'F'
	}
}

// IntensityBand names the three non-overlapping intensity bands a
// ProbabilityMap accumulates counts into, in addition to the "all" count.
type IntensityBand int

const (
	BandLow IntensityBand = iota
	BandModerate
	BandHigh
)

// Bands holds the two thresholds separating low/moderate/high intensity
// bands (§4.5): low is [minValue, lowMax], moderate is (lowMax, medMax],
// high is (medMax, maxValue].
type Bands struct {
	LowMax, MedMax IntensitySize
}

// bandOf returns which band an intensity falls into.
func (b Bands) bandOf(v IntensitySize) IntensityBand {
	switch {
	case v <= b.LowMax:
		return BandLow
	case v <= b.MedMax:
		return BandModerate
	default:
		return BandHigh
	}
}

// ProbabilityMap accumulates per-cell burn counts across scenarios for a
// single save-time T, banded by intensity, plus the vector of final fire
// sizes contributing to it. All operations are safe for concurrent use by
// many scenarios (§5: "ProbabilityMap counts... mutated by any scenario on
// save-point... internal mutex; merges are additive").
type ProbabilityMap struct {
	mu    sync.Mutex
	grid  Grid
	bands Bands

	all, low, moderate, high *sparse.DenseArrayInt
	sizes                    []float64 // hectares, one per contributing run

	numRuns int // number of scenario runs this map has seen, for probability = count/numRuns

	interimPaths []string // paths written by a non-final saveAll, for later cleanup
}

// NewProbabilityMap returns an empty ProbabilityMap for grid, banded by
// bands.
func NewProbabilityMap(grid Grid, bands Bands) *ProbabilityMap {
	return &ProbabilityMap{
		grid:     grid,
		bands:    bands,
		all:      sparse.ZerosDenseInt(grid.Rows, grid.Columns),
		low:      sparse.ZerosDenseInt(grid.Rows, grid.Columns),
		moderate: sparse.ZerosDenseInt(grid.Rows, grid.Columns),
		high:     sparse.ZerosDenseInt(grid.Rows, grid.Columns),
	}
}

// AddProbability folds one scenario's burned cells into the map: for each
// burned cell with intensity i, "all" is incremented, and exactly one of
// low/moderate/high depending on which band i falls in (§4.5).
func (p *ProbabilityMap) AddProbability(im *IntensityMap) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, bc := range im.Burned() {
		row, col := bc.Location.Row, bc.Location.Column
		p.all.Set(p.all.Get(row, col)+1, row, col)
		switch p.bands.bandOf(bc.Intensity) {
		case BandLow:
			p.low.Set(p.low.Get(row, col)+1, row, col)
		case BandModerate:
			p.moderate.Set(p.moderate.Get(row, col)+1, row, col)
		case BandHigh:
			p.high.Set(p.high.Get(row, col)+1, row, col)
		}
	}
	p.sizes = append(p.sizes, im.FireSize())
	p.numRuns++
}

// AddProbabilities merges another ProbabilityMap's counts and sizes into
// p. Both maps must share the same extent and banding (AddProbabilities
// returns an error otherwise); merging is simple integer addition and is
// therefore commutative and race-free under p's mutex.
func (p *ProbabilityMap) AddProbabilities(o *ProbabilityMap) error {
	if !p.grid.SameExtent(o.grid) {
		return &InvalidInputError{Msg: "cannot merge probability maps with different extents"}
	}
	if p.bands != o.bands {
		return &InvalidInputError{Msg: "cannot merge probability maps with different intensity bands"}
	}
	o.mu.Lock()
	oAll, oLow, oMod, oHigh := o.all, o.low, o.moderate, o.high
	oSizes := append([]float64(nil), o.sizes...)
	oRuns := o.numRuns
	o.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	for row := 0; row < p.grid.Rows; row++ {
		for col := 0; col < p.grid.Columns; col++ {
			if v := oAll.Get(row, col); v != 0 {
				p.all.Set(p.all.Get(row, col)+v, row, col)
			}
			if v := oLow.Get(row, col); v != 0 {
				p.low.Set(p.low.Get(row, col)+v, row, col)
			}
			if v := oMod.Get(row, col); v != 0 {
				p.moderate.Set(p.moderate.Get(row, col)+v, row, col)
			}
			if v := oHigh.Get(row, col); v != 0 {
				p.high.Set(p.high.Get(row, col)+v, row, col)
			}
		}
	}
	p.sizes = append(p.sizes, oSizes...)
	p.numRuns += oRuns
	return nil
}

// NumRuns returns the number of scenario results folded into p.
func (p *ProbabilityMap) NumRuns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numRuns
}

// Probability returns the fraction of runs in which loc burned.
func (p *ProbabilityMap) Probability(loc Location) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.numRuns == 0 {
		return 0
	}
	return float64(p.all.Get(loc.Row, loc.Column)) / float64(p.numRuns)
}

// Sizes returns a snapshot of the contributing fire sizes, in hectares.
func (p *ProbabilityMap) Sizes() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.sizes...)
}

// SaveAll emits the all/low/moderate/high grids and a sizes CSV to dir,
// named from startTime and saveTime T. When isInterim is true the written
// paths are remembered so they can be removed once final outputs are
// produced (§4.5, §4.8's "Interim outputs").
func (p *ProbabilityMap) SaveAll(dir string, startTime, t time.Time, isInterim bool, perimeter []Location, status ProcessingStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &RasterError{Msg: err.Error(), Path: dir}
	}

	base := fmt.Sprintf("%s_%s_%c", startTime.UTC().Format("20060102"), t.UTC().Format("20060102T1504"), status.Tag())
	names := map[string]*sparse.DenseArrayInt{
		"all":      p.all,
		"low":      p.low,
		"moderate": p.moderate,
		"high":     p.high,
	}
	var written []string
	for suffix, grid := range names {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.tif", base, suffix))
		if err := writeCountGrid(path, grid, perimeter, status); err != nil {
			return err
		}
		written = append(written, path)
	}

	sizesPath := filepath.Join(dir, fmt.Sprintf("%s_sizes.csv", base))
	if err := writeSizesCSV(sizesPath, p.sizes); err != nil {
		return err
	}
	written = append(written, sizesPath)

	if isInterim {
		p.interimPaths = append(p.interimPaths, written...)
	} else {
		p.removeInterimLocked()
	}
	return nil
}

// removeInterimLocked deletes any previously-written interim files. Must
// be called with p.mu held.
func (p *ProbabilityMap) removeInterimLocked() {
	for _, path := range p.interimPaths {
		os.Remove(path)
	}
	p.interimPaths = nil
}

// writeCountGrid is the seam to the out-of-scope raster-store
// collaborator (§1). This default creates an empty file at path; it
// writes neither the counts nor the perimeter status stamps. Tests
// replace it with a no-op.
var writeCountGrid = func(path string, grid *sparse.DenseArrayInt, perimeter []Location, status ProcessingStatus) error {
	f, err := os.Create(path)
	if err != nil {
		return &RasterError{Msg: err.Error(), Path: path}
	}
	defer f.Close()
	return nil
}

// writeSizesCSV writes one fire size per line, in hectares.
func writeSizesCSV(path string, sizes []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return &RasterError{Msg: err.Error(), Path: path}
	}
	defer f.Close()
	fmt.Fprintln(f, "size_ha")
	for _, s := range sizes {
		fmt.Fprintf(f, "%f\n", s)
	}
	return nil
}
