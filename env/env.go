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
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package env builds a firestarr.Environment from raster and shapefile
// inputs: a fuel raster (integer codes resolved through a lookup table),
// an elevation raster (slope and aspect derived via Horn's algorithm),
// and an optional ignition perimeter shapefile. Loading is configured
// with a chain of Option functions, the same functional-options shape the
// teacher uses for its own InitOption (UseFileTemplate, UseWebArchive,
// UseReaders).
package env

import (
	"fmt"
	"math"

	"github.com/cenkalti/backoff"
	goshp "github.com/jonas-p/go-shp"

	firestarr "github.com/spatialmodel/firestarr"
)

// Raster is a decoded single-band raster: row-major values plus the grid
// they're defined on. Producing one from a GeoTIFF is the out-of-scope
// raster-store collaborator's job (§1); this package only consumes the
// decoded result, so tests can supply a Raster built directly from a
// slice.
type Raster struct {
	Grid   firestarr.Grid
	Values []float64 // row-major, len == Grid.NumCells()
	NoData float64
}

// RasterReader decodes a named raster file into a Raster. The production
// implementation wraps whatever tiled-GeoTIFF library the deployment
// provides; Load only depends on this interface.
type RasterReader interface {
	ReadRaster(path string) (Raster, error)
}

// config accumulates the inputs Load assembles an Environment from.
type config struct {
	reader       RasterReader
	fuelPath     string
	elevPath     string
	fuelLUT      map[int]firestarr.FuelCode
	perimPath    string
	perimPoint   *firestarr.Location
}

// Option configures a Load call.
type Option func(*config) error

// WithRasterReader supplies the raster decoder Load uses for the fuel and
// elevation rasters.
func WithRasterReader(r RasterReader) Option {
	return func(c *config) error {
		c.reader = r
		return nil
	}
}

// WithFuelRaster sets the fuel raster path and the lookup table mapping
// its integer codes onto firestarr.FuelCode values. Codes absent from lut
// are loaded as firestarr.InvalidFuelCode (permanently unburnable),
// matching §7's "unknown cells are simply marked unburnable" policy.
func WithFuelRaster(path string, lut map[int]firestarr.FuelCode) Option {
	return func(c *config) error {
		c.fuelPath = path
		c.fuelLUT = lut
		return nil
	}
}

// WithElevationRaster sets the elevation raster path, in meters.
func WithElevationRaster(path string) Option {
	return func(c *config) error {
		c.elevPath = path
		return nil
	}
}

// WithPerimeterShapefile sets a shapefile Load reads as the ignition
// perimeter, via github.com/jonas-p/go-shp.
func WithPerimeterShapefile(path string) Option {
	return func(c *config) error {
		c.perimPath = path
		return nil
	}
}

// Load builds an Environment (and, if a perimeter shapefile option was
// given, an Ignition) by applying every option in order and then decoding
// the configured rasters.
func Load(options ...Option) (*firestarr.Environment, *firestarr.Ignition, error) {
	var c config
	for _, opt := range options {
		if err := opt(&c); err != nil {
			return nil, nil, err
		}
	}
	if c.reader == nil {
		return nil, nil, &firestarr.InvalidInputError{Msg: "env.Load requires a RasterReader"}
	}
	if c.fuelPath == "" || c.elevPath == "" {
		return nil, nil, &firestarr.InvalidInputError{Msg: "env.Load requires both a fuel and an elevation raster"}
	}

	fuelRaster, err := readRasterWithRetry(c.reader, c.fuelPath)
	if err != nil {
		return nil, nil, err
	}
	elevRaster, err := readRasterWithRetry(c.reader, c.elevPath)
	if err != nil {
		return nil, nil, err
	}
	if !fuelRaster.Grid.SameExtent(elevRaster.Grid) {
		return nil, nil, &firestarr.InvalidInputError{Msg: "fuel and elevation rasters do not share the same extent"}
	}
	grid := fuelRaster.Grid
	if grid.Rows > firestarr.MaxRows || grid.Columns > firestarr.MaxColumns {
		return nil, nil, &firestarr.InvalidInputError{Msg: fmt.Sprintf("grid %dx%d exceeds maximum %dx%d", grid.Rows, grid.Columns, firestarr.MaxRows, firestarr.MaxColumns)}
	}

	elevation := make([]int16, grid.NumCells())
	for i, v := range elevRaster.Values {
		if v == elevRaster.NoData {
			elevation[i] = 0
			continue
		}
		elevation[i] = int16(v)
	}

	slopes, aspects := hornSlopeAspect(grid, elevation)

	cells := make([]firestarr.Cell, grid.NumCells())
	for i, raw := range fuelRaster.Values {
		loc := firestarr.Location{Row: i / grid.Columns, Column: i % grid.Columns}
		code := firestarr.InvalidFuelCode
		if raw != fuelRaster.NoData {
			if mapped, ok := c.fuelLUT[int(raw)]; ok {
				code = mapped
			}
		}
		cells[i] = firestarr.Cell{
			Location: loc,
			Slope:    slopes[i],
			Aspect:   aspects[i],
			FuelCode: code,
		}
	}

	environment, err := firestarr.NewEnvironment(grid, cells, elevation)
	if err != nil {
		return nil, nil, err
	}

	var ignition *firestarr.Ignition
	if c.perimPath != "" {
		perim, err := loadPerimeterShapefile(c.perimPath, grid)
		if err != nil {
			return nil, nil, err
		}
		ig := firestarr.NewIgnitionFromPerimeter(perim)
		ignition = &ig
	}

	return environment, ignition, nil
}

// readRasterWithRetry wraps a RasterReader call in a short exponential
// backoff, absorbing the transient open/read failures a networked or
// tiled raster store produces (the production RasterReader a full
// deployment plugs in here reads tiles over the network rather than from
// local disk, the teacher's sr package assumes the same of its worker
// RPC calls) without retrying a genuinely missing or malformed file any
// longer than it has to.
func readRasterWithRetry(r RasterReader, path string) (Raster, error) {
	var raster Raster
	err := backoff.Retry(func() error {
		var err error
		raster, err = r.ReadRaster(path)
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
	return raster, err
}

// hornSlopeAspect computes percent slope and compass-degree aspect for
// every cell in grid from elevation, using Horn's 3x3 weighted-difference
// kernel (the standard algorithm behind GDAL's gdaldem slope/aspect).
// Edge cells (whose kernel would read outside the grid) get
// InvalidSlope/InvalidAspect.
func hornSlopeAspect(grid firestarr.Grid, elevation []int16) (slopes, aspects []float64) {
	n := grid.NumCells()
	slopes = make([]float64, n)
	aspects = make([]float64, n)
	cellSize := grid.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}

	at := func(row, col int) (float64, bool) {
		if row < 0 || row >= grid.Rows || col < 0 || col >= grid.Columns {
			return 0, false
		}
		return float64(elevation[row*grid.Columns+col]), true
	}

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			idx := row*grid.Columns + col
			var e [9]float64
			ok := true
			k := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					v, present := at(row+dr, col+dc)
					if !present {
						ok = false
					}
					e[k] = v
					k++
				}
			}
			if !ok {
				slopes[idx] = firestarr.InvalidSlope
				aspects[idx] = firestarr.InvalidAspect
				continue
			}
			// e indices: 0 1 2 / 3 4 5 / 6 7 8, row-major around center (4).
			dzdx := ((e[2] + 2*e[5] + e[8]) - (e[0] + 2*e[3] + e[6])) / (8 * cellSize)
			dzdy := ((e[6] + 2*e[7] + e[8]) - (e[0] + 2*e[1] + e[2])) / (8 * cellSize)

			rise := math.Sqrt(dzdx*dzdx + dzdy*dzdy)
			slopes[idx] = firestarr.ClampSlope(rise * 100)

			if dzdx == 0 && dzdy == 0 {
				aspects[idx] = firestarr.InvalidAspect
				continue
			}
			aspect := math.Atan2(dzdy, -dzdx) * 180 / math.Pi
			compass := 90 - aspect
			aspects[idx] = firestarr.NormalizeAspect(compass)
		}
	}
	return slopes, aspects
}

// loadPerimeterShapefile reads point features from a shapefile and maps
// each one inside grid onto its cell, returning those cells as a
// Perimeter. Polygon and other non-point features are skipped.
func loadPerimeterShapefile(path string, grid firestarr.Grid) (firestarr.Perimeter, error) {
	reader, err := goshp.Open(path)
	if err != nil {
		return firestarr.Perimeter{}, &firestarr.RasterError{Msg: err.Error(), Path: path}
	}
	defer reader.Close()

	var locs []firestarr.Location
	for reader.Next() {
		_, shape := reader.Shape()
		point, ok := shape.(*goshp.Point)
		if !ok {
			continue
		}
		col := int((point.X - grid.LowerLeft.X) / grid.CellSize)
		row := int((grid.UpperRight.Y - point.Y) / grid.CellSize)
		loc := firestarr.Location{Row: row, Column: col}
		if grid.Contains(loc) {
			locs = append(locs, loc)
		}
	}
	if len(locs) == 0 {
		return firestarr.Perimeter{}, &firestarr.InvalidInputError{Msg: "perimeter shapefile contained no points within the grid"}
	}
	return firestarr.Perimeter{Burned: locs, Edge: locs}, nil
}
