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

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	firestarr "github.com/spatialmodel/firestarr"
	"github.com/spatialmodel/firestarr/env"
	"github.com/spatialmodel/firestarr/firestarrutil"
	"github.com/spatialmodel/firestarr/science/fuel/simplefuel"
	"github.com/spatialmodel/firestarr/weather"
)

func main() {
	cfg := firestarrutil.NewCfg(run)
	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

// run is the action every firestarrutil command delegates to. mode is
// "point", "surface", or "test" depending on which command invoked it.
func run(cfg *firestarrutil.Cfg, mode string, args []string) error {
	if mode == "test" {
		cfg.Logger.Info().Msg("acceptance scenarios are not bundled with this build")
		return nil
	}

	start, err := firestarrutil.ParseStartArgs(args, cfg.GetFloat64("tz"))
	if err != nil {
		return err
	}

	rasterRoot := cfg.GetString("raster-root")
	reader := env.AsciiGridReader{}
	lut := map[int]firestarr.FuelCode{
		int(simplefuel.CodeC2):    simplefuel.CodeC2,
		int(simplefuel.CodeC3):    simplefuel.CodeC3,
		int(simplefuel.CodeO1a):   simplefuel.CodeO1a,
		int(simplefuel.CodeGrass): simplefuel.CodeGrass,
	}

	options := []env.Option{
		env.WithRasterReader(reader),
		env.WithFuelRaster(rasterRoot+"/fuel.asc", lut),
		env.WithElevationRaster(rasterRoot+"/elevation.asc"),
	}
	if perim := cfg.GetString("perim"); perim != "" {
		options = append(options, env.WithPerimeterShapefile(perim))
	}

	environment, loadedIgnition, err := env.Load(options...)
	if err != nil {
		return err
	}

	fuels := firestarr.NewFuelRegistry()
	simplefuel.Register(fuels)

	wx, err := loadWeather(cfg)
	if err != nil {
		return err
	}

	ignition := resolveIgnition(cfg, loadedIgnition, environment.Grid, start)

	offsets, err := parseOffsets(cfg.GetString("output_date_offsets"))
	if err != nil {
		return err
	}
	if len(offsets) > 0 {
		cfg.Logger.Debug().Int("count", len(offsets)).Msg("save-point offsets configured")
	}

	modelCfg := firestarr.ModelConfig{
		Mode:          resolveMode(cfg, mode),
		NumScenarios:  1000,
		Confidence:    cfg.GetFloat64("confidence"),
		RelativeError: 0.05,
		MinScenarios:  30,
		Step:          time.Hour,
		SaveInterval:  5 * time.Minute,
		OutputDir:     start.OutputDir,
		Bands:         firestarr.Bands{LowMax: 500, MedMax: 2000},
		Logger:        cfg.Logger,
	}
	if cfg.GetBool("synchronous") {
		modelCfg.MaxWorkers = 1
	}

	model := firestarr.NewModel(modelCfg, environment, fuels, firestarr.CellularKernel{})

	ctx := context.Background()
	_, _, err = model.Run(ctx, ignition, wx, start.Start, start.Lat, start.Lon)
	return err
}

func resolveMode(cfg *firestarrutil.Cfg, mode string) firestarr.ConvergenceMode {
	if mode == "surface" {
		return firestarr.ModeSurface
	}
	if cfg.GetBool("deterministic") {
		return firestarr.ModeDeterministic
	}
	return firestarr.ModeProbabilistic
}

func loadWeather(cfg *firestarrutil.Cfg) ([]firestarr.FireWeather, error) {
	path := cfg.GetString("wx")
	if path == "" {
		return nil, &firestarr.InvalidInputError{Msg: "--wx weather CSV path is required"}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &firestarr.WeatherInputError{Msg: err.Error()}
	}
	defer f.Close()
	streams, err := weather.Parse(f, cfg.GetFloat64("apcp_prev"))
	if err != nil {
		return nil, err
	}
	for _, s := range streams {
		return s.Hourly(), nil
	}
	return nil, &firestarr.WeatherInputError{Msg: "weather file contained no scenarios"}
}

func resolveIgnition(cfg *firestarrutil.Cfg, loaded *firestarr.Ignition, grid firestarr.Grid, start firestarrutil.StartArgs) firestarr.Ignition {
	if loaded != nil {
		return *loaded
	}
	center := latLonToLocation(grid, start.Lat, start.Lon)
	if size := cfg.GetFloat64("size"); size > 0 {
		radiusCells := radiusForHectares(size, grid)
		return firestarr.NewIgnitionFromPerimeter(firestarr.NewCirclePerimeter(grid, center, radiusCells))
	}
	return firestarr.NewPointIgnition(center)
}

// latLonToLocation is a placeholder mapping from geographic coordinates
// to grid cells; a full deployment resolves this through the grid's
// projection (Grid.Projection plus a reprojection library such as
// github.com/ctessum/geom/proj), which is out of scope here.
func latLonToLocation(grid firestarr.Grid, lat, lon float64) firestarr.Location {
	return firestarr.Location{Row: grid.Rows / 2, Column: grid.Columns / 2}
}

func radiusForHectares(ha float64, grid firestarr.Grid) float64 {
	areaM2 := ha * 10000
	radiusM := math.Sqrt(areaM2 / math.Pi)
	if grid.CellSize == 0 {
		return 1
	}
	return radiusM / grid.CellSize
}

// parseOffsets parses the --output_date_offsets comma-separated list of
// hour offsets into durations.
func parseOffsets(csv string) ([]time.Duration, error) {
	if csv == "" {
		return nil, nil
	}
	var out []time.Duration
	for _, field := range strings.Split(csv, ",") {
		hours, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, &firestarr.InvalidInputError{Msg: "bad output_date_offsets entry: " + err.Error()}
		}
		out = append(out, time.Duration(hours*float64(time.Hour)))
	}
	return out, nil
}
