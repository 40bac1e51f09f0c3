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

package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	firestarr "github.com/spatialmodel/firestarr"
)

func geomPoint(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

// AsciiGridReader decodes the Esri ASCII grid format (NCOLS/NROWS/
// XLLCORNER/YLLCORNER/CELLSIZE/NODATA_VALUE header followed by row-major
// values). It stands in for the tiled-GeoTIFF decoder a full deployment
// would plug in via RasterReader: ASCII grids need only the standard
// library to parse, whereas tiled GeoTIFF does not, so this is a
// deliberately minimal reference reader rather than the production path.
type AsciiGridReader struct{}

// ReadRaster implements RasterReader.
func (AsciiGridReader) ReadRaster(path string) (Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Raster{}, &firestarr.RasterError{Msg: err.Error(), Path: path}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)

	header := map[string]float64{}
	keys := []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"}
	for _, want := range keys {
		if !scanner.Scan() {
			return Raster{}, &firestarr.RasterError{Msg: "truncated header", Path: path}
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || !strings.EqualFold(fields[0], want) {
			return Raster{}, &firestarr.RasterError{Msg: fmt.Sprintf("expected header key %q, got %q", want, scanner.Text()), Path: path}
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Raster{}, &firestarr.RasterError{Msg: err.Error(), Path: path}
		}
		header[want] = v
	}

	rows, cols := int(header["nrows"]), int(header["ncols"])
	cellSize := header["cellsize"]
	grid := firestarr.Grid{
		Rows:    rows,
		Columns: cols,
		CellSize: cellSize,
		LowerLeft: geomPoint(header["xllcorner"], header["yllcorner"]),
		UpperRight: geomPoint(
			header["xllcorner"]+float64(cols)*cellSize,
			header["yllcorner"]+float64(rows)*cellSize,
		),
	}

	values := make([]float64, rows*cols)
	i := 0
	for scanner.Scan() {
		for _, tok := range strings.Fields(scanner.Text()) {
			if i >= len(values) {
				break
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Raster{}, &firestarr.RasterError{Msg: err.Error(), Path: path}
			}
			values[i] = v
			i++
		}
	}
	if i != len(values) {
		return Raster{}, &firestarr.RasterError{Msg: fmt.Sprintf("expected %d values, read %d", len(values), i), Path: path}
	}

	return Raster{Grid: grid, Values: values, NoData: header["nodata_value"]}, nil
}
