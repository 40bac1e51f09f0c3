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

import "fmt"

// InvalidInputError reports malformed CLI input, a missing required flag,
// an out-of-range value that isn't simply clamped, or misaligned grids.
// It is always fatal.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Msg }

// WeatherInputError reports a problem with the weather CSV: missing file,
// bad header, non-sequential hours, negative precipitation, or a missing
// column. It is always fatal.
type WeatherInputError struct {
	Msg  string
	Line int // 0 if not applicable to a specific line
}

func (e *WeatherInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("weather input error at line %d: %s", e.Line, e.Msg)
	}
	return "weather input error: " + e.Msg
}

// RasterError reports a failure from the raster-store collaborator: a
// TIFF read/write failure, unsupported sample format, or missing nodata
// value. It is always fatal.
type RasterError struct {
	Msg  string
	Path string
}

func (e *RasterError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("raster error (%s): %s", e.Path, e.Msg)
	}
	return "raster error: " + e.Msg
}

// FuelUnknownError reports a fuel code with no entry in the fuel registry.
// Encountering this during environment load is not an error -- the cell is
// simply marked unburnable -- but encountering it during spread is fatal.
type FuelUnknownError struct {
	FuelCode FuelCode
}

func (e *FuelUnknownError) Error() string {
	return fmt.Sprintf("unknown fuel code %d", e.FuelCode)
}
