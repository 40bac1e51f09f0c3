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

package firestarrutil

import (
	"strconv"
	"time"

	firestarr "github.com/spatialmodel/firestarr"
)

// StartArgs is the parsed positional argument form shared by the root and
// surface commands: `<outputDir> <date> <lat> <lon> <time>` (§6.1).
type StartArgs struct {
	OutputDir string
	Start     time.Time
	Lat, Lon  float64
}

// ParseStartArgs parses the five positional arguments common to both the
// point-ignition and surface run modes.
func ParseStartArgs(args []string, tzOffsetHours float64) (StartArgs, error) {
	if len(args) < 5 {
		return StartArgs{}, &firestarr.InvalidInputError{Msg: "expected <outputDir> <date> <lat> <lon> <time>"}
	}
	lat, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return StartArgs{}, &firestarr.InvalidInputError{Msg: "bad latitude: " + err.Error()}
	}
	lon, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return StartArgs{}, &firestarr.InvalidInputError{Msg: "bad longitude: " + err.Error()}
	}
	loc := time.FixedZone("tz", int(tzOffsetHours*3600))
	start, err := time.ParseInLocation("2006-01-02 15:04", args[1]+" "+args[4], loc)
	if err != nil {
		return StartArgs{}, &firestarr.InvalidInputError{Msg: "bad date/time: " + err.Error()}
	}
	return StartArgs{OutputDir: args[0], Start: start, Lat: lat, Lon: lon}, nil
}
