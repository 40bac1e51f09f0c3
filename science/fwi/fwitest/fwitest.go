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

// Package fwitest holds fixed hourly weather input used by science/fwi's
// tests of the zero-precipitation properties.
package fwitest

// Hour is one hour of input weather: temperature (C), relative humidity
// (percent), wind speed (km/h) and precipitation (mm).
type Hour struct {
	Temp, RH, WS, Precip float64
}

// ZeroPrecipDay46N holds a single precipitation-free hour, which the tests
// apply repeatedly, used by the "FFMC under zero wind, zero precip" and
// "zero-precip weather file" properties (§8): no rain, no wind, moderate
// temperature and humidity, latitude 46N, month July.
var ZeroPrecipDay46N = []Hour{
	{Temp: 17.0, RH: 42.0, WS: 0.0, Precip: 0.0},
}

// Month and Latitude are the reference day-length parameters
// ZeroPrecipDay46N is computed under.
const (
	Month    = 7
	Latitude = 46.0
)

// StartFFMC, StartDMC, StartDC are the reference starting codes used by
// the "zero-precip weather file" property in §8.
const (
	StartFFMC = 85.0
	StartDMC  = 25.0
	StartDC   = 200.0
)
