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

// Package simplefuel is a small, fixed registry of FBP-style fuel
// behaviours (github.com/spatialmodel/firestarr.FuelBehaviour
// implementations): two conifer types, one open/grass type, and a
// generic grass fallback. Rate of spread follows the standard FBP form
// ROS = a*(1-exp(-b*ISI))^c, calibrated per fuel type; this package does
// not attempt crown-fire or two-fuel-layer behaviour.
package simplefuel

import (
	"math"

	firestarr "github.com/spatialmodel/firestarr"
	"github.com/spatialmodel/firestarr/science/fwi"
)

// Behaviour implements firestarr.FuelBehaviour for one FBP fuel type
// using the standard three-parameter ROS curve plus a buildup effect and
// a moisture-of-extinction cutoff.
type Behaviour struct {
	name string
	a, b, c float64 // ROS curve parameters
	buiMax  float64 // BUI at which the buildup effect saturates
	mcExt   float64 // moisture of extinction, percent

	// fuelConsumption is the representative fuel consumption per unit
	// area that Intensity uses to turn rate of spread into an approximate
	// fireline intensity via Byram's equation, so this package doesn't
	// need a full fuel-consumption model.
	fuelConsumption float64 // kg/m^2
}

// Name implements firestarr.FuelBehaviour.
func (b Behaviour) Name() string { return b.name }

// buildupEffect applies the FBP-style buildup-index damping of the ISI
// curve: ROS saturates as BUI grows past buiMax.
func (b Behaviour) buildupEffect(bui fwi.Bui) float64 {
	if b.buiMax <= 0 {
		return 1
	}
	x := float64(bui) / b.buiMax
	if x > 1 {
		x = 1
	}
	return math.Exp(2.5 * math.Log(0.9) * (1 - x))
}

// SpreadParameters implements firestarr.FuelBehaviour. Direction of
// maximum spread follows the slope aspect when the cell has slope, the
// wind direction otherwise (a simplified stand-in for the full
// vector-addition wind-slope model).
func (b Behaviour) SpreadParameters(cell firestarr.Cell, weather firestarr.FireWeather) (float64, float64, error) {
	isi := fwi.ISI(weather.WindSpeed, fwi.Ffmc(weather.FFMC))
	ros := b.a * math.Pow(1-math.Exp(-b.b*float64(isi)), b.c) * b.buildupEffect(fwi.Bui(weather.BUI))

	direction := weather.WindDirection
	if cell.Slope > 0 {
		slopeFactor := cell.Slope / 100
		direction = firestarr.NormalizeAspect(cell.Aspect)
		ros *= 1 + slopeFactor
	}
	return ros, direction, nil
}

// Intensity implements firestarr.FuelBehaviour via Byram's fireline
// intensity equation I = H*w*r, with H a fixed low heat of combustion
// (18000 kJ/kg), w the fuel's representative consumption, and r the rate
// of spread converted from m/min to m/s.
func (b Behaviour) Intensity(cell firestarr.Cell, weather firestarr.FireWeather, rateOfSpread float64) (firestarr.IntensitySize, error) {
	const heatOfCombustion = 18000.0 // kJ/kg
	rateMetersPerSecond := rateOfSpread / 60
	intensity := heatOfCombustion * b.fuelConsumption * rateMetersPerSecond
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 65535 {
		intensity = 65535
	}
	return firestarr.IntensitySize(intensity), nil
}

// Extinguishes implements firestarr.FuelBehaviour: the fire self-
// extinguishes once fine fuel moisture rises above the fuel's moisture of
// extinction.
func (b Behaviour) Extinguishes(cell firestarr.Cell, weather firestarr.FireWeather) bool {
	moisture := fwi.FFMCToMoisture(fwi.Ffmc(weather.FFMC))
	return moisture >= b.mcExt
}

// Conifer types C-2 (boreal spruce) and C-3 (mature jack or lodgepole
// pine), and open type O-1a (matted grass), per the FBP System's standard
// fuel type parameterization.
var (
	C2 = Behaviour{name: "C-2", a: 110, b: 0.0282, c: 1.5, buiMax: 50, mcExt: 30, fuelConsumption: 1.4}
	C3 = Behaviour{name: "C-3", a: 110, b: 0.0444, c: 3.0, buiMax: 50, mcExt: 28, fuelConsumption: 1.3}
	O1a = Behaviour{name: "O-1a", a: 190, b: 0.0310, c: 1.4, buiMax: 30, mcExt: 20, fuelConsumption: 0.35}
	// Grass is a generic cured-grass behaviour, registered only under
	// CodeGrass; codes with no registration are not mapped to it.
	Grass = Behaviour{name: "grass", a: 190, b: 0.0310, c: 1.4, buiMax: 1, mcExt: 18, fuelConsumption: 0.3}
)

// FuelCode values this package's Register function maps to the above
// behaviours. Callers building an Environment from a fuel raster decide
// how raw raster codes map onto these.
const (
	CodeC2 firestarr.FuelCode = 2
	CodeC3 firestarr.FuelCode = 3
	CodeO1a firestarr.FuelCode = 11
	CodeGrass firestarr.FuelCode = 12
)

// Register installs this package's fuel behaviours into reg under their
// standard codes.
func Register(reg *firestarr.FuelRegistry) {
	reg.Register(CodeC2, C2)
	reg.Register(CodeC3, C3)
	reg.Register(CodeO1a, O1a)
	reg.Register(CodeGrass, Grass)
}
