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

import "time"

// FireWeather is the minimal per-hour weather the spread kernel and fuel
// behaviour need. The weather package fills the fields from the input
// CSV's columns as given; this package
// only depends on their names and units, not on how they're derived,
// matching §1's note that FWI and fuel behaviour are black-box
// collaborators of the spread model.
type FireWeather struct {
	Time time.Time

	Temperature float64 // degrees C
	RelativeHumidity float64 // percent
	WindSpeed   float64 // km/h
	WindDirection float64 // degrees, compass

	FFMC, DMC, DC, ISI, BUI, FWI float64
}

// FuelBehaviour is the pluggable, per-fuel-type collaborator that turns a
// Cell and the current FireWeather into a spread direction/rate, matching
// Mechanism's role in the teacher (a small capability interface looked up
// by a string/code key, rather than a type switch). Each concrete fuel
// type (science/fuel/simplefuel) implements this once and registers
// itself under its FuelCode.
type FuelBehaviour interface {
	// Name returns the human-readable identifier of the fuel type, e.g.
	// "C-2" or "O-1a".
	Name() string

	// SpreadParameters returns the rate of spread (m/min) and direction
	// of maximum spread (degrees) for cell under weather, given the
	// slope and aspect already resolved onto cell.
	SpreadParameters(cell Cell, weather FireWeather) (rateOfSpread float64, direction float64, err error)

	// Intensity returns the fireline intensity (kW/m) implied by the
	// given rate of spread for cell under weather.
	Intensity(cell Cell, weather FireWeather, rateOfSpread float64) (IntensitySize, error)

	// Extinguishes reports whether the fire at cell should self-
	// extinguish under weather, independent of rate of spread (e.g. a
	// fuel type with a moisture-of-extinction threshold).
	Extinguishes(cell Cell, weather FireWeather) bool
}

// SpreadKernel is the engine that, given an Environment, a weather stream
// and the FuelBehaviour registry, advances an IntensityMap by one time
// step. Its concrete implementation is the out-of-scope collaborator
// named in §1 ("SpreadKernel ... is a black box: this specification
// governs how it's invoked, not what's inside it"); Scenario and Model
// only depend on this interface.
type SpreadKernel interface {
	// Step advances state by dt (minutes), burning newly-reached cells
	// into state according to fuels' registered behaviours and the
	// weather at the given time. It returns the set of cells newly
	// burned during this step, which the caller uses to check
	// IsSurrounded/convergence.
	Step(env *Environment, state *IntensityMap, fuels *FuelRegistry, weather FireWeather, dt float64) ([]Location, error)
}

// FuelRegistry maps FuelCode to the FuelBehaviour responsible for it.
// An Environment holding codes with no registered behaviour is not an
// error by itself: Lookup returns a FuelUnknownError only when a spread
// kernel asks for such a code.
type FuelRegistry struct {
	behaviours map[FuelCode]FuelBehaviour
}

// NewFuelRegistry returns an empty registry.
func NewFuelRegistry() *FuelRegistry {
	return &FuelRegistry{behaviours: make(map[FuelCode]FuelBehaviour)}
}

// Register associates code with behaviour, overwriting any previous
// registration for that code.
func (r *FuelRegistry) Register(code FuelCode, behaviour FuelBehaviour) {
	r.behaviours[code] = behaviour
}

// Lookup returns the behaviour registered for code, or a FuelUnknownError
// if none is registered.
func (r *FuelRegistry) Lookup(code FuelCode) (FuelBehaviour, error) {
	b, ok := r.behaviours[code]
	if !ok {
		return nil, &FuelUnknownError{FuelCode: code}
	}
	return b, nil
}
