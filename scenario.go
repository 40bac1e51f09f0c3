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
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ScenarioState is the lifecycle a Scenario moves through, per §4.6: a
// freshly-built Scenario is Created, reset() moves it to Reset, run()
// moves it to Running and then to either Completed or Cancelled. A
// Scenario can only be run once per reset() -- calling run() twice
// without an intervening reset() is a programming error.
type ScenarioState int

const (
	ScenarioCreated ScenarioState = iota
	ScenarioReset
	ScenarioRunning
	ScenarioCompleted
	ScenarioCancelled
)

func (s ScenarioState) String() string {
	switch s {
	case ScenarioCreated:
		return "created"
	case ScenarioReset:
		return "reset"
	case ScenarioRunning:
		return "running"
	case ScenarioCompleted:
		return "completed"
	case ScenarioCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Scenario is a single Monte-Carlo replicate: one draw of the stochastic
// inputs (ignition timing, weather jitter -- supplied by the caller
// through weather) run forward with a SpreadKernel until the fire goes
// out, the time horizon elapses, or it's cancelled by its owning Model.
// Its public operations mirror the teacher's DomainManipulator/
// CellManipulator separation of "what runs" from "what it runs on":
// Scenario owns state and sequencing, SpreadKernel owns the physics.
type Scenario struct {
	mu    sync.Mutex
	state ScenarioState

	env     *Environment
	fuels   *FuelRegistry
	kernel  SpreadKernel
	weather []FireWeather // chronological, one entry per simulated step

	ignition Ignition
	step     time.Duration

	intensity *IntensityMap
	pool      *Pool[*IntensityMap]

	result ScenarioResult
}

// ScenarioResult is the outcome of one completed or cancelled run.
type ScenarioResult struct {
	State     ScenarioState
	FireSize  float64 // hectares
	StepsRun  int
	Perimeter []BurnedCell
}

// NewScenario builds a Created Scenario. pool supplies and reclaims the
// per-run IntensityMap (C9); passing nil disables pooling and allocates a
// fresh IntensityMap on every reset.
func NewScenario(env *Environment, fuels *FuelRegistry, kernel SpreadKernel, step time.Duration, pool *Pool[*IntensityMap]) *Scenario {
	return &Scenario{
		env:    env,
		fuels:  fuels,
		kernel: kernel,
		step:   step,
		pool:   pool,
		state:  ScenarioCreated,
	}
}

// reset prepares s to run ignition forward through weather, returning it
// to the Reset state regardless of what state it was previously in. If s
// was Running, reset first releases its current IntensityMap back to the
// pool before acquiring a fresh one.
func (s *Scenario) reset(ignition Ignition, weather []FireWeather) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.intensity != nil && s.pool != nil {
		s.pool.Put(s.intensity)
	}
	if s.pool != nil {
		s.intensity = s.pool.Get()
	} else {
		s.intensity = NewIntensityMap(s.env.Grid, s.env.Unburnable())
	}
	s.ignition = ignition
	s.weather = weather
	s.result = ScenarioResult{}
	s.state = ScenarioReset
}

// resetWithNewStart is reset's variant for surface mode (§4.8 mode 2),
// where the same Environment and fuel registry are reused across many
// enumerated start cells and only the ignition point and weather window
// change. start identifies the burnable cell this iteration ignites from;
// it replaces reset's caller-supplied Ignition with a one-cell point
// ignition at start rather than accepting an arbitrary perimeter, since
// surface mode's whole purpose is probing every cell independently.
func (s *Scenario) resetWithNewStart(start Location, weather []FireWeather) {
	s.reset(NewPointIgnition(start), weather)
}

// run advances s from Reset to Completed or Cancelled, applying the
// ignition perimeter and then stepping the SpreadKernel forward once per
// weather entry until either weather is exhausted, the fire is fully
// surrounded by already-burned or unburnable cells, or ctx is cancelled.
// Calling run on a Scenario that is not in the Reset state is a
// programming error and panics, matching the at-most-once-per-reset
// invariant.
func (s *Scenario) run(ctx context.Context) ScenarioResult {
	s.mu.Lock()
	if s.state != ScenarioReset {
		s.mu.Unlock()
		panic("firestarr: Scenario.run called without a preceding reset")
	}
	s.state = ScenarioRunning
	intensity := s.intensity
	weather := s.weather
	ignition := s.ignition
	s.mu.Unlock()

	intensity.ApplyPerimeter(ignition.Perimeter.Burned)

	steps := 0
	cancelled := false
stepLoop:
	for _, w := range weather {
		select {
		case <-ctx.Done():
			cancelled = true
			break stepLoop
		default:
		}
		newlyBurned, err := s.kernel.Step(s.env, intensity, s.fuels, w, s.step.Minutes())
		if err != nil {
			log.Error().Err(err).Msg("spread kernel step failed")
			break stepLoop
		}
		steps++
		if allSurrounded(intensity, newlyBurned) {
			break stepLoop
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cancelled {
		s.state = ScenarioCancelled
	} else {
		s.state = ScenarioCompleted
	}
	s.result = ScenarioResult{
		State:     s.state,
		FireSize:  intensity.FireSize(),
		StepsRun:  steps,
		Perimeter: intensity.Burned(),
	}
	return s.result
}

// allSurrounded reports whether every newly burned cell is fully
// surrounded by burned or unburnable cells, which is this package's
// per-step proxy for "the fire can no longer spread" (§4.6's "a Scenario
// completes early once its fire can no longer grow").
func allSurrounded(intensity *IntensityMap, newlyBurned []Location) bool {
	if len(newlyBurned) == 0 {
		return true
	}
	for _, loc := range newlyBurned {
		if !intensity.IsSurrounded(loc) {
			return false
		}
	}
	return true
}

// State returns s's current lifecycle state.
func (s *Scenario) State() ScenarioState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the outcome of the most recently completed or cancelled
// run.
func (s *Scenario) Result() ScenarioResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Release returns s's IntensityMap to its pool, if any. Call this once s
// will not be reset again.
func (s *Scenario) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.intensity != nil && s.pool != nil {
		s.pool.Put(s.intensity)
		s.intensity = nil
	}
}
