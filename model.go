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
	"math/rand"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/spatialmodel/firestarr/internal/rng"
	"github.com/spatialmodel/firestarr/internal/semaphore"
)

// ConvergenceMode selects how Model decides a save point has enough
// replicates, per §4.8.
type ConvergenceMode int

const (
	// ModeProbabilistic runs scenarios until SafeVector's confidence
	// interval on the mean fire size is within the configured relative
	// error, or maximumTimeSeconds elapses.
	ModeProbabilistic ConvergenceMode = iota
	// ModeDeterministic runs exactly the configured number of scenarios,
	// ignoring the statistical convergence check.
	ModeDeterministic
	// ModeSurface runs one scenario per burnable cell of the Environment,
	// each ignited at that cell, rather than running repeated stochastic
	// replicates of one ignition; per the recorded Open Question decision,
	// maximumTimeSeconds is intentionally ignored in this mode since
	// deterministic enumeration has no principled partial-product
	// semantics for a time cutoff.
	ModeSurface
)

// ModelConfig configures a Model run.
type ModelConfig struct {
	Mode ConvergenceMode

	// Deterministic mode: exact scenario count.
	NumScenarios int

	// Probabilistic mode: Student-t confidence level and target relative
	// error of the confidence interval on the mean fire size.
	Confidence    float64
	RelativeError float64

	// MaximumTimeSeconds bounds wall-clock time spent on a single save
	// point, except in ModeSurface (see above). Zero means unbounded.
	MaximumTimeSeconds float64

	// MinScenarios is the smallest number of replicates run before the
	// probabilistic convergence check is consulted at all, avoiding a
	// spuriously tight interval from 2-3 samples.
	MinScenarios int

	// MaxWorkers bounds how many scenarios run concurrently. Zero means
	// runtime.GOMAXPROCS(0), mirroring the teacher's Calculations
	// concurrency pattern.
	MaxWorkers int

	Step time.Duration

	SaveInterval time.Duration // interim output cadence, §4.8
	OutputDir    string
	Bands        Bands

	Logger zerolog.Logger
}

// Model is the convergence-controlled driver for one simulated fire: it
// repeatedly resets and runs Scenarios against a shared Environment and
// FuelRegistry, folding each completed result into an Iteration's
// SafeVector and a ProbabilityMap, until the configured ConvergenceMode
// says to stop (§4.8, C8).
type Model struct {
	cfg    ModelConfig
	env    *Environment
	fuels  *FuelRegistry
	kernel SpreadKernel

	pool *Pool[*IntensityMap]
	prob *ProbabilityMap
}

// NewModel builds a Model ready to run convergence-controlled scenarios
// against env with fuels and kernel.
func NewModel(cfg ModelConfig, env *Environment, fuels *FuelRegistry, kernel SpreadKernel) *Model {
	unburnable := env.Unburnable()
	pool := NewPool(
		func() *IntensityMap { return NewIntensityMap(env.Grid, unburnable) },
		func(im *IntensityMap) { im.reset(unburnable) },
	)
	return &Model{
		cfg:    cfg,
		env:    env,
		fuels:  fuels,
		kernel: kernel,
		pool:   pool,
		prob:   NewProbabilityMap(env.Grid, cfg.Bands),
	}
}

// Run drives scenarios to convergence for one start time and ignition,
// returning the resulting Iteration and ProbabilityMap. It fans scenarios
// out across a bounded worker pool (a semaphore admission gate plus an
// errgroup to propagate the first fatal error, replacing the teacher's
// raw WaitGroup+channel idiom from Calculations/SteadyStateConvergenceCheck
// now that scenario failures must actually halt the run rather than be
// logged and ignored), and starts a watchdog goroutine that cancels the
// run's context once maximumTimeSeconds elapses (except in ModeSurface,
// per the recorded Open Question decision).
func (m *Model) Run(ctx context.Context, ignition Ignition, weather []FireWeather, start time.Time, lat, lon float64) (*Iteration, *ProbabilityMap, error) {
	it := NewIteration(start)
	startDay := int(start.Unix() / 86400)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	it.SetCancel(cancel)

	if m.cfg.Mode != ModeSurface && m.cfg.MaximumTimeSeconds > 0 {
		timer := time.AfterFunc(time.Duration(m.cfg.MaximumTimeSeconds*float64(time.Second)), func() {
			log.Warn().Msg("convergence watchdog elapsed, promoting interim results to final")
			cancel()
		})
		defer timer.Stop()
	}

	workers := m.cfg.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.New(workers)

	g, gctx := errgroup.WithContext(runCtx)
	progress := LogProgress(m.cfg.Logger)

	lastSave := time.Now()

	// Surface mode (§4.8 mode 2) runs exactly one iteration per distinct
	// burnable cell rather than a fixed or convergence-bounded replicate
	// count, so its target is the enumerated start-cell set, not NumScenarios.
	var startCells []Location
	target := m.cfg.NumScenarios
	if m.cfg.Mode == ModeSurface {
		startCells = m.env.BurnableCells()
		target = len(startCells)
	}
	ran := 0

runLoop:
	for {
		if (m.cfg.Mode == ModeDeterministic || m.cfg.Mode == ModeSurface) && ran >= target {
			break
		}
		if m.cfg.Mode == ModeProbabilistic && ran >= m.cfg.MinScenarios {
			if m.shouldStop(it.Sizes()) {
				break
			}
		}
		select {
		case <-gctx.Done():
			break runLoop
		default:
		}

		if err := sem.Acquire(gctx); err != nil {
			break
		}
		ran++
		index := ran
		g.Go(func() error {
			defer sem.Release()
			draw := weather
			s := NewScenario(m.env, m.fuels, m.kernel, m.cfg.Step, m.pool)
			if m.cfg.Mode == ModeSurface {
				cell := startCells[index-1]
				spreadSeed, extinctionSeed := rng.CellSeeds(startDay, lat, lon, cell.Hash())
				m.cfg.Logger.Debug().
					Int64("spreadSeed", spreadSeed).
					Int64("extinctionSeed", extinctionSeed).
					Int("row", cell.Row).Int("column", cell.Column).
					Msg("surface mode start cell")
				s.resetWithNewStart(cell, draw)
			} else {
				seed := rng.ScenarioSeed(startDay, lat, lon, index)
				draw = jitterWeather(weather, rand.New(rand.NewSource(seed)))
				s.reset(ignition, draw)
			}
			result := s.run(gctx)
			it.RecordResult(result)
			if result.State == ScenarioCompleted {
				im := NewIntensityMap(m.env.Grid, m.env.Unburnable())
				for _, bc := range result.Perimeter {
					im.Burn(bc.Location, bc.Intensity)
				}
				m.prob.AddProbability(im)
			}
			s.Release()
			return nil
		})

		if m.cfg.SaveInterval > 0 && time.Since(lastSave) >= m.cfg.SaveInterval {
			lastSave = time.Now()
			progress(it.ID().String(), it.Sizes(), m.cfg.Confidence)
			if m.cfg.OutputDir != "" {
				if err := m.prob.SaveAll(m.cfg.OutputDir, start, time.Now(), true, ignition.Perimeter.Edge, Processing); err != nil {
					log.Error().Err(err).Msg("failed to write interim probability output")
				}
			}
		}
	}

	if err := g.Wait(); err != nil {
		return it, m.prob, err
	}

	if m.cfg.OutputDir != "" {
		if err := m.prob.SaveAll(m.cfg.OutputDir, start, time.Now(), false, ignition.Perimeter.Edge, Processed); err != nil {
			return it, m.prob, err
		}
	}

	return it, m.prob, nil
}

// shouldStop reports whether the probabilistic convergence criterion is
// currently satisfied for sizes.
func (m *Model) shouldStop(sizes *SafeVector) bool {
	st := sizes.GetStatistics(m.cfg.Confidence)
	return st.N >= 2 && st.ConfidenceWidth <= m.cfg.RelativeError*st.Mean
}

// jitterWeather returns a copy of weather with wind direction and speed
// perturbed by r, representing the sub-grid turbulence that makes each
// Monte-Carlo replicate a distinct draw rather than a deterministic
// replay of the same forecast. Wind direction gets normally distributed
// noise with a standard deviation of 15 degrees; wind speed is scaled by a
// factor drawn from N(1, 0.1), floored at zero.
func jitterWeather(weather []FireWeather, r *rand.Rand) []FireWeather {
	draw := make([]FireWeather, len(weather))
	for i, w := range weather {
		w.WindDirection = NormalizeAspect(w.WindDirection + r.NormFloat64()*15)
		w.WindSpeed *= 1 + r.NormFloat64()*0.1
		if w.WindSpeed < 0 {
			w.WindSpeed = 0
		}
		draw[i] = w
	}
	return draw
}
