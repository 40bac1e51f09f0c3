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
	"time"

	"github.com/rs/zerolog"
)

// ProgressLogger is returned by LogProgress and called by Model.Run once
// per SaveInterval. It reports elapsed walltime and a running convergence
// estimate, the fire-simulation analog of the teacher's run.go Log
// DomainManipulator, which logs iteration count, walltime and simulated
// days once per model time step.
type ProgressLogger func(runID string, sizes *SafeVector, confidence float64)

// LogProgress returns a ProgressLogger that writes one log line per call
// to logger, at zerolog's Info level, reporting the number of replicates
// run so far, the running mean fire size, and the current confidence
// interval half-width.
func LogProgress(logger zerolog.Logger) ProgressLogger {
	startTime := time.Now()
	return func(runID string, sizes *SafeVector, confidence float64) {
		st := sizes.GetStatistics(confidence)
		logger.Info().
			Str("runID", runID).
			Int("scenarios", st.N).
			Float64("meanSizeHa", st.Mean).
			Float64("confidenceWidth", st.ConfidenceWidth).
			Dur("elapsed", time.Since(startTime)).
			Msg("convergence progress")
	}
}
