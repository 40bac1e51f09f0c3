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
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SafeVector is the running collection of final fire sizes an Iteration's
// scenarios append to as they complete (§4.7, C10). Values are kept in
// sorted order as they're inserted so percentile queries never need a
// separate sort pass, and every method takes an internal mutex so
// scenarios running on different goroutines can append concurrently.
type SafeVector struct {
	mu     sync.Mutex
	values []float64
}

// NewSafeVector returns an empty SafeVector.
func NewSafeVector() *SafeVector {
	return &SafeVector{}
}

// Add inserts v in sorted position.
func (s *SafeVector) Add(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := sort.SearchFloat64s(s.values, v)
	s.values = append(s.values, 0)
	copy(s.values[i+1:], s.values[i:])
	s.values[i] = v
}

// Len returns the number of values added so far.
func (s *SafeVector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Values returns a sorted snapshot of the accumulated values.
func (s *SafeVector) Values() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.values...)
}

// Statistics summarizes a SafeVector's current contents for the
// convergence check (§4.8).
type Statistics struct {
	N               int
	Mean            float64
	StdDev          float64
	StandardError   float64
	ConfidenceWidth float64 // half-width of the two-sided confidence interval on the mean
}

// GetStatistics computes the sample mean, standard deviation, and a
// Student-t confidence interval half-width at the given confidence level
// (e.g. 0.95) for the values accumulated so far. With fewer than 2 values
// the confidence width is reported as +Inf, since no interval can be
// formed.
func (s *SafeVector) GetStatistics(confidence float64) Statistics {
	values := s.Values()
	n := len(values)
	if n == 0 {
		return Statistics{ConfidenceWidth: math.Inf(1)}
	}
	mean := stat.Mean(values, nil)
	if n == 1 {
		return Statistics{N: 1, Mean: mean, ConfidenceWidth: math.Inf(1)}
	}
	sd := stat.StdDev(values, nil)
	se := sd / math.Sqrt(float64(n))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	crit := t.Quantile(1 - (1-confidence)/2)
	return Statistics{
		N:               n,
		Mean:            mean,
		StdDev:          sd,
		StandardError:   se,
		ConfidenceWidth: crit * se,
	}
}

// RunsRequired estimates, via the Student-t interval currently implied by
// the accumulated values, how many more runs would be needed to bring
// the confidence interval's half-width (relative to the mean) below
// relativeError, per §4.8's "convergence when the confidence interval on
// the mean fire size is within relativeError of the mean." Returns 0 once
// the current sample already satisfies the target.
func (s *SafeVector) RunsRequired(confidence, relativeError float64) int {
	st := s.GetStatistics(confidence)
	if st.N < 2 || st.Mean == 0 {
		return 0
	}
	target := relativeError * st.Mean
	if st.ConfidenceWidth <= target {
		return 0
	}
	// Confidence width shrinks roughly as 1/sqrt(n); solve for the n that
	// would bring it down to target, holding t approximately fixed.
	ratio := st.ConfidenceWidth / target
	needed := int(ratio*ratio*float64(st.N)) - st.N
	if needed < 1 {
		needed = 1
	}
	return needed
}
