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

package fwi

import (
	"math"
	"testing"

	"github.com/spatialmodel/firestarr/science/fwi/fwitest"
)

// TestMoistureFFMCRoundTrip checks the bijection m = K*(101-F)/(59.5+F):
// converting an FFMC to moisture and back should return the original
// value to within 1e-9 (§8).
func TestMoistureFFMCRoundTrip(t *testing.T) {
	for f := 0.0; f < 101; f += 0.5 {
		m := FFMCToMoisture(Ffmc(f))
		got := MoistureToFFMC(m)
		if math.Abs(float64(got)-f) > 1e-9 {
			t.Errorf("FFMC %v: round trip gave %v", f, got)
		}
	}
}

// TestFFMCZeroWindZeroPrecipStable checks that with zero wind, zero
// precipitation, and weather that leaves moisture content near
// equilibrium, FFMC on successive days changes only slightly (§8).
func TestFFMCZeroWindZeroPrecipStable(t *testing.T) {
	h := fwitest.ZeroPrecipDay46N[0]
	f0 := Ffmc(fwitest.StartFFMC)
	f1 := FFMC(h.Temp, h.RH, h.WS, h.Precip, float64(f0))
	for i := 0; i < 5; i++ {
		f1 = FFMC(h.Temp, h.RH, h.WS, h.Precip, float64(f1))
	}
	f2 := FFMC(h.Temp, h.RH, h.WS, h.Precip, float64(f1))
	if math.Abs(float64(f2-f1)) > 0.1 {
		t.Errorf("FFMC moved by %v between equilibrium days, want <= 0.1", f2-f1)
	}
}

// TestZeroPrecipStream runs 240 hourly steps (ten days) of zero-precip
// weather and checks the end-of-stream bounds from §8's acceptance
// scenario: FFMC within [88, 96], DC strictly non-decreasing.
func TestZeroPrecipStream(t *testing.T) {
	h := fwitest.ZeroPrecipDay46N[0]
	f := Ffmc(fwitest.StartFFMC)
	dc := Dc(fwitest.StartDC)
	prevDC := dc
	for hour := 0; hour < 240; hour++ {
		f = FFMC(h.Temp, h.RH, h.WS, h.Precip, float64(f))
		if hour%24 == 23 {
			dc = DC(h.Temp, h.Precip, float64(dc), fwitest.Month, fwitest.Latitude)
			if dc < prevDC {
				t.Errorf("DC decreased: %v -> %v", prevDC, dc)
			}
			prevDC = dc
		}
	}
	if f < 88 || f > 96 {
		t.Errorf("end-of-stream FFMC = %v, want in [88, 96]", f)
	}
}

// TestFWIDominance checks that increasing BUI while holding ISI fixed
// never decreases FWI (§8's "Dominance" property).
func TestFWIDominance(t *testing.T) {
	isi := Isi(8.0)
	bui1 := Bui(40.0)
	bui2 := Bui(80.0)
	fwi1 := FWI(isi, bui1)
	fwi2 := FWI(isi, bui2)
	if fwi2 < fwi1 {
		t.Errorf("FWI(bui=%v) = %v < FWI(bui=%v) = %v, want non-decreasing", bui2, fwi2, bui1, fwi1)
	}
}

// TestCheckISIUsesRecomputed verifies the recompute-and-warn policy: a
// stored value that disagrees with the recomputed one is discarded in
// favor of the recomputed value rather than causing an error.
func TestCheckISIUsesRecomputed(t *testing.T) {
	ffmc := Ffmc(88)
	ws := 15.0
	wrong := Isi(999)
	got := CheckISI(ws, ffmc, &wrong)
	want := ISI(ws, ffmc)
	if got != want {
		t.Errorf("CheckISI = %v, want recomputed value %v", got, want)
	}
}

func TestRHClamping(t *testing.T) {
	over := FFMC(20, 150, 10, 0, 85)
	under := FFMC(20, -10, 10, 0, 85)
	clampedHigh := FFMC(20, 100, 10, 0, 85)
	clampedLow := FFMC(20, 0, 10, 0, 85)
	if over != clampedHigh {
		t.Errorf("RH=150 not clamped to 100: got %v, want %v", over, clampedHigh)
	}
	if under != clampedLow {
		t.Errorf("RH=-10 not clamped to 0: got %v, want %v", under, clampedLow)
	}
}
