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

// Package fwi implements the Canadian Forest Fire Weather Index System:
// FFMC, DMC, DC, ISI, BUI and FWI, plus the moisture-content bijection
// FFMC is built on. All functions are pure, except that CheckISI,
// CheckBUI and CheckFWI log a warning when the values they compare differ.
package fwi

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Invalid is the sentinel value for an index that has not been computed.
const Invalid = -1.0

// Ffmc, Dmc, Dc, Isi, Bui and Fwi are the six derived indices. Each is a
// distinct named float64 so a caller can't pass a DC where an FFMC is
// expected.
type (
	Ffmc float64
	Dmc  float64
	Dc   float64
	Isi  float64
	Bui  float64
	Fwi  float64
)

// dayLengthDMC is the DMC effective day-length factor by month (northern
// hemisphere, Van Wagner 1987 Table 2).
var dayLengthDMC = [12]float64{6.5, 7.5, 9.0, 12.8, 13.9, 13.9, 12.4, 10.9, 9.4, 8.0, 7.0, 6.0}

// dayLengthDC is the DC effective day-length factor by month (northern
// hemisphere, Van Wagner 1987 Table 3).
var dayLengthDC = [12]float64{-1.6, -1.6, -1.6, 0.9, 3.8, 5.8, 6.4, 5.0, 2.4, 0.4, -1.6, -1.6}

// clampRH clamps relative humidity to [0, 100], per §4.1's "fails with
// InvalidInput only on out-of-range RH -- RH is clamped to [0, 100]".
func clampRH(rh float64) float64 {
	if rh < 0 {
		return 0
	}
	if rh > 100 {
		return 100
	}
	return rh
}

// ffmcK is the shared constant the FFMC/moisture bijection is built on:
// K = 250*59.5/101. MoistureToFFMC and FFMCToMoisture must use the same
// value of K or they stop being exact inverses of one another.
const ffmcK = 250 * 59.5 / 101

// MoistureToFFMC converts a fine fuel moisture content m (percent) to its
// equivalent FFMC code, the inverse of FFMCToMoisture.
func MoistureToFFMC(m float64) Ffmc {
	return Ffmc(59.5 * (250 - m) / (ffmcK + m))
}

// FFMCToMoisture converts an FFMC code to fine fuel moisture content
// (percent), via m = K*(101-F)/(59.5+F).
func FFMCToMoisture(f Ffmc) float64 {
	return ffmcK * (101 - float64(f)) / (59.5 + float64(f))
}

// FFMC computes the Fine Fuel Moisture Code for one hour given
// temperature (C), relative humidity (percent), wind speed (km/h),
// 24-hour accumulated precipitation (mm), and the previous period's
// FFMC.
func FFMC(temp, rh, ws, precip24, ffmcPrev float64) Ffmc {
	rh = clampRH(rh)
	mo := FFMCToMoisture(Ffmc(ffmcPrev))

	if precip24 > 0.5 {
		rf := precip24 - 0.5
		if mo > 150 {
			mo = mo + 42.5*rf*math.Exp(-100/(251-mo))*(1-math.Exp(-6.93/rf)) +
				0.0015*(mo-150)*(mo-150)*math.Sqrt(rf)
		} else {
			mo = mo + 42.5*rf*math.Exp(-100/(251-mo))*(1-math.Exp(-6.93/rf))
		}
		if mo > 250 {
			mo = 250
		}
	}

	ed := 0.942*math.Pow(rh, 0.679) + 11*math.Exp((rh-100)/10) +
		0.18*(21.1-temp)*(1-math.Exp(-0.115*rh))
	ew := 0.618*math.Pow(rh, 0.753) + 10*math.Exp((rh-100)/10) +
		0.18*(21.1-temp)*(1-math.Exp(-0.115*rh))

	switch {
	case mo < ed && mo < ew:
		kl := 0.424*(1-math.Pow((100-rh)/100, 1.7)) +
			0.0694*math.Sqrt(ws)*(1-math.Pow((100-rh)/100, 8))
		kw := kl * 0.581 * math.Exp(0.0365*temp)
		mo = ew - (ew-mo)/math.Pow(10, kw)
	case mo > ed:
		ko := 0.424*(1-math.Pow(rh/100, 1.7)) +
			0.0694*math.Sqrt(ws)*(1-math.Pow(rh/100, 8))
		kd := ko * 0.581 * math.Exp(0.0365*temp)
		mo = ed + (mo-ed)/math.Pow(10, kd)
	}

	return MoistureToFFMC(mo)
}

// DMC computes the Duff Moisture Code for one day given temperature (C),
// relative humidity (percent), 24-hour precipitation (mm), the previous
// day's DMC, the 1-indexed month, and latitude (degrees), used to select
// the effective day length.
func DMC(temp, rh, precip24, dmcPrev float64, month int, lat float64) Dmc {
	rh = clampRH(rh)
	if temp < -1.1 {
		temp = -1.1
	}

	pe := 1.894 * (temp + 1.1) * (100 - rh) * dayLength(dayLengthDMC, month, lat) * 1e-4
	if pe < 0 {
		pe = 0
	}

	p := dmcPrev
	if precip24 > 1.5 {
		re := 0.92*precip24 - 1.27
		mo := 20 + math.Exp(5.6348-dmcPrev/43.43)
		var b float64
		switch {
		case dmcPrev <= 33:
			b = 100 / (0.5 + 0.3*dmcPrev)
		case dmcPrev <= 65:
			b = 14 - 1.3*math.Log(dmcPrev)
		default:
			b = 6.2*math.Log(dmcPrev) - 17.2
		}
		mr := mo + 1000*re/(48.77+b*re)
		pr := 244.72 - 43.43*math.Log(mr-20)
		if pr < 0 {
			pr = 0
		}
		p = pr
	}

	return Dmc(p + pe)
}

// DC computes the Drought Code for one day given temperature (C), 24-hour
// precipitation (mm), the previous day's DC, the 1-indexed month, and
// latitude (degrees).
func DC(temp, precip24, dcPrev float64, month int, lat float64) Dc {
	if temp < -2.8 {
		temp = -2.8
	}
	pe := (0.36*(temp+2.8) + dayLength(dayLengthDC, month, lat)) / 2
	if pe < 0 {
		pe = 0
	}

	d := dcPrev
	if precip24 > 2.8 {
		rd := 0.83*precip24 - 1.27
		qo := 800 * math.Exp(-dcPrev/400)
		qr := qo + 3.937*rd
		dr := 400 * math.Log(800/qr)
		if dr < 0 {
			dr = 0
		}
		d = dr
	}

	return Dc(d + pe)
}

// dayLength selects an effective day-length factor from table by month,
// adjusting for hemisphere by latitude sign.
func dayLength(table [12]float64, month int, lat float64) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	idx := month - 1
	if lat < 0 {
		idx = (idx + 6) % 12
	}
	return table[idx]
}

// ISI computes the Initial Spread Index from wind speed (km/h) and FFMC.
func ISI(ws float64, ffmc Ffmc) Isi {
	mo := FFMCToMoisture(ffmc)
	ff := 91.9 * math.Exp(-0.1386*mo) * (1 + math.Pow(mo, 5.31)/4.93e7)
	return Isi(0.208 * math.Exp(0.05039*ws) * ff)
}

// BUI computes the Buildup Index from DMC and DC.
func BUI(dmc Dmc, dc Dc) Bui {
	p, d := float64(dmc), float64(dc)
	if p <= 0.4*d {
		if p+d == 0 {
			return 0
		}
		return Bui(0.8 * p * d / (p + 0.4*d))
	}
	return Bui(p - (1-0.8*d/(p+0.4*d))*(0.92+math.Pow(0.0114*p, 1.7)))
}

// FWI computes the Fire Weather Index from ISI and BUI.
func FWI(isi Isi, bui Bui) Fwi {
	var fd float64
	b := float64(bui)
	switch {
	case b <= 80:
		fd = 0.626*math.Pow(b, 0.809) + 2
	default:
		fd = 1000 / (25 + 108.64*math.Exp(-0.023*b))
	}
	bb := 0.1 * float64(isi) * fd

	var s float64
	switch {
	case bb <= 1:
		s = bb
	default:
		s = math.Exp(2.72 * math.Pow(0.434*math.Log(bb), 0.647))
	}
	return Fwi(s)
}

// CheckISI recomputes ISI from ws and ffmc; if stored is supplied (not
// nil) and differs from the recomputed value by more than 1e-6, it logs a
// warning and returns the recomputed value rather than stored (§4.1).
func CheckISI(ws float64, ffmc Ffmc, stored *Isi) Isi {
	computed := ISI(ws, ffmc)
	if stored != nil && math.Abs(float64(*stored-computed)) > 1e-6 {
		log.Warn().Float64("stored", float64(*stored)).Float64("recomputed", float64(computed)).Msg("ISI mismatch, using recomputed value")
	}
	return computed
}

// CheckBUI recomputes BUI from dmc and dc, applying the same
// recompute-and-warn policy as CheckISI.
func CheckBUI(dmc Dmc, dc Dc, stored *Bui) Bui {
	computed := BUI(dmc, dc)
	if stored != nil && math.Abs(float64(*stored-computed)) > 1e-6 {
		log.Warn().Float64("stored", float64(*stored)).Float64("recomputed", float64(computed)).Msg("BUI mismatch, using recomputed value")
	}
	return computed
}

// CheckFWI recomputes FWI from isi and bui, applying the same
// recompute-and-warn policy as CheckISI.
func CheckFWI(isi Isi, bui Bui, stored *Fwi) Fwi {
	computed := FWI(isi, bui)
	if stored != nil && math.Abs(float64(*stored-computed)) > 1e-6 {
		log.Warn().Float64("stored", float64(*stored)).Float64("recomputed", float64(computed)).Msg("FWI mismatch, using recomputed value")
	}
	return computed
}
