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

// Package rng derives deterministic, independent random seeds for the
// two RNG streams (spread and extinction) that drive a Scenario's spread
// kernel, from the values that uniquely identify a run: the start day,
// latitude and longitude. Runs with the same three inputs always produce
// the same seeds, and therefore the same results, regardless of how many
// workers or threads execute the simulation.
package rng

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Stream tags, mirroring the two independent RNG streams a Scenario seeds:
// spread thresholds (0) and extinction thresholds (1).
const (
	StreamSpread     = 0
	StreamExtinction = 1
)

// Seed returns the deterministic seed for the given stream tag, derived
// from startDay (days since the epoch used by the weather stream), and
// the ignition latitude/longitude in degrees.
func Seed(startDay int, lat, lon float64, tag int) int64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(startDay)))
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lat))
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lon))
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(tag)))
	h.Write(buf[:])

	s := int64(h.Sum64())
	if s == 0 {
		// math/rand treats a zero seed as valid, but reserve it so a caller
		// can distinguish "unseeded" from "seeded to zero" if it ever needs to.
		s = 1
	}
	return s
}

// Seeds returns the (spread, extinction) seed pair for a scenario reset.
func Seeds(startDay int, lat, lon float64) (spread, extinction int64) {
	return Seed(startDay, lat, lon, StreamSpread), Seed(startDay, lat, lon, StreamExtinction)
}

// CellSeed returns the deterministic seed for the given stream tag in
// surface mode, where every burnable cell gets its own independent start
// and therefore needs a seed that also depends on the cell hash.
func CellSeed(startDay int, lat, lon float64, cellHash int64, tag int) int64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(startDay)))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lat))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lon))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(cellHash))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(tag)))
	h.Write(buf[:])

	s := int64(h.Sum64())
	if s == 0 {
		s = 1
	}
	return s
}

// CellSeeds returns the (spread, extinction) seed pair for a surface-mode
// iteration starting at cellHash.
func CellSeeds(startDay int, lat, lon float64, cellHash int64) (spread, extinction int64) {
	return CellSeed(startDay, lat, lon, cellHash, StreamSpread), CellSeed(startDay, lat, lon, cellHash, StreamExtinction)
}

// ScenarioSeed returns the deterministic seed for the index'th Monte-Carlo
// replicate of a (startDay, lat, lon) run. Each replicate draws independent
// weather jitter from this seed, so two runs with the same inputs -- and
// the same number of completed replicates -- reproduce bit-for-bit
// regardless of how many workers executed them.
func ScenarioSeed(startDay int, lat, lon float64, index int) int64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(startDay)))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lat))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lon))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(index)))
	h.Write(buf[:])

	s := int64(h.Sum64())
	if s == 0 {
		s = 1
	}
	return s
}
