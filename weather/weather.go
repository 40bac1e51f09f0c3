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

// Package weather parses the hourly weather CSV format (§6.2) into
// per-scenario streams of firestarr.FireWeather, and derives the daily
// series each Scenario's ignition and fuel behaviour need.
package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	firestarr "github.com/spatialmodel/firestarr"
)

// header is the exact, ordered column list required by §6.2.
var header = []string{"Scenario", "Date", "PREC", "TEMP", "RH", "WS", "WD", "FFMC", "DMC", "DC", "ISI", "BUI", "FWI"}

const dateLayout = "2006-01-02 15:04:05"

// Row is one parsed line of the weather CSV.
type Row struct {
	Scenario int
	Date     time.Time
	Precip   float64
	Temp     float64
	RH       float64
	WS       float64
	WD       float64
	FFMC, DMC, DC, ISI, BUI, FWI float64
}

// Stream is one scenario id's validated hourly rows, plus the derived
// daily series taken at each day's 12:00 row (§4.2).
type Stream struct {
	ScenarioID int
	hourly     []Row
	daily      map[string]Row // keyed by YYYY-MM-DD
}

// Parse reads a weather CSV from r, validates it per §4.2, and returns
// one Stream per distinct scenario id, keyed by that id. yesterdayPrecip
// seeds the 24-hour accumulated precipitation window for each stream's
// first 24 hours.
func Parse(r io.Reader, yesterdayPrecip float64) (map[int]*Stream, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	rawHeader, err := cr.Read()
	if err != nil {
		return nil, &firestarr.WeatherInputError{Msg: "could not read header: " + err.Error()}
	}
	if len(rawHeader) != len(header) {
		return nil, &firestarr.WeatherInputError{Msg: "wrong number of header columns"}
	}
	for i, want := range header {
		if rawHeader[i] != want {
			return nil, &firestarr.WeatherInputError{Msg: fmt.Sprintf("column %d is %q, want %q", i, rawHeader[i], want)}
		}
	}

	byScenario := make(map[int][]Row)
	lineNum := 1
	for {
		lineNum++
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &firestarr.WeatherInputError{Msg: err.Error(), Line: lineNum}
		}
		row, err := parseRow(rec, lineNum)
		if err != nil {
			return nil, err
		}
		byScenario[row.Scenario] = append(byScenario[row.Scenario], row)
	}

	if len(byScenario) == 0 {
		return nil, &firestarr.WeatherInputError{Msg: "no data rows"}
	}

	streams := make(map[int]*Stream, len(byScenario))
	var minDay, maxDay time.Time
	for id, rows := range byScenario {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
		if err := validateHourly(rows); err != nil {
			return nil, err
		}
		s := &Stream{ScenarioID: id, hourly: rows}
		s.buildDaily(yesterdayPrecip)
		streams[id] = s

		first, last := rows[0].Date, rows[len(rows)-1].Date
		if minDay.IsZero() || first.Before(minDay) {
			minDay = first
		}
		if maxDay.IsZero() || last.After(maxDay) {
			maxDay = last
		}
	}

	for _, s := range streams {
		if s.hourly[0].Date.Year() != s.hourly[len(s.hourly)-1].Date.Year() {
			return nil, &firestarr.WeatherInputError{Msg: fmt.Sprintf("scenario %d crosses a year boundary", s.ScenarioID)}
		}
	}

	return streams, nil
}

// validateHourly checks that rows (already sorted by date) are strictly
// hourly, per §4.2's "Δ = 3600 s" rule.
func validateHourly(rows []Row) error {
	for i := 1; i < len(rows); i++ {
		delta := rows[i].Date.Sub(rows[i-1].Date)
		if delta != time.Hour {
			return &firestarr.WeatherInputError{Msg: fmt.Sprintf("scenario %d: non-hourly gap of %v between rows", rows[i].Scenario, delta)}
		}
	}
	return nil
}

func parseRow(rec []string, line int) (Row, error) {
	var row Row
	var err error
	row.Scenario, err = atoi(rec[0])
	if err != nil {
		return row, &firestarr.WeatherInputError{Msg: "bad Scenario: " + err.Error(), Line: line}
	}
	row.Date, err = time.Parse(dateLayout, rec[1])
	if err != nil {
		return row, &firestarr.WeatherInputError{Msg: "bad Date: " + err.Error(), Line: line}
	}
	fields := []*float64{&row.Precip, &row.Temp, &row.RH, &row.WS, &row.WD, &row.FFMC, &row.DMC, &row.DC, &row.ISI, &row.BUI, &row.FWI}
	for i, f := range fields {
		*f, err = atof(rec[2+i])
		if err != nil {
			return row, &firestarr.WeatherInputError{Msg: fmt.Sprintf("bad %s: %v", header[2+i], err), Line: line}
		}
	}
	if row.Precip < 0 {
		return row, &firestarr.WeatherInputError{Msg: "negative precipitation", Line: line}
	}
	return row, nil
}

// buildDaily computes the 24-hour accumulated precipitation at each day's
// 12:00 row and stores the resulting daily rows keyed by date.
func (s *Stream) buildDaily(yesterdayPrecip float64) {
	s.daily = make(map[string]Row)
	for i, row := range s.hourly {
		if row.Date.Hour() != 12 {
			continue
		}
		sum := 0.0
		for h := 0; h < 24; h++ {
			idx := i - h
			if idx >= 0 {
				sum += s.hourly[idx].Precip
			} else {
				sum += yesterdayPrecip / 24
			}
		}
		daily := row
		daily.Precip = sum
		s.daily[row.Date.Format("2006-01-02")] = daily
	}
}

// At returns the FireWeather for one hourly row on the given day, hour.
func (s *Stream) At(day time.Time, hour int) (firestarr.FireWeather, bool) {
	target := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	for _, row := range s.hourly {
		if row.Date.Equal(target) {
			return row.toFireWeather(), true
		}
	}
	return firestarr.FireWeather{}, false
}

// Daily returns the derived daily-series row for day, if one was built.
func (s *Stream) Daily(day time.Time) (firestarr.FireWeather, bool) {
	row, ok := s.daily[day.Format("2006-01-02")]
	if !ok {
		return firestarr.FireWeather{}, false
	}
	return row.toFireWeather(), true
}

// MinDate returns the earliest hourly timestamp in the stream.
func (s *Stream) MinDate() time.Time { return s.hourly[0].Date }

// MaxDate returns the latest hourly timestamp in the stream.
func (s *Stream) MaxDate() time.Time { return s.hourly[len(s.hourly)-1].Date }

// Hourly returns every hourly row, in chronological order, converted to
// FireWeather -- the sequence a Scenario steps its SpreadKernel through.
func (s *Stream) Hourly() []firestarr.FireWeather {
	out := make([]firestarr.FireWeather, len(s.hourly))
	for i, row := range s.hourly {
		out[i] = row.toFireWeather()
	}
	return out
}

func (r Row) toFireWeather() firestarr.FireWeather {
	return firestarr.FireWeather{
		Time:          r.Date,
		Temperature:   r.Temp,
		RelativeHumidity: r.RH,
		WindSpeed:     r.WS,
		WindDirection: r.WD,
		FFMC:          r.FFMC,
		DMC:           r.DMC,
		DC:            r.DC,
		ISI:           r.ISI,
		BUI:           r.BUI,
		FWI:           r.FWI,
	}
}

func atoi(s string) (int, error) {
	return strconv.Atoi(s)
}

func atof(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
