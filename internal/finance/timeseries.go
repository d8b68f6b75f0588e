// Package finance is the analytics core of the tracker: pure, stateless
// functions that turn sparse daily price observations into normalized time
// series, per-product indicators, the chained ISP-FR market index and
// per-series rollups. Nothing in this package performs I/O or retains state
// between calls; callers own all inputs and outputs.
package finance

import (
	"math"
	"sort"
	"time"
)

const dayMillis = 86_400_000

// RawPricePoint is one observed lowest-ask price as delivered by the
// ingestion jobs. Date is an ISO-8601-ish string and may be malformed;
// Price may be non-finite or non-positive. Normalize filters both out.
type RawPricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SeriesPoint is one normalized observation: at most one per UTC calendar
// day. DayIndex is an absolute day counter (epoch millis of the UTC-floored
// date divided by 86,400,000), usable for calendar arithmetic. Gaps between
// consecutive DayIndex values are allowed and meaningful.
type SeriesPoint struct {
	DayIndex int64
	Date     time.Time
	Price    float64
}

// WindowedSeries is an ordered, deduplicated-by-day price series.
// Points ascend strictly by DayIndex. Last references the final point, nil
// when the series is empty. Immutable once built; slicing builds a new one.
type WindowedSeries struct {
	Points []SeriesPoint
	Last   *SeriesPoint
}

// rawDateLayouts are tried in order when parsing observation dates.
var rawDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseRawDate(s string) (time.Time, bool) {
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DayIndexOf returns the absolute day index of t's UTC calendar date.
func DayIndexOf(t time.Time) int64 {
	u := t.UTC()
	floored := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return floored.UnixMilli() / dayMillis
}

// DateOfDayIndex is the inverse of DayIndexOf: midnight UTC of the day.
func DateOfDayIndex(day int64) time.Time {
	return time.UnixMilli(day * dayMillis).UTC()
}

// Normalize turns an arbitrary-order list of raw observations into a clean
// WindowedSeries: entries with unparseable dates or non-positive/non-finite
// prices are dropped, entries are grouped by UTC calendar day with the
// latest timestamp winning within a day, and the result is sorted ascending.
// Empty or fully-invalid input yields an empty series, never an error:
// downstream metrics treat that as "no data".
func Normalize(raw []RawPricePoint) *WindowedSeries {
	type candidate struct {
		observedAt time.Time
		price      float64
	}
	byDay := make(map[int64]candidate)

	for _, rp := range raw {
		if math.IsNaN(rp.Price) || math.IsInf(rp.Price, 0) || rp.Price <= 0 {
			continue
		}
		t, ok := parseRawDate(rp.Date)
		if !ok {
			continue
		}
		day := DayIndexOf(t)
		if existing, seen := byDay[day]; !seen || t.After(existing.observedAt) {
			byDay[day] = candidate{observedAt: t, price: rp.Price}
		}
	}

	days := make([]int64, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	series := &WindowedSeries{Points: make([]SeriesPoint, 0, len(days))}
	for _, day := range days {
		series.Points = append(series.Points, SeriesPoint{
			DayIndex: day,
			Date:     DateOfDayIndex(day),
			Price:    byDay[day].price,
		})
	}
	if n := len(series.Points); n > 0 {
		series.Last = &series.Points[n-1]
	}
	return series
}

// SliceLastNDays returns the trailing calendar window of the series,
// anchored to the series' own last point rather than to "today": all points
// whose day index is within days-1 of the last point's day index. An empty
// series slices to an empty series.
func SliceLastNDays(s *WindowedSeries, days int) *WindowedSeries {
	out := &WindowedSeries{Points: []SeriesPoint{}}
	if s == nil || s.Last == nil || days <= 0 {
		return out
	}
	cutoff := s.Last.DayIndex - int64(days-1)
	for _, p := range s.Points {
		if p.DayIndex >= cutoff {
			out.Points = append(out.Points, p)
		}
	}
	if n := len(out.Points); n > 0 {
		out.Last = &out.Points[n-1]
	}
	return out
}

// ExpectedDaysInWindow is the coverage denominator for a trailing window:
// the full window size when the series has any data at all, 0 otherwise.
// It is deliberately not a strict calendar check; sparse series are expected.
func ExpectedDaysInWindow(s *WindowedSeries, days int) int {
	if s == nil || len(s.Points) == 0 {
		return 0
	}
	return days
}
