package finance

import (
	"math"
	"sort"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// ISP-FR: the catalog-wide chained price index, base 100.
//
// The index compounds day-over-day mean relative changes of the products
// observed on both of two consecutive data days, instead of repricing a
// fixed basket. The defining correctness property is non-retroactivity: a
// product first observed on day D contributes from D onward and can never
// alter any index point before D, so the catalog growing over time does not
// distort history.

const indexBase = 100.0

// Index summary thresholds.
const (
	indexOvervalued  = 150.0
	indexUndervalued = 80.0
	trendThreshold   = 0.02
)

// IndexItem is one product as the index builder sees it: identification,
// retail price for qualification, and its raw observations.
type IndexItem struct {
	ID          string
	Name        string
	RetailPrice float64
	Prices      []RawPricePoint
}

// ComputeISPFromItems filters the catalog down to qualifying products
// (at least one observation and a positive retail price) and builds the
// chained index from them.
func ComputeISPFromItems(items []IndexItem) []model.ISPIndexPoint {
	qualified := make([]IndexItem, 0, len(items))
	for _, it := range items {
		if it.RetailPrice > 0 && len(it.Prices) > 0 {
			qualified = append(qualified, it)
		}
	}
	return BuildISPIndex(qualified)
}

// BuildISPIndex builds the chained index over the given items. The earliest
// day with data anywhere seeds the index at 100 with dailyChange 0; every
// subsequent data day compounds the mean relative change of the items
// priced on both that day and its predecessor in the day list. When no
// items overlap between two consecutive data days the index carries forward
// flat (mean change 0), a deliberate policy for thin catalogs.
func BuildISPIndex(items []IndexItem) []model.ISPIndexPoint {
	perItem := make([]map[int64]float64, 0, len(items))
	daySet := make(map[int64]struct{})
	for _, it := range items {
		series := Normalize(it.Prices)
		if len(series.Points) == 0 {
			continue
		}
		byDay := make(map[int64]float64, len(series.Points))
		for _, p := range series.Points {
			byDay[p.DayIndex] = p.Price
			daySet[p.DayIndex] = struct{}{}
		}
		perItem = append(perItem, byDay)
	}
	if len(daySet) == 0 {
		return []model.ISPIndexPoint{}
	}

	days := make([]int64, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	history := make([]model.ISPIndexPoint, 0, len(days))

	firstCount := 0
	for _, byDay := range perItem {
		if _, ok := byDay[days[0]]; ok {
			firstCount++
		}
	}
	value := indexBase
	history = append(history, model.ISPIndexPoint{
		Date:        DateOfDayIndex(days[0]),
		Value:       value,
		ItemCount:   firstCount,
		DailyChange: 0,
	})

	for i := 1; i < len(days); i++ {
		prevDay, day := days[i-1], days[i]
		var sumChange float64
		overlap := 0
		for _, byDay := range perItem {
			before, okBefore := byDay[prevDay]
			after, okAfter := byDay[day]
			if okBefore && okAfter && before > 0 {
				sumChange += SimpleReturn(before, after)
				overlap++
			}
		}
		avgChange := 0.0
		if overlap > 0 {
			avgChange = sumChange / float64(overlap)
		}
		value *= 1 + avgChange
		history = append(history, model.ISPIndexPoint{
			Date:        DateOfDayIndex(day),
			Value:       value,
			ItemCount:   overlap,
			DailyChange: avgChange,
		})
	}
	return history
}

// ComputeISPSummary derives the dashboard view over the full index history.
// Lookback changes anchor to the nearest point at or before now minus the
// horizon, scanning backward from the most recent point. An empty history
// yields a neutral summary: value 100, nil changes, fairly valued.
func ComputeISPSummary(history []model.ISPIndexPoint, now time.Time) model.ISPIndexSummary {
	summary := model.ISPIndexSummary{
		Current:      indexBase,
		Trend:        model.TrendStable,
		MarketStatus: model.MarketFairlyValued,
		History:      []model.ISPIndexPoint{},
	}
	if len(history) == 0 {
		return summary
	}

	last := history[len(history)-1]
	summary.Current = last.Value
	summary.History = history
	lastDate := last.Date
	summary.LastUpdated = &lastDate
	summary.ChangeSince = (last.Value - indexBase) / indexBase

	summary.Change7d = changeOverLookback(history, last.Value, now, 7)
	summary.Change30d = changeOverLookback(history, last.Value, now, 30)
	summary.Change90d = changeOverLookback(history, last.Value, now, 90)
	summary.ChangeYTD = changeYearToDate(history, last.Value, now)

	if summary.Change7d != nil {
		switch {
		case *summary.Change7d > trendThreshold:
			summary.Trend = model.TrendUp
		case *summary.Change7d < -trendThreshold:
			summary.Trend = model.TrendDown
		}
	}

	switch {
	case last.Value >= indexOvervalued:
		summary.MarketStatus = model.MarketOvervalued
	case last.Value <= indexUndervalued:
		summary.MarketStatus = model.MarketUndervalued
	}
	return summary
}

// changeOverLookback finds the nearest index point at or before now-days and
// returns the relative change of current against it. Nil when the history
// does not reach that far back.
func changeOverLookback(history []model.ISPIndexPoint, current float64, now time.Time, days int) *float64 {
	target := DayIndexOf(now) - int64(days)
	for i := len(history) - 1; i >= 0; i-- {
		if DayIndexOf(history[i].Date) <= target {
			if history[i].Value == 0 {
				return nil
			}
			return f64((current - history[i].Value) / history[i].Value)
		}
	}
	return nil
}

// changeYearToDate anchors to the first index point on or after January 1st
// of now's year.
func changeYearToDate(history []model.ISPIndexPoint, current float64, now time.Time) *float64 {
	jan1 := time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range history {
		if !p.Date.Before(jan1) {
			if p.Value == 0 {
				return nil
			}
			return f64((current - p.Value) / p.Value)
		}
	}
	return nil
}

// DebugVariationBetweenDates reports each item's before/after price and
// percent change between two dates, sorted by descending absolute change.
// It exists to audit which products drove a given day-over-day index move.
// Prices anchor to the nearest observation at or before each date; items
// missing data on either side are skipped.
func DebugVariationBetweenDates(items []IndexItem, from, to time.Time) []model.ItemVariation {
	fromDay := DayIndexOf(from)
	toDay := DayIndexOf(to)

	variations := make([]model.ItemVariation, 0, len(items))
	for _, it := range items {
		series := Normalize(it.Prices)
		before := priceAtOrBefore(series, fromDay)
		after := priceAtOrBefore(series, toDay)
		if before == nil || after == nil || *before <= 0 {
			continue
		}
		variations = append(variations, model.ItemVariation{
			ProductID:   it.ID,
			Name:        it.Name,
			PriceBefore: *before,
			PriceAfter:  *after,
			ChangePct:   SimpleReturn(*before, *after) * 100,
		})
	}
	sort.Slice(variations, func(i, j int) bool {
		return math.Abs(variations[i].ChangePct) > math.Abs(variations[j].ChangePct)
	})
	return variations
}

func priceAtOrBefore(s *WindowedSeries, day int64) *float64 {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].DayIndex <= day {
			return f64(s.Points[i].Price)
		}
	}
	return nil
}
