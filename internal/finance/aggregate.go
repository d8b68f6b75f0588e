package finance

import "sort"

// BuildSeriesIndexDailyMedian folds many products' raw price lists into one
// aggregated daily series: each product is normalized independently, and for
// every calendar day on which at least one product has an observation, the
// aggregated point is the median price across the products observed that
// day. Days with no data anywhere are simply absent: no interpolation, no
// forward-fill, because interpolated prices were never observed.
func BuildSeriesIndexDailyMedian(itemsPrices [][]RawPricePoint) *WindowedSeries {
	pricesByDay := make(map[int64][]float64)
	for _, raw := range itemsPrices {
		for _, p := range Normalize(raw).Points {
			pricesByDay[p.DayIndex] = append(pricesByDay[p.DayIndex], p.Price)
		}
	}

	days := make([]int64, 0, len(pricesByDay))
	for day := range pricesByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	out := &WindowedSeries{Points: make([]SeriesPoint, 0, len(days))}
	for _, day := range days {
		med := Median(pricesByDay[day])
		out.Points = append(out.Points, SeriesPoint{
			DayIndex: day,
			Date:     DateOfDayIndex(day),
			Price:    *med,
		})
	}
	if n := len(out.Points); n > 0 {
		out.Last = &out.Points[n-1]
	}
	return out
}

// RawPoints converts a normalized series back to the raw observation shape,
// so an aggregated series can be fed through ComputeFinanceMetrics.
func RawPoints(s *WindowedSeries) []RawPricePoint {
	out := make([]RawPricePoint, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, RawPricePoint{Date: p.Date.Format("2006-01-02"), Price: p.Price})
	}
	return out
}
