package finance

import (
	"math"
	"sort"
)

// f64 returns a pointer to v. Metric functions return nil pointers for
// "undefined", never a zero sentinel.
func f64(v float64) *float64 { return &v }

// SimpleReturn is the relative change from a to b.
func SimpleReturn(a, b float64) float64 {
	return b/a - 1
}

// LogReturns computes ln(curr/prev) for each adjacent pair of points with
// strictly positive prices. Fewer than 2 points yields an empty slice.
func LogReturns(s *WindowedSeries) []float64 {
	if s == nil || len(s.Points) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		prev, curr := s.Points[i-1].Price, s.Points[i].Price
		if prev > 0 && curr > 0 {
			out = append(out, math.Log(curr/prev))
		}
	}
	return out
}

// ReturnOverDays computes the return between the series' last point and an
// anchor: the most recent point at or before last.DayIndex - days. This is
// an anchor lookup, not interpolation; with sparse data the anchor may sit
// further back than the requested horizon and callers accept that
// approximation. Nil when no anchor exists or the anchor price is not
// positive.
func ReturnOverDays(s *WindowedSeries, days int) *float64 {
	if s == nil || s.Last == nil {
		return nil
	}
	target := s.Last.DayIndex - int64(days)
	var anchor *SeriesPoint
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].DayIndex <= target {
			anchor = &s.Points[i]
			break
		}
	}
	if anchor == nil || anchor.Price <= 0 {
		return nil
	}
	return f64(s.Last.Price/anchor.Price - 1)
}

// Stdev is the sample standard deviation (n-1 denominator).
// Nil with fewer than 2 values.
func Stdev(values []float64) *float64 {
	n := len(values)
	if n < 2 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return f64(math.Sqrt(ss / float64(n-1)))
}

// VolatilityFromLogReturns is the sample stdev of the series' log returns.
func VolatilityFromLogReturns(s *WindowedSeries) *float64 {
	return Stdev(LogReturns(s))
}

// MaxDrawdown returns the largest peak-to-trough decline observed in the
// series, as a fraction in [0,1]. A monotonically non-decreasing series has
// drawdown 0. Nil with fewer than 2 points.
func MaxDrawdown(s *WindowedSeries) *float64 {
	if s == nil || len(s.Points) < 2 {
		return nil
	}
	peak := s.Points[0].Price
	maxDD := 0.0
	for _, p := range s.Points {
		if p.Price > peak {
			peak = p.Price
		}
		if peak > 0 {
			if dd := (peak - p.Price) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return f64(maxDD)
}

// SlopeLogPricePerDay is the ordinary least-squares slope of ln(price)
// regressed on day index, in log-price units per day. Nil with fewer than
// 2 points or when all day indices coincide (zero variance in x).
func SlopeLogPricePerDay(s *WindowedSeries) *float64 {
	if s == nil || len(s.Points) < 2 {
		return nil
	}
	n := float64(len(s.Points))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range s.Points {
		x := float64(p.DayIndex)
		y := math.Log(p.Price)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	return f64((n*sumXY - sumX*sumY) / denom)
}

// PremiumVsRetail is the fractional excess of price over the original
// retail price. Nil unless both values are finite and retail is strictly
// positive; a missing or zero retail price means "unknown", not "free".
func PremiumVsRetail(price, retail float64) *float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil
	}
	if math.IsNaN(retail) || math.IsInf(retail, 0) || retail <= 0 {
		return nil
	}
	return f64(price/retail - 1)
}

// Median returns the middle value of values (mean of the two middle values
// for even counts). Nil for empty input. The input slice is not modified.
func Median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return f64(sorted[n/2])
	}
	return f64((sorted[n/2-1] + sorted[n/2]) / 2)
}
