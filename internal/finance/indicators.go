package finance

import (
	"math"
	"sort"
)

// Risk-adjusted ratios for sparse retail data. The naming mirrors
// Sharpe/Sortino/Calmar conceptually, but no risk-free rate is subtracted:
// there is none for sealed-product resale markets.

// ReturnToVolatility divides a windowed return by its volatility.
// Nil when either input is nil or volatility is zero.
func ReturnToVolatility(ret, vol *float64) *float64 {
	if ret == nil || vol == nil || *vol == 0 {
		return nil
	}
	return f64(*ret / *vol)
}

// ReturnToDownsideDeviation divides a windowed return by the downside
// deviation of its log returns.
func ReturnToDownsideDeviation(ret, downside *float64) *float64 {
	if ret == nil || downside == nil || *downside == 0 {
		return nil
	}
	return f64(*ret / *downside)
}

// ReturnToDrawdown divides a windowed return by the observed max drawdown.
// Nil when the drawdown is zero: a flawless run has no meaningful ratio.
func ReturnToDrawdown(ret, drawdown *float64) *float64 {
	if ret == nil || drawdown == nil || *drawdown == 0 {
		return nil
	}
	return f64(*ret / *drawdown)
}

// AnnualizedVolatility scales the series' log-return stdev by the square
// root of the periods-per-year implied by the observed sampling density.
// With one observation every g days on average, there are 365/g periods in
// a year. Nil when volatility is undefined or the window spans no time.
func AnnualizedVolatility(s *WindowedSeries) *float64 {
	vol := VolatilityFromLogReturns(s)
	if vol == nil || len(s.Points) < 2 {
		return nil
	}
	span := float64(s.Points[len(s.Points)-1].DayIndex - s.Points[0].DayIndex)
	if span <= 0 {
		return nil
	}
	avgGap := span / float64(len(s.Points)-1)
	periodsPerYear := 365.0 / avgGap
	return f64(*vol * math.Sqrt(periodsPerYear))
}

// DownsideDeviation is the sample stdev computed only over negative log
// returns. Nil with fewer than 2 negative returns.
func DownsideDeviation(s *WindowedSeries) *float64 {
	var negatives []float64
	for _, r := range LogReturns(s) {
		if r < 0 {
			negatives = append(negatives, r)
		}
	}
	return Stdev(negatives)
}

const rsiPeriod = 14

// RSI14 computes the Wilder-smoothed 14-period RSI over the entire series.
// Using the full history rather than a fixed lookback window is a deliberate
// accommodation for sparse sampling: a strict 14-sample window would leave
// RSI undefined for most products in this dataset. With fewer than 14
// changes available, the seed averages still divide by 14, penalising thin
// histories toward neutral. Nil with fewer than 2 points.
func RSI14(s *WindowedSeries) *float64 {
	if s == nil || len(s.Points) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		changes = append(changes, s.Points[i].Price-s.Points[i-1].Price)
	}

	seed := rsiPeriod
	if len(changes) < seed {
		seed = len(changes)
	}
	var avgGain, avgLoss float64
	for i := 0; i < seed; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss -= changes[i]
		}
	}
	avgGain /= rsiPeriod
	avgLoss /= rsiPeriod

	// Wilder smoothing over the remaining changes.
	for i := seed; i < len(changes); i++ {
		gain, loss := 0.0, 0.0
		if changes[i] > 0 {
			gain = changes[i]
		} else {
			loss = -changes[i]
		}
		avgGain = (avgGain*(rsiPeriod-1) + gain) / rsiPeriod
		avgLoss = (avgLoss*(rsiPeriod-1) + loss) / rsiPeriod
	}

	if avgLoss == 0 {
		return f64(100)
	}
	rs := avgGain / avgLoss
	return f64(100 - 100/(1+rs))
}

// RSI classification thresholds.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// ClassifyRSI maps an RSI value to its qualitative signal.
func ClassifyRSI(rsi *float64) *string {
	if rsi == nil {
		return nil
	}
	var label string
	switch {
	case *rsi < rsiOversold:
		label = "oversold"
	case *rsi > rsiOverbought:
		label = "overbought"
	default:
		label = "neutral"
	}
	return &label
}

// percentile returns the linearly interpolated p-quantile (0..1) of sorted
// ascending values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// VaR95 is the 5th percentile of the log-return distribution: the loss-side
// tail boundary. Nil with fewer than 2 returns.
func VaR95(returns []float64) *float64 {
	if len(returns) < 2 {
		return nil
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)
	return f64(percentile(sorted, 0.05))
}

// CVaR95 is the mean of the log returns at or below the VaR95 boundary.
// Nil when VaR95 is undefined.
func CVaR95(returns []float64) *float64 {
	threshold := VaR95(returns)
	if threshold == nil {
		return nil
	}
	var sum float64
	var count int
	for _, r := range returns {
		if r <= *threshold {
			sum += r
			count++
		}
	}
	if count == 0 {
		return threshold
	}
	return f64(sum / float64(count))
}

// Skewness is the third standardized moment of the returns.
// Nil with fewer than 3 returns or zero variance.
func Skewness(returns []float64) *float64 {
	n := float64(len(returns))
	if n < 3 {
		return nil
	}
	mean := meanOf(returns)
	var m2, m3 float64
	for _, r := range returns {
		d := r - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return nil
	}
	return f64(m3 / math.Pow(m2, 1.5))
}

// Kurtosis is the fourth standardized moment of the returns (not excess).
// Nil with fewer than 4 returns or zero variance.
func Kurtosis(returns []float64) *float64 {
	n := float64(len(returns))
	if n < 4 {
		return nil
	}
	mean := meanOf(returns)
	var m2, m4 float64
	for _, r := range returns {
		d := r - mean
		m2 += d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m4 /= n
	if m2 == 0 {
		return nil
	}
	return f64(m4 / (m2 * m2))
}

// Beta is the covariance of the series' returns with the supplied market
// returns, divided by the market variance. The two slices are paired
// index-wise over their common length. Nil when no market series is given,
// fewer than 2 pairs overlap, or the market variance is zero.
func Beta(returns, market []float64) *float64 {
	n := len(returns)
	if len(market) < n {
		n = len(market)
	}
	if n < 2 {
		return nil
	}
	r := returns[:n]
	m := market[:n]
	meanR := meanOf(r)
	meanM := meanOf(m)
	var cov, varM float64
	for i := 0; i < n; i++ {
		cov += (r[i] - meanR) * (m[i] - meanM)
		varM += (m[i] - meanM) * (m[i] - meanM)
	}
	if varM == 0 {
		return nil
	}
	return f64(cov / varM)
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
