package finance

import (
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// MetricsInput carries everything ComputeFinanceMetrics needs for one
// product or one aggregated series.
type MetricsInput struct {
	Prices      []RawPricePoint
	RetailPrice float64 // 0 means unknown; retail-relative fields become nil

	// MarketReturns, when supplied, enables beta against a market-wide
	// return series.
	MarketReturns []float64

	// Now anchors the freshness computation. The zero value means
	// wall-clock time; tests inject a fixed instant.
	Now time.Time
}

// ComputeFinanceMetrics assembles one complete FinanceMetrics record from
// raw observations. Momentum (RSI) runs over the full normalized series as
// a sparse-data accommodation; everything else uses trailing 30- and 90-day
// windows anchored to the series' own last point.
func ComputeFinanceMetrics(in MetricsInput) model.FinanceMetrics {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var m model.FinanceMetrics
	if in.RetailPrice > 0 {
		m.RetailPrice = f64(in.RetailPrice)
	}

	full := Normalize(in.Prices)
	if full.Last == nil {
		return m
	}

	w30 := SliceLastNDays(full, 30)
	w90 := SliceLastNDays(full, 90)

	m.LastPrice = f64(full.Last.Price)
	m.PremiumNow = PremiumVsRetail(full.Last.Price, in.RetailPrice)
	m.Premium30d = premiumOverWindow(w30, in.RetailPrice)

	m.Return7d = ReturnOverDays(full, 7)
	m.Return30d = ReturnOverDays(full, 30)

	m.Volatility30d = VolatilityFromLogReturns(w30)
	m.MaxDrawdown90d = MaxDrawdown(w90)
	m.TrendSlope30d = SlopeLogPricePerDay(w30)

	if expected := ExpectedDaysInWindow(full, 30); expected > 0 {
		m.DataCoverage30d = float64(len(w30.Points)) / float64(expected)
	}
	m.FreshnessDays = f64(float64(DayIndexOf(now) - full.Last.DayIndex))

	m.Score = ScoreComposite(
		m.Premium30d, m.TrendSlope30d, m.Volatility30d, m.MaxDrawdown90d,
		m.DataCoverage30d, m.FreshnessDays,
	)

	m.DownsideDeviation = DownsideDeviation(w30)
	m.SharpeLike = ReturnToVolatility(m.Return30d, m.Volatility30d)
	m.SortinoLike = ReturnToDownsideDeviation(m.Return30d, m.DownsideDeviation)
	m.CalmarLike = ReturnToDrawdown(m.Return30d, m.MaxDrawdown90d)
	m.AnnualizedVolatility = AnnualizedVolatility(w30)

	m.RSI14 = RSI14(full)
	m.RSISignal = ClassifyRSI(m.RSI14)

	returns30 := LogReturns(w30)
	m.VaR95 = VaR95(returns30)
	m.CVaR95 = CVaR95(returns30)
	m.Skewness = Skewness(returns30)
	m.Kurtosis = Kurtosis(returns30)
	m.Beta = Beta(returns30, in.MarketReturns)

	return m
}

// premiumOverWindow is the smoothed 30-day premium: the window's mean price
// against retail, less twitchy than the spot premium for scoring purposes.
func premiumOverWindow(w *WindowedSeries, retail float64) *float64 {
	if len(w.Points) == 0 {
		return nil
	}
	var sum float64
	for _, p := range w.Points {
		sum += p.Price
	}
	return PremiumVsRetail(sum/float64(len(w.Points)), retail)
}
