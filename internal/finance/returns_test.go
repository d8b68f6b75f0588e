package finance_test

import (
	"math"
	"testing"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
)

// TestReturnOverDays tests the anchor-based return lookup.
//
// WHY: with sparse data the anchor may be older than the requested horizon;
// the function must fall back to the most recent point at or before the
// target day rather than interpolating prices that were never observed.
func TestReturnOverDays(t *testing.T) {
	series := finance.Normalize([]finance.RawPricePoint{
		{Date: "2024-01-01", Price: 100},
		{Date: "2024-01-11", Price: 110},
	})

	t.Run("exact anchor", func(t *testing.T) {
		ret := finance.ReturnOverDays(series, 10)
		if ret == nil {
			t.Fatal("expected a return, got nil")
		}
		if !almost(*ret, 0.10) {
			t.Errorf("expected 0.10, got %v", *ret)
		}
	})

	t.Run("sparse anchor falls back to older point", func(t *testing.T) {
		// No point at day 5; the anchor is the day-0 point.
		ret := finance.ReturnOverDays(series, 5)
		if ret == nil {
			t.Fatal("expected a return, got nil")
		}
		if !almost(*ret, 0.10) {
			t.Errorf("expected 0.10 via day-0 anchor, got %v", *ret)
		}
	})

	t.Run("no anchor yields nil", func(t *testing.T) {
		if ret := finance.ReturnOverDays(series, 20); ret != nil {
			t.Errorf("expected nil when no point precedes the target, got %v", *ret)
		}
	})

	t.Run("empty series yields nil", func(t *testing.T) {
		if ret := finance.ReturnOverDays(finance.Normalize(nil), 7); ret != nil {
			t.Errorf("expected nil for empty series, got %v", *ret)
		}
	})
}

// TestLogReturns tests adjacent-pair log returns.
func TestLogReturns(t *testing.T) {
	t.Run("single point yields no returns", func(t *testing.T) {
		if got := finance.LogReturns(finance.Normalize(rawDaily("2024-01-01", 100))); len(got) != 0 {
			t.Errorf("expected no returns, got %v", got)
		}
	})

	t.Run("computes ln of price ratios", func(t *testing.T) {
		returns := finance.LogReturns(finance.Normalize(rawDaily("2024-01-01", 100, 110)))
		if len(returns) != 1 {
			t.Fatalf("expected 1 return, got %d", len(returns))
		}
		if !almost(returns[0], math.Log(1.1)) {
			t.Errorf("expected ln(1.1), got %v", returns[0])
		}
	})
}

// TestStdev tests the sample standard deviation.
func TestStdev(t *testing.T) {
	t.Run("fewer than two values yields nil", func(t *testing.T) {
		if finance.Stdev(nil) != nil || finance.Stdev([]float64{1}) != nil {
			t.Error("expected nil for insufficient samples")
		}
	})

	t.Run("known sample", func(t *testing.T) {
		got := finance.Stdev([]float64{1, 2, 3, 4})
		if got == nil {
			t.Fatal("expected a value, got nil")
		}
		if !almost(*got, math.Sqrt(5.0/3.0)) {
			t.Errorf("expected sqrt(5/3), got %v", *got)
		}
	})
}

// TestMaxDrawdown tests the running-peak drawdown.
//
// WHY: the drawdown must stay inside [0,1], report 0 for non-decreasing
// series, and equal (peak-trough)/peak on a simple up-then-down shape.
func TestMaxDrawdown(t *testing.T) {
	t.Run("up then down", func(t *testing.T) {
		dd := finance.MaxDrawdown(finance.Normalize(rawDaily("2024-01-01", 100, 150, 75)))
		if dd == nil {
			t.Fatal("expected a drawdown, got nil")
		}
		if !almost(*dd, 0.5) {
			t.Errorf("expected 0.5, got %v", *dd)
		}
	})

	t.Run("monotonic series has zero drawdown", func(t *testing.T) {
		dd := finance.MaxDrawdown(finance.Normalize(rawDaily("2024-01-01", 100, 100, 120, 150)))
		if dd == nil || *dd != 0 {
			t.Errorf("expected 0 drawdown, got %v", dd)
		}
	})

	t.Run("always within bounds", func(t *testing.T) {
		dd := finance.MaxDrawdown(finance.Normalize(rawDaily("2024-01-01", 50, 300, 10, 500, 1)))
		if dd == nil || *dd < 0 || *dd > 1 {
			t.Errorf("drawdown out of [0,1]: %v", dd)
		}
	})

	t.Run("fewer than two points yields nil", func(t *testing.T) {
		if dd := finance.MaxDrawdown(finance.Normalize(rawDaily("2024-01-01", 100))); dd != nil {
			t.Errorf("expected nil, got %v", *dd)
		}
	})
}

// TestSlopeLogPricePerDay tests the OLS trend slope.
func TestSlopeLogPricePerDay(t *testing.T) {
	t.Run("exact exponential growth", func(t *testing.T) {
		prices := make([]float64, 10)
		for i := range prices {
			prices[i] = 100 * math.Exp(0.01*float64(i))
		}
		slope := finance.SlopeLogPricePerDay(finance.Normalize(rawDaily("2024-01-01", prices...)))
		if slope == nil {
			t.Fatal("expected a slope, got nil")
		}
		if math.Abs(*slope-0.01) > 1e-6 {
			t.Errorf("expected slope 0.01, got %v", *slope)
		}
	})

	t.Run("fewer than two points yields nil", func(t *testing.T) {
		if slope := finance.SlopeLogPricePerDay(finance.Normalize(rawDaily("2024-01-01", 100))); slope != nil {
			t.Errorf("expected nil, got %v", *slope)
		}
	})
}

// TestPremiumVsRetail tests the retail-premium null-safety contract.
//
// WHY: a zero or missing retail price means "unknown", and must yield nil,
// never a division by zero or a misleading 0 premium.
func TestPremiumVsRetail(t *testing.T) {
	t.Run("null-safety on bad retail", func(t *testing.T) {
		for _, retail := range []float64{0, -5, math.NaN(), math.Inf(1)} {
			if got := finance.PremiumVsRetail(120, retail); got != nil {
				t.Errorf("expected nil for retail %v, got %v", retail, *got)
			}
		}
	})

	t.Run("null-safety on bad price", func(t *testing.T) {
		if got := finance.PremiumVsRetail(math.NaN(), 100); got != nil {
			t.Errorf("expected nil for NaN price, got %v", *got)
		}
	})

	t.Run("computes fractional premium", func(t *testing.T) {
		got := finance.PremiumVsRetail(120, 100)
		if got == nil || !almost(*got, 0.2) {
			t.Errorf("expected 0.2, got %v", got)
		}
	})
}

// TestMedian tests the shared median helper.
func TestMedian(t *testing.T) {
	if finance.Median(nil) != nil {
		t.Error("expected nil for empty input")
	}
	if got := finance.Median([]float64{3, 1, 2}); got == nil || *got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := finance.Median([]float64{4, 1, 2, 3}); got == nil || !almost(*got, 2.5) {
		t.Errorf("expected 2.5, got %v", got)
	}
}
