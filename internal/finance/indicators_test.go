package finance_test

import (
	"math"
	"testing"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
)

// TestRSI14 tests the whole-history RSI.
//
// WHY: RSI deliberately runs over the entire series instead of a strict
// 14-sample window; a strict window would leave RSI undefined for most
// sparse product histories.
func TestRSI14(t *testing.T) {
	t.Run("all gains yields 100", func(t *testing.T) {
		rsi := finance.RSI14(finance.Normalize(rawDaily("2024-01-01",
			100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114, 115)))
		if rsi == nil || *rsi != 100 {
			t.Errorf("expected RSI 100 for monotonic gains, got %v", rsi)
		}
	})

	t.Run("fewer than two points yields nil", func(t *testing.T) {
		if rsi := finance.RSI14(finance.Normalize(rawDaily("2024-01-01", 100))); rsi != nil {
			t.Errorf("expected nil, got %v", *rsi)
		}
	})

	t.Run("short histories still produce a bounded value", func(t *testing.T) {
		rsi := finance.RSI14(finance.Normalize(rawDaily("2024-01-01", 100, 105, 103)))
		if rsi == nil {
			t.Fatal("expected a value for a 3-point series")
		}
		if *rsi < 0 || *rsi > 100 {
			t.Errorf("RSI out of [0,100]: %v", *rsi)
		}
	})

	t.Run("losses push RSI below gains", func(t *testing.T) {
		falling := finance.RSI14(finance.Normalize(rawDaily("2024-01-01", 115, 110, 105, 100, 95)))
		rising := finance.RSI14(finance.Normalize(rawDaily("2024-01-01", 95, 100, 105, 110, 115)))
		if falling == nil || rising == nil {
			t.Fatal("expected values for both series")
		}
		if *falling >= *rising {
			t.Errorf("expected falling RSI (%v) < rising RSI (%v)", *falling, *rising)
		}
	})
}

// TestClassifyRSI tests the qualitative RSI signal.
func TestClassifyRSI(t *testing.T) {
	cases := []struct {
		rsi  float64
		want string
	}{
		{25, "oversold"},
		{30, "neutral"},
		{50, "neutral"},
		{70, "neutral"},
		{75, "overbought"},
	}
	for _, tc := range cases {
		rsi := tc.rsi
		got := finance.ClassifyRSI(&rsi)
		if got == nil || *got != tc.want {
			t.Errorf("ClassifyRSI(%v) = %v, want %q", tc.rsi, got, tc.want)
		}
	}
	if finance.ClassifyRSI(nil) != nil {
		t.Error("expected nil classification for nil RSI")
	}
}

// TestVaR tests the loss-side tail statistics.
func TestVaR(t *testing.T) {
	returns := []float64{-0.10, -0.02, 0.01, 0.03}

	t.Run("VaR95 interpolates the 5th percentile", func(t *testing.T) {
		got := finance.VaR95(returns)
		if got == nil {
			t.Fatal("expected a value, got nil")
		}
		// Sorted: [-0.10, -0.02, 0.01, 0.03]; position 0.05*3 = 0.15.
		want := -0.10*(1-0.15) + -0.02*0.15
		if !almost(*got, want) {
			t.Errorf("expected %v, got %v", want, *got)
		}
	})

	t.Run("CVaR95 is the mean of the tail", func(t *testing.T) {
		got := finance.CVaR95(returns)
		if got == nil {
			t.Fatal("expected a value, got nil")
		}
		if !almost(*got, -0.10) {
			t.Errorf("expected -0.10 (single tail sample), got %v", *got)
		}
	})

	t.Run("insufficient samples yield nil", func(t *testing.T) {
		if finance.VaR95([]float64{0.01}) != nil || finance.CVaR95(nil) != nil {
			t.Error("expected nil for insufficient samples")
		}
	})
}

// TestMoments tests skewness and kurtosis.
func TestMoments(t *testing.T) {
	t.Run("symmetric data has zero skewness", func(t *testing.T) {
		got := finance.Skewness([]float64{-1, 0, 1})
		if got == nil || !almost(*got, 0) {
			t.Errorf("expected 0 skewness, got %v", got)
		}
	})

	t.Run("two-valued data has kurtosis 1", func(t *testing.T) {
		got := finance.Kurtosis([]float64{1, -1, 1, -1})
		if got == nil || !almost(*got, 1) {
			t.Errorf("expected kurtosis 1, got %v", got)
		}
	})

	t.Run("zero variance yields nil", func(t *testing.T) {
		if finance.Skewness([]float64{2, 2, 2}) != nil {
			t.Error("expected nil skewness for constant data")
		}
		if finance.Kurtosis([]float64{2, 2, 2, 2}) != nil {
			t.Error("expected nil kurtosis for constant data")
		}
	})

	t.Run("insufficient samples yield nil", func(t *testing.T) {
		if finance.Skewness([]float64{1, 2}) != nil {
			t.Error("expected nil skewness below 3 samples")
		}
		if finance.Kurtosis([]float64{1, 2, 3}) != nil {
			t.Error("expected nil kurtosis below 4 samples")
		}
	})
}

// TestBeta tests covariance-based beta.
func TestBeta(t *testing.T) {
	t.Run("series against itself has beta 1", func(t *testing.T) {
		returns := []float64{0.01, -0.02, 0.03, 0.01}
		got := finance.Beta(returns, returns)
		if got == nil || !almost(*got, 1) {
			t.Errorf("expected beta 1, got %v", got)
		}
	})

	t.Run("nil without a market series", func(t *testing.T) {
		if finance.Beta([]float64{0.01, 0.02}, nil) != nil {
			t.Error("expected nil beta without market returns")
		}
	})

	t.Run("nil on zero market variance", func(t *testing.T) {
		if finance.Beta([]float64{0.01, 0.02}, []float64{0.01, 0.01}) != nil {
			t.Error("expected nil beta for flat market")
		}
	})
}

// TestAnnualizedVolatility tests the sampling-density scaling.
func TestAnnualizedVolatility(t *testing.T) {
	t.Run("daily sampling scales by sqrt(365)", func(t *testing.T) {
		series := finance.Normalize(rawDaily("2024-01-01", 100, 110, 95, 105, 100))
		vol := finance.VolatilityFromLogReturns(series)
		annualized := finance.AnnualizedVolatility(series)
		if vol == nil || annualized == nil {
			t.Fatal("expected both volatilities")
		}
		if !almost(*annualized, *vol*math.Sqrt(365)) {
			t.Errorf("expected %v, got %v", *vol*math.Sqrt(365), *annualized)
		}
	})

	t.Run("insufficient data yields nil", func(t *testing.T) {
		if finance.AnnualizedVolatility(finance.Normalize(rawDaily("2024-01-01", 100))) != nil {
			t.Error("expected nil for one-point series")
		}
	})
}

// TestDownsideDeviation tests the negative-return stdev.
func TestDownsideDeviation(t *testing.T) {
	t.Run("needs at least two negative returns", func(t *testing.T) {
		series := finance.Normalize(rawDaily("2024-01-01", 100, 110, 105))
		if finance.DownsideDeviation(series) != nil {
			t.Error("expected nil with a single negative return")
		}
	})

	t.Run("computed over losses only", func(t *testing.T) {
		series := finance.Normalize(rawDaily("2024-01-01", 100, 90, 95, 85, 100))
		got := finance.DownsideDeviation(series)
		if got == nil || *got <= 0 {
			t.Errorf("expected positive downside deviation, got %v", got)
		}
	})
}

// TestRatios tests the Sharpe/Sortino/Calmar-style ratios.
func TestRatios(t *testing.T) {
	ret := 0.10
	vol := 0.05
	zero := 0.0

	if got := finance.ReturnToVolatility(&ret, &vol); got == nil || !almost(*got, 2) {
		t.Errorf("expected 2, got %v", got)
	}
	if finance.ReturnToVolatility(&ret, &zero) != nil {
		t.Error("expected nil on zero volatility")
	}
	if finance.ReturnToVolatility(nil, &vol) != nil {
		t.Error("expected nil on nil return")
	}
	if finance.ReturnToDrawdown(&ret, &zero) != nil {
		t.Error("expected nil on zero drawdown")
	}
	if got := finance.ReturnToDownsideDeviation(&ret, &vol); got == nil || !almost(*got, 2) {
		t.Errorf("expected 2, got %v", got)
	}
}
