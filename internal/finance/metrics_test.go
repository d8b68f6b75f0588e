package finance_test

import (
	"testing"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
)

// TestComputeFinanceMetrics tests the full per-product metrics assembly.
//
// WHY: this is the one entry point callers use; it must wire the windowed
// indicators together correctly and honor the null philosophy (nil means
// undefined, never zero).
func TestComputeFinanceMetrics(t *testing.T) {
	t.Run("empty history yields only retail price", func(t *testing.T) {
		m := finance.ComputeFinanceMetrics(finance.MetricsInput{RetailPrice: 150})
		if m.RetailPrice == nil || *m.RetailPrice != 150 {
			t.Errorf("expected retail price 150, got %v", m.RetailPrice)
		}
		if m.LastPrice != nil || m.Score != nil || m.Return7d != nil {
			t.Error("expected every computed field nil without observations")
		}
	})

	t.Run("unknown retail leaves premium fields nil", func(t *testing.T) {
		m := finance.ComputeFinanceMetrics(finance.MetricsInput{
			Prices: rawDaily("2024-01-01", 100, 105, 110),
			Now:    time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
		})
		if m.RetailPrice != nil || m.PremiumNow != nil || m.Premium30d != nil {
			t.Error("expected nil retail-relative fields")
		}
		if m.LastPrice == nil || *m.LastPrice != 110 {
			t.Errorf("expected last price 110, got %v", m.LastPrice)
		}
	})

	t.Run("dense month produces the full record", func(t *testing.T) {
		prices := make([]float64, 0, 30)
		for i := 0; i < 30; i++ {
			prices = append(prices, 100+float64(i))
		}
		m := finance.ComputeFinanceMetrics(finance.MetricsInput{
			Prices:      rawDaily("2024-01-01", prices...),
			RetailPrice: 100,
			Now:         time.Date(2024, 1, 30, 18, 0, 0, 0, time.UTC),
		})

		if m.LastPrice == nil || *m.LastPrice != 129 {
			t.Fatalf("expected last price 129, got %v", m.LastPrice)
		}
		if m.PremiumNow == nil || !almost(*m.PremiumNow, 0.29) {
			t.Errorf("expected spot premium 0.29, got %v", m.PremiumNow)
		}
		if m.Return7d == nil || !almost(*m.Return7d, (129.0-122.0)/122.0) {
			t.Errorf("unexpected 7d return: %v", m.Return7d)
		}
		if m.DataCoverage30d != 1 {
			t.Errorf("expected full coverage, got %v", m.DataCoverage30d)
		}
		if m.FreshnessDays == nil || *m.FreshnessDays != 0 {
			t.Errorf("expected freshness 0, got %v", m.FreshnessDays)
		}
		if m.TrendSlope30d == nil || *m.TrendSlope30d <= 0 {
			t.Errorf("expected positive slope, got %v", m.TrendSlope30d)
		}
		if m.Score == nil || *m.Score < 0 || *m.Score > 100 {
			t.Errorf("expected bounded score, got %v", m.Score)
		}
		if m.RSI14 == nil || m.RSISignal == nil {
			t.Error("expected RSI and its signal")
		}
		if m.VaR95 == nil || m.CVaR95 == nil {
			t.Error("expected tail statistics over the 30d window")
		}
	})

	t.Run("freshness counts days since last observation", func(t *testing.T) {
		m := finance.ComputeFinanceMetrics(finance.MetricsInput{
			Prices: rawDaily("2024-01-01", 100, 102),
			Now:    time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC),
		})
		if m.FreshnessDays == nil || *m.FreshnessDays != 10 {
			t.Errorf("expected freshness 10 days, got %v", m.FreshnessDays)
		}
	})

	t.Run("beta requires a market series", func(t *testing.T) {
		raw := rawDaily("2024-01-01", 100, 102, 101, 104, 103)
		now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

		without := finance.ComputeFinanceMetrics(finance.MetricsInput{Prices: raw, Now: now})
		if without.Beta != nil {
			t.Errorf("expected nil beta without market returns, got %v", *without.Beta)
		}

		with := finance.ComputeFinanceMetrics(finance.MetricsInput{
			Prices:        raw,
			MarketReturns: finance.LogReturns(finance.Normalize(raw)),
			Now:           now,
		})
		if with.Beta == nil || !almost(*with.Beta, 1) {
			t.Errorf("expected beta 1 against itself, got %v", with.Beta)
		}
	})
}
