package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/testutil"
)

// TestGetProductMetrics tests the single-product metrics pipeline from stored
// observations to the computed record.
//
// WHY: this path is what the product detail page calls; it must load the
// observations, anchor freshness to the supplied instant, and surface a clean
// not-found error for unknown products.
func TestGetProductMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMarketService(t, db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	product := testutil.NewProduct().WithRetailPrice(100).Build(t, db)
	testutil.AddDailyPrices(t, db, product.ID, start, []float64{100, 105, 110, 115, 120})

	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)

	t.Run("computes metrics from stored observations", func(t *testing.T) {
		got, err := svc.GetProductMetrics(product.ID, now)
		if err != nil {
			t.Fatalf("GetProductMetrics failed: %v", err)
		}
		if got.Product.ID != product.ID {
			t.Errorf("expected product %s, got %s", product.ID, got.Product.ID)
		}
		if got.Metrics.LastPrice == nil || *got.Metrics.LastPrice != 120 {
			t.Errorf("expected last price 120, got %v", got.Metrics.LastPrice)
		}
		if got.Metrics.PremiumNow == nil || !floatClose(*got.Metrics.PremiumNow, 0.2) {
			t.Errorf("expected premium 0.2, got %v", got.Metrics.PremiumNow)
		}
		if got.Metrics.FreshnessDays == nil || *got.Metrics.FreshnessDays != 0 {
			t.Errorf("expected freshness 0, got %v", got.Metrics.FreshnessDays)
		}
	})

	t.Run("unknown product returns not found", func(t *testing.T) {
		_, err := svc.GetProductMetrics("00000000-0000-0000-0000-000000000000", now)
		if !errors.Is(err, apperrors.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

// TestGetAllProductMetrics tests the catalog-wide fan-out.
//
// WHY: the computation runs across a worker group; results must keep the
// repository's product order and stay correct per product.
func TestGetAllProductMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMarketService(t, db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := testutil.NewProduct().WithName("Box A").WithRetailPrice(100).Build(t, db)
	b := testutil.NewProduct().WithName("Box B").WithRetailPrice(200).Build(t, db)
	c := testutil.NewProduct().WithName("Box C").WithRetailPrice(50).Build(t, db)

	testutil.AddDailyPrices(t, db, a.ID, start, []float64{100, 110})
	testutil.AddDailyPrices(t, db, b.ID, start, []float64{220, 240})
	// c has no observations at all.

	now := time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)
	results, err := svc.GetAllProductMetrics(context.Background(), now)
	if err != nil {
		t.Fatalf("GetAllProductMetrics failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byID := make(map[string]int)
	for i, r := range results {
		byID[r.Product.ID] = i
	}

	if m := results[byID[a.ID]].Metrics; m.LastPrice == nil || *m.LastPrice != 110 {
		t.Errorf("product A: expected last price 110, got %v", m.LastPrice)
	}
	if m := results[byID[b.ID]].Metrics; m.PremiumNow == nil || !floatClose(*m.PremiumNow, 0.2) {
		t.Errorf("product B: expected premium 0.2, got %v", m.PremiumNow)
	}
	if m := results[byID[c.ID]].Metrics; m.LastPrice != nil || m.Score != nil {
		t.Errorf("product C: expected empty metrics without observations, got %+v", m)
	}
}

// TestGetProducts tests listing with the latest observed price attached.
func TestGetProducts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMarketService(t, db)

	product := testutil.NewProduct().Build(t, db)
	testutil.AddObservation(t, db, product.ID,
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 130)
	testutil.AddObservation(t, db, product.ID,
		time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), 135)

	products, err := svc.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].LatestPrice == nil || *products[0].LatestPrice != 135 {
		t.Errorf("expected latest price 135, got %v", products[0].LatestPrice)
	}
}

// TestCreateProductAndAddObservation tests the catalog-management write path.
//
// WHY: manual entry is the fallback when ingestion lags; validation must
// reject unusable rows before they pollute the series.
func TestCreateProductAndAddObservation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMarketService(t, db)

	t.Run("creates with defaults and validates", func(t *testing.T) {
		product, err := svc.CreateProduct(model.Product{Name: "Display 151", RetailPrice: 120})
		if err != nil {
			t.Fatalf("CreateProduct failed: %v", err)
		}
		if product.ID == "" || product.Language != "fr" {
			t.Errorf("expected generated ID and default language, got %+v", product)
		}

		if _, err := svc.CreateProduct(model.Product{RetailPrice: 50}); !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("expected ErrMissingRequiredField for a nameless product, got %v", err)
		}
		if _, err := svc.CreateProduct(model.Product{Name: "x", RetailPrice: -1}); !errors.Is(err, apperrors.ErrNegativePrice) {
			t.Errorf("expected ErrNegativePrice, got %v", err)
		}
	})

	t.Run("records observations against existing products only", func(t *testing.T) {
		product := testutil.NewProduct().Build(t, db)
		observedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

		obs, err := svc.AddObservation(product.ID, observedAt, 135, "")
		if err != nil {
			t.Fatalf("AddObservation failed: %v", err)
		}
		if obs.ID == "" || obs.Source != "manual" {
			t.Errorf("expected generated ID and manual source, got %+v", obs)
		}

		if _, err := svc.AddObservation(product.ID, observedAt, 0, ""); !errors.Is(err, apperrors.ErrNegativePrice) {
			t.Errorf("expected ErrNegativePrice for zero price, got %v", err)
		}
		if _, err := svc.AddObservation("00000000-0000-0000-0000-000000000000", observedAt, 10, ""); !errors.Is(err, apperrors.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}

		// The observation shows up in the product's history.
		pm, err := svc.GetProductMetrics(product.ID, observedAt)
		if err != nil {
			t.Fatalf("GetProductMetrics failed: %v", err)
		}
		if pm.Metrics.LastPrice == nil || *pm.Metrics.LastPrice != 135 {
			t.Errorf("expected last price 135, got %v", pm.Metrics.LastPrice)
		}
	})
}

func floatClose(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}
