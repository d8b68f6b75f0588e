package testutil

import (
	"database/sql"
	"testing"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

func NewTestMarketService(t *testing.T, db *sql.DB) *service.MarketService {
	t.Helper()

	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewMarketService(productRepo, priceRepo)
}

func NewTestIndexService(t *testing.T, db *sql.DB) *service.IndexService {
	t.Helper()

	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewIndexService(productRepo, priceRepo, snapshotRepo)
}

func NewTestSeriesService(t *testing.T, db *sql.DB) *service.SeriesService {
	t.Helper()

	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewSeriesService(productRepo, priceRepo)
}

// TestFernetKey is a fixed, URL-safe base64 fernet key for settings tests.
const TestFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)
	svc, err := service.NewSettingsService(settingRepo, TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return svc
}
