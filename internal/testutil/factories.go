package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// ProductBuilder provides a fluent interface for creating test products.
//
// Example usage:
//
//	// Simple creation with defaults
//	product := testutil.NewProduct().Build(t, db)
//
//	// Customized product
//	product := testutil.NewProduct().
//	    WithName("Display Écarlate et Violet").
//	    WithSeries("ev").
//	    WithRetailPrice(159.99).
//	    Build(t, db)
type ProductBuilder struct {
	ID          string
	Name        string
	SeriesName  string
	RetailPrice float64
	EAN         string
	Language    string
}

// NewProduct creates a ProductBuilder with sensible defaults.
func NewProduct() *ProductBuilder {
	return &ProductBuilder{
		ID:          uuid.New().String(),
		Name:        "Test Booster Box",
		SeriesName:  "test-series",
		RetailPrice: 100,
		Language:    "fr",
	}
}

// WithID sets a custom ID.
func (b *ProductBuilder) WithID(id string) *ProductBuilder {
	b.ID = id
	return b
}

// WithName sets a custom display name.
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

// WithSeries sets a custom series name.
func (b *ProductBuilder) WithSeries(series string) *ProductBuilder {
	b.SeriesName = series
	return b
}

// WithRetailPrice sets the retail price. Use 0 for "unknown retail".
func (b *ProductBuilder) WithRetailPrice(price float64) *ProductBuilder {
	b.RetailPrice = price
	return b
}

// Build inserts the product and returns its model.
func (b *ProductBuilder) Build(t *testing.T, db *sql.DB) model.Product {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO product (id, name, series_name, retail_price, ean, language)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.SeriesName, b.RetailPrice, b.EAN, b.Language)
	if err != nil {
		t.Fatalf("Failed to insert test product: %v", err)
	}

	return model.Product{
		ID:          b.ID,
		Name:        b.Name,
		SeriesName:  b.SeriesName,
		RetailPrice: b.RetailPrice,
		EAN:         b.EAN,
		Language:    b.Language,
	}
}

// AddObservation inserts one raw price observation for a product.
func AddObservation(t *testing.T, db *sql.DB, productID string, observedAt time.Time, price float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO price_observation (id, product_id, observed_at, price, source)
		VALUES (?, ?, ?, ?, 'test')
	`, uuid.New().String(), productID, observedAt.UTC().Format(time.RFC3339), price)
	if err != nil {
		t.Fatalf("Failed to insert test observation: %v", err)
	}
}

// AddDailyPrices inserts one observation per day starting at start, one day
// apart, at noon UTC.
func AddDailyPrices(t *testing.T, db *sql.DB, productID string, start time.Time, prices []float64) {
	t.Helper()

	for i, price := range prices {
		observedAt := start.AddDate(0, 0, i).Add(12 * time.Hour)
		AddObservation(t, db, productID, observedAt, price)
	}
}
