package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// PriceRepository provides data access methods for the price_observation table.
type PriceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) WithTx(tx *sql.Tx) *PriceRepository {
	return &PriceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PriceRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPricesForProduct retrieves all observations for one product, oldest first.
func (r *PriceRepository) GetPricesForProduct(productID string) ([]model.PriceObservation, error) {
	query := `
        SELECT id, product_id, observed_at, price, source, listing_url
        FROM price_observation
        WHERE product_id = ?
        ORDER BY observed_at ASC
    `

	rows, err := r.getQuerier().Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_observation table: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// GetPricesForProducts retrieves all observations for the given products in
// one query, keyed by product ID. Products with no observations are absent
// from the map.
func (r *PriceRepository) GetPricesForProducts(productIDs []string) (map[string][]model.PriceObservation, error) {
	result := make(map[string][]model.PriceObservation)
	if len(productIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(productIDs))
	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
        SELECT id, product_id, observed_at, price, source, listing_url
        FROM price_observation
        WHERE product_id IN (` + strings.Join(placeholders, ",") + `)
        ORDER BY product_id, observed_at ASC
    `

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_observation table: %w", err)
	}
	defer rows.Close()

	observations, err := scanObservations(rows)
	if err != nil {
		return nil, err
	}
	for _, obs := range observations {
		result[obs.ProductID] = append(result[obs.ProductID], obs)
	}
	return result, nil
}

// AddObservation inserts one raw price observation.
func (r *PriceRepository) AddObservation(obs model.PriceObservation) (model.PriceObservation, error) {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}

	query := `
        INSERT INTO price_observation (id, product_id, observed_at, price, source, listing_url)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query,
		obs.ID, obs.ProductID, obs.ObservedAt.UTC().Format(time.RFC3339), obs.Price, obs.Source, obs.ListingURL)
	if err != nil {
		return model.PriceObservation{}, fmt.Errorf("failed to insert price observation: %w", err)
	}
	return obs, nil
}

func scanObservations(rows *sql.Rows) ([]model.PriceObservation, error) {
	observations := []model.PriceObservation{}
	for rows.Next() {
		var obs model.PriceObservation
		var observedAt string
		var listingURL sql.NullString

		err := rows.Scan(&obs.ID, &obs.ProductID, &observedAt, &obs.Price, &obs.Source, &listingURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price_observation row: %w", err)
		}

		t, err := parseObservedAt(observedAt)
		if err != nil {
			return nil, err
		}
		obs.ObservedAt = t
		if listingURL.Valid {
			obs.ListingURL = listingURL.String
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_observation table: %w", err)
	}
	return observations, nil
}

// parseObservedAt tolerates the two timestamp layouts SQLite hands back.
func parseObservedAt(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse observation timestamp %q", s)
}
