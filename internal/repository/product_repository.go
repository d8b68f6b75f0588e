package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// ProductRepository provides data access methods for the product table.
type ProductRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewProductRepository creates a new ProductRepository with the provided database connection.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) WithTx(tx *sql.Tx) *ProductRepository {
	return &ProductRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ProductRepository) getQuerier() interface {
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

// GetProducts retrieves all products with their latest observed price.
// Products that have never been observed carry a NULL latest price.
func (r *ProductRepository) GetProducts() ([]model.Product, error) {
	query := `
        SELECT p.id, p.name, p.series_name, p.retail_price, p.ean, p.language, p.released_on, latest.price
        FROM product p
        LEFT JOIN (
            SELECT po.product_id, po.price
            FROM price_observation po
            INNER JOIN (
                SELECT product_id, MAX(observed_at) AS latest_at
                FROM price_observation
                GROUP BY product_id
            ) m ON po.product_id = m.product_id AND po.observed_at = m.latest_at
        ) latest ON latest.product_id = p.id
        ORDER BY p.name
    `

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query product table: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product table: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID, with its latest observed price.
func (r *ProductRepository) GetProduct(productID string) (model.Product, error) {
	query := `
        SELECT p.id, p.name, p.series_name, p.retail_price, p.ean, p.language, p.released_on, latest.price
        FROM product p
        LEFT JOIN (
            SELECT po.product_id, po.price
            FROM price_observation po
            INNER JOIN (
                SELECT product_id, MAX(observed_at) AS latest_at
                FROM price_observation
                GROUP BY product_id
            ) m ON po.product_id = m.product_id AND po.observed_at = m.latest_at
        ) latest ON latest.product_id = p.id
        WHERE p.id = ?
    `

	row := r.getQuerier().QueryRow(query, productID)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return model.Product{}, apperrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// CreateProduct inserts a new product and returns it with its generated ID.
func (r *ProductRepository) CreateProduct(p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	var releasedOn any
	if p.ReleasedOn != nil {
		releasedOn = p.ReleasedOn.UTC().Format("2006-01-02")
	}

	query := `
        INSERT INTO product (id, name, series_name, retail_price, ean, language, released_on)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query, p.ID, p.Name, p.SeriesName, p.RetailPrice, p.EAN, p.Language, releasedOn)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var ean sql.NullString
	var releasedOn sql.NullTime
	var latestPrice sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SeriesName,
		&p.RetailPrice,
		&ean,
		&p.Language,
		&releasedOn,
		&latestPrice,
	)
	if err == sql.ErrNoRows {
		return model.Product{}, err
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to scan product row: %w", err)
	}

	if ean.Valid {
		p.EAN = ean.String
	}
	if releasedOn.Valid {
		released := releasedOn.Time.UTC()
		p.ReleasedOn = &released
	}
	if latestPrice.Valid {
		price := latestPrice.Float64
		p.LatestPrice = &price
	}
	return p, nil
}
