package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Product table
		CREATE TABLE product (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			series_name VARCHAR(100) NOT NULL DEFAULT '',
			retail_price REAL NOT NULL DEFAULT 0,
			ean VARCHAR(13),
			language VARCHAR(5) NOT NULL DEFAULT 'fr',
			released_on DATE
		);

		-- Raw price observations
		CREATE TABLE price_observation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			product_id VARCHAR(36) NOT NULL,
			observed_at DATETIME NOT NULL,
			price REAL NOT NULL,
			source VARCHAR(30) NOT NULL DEFAULT '',
			listing_url TEXT,
			FOREIGN KEY (product_id) REFERENCES product (id) ON DELETE CASCADE
		);

		CREATE INDEX idx_price_observation_product_date
			ON price_observation (product_id, observed_at);

		-- Daily index snapshot trail
		CREATE TABLE index_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			value REAL NOT NULL,
			item_count INTEGER NOT NULL DEFAULT 0,
			daily_change REAL NOT NULL DEFAULT 0
		);

		-- Settings
		CREATE TABLE setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			is_encrypted BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
