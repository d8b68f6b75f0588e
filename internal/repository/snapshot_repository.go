package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// SnapshotRepository persists the daily audit trail of the ISP-FR index.
// One row per calendar day; re-running the snapshot job for the same day
// overwrites the existing row.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot inserts or replaces the snapshot for its date.
func (r *SnapshotRepository) UpsertSnapshot(snap model.IndexSnapshot) (model.IndexSnapshot, error) {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}

	query := `
        INSERT INTO index_snapshot (id, date, value, item_count, daily_change)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (date) DO UPDATE SET
            value = excluded.value,
            item_count = excluded.item_count,
            daily_change = excluded.daily_change
    `
	_, err := r.db.Exec(query,
		snap.ID, snap.Date.UTC().Format("2006-01-02"), snap.Value, snap.ItemCount, snap.DailyChange)
	if err != nil {
		return model.IndexSnapshot{}, fmt.Errorf("failed to upsert index snapshot: %w", err)
	}
	return snap, nil
}

// GetSnapshots retrieves all persisted snapshots, oldest first.
func (r *SnapshotRepository) GetSnapshots() ([]model.IndexSnapshot, error) {
	query := `
        SELECT id, date, value, item_count, daily_change
        FROM index_snapshot
        ORDER BY date ASC
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query index_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.IndexSnapshot{}
	for rows.Next() {
		var snap model.IndexSnapshot
		var date string
		if err := rows.Scan(&snap.ID, &date, &snap.Value, &snap.ItemCount, &snap.DailyChange); err != nil {
			return nil, fmt.Errorf("failed to scan index_snapshot row: %w", err)
		}
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date %q: %w", date, err)
		}
		snap.Date = t.UTC()
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating index_snapshot table: %w", err)
	}
	return snapshots, nil
}
