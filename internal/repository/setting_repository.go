package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves one setting by key.
func (r *SettingRepository) GetSetting(key string) (model.Setting, error) {
	query := `
        SELECT key, value, is_encrypted, updated_at
        FROM setting
        WHERE key = ?
    `

	var s model.Setting
	var updatedAt string
	err := r.db.QueryRow(query, key).Scan(&s.Key, &s.Value, &s.IsEncrypted, &updatedAt)
	if err == sql.ErrNoRows {
		return model.Setting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting table: %w", err)
	}

	t, err := parseSettingTime(updatedAt)
	if err != nil {
		return model.Setting{}, err
	}
	s.UpdatedAt = t
	return s, nil
}

// UpsertSetting inserts or replaces one setting.
func (r *SettingRepository) UpsertSetting(s model.Setting) error {
	query := `
        INSERT INTO setting (key, value, is_encrypted, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (key) DO UPDATE SET
            value = excluded.value,
            is_encrypted = excluded.is_encrypted,
            updated_at = excluded.updated_at
    `
	_, err := r.db.Exec(query, s.Key, s.Value, s.IsEncrypted, s.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

func parseSettingTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse setting timestamp %q", s)
}
