package repository

import (
	"context"
	"database/sql"
	"errors"

	"studyaid/internal/database"
)

// PreferenceRepository stores per-visitor key/value preferences
type PreferenceRepository struct {
	db database.DBTX
}

func NewPreferenceRepository(db database.DBTX) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get retrieves a preference value. ok is false when the visitor has never set the key.
func (r *PreferenceRepository) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var value string
	query := `SELECT pref_value FROM preferences WHERE visitor_id = ? AND pref_key = ?`
	err := r.db.QueryRowContext(ctx, query, visitorID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set updates or inserts a preference
func (r *PreferenceRepository) Set(ctx context.Context, visitorID, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.GetDialect().UpsertPreferenceQuery(), visitorID, key, value)
	return err
}

// Ping reports whether the backing database is reachable
func (r *PreferenceRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
