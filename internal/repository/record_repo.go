package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shikshanam/internal/database"
)

// StoredRecord is one raw row of profile_records
type StoredRecord struct {
	Key  string
	Data string
}

// RecordRepository is a key-value store over the profile_records table
type RecordRepository struct {
	db database.DBTX
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db database.DBTX) *RecordRepository {
	return &RecordRepository{db: db}
}

// Get returns the value stored under key. ok is false when no row exists.
func (r *RecordRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM profile_records WHERE storage_key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return data, true, nil
}

// Set overwrites the value stored under key
func (r *RecordRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, r.db.GetDialect().UpsertRecordQuery(), key, value); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// List returns every stored record ordered by key
func (r *RecordRepository) List(ctx context.Context) ([]StoredRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT storage_key, data FROM profile_records ORDER BY storage_key")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []StoredRecord
	for rows.Next() {
		var rec StoredRecord
		if err := rows.Scan(&rec.Key, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteAll removes every stored record
func (r *RecordRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM profile_records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
