package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"shikshanam/internal/database"
	"shikshanam/internal/repository"
	"shikshanam/internal/storage"
)

const backupVersion = "1.0"

// BackupData is the JSON document written by Export
type BackupData struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Records    []RecordBackup `json:"records"`
}

// RecordBackup is one stored profile record
type RecordBackup struct {
	Key     string          `json:"key"`
	Profile json.RawMessage `json:"profile"`
}

// BackupService exports and restores the profile_records table
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// ExportToWriter writes every stored record as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (int, error) {
	stored, err := repository.NewRecordRepository(s.db).List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to export records: %w", err)
	}

	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Records:    make([]RecordBackup, 0, len(stored)),
	}
	for _, rec := range stored {
		if !json.Valid([]byte(rec.Data)) {
			log.Printf("Skipping unreadable record %s during export", rec.Key)
			continue
		}
		backup.Records = append(backup.Records, RecordBackup{Key: rec.Key, Profile: json.RawMessage(rec.Data)})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}
	return len(backup.Records), nil
}

// ImportFromReader restores records from a backup in one transaction,
// overwriting records with the same key. With clear set, every stored record
// is deleted first. Records that do not decode as a profile are skipped.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clear bool) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := repository.NewRecordRepository(tx)
	if clear {
		if err := repo.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("failed to clear records: %w", err)
		}
	}

	imported := 0
	for _, rec := range backup.Records {
		profile, err := storage.Decode(string(rec.Profile))
		if err != nil || rec.Key == "" {
			log.Printf("Skipping invalid record %q: %v", rec.Key, err)
			continue
		}

		data, err := json.Marshal(profile)
		if err != nil {
			return 0, fmt.Errorf("failed to encode record %s: %w", rec.Key, err)
		}
		if err := repo.Set(ctx, rec.Key, string(data)); err != nil {
			return 0, fmt.Errorf("failed to import record %s: %w", rec.Key, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return imported, nil
}
