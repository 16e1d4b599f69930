package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shikshanam/internal/models"
)

// KeyPrefix namespaces every stored profile record
const KeyPrefix = "shikshanamUserData"

// KV is the durable key-value backend behind the profile store
type KV interface {
	// Get returns the stored value and whether one exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value for key
	Set(ctx context.Context, key, value string) error
}

// ProfileStore reads and writes one ProfileRecord per visitor
type ProfileStore struct {
	kv KV
}

// NewProfileStore creates a profile store over the given backend
func NewProfileStore(kv KV) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Key returns the storage key of a visitor's record
func Key(visitorID string) string {
	return KeyPrefix + ":" + visitorID
}

// Load returns the visitor's record, or a default record when nothing usable
// is stored. Backend and decode errors are logged, never returned.
func (s *ProfileStore) Load(ctx context.Context, visitorID string) models.ProfileRecord {
	raw, ok, err := s.kv.Get(ctx, Key(visitorID))
	if err != nil {
		log.Printf("Error reading profile for %s: %v", visitorID, err)
		return models.NewProfileRecord()
	}
	if !ok {
		return models.NewProfileRecord()
	}

	record, err := Decode(raw)
	if err != nil {
		log.Printf("Discarding unreadable profile for %s: %v", visitorID, err)
		return models.NewProfileRecord()
	}
	return record
}

// Save overwrites the visitor's stored record
func (s *ProfileStore) Save(ctx context.Context, visitorID string, record models.ProfileRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, Key(visitorID), string(data)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Decode parses a stored record. A JSON null counts as no record.
func Decode(raw string) (models.ProfileRecord, error) {
	var record *models.ProfileRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return models.ProfileRecord{}, err
	}
	if record == nil {
		return models.ProfileRecord{}, fmt.Errorf("stored profile is null")
	}
	record.Normalize()
	return *record, nil
}
