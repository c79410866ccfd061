package watch

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

var (
	profileBucket = []byte("profile")
	profileKey    = []byte("local")
)

// ProfileStore persists the single user profile in a local bbolt file.
// A missing or undecodable stored value falls back to defaults instead
// of failing; save is a wholesale overwrite, never a merge.
type ProfileStore struct {
	db       *bolt.DB
	logger   *logger.Logger
	onChange []func()
}

// OpenProfileStore opens (creating if needed) the profile database at
// path.
func OpenProfileStore(path string, log *logger.Logger) (*ProfileStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(profileBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init profile store: %w", err)
	}
	return &ProfileStore{db: db, logger: log}, nil
}

// OnChange registers a callback invoked after every successful save.
// The recommendation panel uses this to drop results computed against
// the old profile.
func (s *ProfileStore) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Load reads the stored profile, returning defaults when nothing has
// been saved yet or the stored bytes cannot be decoded.
func (s *ProfileStore) Load() entity.UserProfile {
	var raw []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(profileBucket).Get(profileKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return entity.DefaultProfile()
	}

	var p entity.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("Stored profile unreadable, using defaults", logger.ErrorField(err))
		return entity.DefaultProfile()
	}
	p.UserID = "local"
	return p.Normalized()
}

// Save overwrites the stored profile and notifies change listeners.
func (s *ProfileStore) Save(p entity.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(profileBucket).Put(profileKey, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	for _, fn := range s.onChange {
		fn()
	}
	return nil
}

// Close releases the underlying database file.
func (s *ProfileStore) Close() error {
	return s.db.Close()
}
