// Package history records pipeline runs in a local BoltDB database.
//
// Each run is stored as a JSON document keyed by a UUIDv7. UUIDv7 values sort
// by creation time, so iterating the bucket backwards yields the newest runs
// first without a secondary index.
//
// History is informational only: nothing in a build reads it back, and no
// build output is ever reused from it.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	// DefaultDir is the default history directory name, inside the project
	DefaultDir = ".issbuild"

	dbFile = "history.db"

	// bucketName is the BoltDB bucket name for run entries
	bucketName = "runs"
)

// Store manages recorded runs using BoltDB
type Store struct {
	db   *bbolt.DB
	root string
}

// Open opens or creates the history database in dir.
// If dir is empty, uses DefaultDir in current working directory
func Open(dir string) (*Store, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		dir = filepath.Join(cwd, DefaultDir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dir, dbFile), 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &Store{
		db:   db,
		root: dir,
	}, nil
}

// Exists reports whether dir holds a history database
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, dbFile))
	return err == nil && !info.IsDir()
}

// Close closes the history database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return filepath.Join(s.root, dbFile)
}

// Record stores an entry, assigning a new ID if it has none
func (s *Store) Record(entry *Entry) error {
	if entry.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate entry id: %w", err)
		}

		entry.ID = id
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(entry.ID[:], data)
	})
	if err != nil {
		return fmt.Errorf("failed to store history entry: %w", err)
	}

	return nil
}

// Get retrieves an entry by ID. Returns nil if not found
func (s *Store) Get(id uuid.UUID) (*Entry, error) {
	var entry *Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get(id[:])
		if data == nil {
			return nil
		}

		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history entry: %w", err)
	}

	return entry, nil
}

// List returns up to limit entries, newest first. A limit of zero or less returns all
func (s *Store) List(limit int) ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketName)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}

			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt entry %x: %w", k, err)
			}

			entries = append(entries, entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Last returns the most recent entry, or nil if there is none
func (s *Store) Last() (*Entry, error) {
	entries, err := s.List(1)
	if err != nil || len(entries) == 0 {
		return nil, err
	}

	return &entries[0], nil
}

// Clear removes all entries
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// Stats returns the number of recorded runs and how many succeeded
func (s *Store) Stats() (int, int, error) {
	var total, succeeded int

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}

			total++
			if entry.Success {
				succeeded++
			}

			return nil
		})
	})
	if err != nil {
		return 0, 0, err
	}

	return total, succeeded, nil
}
