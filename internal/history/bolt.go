// Package history keeps a local record of past builds in a bbolt database.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// MaxRecords bounds the number of builds kept by Put.
const MaxRecords = 500

// Bucket names
var (
	bucketBuilds = []byte("builds") // time-ordered key -> record
	bucketIDs    = []byte("ids")    // build ID -> time-ordered key
)

// Store is a build history backed by BoltDB.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBuilds, bucketIDs} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// recordKey orders records by start time, then by ID.
func recordKey(r *Record) []byte {
	key := make([]byte, 8, 8+len(r.ID))
	binary.BigEndian.PutUint64(key, uint64(r.StartedAt.UnixNano()))
	return append(key, r.ID...)
}

// Put stores r, replacing any record with the same ID, and drops the oldest
// records beyond MaxRecords.
func (s *Store) Put(r *Record) error {
	if r.ID == "" {
		return fmt.Errorf("history record has no ID")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		builds := tx.Bucket(bucketBuilds)
		ids := tx.Bucket(bucketIDs)

		if old := ids.Get([]byte(r.ID)); old != nil {
			if err := builds.Delete(old); err != nil {
				return err
			}
		}
		key := recordKey(r)
		if err := builds.Put(key, data); err != nil {
			return err
		}
		if err := ids.Put([]byte(r.ID), key); err != nil {
			return err
		}
		return prune(builds, ids, MaxRecords)
	})
}

// prune deletes the oldest records until at most keep remain.
func prune(builds, ids *bolt.Bucket, keep int) error {
	var keys [][]byte
	c := builds.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte{}, k...))
	}
	if len(keys) <= keep {
		return nil
	}
	for _, k := range keys[:len(keys)-keep] {
		if err := ids.Delete(k[8:]); err != nil {
			return err
		}
		if err := builds.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the record for a build ID.
func (s *Store) Get(id string) (*Record, error) {
	var r *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(bucketIDs).Get([]byte(id))
		if key == nil {
			return &NotFoundError{ID: id}
		}
		data := tx.Bucket(bucketBuilds).Get(key)
		if data == nil {
			return &NotFoundError{ID: id}
		}
		r = &Record{}
		return json.Unmarshal(data, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *Store) List(limit int) ([]*Record, error) {
	var records []*Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketBuilds).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to decode record: %w", err)
			}
			records = append(records, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBuilds, bucketIDs} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
