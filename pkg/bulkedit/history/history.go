// Package history provides a Badger DB-backed journal of applied batches.
// Every successful rename or remove batch is appended as a record; the
// journal is inspection-only and never participates in applying or
// undoing operations.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// keyPrefix namespaces journal records inside the database.
const keyPrefix = "b:"

// Record is one journal entry describing an applied batch.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// Timestamp is when the batch finished applying.
	Timestamp time.Time `json:"timestamp"`

	// Operation is the workflow that produced the batch.
	Operation types.Operation `json:"operation"`

	// Renamed contains the applied rename pairs.
	Renamed []types.RenamePair `json:"renamed,omitempty"`

	// Removed contains the removed paths.
	Removed []string `json:"removed,omitempty"`

	// Failed is the number of entries that could not be applied.
	Failed int `json:"failed"`

	// BytesFreed is the total size reclaimed by a remove batch.
	BytesFreed int64 `json:"bytes_freed,omitempty"`
}

// FromReport builds a journal record from an applied batch report.
func FromReport(rep *types.Report) Record {
	return Record{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Operation:  rep.Operation,
		Renamed:    rep.Renamed,
		Removed:    rep.Removed,
		Failed:     len(rep.Failed),
		BytesFreed: rep.BytesFreed,
	}
}

// Journal is the batch journal backed by Badger DB.
type Journal struct {
	db *badger.DB
}

// Open opens or creates a journal at the given path.
func Open(path string) (*Journal, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is noise here.

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening journal at %q: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append stores a record. Keys embed a fixed-width nanosecond timestamp
// so Badger's byte order is chronological; variable-width stamps would
// misorder records within the same second.
func (j *Journal) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	key := fmt.Sprintf("%s%020d-%s", keyPrefix, rec.Timestamp.UnixNano(), rec.ID)
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

// List returns records newest-first. A non-positive limit returns all.
func (j *Journal) List(limit int) ([]Record, error) {
	var records []Record

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek key past the prefix range.
		seek := append([]byte(keyPrefix), 0xFF)
		prefix := []byte(keyPrefix)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				continue // Skip records that no longer parse.
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Prune removes records older than retentionDays.
func (j *Journal) Prune(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	var stale [][]byte
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil || rec.Timestamp.Before(cutoff) {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning journal: %w", err)
	}

	return j.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops every record from the journal.
func (j *Journal) Clear() error {
	return j.db.DropAll()
}
