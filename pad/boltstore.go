package pad

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketPads = []byte("pads")

// BoltStore implements Store on a bbolt database. bbolt transactions
// provide the atomic-replace guarantee for commits, and the open
// database file holds an exclusive OS lock, so Lock is satisfied for
// the whole lifetime of the store handle.
type BoltStore struct {
	db *bbolt.DB
}

// boltPadRecord is the gob-encoded durable pad representation.
type boltPadRecord struct {
	TotalLength int
	Offset      int
	Data        []byte
}

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrIOFailure, err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %w", ErrIOFailure, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPads)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrIOFailure, err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Load reads and validates the pad stored under handle.
func (s *BoltStore) Load(handle string) (*Pad, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}

	var p *Pad
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketPads).Get([]byte(handle))
		if raw == nil {
			return fmt.Errorf("%w: %q", ErrPadNotFound, handle)
		}
		var innerErr error
		p, innerErr = decodePadRecord(raw)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	p.handle = handle
	return p, nil
}

// Create generates and persists a fresh pad of the given length.
func (s *BoltStore) Create(handle string, length int) (*Pad, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}
	p, err := Generate(length)
	if err != nil {
		return nil, err
	}
	p.handle = handle

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPads)
		if b.Get([]byte(handle)) != nil {
			return fmt.Errorf("%w: %q", ErrPadExists, handle)
		}
		raw, encErr := encodePadRecord(p)
		if encErr != nil {
			return encErr
		}
		return b.Put([]byte(handle), raw)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// LoadOrCreate loads the pad for handle, creating one of the given
// length if none exists yet.
func (s *BoltStore) LoadOrCreate(handle string, length int) (*Pad, error) {
	p, err := s.Load(handle)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPadNotFound) {
		return nil, err
	}
	return s.Create(handle, length)
}

// Commit advances the offset by n and persists the full pad state in a
// single bbolt transaction.
func (s *BoltStore) Commit(p *Pad, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if n > p.Remaining() {
		return fmt.Errorf("%w: need %d, have %d", ErrPadExhausted, n, p.Remaining())
	}

	p.advance(n)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		raw, encErr := encodePadRecord(p)
		if encErr != nil {
			return encErr
		}
		return tx.Bucket(bucketPads).Put([]byte(p.handle), raw)
	})
	if err != nil {
		p.rewind(n)
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	return nil
}

// Handles lists all stored pad handles.
func (s *BoltStore) Handles() ([]string, error) {
	var handles []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPads).ForEach(func(k, _ []byte) error {
			handles = append(handles, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return handles, nil
}

// Lock is a no-op release: the open database file already holds an
// exclusive OS lock that excludes other processes.
func (s *BoltStore) Lock(handle string) (func(), error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}
	return func() {}, nil
}

// encodePadRecord serializes a pad using gob encoding.
func encodePadRecord(p *Pad) ([]byte, error) {
	rec := boltPadRecord{
		TotalLength: len(p.data),
		Offset:      p.offset,
		Data:        p.data,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("pad: encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// decodePadRecord deserializes and validates a gob-encoded pad record.
func decodePadRecord(raw []byte) (*Pad, error) {
	var rec boltPadRecord
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPad, err)
	}
	if rec.TotalLength != len(rec.Data) {
		return nil, fmt.Errorf("%w: total_length %d but %d data bytes", ErrCorruptPad, rec.TotalLength, len(rec.Data))
	}
	return FromParts(rec.Data, rec.Offset)
}
