package pad

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore implements Store with one JSON record per pad at
// {dir}/{handle}.json. Commits write {handle}.json.tmp and rename it
// over the record, so a crash mid-write leaves the prior state intact.
// Cross-process exclusion uses a flock on {handle}.lock.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// padRecord is the durable pad representation. Data marshals to
// standard base64 under encoding/json.
type padRecord struct {
	TotalLength int    `json:"total_length"`
	Offset      int    `json:"offset"`
	Data        []byte `json:"data"`
}

// NewFileStore creates a file-based pad store rooted at dir.
// The directory is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store directory", ErrIOFailure)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &FileStore{dir: dir}, nil
}

// padPath returns the record path for a handle.
func (fs *FileStore) padPath(handle string) string {
	return filepath.Join(fs.dir, handle+".json")
}

// lockPath returns the lock file path for a handle.
func (fs *FileStore) lockPath(handle string) string {
	return filepath.Join(fs.dir, handle+".lock")
}

// Load reads and validates the pad stored under handle.
func (fs *FileStore) Load(handle string) (*Pad, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.load(handle)
}

// load reads a record without taking the store mutex.
func (fs *FileStore) load(handle string) (*Pad, error) {
	raw, err := os.ReadFile(fs.padPath(handle))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrPadNotFound, handle)
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	var rec padRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPad, err)
	}
	if rec.TotalLength != len(rec.Data) {
		return nil, fmt.Errorf("%w: total_length %d but %d data bytes", ErrCorruptPad, rec.TotalLength, len(rec.Data))
	}

	p, err := FromParts(rec.Data, rec.Offset)
	if err != nil {
		return nil, err
	}
	p.handle = handle
	return p, nil
}

// Create generates a fresh pad of the given length and persists it
// immediately with offset zero.
func (fs *FileStore) Create(handle string, length int) (*Pad, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, err := os.Stat(fs.padPath(handle)); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrPadExists, handle)
	}

	p, err := Generate(length)
	if err != nil {
		return nil, err
	}
	p.handle = handle

	if err := fs.save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadOrCreate loads the pad for handle, creating one of the given
// length if none exists yet.
func (fs *FileStore) LoadOrCreate(handle string, length int) (*Pad, error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	p, err := fs.load(handle)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPadNotFound) {
		return nil, err
	}

	p, err = Generate(length)
	if err != nil {
		return nil, err
	}
	p.handle = handle
	if err := fs.save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Commit advances the offset by n and persists the full pad state.
// A persistence failure rolls the in-memory offset back so it keeps
// matching the durable state.
func (fs *FileStore) Commit(p *Pad, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if n > p.Remaining() {
		return fmt.Errorf("%w: need %d, have %d", ErrPadExhausted, n, p.Remaining())
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	p.advance(n)
	if err := fs.save(p); err != nil {
		p.rewind(n)
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	return nil
}

// save writes the pad record to a temporary file and atomically renames
// it into place.
func (fs *FileStore) save(p *Pad) error {
	rec := padRecord{
		TotalLength: len(p.data),
		Offset:      p.offset,
		Data:        p.data,
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("pad: marshal record: %w", err)
	}

	path := fs.padPath(p.handle)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Handles lists all stored pad handles.
func (fs *FileStore) Handles() ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	var handles []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		handle := strings.TrimSuffix(name, ".json")
		if validateHandle(handle) != nil {
			continue
		}
		handles = append(handles, handle)
	}
	return handles, nil
}

// Lock acquires an exclusive cross-process flock for the handle.
func (fs *FileStore) Lock(handle string) (func(), error) {
	if err := validateHandle(handle); err != nil {
		return nil, err
	}
	f, err := acquireLock(fs.lockPath(handle))
	if err != nil {
		return nil, err
	}
	return func() { releaseLock(f) }, nil
}

// Close is a no-op for FileStore; it holds no open resources between
// operations.
func (fs *FileStore) Close() error { return nil }
