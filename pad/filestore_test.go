package pad

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helper functions ---

// newTestFileStore creates a FileStore in a temporary directory.
func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// writeRecord writes a raw pad record file under the store directory.
func writeRecord(t *testing.T, fs *FileStore, handle, raw string) {
	t.Helper()
	require.NoError(t, os.WriteFile(fs.padPath(handle), []byte(raw), 0600))
}

// --- NewFileStore tests ---

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pads")
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.NotNil(t, store)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.ErrorIs(t, err, ErrIOFailure)
}

// --- Create / Load tests ---

func TestFileStore_CreateAndLoad(t *testing.T) {
	store := newTestFileStore(t)

	created, err := store.Create("alice", 64)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Handle())
	assert.Equal(t, 64, created.TotalLength())
	assert.Equal(t, 0, created.Offset())

	loaded, err := store.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, created.data, loaded.data)
	assert.Equal(t, created.Fingerprint(), loaded.Fingerprint())
}

func TestFileStore_CreateExisting(t *testing.T) {
	store := newTestFileStore(t)
	_, err := store.Create("alice", 64)
	require.NoError(t, err)

	_, err = store.Create("alice", 64)
	assert.ErrorIs(t, err, ErrPadExists)
}

func TestFileStore_CreateInvalidLength(t *testing.T) {
	store := newTestFileStore(t)
	_, err := store.Create("alice", 0)
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = store.Create("alice", -5)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := newTestFileStore(t)
	_, err := store.Load("nobody")
	assert.ErrorIs(t, err, ErrPadNotFound)
}

func TestFileStore_InvalidHandle(t *testing.T) {
	store := newTestFileStore(t)

	tests := []struct {
		name   string
		handle string
	}{
		{"empty", ""},
		{"dot", "."},
		{"dotdot", ".."},
		{"slash", "a/b"},
		{"backslash", `a\b`},
		{"space", "a b"},
		{"traversal", "../../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Load(tt.handle)
			assert.ErrorIs(t, err, ErrInvalidHandle)
			_, err = store.Create(tt.handle, 16)
			assert.ErrorIs(t, err, ErrInvalidHandle)
		})
	}
}

// --- LoadOrCreate tests ---

func TestFileStore_LoadOrCreate(t *testing.T) {
	store := newTestFileStore(t)

	p1, err := store.LoadOrCreate("bob", 32)
	require.NoError(t, err)

	// Second call loads the same pad; length is ignored for existing pads.
	p2, err := store.LoadOrCreate("bob", 9999)
	require.NoError(t, err)
	assert.Equal(t, p1.data, p2.data)
	assert.Equal(t, 32, p2.TotalLength())
}

// --- Commit tests ---

func TestFileStore_CommitPersists(t *testing.T) {
	store := newTestFileStore(t)
	p, err := store.Create("alice", 32)
	require.NoError(t, err)

	require.NoError(t, store.Commit(p, 10))
	assert.Equal(t, 10, p.Offset())

	loaded, err := store.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Offset())
	assert.Equal(t, 22, loaded.Remaining())
	assert.Equal(t, p.data, loaded.data)
}

func TestFileStore_CommitExhausted(t *testing.T) {
	store := newTestFileStore(t)
	p, err := store.Create("alice", 8)
	require.NoError(t, err)

	err = store.Commit(p, 9)
	assert.ErrorIs(t, err, ErrPadExhausted)
	assert.Equal(t, 0, p.Offset())
}

func TestFileStore_CommitFailureRollsBack(t *testing.T) {
	store := newTestFileStore(t)
	p, err := store.Create("alice", 32)
	require.NoError(t, err)
	require.NoError(t, store.Commit(p, 4))

	// Occupy the temp path with a directory so the next commit's write
	// fails before the rename.
	require.NoError(t, os.Mkdir(store.padPath("alice")+".tmp", 0700))

	err = store.Commit(p, 10)
	assert.ErrorIs(t, err, ErrCommitFailed)

	// In-memory offset rolled back to match durable state.
	assert.Equal(t, 4, p.Offset())
	loaded, err := store.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Offset())
}

// --- Persistence tests ---

func TestFileStore_PersistenceIdempotence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	p, err := store.Create("alice", 48)
	require.NoError(t, err)
	require.NoError(t, store.Commit(p, 7))

	// Reopening the store and performing zero operations yields
	// identical offset and data.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	loaded, err := reopened.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, p.data, loaded.data)
	assert.Equal(t, 7, loaded.Offset())
}

func TestFileStore_CrashLeavesPriorState(t *testing.T) {
	store := newTestFileStore(t)
	p, err := store.Create("alice", 16)
	require.NoError(t, err)
	require.NoError(t, store.Commit(p, 3))

	// Simulate a crash mid-commit: a partial temp file exists but the
	// rename never happened. Load must return the pre-commit state.
	require.NoError(t, os.WriteFile(store.padPath("alice")+".tmp", []byte(`{"total_length":16,"off`), 0600))

	loaded, err := store.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Offset())
	assert.Equal(t, p.data, loaded.data)
}

// --- Corrupt record tests ---

func TestFileStore_CorruptRecords(t *testing.T) {
	store := newTestFileStore(t)
	data := base64.StdEncoding.EncodeToString(makePadBytes(8))

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"offset past end", fmt.Sprintf(`{"total_length":8,"offset":9,"data":"%s"}`, data)},
		{"negative offset", fmt.Sprintf(`{"total_length":8,"offset":-1,"data":"%s"}`, data)},
		{"length mismatch", fmt.Sprintf(`{"total_length":99,"offset":0,"data":"%s"}`, data)},
		{"empty data", `{"total_length":0,"offset":0,"data":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeRecord(t, store, "bad", tt.raw)
			_, err := store.Load("bad")
			assert.ErrorIs(t, err, ErrCorruptPad)
		})
	}
}

// --- Handles tests ---

func TestFileStore_Handles(t *testing.T) {
	store := newTestFileStore(t)
	_, err := store.Create("alice", 16)
	require.NoError(t, err)
	_, err = store.Create("bob", 16)
	require.NoError(t, err)

	// Lock files and temp files must not show up as handles.
	release, err := store.Lock("alice")
	require.NoError(t, err)
	release()

	handles, err := store.Handles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, handles)
}
