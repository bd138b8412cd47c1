package pad

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

// --- Helper functions ---

// newTestBoltStore opens a BoltStore in a temporary directory.
func newTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "pads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// --- Open tests ---

func TestOpenBoltStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "pads.db")
	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

// --- Create / Load tests ---

func TestBoltStore_CreateAndLoad(t *testing.T) {
	store := newTestBoltStore(t)

	created, err := store.Create("alice", 64)
	require.NoError(t, err)
	assert.Equal(t, 64, created.TotalLength())

	loaded, err := store.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, created.data, loaded.data)
	assert.Equal(t, 0, loaded.Offset())
}

func TestBoltStore_CreateExisting(t *testing.T) {
	store := newTestBoltStore(t)
	_, err := store.Create("alice", 64)
	require.NoError(t, err)

	_, err = store.Create("alice", 64)
	assert.ErrorIs(t, err, ErrPadExists)
}

func TestBoltStore_LoadMissing(t *testing.T) {
	store := newTestBoltStore(t)
	_, err := store.Load("nobody")
	assert.ErrorIs(t, err, ErrPadNotFound)
}

func TestBoltStore_InvalidHandle(t *testing.T) {
	store := newTestBoltStore(t)
	_, err := store.Load("a/b")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestBoltStore_LoadOrCreate(t *testing.T) {
	store := newTestBoltStore(t)

	p1, err := store.LoadOrCreate("bob", 32)
	require.NoError(t, err)
	p2, err := store.LoadOrCreate("bob", 9999)
	require.NoError(t, err)
	assert.Equal(t, p1.data, p2.data)
	assert.Equal(t, 32, p2.TotalLength())
}

// --- Commit tests ---

func TestBoltStore_CommitPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pads.db")

	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	p, err := store.Create("alice", 32)
	require.NoError(t, err)
	require.NoError(t, store.Commit(p, 12))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Offset())
	assert.Equal(t, p.data, loaded.data)
}

func TestBoltStore_CommitExhausted(t *testing.T) {
	store := newTestBoltStore(t)
	p, err := store.Create("alice", 8)
	require.NoError(t, err)

	err = store.Commit(p, 9)
	assert.ErrorIs(t, err, ErrPadExhausted)
	assert.Equal(t, 0, p.Offset())
}

// --- Corrupt record tests ---

func TestBoltStore_CorruptRecord(t *testing.T) {
	store := newTestBoltStore(t)
	_, err := store.Create("alice", 16)
	require.NoError(t, err)

	err = store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPads).Put([]byte("alice"), []byte("garbage"))
	})
	require.NoError(t, err)

	_, err = store.Load("alice")
	assert.ErrorIs(t, err, ErrCorruptPad)
}

// --- Handles tests ---

func TestBoltStore_Handles(t *testing.T) {
	store := newTestBoltStore(t)
	_, err := store.Create("alice", 16)
	require.NoError(t, err)
	_, err = store.Create("bob", 16)
	require.NoError(t, err)

	handles, err := store.Handles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, handles)
}

// --- Lock tests ---

func TestBoltStore_Lock(t *testing.T) {
	store := newTestBoltStore(t)
	release, err := store.Lock("alice")
	require.NoError(t, err)
	release()

	_, err = store.Lock("a/b")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
