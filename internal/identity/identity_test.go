package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{ sets int }

func (b *brokenKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("storage disabled")
}

func (b *brokenKV) SetIfAbsent(ctx context.Context, key, value string) error {
	b.sets++
	return errors.New("storage disabled")
}

// flakyKV fails the next failGets reads and passes everything else through.
type flakyKV struct {
	KV
	failGets int
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGets > 0 {
		f.failGets--
		return "", false, errors.New("database is locked")
	}
	return f.KV.Get(ctx, key)
}

func TestGetOrCreateFreshStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	p := NewProvider(kv)

	id := p.GetOrCreate(ctx)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "player id should be a UUID: %q", id)

	assert.Equal(t, id, p.GetOrCreate(ctx))

	stored, ok, err := kv.Get(ctx, PlayerIDKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, stored)
}

func TestGetOrCreateReusesPersistedID(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.SetIfAbsent(ctx, PlayerIDKey, "existing-player"))

	assert.Equal(t, "existing-player", NewProvider(kv).GetOrCreate(ctx))
}

func TestGetOrCreateSurvivesAcrossProviders(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	first := NewProvider(kv).GetOrCreate(ctx)
	second := NewProvider(kv).GetOrCreate(ctx)
	assert.Equal(t, first, second)
}

func TestGetOrCreateDegradedStore(t *testing.T) {
	ctx := context.Background()
	kv := &brokenKV{}
	p := NewProvider(kv)

	id := p.GetOrCreate(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, p.GetOrCreate(ctx))
	assert.Zero(t, kv.sets, "no write after a failed read")

	// A new process would not see it.
	assert.NotEqual(t, id, NewProvider(kv).GetOrCreate(ctx))
}

func TestGetOrCreateFailedReadKeepsPersistedID(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.SetIfAbsent(ctx, PlayerIDKey, "existing-player"))
	kv := &flakyKV{KV: mem, failGets: 1}

	id := NewProvider(kv).GetOrCreate(ctx)
	assert.NotEqual(t, "existing-player", id, "session-only id while the store is unreadable")

	stored, ok, err := mem.Get(ctx, PlayerIDKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "existing-player", stored)

	assert.Equal(t, "existing-player", NewProvider(kv).GetOrCreate(ctx))
}

func TestGetOrCreateFailedReadSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	defer db.Close()

	first := NewProvider(db).GetOrCreate(ctx)
	NewProvider(&flakyKV{KV: db, failGets: 1}).GetOrCreate(ctx)

	stored, ok, err := db.Get(ctx, PlayerIDKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, stored)
}

func TestGetOrCreateNilStore(t *testing.T) {
	p := NewProvider(nil)
	id := p.GetOrCreate(context.Background())
	assert.NotEmpty(t, id)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "identity.db")

	kv, err := OpenSQLite(path)
	require.NoError(t, err)
	id := NewProvider(kv).GetOrCreate(ctx)
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(path)
	require.NoError(t, err)
	defer kv.Close()

	assert.Equal(t, id, NewProvider(kv).GetOrCreate(ctx))
}

func TestSQLiteSetIfAbsent(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.SetIfAbsent(ctx, "k", "v1"))
	require.NoError(t, kv.SetIfAbsent(ctx, "k", "v2"))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v, "existing value is never replaced")
}

func TestMemorySetIfAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.SetIfAbsent(ctx, "k", "v1"))
	require.NoError(t, kv.SetIfAbsent(ctx, "k", "v2"))
	v, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
}
