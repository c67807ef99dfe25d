package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author"
)

// fakeCache is an in-memory cache.Cache that records deletions, JSON
// round-tripping values the same way the Redis implementation does.
type fakeCache struct {
	entries  map[string][]byte
	deleted  []string
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		f.deleted = append(f.deleted, key)
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

// The nil pool guarantees these paths never reach the database: any
// pool access would panic the test.

func TestAuthorRepository_GetByID_CacheHit(t *testing.T) {
	id := uuid.New()
	cached := author.Author{ID: id, Name: "Ursula K. Le Guin", Email: "ursula@example.com"}

	fc := newFakeCache()
	require.NoError(t, fc.Set(context.Background(), authorCacheKeyPrefix+id.String(), &cached, cacheTTL))

	repo := NewPostgresRepository(nil, fc)

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, cached.ID, got.ID)
	assert.Equal(t, cached.Name, got.Name)
}

func TestAuthorRepository_GetAll_CacheHit(t *testing.T) {
	cached := []author.Author{
		{ID: uuid.New(), Name: "Ursula K. Le Guin"},
		{ID: uuid.New(), Name: "Frank Herbert"},
	}

	fc := newFakeCache()
	require.NoError(t, fc.Set(context.Background(), authorListKeyPrefix, cached, listCacheTTL))

	repo := NewPostgresRepository(nil, fc)

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ursula K. Le Guin", got[0].Name)
}

func TestAuthorRepository_ListInvalidation_MatchesListKey(t *testing.T) {
	fc := newFakeCache()
	require.NoError(t, fc.Set(context.Background(), authorListKeyPrefix, []author.Author{}, listCacheTTL))

	r := NewPostgresRepository(nil, fc).(*postgresRepository)
	r.invalidateListCache(context.Background())

	assert.Equal(t, []string{authorListKeyPrefix + "*"}, fc.patterns)
	_, ok := fc.entries[authorListKeyPrefix]
	assert.False(t, ok, "list entry must be gone after invalidation")
}
