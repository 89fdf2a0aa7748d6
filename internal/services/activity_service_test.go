package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mvidal/spur/internal/adapters/storage"
	"github.com/mvidal/spur/internal/domain"
)

func setupService(t *testing.T) *ActivityService {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewActivityService(store)
	svc.Load(context.Background())
	return svc
}

func TestActivityService_LoadDefaults(t *testing.T) {
	svc := setupService(t)

	assert.True(t, svc.Buckets().Equal(domain.DefaultBuckets()),
		"fresh store should load the built-in defaults")
}

func TestActivityService_LoadPersisted(t *testing.T) {
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	svc := NewActivityService(store)
	svc.Load(ctx)
	require.NoError(t, svc.AddBucket(ctx, 90))

	// A second service over the same store sees the mutation.
	again := NewActivityService(store)
	again.Load(ctx)
	assert.Contains(t, again.Buckets(), 90)
}

func TestActivityService_LoadCorruptFallsBack(t *testing.T) {
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Buckets().SaveRaw(ctx, "{corrupt"))

	svc := NewActivityService(store)
	svc.Load(ctx)
	assert.True(t, svc.Buckets().Equal(domain.DefaultBuckets()),
		"corrupt state should fall back to defaults")
}

func TestActivityService_LoadKeepsDeletedDefaults(t *testing.T) {
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	svc := NewActivityService(store)
	svc.Load(ctx)
	require.NoError(t, svc.DeleteBucket(ctx, 5))

	again := NewActivityService(store)
	again.Load(ctx)
	assert.NotContains(t, again.Buckets(), 5,
		"a legitimately deleted default bucket must stay deleted on reload")
}

func TestActivityService_Pick(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("pick from existing bucket", func(t *testing.T) {
		pick, err := svc.Pick(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, pick.Minutes)
		assert.Contains(t, svc.Buckets()[5], pick.Activity)
		assert.NotEmpty(t, pick.ID)
	})

	t.Run("pick from missing bucket", func(t *testing.T) {
		_, err := svc.Pick(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrBucketNotFound)
	})

	t.Run("pick is recorded in history", func(t *testing.T) {
		pick, err := svc.Pick(ctx, 10)
		require.NoError(t, err)

		picks, err := svc.History(ctx, 1)
		require.NoError(t, err)
		require.Len(t, picks, 1)
		assert.Equal(t, pick.ID, picks[0].ID)
	})
}

func TestActivityService_CompletePick(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	pick, err := svc.Pick(ctx, 5)
	require.NoError(t, err)

	svc.CompletePick(ctx, pick.ID)

	total, completed, err := svc.HistoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, completed)
}

func TestActivityService_Mutations(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("add bucket", func(t *testing.T) {
		require.NoError(t, svc.AddBucket(ctx, 15))
		assert.Contains(t, svc.Buckets(), 15)
	})

	t.Run("add duplicate bucket", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddBucket(ctx, 15), domain.ErrBucketExists)
	})

	t.Run("add activity label", func(t *testing.T) {
		require.NoError(t, svc.AddActivityLabel(ctx, 15, "Water the plants"))
		assert.Contains(t, svc.Buckets()[15], "Water the plants")
	})

	t.Run("update activity", func(t *testing.T) {
		svc.UpdateActivity(ctx, 15, 0, "Renamed")
		assert.Equal(t, "Renamed", svc.Buckets()[15][0])
	})

	t.Run("delete activity", func(t *testing.T) {
		require.NoError(t, svc.DeleteActivity(ctx, 15, 1))
		assert.NotContains(t, svc.Buckets()[15], "Water the plants")
	})

	t.Run("delete bucket", func(t *testing.T) {
		require.NoError(t, svc.DeleteBucket(ctx, 15))
		assert.NotContains(t, svc.Buckets(), 15)
	})
}

func TestActivityService_Replace(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	imported := domain.Buckets{
		1:  {"a"},
		5:  {"b"},
		10: {"c"},
		20: {"d"},
		40: {"e"},
	}
	svc.Replace(ctx, imported)

	assert.True(t, svc.Buckets().Equal(imported))

	// Replace clones; mutating the input must not leak into live state.
	imported[1][0] = "mutated"
	assert.Equal(t, "a", svc.Buckets()[1][0])
}

func TestActivityService_Reset(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddBucket(ctx, 90))
	svc.Reset(ctx)

	assert.True(t, svc.Buckets().Equal(domain.DefaultBuckets()))
}

func TestActivityService_SearchHistory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Pick(ctx, 5)
	require.NoError(t, err)

	picks, err := svc.SearchHistory(ctx, "qqqqqq", 10)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestActivityService_Export(t *testing.T) {
	svc := setupService(t)

	parsed, err := domain.ParseImport(svc.Export())
	require.NoError(t, err)
	assert.True(t, svc.Buckets().Equal(parsed))
}
