package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// stubRelationshipRepo 固定返回同一条关系，记录回源次数
type stubRelationshipRepo struct {
	rel   *entity.FactionRelationship
	calls int
}

func (r *stubRelationshipRepo) Create(ctx context.Context, rel *entity.FactionRelationship) error {
	return nil
}

func (r *stubRelationshipRepo) GetByPair(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	r.calls++
	return r.rel, nil
}

func (r *stubRelationshipRepo) Update(ctx context.Context, rel *entity.FactionRelationship) error {
	return nil
}

func (r *stubRelationshipRepo) ListByFaction(ctx context.Context, factionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return nil, nil
}

func (r *stubRelationshipRepo) ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return nil, nil
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &Client{rdb: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client), mr
}

func TestCachedRelationshipRepository_ReadThrough(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	inner := &stubRelationshipRepo{rel: entity.NewFactionRelationship("elves", "orcs", 50)}
	repo := NewCachedRelationshipRepository(inner, cache, time.Minute)

	// 首次读取回源并填充缓存
	rel, err := repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, "elves", rel.FactionAID)
	assert.Equal(t, 1, inner.calls)

	// 二次读取命中缓存，不再回源
	rel, err = repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, entity.StatusNeutral, rel.Status)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedRelationshipRepository_MissNotCached(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	inner := &stubRelationshipRepo{rel: nil}
	repo := NewCachedRelationshipRepository(inner, cache, time.Minute)

	rel, err := repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Nil(t, rel)

	// 缺失不进缓存，每次都回源
	rel, err = repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Nil(t, rel)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedRelationshipRepository_UpdateInvalidates(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	inner := &stubRelationshipRepo{rel: entity.NewFactionRelationship("elves", "orcs", 50)}
	repo := NewCachedRelationshipRepository(inner, cache, time.Minute)

	_, err := repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	require.NoError(t, repo.Update(ctx, inner.rel))

	// 更新后缓存失效，下次读取回源
	_, err = repo.GetByPair(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedRelationshipRepository_TransactionBypassesCache(t *testing.T) {
	cache, _ := setupTestCache(t)

	inner := &stubRelationshipRepo{rel: entity.NewFactionRelationship("elves", "orcs", 50)}
	repo := NewCachedRelationshipRepository(inner, cache, time.Minute)

	txCtx := context.WithValue(context.Background(), repository.TxKey{}, struct{}{})

	for i := 0; i < 2; i++ {
		rel, err := repo.GetByPair(txCtx, "elves", "orcs")
		require.NoError(t, err)
		require.NotNil(t, rel)
	}
	// 事务内绕过缓存，读-改-写看到事务内数据
	assert.Equal(t, 2, inner.calls)
}

func TestCache_InvalidateFaction(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, RelationshipKey("elves", "orcs"), "x", time.Minute))
	require.NoError(t, cache.Set(ctx, RelationshipKey("dwarves", "elves"), "x", time.Minute))
	require.NoError(t, cache.Set(ctx, RelationshipKey("dwarves", "orcs"), "x", time.Minute))

	require.NoError(t, cache.InvalidateFaction(ctx, "elves"))

	// 两个方向的键都被清掉，无关的保留
	assert.False(t, mr.Exists(RelationshipKey("elves", "orcs")))
	assert.False(t, mr.Exists(RelationshipKey("dwarves", "elves")))
	assert.True(t, mr.Exists(RelationshipKey("dwarves", "orcs")))
}
