// Package redis 提供 Redis 缓存实现
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/pkg/metrics"
)

// CachedRelationshipRepository 关系仓储的 Read-Through 缓存装饰器
// 按规范化阵营对缓存 GetByPair 结果；写操作直接透传并使缓存失效。
// 事务上下文中绕过缓存，保证动作内的读-改-写看到事务内的最新数据。
type CachedRelationshipRepository struct {
	inner repository.RelationshipRepository
	cache *Cache
	ttl   time.Duration
}

// NewCachedRelationshipRepository 创建带缓存的关系仓储
func NewCachedRelationshipRepository(inner repository.RelationshipRepository, cache *Cache, ttl time.Duration) *CachedRelationshipRepository {
	return &CachedRelationshipRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// inTransaction 判断上下文是否已携带数据库事务
func inTransaction(ctx context.Context) bool {
	return ctx.Value(repository.TxKey{}) != nil
}

// Create 创建关系并使缓存失效
func (r *CachedRelationshipRepository) Create(ctx context.Context, rel *entity.FactionRelationship) error {
	if err := r.inner.Create(ctx, rel); err != nil {
		return err
	}
	// 缓存失效失败不影响写入结果
	_ = r.cache.Delete(ctx, RelationshipKey(rel.FactionAID, rel.FactionBID))
	return nil
}

// errRelationshipUncached 回源未命中时从 loader 冒泡，阻止缺失值进入缓存
var errRelationshipUncached = errors.New("relationship not materialized")

// GetByPair 经 singleflight 的 Read-Through 读取，并发未命中只回源一次
func (r *CachedRelationshipRepository) GetByPair(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	if inTransaction(ctx) {
		return r.inner.GetByPair(ctx, factionA, factionB)
	}

	key := RelationshipKey(factionA, factionB)

	loaded := false
	data, err := r.cache.GetOrLoadSafe(ctx, key, r.ttl, func() (interface{}, error) {
		loaded = true
		rel, err := r.inner.GetByPair(ctx, factionA, factionB)
		if err != nil {
			return nil, err
		}
		if rel == nil {
			// 缺失不缓存：物化由上层显式触发
			return nil, errRelationshipUncached
		}
		return rel, nil
	})
	if errors.Is(err, errRelationshipUncached) {
		metrics.CacheMisses.WithLabelValues("relationship").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if loaded {
		metrics.CacheMisses.WithLabelValues("relationship").Inc()
	} else {
		metrics.CacheHits.WithLabelValues("relationship").Inc()
	}

	var rel entity.FactionRelationship
	if err := json.Unmarshal(data, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// Update 更新关系并使缓存失效
func (r *CachedRelationshipRepository) Update(ctx context.Context, rel *entity.FactionRelationship) error {
	if err := r.inner.Update(ctx, rel); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, RelationshipKey(rel.FactionAID, rel.FactionBID))
	return nil
}

// ListByFaction 列表查询不走缓存
func (r *CachedRelationshipRepository) ListByFaction(ctx context.Context, factionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return r.inner.ListByFaction(ctx, factionID, pagination)
}

// ListByStatus 列表查询不走缓存
func (r *CachedRelationshipRepository) ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return r.inner.ListByStatus(ctx, status, pagination)
}
