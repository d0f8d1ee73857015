// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// RelationshipRepository 阵营关系仓储实现
type RelationshipRepository struct {
	client *Client
}

// NewRelationshipRepository 创建阵营关系仓储
func NewRelationshipRepository(client *Client) *RelationshipRepository {
	return &RelationshipRepository{client: client}
}

// Create 创建关系
func (r *RelationshipRepository) Create(ctx context.Context, rel *entity.FactionRelationship) error {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO faction_relationships (id, faction_a_id, faction_b_id, status,
			trust_level, tension_level, last_interaction, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		rel.ID, rel.FactionAID, rel.FactionBID, rel.Status,
		rel.TrustLevel, rel.TensionLevel, rel.LastInteraction,
	).Scan(&rel.CreatedAt, &rel.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	return nil
}

// GetByPair 根据规范化阵营对获取关系；不存在时返回 nil
func (r *RelationshipRepository) GetByPair(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.GetByPair")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, faction_a_id, faction_b_id, status, trust_level, tension_level,
			last_interaction, created_at, updated_at
		FROM faction_relationships
		WHERE faction_a_id = $1 AND faction_b_id = $2
	`

	return r.scanRelationship(q.QueryRowContext(ctx, query, factionA, factionB))
}

// Update 更新关系
func (r *RelationshipRepository) Update(ctx context.Context, rel *entity.FactionRelationship) error {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE faction_relationships
		SET status = $1, trust_level = $2, tension_level = $3, last_interaction = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		rel.Status, rel.TrustLevel, rel.TensionLevel, rel.LastInteraction, rel.ID,
	).Scan(&rel.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update relationship: %w", err)
	}

	return nil
}

// ListByFaction 获取指定阵营的全部关系
func (r *RelationshipRepository) ListByFaction(ctx context.Context, factionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.ListByFaction")
	defer span.End()

	result, err := r.list(ctx, "faction_a_id = $1 OR faction_b_id = $1", []interface{}{factionID}, 2, pagination)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

// ListByStatus 按状态获取关系列表
func (r *RelationshipRepository) ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.ListByStatus")
	defer span.End()

	result, err := r.list(ctx, "status = $1", []interface{}{status}, 2, pagination)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

// list 通用分页查询
func (r *RelationshipRepository) list(ctx context.Context, whereClause string, args []interface{}, argIdx int, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	q := getQuerier(ctx, r.client.db)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM faction_relationships WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count relationships: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, faction_a_id, faction_b_id, status, trust_level, tension_level,
			last_interaction, created_at, updated_at
		FROM faction_relationships
		WHERE %s
		ORDER BY tension_level DESC, updated_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var relationships []*entity.FactionRelationship
	for rows.Next() {
		rel, err := r.scanRelationshipFromRows(rows)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, rel)
	}

	return repository.NewPagedResult(relationships, total, pagination), nil
}

// scanRelationship 扫描单行关系数据
func (r *RelationshipRepository) scanRelationship(row *sql.Row) (*entity.FactionRelationship, error) {
	var rel entity.FactionRelationship

	err := row.Scan(
		&rel.ID, &rel.FactionAID, &rel.FactionBID, &rel.Status,
		&rel.TrustLevel, &rel.TensionLevel, &rel.LastInteraction,
		&rel.CreatedAt, &rel.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan relationship: %w", err)
	}

	return &rel, nil
}

// scanRelationshipFromRows 从多行结果扫描
func (r *RelationshipRepository) scanRelationshipFromRows(rows *sql.Rows) (*entity.FactionRelationship, error) {
	var rel entity.FactionRelationship

	err := rows.Scan(
		&rel.ID, &rel.FactionAID, &rel.FactionBID, &rel.Status,
		&rel.TrustLevel, &rel.TensionLevel, &rel.LastInteraction,
		&rel.CreatedAt, &rel.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to scan relationship row: %w", err)
	}

	return &rel, nil
}
