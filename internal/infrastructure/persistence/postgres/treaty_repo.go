// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// TreatyRepository 条约仓储实现
type TreatyRepository struct {
	client *Client
}

// NewTreatyRepository 创建条约仓储
func NewTreatyRepository(client *Client) *TreatyRepository {
	return &TreatyRepository{client: client}
}

// Create 创建条约
func (r *TreatyRepository) Create(ctx context.Context, treaty *entity.Treaty) error {
	ctx, span := tracer.Start(ctx, "postgres.TreatyRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO treaties (id, name, type, status, parties, terms, start_date, end_date,
			public, negotiation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		treaty.ID, treaty.Name, treaty.Type, treaty.Status, treaty.Parties, treaty.Terms,
		treaty.StartDate, treaty.EndDate, treaty.Public, nullString(treaty.NegotiationID),
	).Scan(&treaty.CreatedAt, &treaty.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create treaty: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取条约
func (r *TreatyRepository) GetByID(ctx context.Context, id string) (*entity.Treaty, error) {
	ctx, span := tracer.Start(ctx, "postgres.TreatyRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, name, type, status, parties, terms, start_date, end_date,
			public, negotiation_id, created_at, updated_at
		FROM treaties
		WHERE id = $1
	`

	return scanTreaty(q.QueryRowContext(ctx, query, id))
}

// Update 更新条约
func (r *TreatyRepository) Update(ctx context.Context, treaty *entity.Treaty) error {
	ctx, span := tracer.Start(ctx, "postgres.TreatyRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE treaties
		SET name = $1, status = $2, terms = $3, end_date = $4, public = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		treaty.Name, treaty.Status, treaty.Terms, treaty.EndDate, treaty.Public, treaty.ID,
	).Scan(&treaty.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update treaty: %w", err)
	}

	return nil
}

// List 获取条约列表
func (r *TreatyRepository) List(ctx context.Context, filter *repository.TreatyFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Treaty], error) {
	ctx, span := tracer.Start(ctx, "postgres.TreatyRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	// 构建查询条件
	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.FactionID != "" {
			whereClause += fmt.Sprintf(" AND parties @> $%d::jsonb", argIdx)
			args = append(args, fmt.Sprintf(`["%s"]`, filter.FactionID))
			argIdx++
		}
		if filter.Status != "" {
			whereClause += fmt.Sprintf(" AND status = $%d", argIdx)
			args = append(args, filter.Status)
			argIdx++
		}
		if filter.Type != "" {
			whereClause += fmt.Sprintf(" AND type = $%d", argIdx)
			args = append(args, filter.Type)
			argIdx++
		}
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM treaties WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count treaties: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, type, status, parties, terms, start_date, end_date,
			public, negotiation_id, created_at, updated_at
		FROM treaties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list treaties: %w", err)
	}
	defer rows.Close()

	var treaties []*entity.Treaty
	for rows.Next() {
		treaty, err := scanTreatyFromRows(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		treaties = append(treaties, treaty)
	}

	return repository.NewPagedResult(treaties, total, pagination), nil
}

// ListActiveExpiring 获取结束日期早于指定时间且仍生效的条约
func (r *TreatyRepository) ListActiveExpiring(ctx context.Context, before time.Time) ([]*entity.Treaty, error) {
	ctx, span := tracer.Start(ctx, "postgres.TreatyRepository.ListActiveExpiring")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, name, type, status, parties, terms, start_date, end_date,
			public, negotiation_id, created_at, updated_at
		FROM treaties
		WHERE status IN ('active', 'violated') AND end_date IS NOT NULL AND end_date < $1
		ORDER BY end_date ASC
	`

	rows, err := q.QueryContext(ctx, query, before)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expiring treaties: %w", err)
	}
	defer rows.Close()

	var treaties []*entity.Treaty
	for rows.Next() {
		treaty, err := scanTreatyFromRows(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		treaties = append(treaties, treaty)
	}

	return treaties, nil
}

// scanTreaty 扫描单行条约数据
func scanTreaty(row *sql.Row) (*entity.Treaty, error) {
	var treaty entity.Treaty
	var endDate sql.NullTime
	var negotiationID sql.NullString

	err := row.Scan(
		&treaty.ID, &treaty.Name, &treaty.Type, &treaty.Status, &treaty.Parties, &treaty.Terms,
		&treaty.StartDate, &endDate, &treaty.Public, &negotiationID,
		&treaty.CreatedAt, &treaty.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan treaty: %w", err)
	}

	if endDate.Valid {
		treaty.EndDate = &endDate.Time
	}
	if negotiationID.Valid {
		treaty.NegotiationID = negotiationID.String
	}

	return &treaty, nil
}

// scanTreatyFromRows 从多行结果扫描
func scanTreatyFromRows(rows *sql.Rows) (*entity.Treaty, error) {
	var treaty entity.Treaty
	var endDate sql.NullTime
	var negotiationID sql.NullString

	err := rows.Scan(
		&treaty.ID, &treaty.Name, &treaty.Type, &treaty.Status, &treaty.Parties, &treaty.Terms,
		&treaty.StartDate, &endDate, &treaty.Public, &negotiationID,
		&treaty.CreatedAt, &treaty.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to scan treaty row: %w", err)
	}

	if endDate.Valid {
		treaty.EndDate = &endDate.Time
	}
	if negotiationID.Valid {
		treaty.NegotiationID = negotiationID.String
	}

	return &treaty, nil
}

// nullString 空串转 NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
