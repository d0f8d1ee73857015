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

// SanctionRepository 制裁仓储实现
type SanctionRepository struct {
	client *Client
}

// NewSanctionRepository 创建制裁仓储
func NewSanctionRepository(client *Client) *SanctionRepository {
	return &SanctionRepository{client: client}
}

// Create 创建制裁
func (r *SanctionRepository) Create(ctx context.Context, sanction *entity.Sanction) error {
	ctx, span := tracer.Start(ctx, "postgres.SanctionRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO sanctions (id, imposer_id, target_id, sanction_type, description, impact,
			tension_delta, start_date, end_date, status, violations, lifted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		sanction.ID, sanction.ImposerID, sanction.TargetID, nullString(sanction.SanctionType),
		sanction.Description, sanction.Impact, sanction.TensionDelta,
		sanction.StartDate, sanction.EndDate, sanction.Status, sanction.Violations, sanction.LiftedAt,
	).Scan(&sanction.CreatedAt, &sanction.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create sanction: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取制裁
func (r *SanctionRepository) GetByID(ctx context.Context, id string) (*entity.Sanction, error) {
	ctx, span := tracer.Start(ctx, "postgres.SanctionRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, imposer_id, target_id, sanction_type, description, impact, tension_delta,
			start_date, end_date, status, violations, lifted_at, created_at, updated_at
		FROM sanctions
		WHERE id = $1
	`

	var s entity.Sanction
	var sanctionType sql.NullString
	var endDate, liftedAt sql.NullTime

	err := q.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ImposerID, &s.TargetID, &sanctionType, &s.Description, &s.Impact, &s.TensionDelta,
		&s.StartDate, &endDate, &s.Status, &s.Violations, &liftedAt, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to scan sanction: %w", err)
	}

	if sanctionType.Valid {
		s.SanctionType = sanctionType.String
	}
	if endDate.Valid {
		s.EndDate = &endDate.Time
	}
	if liftedAt.Valid {
		s.LiftedAt = &liftedAt.Time
	}

	return &s, nil
}

// Update 更新制裁
func (r *SanctionRepository) Update(ctx context.Context, sanction *entity.Sanction) error {
	ctx, span := tracer.Start(ctx, "postgres.SanctionRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE sanctions
		SET status = $1, violations = $2, end_date = $3, lifted_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		sanction.Status, sanction.Violations, sanction.EndDate, sanction.LiftedAt, sanction.ID,
	).Scan(&sanction.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update sanction: %w", err)
	}

	return nil
}

// List 获取制裁列表
func (r *SanctionRepository) List(ctx context.Context, filter *repository.SanctionFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Sanction], error) {
	ctx, span := tracer.Start(ctx, "postgres.SanctionRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.FactionID != "" {
			whereClause += fmt.Sprintf(" AND (imposer_id = $%d OR target_id = $%d)", argIdx, argIdx)
			args = append(args, filter.FactionID)
			argIdx++
		}
		if filter.Status != "" {
			whereClause += fmt.Sprintf(" AND status = $%d", argIdx)
			args = append(args, filter.Status)
			argIdx++
		}
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM sanctions WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count sanctions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, imposer_id, target_id, sanction_type, description, impact, tension_delta,
			start_date, end_date, status, violations, lifted_at, created_at, updated_at
		FROM sanctions
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list sanctions: %w", err)
	}
	defer rows.Close()

	sanctions, err := scanSanctionRows(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return repository.NewPagedResult(sanctions, total, pagination), nil
}

// ListActiveExpired 获取结束日期早于指定时间且仍生效的制裁
func (r *SanctionRepository) ListActiveExpired(ctx context.Context, before time.Time) ([]*entity.Sanction, error) {
	ctx, span := tracer.Start(ctx, "postgres.SanctionRepository.ListActiveExpired")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, imposer_id, target_id, sanction_type, description, impact, tension_delta,
			start_date, end_date, status, violations, lifted_at, created_at, updated_at
		FROM sanctions
		WHERE status IN ('active', 'violated') AND end_date IS NOT NULL AND end_date < $1
		ORDER BY end_date ASC
	`

	rows, err := q.QueryContext(ctx, query, before)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expired sanctions: %w", err)
	}
	defer rows.Close()

	sanctions, err := scanSanctionRows(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return sanctions, nil
}

// scanSanctionRows 从多行结果扫描
func scanSanctionRows(rows *sql.Rows) ([]*entity.Sanction, error) {
	var sanctions []*entity.Sanction
	for rows.Next() {
		var s entity.Sanction
		var sanctionType sql.NullString
		var endDate, liftedAt sql.NullTime

		if err := rows.Scan(
			&s.ID, &s.ImposerID, &s.TargetID, &sanctionType, &s.Description, &s.Impact, &s.TensionDelta,
			&s.StartDate, &endDate, &s.Status, &s.Violations, &liftedAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sanction row: %w", err)
		}

		if sanctionType.Valid {
			s.SanctionType = sanctionType.String
		}
		if endDate.Valid {
			s.EndDate = &endDate.Time
		}
		if liftedAt.Valid {
			s.LiftedAt = &liftedAt.Time
		}
		sanctions = append(sanctions, &s)
	}

	return sanctions, nil
}
