// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"faction-diplomacy-api/internal/domain/entity"
)

// ViolationRepository 条约违约仓储实现
type ViolationRepository struct {
	client *Client
}

// NewViolationRepository 创建违约仓储
func NewViolationRepository(client *Client) *ViolationRepository {
	return &ViolationRepository{client: client}
}

// Create 创建违约记录
func (r *ViolationRepository) Create(ctx context.Context, violation *entity.TreatyViolation) error {
	ctx, span := tracer.Start(ctx, "postgres.ViolationRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO treaty_violations (id, treaty_id, violator_id, victim_id, description,
			severity, evidence, acknowledged, acknowledged_at, resolved, resolved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query,
		violation.ID, violation.TreatyID, violation.ViolatorID, nullString(violation.VictimID),
		violation.Description, violation.Severity, violation.Evidence,
		violation.Acknowledged, violation.AcknowledgedAt, violation.Resolved, violation.ResolvedAt,
	).Scan(&violation.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create violation: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取违约记录
func (r *ViolationRepository) GetByID(ctx context.Context, id string) (*entity.TreatyViolation, error) {
	ctx, span := tracer.Start(ctx, "postgres.ViolationRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, treaty_id, violator_id, victim_id, description, severity, evidence,
			acknowledged, acknowledged_at, resolved, resolved_at, created_at
		FROM treaty_violations
		WHERE id = $1
	`

	var v entity.TreatyViolation
	var victimID sql.NullString
	var ackAt, resAt sql.NullTime

	err := q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.TreatyID, &v.ViolatorID, &victimID, &v.Description, &v.Severity, &v.Evidence,
		&v.Acknowledged, &ackAt, &v.Resolved, &resAt, &v.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to scan violation: %w", err)
	}

	if victimID.Valid {
		v.VictimID = victimID.String
	}
	if ackAt.Valid {
		v.AcknowledgedAt = &ackAt.Time
	}
	if resAt.Valid {
		v.ResolvedAt = &resAt.Time
	}

	return &v, nil
}

// Update 更新违约记录
func (r *ViolationRepository) Update(ctx context.Context, violation *entity.TreatyViolation) error {
	ctx, span := tracer.Start(ctx, "postgres.ViolationRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE treaty_violations
		SET acknowledged = $1, acknowledged_at = $2, resolved = $3, resolved_at = $4
		WHERE id = $5
	`

	_, err := q.ExecContext(ctx, query,
		violation.Acknowledged, violation.AcknowledgedAt,
		violation.Resolved, violation.ResolvedAt, violation.ID,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update violation: %w", err)
	}

	return nil
}

// ListByTreaty 获取条约的全部违约记录
func (r *ViolationRepository) ListByTreaty(ctx context.Context, treatyID string) ([]*entity.TreatyViolation, error) {
	ctx, span := tracer.Start(ctx, "postgres.ViolationRepository.ListByTreaty")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, treaty_id, violator_id, victim_id, description, severity, evidence,
			acknowledged, acknowledged_at, resolved, resolved_at, created_at
		FROM treaty_violations
		WHERE treaty_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.QueryContext(ctx, query, treatyID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var violations []*entity.TreatyViolation
	for rows.Next() {
		var v entity.TreatyViolation
		var victimID sql.NullString
		var ackAt, resAt sql.NullTime

		if err := rows.Scan(
			&v.ID, &v.TreatyID, &v.ViolatorID, &victimID, &v.Description, &v.Severity, &v.Evidence,
			&v.Acknowledged, &ackAt, &v.Resolved, &resAt, &v.CreatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan violation row: %w", err)
		}

		if victimID.Valid {
			v.VictimID = victimID.String
		}
		if ackAt.Valid {
			v.AcknowledgedAt = &ackAt.Time
		}
		if resAt.Valid {
			v.ResolvedAt = &resAt.Time
		}
		violations = append(violations, &v)
	}

	return violations, nil
}

// CountOpenByTreaty 统计条约未解决的违约数量
func (r *ViolationRepository) CountOpenByTreaty(ctx context.Context, treatyID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ViolationRepository.CountOpenByTreaty")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var count int64
	query := `SELECT COUNT(*) FROM treaty_violations WHERE treaty_id = $1 AND resolved = FALSE`
	if err := q.QueryRowContext(ctx, query, treatyID).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count open violations: %w", err)
	}

	return count, nil
}
