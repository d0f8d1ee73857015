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

// UltimatumRepository 最后通牒仓储实现
type UltimatumRepository struct {
	client *Client
}

// NewUltimatumRepository 创建通牒仓储
func NewUltimatumRepository(client *Client) *UltimatumRepository {
	return &UltimatumRepository{client: client}
}

// Create 创建通牒
func (r *UltimatumRepository) Create(ctx context.Context, ultimatum *entity.Ultimatum) error {
	ctx, span := tracer.Start(ctx, "postgres.UltimatumRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO ultimatums (id, issuer_id, recipient_id, demand, terms, deadline, status,
			accept_trust_delta, reject_tension_delta, responded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		ultimatum.ID, ultimatum.IssuerID, ultimatum.RecipientID, ultimatum.Demand, ultimatum.Terms,
		ultimatum.Deadline, ultimatum.Status, ultimatum.AcceptTrustDelta, ultimatum.RejectTensionDelta,
		ultimatum.RespondedAt,
	).Scan(&ultimatum.CreatedAt, &ultimatum.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create ultimatum: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取通牒
func (r *UltimatumRepository) GetByID(ctx context.Context, id string) (*entity.Ultimatum, error) {
	ctx, span := tracer.Start(ctx, "postgres.UltimatumRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, issuer_id, recipient_id, demand, terms, deadline, status,
			accept_trust_delta, reject_tension_delta, responded_at, created_at, updated_at
		FROM ultimatums
		WHERE id = $1
	`

	var u entity.Ultimatum
	var respondedAt sql.NullTime

	err := q.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.IssuerID, &u.RecipientID, &u.Demand, &u.Terms, &u.Deadline, &u.Status,
		&u.AcceptTrustDelta, &u.RejectTensionDelta, &respondedAt, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to scan ultimatum: %w", err)
	}

	if respondedAt.Valid {
		u.RespondedAt = &respondedAt.Time
	}

	return &u, nil
}

// Update 更新通牒
func (r *UltimatumRepository) Update(ctx context.Context, ultimatum *entity.Ultimatum) error {
	ctx, span := tracer.Start(ctx, "postgres.UltimatumRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE ultimatums
		SET status = $1, responded_at = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		ultimatum.Status, ultimatum.RespondedAt, ultimatum.ID,
	).Scan(&ultimatum.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update ultimatum: %w", err)
	}

	return nil
}

// List 获取通牒列表
func (r *UltimatumRepository) List(ctx context.Context, filter *repository.UltimatumFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Ultimatum], error) {
	ctx, span := tracer.Start(ctx, "postgres.UltimatumRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.FactionID != "" {
			whereClause += fmt.Sprintf(" AND (issuer_id = $%d OR recipient_id = $%d)", argIdx, argIdx)
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
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM ultimatums WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count ultimatums: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, issuer_id, recipient_id, demand, terms, deadline, status,
			accept_trust_delta, reject_tension_delta, responded_at, created_at, updated_at
		FROM ultimatums
		WHERE %s
		ORDER BY deadline ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list ultimatums: %w", err)
	}
	defer rows.Close()

	ultimatums, err := scanUltimatumRows(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return repository.NewPagedResult(ultimatums, total, pagination), nil
}

// ListPendingExpired 获取截止时间早于指定时间且仍待处理的通牒
func (r *UltimatumRepository) ListPendingExpired(ctx context.Context, before time.Time) ([]*entity.Ultimatum, error) {
	ctx, span := tracer.Start(ctx, "postgres.UltimatumRepository.ListPendingExpired")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, issuer_id, recipient_id, demand, terms, deadline, status,
			accept_trust_delta, reject_tension_delta, responded_at, created_at, updated_at
		FROM ultimatums
		WHERE status = 'pending' AND deadline < $1
		ORDER BY deadline ASC
	`

	rows, err := q.QueryContext(ctx, query, before)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expired ultimatums: %w", err)
	}
	defer rows.Close()

	ultimatums, err := scanUltimatumRows(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return ultimatums, nil
}

// scanUltimatumRows 从多行结果扫描
func scanUltimatumRows(rows *sql.Rows) ([]*entity.Ultimatum, error) {
	var ultimatums []*entity.Ultimatum
	for rows.Next() {
		var u entity.Ultimatum
		var respondedAt sql.NullTime

		if err := rows.Scan(
			&u.ID, &u.IssuerID, &u.RecipientID, &u.Demand, &u.Terms, &u.Deadline, &u.Status,
			&u.AcceptTrustDelta, &u.RejectTensionDelta, &respondedAt, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ultimatum row: %w", err)
		}

		if respondedAt.Valid {
			u.RespondedAt = &respondedAt.Time
		}
		ultimatums = append(ultimatums, &u)
	}

	return ultimatums, nil
}
