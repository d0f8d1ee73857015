// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// NegotiationRepository 谈判仓储实现
type NegotiationRepository struct {
	client *Client
}

// NewNegotiationRepository 创建谈判仓储
func NewNegotiationRepository(client *Client) *NegotiationRepository {
	return &NegotiationRepository{client: client}
}

// Create 创建谈判
func (r *NegotiationRepository) Create(ctx context.Context, negotiation *entity.Negotiation) error {
	ctx, span := tracer.Start(ctx, "postgres.NegotiationRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO negotiations (id, parties, initiator, status, offers, current_offer_id,
			deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		negotiation.ID, negotiation.Parties, negotiation.Initiator, negotiation.Status,
		negotiation.Offers, nullString(negotiation.CurrentOfferID), negotiation.Deadline,
	).Scan(&negotiation.CreatedAt, &negotiation.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create negotiation: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取谈判
func (r *NegotiationRepository) GetByID(ctx context.Context, id string) (*entity.Negotiation, error) {
	ctx, span := tracer.Start(ctx, "postgres.NegotiationRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, parties, initiator, status, offers, current_offer_id, deadline, created_at, updated_at
		FROM negotiations
		WHERE id = $1
	`

	var n entity.Negotiation
	var currentOfferID sql.NullString
	var deadline sql.NullTime

	err := q.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Parties, &n.Initiator, &n.Status, &n.Offers, &currentOfferID, &deadline,
		&n.CreatedAt, &n.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to scan negotiation: %w", err)
	}

	if currentOfferID.Valid {
		n.CurrentOfferID = currentOfferID.String
	}
	if deadline.Valid {
		n.Deadline = &deadline.Time
	}

	return &n, nil
}

// Update 更新谈判
func (r *NegotiationRepository) Update(ctx context.Context, negotiation *entity.Negotiation) error {
	ctx, span := tracer.Start(ctx, "postgres.NegotiationRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE negotiations
		SET status = $1, offers = $2, current_offer_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		negotiation.Status, negotiation.Offers, nullString(negotiation.CurrentOfferID), negotiation.ID,
	).Scan(&negotiation.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update negotiation: %w", err)
	}

	return nil
}

// List 获取谈判列表
func (r *NegotiationRepository) List(ctx context.Context, filter *repository.NegotiationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Negotiation], error) {
	ctx, span := tracer.Start(ctx, "postgres.NegotiationRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

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
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM negotiations WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count negotiations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, parties, initiator, status, offers, current_offer_id, deadline, created_at, updated_at
		FROM negotiations
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list negotiations: %w", err)
	}
	defer rows.Close()

	var negotiations []*entity.Negotiation
	for rows.Next() {
		var n entity.Negotiation
		var currentOfferID sql.NullString
		var deadline sql.NullTime

		if err := rows.Scan(
			&n.ID, &n.Parties, &n.Initiator, &n.Status, &n.Offers, &currentOfferID, &deadline,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan negotiation row: %w", err)
		}

		if currentOfferID.Valid {
			n.CurrentOfferID = currentOfferID.String
		}
		if deadline.Valid {
			n.Deadline = &deadline.Time
		}
		negotiations = append(negotiations, &n)
	}

	return repository.NewPagedResult(negotiations, total, pagination), nil
}
