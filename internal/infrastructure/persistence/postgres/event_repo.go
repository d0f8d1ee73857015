// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// EventRepository 外交事件仓储实现
// 只追加：不提供 UPDATE / DELETE
type EventRepository struct {
	client *Client
}

// NewEventRepository 创建事件仓储
func NewEventRepository(client *Client) *EventRepository {
	return &EventRepository{client: client}
}

// Create 追加事件
func (r *EventRepository) Create(ctx context.Context, event *entity.DiplomaticEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.EventRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO diplomatic_events (id, type, factions, description, severity, public,
			treaty_id, negotiation_id, tension_deltas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query,
		event.ID, event.Type, event.Factions, event.Description, event.Severity, event.Public,
		nullString(event.TreatyID), nullString(event.NegotiationID), event.TensionDeltas,
	).Scan(&event.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取事件
func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.DiplomaticEvent, error) {
	ctx, span := tracer.Start(ctx, "postgres.EventRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, type, factions, description, severity, public,
			treaty_id, negotiation_id, tension_deltas, created_at
		FROM diplomatic_events
		WHERE id = $1
	`

	var e entity.DiplomaticEvent
	var treatyID, negotiationID sql.NullString

	err := q.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Type, &e.Factions, &e.Description, &e.Severity, &e.Public,
		&treatyID, &negotiationID, &e.TensionDeltas, &e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	if treatyID.Valid {
		e.TreatyID = treatyID.String
	}
	if negotiationID.Valid {
		e.NegotiationID = negotiationID.String
	}

	return &e, nil
}

// List 过滤读取事件列表，按时间倒序
func (r *EventRepository) List(ctx context.Context, filter *repository.EventFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticEvent], error) {
	ctx, span := tracer.Start(ctx, "postgres.EventRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.FactionID != "" {
			whereClause += fmt.Sprintf(" AND factions @> $%d::jsonb", argIdx)
			args = append(args, fmt.Sprintf(`["%s"]`, filter.FactionID))
			argIdx++
		}
		if filter.Type != "" {
			whereClause += fmt.Sprintf(" AND type = $%d", argIdx)
			args = append(args, filter.Type)
			argIdx++
		}
		if !filter.From.IsZero() {
			whereClause += fmt.Sprintf(" AND created_at >= $%d", argIdx)
			args = append(args, filter.From)
			argIdx++
		}
		if !filter.To.IsZero() {
			whereClause += fmt.Sprintf(" AND created_at <= $%d", argIdx)
			args = append(args, filter.To)
			argIdx++
		}
		if filter.PublicOnly {
			whereClause += " AND public = TRUE"
		}
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM diplomatic_events WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, type, factions, description, severity, public,
			treaty_id, negotiation_id, tension_deltas, created_at
		FROM diplomatic_events
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.DiplomaticEvent
	for rows.Next() {
		var e entity.DiplomaticEvent
		var treatyID, negotiationID sql.NullString

		if err := rows.Scan(
			&e.ID, &e.Type, &e.Factions, &e.Description, &e.Severity, &e.Public,
			&treatyID, &negotiationID, &e.TensionDeltas, &e.CreatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		if treatyID.Valid {
			e.TreatyID = treatyID.String
		}
		if negotiationID.Valid {
			e.NegotiationID = negotiationID.String
		}
		events = append(events, &e)
	}

	return repository.NewPagedResult(events, total, pagination), nil
}
