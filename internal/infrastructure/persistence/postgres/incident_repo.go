// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
)

// IncidentRepository 外交冲突仓储实现
type IncidentRepository struct {
	client *Client
}

// NewIncidentRepository 创建冲突仓储
func NewIncidentRepository(client *Client) *IncidentRepository {
	return &IncidentRepository{client: client}
}

// Create 创建冲突记录
func (r *IncidentRepository) Create(ctx context.Context, incident *entity.DiplomaticIncident) error {
	ctx, span := tracer.Start(ctx, "postgres.IncidentRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO diplomatic_incidents (id, perpetrator_id, victim_id, incident_type, description,
			severity, tension_impact, evidence, acknowledged, acknowledged_at, resolved, resolved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query,
		incident.ID, incident.PerpetratorID, incident.VictimID, nullString(incident.IncidentType),
		incident.Description, incident.Severity, incident.TensionImpact, incident.Evidence,
		incident.Acknowledged, incident.AcknowledgedAt, incident.Resolved, incident.ResolvedAt,
	).Scan(&incident.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create incident: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取冲突记录
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*entity.DiplomaticIncident, error) {
	ctx, span := tracer.Start(ctx, "postgres.IncidentRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, perpetrator_id, victim_id, incident_type, description, severity, tension_impact,
			evidence, acknowledged, acknowledged_at, resolved, resolved_at, created_at
		FROM diplomatic_incidents
		WHERE id = $1
	`

	incident, err := scanIncident(q.QueryRowContext(ctx, query, id))
	if err != nil {
		span.RecordError(err)
	}
	return incident, err
}

// Update 更新冲突记录
func (r *IncidentRepository) Update(ctx context.Context, incident *entity.DiplomaticIncident) error {
	ctx, span := tracer.Start(ctx, "postgres.IncidentRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE diplomatic_incidents
		SET acknowledged = $1, acknowledged_at = $2, resolved = $3, resolved_at = $4
		WHERE id = $5
	`

	_, err := q.ExecContext(ctx, query,
		incident.Acknowledged, incident.AcknowledgedAt,
		incident.Resolved, incident.ResolvedAt, incident.ID,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update incident: %w", err)
	}

	return nil
}

// List 获取冲突列表
func (r *IncidentRepository) List(ctx context.Context, filter *repository.IncidentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticIncident], error) {
	ctx, span := tracer.Start(ctx, "postgres.IncidentRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.FactionID != "" {
			whereClause += fmt.Sprintf(" AND (perpetrator_id = $%d OR victim_id = $%d)", argIdx, argIdx)
			args = append(args, filter.FactionID)
			argIdx++
		}
		if filter.OpenOnly {
			whereClause += " AND resolved = FALSE"
		}
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM diplomatic_incidents WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, perpetrator_id, victim_id, incident_type, description, severity, tension_impact,
			evidence, acknowledged, acknowledged_at, resolved, resolved_at, created_at
		FROM diplomatic_incidents
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	var incidents []*entity.DiplomaticIncident
	for rows.Next() {
		incident, err := scanIncidentFromRows(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		incidents = append(incidents, incident)
	}

	return repository.NewPagedResult(incidents, total, pagination), nil
}

// scanIncident 扫描单行冲突数据
func scanIncident(row *sql.Row) (*entity.DiplomaticIncident, error) {
	var i entity.DiplomaticIncident
	var incidentType sql.NullString
	var ackAt, resAt sql.NullTime

	err := row.Scan(
		&i.ID, &i.PerpetratorID, &i.VictimID, &incidentType, &i.Description,
		&i.Severity, &i.TensionImpact, &i.Evidence,
		&i.Acknowledged, &ackAt, &i.Resolved, &resAt, &i.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan incident: %w", err)
	}

	if incidentType.Valid {
		i.IncidentType = incidentType.String
	}
	if ackAt.Valid {
		i.AcknowledgedAt = &ackAt.Time
	}
	if resAt.Valid {
		i.ResolvedAt = &resAt.Time
	}

	return &i, nil
}

// scanIncidentFromRows 从多行结果扫描
func scanIncidentFromRows(rows *sql.Rows) (*entity.DiplomaticIncident, error) {
	var i entity.DiplomaticIncident
	var incidentType sql.NullString
	var ackAt, resAt sql.NullTime

	err := rows.Scan(
		&i.ID, &i.PerpetratorID, &i.VictimID, &incidentType, &i.Description,
		&i.Severity, &i.TensionImpact, &i.Evidence,
		&i.Acknowledged, &ackAt, &i.Resolved, &resAt, &i.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to scan incident row: %w", err)
	}

	if incidentType.Valid {
		i.IncidentType = incidentType.String
	}
	if ackAt.Valid {
		i.AcknowledgedAt = &ackAt.Time
	}
	if resAt.Valid {
		i.ResolvedAt = &resAt.Time
	}

	return &i, nil
}
