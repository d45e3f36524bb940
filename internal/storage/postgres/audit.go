package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/courtshot/courtshot/internal/model"
)

func (s *Storage) SaveAuditLog(ctx context.Context, entry *model.AuditLog) error {
	var details any
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
		details = data
	}

	resourceIDs := entry.ResourceIDs
	if resourceIDs == nil {
		resourceIDs = []string{}
	}
	resourceIDsJSON, err := json.Marshal(resourceIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal resource ids: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, action, user_id, user_name, user_role,
			resource_type, resource_id, resource_ids, details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.UserID, entry.UserName, entry.UserRole,
		entry.ResourceType, entry.ResourceID, resourceIDsJSON, details,
		entry.IPAddress, entry.UserAgent, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (s *Storage) QueryAuditLogs(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, int, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Action != "" {
		conds = append(conds, `action = `+arg(string(filter.Action)))
	}
	if filter.ResourceType != "" {
		conds = append(conds, `resource_type = `+arg(filter.ResourceType))
	}
	if filter.UserID != "" {
		conds = append(conds, `user_id = `+arg(filter.UserID))
	}
	if filter.StartDate != nil {
		conds = append(conds, `created_at >= `+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conds = append(conds, `created_at <= `+arg(*filter.EndDate))
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	query := `SELECT id, action, user_id, user_name, user_role, resource_type,
		resource_id, resource_ids, details, ip_address, user_agent, created_at
		FROM audit_logs` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select audit logs: %w", err)
	}
	defer rows.Close()

	var result []*model.AuditLog
	for rows.Next() {
		entry := &model.AuditLog{}
		var resourceIDs []byte
		var details sql.NullString
		err := rows.Scan(&entry.ID, &entry.Action, &entry.UserID, &entry.UserName, &entry.UserRole,
			&entry.ResourceType, &entry.ResourceID, &resourceIDs, &details,
			&entry.IPAddress, &entry.UserAgent, &entry.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		if len(resourceIDs) > 0 {
			if err := json.Unmarshal(resourceIDs, &entry.ResourceIDs); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal resource ids: %w", err)
			}
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal audit details: %w", err)
			}
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *Storage) Stats(ctx context.Context) (*model.Stats, error) {
	query := `SELECT
		(SELECT count(*) FROM photos),
		(SELECT count(*) FROM collections),
		(SELECT count(*) FROM folders),
		(SELECT coalesce(sum(size_bytes), 0) FROM photos)`

	stats := &model.Stats{}
	err := s.db.QueryRowContext(ctx, query).
		Scan(&stats.PhotoCount, &stats.CollectionCount, &stats.FolderCount, &stats.TotalSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to select stats: %w", err)
	}
	return stats, nil
}
