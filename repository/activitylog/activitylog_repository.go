package activitylog

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cargomarket/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, filter *model.ActivityLogFilter) ([]*model.ActivityLog, int64, error)
}

func NewActivityLogRepository(conn *sqlx.DB) ActivityLogRepository {
	return &SQL{conn: conn}
}

const getLogBase = `SELECT id, user_id, action, entity, entity_id, ip, detail, created_at
	FROM activity_log WHERE true`

func (s *SQL) Insert(ctx context.Context, entry *model.ActivityLog) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO activity_log (user_id, action, entity, entity_id, ip, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		entry.UserID, entry.Action, entry.Entity, entry.EntityID, entry.IP, entry.Detail)
	return err
}

func (s *SQL) List(ctx context.Context, filter *model.ActivityLogFilter) ([]*model.ActivityLog, int64, error) {
	where := ""
	args := make([]any, 0, 2)

	if filter.UserID != 0 {
		where += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Action != "" {
		where += " AND action = ?"
		args = append(args, filter.Action)
	}

	var total int64
	if err := s.conn.QueryRowxContext(ctx, `SELECT COUNT(*) FROM activity_log WHERE true`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := getLogBase + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*model.ActivityLog, 0, filter.Limit)
	for rows.Next() {
		var entry model.ActivityLog
		if err := rows.StructScan(&entry); err != nil {
			return nil, 0, err
		}
		items = append(items, &entry)
	}
	return items, total, rows.Err()
}
