package ipblacklist

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/cargomarket/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type IPBlacklistRepository interface {
	Create(ctx context.Context, data *model.IPBlacklistItem) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.IPBlacklistItem, error)
	GetByIP(ctx context.Context, ip string) (*model.IPBlacklistItem, error)
	List(ctx context.Context, page, limit int) ([]*model.IPBlacklistItem, int64, error)
	// ListAllIPs returns every blacklisted address, for the middleware cache.
	ListAllIPs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uint64, ip, reason string) error
	Delete(ctx context.Context, id uint64) error
}

func NewIPBlacklistRepository(conn *sqlx.DB) IPBlacklistRepository {
	return &SQL{conn: conn}
}

const getIPBase = `SELECT id, ip, reason, created_by, created_at, updated_at FROM ip_blacklist WHERE true`

func (s *SQL) Create(ctx context.Context, data *model.IPBlacklistItem) (uint64, error) {
	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO ip_blacklist (ip, reason, created_by, created_at) VALUES (?, ?, ?, NOW())`,
		data.IP, data.Reason, data.CreatedBy)
	if err != nil {
		return 0, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.IPBlacklistItem, error) {
	var entity model.IPBlacklistItem
	if err := s.conn.QueryRowxContext(ctx, getIPBase+" AND id = ?", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByIP(ctx context.Context, ip string) (*model.IPBlacklistItem, error) {
	var entity model.IPBlacklistItem
	if err := s.conn.QueryRowxContext(ctx, getIPBase+" AND ip = ?", ip).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, page, limit int) ([]*model.IPBlacklistItem, int64, error) {
	var total int64
	if err := s.conn.QueryRowxContext(ctx, `SELECT COUNT(*) FROM ip_blacklist`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.conn.QueryxContext(ctx,
		getIPBase+" ORDER BY created_at DESC LIMIT ? OFFSET ?", limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*model.IPBlacklistItem, 0, limit)
	for rows.Next() {
		var entity model.IPBlacklistItem
		if err := rows.StructScan(&entity); err != nil {
			return nil, 0, err
		}
		items = append(items, &entity)
	}
	return items, total, rows.Err()
}

func (s *SQL) ListAllIPs(ctx context.Context) ([]string, error) {
	var ips []string
	if err := s.conn.SelectContext(ctx, &ips, `SELECT ip FROM ip_blacklist`); err != nil {
		return nil, err
	}
	return ips, nil
}

func (s *SQL) Update(ctx context.Context, id uint64, ip, reason string) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE ip_blacklist SET ip = ?, reason = ?, updated_at = NOW() WHERE id = ?`, ip, reason, id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM ip_blacklist WHERE id = ?`, id)
	return err
}
