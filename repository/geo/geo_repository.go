package geo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/cargomarket/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type GeoRepository interface {
	Create(ctx context.Context, data *model.GeoLocationEntity) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.GeoLocationEntity, error)
	List(ctx context.Context, filter *model.GeoLocationFilter) ([]*model.GeoLocationEntity, int64, error)
	Update(ctx context.Context, data *model.GeoLocationEntity) error
	Delete(ctx context.Context, id uint64) error
}

func NewGeoRepository(conn *sqlx.DB) GeoRepository {
	return &SQL{conn: conn}
}

const (
	insertGeoQuery = `INSERT INTO geo_location (parent_id, level, name, code, iso2, slug, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`
	getGeoBase = `SELECT id, parent_id, level, name, code, iso2, slug, is_active, created_at, updated_at
		FROM geo_location WHERE true`
	countGeoBase = `SELECT COUNT(*) FROM geo_location WHERE true`
)

func (s *SQL) Create(ctx context.Context, data *model.GeoLocationEntity) (uint64, error) {
	result, err := s.conn.ExecContext(ctx, insertGeoQuery,
		data.ParentID, data.Level, data.Name, data.Code, data.ISO2, data.Slug, data.IsActive)
	if err != nil {
		return 0, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.GeoLocationEntity, error) {
	var entity model.GeoLocationEntity
	if err := s.conn.QueryRowxContext(ctx, getGeoBase+" AND id = ?", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.GeoLocationFilter) ([]*model.GeoLocationEntity, int64, error) {
	where := ""
	args := make([]any, 0, 3)

	if filter.Level != "" {
		where += " AND level = ?"
		args = append(args, filter.Level)
	}
	if filter.ParentID != 0 {
		where += " AND parent_id = ?"
		args = append(args, filter.ParentID)
	}
	if filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := s.conn.QueryRowxContext(ctx, countGeoBase+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := getGeoBase + where + " ORDER BY level, name LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*model.GeoLocationEntity, 0, filter.Limit)
	for rows.Next() {
		var entity model.GeoLocationEntity
		if err := rows.StructScan(&entity); err != nil {
			return nil, 0, err
		}
		items = append(items, &entity)
	}
	return items, total, rows.Err()
}

func (s *SQL) Update(ctx context.Context, data *model.GeoLocationEntity) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE geo_location SET parent_id = ?, level = ?, name = ?, code = ?, iso2 = ?, slug = ?, is_active = ?, updated_at = NOW() WHERE id = ?`,
		data.ParentID, data.Level, data.Name, data.Code, data.ISO2, data.Slug, data.IsActive, data.ID)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM geo_location WHERE id = ?`, id)
	return err
}
