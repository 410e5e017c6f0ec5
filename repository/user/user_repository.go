package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	List(ctx context.Context, filter *model.UserListFilter) ([]*model.UserEntity, int64, error)
	UpdateProfile(ctx context.Context, id uint64, firstName, lastName, passwordHash string, stage constant.RegistrationStage) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	AdminUpdate(ctx context.Context, id uint64, req *model.AdminUserUpdateRequest) error
	SetStatus(ctx context.Context, id uint64, status constant.UserStatus) error
	Delete(ctx context.Context, id uint64) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (phone, email, first_name, last_name, password_hash, is_admin, status, registration_stage, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	getUserBase = `SELECT id, phone, email, first_name, last_name, password_hash, is_admin, status, registration_stage, created_at, updated_at
		FROM user WHERE true`
	countUserBase = `SELECT COUNT(*) FROM user WHERE true`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery,
		data.Phone, data.Email, data.FirstName, data.LastName, data.PasswordHash,
		data.IsAdmin, data.Status, data.RegistrationStage)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 3)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.UserListFilter) ([]*model.UserEntity, int64, error) {
	where := ""
	args := make([]any, 0, 3)

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (phone LIKE ? OR CONCAT(first_name, ' ', last_name) LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := s.conn.QueryRowxContext(ctx, countUserBase+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := getUserBase + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	items := make([]*model.UserEntity, 0, filter.Limit)
	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var entity model.UserEntity
		if err := rows.StructScan(&entity); err != nil {
			return nil, 0, err
		}
		items = append(items, &entity)
	}
	return items, total, rows.Err()
}

func (s *SQL) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, passwordHash string, stage constant.RegistrationStage) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE user SET first_name = ?, last_name = ?, password_hash = ?, registration_stage = ?, updated_at = NOW() WHERE id = ?`,
		firstName, lastName, passwordHash, stage, id)
	return err
}

func (s *SQL) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE user SET password_hash = ?, updated_at = NOW() WHERE id = ?`, passwordHash, id)
	return err
}

func (s *SQL) AdminUpdate(ctx context.Context, id uint64, req *model.AdminUserUpdateRequest) error {
	query := "UPDATE user SET updated_at = NOW()"
	args := make([]any, 0, 4)

	if req.FirstName != "" {
		query += ", first_name = ?"
		args = append(args, req.FirstName)
	}
	if req.LastName != "" {
		query += ", last_name = ?"
		args = append(args, req.LastName)
	}
	if req.Email != "" {
		query += ", email = ?"
		args = append(args, req.Email)
	}
	if req.IsAdmin != nil {
		query += ", is_admin = ?"
		args = append(args, *req.IsAdmin)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) SetStatus(ctx context.Context, id uint64, status constant.UserStatus) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE user SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM user WHERE id = ?`, id)
	return err
}
