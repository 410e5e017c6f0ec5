package verification

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

type VerificationRepository interface {
	Insert(ctx context.Context, data *model.VerificationEntity) (uint64, error)
	GetByUserID(ctx context.Context, userID uint64) (*model.VerificationEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.VerificationEntity, error)
	List(ctx context.Context, filter *model.VerificationListFilter) ([]*model.VerificationEntity, int64, error)
	Decide(ctx context.Context, id uint64, state constant.VerificationState, notes string) error
	MarkNotified(ctx context.Context, userID uint64) error
}

func NewVerificationRepository(conn *sqlx.DB) VerificationRepository {
	return &SQL{conn: conn}
}

const getVerificationBase = `SELECT id, user_id, state, document_type, document_id, company_name,
	notes, decided_at, notified_at, created_at, updated_at
	FROM verification WHERE true`

func (s *SQL) Insert(ctx context.Context, data *model.VerificationEntity) (uint64, error) {
	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO verification (user_id, state, document_type, document_id, company_name, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			state = VALUES(state), document_type = VALUES(document_type),
			document_id = VALUES(document_id), company_name = VALUES(company_name),
			notes = '', decided_at = NULL, notified_at = NULL, updated_at = NOW()`,
		data.UserID, data.State, data.DocumentType, data.DocumentID, data.CompanyName)
	if err != nil {
		return 0, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) GetByUserID(ctx context.Context, userID uint64) (*model.VerificationEntity, error) {
	return s.getOne(ctx, getVerificationBase+" AND user_id = ?", userID)
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.VerificationEntity, error) {
	return s.getOne(ctx, getVerificationBase+" AND id = ?", id)
}

func (s *SQL) getOne(ctx context.Context, query string, arg any) (*model.VerificationEntity, error) {
	var entity model.VerificationEntity
	if err := s.conn.QueryRowxContext(ctx, query, arg).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.VerificationListFilter) ([]*model.VerificationEntity, int64, error) {
	where := ""
	args := make([]any, 0, 1)

	if filter.State != "" {
		where += " AND state = ?"
		args = append(args, filter.State)
	}

	var total int64
	if err := s.conn.QueryRowxContext(ctx, `SELECT COUNT(*) FROM verification WHERE true`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := getVerificationBase + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*model.VerificationEntity, 0, filter.Limit)
	for rows.Next() {
		var entity model.VerificationEntity
		if err := rows.StructScan(&entity); err != nil {
			return nil, 0, err
		}
		items = append(items, &entity)
	}
	return items, total, rows.Err()
}

func (s *SQL) Decide(ctx context.Context, id uint64, state constant.VerificationState, notes string) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE verification SET state = ?, notes = ?, decided_at = NOW(), notified_at = NULL, updated_at = NOW() WHERE id = ?`,
		state, notes, id)
	return err
}

func (s *SQL) MarkNotified(ctx context.Context, userID uint64) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE verification SET notified_at = NOW(), updated_at = NOW() WHERE user_id = ?`, userID)
	return err
}
