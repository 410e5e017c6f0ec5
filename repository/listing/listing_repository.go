package listing

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

type ListingRepository interface {
	InsertListingTx(ctx context.Context, tx *sqlx.Tx, data *model.ListingEntity) (uint64, error)
	InsertPointsTx(ctx context.Context, tx *sqlx.Tx, listingID uint64, points []model.ListingPoint) error
	GetByID(ctx context.Context, id uint64) (*model.ListingEntity, error)
	List(ctx context.Context, filter *model.ListingListFilter) ([]*model.ListingEntity, int64, error)
	// ListActive loads every ACTIVE listing with points, for the in-memory
	// search pipeline.
	ListActive(ctx context.Context) ([]*model.ListingEntity, error)
	Bump(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, status constant.ListingStatus) error
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

const (
	insertListingQuery = `INSERT INTO listing
		(user_id, type, status, available_from, available_to, weight_tons, volume_m3,
		 length_m, width_m, height_m, vehicle_type, cargo_type, cargo_subtype,
		 price_amount, price_currency, payment_method, payment_term, bargain, note,
		 extra_phone, created_at, bumped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	insertPointQuery = `INSERT INTO listing_point (listing_id, role, country, region, city, address)
		VALUES (?, ?, ?, ?, ?, ?)`

	getListingBase = `SELECT id, user_id, type, status, available_from, available_to, weight_tons,
		volume_m3, length_m, width_m, height_m, vehicle_type, cargo_type, cargo_subtype,
		price_amount, price_currency, payment_method, payment_term, bargain, note,
		extra_phone, created_at, updated_at, bumped_at
		FROM listing WHERE true`

	countListingBase = `SELECT COUNT(*) FROM listing WHERE true`

	getPointsQuery = `SELECT id, listing_id, role, country, region, city, address
		FROM listing_point WHERE listing_id IN (?) ORDER BY id`
)

func (s *SQL) InsertListingTx(ctx context.Context, tx *sqlx.Tx, data *model.ListingEntity) (uint64, error) {
	result, err := tx.ExecContext(ctx, insertListingQuery,
		data.UserID, data.Type, data.Status, data.AvailableFrom, data.AvailableTo,
		data.WeightTons, data.VolumeM3, data.LengthM, data.WidthM, data.HeightM,
		data.VehicleType, data.CargoType, data.CargoSubtype,
		data.PriceAmount, data.PriceCurrency, data.PaymentMethod, data.PaymentTerm,
		data.Bargain, data.Note, data.ExtraPhone)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) InsertPointsTx(ctx context.Context, tx *sqlx.Tx, listingID uint64, points []model.ListingPoint) error {
	for _, p := range points {
		if _, err := tx.ExecContext(ctx, insertPointQuery,
			listingID, p.Role, p.Country, p.Region, p.City, p.Address); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ListingEntity, error) {
	var entity model.ListingEntity
	if err := s.conn.QueryRowxContext(ctx, getListingBase+" AND id = ?", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := s.attachPoints(ctx, []*model.ListingEntity{&entity}); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.ListingListFilter) ([]*model.ListingEntity, int64, error) {
	where := " AND status = ?"
	args := []any{constant.ListingStatusActive}

	if filter.Type != "" {
		where += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.UserID != 0 {
		where += " AND user_id = ?"
		args = append(args, filter.UserID)
	}

	var total int64
	if err := s.conn.QueryRowxContext(ctx, countListingBase+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := getListingBase + where + " ORDER BY bumped_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	items, err := s.queryListings(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *SQL) ListActive(ctx context.Context) ([]*model.ListingEntity, error) {
	return s.queryListings(ctx,
		getListingBase+" AND status = ? ORDER BY bumped_at DESC",
		constant.ListingStatusActive)
}

func (s *SQL) Bump(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE listing SET bumped_at = NOW(), updated_at = NOW() WHERE id = ?`, id)
	return err
}

func (s *SQL) SetStatus(ctx context.Context, id uint64, status constant.ListingStatus) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE listing SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return err
}

func (s *SQL) queryListings(ctx context.Context, query string, args ...any) ([]*model.ListingEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.ListingEntity, 0)
	for rows.Next() {
		var entity model.ListingEntity
		if err := rows.StructScan(&entity); err != nil {
			return nil, err
		}
		items = append(items, &entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachPoints(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) attachPoints(ctx context.Context, items []*model.ListingEntity) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(items))
	byID := make(map[uint64]*model.ListingEntity, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		byID[item.ID] = item
	}

	query, args, err := sqlx.In(getPointsQuery, ids)
	if err != nil {
		return err
	}

	rows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.ListingPoint
		if err := rows.StructScan(&p); err != nil {
			return err
		}
		if parent, ok := byID[p.ListingID]; ok {
			parent.Points = append(parent.Points, p)
		}
	}
	return rows.Err()
}
