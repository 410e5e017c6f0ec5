package listing

import (
	"context"

	"go.uber.org/zap"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	activityrepo "github.com/cargomarket/backend/repository/activitylog"
	listingrepo "github.com/cargomarket/backend/repository/listing"
	txrepo "github.com/cargomarket/backend/repository/tx"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
)

type ListingApp interface {
	Create(ctx context.Context, userID uint64, listingType constant.ListingType, req *model.CreateListingRequest) (*model.CreateListingResponse, error)
	List(ctx context.Context, listingType constant.ListingType, page, limit int) (*model.ListingListResponse, error)
	MyList(ctx context.Context, userID uint64, listingType constant.ListingType, page, limit int) (*model.ListingListResponse, error)
	Bump(ctx context.Context, userID, listingID uint64) error
	Delete(ctx context.Context, userID, listingID uint64) error
}

type listingAppImpl struct {
	txRepo       txrepo.TxRepository
	listingRepo  listingrepo.ListingRepository
	activityRepo activityrepo.ActivityLogRepository
}

func NewListingApp(txRepo txrepo.TxRepository, listingRepo listingrepo.ListingRepository, activityRepo activityrepo.ActivityLogRepository) ListingApp {
	return &listingAppImpl{txRepo: txRepo, listingRepo: listingRepo, activityRepo: activityRepo}
}

// pointRoles maps a listing type to its required origin and destination roles.
var pointRoles = map[constant.ListingType][2]constant.PointRole{
	constant.ListingTypeCargo:     {constant.PointRolePickup, constant.PointRoleDropoff},
	constant.ListingTypeTransport: {constant.PointRoleDeparture, constant.PointRoleArrival},
}

func (s *listingAppImpl) Create(ctx context.Context, userID uint64, listingType constant.ListingType, req *model.CreateListingRequest) (*model.CreateListingResponse, error) {
	if err := validatePointRoles(listingType, req.Points); err != nil {
		return nil, err
	}
	if req.AvailableTo.Before(req.AvailableFrom) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	entity := &model.ListingEntity{
		UserID:        userID,
		Type:          listingType,
		Status:        constant.ListingStatusActive,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		WeightTons:    req.WeightTons,
		VolumeM3:      req.VolumeM3,
		LengthM:       req.LengthM,
		WidthM:        req.WidthM,
		HeightM:       req.HeightM,
		VehicleType:   req.VehicleType,
		CargoType:     MapCargoTypeToAPI(req.CargoSubtype),
		CargoSubtype:  req.CargoSubtype,
		PriceAmount:   req.PriceAmount,
		PriceCurrency: req.PriceCurrency,
		PaymentMethod: req.PaymentMethod,
		PaymentTerm:   req.PaymentTerm,
		Bargain:       req.Bargain,
		Note:          req.Note,
		ExtraPhone:    req.ExtraPhone,
	}
	for _, p := range req.Points {
		entity.Points = append(entity.Points, model.ListingPoint{
			Role:    p.Role,
			Country: p.Country,
			Region:  p.Region,
			City:    p.City,
			Address: p.Address,
		})
	}

	// Legacy clients still smuggle the subtype in the note.
	if entity.CargoSubtype == "" {
		if marked := ParseCargoTypeMarker(req.Note); marked != "" {
			entity.CargoSubtype = marked
			entity.CargoType = MapCargoTypeToAPI(marked)
		}
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateListing] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	id, err := s.listingRepo.InsertListingTx(ctx, tx, entity)
	if err != nil {
		logger.Error("[CreateListing] insert listing", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.listingRepo.InsertPointsTx(ctx, tx, id, entity.Points); err != nil {
		logger.Error("[CreateListing] insert points", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateListing] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.logActivity(ctx, userID, "listing.create", id)
	return &model.CreateListingResponse{ID: id}, nil
}

func (s *listingAppImpl) List(ctx context.Context, listingType constant.ListingType, page, limit int) (*model.ListingListResponse, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.listingRepo.List(ctx, &model.ListingListFilter{
		Type:  listingType,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		logger.Error("[ListListings] err listingRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ListingListResponse{Items: items, TotalCount: total, Page: page, PerPage: limit}, nil
}

func (s *listingAppImpl) MyList(ctx context.Context, userID uint64, listingType constant.ListingType, page, limit int) (*model.ListingListResponse, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.listingRepo.List(ctx, &model.ListingListFilter{
		Type:   listingType,
		UserID: userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		logger.Error("[MyListings] err listingRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ListingListResponse{Items: items, TotalCount: total, Page: page, PerPage: limit}, nil
}

func (s *listingAppImpl) Bump(ctx context.Context, userID, listingID uint64) error {
	if err := s.requireOwned(ctx, userID, listingID); err != nil {
		return err
	}
	if err := s.listingRepo.Bump(ctx, listingID); err != nil {
		logger.Error("[BumpListing] err listingRepo.Bump", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, userID, "listing.bump", listingID)
	return nil
}

func (s *listingAppImpl) Delete(ctx context.Context, userID, listingID uint64) error {
	if err := s.requireOwned(ctx, userID, listingID); err != nil {
		return err
	}
	if err := s.listingRepo.SetStatus(ctx, listingID, constant.ListingStatusDeleted); err != nil {
		logger.Error("[DeleteListing] err listingRepo.SetStatus", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, userID, "listing.delete", listingID)
	return nil
}

func (s *listingAppImpl) requireOwned(ctx context.Context, userID, listingID uint64) error {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[requireOwned] err listingRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil || entity.Status == constant.ListingStatusDeleted {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.UserID != userID {
		return errors.SetCustomError(constant.ErrForbidden)
	}
	return nil
}

func (s *listingAppImpl) logActivity(ctx context.Context, userID uint64, action string, listingID uint64) {
	if s.activityRepo == nil {
		return
	}
	entry := &model.ActivityLog{UserID: userID, Action: action, Entity: "listing", EntityID: listingID}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		logger.Error("[logActivity] err activityRepo.Insert", zap.String("error", err.Error()))
	}
}

func validatePointRoles(listingType constant.ListingType, points []model.ListingPointRequest) error {
	roles, ok := pointRoles[listingType]
	if !ok {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	seen := map[constant.PointRole]bool{}
	for _, p := range points {
		seen[p.Role] = true
	}
	if len(points) != 2 || !seen[roles[0]] || !seen[roles[1]] {
		return errors.SetCustomError(constant.ErrInvalidPointRole)
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
