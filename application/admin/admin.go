package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/cargomarket/backend/cmd/config"
	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	activityrepo "github.com/cargomarket/backend/repository/activitylog"
	georepo "github.com/cargomarket/backend/repository/geo"
	iprepo "github.com/cargomarket/backend/repository/ipblacklist"
	listingrepo "github.com/cargomarket/backend/repository/listing"
	redisrepo "github.com/cargomarket/backend/repository/redis"
	userrepo "github.com/cargomarket/backend/repository/user"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
)

// AdminApp backs the six admin panel tabs: users, cargo, transport, IP
// blacklist, geo locations and activity logs. Every mutation is written to
// the activity log with the acting admin.
type AdminApp interface {
	ListUsers(ctx context.Context, filter *model.UserListFilter) (*model.PageResponse[*model.UserEntity], error)
	UpdateUser(ctx context.Context, adminID, userID uint64, req *model.AdminUserUpdateRequest) error
	BanUser(ctx context.Context, adminID, userID uint64) error
	ActivateUser(ctx context.Context, adminID, userID uint64) error
	DeleteUser(ctx context.Context, adminID, userID uint64) error

	ListListings(ctx context.Context, listingType constant.ListingType, page, limit int) (*model.PageResponse[*model.ListingEntity], error)
	DeleteListing(ctx context.Context, adminID, listingID uint64) error

	ListBlacklist(ctx context.Context, page, limit int) (*model.PageResponse[*model.IPBlacklistItem], error)
	AddBlacklist(ctx context.Context, adminID uint64, req *model.IPBlacklistRequest) (uint64, error)
	UpdateBlacklist(ctx context.Context, adminID, id uint64, req *model.IPBlacklistRequest) error
	DeleteBlacklist(ctx context.Context, adminID, id uint64) error

	ListGeoLocations(ctx context.Context, filter *model.GeoLocationFilter) (*model.GeoLocationListResponse, error)
	CreateGeoLocation(ctx context.Context, adminID uint64, req *model.GeoLocationRequest) (uint64, error)
	UpdateGeoLocation(ctx context.Context, adminID, id uint64, req *model.GeoLocationRequest) error
	DeleteGeoLocation(ctx context.Context, adminID, id uint64) error

	ListActivityLogs(ctx context.Context, filter *model.ActivityLogFilter) (*model.PageResponse[*model.ActivityLog], error)
}

type adminAppImpl struct {
	config       *config.Config
	userRepo     userrepo.UserRepository
	listingRepo  listingrepo.ListingRepository
	ipRepo       iprepo.IPBlacklistRepository
	geoRepo      georepo.GeoRepository
	activityRepo activityrepo.ActivityLogRepository
	redisRepo    redisrepo.Repository
}

func NewAdminApp(config *config.Config, userRepo userrepo.UserRepository, listingRepo listingrepo.ListingRepository,
	ipRepo iprepo.IPBlacklistRepository, geoRepo georepo.GeoRepository,
	activityRepo activityrepo.ActivityLogRepository, redisRepo redisrepo.Repository) AdminApp {
	return &adminAppImpl{
		config:       config,
		userRepo:     userRepo,
		listingRepo:  listingRepo,
		ipRepo:       ipRepo,
		geoRepo:      geoRepo,
		activityRepo: activityRepo,
		redisRepo:    redisRepo,
	}
}

// ---- users ----

func (s *adminAppImpl) ListUsers(ctx context.Context, filter *model.UserListFilter) (*model.PageResponse[*model.UserEntity], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListUsers] err userRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PageResponse[*model.UserEntity]{
		Items: items, TotalCount: total, Page: filter.Page, PerPage: filter.Limit,
	}, nil
}

func (s *adminAppImpl) UpdateUser(ctx context.Context, adminID, userID uint64, req *model.AdminUserUpdateRequest) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.AdminUpdate(ctx, userID, req); err != nil {
		logger.Error("[UpdateUser] err userRepo.AdminUpdate", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, adminID, "admin.user.update", "user", userID)
	return nil
}

func (s *adminAppImpl) BanUser(ctx context.Context, adminID, userID uint64) error {
	return s.setUserStatus(ctx, adminID, userID, constant.UserStatusBanned, "admin.user.ban")
}

func (s *adminAppImpl) ActivateUser(ctx context.Context, adminID, userID uint64) error {
	return s.setUserStatus(ctx, adminID, userID, constant.UserStatusActive, "admin.user.activate")
}

func (s *adminAppImpl) setUserStatus(ctx context.Context, adminID, userID uint64, status constant.UserStatus, action string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetStatus(ctx, userID, status); err != nil {
		logger.Error("[setUserStatus] err userRepo.SetStatus", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, adminID, action, "user", userID)
	return nil
}

func (s *adminAppImpl) DeleteUser(ctx context.Context, adminID, userID uint64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		logger.Error("[DeleteUser] err userRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, adminID, "admin.user.delete", "user", userID)
	return nil
}

func (s *adminAppImpl) requireUser(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[requireUser] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

// ---- listings ----

func (s *adminAppImpl) ListListings(ctx context.Context, listingType constant.ListingType, page, limit int) (*model.PageResponse[*model.ListingEntity], error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.listingRepo.List(ctx, &model.ListingListFilter{
		Type: listingType, Page: page, Limit: limit,
	})
	if err != nil {
		logger.Error("[ListListings] err listingRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PageResponse[*model.ListingEntity]{
		Items: items, TotalCount: total, Page: page, PerPage: limit,
	}, nil
}

func (s *adminAppImpl) DeleteListing(ctx context.Context, adminID, listingID uint64) error {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[DeleteListing] err listingRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if err := s.listingRepo.SetStatus(ctx, listingID, constant.ListingStatusDeleted); err != nil {
		logger.Error("[DeleteListing] err listingRepo.SetStatus", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, adminID, "admin.listing.delete", "listing", listingID)
	return nil
}

// ---- ip blacklist ----

func (s *adminAppImpl) ListBlacklist(ctx context.Context, page, limit int) (*model.PageResponse[*model.IPBlacklistItem], error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.ipRepo.List(ctx, page, limit)
	if err != nil {
		logger.Error("[ListBlacklist] err ipRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PageResponse[*model.IPBlacklistItem]{
		Items: items, TotalCount: total, Page: page, PerPage: limit,
	}, nil
}

func (s *adminAppImpl) AddBlacklist(ctx context.Context, adminID uint64, req *model.IPBlacklistRequest) (uint64, error) {
	existing, err := s.ipRepo.GetByIP(ctx, req.IP)
	if err != nil {
		logger.Error("[AddBlacklist] err ipRepo.GetByIP", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	id, err := s.ipRepo.Create(ctx, &model.IPBlacklistItem{IP: req.IP, Reason: req.Reason, CreatedBy: adminID})
	if err != nil {
		logger.Error("[AddBlacklist] err ipRepo.Create", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	s.refreshBlacklistCache(ctx)
	s.logActivity(ctx, adminID, "admin.blacklist.add", "ip_blacklist", id)
	return id, nil
}

func (s *adminAppImpl) UpdateBlacklist(ctx context.Context, adminID, id uint64, req *model.IPBlacklistRequest) error {
	existing, err := s.ipRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateBlacklist] err ipRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.ipRepo.Update(ctx, id, req.IP, req.Reason); err != nil {
		logger.Error("[UpdateBlacklist] err ipRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.refreshBlacklistCache(ctx)
	s.logActivity(ctx, adminID, "admin.blacklist.update", "ip_blacklist", id)
	return nil
}

func (s *adminAppImpl) DeleteBlacklist(ctx context.Context, adminID, id uint64) error {
	if err := s.ipRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteBlacklist] err ipRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.refreshBlacklistCache(ctx)
	s.logActivity(ctx, adminID, "admin.blacklist.delete", "ip_blacklist", id)
	return nil
}

// refreshBlacklistCache rewrites the middleware cache so mutations take
// effect without waiting out the TTL.
func (s *adminAppImpl) refreshBlacklistCache(ctx context.Context) {
	ips, err := s.ipRepo.ListAllIPs(ctx)
	if err != nil {
		logger.Error("[refreshBlacklistCache] err ipRepo.ListAllIPs", zap.String("error", err.Error()))
		return
	}
	if err := s.redisRepo.SetBlacklistedIPs(ctx, ips, s.config.Auth.IPBlacklistCacheTTL); err != nil {
		logger.Error("[refreshBlacklistCache] err SetBlacklistedIPs", zap.String("error", err.Error()))
	}
}

// ---- geo locations ----

// geoParentLevels names the level a parent row must have.
var geoParentLevels = map[constant.GeoLevel]constant.GeoLevel{
	constant.GeoLevelRegion: constant.GeoLevelCountry,
	constant.GeoLevelCity:   constant.GeoLevelRegion,
}

func (s *adminAppImpl) ListGeoLocations(ctx context.Context, filter *model.GeoLocationFilter) (*model.GeoLocationListResponse, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.geoRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListGeoLocations] err geoRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.GeoLocationListResponse{
		Items: items, TotalCount: total, Page: filter.Page, PerPage: filter.Limit,
	}, nil
}

func (s *adminAppImpl) CreateGeoLocation(ctx context.Context, adminID uint64, req *model.GeoLocationRequest) (uint64, error) {
	if err := s.validateGeoParent(ctx, req); err != nil {
		return 0, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	id, err := s.geoRepo.Create(ctx, &model.GeoLocationEntity{
		ParentID: req.ParentID,
		Level:    req.Level,
		Name:     req.Name,
		Code:     req.Code,
		ISO2:     req.ISO2,
		Slug:     req.Slug,
		IsActive: isActive,
	})
	if err != nil {
		logger.Error("[CreateGeoLocation] err geoRepo.Create", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	s.logActivity(ctx, adminID, "admin.geo.create", "geo_location", id)
	return id, nil
}

func (s *adminAppImpl) UpdateGeoLocation(ctx context.Context, adminID, id uint64, req *model.GeoLocationRequest) error {
	existing, err := s.geoRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateGeoLocation] err geoRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if err := s.validateGeoParent(ctx, req); err != nil {
		return err
	}

	existing.ParentID = req.ParentID
	existing.Level = req.Level
	existing.Name = req.Name
	existing.Code = req.Code
	existing.ISO2 = req.ISO2
	existing.Slug = req.Slug
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.geoRepo.Update(ctx, existing); err != nil {
		logger.Error("[UpdateGeoLocation] err geoRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.logActivity(ctx, adminID, "admin.geo.update", "geo_location", id)
	return nil
}

func (s *adminAppImpl) DeleteGeoLocation(ctx context.Context, adminID, id uint64) error {
	if err := s.geoRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteGeoLocation] err geoRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.logActivity(ctx, adminID, "admin.geo.delete", "geo_location", id)
	return nil
}

func (s *adminAppImpl) validateGeoParent(ctx context.Context, req *model.GeoLocationRequest) error {
	wantParent, needsParent := geoParentLevels[req.Level]

	if !needsParent {
		if req.ParentID != nil {
			return errors.SetCustomError(constant.ErrInvalidGeoParent)
		}
		return nil
	}

	if req.ParentID == nil {
		return errors.SetCustomError(constant.ErrInvalidGeoParent)
	}
	parent, err := s.geoRepo.GetByID(ctx, *req.ParentID)
	if err != nil {
		logger.Error("[validateGeoParent] err geoRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if parent == nil || parent.Level != wantParent {
		return errors.SetCustomError(constant.ErrInvalidGeoParent)
	}
	return nil
}

// ---- activity logs ----

func (s *adminAppImpl) ListActivityLogs(ctx context.Context, filter *model.ActivityLogFilter) (*model.PageResponse[*model.ActivityLog], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListActivityLogs] err activityRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PageResponse[*model.ActivityLog]{
		Items: items, TotalCount: total, Page: filter.Page, PerPage: filter.Limit,
	}, nil
}

func (s *adminAppImpl) logActivity(ctx context.Context, adminID uint64, action, entity string, entityID uint64) {
	entry := &model.ActivityLog{UserID: adminID, Action: action, Entity: entity, EntityID: entityID}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		logger.Error("[logActivity] err activityRepo.Insert", zap.String("error", err.Error()))
	}
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
