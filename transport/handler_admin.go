package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	utilsContext "github.com/cargomarket/backend/utils/context"
	"github.com/cargomarket/backend/utils/errors"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// adminID pulls the acting admin from the request context. The auth middleware
// has already checked the admin flag for /admin/ routes.
func adminID(r *http.Request, w http.ResponseWriter) (uint64, bool) {
	id, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
	}
	return id, ok
}

// AdminListUsers handler
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Param search query string false "Match phone or name"
// @Success 200 {object} model.PageResponse[model.UserEntity]
// @Router /admin/users [get]
func (s *RestHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	filter := &model.UserListFilter{
		Page:   page,
		Limit:  limit,
		Status: constant.UserStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	res, err := s.AdminApp.ListUsers(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminUpdateUser handler
// @Summary Update user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body model.AdminUserUpdateRequest true "Update Request"
// @Success 200 {object} nil
// @Router /admin/users/{id} [put]
func (s *RestHandler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	userID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.AdminUserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.UpdateUser(r.Context(), admin, userID, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminBanUser handler
// @Summary Ban user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} nil
// @Router /admin/users/{id}/ban [post]
func (s *RestHandler) AdminBanUser(w http.ResponseWriter, r *http.Request) {
	s.adminUserAction(w, r, s.AdminApp.BanUser)
}

// AdminActivateUser handler
// @Summary Activate user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} nil
// @Router /admin/users/{id}/activate [post]
func (s *RestHandler) AdminActivateUser(w http.ResponseWriter, r *http.Request) {
	s.adminUserAction(w, r, s.AdminApp.ActivateUser)
}

// AdminDeleteUser handler
// @Summary Delete user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} nil
// @Router /admin/users/{id} [delete]
func (s *RestHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.adminUserAction(w, r, s.AdminApp.DeleteUser)
}

func (s *RestHandler) adminUserAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, adminID, userID uint64) error) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	userID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := action(r.Context(), admin, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminListCargo handler
// @Summary List cargo listings (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PageResponse[model.ListingEntity]
// @Router /admin/cargo [get]
func (s *RestHandler) AdminListCargo(w http.ResponseWriter, r *http.Request) {
	s.adminListListings(w, r, constant.ListingTypeCargo)
}

// AdminListTransport handler
// @Summary List transport listings (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PageResponse[model.ListingEntity]
// @Router /admin/transport [get]
func (s *RestHandler) AdminListTransport(w http.ResponseWriter, r *http.Request) {
	s.adminListListings(w, r, constant.ListingTypeTransport)
}

func (s *RestHandler) adminListListings(w http.ResponseWriter, r *http.Request, listingType constant.ListingType) {
	page, limit := queryPage(r)

	res, err := s.AdminApp.ListListings(r.Context(), listingType, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminDeleteListing handler
// @Summary Delete any listing
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} nil
// @Router /admin/listings/{id} [delete]
func (s *RestHandler) AdminDeleteListing(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.DeleteListing(r.Context(), admin, listingID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminListBlacklist handler
// @Summary List blocked IPs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PageResponse[model.IPBlacklistItem]
// @Router /admin/blacklist [get]
func (s *RestHandler) AdminListBlacklist(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)

	res, err := s.AdminApp.ListBlacklist(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminAddBlacklist handler
// @Summary Block an IP
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.IPBlacklistRequest true "Blacklist Request"
// @Success 200 {object} nil
// @Router /admin/blacklist [post]
func (s *RestHandler) AdminAddBlacklist(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}

	var req model.IPBlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.AdminApp.AddBlacklist(r.Context(), admin, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]uint64{"id": id})
}

// AdminUpdateBlacklist handler
// @Summary Update a blocked IP
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blacklist ID"
// @Param request body model.IPBlacklistRequest true "Blacklist Request"
// @Success 200 {object} nil
// @Router /admin/blacklist/{id} [put]
func (s *RestHandler) AdminUpdateBlacklist(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.IPBlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.UpdateBlacklist(r.Context(), admin, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminDeleteBlacklist handler
// @Summary Unblock an IP
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blacklist ID"
// @Success 200 {object} nil
// @Router /admin/blacklist/{id} [delete]
func (s *RestHandler) AdminDeleteBlacklist(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.DeleteBlacklist(r.Context(), admin, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminListGeoLocations handler
// @Summary List geo locations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param level query string false "COUNTRY, REGION or CITY"
// @Param parent_id query int false "Restrict to children of this row"
// @Param search query string false "Match name"
// @Success 200 {object} model.GeoLocationListResponse
// @Router /admin/geo-locations [get]
func (s *RestHandler) AdminListGeoLocations(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	parentID, _ := strconv.ParseUint(r.URL.Query().Get("parent_id"), 10, 64)

	filter := &model.GeoLocationFilter{
		Page:     page,
		Limit:    limit,
		Level:    constant.GeoLevel(r.URL.Query().Get("level")),
		ParentID: parentID,
		Search:   r.URL.Query().Get("search"),
	}

	res, err := s.AdminApp.ListGeoLocations(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminCreateGeoLocation handler
// @Summary Create geo location
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.GeoLocationRequest true "Geo Location Request"
// @Success 200 {object} nil
// @Router /admin/geo-locations [post]
func (s *RestHandler) AdminCreateGeoLocation(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}

	var req model.GeoLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.AdminApp.CreateGeoLocation(r.Context(), admin, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]uint64{"id": id})
}

// AdminUpdateGeoLocation handler
// @Summary Update geo location
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Geo Location ID"
// @Param request body model.GeoLocationRequest true "Geo Location Request"
// @Success 200 {object} nil
// @Router /admin/geo-locations/{id} [put]
func (s *RestHandler) AdminUpdateGeoLocation(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.GeoLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.UpdateGeoLocation(r.Context(), admin, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminDeleteGeoLocation handler
// @Summary Delete geo location
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Geo Location ID"
// @Success 200 {object} nil
// @Router /admin/geo-locations/{id} [delete]
func (s *RestHandler) AdminDeleteGeoLocation(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AdminApp.DeleteGeoLocation(r.Context(), admin, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminListActivityLogs handler
// @Summary List activity logs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Filter by acting user"
// @Param action query string false "Filter by action"
// @Success 200 {object} model.PageResponse[model.ActivityLog]
// @Router /admin/activity-logs [get]
func (s *RestHandler) AdminListActivityLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	userID, _ := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 64)

	filter := &model.ActivityLogFilter{
		Page:   page,
		Limit:  limit,
		UserID: userID,
		Action: r.URL.Query().Get("action"),
	}

	res, err := s.AdminApp.ListActivityLogs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminListVerifications handler
// @Summary List verification requests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param state query string false "Filter by state"
// @Success 200 {object} model.PageResponse[model.VerificationEntity]
// @Router /admin/verifications [get]
func (s *RestHandler) AdminListVerifications(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)

	filter := &model.VerificationListFilter{
		Page:  page,
		Limit: limit,
		State: constant.VerificationState(r.URL.Query().Get("state")),
	}

	res, err := s.VerificationApp.ListPending(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminApproveVerification handler
// @Summary Approve verification
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Verification ID"
// @Success 200 {object} nil
// @Router /admin/verifications/{id}/approve [post]
func (s *RestHandler) AdminApproveVerification(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.VerificationApp.Approve(r.Context(), admin, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminRejectVerification handler
// @Summary Reject verification
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Verification ID"
// @Param request body model.VerificationRejectRequest true "Reject Request"
// @Success 200 {object} nil
// @Router /admin/verifications/{id}/reject [post]
func (s *RestHandler) AdminRejectVerification(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminID(r, w)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.VerificationRejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.VerificationApp.Reject(r.Context(), admin, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
