package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	utilsContext "github.com/cargomarket/backend/utils/context"
	"github.com/cargomarket/backend/utils/errors"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// CreateCargo handler
// @Summary Create cargo listing
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateListingRequest true "Create Listing Request"
// @Success 200 {object} model.CreateListingResponse
// @Failure 400 {object} errors.CustomError
// @Router /cargo [post]
func (s *RestHandler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, constant.ListingTypeCargo)
}

// CreateTransport handler
// @Summary Create transport listing
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateListingRequest true "Create Listing Request"
// @Success 200 {object} model.CreateListingResponse
// @Failure 400 {object} errors.CustomError
// @Router /transport [post]
func (s *RestHandler) CreateTransport(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, constant.ListingTypeTransport)
}

func (s *RestHandler) createListing(w http.ResponseWriter, r *http.Request, listingType constant.ListingType) {
	ctx := r.Context()

	var req model.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.ListingApp.Create(ctx, userID, listingType, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCargo handler
// @Summary List active cargo listings
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} model.ListingListResponse
// @Router /cargo [get]
func (s *RestHandler) ListCargo(w http.ResponseWriter, r *http.Request) {
	s.listListings(w, r, constant.ListingTypeCargo)
}

// ListTransport handler
// @Summary List active transport listings
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} model.ListingListResponse
// @Router /transport [get]
func (s *RestHandler) ListTransport(w http.ResponseWriter, r *http.Request) {
	s.listListings(w, r, constant.ListingTypeTransport)
}

func (s *RestHandler) listListings(w http.ResponseWriter, r *http.Request, listingType constant.ListingType) {
	page, limit := queryPage(r)

	res, err := s.ListingApp.List(r.Context(), listingType, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// MyCargo handler
// @Summary Own cargo listings
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ListingListResponse
// @Router /cargo/my [get]
func (s *RestHandler) MyCargo(w http.ResponseWriter, r *http.Request) {
	s.myListings(w, r, constant.ListingTypeCargo)
}

// MyTransport handler
// @Summary Own transport listings
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ListingListResponse
// @Router /transport/my [get]
func (s *RestHandler) MyTransport(w http.ResponseWriter, r *http.Request) {
	s.myListings(w, r, constant.ListingTypeTransport)
}

func (s *RestHandler) myListings(w http.ResponseWriter, r *http.Request, listingType constant.ListingType) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := queryPage(r)

	res, err := s.ListingApp.MyList(ctx, userID, listingType, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// BumpListing handler
// @Summary Bump own listing to the top
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} nil
// @Failure 403 {object} errors.CustomError
// @Router /listings/{id}/bump [post]
func (s *RestHandler) BumpListing(w http.ResponseWriter, r *http.Request) {
	s.ownListingAction(w, r, s.ListingApp.Bump)
}

// DeleteListing handler
// @Summary Delete own listing
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} nil
// @Failure 403 {object} errors.CustomError
// @Router /listings/{id} [delete]
func (s *RestHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	s.ownListingAction(w, r, s.ListingApp.Delete)
}

func (s *RestHandler) ownListingAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID, listingID uint64) error) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := action(ctx, userID, listingID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
