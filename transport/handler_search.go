package transport

import (
	"encoding/json"
	"net/http"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	utilsContext "github.com/cargomarket/backend/utils/context"
	"github.com/cargomarket/backend/utils/errors"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// Search handler
// @Summary Search listings
// @Description Filter and rank active listings for the chosen tab
// @Tags Search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SearchRequest true "Search Request"
// @Success 200 {object} model.SearchResponse
// @Failure 400 {object} errors.CustomError
// @Router /search [post]
func (s *RestHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SearchRequest
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

	res, err := s.SearchApp.Search(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GeoDirectory handler
// @Summary Geo directory
// @Description Static country/region/city table backing the search filters
// @Tags Search
// @Produce json
// @Success 200 {object} model.GeoDirectory
// @Router /geo/directory [get]
func (s *RestHandler) GeoDirectory(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, s.SearchApp.Directory())
}
