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

// SubmitVerification handler
// @Summary Submit identity verification
// @Tags Verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VerificationSubmitRequest true "Verification Request"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /verification [post]
func (s *RestHandler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.VerificationSubmitRequest
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

	if err := s.VerificationApp.Submit(ctx, userID, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// VerificationStatus handler
// @Summary Own verification status
// @Tags Verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.VerificationStatusResponse
// @Router /verification/status [get]
func (s *RestHandler) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.VerificationApp.Status(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// VerificationNotificationShown handler
// @Summary Acknowledge verification decision
// @Tags Verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} nil
// @Router /verification/notification-shown [post]
func (s *RestHandler) VerificationNotificationShown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.VerificationApp.MarkNotificationShown(ctx, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
