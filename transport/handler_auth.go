package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	utilsContext "github.com/cargomarket/backend/utils/context"
	"github.com/cargomarket/backend/utils/errors"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// CheckPhone handler
// @Summary Check phone
// @Description Check whether a phone is registered and send an OTP for the requested intent
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.CheckPhoneRequest true "Check Phone Request"
// @Success 200 {object} model.CheckPhoneResponse
// @Failure 400 {object} errors.CustomError
// @Router /auth/check-phone [post]
func (s *RestHandler) CheckPhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CheckPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.CheckPhone(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// VerifyPhone handler
// @Summary Verify phone
// @Description Confirm the registration OTP and receive registration-scoped tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.VerifyPhoneRequest true "Verify Phone Request"
// @Success 200 {object} model.VerifyPhoneResponse
// @Failure 400 {object} errors.CustomError
// @Router /auth/verify-phone [post]
func (s *RestHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.VerifyPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.VerifyPhone(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Register handler
// @Summary Complete registration
// @Description Finish the profile after phone verification and receive full tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
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

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	res, err := s.AuthApp.Register(ctx, userID, token, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with phone and password and receive JWT tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Refresh handler
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RefreshRequest true "Refresh Request"
// @Success 200 {object} model.TokenPair
// @Failure 401 {object} errors.CustomError
// @Router /auth/refresh [post]
func (s *RestHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Refresh(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout
// @Description Drop the session behind the presented access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} nil
// @Router /auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := s.AuthApp.Logout(ctx, token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// Me handler
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserEntity
// @Failure 401 {object} errors.CustomError
// @Router /auth/me [get]
func (s *RestHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.AuthApp.Me(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// VerifyRestorePassword handler
// @Summary Verify restore code
// @Description Confirm the restore OTP and receive reset-scoped tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.VerifyPhoneRequest true "Verify Restore Request"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} errors.CustomError
// @Router /auth/restore/verify [post]
func (s *RestHandler) VerifyRestorePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.VerifyPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.VerifyRestorePassword(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ResetPassword handler
// @Summary Reset password
// @Description Set a new password using a reset-scoped token
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /auth/reset-password [post]
func (s *RestHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ResetPasswordRequest
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

	if err := s.AuthApp.ResetPassword(ctx, userID, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
