package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cargomarket/backend/cmd/config"
	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	activityrepo "github.com/cargomarket/backend/repository/activitylog"
	redisrepo "github.com/cargomarket/backend/repository/redis"
	userrepo "github.com/cargomarket/backend/repository/user"
	"github.com/cargomarket/backend/thirdparty/rabbitmq"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// MockOTPCode is the fixed code accepted in SMS mock mode. Never active in
// production (config forces mock mode off there).
const MockOTPCode = "123456"

// SMSPublisher queues outbound texts for the dispatch worker.
type SMSPublisher interface {
	PublishSMS(msg rabbitmq.SMSMessage) error
}

type AuthApp interface {
	CheckPhone(ctx context.Context, req *model.CheckPhoneRequest) (*model.CheckPhoneResponse, error)
	VerifyPhone(ctx context.Context, req *model.VerifyPhoneRequest) (*model.VerifyPhoneResponse, error)
	Register(ctx context.Context, userID uint64, tokenString string, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest, ip string) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenPair, error)
	Logout(ctx context.Context, tokenString string) error
	Me(ctx context.Context, userID uint64) (*model.UserEntity, error)
	VerifyRestorePassword(ctx context.Context, req *model.VerifyPhoneRequest) (*model.TokenPair, error)
	ResetPassword(ctx context.Context, userID uint64, req *model.ResetPasswordRequest) error
	// ValidateToken parses an access token, checks its live session, and
	// returns the user id and token scope.
	ValidateToken(ctx context.Context, tokenString string) (uint64, string, error)
}

type authAppImpl struct {
	config       *config.Config
	userRepo     userrepo.UserRepository
	redisRepo    redisrepo.Repository
	activityRepo activityrepo.ActivityLogRepository
	smsPublisher SMSPublisher
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository,
	activityRepo activityrepo.ActivityLogRepository, smsPublisher SMSPublisher) AuthApp {
	return &authAppImpl{
		config:       config,
		userRepo:     userRepo,
		redisRepo:    redisRepo,
		activityRepo: activityRepo,
		smsPublisher: smsPublisher,
	}
}

func (s *authAppImpl) CheckPhone(ctx context.Context, req *model.CheckPhoneRequest) (*model.CheckPhoneResponse, error) {
	if !validatorx.IsValidPhone(req.Phone) {
		return nil, errors.SetCustomError(constant.ErrInvalidPhone)
	}

	intent := req.Intent
	if intent == "" {
		intent = constant.OTPIntentRegister
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[CheckPhone] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	resp := &model.CheckPhoneResponse{Exists: user != nil}
	if user != nil {
		resp.RegistrationStage = user.RegistrationStage

		if user.Status == constant.UserStatusBanned {
			return nil, errors.SetCustomError(constant.ErrUserBanned)
		}
		// A completed account never gets a registration code again.
		if intent == constant.OTPIntentRegister && user.RegistrationStage == constant.StageCompleted {
			return resp, nil
		}
	}

	// Restore codes only make sense for completed accounts.
	if intent == constant.OTPIntentRestore && (user == nil || user.RegistrationStage != constant.StageCompleted) {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	cooldown, err := s.redisRepo.CooldownTTL(ctx, intent, req.Phone)
	if err != nil {
		logger.Error("[CheckPhone] err CooldownTTL", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cooldown > 0 {
		return nil, errors.SetCustomError(constant.ErrOTPCooldown)
	}

	length := constant.OTPLengthRegister
	if intent == constant.OTPIntentRestore {
		length = constant.OTPLengthRestore
	}

	code, err := s.issueOTP(ctx, intent, req.Phone, length)
	if err != nil {
		return nil, err
	}

	if s.config.SMS.MockMode {
		logger.Info("[CheckPhone] mock sms mode, code not dispatched", zap.String("phone", req.Phone))
	} else {
		msg := rabbitmq.SMSMessage{
			Phone:  req.Phone,
			Body:   fmt.Sprintf("Your confirmation code: %s", code),
			Intent: intent,
		}
		if err := s.smsPublisher.PublishSMS(msg); err != nil {
			logger.Error("[CheckPhone] err PublishSMS", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	resp.OTPSent = true
	resp.RetryAfterSec = ceilSeconds(s.config.Auth.OTPResendCooldown)
	return resp, nil
}

func (s *authAppImpl) VerifyPhone(ctx context.Context, req *model.VerifyPhoneRequest) (*model.VerifyPhoneResponse, error) {
	if !validatorx.IsValidPhone(req.Phone) {
		return nil, errors.SetCustomError(constant.ErrInvalidPhone)
	}
	if !validatorx.IsValidOTP(req.Code, constant.OTPLengthRegister) {
		return nil, errors.SetCustomError(constant.ErrInvalidOTP)
	}

	if err := s.consumeOTP(ctx, constant.OTPIntentRegister, req.Phone, req.Code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[VerifyPhone] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if user == nil {
		user, err = s.userRepo.Create(ctx, &model.UserEntity{
			Phone:             req.Phone,
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StagePhoneVerified,
		})
		if err != nil {
			logger.Error("[VerifyPhone] err userRepo.Create", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	} else if user.RegistrationStage == constant.StageCompleted {
		// Stale re-verification of a finished account: no registration
		// tokens for it.
		return nil, errors.SetCustomError(constant.ErrPhoneExists)
	}

	tokens, err := s.issueTokenPair(ctx, user.ID, constant.TokenScopeRegistration,
		s.config.Auth.RegistrationTTL, s.config.Auth.RegistrationTTL)
	if err != nil {
		return nil, err
	}

	return &model.VerifyPhoneResponse{
		Tokens:            *tokens,
		RegistrationStage: user.RegistrationStage,
	}, nil
}

func (s *authAppImpl) Register(ctx context.Context, userID uint64, tokenString string, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, errors.SetCustomError(constant.ErrPasswordMismatch)
	}
	if !validatorx.IsValidPassword(req.Password) {
		return nil, errors.SetCustomError(constant.ErrWeakPassword)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[Register] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if user.RegistrationStage == constant.StageCompleted {
		return nil, errors.SetCustomError(constant.ErrPhoneExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName,
		string(hashedPassword), constant.StageCompleted); err != nil {
		logger.Error("[Register] err userRepo.UpdateProfile", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.RegistrationStage = constant.StageCompleted

	// The registration-scoped pair is spent once the profile is complete.
	if claims, err := s.parseToken(tokenString); err == nil {
		if err := s.dropSessionPair(ctx, claims); err != nil {
			logger.Error("[Register] err dropSessionPair", zap.String("error", err.Error()))
		}
	}

	tokens, err := s.issueTokenPair(ctx, user.ID, constant.TokenScopeFull,
		s.config.Auth.AccessTTL, s.config.Auth.RefreshTTL)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, "user.register", "user", user.ID, "")

	return &model.RegisterResponse{User: user, Tokens: *tokens}, nil
}

func (s *authAppImpl) Login(ctx context.Context, req *model.LoginRequest, ip string) (*model.LoginResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	switch user.Status {
	case constant.UserStatusBanned:
		return nil, errors.SetCustomError(constant.ErrUserBanned)
	case constant.UserStatusInactive:
		return nil, errors.SetCustomError(constant.ErrUserInactive)
	}
	if user.RegistrationStage != constant.StageCompleted {
		return nil, errors.SetCustomError(constant.ErrRegistrationIncomplete)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	tokens, err := s.issueTokenPair(ctx, user.ID, constant.TokenScopeFull,
		s.config.Auth.AccessTTL, s.config.Auth.RefreshTTL)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, "user.login", "user", user.ID, ip)

	return &model.LoginResponse{User: user, Tokens: *tokens}, nil
}

func (s *authAppImpl) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenPair, error) {
	claims, err := s.parseToken(req.RefreshToken)
	if err != nil || claims.TokenType != tokenTypeRefresh {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	userID, err := s.sessionUserID(ctx, claims)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// Rotate: the old pair dies with its jtis.
	if err := s.dropSessionPair(ctx, claims); err != nil {
		logger.Error("[Refresh] err dropSessionPair", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return s.issueTokenPair(ctx, userID, claims.Scope,
		s.config.Auth.AccessTTL, s.config.Auth.RefreshTTL)
}

func (s *authAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}

	if err := s.dropSessionPair(ctx, claims); err != nil {
		logger.Error("[Logout] err dropSessionPair", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	userID, _ := strconv.ParseUint(claims.Subject, 10, 64)
	s.logActivity(ctx, userID, "user.logout", "user", userID, "")
	return nil
}

// dropSessionPair kills the presented token's session and its paired one.
func (s *authAppImpl) dropSessionPair(ctx context.Context, claims *authClaims) error {
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		return err
	}
	if claims.PairJTI != "" {
		return s.redisRepo.DeleteSession(ctx, claims.PairJTI)
	}
	return nil
}

func (s *authAppImpl) Me(ctx context.Context, userID uint64) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[Me] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

func (s *authAppImpl) VerifyRestorePassword(ctx context.Context, req *model.VerifyPhoneRequest) (*model.TokenPair, error) {
	if !validatorx.IsValidPhone(req.Phone) {
		return nil, errors.SetCustomError(constant.ErrInvalidPhone)
	}
	if !validatorx.IsValidOTP(req.Code, constant.OTPLengthRestore) {
		return nil, errors.SetCustomError(constant.ErrInvalidOTP)
	}

	if err := s.consumeOTP(ctx, constant.OTPIntentRestore, req.Phone, req.Code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[VerifyRestorePassword] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return s.issueTokenPair(ctx, user.ID, constant.TokenScopeReset,
		s.config.Auth.ResetTTL, s.config.Auth.ResetTTL)
}

func (s *authAppImpl) ResetPassword(ctx context.Context, userID uint64, req *model.ResetPasswordRequest) error {
	if req.Password != req.PasswordConfirm {
		return errors.SetCustomError(constant.ErrPasswordMismatch)
	}
	if !validatorx.IsValidPassword(req.Password) {
		return errors.SetCustomError(constant.ErrWeakPassword)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[ResetPassword] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		logger.Error("[ResetPassword] err userRepo.UpdatePassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.logActivity(ctx, userID, "user.reset_password", "user", userID, "")
	return nil
}

func (s *authAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, string, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil || claims.TokenType != tokenTypeAccess {
		return 0, "", fmt.Errorf("invalid token")
	}

	userID, err := s.sessionUserID(ctx, claims)
	if err != nil {
		return 0, "", err
	}
	return userID, claims.Scope, nil
}

// ---- internals ----

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type authClaims struct {
	jwt.RegisteredClaims
	Scope     string `json:"scope"`
	TokenType string `json:"token_type"`
	// PairJTI is the jti of the other token in the pair, so logout and
	// rotation can kill both sessions at once.
	PairJTI string `json:"pair_jti,omitempty"`
}

func (s *authAppImpl) issueTokenPair(ctx context.Context, userID uint64, scope string,
	accessTTL, refreshTTL time.Duration) (*model.TokenPair, error) {
	accessJTI := uuid.NewString()
	refreshJTI := uuid.NewString()

	access, err := s.signToken(userID, scope, tokenTypeAccess, accessJTI, refreshJTI, accessTTL)
	if err != nil {
		logger.Error("[issueTokenPair] err sign access", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	refresh, err := s.signToken(userID, scope, tokenTypeRefresh, refreshJTI, accessJTI, refreshTTL)
	if err != nil {
		logger.Error("[issueTokenPair] err sign refresh", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, accessJTI, userID, accessTTL); err != nil {
		logger.Error("[issueTokenPair] err SetSession access", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.redisRepo.SetSession(ctx, refreshJTI, userID, refreshTTL); err != nil {
		logger.Error("[issueTokenPair] err SetSession refresh", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authAppImpl) signToken(userID uint64, scope, tokenType, jti, pairJTI string, ttl time.Duration) (string, error) {
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        jti,
		},
		Scope:     scope,
		TokenType: tokenType,
		PairJTI:   pairJTI,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *authAppImpl) parseToken(tokenString string) (*authClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token missing jti")
	}
	return claims, nil
}

func (s *authAppImpl) sessionUserID(ctx context.Context, claims *authClaims) (uint64, error) {
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}
	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}
	return userID, nil
}

func (s *authAppImpl) issueOTP(ctx context.Context, intent, phone string, length int) (string, error) {
	code := MockOTPCode[:length]
	if !s.config.SMS.MockMode {
		generated, err := generateOTP(length)
		if err != nil {
			logger.Error("[issueOTP] err generateOTP", zap.String("error", err.Error()))
			return "", errors.SetCustomError(constant.ErrInternal)
		}
		code = generated
	}

	if err := s.redisRepo.SetOTP(ctx, intent, phone, code, s.config.Auth.OTPTTL); err != nil {
		logger.Error("[issueOTP] err SetOTP", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.redisRepo.SetCooldown(ctx, intent, phone, s.config.Auth.OTPResendCooldown); err != nil {
		logger.Error("[issueOTP] err SetCooldown", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}
	return code, nil
}

func (s *authAppImpl) consumeOTP(ctx context.Context, intent, phone, code string) error {
	stored, err := s.redisRepo.GetOTP(ctx, intent, phone)
	if err != nil {
		logger.Error("[consumeOTP] err GetOTP", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if stored == "" {
		return errors.SetCustomError(constant.ErrOTPExpired)
	}
	if stored != code {
		return errors.SetCustomError(constant.ErrInvalidOTP)
	}

	// Single use.
	if err := s.redisRepo.DeleteOTP(ctx, intent, phone); err != nil {
		logger.Error("[consumeOTP] err DeleteOTP", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *authAppImpl) logActivity(ctx context.Context, userID uint64, action, entity string, entityID uint64, ip string) {
	if s.activityRepo == nil {
		return
	}
	entry := &model.ActivityLog{UserID: userID, Action: action, Entity: entity, EntityID: entityID, IP: ip}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		logger.Error("[logActivity] err activityRepo.Insert", zap.String("error", err.Error()))
	}
}

func generateOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}

func ceilSeconds(d time.Duration) int64 {
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	return sec
}
