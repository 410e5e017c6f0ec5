package model

import (
	"time"

	"github.com/cargomarket/backend/constant"
)

// UserEntity represents the user table entity
type UserEntity struct {
	ID                uint64                     `db:"id" json:"id"`
	Phone             string                     `db:"phone" json:"phone"`
	Email             string                     `db:"email" json:"email,omitempty"`
	FirstName         string                     `db:"first_name" json:"first_name"`
	LastName          string                     `db:"last_name" json:"last_name"`
	PasswordHash      string                     `db:"password_hash" json:"-"`
	IsAdmin           bool                       `db:"is_admin" json:"is_admin"`
	Status            constant.UserStatus        `db:"status" json:"status"`
	RegistrationStage constant.RegistrationStage `db:"registration_stage" json:"registration_stage"`
	CreatedAt         time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time                 `db:"updated_at" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Phone string
	Email string
}

// UserListFilter for the paginated admin listing
type UserListFilter struct {
	Page   int
	Limit  int
	Status constant.UserStatus
	Search string // matches phone or name
}

// CheckPhoneRequest starts registration or password restore
type CheckPhoneRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Intent string `json:"intent" validate:"omitempty,oneof=register restore"`
}

type CheckPhoneResponse struct {
	Exists            bool                       `json:"exists"`
	RegistrationStage constant.RegistrationStage `json:"registration_stage,omitempty"`
	OTPSent           bool                       `json:"otp_sent"`
	RetryAfterSec     int64                      `json:"retry_after_sec,omitempty"`
}

// VerifyPhoneRequest confirms an SMS code
type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type VerifyPhoneResponse struct {
	Tokens            TokenPair                  `json:"tokens"`
	RegistrationStage constant.RegistrationStage `json:"registration_stage"`
}

// RegisterRequest completes the profile after phone verification
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type RegisterResponse struct {
	User   *UserEntity `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User   *UserEntity `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// AdminUserUpdateRequest edits a user from the admin panel
type AdminUserUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	IsAdmin   *bool  `json:"is_admin"`
}
