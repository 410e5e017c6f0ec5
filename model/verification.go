package model

import (
	"time"

	"github.com/cargomarket/backend/constant"
)

// VerificationEntity tracks the identity verification of one user.
type VerificationEntity struct {
	ID           uint64                     `db:"id" json:"id"`
	UserID       uint64                     `db:"user_id" json:"user_id"`
	State        constant.VerificationState `db:"state" json:"state"`
	DocumentType string                     `db:"document_type" json:"document_type,omitempty"`
	DocumentID   string                     `db:"document_id" json:"document_id,omitempty"`
	CompanyName  string                     `db:"company_name" json:"company_name,omitempty"`
	Notes        string                     `db:"notes" json:"notes,omitempty"`
	DecidedAt    *time.Time                 `db:"decided_at" json:"decided_at,omitempty"`
	NotifiedAt   *time.Time                 `db:"notified_at" json:"-"`
	CreatedAt    time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time                 `db:"updated_at" json:"updated_at,omitempty"`
}

type VerificationSubmitRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	DocumentID   string `json:"document_id" validate:"required"`
	CompanyName  string `json:"company_name"`
}

// VerificationStatusResponse is polled by the profile page. HasNewDecision is
// true until the decision is acknowledged via the notification/shown call.
type VerificationStatusResponse struct {
	State          constant.VerificationState `json:"state"`
	Notes          string                     `json:"notes,omitempty"`
	HasNewDecision bool                       `json:"has_new_decision"`
}

type VerificationRejectRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type VerificationListFilter struct {
	Page  int
	Limit int
	State constant.VerificationState
}
