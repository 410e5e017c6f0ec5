package model

import "time"

// IPBlacklistItem blocks all requests from an address.
type IPBlacklistItem struct {
	ID        uint64     `db:"id" json:"id"`
	IP        string     `db:"ip" json:"ip"`
	Reason    string     `db:"reason" json:"reason,omitempty"`
	CreatedBy uint64     `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type IPBlacklistRequest struct {
	IP     string `json:"ip" validate:"required,ip"`
	Reason string `json:"reason"`
}

// ActivityLog is an append-only audit record.
type ActivityLog struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	Entity    string    `db:"entity" json:"entity,omitempty"`
	EntityID  uint64    `db:"entity_id" json:"entity_id,omitempty"`
	IP        string    `db:"ip" json:"ip,omitempty"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ActivityLogFilter struct {
	Page   int
	Limit  int
	UserID uint64
	Action string
}

// Pagination is the shared {page, limit} query pair for the admin tabs.
type Pagination struct {
	Page  int
	Limit int
}

// PageResponse is the uniform admin list payload.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}
