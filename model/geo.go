package model

import (
	"time"

	"github.com/cargomarket/backend/constant"
)

// GeoLocationEntity is a hierarchical reference row: COUNTRY -> REGION -> CITY.
type GeoLocationEntity struct {
	ID        uint64            `db:"id" json:"id"`
	ParentID  *uint64           `db:"parent_id" json:"parent_id,omitempty"`
	Level     constant.GeoLevel `db:"level" json:"level"`
	Name      string            `db:"name" json:"name"`
	Code      string            `db:"code" json:"code,omitempty"`
	ISO2      string            `db:"iso2" json:"iso2,omitempty"`
	Slug      string            `db:"slug" json:"slug"`
	IsActive  bool              `db:"is_active" json:"is_active"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time        `db:"updated_at" json:"updated_at,omitempty"`
}

type GeoLocationFilter struct {
	Page     int
	Limit    int
	Level    constant.GeoLevel
	ParentID uint64
	Search   string
}

type GeoLocationRequest struct {
	ParentID *uint64           `json:"parent_id"`
	Level    constant.GeoLevel `json:"level" validate:"required,oneof=COUNTRY REGION CITY"`
	Name     string            `json:"name" validate:"required"`
	Code     string            `json:"code"`
	ISO2     string            `json:"iso2" validate:"omitempty,len=2"`
	Slug     string            `json:"slug" validate:"required"`
	IsActive *bool             `json:"is_active"`
}

type GeoLocationListResponse struct {
	Items      []*GeoLocationEntity `json:"items"`
	TotalCount int64                `json:"total"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
}
