package model

import (
	"time"

	"github.com/cargomarket/backend/constant"
)

// ListingPoint is one route point of a listing. Roles are explicit: the origin
// of a cargo listing is its PICKUP point, of a transport listing its DEPARTURE
// point. Consumers must never rely on slice order.
type ListingPoint struct {
	ID        uint64             `db:"id" json:"id"`
	ListingID uint64             `db:"listing_id" json:"-"`
	Role      constant.PointRole `db:"role" json:"role"`
	Country   string             `db:"country" json:"country"`
	Region    string             `db:"region" json:"region"`
	City      string             `db:"city" json:"city"`
	Address   string             `db:"address" json:"address,omitempty"`
}

// ListingEntity represents one cargo or transport listing.
type ListingEntity struct {
	ID            uint64                 `db:"id" json:"id"`
	UserID        uint64                 `db:"user_id" json:"user_id"`
	Type          constant.ListingType   `db:"type" json:"type"`
	Status        constant.ListingStatus `db:"status" json:"status"`
	AvailableFrom time.Time              `db:"available_from" json:"available_from"`
	AvailableTo   time.Time              `db:"available_to" json:"available_to"`
	WeightTons    float64                `db:"weight_tons" json:"weight_tons"`
	VolumeM3      float64                `db:"volume_m3" json:"volume_m3"`
	LengthM       float64                `db:"length_m" json:"length_m,omitempty"`
	WidthM        float64                `db:"width_m" json:"width_m,omitempty"`
	HeightM       float64                `db:"height_m" json:"height_m,omitempty"`
	VehicleType   string                 `db:"vehicle_type" json:"vehicle_type"`
	CargoType     constant.CargoTypeAPI  `db:"cargo_type" json:"cargo_type"`
	CargoSubtype  string                 `db:"cargo_subtype" json:"cargo_subtype,omitempty"`
	PriceAmount   float64                `db:"price_amount" json:"price_amount"`
	PriceCurrency string                 `db:"price_currency" json:"price_currency"`
	PaymentMethod constant.PaymentMethod `db:"payment_method" json:"payment_method"`
	PaymentTerm   constant.PaymentTerm   `db:"payment_term" json:"payment_term"`
	Bargain       bool                   `db:"bargain" json:"bargain"`
	Note          string                 `db:"note" json:"note,omitempty"`
	ExtraPhone    string                 `db:"extra_phone" json:"extra_phone,omitempty"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
	BumpedAt      time.Time              `db:"bumped_at" json:"bumped_at"`

	Points []ListingPoint `db:"-" json:"points"`
}

// Origin returns the PICKUP/DEPARTURE point, if present.
func (l *ListingEntity) Origin() *ListingPoint {
	return l.pointByRole(constant.PointRolePickup, constant.PointRoleDeparture)
}

// Destination returns the DROPOFF/ARRIVAL point, if present.
func (l *ListingEntity) Destination() *ListingPoint {
	return l.pointByRole(constant.PointRoleDropoff, constant.PointRoleArrival)
}

func (l *ListingEntity) pointByRole(roles ...constant.PointRole) *ListingPoint {
	for i := range l.Points {
		for _, role := range roles {
			if l.Points[i].Role == role {
				return &l.Points[i]
			}
		}
	}
	return nil
}

// ListingPointRequest is one route point in a create request.
type ListingPointRequest struct {
	Role    constant.PointRole `json:"role" validate:"required"`
	Country string             `json:"country" validate:"required"`
	Region  string             `json:"region"`
	City    string             `json:"city" validate:"required"`
	Address string             `json:"address"`
}

// CreateListingRequest creates a cargo or transport listing. The listing type
// comes from the route, not the body.
type CreateListingRequest struct {
	AvailableFrom time.Time              `json:"available_from" validate:"required"`
	AvailableTo   time.Time              `json:"available_to" validate:"required"`
	Points        []ListingPointRequest  `json:"points" validate:"required,min=2,max=2,dive"`
	WeightTons    float64                `json:"weight_tons" validate:"gte=0"`
	VolumeM3      float64                `json:"volume_m3" validate:"gte=0"`
	LengthM       float64                `json:"length_m" validate:"gte=0"`
	WidthM        float64                `json:"width_m" validate:"gte=0"`
	HeightM       float64                `json:"height_m" validate:"gte=0"`
	VehicleType   string                 `json:"vehicle_type"`
	CargoSubtype  string                 `json:"cargo_subtype"`
	PriceAmount   float64                `json:"price_amount" validate:"gte=0"`
	PriceCurrency string                 `json:"price_currency"`
	PaymentMethod constant.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=CASH CARD TRANSFER"`
	PaymentTerm   constant.PaymentTerm   `json:"payment_term" validate:"omitempty,oneof=PREPAID ON_LOAD ON_UNLOAD"`
	Bargain       bool                   `json:"bargain"`
	Note          string                 `json:"note"`
	ExtraPhone    string                 `json:"extra_phone"`
}

// ListingListFilter for paginated listing queries
type ListingListFilter struct {
	Type   constant.ListingType
	UserID uint64 // restrict to owner when nonzero
	Page   int
	Limit  int
}

type ListingListResponse struct {
	Items      []*ListingEntity `json:"items"`
	TotalCount int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
}

type CreateListingResponse struct {
	ID uint64 `json:"id"`
}
