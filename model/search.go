package model

import (
	"time"

	"github.com/cargomarket/backend/constant"
)

// SearchFilters are the multi-valued marketplace filters. Empty slices and
// zero values are no-ops; active dimensions combine with AND, values inside a
// dimension with OR.
type SearchFilters struct {
	LoadingCountries   []string   `json:"loading_countries"`
	LoadingRegions     []string   `json:"loading_regions"`
	LoadingCities      []string   `json:"loading_cities"`
	UnloadingCountries []string   `json:"unloading_countries"`
	UnloadingRegions   []string   `json:"unloading_regions"`
	UnloadingCities    []string   `json:"unloading_cities"`
	WeightMin          float64    `json:"weight_min"`
	WeightMax          float64    `json:"weight_max"`
	VolumeMin          float64    `json:"volume_min"`
	VolumeMax          float64    `json:"volume_max"`
	VehicleType        string     `json:"vehicle_type"`
	CargoSubtypes      []string   `json:"cargo_subtypes"`
	LoadingDateFrom    *time.Time `json:"loading_date_from"`
	LoadingDateTo      *time.Time `json:"loading_date_to"`
}

// SearchRequest is the marketplace search body. Tab picks the listing type the
// user is browsing; listings of the other type still appear, ranked lower.
type SearchRequest struct {
	Tab     constant.ListingType `json:"tab" validate:"required,oneof=CARGO TRANSPORT"`
	Filters SearchFilters        `json:"filters"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}

// SearchResult is the normalized, UI-friendly shape of one ranked listing.
type SearchResult struct {
	Listing          *ListingEntity `json:"listing"`
	Score            int            `json:"score"`
	LoadingCountry   string         `json:"loading_country"`
	LoadingRegion    string         `json:"loading_region"`
	LoadingCity      string         `json:"loading_city"`
	UnloadingCountry string         `json:"unloading_country"`
	UnloadingRegion  string         `json:"unloading_region"`
	UnloadingCity    string         `json:"unloading_city"`
	CargoTypeLabel   string         `json:"cargo_type_label"`
}

type SearchResponse struct {
	Items      []*SearchResult `json:"items"`
	TotalCount int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

// GeoDirectory is the static country/region/city table backing filter
// suggestions. Kept separate from the admin geo_location reference data.
type GeoDirectory struct {
	Countries []GeoDirectoryCountry `json:"countries"`
}

type GeoDirectoryCountry struct {
	Name    string               `json:"name"`
	Regions []GeoDirectoryRegion `json:"regions"`
}

type GeoDirectoryRegion struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}
