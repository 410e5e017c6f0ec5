package search

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	applisting "github.com/cargomarket/backend/application/listing"
	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	listingrepo "github.com/cargomarket/backend/repository/listing"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
)

// Ranking weights, tuned to surface the most relevant listings first.
const (
	scoreTabMatch     = 10
	scoreCityMatch    = 5
	scoreCountryMatch = 3
	scoreVehicleMatch = 2
)

type SearchApp interface {
	Search(ctx context.Context, userID uint64, req *model.SearchRequest) (*model.SearchResponse, error)
	Directory() *model.GeoDirectory
}

type searchAppImpl struct {
	listingRepo listingrepo.ListingRepository
}

func NewSearchApp(listingRepo listingrepo.ListingRepository) SearchApp {
	return &searchAppImpl{listingRepo: listingRepo}
}

func (s *searchAppImpl) Search(ctx context.Context, userID uint64, req *model.SearchRequest) (*model.SearchResponse, error) {
	page, limit := req.Page, req.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	listings, err := s.listingRepo.ListActive(ctx)
	if err != nil {
		logger.Error("[Search] err listingRepo.ListActive", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	ranked := Rank(FilterListings(listings, userID, &req.Filters), req.Tab, &req.Filters)

	total := len(ranked)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &model.SearchResponse{
		Items:      ranked[start:end],
		TotalCount: total,
		Page:       page,
		PerPage:    limit,
	}, nil
}

// FilterListings drops the requester's own listings and applies the filter
// predicate: AND across dimensions, OR within a multi-value dimension, empty
// dimensions pass everything.
func FilterListings(listings []*model.ListingEntity, userID uint64, filters *model.SearchFilters) []*model.SearchResult {
	results := make([]*model.SearchResult, 0, len(listings))
	for _, l := range listings {
		if l.UserID == userID {
			continue
		}
		result := normalize(l)
		if matches(result, filters) {
			results = append(results, result)
		}
	}
	return results
}

// Rank scores the filtered set and sorts it descending. The sort is stable:
// ties keep the repository order (freshest bump first).
func Rank(results []*model.SearchResult, tab constant.ListingType, filters *model.SearchFilters) []*model.SearchResult {
	for _, r := range results {
		r.Score = score(r, tab, filters)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func normalize(l *model.ListingEntity) *model.SearchResult {
	result := &model.SearchResult{
		Listing:        l,
		CargoTypeLabel: applisting.DetailedCargoType(l.Note, l.CargoType),
	}
	if subtype := applisting.SubtypeLabel(l.CargoSubtype); subtype != "" {
		result.CargoTypeLabel = subtype
	}
	if origin := l.Origin(); origin != nil {
		result.LoadingCountry = origin.Country
		result.LoadingRegion = origin.Region
		result.LoadingCity = origin.City
	}
	if dest := l.Destination(); dest != nil {
		result.UnloadingCountry = dest.Country
		result.UnloadingRegion = dest.Region
		result.UnloadingCity = dest.City
	}
	return result
}

func matches(r *model.SearchResult, f *model.SearchFilters) bool {
	if f == nil {
		return true
	}

	l := r.Listing
	if !containsAny(r.LoadingCountry, f.LoadingCountries) ||
		!containsAny(r.LoadingRegion, f.LoadingRegions) ||
		!containsAny(r.LoadingCity, f.LoadingCities) ||
		!containsAny(r.UnloadingCountry, f.UnloadingCountries) ||
		!containsAny(r.UnloadingRegion, f.UnloadingRegions) ||
		!containsAny(r.UnloadingCity, f.UnloadingCities) {
		return false
	}

	if f.WeightMin > 0 && l.WeightTons < f.WeightMin {
		return false
	}
	if f.WeightMax > 0 && l.WeightTons > f.WeightMax {
		return false
	}
	if f.VolumeMin > 0 && l.VolumeM3 < f.VolumeMin {
		return false
	}
	if f.VolumeMax > 0 && l.VolumeM3 > f.VolumeMax {
		return false
	}

	if f.VehicleType != "" && !strings.EqualFold(l.VehicleType, f.VehicleType) {
		return false
	}

	if len(f.CargoSubtypes) > 0 {
		found := false
		for _, st := range f.CargoSubtypes {
			if strings.EqualFold(l.CargoSubtype, st) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.LoadingDateFrom != nil && l.AvailableTo.Before(*f.LoadingDateFrom) {
		return false
	}
	if f.LoadingDateTo != nil && l.AvailableFrom.After(*f.LoadingDateTo) {
		return false
	}

	return true
}

// containsAny is the "contains, case-insensitive" OR-match of one geo
// dimension. An empty filter list is a no-op.
func containsAny(value string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	lower := strings.ToLower(value)
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func score(r *model.SearchResult, tab constant.ListingType, f *model.SearchFilters) int {
	total := 0
	if r.Listing.Type == tab {
		total += scoreTabMatch
	}
	if f == nil {
		return total
	}
	if len(f.LoadingCities) > 0 && containsAny(r.LoadingCity, f.LoadingCities) {
		total += scoreCityMatch
	}
	if len(f.LoadingCountries) > 0 && containsAny(r.LoadingCountry, f.LoadingCountries) {
		total += scoreCountryMatch
	}
	if f.VehicleType != "" && strings.EqualFold(r.Listing.VehicleType, f.VehicleType) {
		total += scoreVehicleMatch
	}
	return total
}
