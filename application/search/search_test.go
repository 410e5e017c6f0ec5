package search_test

import (
	"context"
	"testing"
	"time"

	appsearch "github.com/cargomarket/backend/application/search"
	"github.com/cargomarket/backend/constant"
	listingmocks "github.com/cargomarket/backend/mocks/repository/listing"
	"github.com/cargomarket/backend/model"
	"github.com/stretchr/testify/mock"
)

func cargoListing(id, userID uint64, fromCountry, fromCity, toCountry, toCity string) *model.ListingEntity {
	return &model.ListingEntity{
		ID:            id,
		UserID:        userID,
		Type:          constant.ListingTypeCargo,
		Status:        constant.ListingStatusActive,
		WeightTons:    10,
		VolumeM3:      40,
		VehicleType:   "tent",
		AvailableFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AvailableTo:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Points: []model.ListingPoint{
			{Role: constant.PointRolePickup, Country: fromCountry, City: fromCity},
			{Role: constant.PointRoleDropoff, Country: toCountry, City: toCity},
		},
	}
}

func transportListing(id, userID uint64, fromCountry, fromCity string) *model.ListingEntity {
	return &model.ListingEntity{
		ID:            id,
		UserID:        userID,
		Type:          constant.ListingTypeTransport,
		Status:        constant.ListingStatusActive,
		WeightTons:    20,
		VolumeM3:      86,
		VehicleType:   "tent",
		AvailableFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AvailableTo:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Points: []model.ListingPoint{
			{Role: constant.PointRoleDeparture, Country: fromCountry, City: fromCity},
			{Role: constant.PointRoleArrival, Country: "Польша", City: "Варшава"},
		},
	}
}

func TestFilterListings(t *testing.T) {
	listings := []*model.ListingEntity{
		cargoListing(1, 10, "Украина", "Киев", "Польша", "Варшава"),
		cargoListing(2, 11, "Россия", "Москва", "Казахстан", "Алматы"),
		cargoListing(3, 99, "Украина", "Львов", "Польша", "Краков"),
		transportListing(4, 12, "Украина", "Киев"),
	}

	t.Run("own listings are excluded", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 99, &model.SearchFilters{})
		for _, r := range got {
			if r.Listing.UserID == 99 {
				t.Fatalf("listing %d belongs to the requester", r.Listing.ID)
			}
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
	})

	t.Run("loading country filter keeps only matches", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			LoadingCountries: []string{"Украина"},
		})
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for _, r := range got {
			if r.LoadingCountry != "Украина" {
				t.Fatalf("loading country = %s", r.LoadingCountry)
			}
		}
	})

	t.Run("multi-value dimension matches with OR", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			LoadingCountries: []string{"Россия", "Украина"},
		})
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
	})

	t.Run("dimensions combine with AND", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			LoadingCountries: []string{"Украина"},
			UnloadingCities:  []string{"Краков"},
		})
		if len(got) != 1 || got[0].Listing.ID != 3 {
			t.Fatalf("got %d results, want exactly listing 3", len(got))
		}
	})

	t.Run("geo match is case-insensitive substring", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			LoadingCities: []string{"киев"},
		})
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("weight range excludes out-of-range listings", func(t *testing.T) {
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			WeightMin: 15,
		})
		if len(got) != 1 || got[0].Listing.ID != 4 {
			t.Fatalf("got %d results, want only the 20t transport", len(got))
		}
	})

	t.Run("date window excludes non-overlapping listings", func(t *testing.T) {
		from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		got := appsearch.FilterListings(listings, 0, &model.SearchFilters{
			LoadingDateFrom: &from,
		})
		if len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})
}

func TestRank(t *testing.T) {
	listings := []*model.ListingEntity{
		transportListing(1, 10, "Украина", "Киев"),
		cargoListing(2, 11, "Украина", "Киев", "Польша", "Варшава"),
		cargoListing(3, 12, "Казахстан", "Алматы", "Польша", "Варшава"),
	}

	t.Run("tab match dominates", func(t *testing.T) {
		results := appsearch.FilterListings(listings, 0, &model.SearchFilters{})
		ranked := appsearch.Rank(results, constant.ListingTypeCargo, &model.SearchFilters{})
		if ranked[0].Listing.Type != constant.ListingTypeCargo {
			t.Fatalf("top result type = %s, want CARGO", ranked[0].Listing.Type)
		}
		if ranked[len(ranked)-1].Listing.ID != 1 {
			t.Fatalf("transport listing should rank last")
		}
	})

	t.Run("city match breaks ties within the tab", func(t *testing.T) {
		filters := &model.SearchFilters{LoadingCities: []string{"Киев"}, LoadingCountries: []string{"Украина", "Казахстан"}}
		results := appsearch.FilterListings(listings, 0, filters)
		ranked := appsearch.Rank(results, constant.ListingTypeCargo, filters)
		if ranked[0].Listing.ID != 2 {
			t.Fatalf("top result = %d, want 2 (cargo from Киев)", ranked[0].Listing.ID)
		}
		if ranked[0].Score <= ranked[1].Score {
			t.Fatalf("scores not descending: %d <= %d", ranked[0].Score, ranked[1].Score)
		}
	})

	t.Run("stable order on equal scores", func(t *testing.T) {
		results := appsearch.FilterListings(listings, 0, &model.SearchFilters{})
		ranked := appsearch.Rank(results, constant.ListingTypeCargo, &model.SearchFilters{})
		// listings 2 and 3 both score the tab bonus only; input order holds
		if ranked[0].Listing.ID != 2 || ranked[1].Listing.ID != 3 {
			t.Fatalf("tie order = [%d %d], want [2 3]", ranked[0].Listing.ID, ranked[1].Listing.ID)
		}
	})
}

func TestSearchApp_Search(t *testing.T) {
	listingRepo := listingmocks.NewListingRepository(t)
	app := appsearch.NewSearchApp(listingRepo)

	listings := []*model.ListingEntity{
		cargoListing(1, 10, "Украина", "Киев", "Польша", "Варшава"),
		cargoListing(2, 11, "Украина", "Одесса", "Польша", "Гданьск"),
		cargoListing(3, 12, "Украина", "Львов", "Польша", "Краков"),
	}
	listingRepo.
		On("ListActive", mock.Anything).
		Return(listings, nil).
		Twice()

	t.Run("paginates the filtered set", func(t *testing.T) {
		got, err := app.Search(context.Background(), 99, &model.SearchRequest{
			Tab:   constant.ListingTypeCargo,
			Page:  2,
			Limit: 2,
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if got.TotalCount != 3 {
			t.Fatalf("total = %d, want 3", got.TotalCount)
		}
		if len(got.Items) != 1 {
			t.Fatalf("page 2 len = %d, want 1", len(got.Items))
		}
	})

	t.Run("page beyond the end is empty", func(t *testing.T) {
		got, err := app.Search(context.Background(), 99, &model.SearchRequest{
			Tab:   constant.ListingTypeCargo,
			Page:  5,
			Limit: 10,
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got.Items) != 0 {
			t.Fatalf("len = %d, want 0", len(got.Items))
		}
	})
}

func TestSearchApp_Directory(t *testing.T) {
	app := appsearch.NewSearchApp(listingmocks.NewListingRepository(t))

	dir := app.Directory()
	if len(dir.Countries) == 0 {
		t.Fatal("directory should not be empty")
	}
	for _, c := range dir.Countries {
		if c.Name == "" {
			t.Fatal("country without a name")
		}
	}
}
