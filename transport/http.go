package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	adminapp "github.com/cargomarket/backend/application/admin"
	authapp "github.com/cargomarket/backend/application/auth"
	listingapp "github.com/cargomarket/backend/application/listing"
	searchapp "github.com/cargomarket/backend/application/search"
	verificationapp "github.com/cargomarket/backend/application/verification"
	iprepo "github.com/cargomarket/backend/repository/ipblacklist"
	redisrepo "github.com/cargomarket/backend/repository/redis"
)

type RestHandler struct {
	AuthApp         authapp.AuthApp
	ListingApp      listingapp.ListingApp
	SearchApp       searchapp.SearchApp
	AdminApp        adminapp.AdminApp
	VerificationApp verificationapp.VerificationApp
}

func NewTransport(authApp authapp.AuthApp, listingApp listingapp.ListingApp, searchApp searchapp.SearchApp,
	adminApp adminapp.AdminApp, verificationApp verificationapp.VerificationApp,
	redisRepo redisrepo.Repository, ipRepo iprepo.IPBlacklistRepository, blacklistTTL time.Duration) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		AuthApp:         authApp,
		ListingApp:      listingApp,
		SearchApp:       searchApp,
		AdminApp:        adminApp,
		VerificationApp: verificationApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	// auth
	mux.HandleFunc("/auth/check-phone", rh.CheckPhone).Methods(http.MethodPost)
	mux.HandleFunc("/auth/verify-phone", rh.VerifyPhone).Methods(http.MethodPost)
	mux.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/auth/refresh", rh.Refresh).Methods(http.MethodPost)
	mux.HandleFunc("/auth/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/auth/me", rh.Me).Methods(http.MethodGet)
	mux.HandleFunc("/auth/restore/verify", rh.VerifyRestorePassword).Methods(http.MethodPost)
	mux.HandleFunc("/auth/reset-password", rh.ResetPassword).Methods(http.MethodPost)

	// listings
	mux.HandleFunc("/cargo", rh.CreateCargo).Methods(http.MethodPost)
	mux.HandleFunc("/cargo", rh.ListCargo).Methods(http.MethodGet)
	mux.HandleFunc("/cargo/my", rh.MyCargo).Methods(http.MethodGet)
	mux.HandleFunc("/transport", rh.CreateTransport).Methods(http.MethodPost)
	mux.HandleFunc("/transport", rh.ListTransport).Methods(http.MethodGet)
	mux.HandleFunc("/transport/my", rh.MyTransport).Methods(http.MethodGet)
	mux.HandleFunc("/listings/{id}/bump", rh.BumpListing).Methods(http.MethodPost)
	mux.HandleFunc("/listings/{id}", rh.DeleteListing).Methods(http.MethodDelete)

	// search
	mux.HandleFunc("/search", rh.Search).Methods(http.MethodPost)
	mux.HandleFunc("/geo/directory", rh.GeoDirectory).Methods(http.MethodGet)

	// verification
	mux.HandleFunc("/verification", rh.SubmitVerification).Methods(http.MethodPost)
	mux.HandleFunc("/verification/status", rh.VerificationStatus).Methods(http.MethodGet)
	mux.HandleFunc("/verification/notification-shown", rh.VerificationNotificationShown).Methods(http.MethodPost)

	// admin: users
	mux.HandleFunc("/admin/users", rh.AdminListUsers).Methods(http.MethodGet)
	mux.HandleFunc("/admin/users/{id}", rh.AdminUpdateUser).Methods(http.MethodPut)
	mux.HandleFunc("/admin/users/{id}/ban", rh.AdminBanUser).Methods(http.MethodPost)
	mux.HandleFunc("/admin/users/{id}/activate", rh.AdminActivateUser).Methods(http.MethodPost)
	mux.HandleFunc("/admin/users/{id}", rh.AdminDeleteUser).Methods(http.MethodDelete)

	// admin: listings
	mux.HandleFunc("/admin/cargo", rh.AdminListCargo).Methods(http.MethodGet)
	mux.HandleFunc("/admin/transport", rh.AdminListTransport).Methods(http.MethodGet)
	mux.HandleFunc("/admin/listings/{id}", rh.AdminDeleteListing).Methods(http.MethodDelete)

	// admin: ip blacklist
	mux.HandleFunc("/admin/blacklist", rh.AdminListBlacklist).Methods(http.MethodGet)
	mux.HandleFunc("/admin/blacklist", rh.AdminAddBlacklist).Methods(http.MethodPost)
	mux.HandleFunc("/admin/blacklist/{id}", rh.AdminUpdateBlacklist).Methods(http.MethodPut)
	mux.HandleFunc("/admin/blacklist/{id}", rh.AdminDeleteBlacklist).Methods(http.MethodDelete)

	// admin: geo locations
	mux.HandleFunc("/admin/geo-locations", rh.AdminListGeoLocations).Methods(http.MethodGet)
	mux.HandleFunc("/admin/geo-locations", rh.AdminCreateGeoLocation).Methods(http.MethodPost)
	mux.HandleFunc("/admin/geo-locations/{id}", rh.AdminUpdateGeoLocation).Methods(http.MethodPut)
	mux.HandleFunc("/admin/geo-locations/{id}", rh.AdminDeleteGeoLocation).Methods(http.MethodDelete)

	// admin: activity logs
	mux.HandleFunc("/admin/activity-logs", rh.AdminListActivityLogs).Methods(http.MethodGet)

	// admin: verification review
	mux.HandleFunc("/admin/verifications", rh.AdminListVerifications).Methods(http.MethodGet)
	mux.HandleFunc("/admin/verifications/{id}/approve", rh.AdminApproveVerification).Methods(http.MethodPost)
	mux.HandleFunc("/admin/verifications/{id}/reject", rh.AdminRejectVerification).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(IPBlacklistMiddleware(redisRepo, ipRepo, blacklistTTL))
	mux.Use(AuthMiddleware(authApp))

	return mux
}

func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

// queryPage reads the shared ?page=&limit= pagination pair.
func queryPage(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
