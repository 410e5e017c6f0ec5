package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	adminapp "github.com/cargomarket/backend/application/admin"
	authapp "github.com/cargomarket/backend/application/auth"
	listingapp "github.com/cargomarket/backend/application/listing"
	searchapp "github.com/cargomarket/backend/application/search"
	verificationapp "github.com/cargomarket/backend/application/verification"
	"github.com/cargomarket/backend/cmd/config"
	redisclient "github.com/cargomarket/backend/cmd/redis"
	_ "github.com/cargomarket/backend/docs"
	activityRepo "github.com/cargomarket/backend/repository/activitylog"
	geoRepo "github.com/cargomarket/backend/repository/geo"
	ipRepo "github.com/cargomarket/backend/repository/ipblacklist"
	listingRepo "github.com/cargomarket/backend/repository/listing"
	redisRepo "github.com/cargomarket/backend/repository/redis"
	txRepo "github.com/cargomarket/backend/repository/tx"
	userRepo "github.com/cargomarket/backend/repository/user"
	verificationRepo "github.com/cargomarket/backend/repository/verification"
	"github.com/cargomarket/backend/thirdparty/rabbitmq"
	"github.com/cargomarket/backend/transport"
	"github.com/cargomarket/backend/utils/logger"
	validatorx "github.com/cargomarket/backend/utils/validator"
)

// @title CargoMarket API
// @version 1.0
// @description Freight marketplace API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	validatorx.Init()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// SMS dispatch goes through RabbitMQ; the worker binary consumes it. In
	// mock mode nothing is published, so a missing broker is not fatal there.
	var smsPublisher authapp.SMSPublisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		if !cfg.SMS.MockMode {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		logger.Info("rabbitmq unavailable, mock SMS mode active", zap.Error(err))
	} else {
		defer publisher.Close()
		smsPublisher = publisher
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ListingRepo := listingRepo.NewListingRepository(db)
	GeoRepo := geoRepo.NewGeoRepository(db)
	IPRepo := ipRepo.NewIPBlacklistRepository(db)
	ActivityRepo := activityRepo.NewActivityLogRepository(db)
	VerificationRepo := verificationRepo.NewVerificationRepository(db)
	RedisRepo := redisRepo.NewRepository(redisclient.Get())

	// Initialize application layers
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, RedisRepo, ActivityRepo, smsPublisher)
	ListingApp := listingapp.NewListingApp(TxRepo, ListingRepo, ActivityRepo)
	SearchApp := searchapp.NewSearchApp(ListingRepo)
	AdminApp := adminapp.NewAdminApp(cfg, UserRepo, ListingRepo, IPRepo, GeoRepo, ActivityRepo, RedisRepo)
	VerificationApp := verificationapp.NewVerificationApp(VerificationRepo, ActivityRepo)

	httpTransport := transport.NewTransport(AuthApp, ListingApp, SearchApp, AdminApp, VerificationApp,
		RedisRepo, IPRepo, cfg.Auth.IPBlacklistCacheTTL)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
