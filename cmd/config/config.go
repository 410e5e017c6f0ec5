package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	SMS         SMSConfig
	RabbitMQ    RabbitMQConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret           string
	AccessTTL           time.Duration
	RefreshTTL          time.Duration
	RegistrationTTL     time.Duration
	ResetTTL            time.Duration
	SessionExpTime      time.Duration
	OTPTTL              time.Duration
	OTPResendCooldown   time.Duration
	IPBlacklistCacheTTL time.Duration
}

type SMSConfig struct {
	// MockMode short-circuits SMS delivery and accepts the fixed code 123456.
	// Forced off when Environment is production.
	MockMode   bool
	GatewayURL string
	GatewayKey string
	Sender     string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Load reads configuration from environment variables. A .env file is loaded
// first when present so local runs need no exported shell state.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "cargomarket"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("JWT_SECRET", ""),
			AccessTTL:           getDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:          getDuration("JWT_REFRESH_TTL", 720*time.Hour),
			RegistrationTTL:     getDuration("JWT_REGISTRATION_TTL", time.Hour),
			ResetTTL:            getDuration("JWT_RESET_TTL", 15*time.Minute),
			SessionExpTime:      getDuration("SESSION_EXP_TIME", 720*time.Hour),
			OTPTTL:              getDuration("OTP_TTL", 5*time.Minute),
			OTPResendCooldown:   getDuration("OTP_RESEND_COOLDOWN", time.Minute),
			IPBlacklistCacheTTL: getDuration("IP_BLACKLIST_CACHE_TTL", time.Minute),
		},
		SMS: SMSConfig{
			MockMode:   getBool("SMS_MOCK_MODE", true),
			GatewayURL: getEnv("SMS_GATEWAY_URL", ""),
			GatewayKey: getEnv("SMS_GATEWAY_KEY", ""),
			Sender:     getEnv("SMS_SENDER", "CargoMarket"),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
	}

	// The mock SMS path must never run against real users.
	if cfg.Environment == "production" {
		cfg.SMS.MockMode = false
	}

	return cfg
}

// GetDSN builds the MySQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
