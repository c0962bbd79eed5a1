package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config aggregates all configuration settings for the application.
type Config struct {
	// Environment indicates the running environment (e.g., "development", "production").
	Environment string `mapstructure:"environment"`
	// LogLevel sets the global logging verbosity.
	LogLevel string `mapstructure:"log_level"`
	// Server holds configuration for the HTTP server.
	Server ServerConfig `mapstructure:"server"`
	// Database holds configuration for the database connection.
	Database DatabaseConfig `mapstructure:"database"`
	// Redis holds configuration for the Redis connection.
	Redis RedisConfig `mapstructure:"redis"`
	// Search holds configuration for the shopping search provider.
	Search SearchConfig `mapstructure:"search"`
	// Telegram holds configuration for Telegram alert delivery.
	Telegram TelegramConfig `mapstructure:"telegram"`
	// Payments holds configuration for the crypto payment provider.
	Payments PaymentsConfig `mapstructure:"payments"`
	// Quota holds configuration for the per-user search allowance.
	Quota QuotaConfig `mapstructure:"quota"`
	// Cache holds configuration for search result caching.
	Cache CacheConfig `mapstructure:"cache"`
	// Telemetry holds configuration for OpenTelemetry integration.
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	// Auth holds configuration for authentication.
	Auth AuthConfig `mapstructure:"auth"`
}

// ServerConfig defines the HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the server listens on.
	Port int `mapstructure:"port"`
	// AllowedOrigins is a list of CORS allowed origins.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig defines the PostgreSQL database connection settings.
type DatabaseConfig struct {
	// Host is the database server hostname or IP.
	Host string `mapstructure:"host"`
	// Port is the database server port.
	Port int `mapstructure:"port"`
	// User is the database username.
	User string `mapstructure:"user"`
	// Password is the database password.
	Password string `mapstructure:"password"`
	// DBName is the name of the database to connect to.
	DBName string `mapstructure:"dbname"`
	// SSLMode defines the SSL connection mode.
	SSLMode string `mapstructure:"sslmode"`
	// DatabaseURL is a connection string that can override individual fields.
	DatabaseURL string `mapstructure:"database_url"`
	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// ConnMaxLifetime is the maximum connection lifetime.
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	// ConnMaxIdleTime is the maximum idle connection lifetime.
	ConnMaxIdleTime string `mapstructure:"conn_max_idle_time"`
}

// RedisConfig defines the Redis connection settings.
type RedisConfig struct {
	// Host is the Redis server hostname.
	Host string `mapstructure:"host"`
	// Port is the Redis server port.
	Port int `mapstructure:"port"`
	// Password is the Redis authentication password.
	Password string `mapstructure:"password"`
	// DB is the Redis database index to use.
	DB int `mapstructure:"db"`
}

// SearchConfig defines settings for the upstream shopping search provider.
type SearchConfig struct {
	// BaseURL is the search provider endpoint.
	BaseURL string `mapstructure:"base_url"`
	// APIKey authenticates requests against the provider.
	APIKey string `mapstructure:"api_key"`
	// Engine is the provider engine identifier.
	Engine string `mapstructure:"engine"`
	// Location biases shopping results toward a market.
	Location string `mapstructure:"location"`
	// Timeout is the request timeout in seconds.
	Timeout int `mapstructure:"timeout"`
	// MaxResults caps how many listings a single search scores.
	MaxResults int `mapstructure:"max_results"`
}

// TelegramConfig defines settings for the Telegram alert bot.
type TelegramConfig struct {
	// BotToken is the authentication token for the Telegram bot.
	BotToken string `mapstructure:"bot_token"`
	// Enabled controls whether price alerts are delivered.
	Enabled bool `mapstructure:"enabled"`
	// CheckInterval is the string duration between alert sweeps.
	CheckInterval string `mapstructure:"check_interval"`
}

// PaymentsConfig defines settings for the crypto payment provider.
type PaymentsConfig struct {
	// BaseURL is the payment provider API endpoint.
	BaseURL string `mapstructure:"base_url"`
	// APIKey authenticates invoice creation requests.
	APIKey string `mapstructure:"api_key"`
	// IPNSecret verifies webhook signatures.
	IPNSecret string `mapstructure:"ipn_secret"`
	// ProPriceUSD is the monthly pro subscription price.
	ProPriceUSD float64 `mapstructure:"pro_price_usd"`
	// ProDurationDays is how long one payment keeps pro active.
	ProDurationDays int `mapstructure:"pro_duration_days"`
	// Timeout is the request timeout in seconds.
	Timeout int `mapstructure:"timeout"`
}

// QuotaConfig defines the free-tier search allowance.
type QuotaConfig struct {
	// FreeSearches is the daily search limit for free users.
	FreeSearches int `mapstructure:"free_searches"`
	// ResetInterval is the string duration after which usage resets.
	ResetInterval string `mapstructure:"reset_interval"`
}

// CacheConfig defines search result caching behavior.
type CacheConfig struct {
	// SearchTTL is the string duration cached search results stay valid.
	SearchTTL string `mapstructure:"search_ttl"`
	// HistoryMaxPoints caps stored price history per product.
	HistoryMaxPoints int `mapstructure:"history_max_points"`
}

// TelemetryConfig defines settings for OpenTelemetry.
type TelemetryConfig struct {
	// Enabled controls whether telemetry is active.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is the name of the service for tracing.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version"`
	// OTLPEndpoint is the OTLP/HTTP collector endpoint. Empty falls back
	// to the stdout exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// AuthConfig defines authentication settings.
type AuthConfig struct {
	// JWTSecret is the secret key used for signing JWT tokens.
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Load reads the configuration from the config file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Map conventional environment variables
	_ = viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = viper.BindEnv("database.database_url", "DATABASE_URL")
	_ = viper.BindEnv("search.api_key", "SEARCHAPI_KEY")
	_ = viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	_ = viper.BindEnv("payments.api_key", "NOWPAYMENTS_API_KEY")
	_ = viper.BindEnv("payments.ipn_secret", "NOWPAYMENTS_IPN_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults initializes the default configuration values in Viper.
func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "change-me-in-production")
	viper.SetDefault("database.dbname", "findly")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.database_url", "")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "300s")
	viper.SetDefault("database.conn_max_idle_time", "60s")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Search provider
	viper.SetDefault("search.base_url", "https://www.searchapi.io/api/v1/search")
	viper.SetDefault("search.api_key", "")
	viper.SetDefault("search.engine", "google_shopping")
	viper.SetDefault("search.location", "United Arab Emirates")
	viper.SetDefault("search.timeout", 15)
	viper.SetDefault("search.max_results", 20)

	// Telegram
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.enabled", false)
	viper.SetDefault("telegram.check_interval", "30m")

	// Payments
	viper.SetDefault("payments.base_url", "https://api.nowpayments.io/v1")
	viper.SetDefault("payments.api_key", "")
	viper.SetDefault("payments.ipn_secret", "")
	viper.SetDefault("payments.pro_price_usd", 9.99)
	viper.SetDefault("payments.pro_duration_days", 30)
	viper.SetDefault("payments.timeout", 30)

	// Quota
	viper.SetDefault("quota.free_searches", 3)
	viper.SetDefault("quota.reset_interval", "24h")

	// Cache
	viper.SetDefault("cache.search_ttl", "24h")
	viper.SetDefault("cache.history_max_points", 30)

	// Telemetry
	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.service_name", "findly-api")
	viper.SetDefault("telemetry.service_version", "1.0.0")
	viper.SetDefault("telemetry.otlp_endpoint", "")

	// Auth
	viper.SetDefault("auth.jwt_secret", "")
}

// validateConfig validates critical security and operational settings.
func validateConfig(config *Config) error {
	if config.Environment == "production" || config.Environment == "staging" {
		if config.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET cannot be empty in %s environment. Please set a secure JWT secret", config.Environment)
		}
		if len(config.Auth.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long in %s environment for security", config.Environment)
		}

		insecureSecrets := []string{
			"secret",
			"jwt-secret",
			"default-secret",
			"changeme",
			"password",
			"123456",
		}
		for _, insecure := range insecureSecrets {
			if config.Auth.JWTSecret == insecure {
				return fmt.Errorf("JWT_SECRET '%s' is insecure and not allowed in %s environment. Please use a secure, randomly generated secret", insecure, config.Environment)
			}
		}

		if config.Search.APIKey == "" {
			return fmt.Errorf("SEARCHAPI_KEY cannot be empty in %s environment", config.Environment)
		}
	}

	if config.Quota.FreeSearches < 0 {
		return fmt.Errorf("quota.free_searches cannot be negative")
	}

	return nil
}
