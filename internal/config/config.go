package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RedisSettings configures the optional redis-backed session repository.
type RedisSettings struct {
	Address  string
	Password string
	DB       int
}

// SessionConfig holds the session lifecycle knobs. The defaults match the
// documented contract: 60 minute idle timeout, 5 minute monitor poll.
type SessionConfig struct {
	IdleTimeout  time.Duration
	PollInterval time.Duration
	CookieName   string
	CookieSecret string
}

// Config is the full gateway configuration.
type Config struct {
	// Server port
	Port string
	// Base URL of the inventory REST backend, e.g. http://localhost:8081
	BackendBaseURL string
	// Per-request timeout on calls to the backend
	RequestTimeout time.Duration
	// Session store driver: "memory" or "redis"
	SessionStore string
	// Role marker granting admin screens and actions
	AdminRole string
	// Browser origin allowed to make credentialed requests
	AllowedOrigin string

	Session       SessionConfig
	RedisSettings RedisSettings

	LogLevel string
	AppEnv   string
}

const (
	defaultIdleTimeoutMs  = 3600000
	defaultPollIntervalMs = 300000
	defaultRequestMs      = 15000
)

// LoadConfig reads .env / environment variables into a Config, applying
// documented defaults for anything unset.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8081")
	viper.SetDefault("SESSION_IDLE_TIMEOUT_MS", defaultIdleTimeoutMs)
	viper.SetDefault("MONITOR_POLL_INTERVAL_MS", defaultPollIntervalMs)
	viper.SetDefault("REQUEST_TIMEOUT_MS", defaultRequestMs)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_COOKIE_NAME", "trackventory_session")
	viper.SetDefault("ADMIN_ROLE", "ROLE_ADMIN")
	viper.SetDefault("ALLOWED_ORIGIN", "http://localhost:5173")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "production")

	cookieSecret := viper.GetString("COOKIE_SECRET")
	if cookieSecret == "" {
		cookieSecret = "a_very_secret_key_change_me"
		log.Println("Warning: Using default cookie secret. Set COOKIE_SECRET in the environment or config file.")
	}

	sessionStore := strings.ToLower(viper.GetString("SESSION_STORE"))
	if sessionStore != "memory" && sessionStore != "redis" {
		log.Printf("Invalid session store '%s', defaulting to 'memory'", sessionStore)
		sessionStore = "memory"
	}

	idleTimeout := viper.GetInt("SESSION_IDLE_TIMEOUT_MS")
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeoutMs
	}
	pollInterval := viper.GetInt("MONITOR_POLL_INTERVAL_MS")
	if pollInterval <= 0 {
		pollInterval = defaultPollIntervalMs
	}
	requestTimeout := viper.GetInt("REQUEST_TIMEOUT_MS")
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestMs
	}

	return &Config{
		Port:           viper.GetString("APP_PORT"),
		BackendBaseURL: strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/"),
		RequestTimeout: time.Duration(requestTimeout) * time.Millisecond,
		SessionStore:   sessionStore,
		AdminRole:      viper.GetString("ADMIN_ROLE"),
		AllowedOrigin:  viper.GetString("ALLOWED_ORIGIN"),
		Session: SessionConfig{
			IdleTimeout:  time.Duration(idleTimeout) * time.Millisecond,
			PollInterval: time.Duration(pollInterval) * time.Millisecond,
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			CookieSecret: cookieSecret,
		},
		RedisSettings: RedisSettings{
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
		AppEnv:   viper.GetString("APP_ENV"),
	}, nil
}
