package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCookieName is the cookie the login flow stores the session token in.
const DefaultCookieName = "jwt"

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Auth   AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token verification parameters.
type AuthConfig struct {
	// JWTSecret signs and verifies session tokens. It must never be logged.
	JWTSecret        string
	CookieName       string
	ClockSkewSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
// A missing JWT_SECRET is not an error: verification fails closed instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	skew, err := strconv.Atoi(getEnv("AUTH_CLOCK_SKEW_SECONDS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_CLOCK_SKEW_SECONDS: %w", err)
	}
	if skew < 0 {
		return nil, fmt.Errorf("invalid AUTH_CLOCK_SKEW_SECONDS: must not be negative")
	}

	cookieName := strings.TrimSpace(getEnv("AUTH_COOKIE_NAME", DefaultCookieName))
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "session-gate"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			CookieName:       cookieName,
			ClockSkewSeconds: skew,
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SecretConfigured reports whether a verification secret is present.
func (a AuthConfig) SecretConfigured() bool {
	return a.JWTSecret != ""
}

// ClockSkew returns the tolerated clock drift for expiry checks.
func (a AuthConfig) ClockSkew() time.Duration {
	return time.Duration(a.ClockSkewSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
