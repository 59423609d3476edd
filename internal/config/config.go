package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Cache     CacheConfig
	Fetch     FetchConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port             string `validate:"required,numeric"`
	Host             string
	Environment      string        `validate:"oneof=development production testing"`
	ReadTimeout      time.Duration `validate:"gt=0"`
	WriteTimeout     time.Duration `validate:"gt=0"`
	CORSAllowOrigins []string      `validate:"min=1"`
}

// UpstreamConfig describes the record-management API and the fixed identity
// headers attached to every outbound request.
type UpstreamConfig struct {
	BaseURL        string        `validate:"required,url"`
	APIKey         string        `validate:"required"`
	Timeout        time.Duration `validate:"gt=0"`
	Role           string
	Locale         string
	App            string
	Timezone       string
	Hostname       string
	Authentication string
	CircuitBreaker CircuitBreakerConfig
}

type CircuitBreakerConfig struct {
	Enabled      bool
	MaxFailures  int           `validate:"gte=1"`
	ResetTimeout time.Duration `validate:"gt=0"`
}

type CacheConfig struct {
	TTL             time.Duration `validate:"gt=0"`
	CleanupInterval time.Duration `validate:"gt=0"`
}

type FetchConfig struct {
	PageSize          int `validate:"gte=1,lte=5000"`
	MaxPages          int `validate:"gte=1"`
	AssetListPageSize int `validate:"gte=1,lte=5000"`
}

type RateLimitConfig struct {
	PerSecond int `validate:"gte=1"`
	Burst     int `validate:"gte=1"`
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3001"),
			Host:         getEnv("SERVER_HOST", ""),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
			APIKey:         getEnv("API_KEY", ""),
			Timeout:        getDurationEnv("UPSTREAM_TIMEOUT", 20*time.Second),
			Role:           getEnv("UPSTREAM_ROLE", "admin"),
			Locale:         getEnv("UPSTREAM_LOCALE", "en-US"),
			App:            getEnv("UPSTREAM_APP", "Assets"),
			Timezone:       getEnv("UPSTREAM_TIMEZONE", "+05:30"),
			Hostname:       getEnv("UPSTREAM_HOSTNAME", ""),
			Authentication: getEnv("UPSTREAM_AUTHENTICATION", "basic"),
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      getBoolEnv("CIRCUIT_BREAKER_ENABLED", true),
				MaxFailures:  getIntEnv("CIRCUIT_BREAKER_MAX_FAILURES", 5),
				ResetTimeout: getDurationEnv("CIRCUIT_BREAKER_RESET_TIMEOUT", 30*time.Second),
			},
		},
		Cache: CacheConfig{
			TTL:             getDurationEnv("CACHE_TTL", 5*time.Minute),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", time.Minute),
		},
		Fetch: FetchConfig{
			PageSize:          getIntEnv("FETCH_PAGE_SIZE", 100),
			MaxPages:          getIntEnv("FETCH_MAX_PAGES", 1000),
			AssetListPageSize: getIntEnv("ASSET_LIST_PAGE_SIZE", 100),
		},
		RateLimit: RateLimitConfig{
			PerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			Burst:     getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

// Validate checks the loaded configuration against its struct tags and
// returns every violation in a single error.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s: failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Address returns the host:port the HTTP server listens on.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// SlogLevel maps the configured level name onto slog.
func (c *LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*'")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}
