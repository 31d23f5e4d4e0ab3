// Package config provides configuration management for the carbsmart service.
//
// Values come from the environment (optionally seeded from a .env file) with
// defaults for every key. The CLI binds its flags onto the same keys, so a
// flag always wins over the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Pan store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

// Plan cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// DefaultSQLiteURL is used when DATABASE_URL is empty and the driver is sqlite.
const DefaultSQLiteURL = "file:carbsmart.db"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Planner  PlannerConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	Mode           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	WebUI          bool
}

// CacheConfig holds plan cache configuration.
type CacheConfig struct {
	Backend  string
	Size     int
	TTL      time.Duration
	RedisURL string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	// APIKeys maps each accepted key to its label.
	APIKeys      map[string]string
	JWTSecretKey string
	TokenTTL     time.Duration
}

// DatabaseConfig holds pan store and log store configuration.
type DatabaseConfig struct {
	Driver     string
	URL        string
	MaxWriters int
	// SeedFile is a YAML list of pans created when the store is empty.
	SeedFile string

	MongoURI        string
	MongoDatabase   string
	LogsTTL         time.Duration
	AuditLogEnabled bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// DSN returns the connection string for the SQL drivers.
func (d DatabaseConfig) DSN() string {
	if d.URL == "" && d.Driver == DriverSQLite {
		return DefaultSQLiteURL
	}
	return d.URL
}

// PlannerConfig holds serving optimizer configuration.
type PlannerConfig struct {
	// MaxServings caps the serving counts considered; 0 means unbounded.
	MaxServings     int
	DefaultMinGrams float64
	DefaultMaxGrams float64
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

var defaults = map[string]interface{}{
	"PORT":            "8080",
	"GIN_MODE":        "release",
	"RATE_LIMIT":      100,
	"RATE_WINDOW":     time.Minute,
	"REQUEST_TIMEOUT": 30 * time.Second,
	"CORS_ORIGINS":    "",
	"SWAGGER_USER":    "",
	"SWAGGER_PASS":    "",
	"WEB_UI_ENABLED":  true,

	"CACHE_BACKEND": CacheMemory,
	"CACHE_SIZE":    1000,
	"CACHE_TTL":     5 * time.Minute,
	"REDIS_URL":     "redis://localhost:6379/0",

	"AUTH_ENABLED":   false,
	"API_KEYS":       "",
	"JWT_SECRET_KEY": "",
	"JWT_TOKEN_TTL":  24 * time.Hour,

	"DATABASE_DRIVER":      DriverSQLite,
	"DATABASE_URL":         "",
	"DATABASE_MAX_WRITERS": 10,
	"PANS_SEED_FILE":       "",
	"MONGODB_URI":          "mongodb://localhost:27017",
	"MONGODB_DATABASE":     "carbsmart",
	"MONGODB_LOGS_TTL":     30 * 24 * time.Hour,
	"AUDIT_LOG_ENABLED":    false,

	"CIRCUIT_BREAKER_FAILURE_THRESHOLD": 5,
	"CIRCUIT_BREAKER_SUCCESS_THRESHOLD": 2,
	"CIRCUIT_BREAKER_TIMEOUT":           30 * time.Second,

	"PLANNER_MAX_SERVINGS": 0,
	"PLANNER_DEFAULT_MIN":  200.0,
	"PLANNER_DEFAULT_MAX":  300.0,

	"LOG_LEVEL":  "info",
	"LOG_PRETTY": false,
}

// New returns a viper instance with every key defaulted and bound to the
// environment. A .env file in the working directory is loaded first; it
// never overrides variables that are already set.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// Load creates a Config from environment variables.
func Load() Config {
	return FromViper(New())
}

// FromViper builds a Config from v. Unparsable or out-of-range values fall
// back to their defaults.
func FromViper(v *viper.Viper) Config {
	return Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			Mode:           v.GetString("GIN_MODE"),
			RateLimit:      positiveInt(v, "RATE_LIMIT"),
			RateWindow:     positiveDuration(v, "RATE_WINDOW"),
			RequestTimeout: positiveDuration(v, "REQUEST_TIMEOUT"),
			CORSOrigins:    parseCORSOrigins(v.GetString("CORS_ORIGINS")),
			SwaggerUser:    v.GetString("SWAGGER_USER"),
			SwaggerPass:    v.GetString("SWAGGER_PASS"),
			WebUI:          v.GetBool("WEB_UI_ENABLED"),
		},
		Cache: CacheConfig{
			Backend:  strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND"))),
			Size:     positiveInt(v, "CACHE_SIZE"),
			TTL:      positiveDuration(v, "CACHE_TTL"),
			RedisURL: v.GetString("REDIS_URL"),
		},
		Auth: AuthConfig{
			Enabled:      v.GetBool("AUTH_ENABLED"),
			APIKeys:      parseAPIKeys(v.GetString("API_KEYS")),
			JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
			TokenTTL:     positiveDuration(v, "JWT_TOKEN_TTL"),
		},
		Database: DatabaseConfig{
			Driver:                         strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			URL:                            v.GetString("DATABASE_URL"),
			MaxWriters:                     positiveInt(v, "DATABASE_MAX_WRITERS"),
			SeedFile:                       v.GetString("PANS_SEED_FILE"),
			MongoURI:                       v.GetString("MONGODB_URI"),
			MongoDatabase:                  v.GetString("MONGODB_DATABASE"),
			LogsTTL:                        positiveDuration(v, "MONGODB_LOGS_TTL"),
			AuditLogEnabled:                v.GetBool("AUDIT_LOG_ENABLED"),
			CircuitBreakerFailureThreshold: positiveInt(v, "CIRCUIT_BREAKER_FAILURE_THRESHOLD"),
			CircuitBreakerSuccessThreshold: positiveInt(v, "CIRCUIT_BREAKER_SUCCESS_THRESHOLD"),
			CircuitBreakerTimeout:          positiveDuration(v, "CIRCUIT_BREAKER_TIMEOUT"),
		},
		Planner: PlannerConfig{
			MaxServings:     nonNegativeInt(v, "PLANNER_MAX_SERVINGS"),
			DefaultMinGrams: positiveFloat(v, "PLANNER_DEFAULT_MIN"),
			DefaultMaxGrams: positiveFloat(v, "PLANNER_DEFAULT_MAX"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}
}

// Validate reports settings that cannot be started with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMongoDB:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.Cache.Backend)
	}

	if c.Planner.DefaultMinGrams > c.Planner.DefaultMaxGrams {
		return fmt.Errorf("PLANNER_DEFAULT_MIN (%g) must not exceed PLANNER_DEFAULT_MAX (%g)",
			c.Planner.DefaultMinGrams, c.Planner.DefaultMaxGrams)
	}

	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 && c.Auth.JWTSecretKey == "" {
		return fmt.Errorf("AUTH_ENABLED requires API_KEYS or JWT_SECRET_KEY")
	}
	return nil
}

func positiveInt(v *viper.Viper, key string) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return defaults[key].(int)
}

func nonNegativeInt(v *viper.Viper, key string) int {
	if n := v.GetInt(key); n >= 0 {
		return n
	}
	return defaults[key].(int)
}

func positiveFloat(v *viper.Viper, key string) float64 {
	if f := v.GetFloat64(key); f > 0 {
		return f
	}
	return defaults[key].(float64)
}

func positiveDuration(v *viper.Viper, key string) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return defaults[key].(time.Duration)
}

// parseAPIKeys reads a comma separated list of "label:key" pairs. A bare
// key is labelled by its position ("key1", "key2", ...).
func parseAPIKeys(s string) map[string]string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	result := make(map[string]string)
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, key, found := strings.Cut(part, ":")
		if !found {
			label, key = fmt.Sprintf("key%d", i+1), part
		}
		label, key = strings.TrimSpace(label), strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if label == "" {
			label = fmt.Sprintf("key%d", i+1)
		}
		result[key] = label
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Local development origins
	local := []string{
		"http://localhost:8080",
		"http://127.0.0.1:8080",
	}
	if s == "" {
		return local
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(local))
	result = append(result, local...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
