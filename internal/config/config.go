package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Fare     FareConfig
	Surge    SurgeConfig
	Match    MatchConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// FareConfig holds the pricing constants for a deployment/region.
// None of these are hardcoded in the calculator.
type FareConfig struct {
	BaseFare       float64
	PerKmRate      float64
	PerMinuteRate  float64
	MinimumFare    float64
	CommissionRate float64 // fraction, e.g. 0.15
}

// SurgeConfig holds the demand/supply surge policy.
type SurgeConfig struct {
	RadiusMeters  float64 // default area sampled around a pickup
	HighRatio     float64 // ratio above which surge is HighMult
	MedRatio      float64
	LowRatio      float64
	HighMult      float64
	MedMult       float64
	LowMult       float64
	NoSupplySurge float64 // multiplier when zero drivers are available
	MaxSurge      float64 // hard ceiling
	CacheTTL      time.Duration
}

// MatchConfig holds matching and lifecycle policy knobs.
type MatchConfig struct {
	SearchRadiusKm  float64
	AvgSpeedKmh     float64
	ClaimAttempts   int // candidates tried before giving up on a driver
	ConflictRetries int // version-conflict retries on ride writes
	PoolCapacity    int // default capacity for pooled rides, clamped to 1..6
	OTPDigits       int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ride_hailing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 25),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "ride-matching-engine"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Fare:  LoadFare(),
		Surge: LoadSurge(),
		Match: LoadMatch(),
	}
}

// LoadFare loads only the fare constants (useful in tests and tools).
func LoadFare() FareConfig {
	return FareConfig{
		BaseFare:       getFloatEnv("FARE_BASE", 30.0),
		PerKmRate:      getFloatEnv("FARE_PER_KM", 12.0),
		PerMinuteRate:  getFloatEnv("FARE_PER_MINUTE", 2.0),
		MinimumFare:    getFloatEnv("FARE_MINIMUM", 50.0),
		CommissionRate: getFloatEnv("FARE_COMMISSION_RATE", 0.15),
	}
}

// LoadSurge loads the surge policy.
func LoadSurge() SurgeConfig {
	return SurgeConfig{
		RadiusMeters:  getFloatEnv("SURGE_RADIUS_METERS", 5000),
		HighRatio:     getFloatEnv("SURGE_HIGH_RATIO", 2.0),
		MedRatio:      getFloatEnv("SURGE_MED_RATIO", 1.5),
		LowRatio:      getFloatEnv("SURGE_LOW_RATIO", 1.0),
		HighMult:      getFloatEnv("SURGE_HIGH_MULT", 1.5),
		MedMult:       getFloatEnv("SURGE_MED_MULT", 1.3),
		LowMult:       getFloatEnv("SURGE_LOW_MULT", 1.2),
		NoSupplySurge: getFloatEnv("SURGE_NO_SUPPLY", 2.0),
		MaxSurge:      getFloatEnv("SURGE_MAX", 3.0),
		CacheTTL:      getDurationEnv("SURGE_CACHE_TTL", 15*time.Second),
	}
}

// LoadMatch loads matching and lifecycle policy.
func LoadMatch() MatchConfig {
	return MatchConfig{
		SearchRadiusKm:  getFloatEnv("MATCH_RADIUS_KM", 5.0),
		AvgSpeedKmh:     getFloatEnv("MATCH_AVG_SPEED_KMH", 30.0),
		ClaimAttempts:   getIntEnv("MATCH_CLAIM_ATTEMPTS", 3),
		ConflictRetries: getIntEnv("RIDE_CONFLICT_RETRIES", 3),
		PoolCapacity:    getIntEnv("POOL_CAPACITY", 4),
		OTPDigits:       getIntEnv("OTP_DIGITS", 4),
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

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
