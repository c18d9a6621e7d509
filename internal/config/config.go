package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/playmatatu/fairway/internal/game"
)

type Config struct {
	// Environment
	Environment string
	LogLevel    string

	// Server
	Port        string
	FrontendURL string

	// Database (empty disables shot telemetry)
	DatabaseURL    string
	MigrateOnStart bool

	// Redis (empty disables event publishing)
	RedisURL string

	// Security
	JWTSecret          string
	SessionTokenTTLMin int

	// Sessions
	SessionIdleMinutes    int
	IdleWorkerPollSeconds int
	TickRateHz            int
	WeatherSeed           int64
	CatalogPath           string

	// Gameplay
	SpinEnabled     bool
	AimAlongFairway bool

	// Physics overrides (zero keeps the default)
	Gravity       float64
	VelocityScale float64
	DistanceScale float64
	WinRadius     float64
	RestSpeed     float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTokenTTLMin: getEnvInt("SESSION_TOKEN_TTL_MINUTES", 240),

		SessionIdleMinutes:    getEnvInt("SESSION_IDLE_MINUTES", 30),
		IdleWorkerPollSeconds: getEnvInt("IDLE_WORKER_POLL_SECONDS", 60),
		TickRateHz:            getEnvInt("TICK_RATE_HZ", 30),
		WeatherSeed:           int64(getEnvInt("WEATHER_SEED", 0)),
		CatalogPath:           getEnv("CATALOG_PATH", ""),

		SpinEnabled:     getEnvBool("SPIN_ENABLED", false),
		AimAlongFairway: getEnvBool("AIM_ALONG_FAIRWAY", false),

		Gravity:       getEnvFloat("PHYSICS_GRAVITY", 0),
		VelocityScale: getEnvFloat("PHYSICS_VELOCITY_SCALE", 0),
		DistanceScale: getEnvFloat("PHYSICS_DISTANCE_SCALE", 0),
		WinRadius:     getEnvFloat("PHYSICS_WIN_RADIUS", 0),
		RestSpeed:     getEnvFloat("PHYSICS_REST_SPEED", 0),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Physics returns the default constants with any configured overrides applied.
func (c *Config) Physics() game.PhysicsConfig {
	p := game.DefaultPhysics()
	if c.Gravity != 0 {
		p.Gravity = c.Gravity
	}
	if c.VelocityScale > 0 {
		p.VelocityScale = c.VelocityScale
	}
	if c.DistanceScale > 0 {
		p.DistanceScale = c.DistanceScale
	}
	if c.WinRadius > 0 {
		p.WinRadius = c.WinRadius
	}
	if c.RestSpeed > 0 {
		p.RestSpeed = c.RestSpeed
	}
	return p
}

func (c *Config) TickInterval() time.Duration {
	if c.TickRateHz <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRateHz)
}

func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func (c *Config) IdlePoll() time.Duration {
	return time.Duration(c.IdleWorkerPollSeconds) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.SessionTokenTTLMin) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
