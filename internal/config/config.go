package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string `env:"PORT" envDefault:"8080"`

	// Database
	DatabaseType   string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DatabasePath   string `env:"DB_PATH" envDefault:"./shikshanam.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"./migrations"`

	// Profile storage backend: sql, redis or memory
	StoreBackend  string `env:"STORE_BACKEND" envDefault:"sql"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Fragments
	StaticFilesPath string        `env:"STATIC_PATH" envDefault:"./web"`
	FragmentSource  string        `env:"FRAGMENT_SOURCE" envDefault:"fs"`
	FragmentBaseURL string        `env:"FRAGMENT_BASE_URL" envDefault:"http://localhost:8080"`
	FragmentTimeout time.Duration `env:"FRAGMENT_TIMEOUT" envDefault:"10s"`

	// Visitors and sessions
	SessionSecret    string        `env:"SESSION_SECRET" envDefault:"change-me-in-production"`
	VisitorCookieTTL time.Duration `env:"VISITOR_COOKIE_TTL" envDefault:"8760h"`
	QuizSessionTTL   time.Duration `env:"QUIZ_SESSION_TTL" envDefault:"2h"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"30"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
