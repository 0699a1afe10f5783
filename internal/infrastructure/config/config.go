package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/iho/goloan/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Redis (leave empty to disable idempotency)
	RedisURL            string        `env:"REDIS_URL"             envDefault:""`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Rate limiting
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS"     envDefault:"10"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST"   envDefault:"20"`
	RateLimitCleanup string        `env:"RATE_LIMIT_CLEANUP" envDefault:"@every 10m"`
	RateLimitIdle    time.Duration `env:"RATE_LIMIT_IDLE"    envDefault:"15m"`

	// Loan request bounds
	LoanMinValue float64 `env:"LOAN_MIN_VALUE" envDefault:"100000"`
	LoanMaxValue float64 `env:"LOAN_MAX_VALUE" envDefault:"100000000"`
	LoanMinRate  float64 `env:"LOAN_MIN_RATE"  envDefault:"0"`
	LoanMaxRate  float64 `env:"LOAN_MAX_RATE"  envDefault:"100"`
	LoanMinTerm  int     `env:"LOAN_MIN_TERM"  envDefault:"5"`
	LoanMaxTerm  int     `env:"LOAN_MAX_TERM"  envDefault:"35"`
}

// Load loads configuration from a .env file, if present, and the environment.
// Variables already set in the environment take precedence over the file.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv paths. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequestLimits returns the loan request bounds.
func (c *Config) RequestLimits() domain.RequestLimits {
	return domain.RequestLimits{
		MinHomeValue:   c.LoanMinValue,
		MaxHomeValue:   c.LoanMaxValue,
		MinRatePercent: c.LoanMinRate,
		MaxRatePercent: c.LoanMaxRate,
		MinTermYears:   c.LoanMinTerm,
		MaxTermYears:   c.LoanMaxTerm,
	}
}
