// Package config loads the housing-credit TOML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"housing-credit/service"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "HOUSING_CREDIT_CONFIG"

// Config holds all housing-credit configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Policy    PolicyConfig    `toml:"policy"`
	Search    SearchConfig    `toml:"search"`
	Solver    SolverConfig    `toml:"solver"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Cache     CacheConfig     `toml:"cache"`
	Storage   StorageConfig   `toml:"storage"`
}

type ServerConfig struct {
	Addr            string `toml:"addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	IdleTimeout     string `toml:"idle_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	RequestTimeout  string `toml:"request_timeout"`
	Metrics         bool   `toml:"metrics"`
}

type RateLimitConfig struct {
	Capacity int    `toml:"capacity"`
	Window   string `toml:"window"`
}

type PolicyConfig struct {
	DownPaymentRatio   float64 `toml:"down_payment_ratio"`
	PaymentToIncomeCap float64 `toml:"payment_to_income_cap"`
	DefaultAnnualRate  float64 `toml:"default_annual_rate"`
}

type SearchConfig struct {
	SavingsStart            int64 `toml:"savings_start"`
	SavingsEnd              int64 `toml:"savings_end"`
	SavingsStep             int64 `toml:"savings_step"`
	TermStart               int   `toml:"term_start"`
	TermEnd                 int   `toml:"term_end"`
	TermStep                int   `toml:"term_step"`
	SavingsAccrualCapMonths int   `toml:"savings_accrual_cap_months"`
}

type SolverConfig struct {
	Kind string `toml:"kind"` // "closed_form" o "simplex"
}

type ScheduleConfig struct {
	Rounding string `toml:"rounding"` // "emit" o "carry"
}

type CacheConfig struct {
	Backend   string `toml:"backend"` // "memory", "redis" o "none"
	RedisAddr string `toml:"redis_addr,omitempty"`
	Prefix    string `toml:"prefix"`
	TTL       string `toml:"ttl"`
}

type StorageConfig struct {
	Backend    string `toml:"backend"` // "memory" o "sqlite"
	SQLitePath string `toml:"sqlite_path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	grid := service.DefaultGrid()
	policy := service.DefaultPolicy()

	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			IdleTimeout:     "60s",
			ShutdownTimeout: "10s",
			RequestTimeout:  "30s",
			Metrics:         true,
		},
		RateLimit: RateLimitConfig{
			Capacity: 5,
			Window:   "1m",
		},
		Policy: PolicyConfig{
			DownPaymentRatio:   policy.DownPaymentRatio,
			PaymentToIncomeCap: policy.PaymentToIncomeCap,
			DefaultAnnualRate:  0.12,
		},
		Search: SearchConfig{
			SavingsStart:            grid.SavingsStart,
			SavingsEnd:              grid.SavingsEnd,
			SavingsStep:             grid.SavingsStep,
			TermStart:               grid.TermStart,
			TermEnd:                 grid.TermEnd,
			TermStep:                grid.TermStep,
			SavingsAccrualCapMonths: policy.SavingsAccrualCapMonths,
		},
		Solver:   SolverConfig{Kind: "closed_form"},
		Schedule: ScheduleConfig{Rounding: "emit"},
		Cache: CacheConfig{
			Backend: "memory",
			Prefix:  "housing-credit:",
			TTL:     "1h",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}
}

// Path returns the config file location, honoring HOUSING_CREDIT_CONFIG.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return "housing-credit.toml"
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Options builds the search options described by the config.
func (c Config) Options() (service.Options, error) {
	solver, err := service.NewSolver(c.Solver.Kind)
	if err != nil {
		return service.Options{}, err
	}
	rounding, err := service.ParseRounding(c.Schedule.Rounding)
	if err != nil {
		return service.Options{}, err
	}

	opts := service.Options{
		Policy: service.Policy{
			DownPaymentRatio:        c.Policy.DownPaymentRatio,
			PaymentToIncomeCap:      c.Policy.PaymentToIncomeCap,
			SavingsAccrualCapMonths: c.Search.SavingsAccrualCapMonths,
		},
		Grid: service.Grid{
			SavingsStart: c.Search.SavingsStart,
			SavingsEnd:   c.Search.SavingsEnd,
			SavingsStep:  c.Search.SavingsStep,
			TermStart:    c.Search.TermStart,
			TermEnd:      c.Search.TermEnd,
			TermStep:     c.Search.TermStep,
		},
		Solver:   solver,
		Rounding: rounding,
	}
	if err := opts.Grid.Validate(); err != nil {
		return service.Options{}, err
	}
	return opts, nil
}

// ParseDuration parses s, falling back to def when s is empty.
func ParseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
