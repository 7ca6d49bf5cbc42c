package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidSessionStore         = errors.New("invalid session store")
	ErrInvalidQuestionAmount       = errors.New("trivia amount must be between 1 and 50")
)

// Session store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB      `mapstructure:"database"`
	Trivia           Trivia  `mapstructure:"trivia"`
	Session          Session `mapstructure:"session"`
	Redis            Redis   `mapstructure:"redis"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Trivia configures the question source.
type Trivia struct {
	BaseURL    string        `mapstructure:"base_url"`
	Amount     int           `mapstructure:"amount"`     // questions per quiz
	Category   int           `mapstructure:"category"`   // 0 means any category
	Difficulty string        `mapstructure:"difficulty"` // easy, medium, hard or empty
	Type       string        `mapstructure:"type"`       // multiple, boolean or empty
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Session configures where quiz sessions live and how long idle ones are kept.
type Session struct {
	Store         string        `mapstructure:"store"` // memory or redis
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for the idle session sweep
}

// Redis is used only when Session.Store is "redis".
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from the given directory and environment variables.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("trivia.base_url", "https://opentdb.com")
	v.SetDefault("trivia.amount", 5)
	v.SetDefault("trivia.category", 0)
	v.SetDefault("trivia.difficulty", "")
	v.SetDefault("trivia.type", "")
	v.SetDefault("trivia.timeout", "10s")
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.sweep_schedule", "@every 10m")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come from the environment only.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if cfg.Trivia.Amount < 1 || cfg.Trivia.Amount > 50 {
		return nil, ErrInvalidQuestionAmount
	}

	switch cfg.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionStore, cfg.Session.Store)
	}

	return &cfg, nil
}
