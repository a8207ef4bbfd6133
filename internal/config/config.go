package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers for the game store.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`            // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`              // Telegram API token loaded from environment
	QuestionsPath    string  `mapstructure:"questions_path"` // path to JSON file with the question bank
	Server           Server  `mapstructure:"server"`         // game server section
	Storage          Storage `mapstructure:"storage"`        // game store section
	DB               DB      `mapstructure:"database"`       // database configuration section
	Redis            Redis   `mapstructure:"redis"`          // redis configuration section
	Bot              Bot     `mapstructure:"bot"`            // telegram client section
	Effects          Effects `mapstructure:"effects"`        // animation timings
}

// Server contains game server parameters.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Storage selects and tunes the game store.
type Storage struct {
	Driver        string        `mapstructure:"driver"`         // memory, postgres or redis
	GameTTL       time.Duration `mapstructure:"game_ttl"`       // idle time after which a game is discarded
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the stale game sweeper
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

type Redis struct {
	URL string `mapstructure:"-"`
}

// Bot contains parameters of the Telegram client.
type Bot struct {
	ServerURL     string        `mapstructure:"server_url"`     // base URL of the game server
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"` // bound on every game server request
	Debug         bool          `mapstructure:"debug"`
}

// Effects holds the animation timings of the answer page.
type Effects struct {
	Pulse       time.Duration `mapstructure:"pulse"`
	Celebration time.Duration `mapstructure:"celebration"`
	Flash       time.Duration `mapstructure:"flash"`
	Shake       time.Duration `mapstructure:"shake"`
	AfterShake  time.Duration `mapstructure:"after_shake"`
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from dir and environment variables. A .env
// file in the working directory is loaded first when present.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions_path", "assets/data/questions.json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.game_ttl", "2h")
	v.SetDefault("storage.sweep_schedule", "@every 10m")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("bot.server_url", "http://localhost:8080")
	v.SetDefault("bot.verify_timeout", "10s")
	v.SetDefault("effects.pulse", "200ms")
	v.SetDefault("effects.celebration", "2s")
	v.SetDefault("effects.flash", "500ms")
	v.SetDefault("effects.shake", "500ms")
	v.SetDefault("effects.after_shake", "300ms")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("bot.server_url", "SERVER_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	return &cfg, nil
}

// ValidateBot checks the settings the Telegram client cannot run without.
func (c *Config) ValidateBot() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	if c.Bot.ServerURL == "" {
		return fmt.Errorf("%w: SERVER_URL", ErrMissingEnvironmentVariables)
	}
	return nil
}

// ValidateServer checks that the selected game store is configured.
func (c *Config) ValidateServer() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case DriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: REDIS_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}
	return nil
}
