package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP server
	Server ServerConfig `mapstructure:"server"`

	// PostgreSQL
	Postgres PostgresConfig `mapstructure:"postgres"`

	// Redis
	Redis RedisConfig `mapstructure:"redis"`

	// NATS
	NATS NATSConfig `mapstructure:"nats"`

	// Prometheus
	Prometheus PrometheusConfig `mapstructure:"prometheus"`

	// Genius lyrics/metadata search
	Genius GeniusConfig `mapstructure:"genius"`

	// Outgoing lead notifications
	Email EmailConfig `mapstructure:"email"`

	// Staff dashboard access
	Admin AdminConfig `mapstructure:"admin"`

	// Song request behaviour
	Songs SongsConfig `mapstructure:"songs"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

type PostgresConfig struct {
	// URL wins over the individual fields when set (DATABASE_URL on the hosted deploy).
	URL               string `mapstructure:"url"`
	Host              string `mapstructure:"host"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	Port              int    `mapstructure:"port"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   string `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   string `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod string `mapstructure:"health_check_period"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type PrometheusConfig struct {
	Port int `mapstructure:"port"`
}

type GeniusConfig struct {
	AccessToken string        `mapstructure:"access_token"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// RatePerSecond caps outbound search calls; the token is shared by every guest.
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	To       string `mapstructure:"to"`
}

type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
	TokenSecret  string        `mapstructure:"token_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type SongsConfig struct {
	AcceptingOnFirstBoot bool          `mapstructure:"accepting_on_first_boot"`
	StaleAfter           time.Duration `mapstructure:"stale_after"`
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
}

type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

func Load() (*Config, error) {
	// Load local .env for development (ignored when missing).
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Search for config/config.yaml (plus root for overrides).
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Allow environment variables to override YAML entries.
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Preserve legacy env variable names.
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}
	if cfg.Email.To == "" {
		cfg.Email.To = cfg.Email.From
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origin", "*")

	v.SetDefault("genius.base_url", "https://api.genius.com")
	v.SetDefault("genius.timeout", 10*time.Second)
	v.SetDefault("genius.rate_per_second", 5.0)
	v.SetDefault("genius.burst", 10)

	v.SetDefault("email.port", "587")
	v.SetDefault("email.from_name", "CD Entertainment")

	v.SetDefault("admin.token_ttl", 12*time.Hour)

	v.SetDefault("songs.accepting_on_first_boot", false)
	v.SetDefault("songs.stale_after", 0)
	v.SetDefault("songs.sweep_interval", 5*time.Minute)

	v.SetDefault("rate_limit.max_requests", 30)
	v.SetDefault("rate_limit.window", time.Minute)
}

func bindEnvVars(v *viper.Viper) {
	// PostgreSQL
	v.BindEnv("postgres.url", "DATABASE_URL")
	v.BindEnv("postgres.host", "PG_HOST")
	v.BindEnv("postgres.user", "PG_USER")
	v.BindEnv("postgres.password", "PG_PASSWORD")
	v.BindEnv("postgres.database", "PG_DB")
	v.BindEnv("postgres.port", "PG_PORT")
	v.BindEnv("postgres.sslmode", "PG_SSLMODE")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// NATS
	v.BindEnv("nats.host", "NATS_HOST")
	v.BindEnv("nats.port", "NATS_PORT")
	v.BindEnv("nats.user", "NATS_USER")
	v.BindEnv("nats.password", "NATS_PASSWORD")

	// Prometheus
	v.BindEnv("prometheus.port", "PROM_PORT")

	// Genius
	v.BindEnv("genius.access_token", "GENIUS_ACCESS_TOKEN")

	// Email (names kept from the old nodemailer setup)
	v.BindEnv("email.host", "EMAIL_HOST")
	v.BindEnv("email.port", "EMAIL_PORT")
	v.BindEnv("email.username", "EMAIL_USER")
	v.BindEnv("email.password", "EMAIL_PASS")
	v.BindEnv("email.from", "EMAIL_FROM")
	v.BindEnv("email.to", "EMAIL_TO")

	// Admin
	v.BindEnv("admin.username", "ADMIN_USERNAME")
	v.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")
	v.BindEnv("admin.token_secret", "ADMIN_TOKEN_SECRET")
}
