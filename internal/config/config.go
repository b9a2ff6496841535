package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string `mapstructure:"DB_HOST" validate:"required"`
	DBPort     string `mapstructure:"DB_PORT" validate:"required,numeric"`
	DBUser     string `mapstructure:"DB_USER" validate:"required"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME" validate:"required"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE" validate:"oneof=disable require verify-ca verify-full"`
	ServerPort string `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	ClientURL  string `mapstructure:"CLIENT_URL"`

	JWTSecret         string        `mapstructure:"JWT_SECRET" validate:"required,min=8"`
	JWTExpiry         time.Duration `mapstructure:"JWT_EXPIRY" validate:"gt=0"`
	VerifyEmailSecret string        `mapstructure:"VERIFY_EMAIL_SECRET" validate:"required,min=8"`
	VerifyEmailExpiry time.Duration `mapstructure:"VERIFY_EMAIL_EXPIRY" validate:"gt=0"`
	MailFrom          string        `mapstructure:"MAIL_FROM" validate:"omitempty,email"`

	RedisURL          string `mapstructure:"REDIS_URL"`
	RegisterRateLimit int    `mapstructure:"REGISTER_RATE_LIMIT" validate:"gte=0"`

	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" validate:"oneof=text json"`
	SSEPingInterval time.Duration `mapstructure:"SSE_PING_INTERVAL" validate:"gt=0"`
}

var defaults = map[string]any{
	"DB_HOST":             "localhost",
	"DB_PORT":             "5431",
	"DB_USER":             "taskboard",
	"DB_PASSWORD":         "taskboard",
	"DB_NAME":             "taskboard",
	"DB_SSLMODE":          "disable",
	"SERVER_PORT":         "8080",
	"CLIENT_URL":          "http://localhost:3000",
	"JWT_SECRET":          "supersecretkey",
	"JWT_EXPIRY":          "24h",
	"VERIFY_EMAIL_SECRET": "supersecretverifykey",
	"VERIFY_EMAIL_EXPIRY": "15m",
	"MAIL_FROM":           "no-reply@taskboard.local",
	"REDIS_URL":           "",
	"REGISTER_RATE_LIMIT": 5,
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "text",
	"SSE_PING_INTERVAL":   "25s",
}

// Load reads .env (when present) and the process environment on top of the
// defaults, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system environment variables")
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// DSN is the gorm/pgx connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrationURL is the golang-migrate pgx/v5 database URL.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
