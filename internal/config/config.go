package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingConfig is returned when required settings are absent
var ErrMissingConfig = errors.New("missing required configuration")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Checkout  CheckoutConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	MigrationsDir  string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	Schema       string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// CheckoutConfig addresses the messaging deep link and its wording
type CheckoutConfig struct {
	Host            string
	Contact         string
	Currency        string
	Greeting        string
	ProductGreeting string
	Closing         string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

type setting struct {
	key   string
	value string
}

func requireSettings(required ...setting) error {
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	return nil
}

func (c *Config) databaseSettings() []setting {
	return []setting{
		{"DB_USER", c.Database.User},
		{"DB_PASSWORD", c.Database.Password},
		{"DB_DATABASE", c.Database.Database},
	}
}

// ValidateDatabase checks only the settings needed to reach the store
func (c *Config) ValidateDatabase() error {
	return requireSettings(c.databaseSettings()...)
}

// Validate checks that every setting the storefront cannot run without is
// present. The returned error names all missing keys.
func (c *Config) Validate() error {
	return requireSettings(append(c.databaseSettings(),
		setting{"SESSION_SECRET", c.Session.Secret},
		setting{"CHECKOUT_CONTACT", c.Checkout.Contact},
	)...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CART_TTL_MINUTES", 15)
	v.SetDefault("SESSION_TTL_HOURS", 24*30)
	v.SetDefault("CHECKOUT_HOST", "wa.me")
	v.SetDefault("CHECKOUT_CURRENCY", "KSh")
	v.SetDefault("CHECKOUT_GREETING", "Hi Eddjos Collections! I'd like to place an order:")
	v.SetDefault("CHECKOUT_PRODUCT_GREETING", "Hi Eddjos Collections! I'd like to order:")
	v.SetDefault("CHECKOUT_CLOSING", "Please confirm availability and delivery details.")
	v.SetDefault("RATE_LIMIT_REQUESTS", 120)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
}

// Load reads configuration from .env in the working directory, any extra env
// files given, and the process environment, then validates it.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for tools that need only part of the
// configuration
func Read(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper(v), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MigrationsDir:  v.GetString("MIGRATIONS_DIR"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Database:     v.GetString("DB_DATABASE"),
			Schema:       v.GetString("DB_SCHEMA"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CartTTL:  time.Duration(v.GetInt("REDIS_CART_TTL_MINUTES")) * time.Minute,
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			TTL:    time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Checkout: CheckoutConfig{
			Host:            v.GetString("CHECKOUT_HOST"),
			Contact:         v.GetString("CHECKOUT_CONTACT"),
			Currency:        v.GetString("CHECKOUT_CURRENCY"),
			Greeting:        v.GetString("CHECKOUT_GREETING"),
			ProductGreeting: v.GetString("CHECKOUT_PRODUCT_GREETING"),
			Closing:         v.GetString("CHECKOUT_CLOSING"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}
}
