package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Intake   IntakeConfig   `mapstructure:"intake"`
	Contact  ContactConfig  `mapstructure:"contact"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	Environment     string   `mapstructure:"environment"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	SecureCookies   bool     `mapstructure:"secure_cookies"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds the catalog REST API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// IntakeConfig holds the third-party form intake endpoint
type IntakeConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

// ContactConfig holds the public contact details used in deep links
type ContactConfig struct {
	WhatsAppNumber string `mapstructure:"whatsapp_number"`
	SiteURL        string `mapstructure:"site_url"`
	Email          string `mapstructure:"email"`
	Phone          string `mapstructure:"phone"`
}

// AssetsConfig holds image fallbacks
type AssetsConfig struct {
	FallbackImage        string `mapstructure:"fallback_image"`
	ProductFallbackImage string `mapstructure:"product_fallback_image"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig holds Redis connection details. When disabled, transient
// notices are kept in process memory.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// DatabaseConfig holds the optional lead archive database
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns a pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// Load reads .env, config.yaml from the working directory and environment
// overrides. The config file is optional.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit config directory. The .env file is
// read from the same directory.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil {
		log.Debug("No .env file loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// the storefront historically read its API location from this variable
	if err := v.BindEnv("api.base_url", "API_BASE_URL", "REACT_APP_API_PORT"); err != nil {
		return nil, fmt.Errorf("error binding api base url: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Info("config.yaml not found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) normalize() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}

	if strings.TrimSpace(c.Intake.URL) == "" {
		return fmt.Errorf("intake.url is required")
	}

	c.Contact.SiteURL = strings.TrimRight(c.Contact.SiteURL, "/")
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.secure_cookies", false)

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 15)
	v.SetDefault("api.max_retries", 0)
	v.SetDefault("api.max_requests_per_second", 50)

	v.SetDefault("intake.url", "https://script.google.com/macros/s/AKfycbzYPvL1hFwtcvvox-FntlaokPSuTdy_9n07Q28EHqiU8Ledx0E1KQhxcF6bMsWw1Gf8/exec")
	v.SetDefault("intake.timeout", 20)

	v.SetDefault("contact.whatsapp_number", "918904088131")
	v.SetDefault("contact.site_url", "https://www.teakwoodfactory.com")
	v.SetDefault("contact.email", "")
	v.SetDefault("contact.phone", "+91 89040 88131")

	v.SetDefault("assets.fallback_image", "/static/fallback.svg")
	v.SetDefault("assets.product_fallback_image", "https://plus.unsplash.com/premium_photo-1683140425081-14c44089acd0?w=900&auto=format&fit=crop&q=60")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront")
	v.SetDefault("database.password", "storefront")
}
