package config

import (
	"fmt"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL"     default:"https://localhost:7168/api"`
	Port           string        `envconfig:"CATALOG_UI_PORT"  default:":3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL"        default:"info"`
	APITimeout     time.Duration `envconfig:"API_TIMEOUT"      default:"10s"`
	APIInsecureTLS bool          `envconfig:"API_INSECURE_TLS" default:"false"` // dev certificates on localhost
	SessionTTL     time.Duration `envconfig:"SESSION_TTL"      default:"30m"`
	SecureCookies  bool          `envconfig:"SECURE_COOKIES"   default:"false"`
}

var (
	config Config
	once   sync.Once
)

// LoadConfig reads .env (if any) and the environment once per process.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Process()
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: API=%s, Port=%s, LogLevel=%s, Timeout=%s",
			config.APIBaseURL, config.Port, config.LogLevel, config.APITimeout)
		if config.APIInsecureTLS {
			logger.Warn("Configuration loaded: TLS verification towards the catalog API is disabled")
		}
	})
	return &config
}

// Process decodes and validates the environment without touching .env files.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.APIBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
