package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	HTTPPort    string `envconfig:"HTTP_PORT"    default:":8080"`
	GrpcPort    string `envconfig:"GRPC_PORT"    default:":50051"` // gRPC health endpoint
	LogLevel    string `envconfig:"LOG_LEVEL"    default:"info"`

	JWTSecret    string        `envconfig:"JWT_SECRET"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL"   default:"24h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`

	ImgBBAPIKey        string        `envconfig:"IMGBB_API_KEY"`
	ImgBBUploadURL     string        `envconfig:"IMGBB_UPLOAD_URL"     default:"https://api.imgbb.com/1/upload"`
	ImageDeleteTimeout time.Duration `envconfig:"IMAGE_DELETE_TIMEOUT" default:"5s"`
	ImageUploadTimeout time.Duration `envconfig:"IMAGE_UPLOAD_TIMEOUT" default:"30s"`

	TelegramAPIURL  string        `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`
	TelegramTimeout time.Duration `envconfig:"TELEGRAM_TIMEOUT" default:"10s"`

	HealthCheckInterval time.Duration `envconfig:"HEALTH_CHECK_INTERVAL" default:"10s"`
}

var (
	config  Config
	loadErr error
	once    sync.Once
)

// LoadConfig reads .env (if present) and the environment once per process.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		var cfg *Config
		cfg, loadErr = process()
		if loadErr != nil {
			return
		}
		config = *cfg

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s", config.HTTPPort, config.GrpcPort, config.LogLevel)
		if config.ImgBBAPIKey == "" {
			logger.Warn("Configuration: IMGBB_API_KEY is not set, image uploads will be rejected")
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return &config, nil
}

func process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	// envconfig accepts required keys that are set but empty.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return &cfg, nil
}

// ValidateServe checks the settings only the HTTP server needs.
func (c *Config) ValidateServe() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
