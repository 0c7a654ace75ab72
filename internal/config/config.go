package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-driven settings. DATABASE_URL and
// SESSION_SECRET have no fallbacks on purpose: startup fails without them.
type Config struct {
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	Port          string `envconfig:"PORT" default:"8080"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	// Used only to seed the first super admin when the admins table is empty.
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads .env when present, then fills the Config from the environment.
func Load(log *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("error loading .env file (continuing): %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}
