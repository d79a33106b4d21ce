package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every process-wide setting the chat subsystem consumes.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	DatabaseURL string `envconfig:"DB_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`

	// JWTSecret is the signing secret shared with the host application.
	// Tokens are issued by the host; this process only verifies them.
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	JWTUserIDClaim string `envconfig:"JWT_USER_ID_CLAIM" default:"userId"`

	// Host-application user table the mirror reads from.
	HostUserTable         string `envconfig:"HOST_USER_TABLE" default:"users"`
	HostUserIDColumn      string `envconfig:"HOST_USER_ID_COLUMN" default:"id"`
	HostUserNameColumn    string `envconfig:"HOST_USER_NAME_COLUMN" default:"fullname"`
	HostUserPictureColumn string `envconfig:"HOST_USER_PICTURE_COLUMN" default:"profile_picture"`

	UserCacheTTL time.Duration `envconfig:"USER_CACHE_TTL" default:"30s"`
}

// Load reads the configuration from CHAT_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chat", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTUserIDClaim == "" {
		return errors.New("config: CHAT_JWT_USER_ID_CLAIM must not be empty")
	}
	if c.UserCacheTTL < 0 {
		return fmt.Errorf("config: CHAT_USER_CACHE_TTL must not be negative, got %s", c.UserCacheTTL)
	}
	return nil
}
