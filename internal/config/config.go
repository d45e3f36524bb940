// Package config handles server configuration: development defaults
// overlaid with environment variables, validated at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Backend selector values
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	ObjectStoreMemory = "memory"
	ObjectStoreS3     = "s3"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds runtime settings for the courtshot server.
//
// The photo database and the account database are separate: accounts
// live in a shared auth database this service reads but never
// migrates.
type Config struct {
	HTTPAddr     string
	LogLevel     string
	ShareBaseURL string

	SessionDuration time.Duration
	UserCacheTTL    time.Duration

	StorageType     string
	AppDatabaseDSN  string
	AuthDatabaseDSN string

	ObjectStoreType string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string

	SessionStoreType string
	RedisURL         string
}

// LoadDefaults populates Config with development defaults. The memory
// backends make a fresh checkout runnable without any infrastructure.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.LogLevel = "info"
	c.ShareBaseURL = "http://localhost:8080/shared"
	c.SessionDuration = 24 * time.Hour
	c.UserCacheTTL = 5 * time.Minute
	c.StorageType = StorageMemory
	c.ObjectStoreType = ObjectStoreMemory
	c.SessionStoreType = SessionStoreMemory
	c.S3Region = "us-east-1"
	c.RedisURL = "redis://localhost:6379"
}

// applyEnv overlays values from environment variables onto c
func (c *Config) applyEnv() {
	overlay(&c.HTTPAddr, "HTTP_ADDR")
	overlay(&c.LogLevel, "LOG_LEVEL")
	overlay(&c.ShareBaseURL, "SHARE_BASE_URL")
	overlayDuration(&c.SessionDuration, "SESSION_DURATION")
	overlayDuration(&c.UserCacheTTL, "USER_CACHE_TTL")
	overlay(&c.StorageType, "STORAGE_TYPE")
	overlay(&c.AppDatabaseDSN, "APP_DATABASE_DSN")
	overlay(&c.AuthDatabaseDSN, "AUTH_DATABASE_DSN")
	overlay(&c.ObjectStoreType, "OBJECT_STORE_TYPE")
	overlay(&c.S3Bucket, "S3_BUCKET")
	overlay(&c.S3Region, "S3_REGION")
	overlay(&c.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	overlay(&c.S3AccessKey, "S3_ACCESS_KEY")
	overlay(&c.S3SecretKey, "S3_SECRET_KEY")
	overlay(&c.SessionStoreType, "SESSION_STORE")
	overlay(&c.RedisURL, "REDIS_URL")
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// Validate checks that the selected backends have the settings they
// need. Called once at startup; a misconfigured server refuses to
// start rather than failing on first use.
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StoragePostgres:
		if c.AppDatabaseDSN == "" {
			return errors.New("APP_DATABASE_DSN required when STORAGE_TYPE=postgres")
		}
		if c.AuthDatabaseDSN == "" {
			return errors.New("AUTH_DATABASE_DSN required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageMemory, StoragePostgres)
	}

	switch c.ObjectStoreType {
	case ObjectStoreMemory:
	case ObjectStoreS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET required when OBJECT_STORE_TYPE=s3")
		}
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return errors.New("S3_ACCESS_KEY and S3_SECRET_KEY required when OBJECT_STORE_TYPE=s3")
		}
	default:
		return fmt.Errorf("invalid OBJECT_STORE_TYPE %q: must be %q or %q", c.ObjectStoreType, ObjectStoreMemory, ObjectStoreS3)
	}

	switch c.SessionStoreType {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: must be %q or %q", c.SessionStoreType, SessionStoreMemory, SessionStoreRedis)
	}

	if c.ShareBaseURL == "" {
		return errors.New("SHARE_BASE_URL must not be empty")
	}
	if c.SessionDuration <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}

	return nil
}

// Load builds a Config from defaults overlaid with the environment,
// then validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
