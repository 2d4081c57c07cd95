package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	HTTP       HTTPConfig
	Storage    StorageConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Pagination PaginationConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8084"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"postgres"`
	// Migrate applies the schema on startup.
	Migrate bool `env:"STORAGE_MIGRATE" env-default:"false"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE" env-default:"taskmanager"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	// Addr is optional; the identity cache is disabled without it.
	Addr        string        `env:"REDIS_ADDR"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB" env-default:"0"`
	IdentityTTL time.Duration `env:"REDIS_IDENTITY_TTL" env-default:"15m"`
	PingTimeout time.Duration `env:"REDIS_PING_TIMEOUT" env-default:"5s"`
}

type JWTConfig struct {
	Issuer       string `env:"JWT_ISSUER"`
	Audience     string `env:"JWT_AUDIENCE"`
	SigningKey   string `env:"JWT_SIGNING_KEY"`
	PublicKeyPEM string `env:"JWT_PUBLIC_KEY_PEM"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

type PaginationConfig struct {
	DefaultPageSize int `env:"PAGINATION_DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int `env:"PAGINATION_MAX_PAGE_SIZE" env-default:"100"`
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	if c.JWT.SigningKey == "" && c.JWT.PublicKeyPEM == "" {
		return errors.New("JWT_SIGNING_KEY or JWT_PUBLIC_KEY_PEM is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	if c.Pagination.DefaultPageSize <= 0 || c.Pagination.MaxPageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d",
			c.Pagination.DefaultPageSize, c.Pagination.MaxPageSize)
	}
	return nil
}
