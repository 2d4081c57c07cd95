package config

import (
	"os"
	"testing"
	"time"
)

func TestEnvReaderDefaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != "8084" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.Storage.Driver != StorageDriverPostgres {
		t.Fatalf("unexpected storage driver: %s", cfg.Storage.Driver)
	}
	if cfg.Pagination.DefaultPageSize != 10 || cfg.Pagination.MaxPageSize != 100 {
		t.Fatalf("unexpected pagination: %+v", cfg.Pagination)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.IdentityTTL != 15*time.Minute {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
}

func TestEnvReaderParsesOrigins(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("unexpected driver: %s", cfg.Storage.Driver)
	}
}

func TestEnvReaderRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing env":     {"JWT_SIGNING_KEY": "secret"},
		"unknown env":     {"ENV": "staging", "JWT_SIGNING_KEY": "secret"},
		"missing key":     {"ENV": EnvProd},
		"unknown driver":  {"ENV": EnvProd, "JWT_SIGNING_KEY": "secret", "STORAGE_DRIVER": "mongo"},
		"default too big": {"ENV": EnvProd, "JWT_SIGNING_KEY": "secret", "PAGINATION_DEFAULT_PAGE_SIZE": "500"},
		"no origins":      {"ENV": EnvProd, "JWT_SIGNING_KEY": "secret", "CORS_ALLOWED_ORIGINS": " , "},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"ENV", "JWT_SIGNING_KEY", "JWT_PUBLIC_KEY_PEM", "STORAGE_DRIVER", "PAGINATION_DEFAULT_PAGE_SIZE", "CORS_ALLOWED_ORIGINS"} {
				t.Setenv(key, "")
				_ = os.Unsetenv(key)
			}
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := NewEnvReader().Read(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEnvReaderUnescapesPublicKey(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("JWT_PUBLIC_KEY_PEM", `-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n`)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----"
	if cfg.JWT.PublicKeyPEM != want {
		t.Fatalf("unexpected pem: %q", cfg.JWT.PublicKeyPEM)
	}
}
