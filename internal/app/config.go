package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-task-tracker/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Bool("storage_migrate", cfg.Storage.Migrate).
		Bool("identity_cache", cfg.Redis.Addr != "").
		Str("jwt_algorithm", jwtAlgorithm(cfg.JWT)).
		Strs("cors_allowed_origins", cfg.CORS.AllowedOrigins).
		Int("default_page_size", cfg.Pagination.DefaultPageSize).
		Int("max_page_size", cfg.Pagination.MaxPageSize).
		Msg("read env")

	config.SetGlobal(cfg)
}

// jwtAlgorithm names the verifier the auth service will build from cfg.
func jwtAlgorithm(cfg config.JWTConfig) string {
	if cfg.PublicKeyPEM != "" {
		return "RS256"
	}
	return "HS256"
}
