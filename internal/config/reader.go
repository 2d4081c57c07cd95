package config

import (
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads the task tracker configuration from the process
// environment.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	cfg.CORS.AllowedOrigins = cleanOrigins(cfg.CORS.AllowedOrigins)
	cfg.JWT.PublicKeyPEM = unescapePEM(cfg.JWT.PublicKeyPEM)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// cleanOrigins trims each origin and drops empty entries left by stray commas.
func cleanOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	return cleaned
}

// unescapePEM accepts a public key written on one line with literal \n
// separators, as single-line env files require.
func unescapePEM(pem string) string {
	return strings.TrimSpace(strings.ReplaceAll(pem, `\n`, "\n"))
}
