package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	Port       string
	AdminToken string

	// Channel history capacities; oldest entries are evicted first.
	GlobalHistory int
	TeamHistory   int
	AuditHistory  int
}

func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Env:           getEnv("ENV", "development"),
		Port:          getEnv("PORT", "5000"),
		AdminToken:    getEnv("ADMIN_TOKEN", "admin-secret-token"),
		GlobalHistory: getEnvInt("GLOBAL_HISTORY", 100),
		TeamHistory:   getEnvInt("TEAM_HISTORY", 50),
		AuditHistory:  getEnvInt("AUDIT_HISTORY", 1000),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
