package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port           string
	DatabaseURL    string
	AIServiceURL   string
	AITimeout      time.Duration
	MigrationsPath string

	frontendOrigins []string
}

// Load reads configuration from environment variables or defaults.
// DATABASE_URL has no default; callers must check it themselves.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AIServiceURL:    getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		AITimeout:       time.Duration(getEnvInt("AI_SERVICE_TIMEOUT", 30)) * time.Second,
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		frontendOrigins: parseOrigins(os.Getenv("FRONTEND_ORIGINS"), os.Getenv("FRONTEND_ORIGIN")),
	}
}

// FrontendOrigins returns the origins allowed for CORS: the configured list
// plus the local-dev defaults, deduplicated.
func (c *Config) FrontendOrigins() []string {
	return c.frontendOrigins
}

var localDevOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
	"http://host.docker.internal:8080",
}

func parseOrigins(list, legacy string) []string {
	var origins []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if legacy = strings.TrimSpace(legacy); legacy != "" {
		origins = append(origins, legacy)
	}
	origins = append(origins, localDevOrigins...)

	seen := make(map[string]bool, len(origins))
	out := origins[:0]
	for _, o := range origins {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
