// README: Config loader with env defaults for HTTP, DB, Redis, and AI settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN may be empty: the API then runs without the suggestion quota.
		DSN string
	}
	Redis struct {
		// Addr may be empty: the API then runs without the suggestion cache.
		Addr string
	}
	AI struct {
		// Provider selects the gateway backend: "gemini" or "openai".
		Provider  string
		GeminiKey string
		OpenAIKey string
	}
	Maps struct {
		// APIKey may be empty: destination resolution is then skipped.
		APIKey string
	}
	Suggest struct {
		CacheTTL time.Duration
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ITINERA_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("ITINERA_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("ITINERA_REDIS_ADDR", "")
	cfg.AI.Provider = envOrDefault("ITINERA_AI_PROVIDER", "gemini")
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.AI.OpenAIKey = envOrDefault("OPENAI_API_KEY", "")
	cfg.Maps.APIKey = envOrDefault("MAPS_API_KEY", "")
	cfg.Suggest.CacheTTL = time.Duration(envOrDefaultInt("ITINERA_SUGGEST_CACHE_TTL_SECONDS", 300)) * time.Second
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
