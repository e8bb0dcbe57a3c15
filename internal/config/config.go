package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DatabasePath string

	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	AdminPasswordHash string

	AppEnv                string
	WSAllowedOrigins      []string
	WSAllowQueryTokens    bool
	DevWebSocketsAllowAll bool

	DeckStateKey     string
	DeckHistoryLimit int

	LogLevel  string
	LogFormat string
}

func (c Config) IsDev() bool { return c.AppEnv == "development" }

// LoadFromEnv reads configuration from the environment, after loading a
// .env file from the working directory when one exists.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	ttlMinutes := int64(10080) // 7 days
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ttlMinutes = n
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: invalid JWT_TTL_MINUTES=%q, using default %d\n", v, ttlMinutes)
		}
	}

	cfg := Config{
		Addr:              os.Getenv("BACKEND_ADDR"),
		DatabasePath:      os.Getenv("DATABASE_PATH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         getEnv("JWT_ISSUER", "deck-of-cards"),
		JWTTTL:            time.Duration(ttlMinutes) * time.Minute,
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		AppEnv:            strings.TrimSpace(os.Getenv("APP_ENV")),
		DeckStateKey:      getEnv("DECK_STATE_KEY", "deck-of-cards-state"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}
	cfg.WSAllowQueryTokens = getBool("WS_ALLOW_QUERY_TOKENS")
	cfg.DevWebSocketsAllowAll = getBool("DEV_WEBSOCKETS_ALLOW_ALL")

	var missing []string
	if v := strings.TrimSpace(os.Getenv("DECK_HISTORY_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			missing = append(missing, "DECK_HISTORY_LIMIT (non-negative integer)")
		}
		cfg.DeckHistoryLimit = n
	}

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	if cfg.DatabasePath == "" {
		missing = append(missing, "DATABASE_PATH")
	}
	// BACKEND_ADDR is optional if PORT is set by the hosting environment.
	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		missing = append(missing, "BACKEND_ADDR (or PORT)")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing/invalid env: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
