package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               string
	AllowedOrigins     []string
	ShareBaseURL       string
	ContinuationWindow time.Duration
	ContinuationTick   time.Duration
	DisconnectGrace    time.Duration
	LogLevel           string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Allowed origins = frontend URL + localhost dev + CSV extras.
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173",
	}
	if allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:               port,
		AllowedOrigins:     allowedOrigins,
		ShareBaseURL:       GetEnv("SHARE_BASE_URL", frontendURL),
		ContinuationWindow: time.Duration(GetEnvAsInt("CONTINUATION_WINDOW_MS", 5000)) * time.Millisecond,
		ContinuationTick:   time.Duration(GetEnvAsInt("CONTINUATION_TICK_MS", 200)) * time.Millisecond,
		DisconnectGrace:    time.Duration(GetEnvAsInt("DISCONNECT_GRACE_SECONDS", 60)) * time.Second,
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer env value")
		return defaultValue
	}
	return value
}
