package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type HTTPConfig struct {
	Addr string
}

type APIConfig struct {
	BaseURL        string
	AppToken       string
	TimeoutSeconds int
}

type AppConfig struct {
	ServiceName     string
	LogLevel        string
	HTTP            HTTPConfig
	API             APIConfig
	StateDir        string
	CacheTTLSeconds int
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		API: APIConfig{
			BaseURL:        strings.TrimSpace(os.Getenv("API_BASE_URL")),
			AppToken:       strings.TrimSpace(os.Getenv("API_APP_TOKEN")),
			TimeoutSeconds: intEnv("API_TIMEOUT_SECONDS", 15),
		},
		StateDir:        strings.TrimSpace(os.Getenv("STATE_DIR")),
		CacheTTLSeconds: intEnv("CACHE_TTL_SECONDS", 60),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "movieview"
	}
	if cfg.API.BaseURL == "" {
		return AppConfig{}, errors.New("API_BASE_URL is required")
	}
	if cfg.API.AppToken == "" {
		return AppConfig{}, errors.New("API_APP_TOKEN is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".movieview")
	}
	return cfg, nil
}

func intEnv(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
