package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-hub/internal/app"
	"github.com/DjordjeVuckovic/news-hub/internal/server"
	"github.com/DjordjeVuckovic/news-hub/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NewsAPIConfig struct {
	Server *server.Config
	App    *app.Config
}

func (as *AppConfig) Load() (*NewsAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadEnv()
	if err != nil {
		slog.Error("Failed to load server configuration from environment", "error", err)
		return nil, err
	}

	appCfg, err := app.LoadEnv()
	if err != nil {
		slog.Error("Failed to load app configuration from environment", "error", err)
		return nil, err
	}

	return &NewsAPIConfig{
		Server: serverCfg,
		App:    appCfg,
	}, nil
}
