// Package main News Hub API
// @title News Hub API
// @version 1.0
// @description Aggregates regional and international news into unified, de-duplicated article lists
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/news-hub/docs"
	"github.com/DjordjeVuckovic/news-hub/internal/app"
	"github.com/DjordjeVuckovic/news-hub/internal/router"
	"github.com/DjordjeVuckovic/news-hub/internal/server"
	pkgserver "github.com/DjordjeVuckovic/news-hub/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.App.LogLevel)

	healthChecker := pkgserver.NewCompositeHealthChecker()
	s := server.New(cfg.Server, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "News Hub API is running")
	})

	// The server context lives until a shutdown signal; the cache sweep runs on it.
	a, err := app.New(s.Context(), *cfg.App)
	if err != nil {
		slog.Error("Failed to create application", "error", err)
		os.Exit(1)
	}
	healthChecker.Add(a.HealthChecker)

	router.NewArticleRouter(s.Echo, a.Facade, a.Resolver).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	a.Close()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
