// news_cli fetches aggregated articles from the command line.
//
// Usage:
//
//	news_cli mixed --limit 20
//	news_cli trending --limit 10
//	news_cli search "banjir jakarta" --limit 5
//	news_cli resolve <id>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/news-hub/internal/app"
	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/dto"
	"github.com/DjordjeVuckovic/news-hub/internal/router"
	"github.com/DjordjeVuckovic/news-hub/pkg/config/env"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("article not found")

// services is what the commands need from the wired application.
type services struct {
	articles router.ArticleService
	resolver router.ArticleResolver
	close    func()
}

type loader func(ctx context.Context) (*services, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadServices).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadServices(ctx context.Context) (*services, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/news_cli/.env"); err != nil {
		slog.Debug("Continuing without .env", "error", err)
	}

	cfg, err := app.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	a, err := app.New(ctx, *cfg)
	if err != nil {
		return nil, err
	}
	return &services{articles: a.Facade, resolver: a.Resolver, close: a.Close}, nil
}

func newRootCmd(load loader) *cobra.Command {
	var svc *services

	rootCmd := &cobra.Command{
		Use:           "news_cli",
		Short:         "Aggregated regional and international news",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if svc != nil && svc.close != nil {
				svc.close()
			}
		},
	}

	get := func() *services { return svc }
	rootCmd.AddCommand(mixedCmd(get))
	rootCmd.AddCommand(trendingCmd(get))
	rootCmd.AddCommand(searchCmd(get))
	rootCmd.AddCommand(resolveCmd(get))
	return rootCmd
}

func mixedCmd(svc func() *services) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "mixed",
		Short: "Mixed regional and international articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			return writeLines(cmd, svc().articles.GetMixedArticles(cmd.Context(), limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", router.DefaultLimit, "maximum number of articles")
	return cmd
}

func trendingCmd(svc func() *services) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Trending articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			return writeLines(cmd, svc().articles.GetTrendingArticles(cmd.Context(), limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", router.DefaultLimit, "maximum number of articles")
	return cmd
}

func searchCmd(svc func() *services) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Keyword search across all sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			return writeLines(cmd, svc().articles.SearchAllSources(cmd.Context(), args[0], limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", router.DefaultLimit, "maximum number of articles")
	return cmd
}

func resolveCmd(svc func() *services) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve an article by provider id, URL or slug id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := svc().resolver.ResolveArticleByID(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, args[0])
			}
			return writeLines(cmd, []domain.Article{a})
		},
	}
}

func validateLimit(limit int) error {
	if limit < 0 || limit > router.MaxLimit {
		return fmt.Errorf("limit must be between 0 and %d", router.MaxLimit)
	}
	return nil
}

// writeLines prints one JSON object per article.
func writeLines(cmd *cobra.Command, articles []domain.Article) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, a := range articles {
		if err := enc.Encode(dto.FromArticle(a)); err != nil {
			return err
		}
	}
	return nil
}
