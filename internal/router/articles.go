package router

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/news-hub/internal/aggregator"
	"github.com/DjordjeVuckovic/news-hub/internal/apperr"
	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/dto"
	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 400
)

type ArticleService interface {
	GetMixedArticles(ctx context.Context, limit int, opts ...aggregator.MixOption) []domain.Article
	GetTrendingArticles(ctx context.Context, limit int, opts ...aggregator.MixOption) []domain.Article
	SearchAllSources(ctx context.Context, query string, limit int) []domain.Article
}

type ArticleResolver interface {
	ResolveArticleByID(ctx context.Context, id string) (domain.Article, bool)
}

type ArticleRouter struct {
	e        *echo.Echo
	service  ArticleService
	resolver ArticleResolver
}

func NewArticleRouter(e *echo.Echo, service ArticleService, resolver ArticleResolver) *ArticleRouter {
	return &ArticleRouter{
		e:        e,
		service:  service,
		resolver: resolver,
	}
}

func (r *ArticleRouter) Bind() {
	g := r.e.Group("/api/v1/articles")
	g.GET("/mixed", r.mixedHandler)
	g.GET("/trending", r.trendingHandler)
	g.GET("/search", r.searchHandler)
	g.GET("/:id", r.byIDHandler)
}

// mixedHandler godoc
// @Summary Mixed regional and international articles
// @Description Returns up to limit unique articles, about 80% regional and 20% international, shuffled.
// @Tags articles
// @Produce json
// @Param limit query int false "Maximum number of articles (0-400)" default(20)
// @Success 200 {object} dto.ArticleList
// @Failure 400 {object} apperr.ErrorResponse
// @Router /api/v1/articles/mixed [get]
func (r *ArticleRouter) mixedHandler(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	articles := r.service.GetMixedArticles(c.Request().Context(), limit)
	return c.JSON(http.StatusOK, dto.FromArticles(articles))
}

// trendingHandler godoc
// @Summary Trending articles
// @Description Returns up to limit unique trending articles, newest first.
// @Tags articles
// @Produce json
// @Param limit query int false "Maximum number of articles (0-400)" default(20)
// @Success 200 {object} dto.ArticleList
// @Failure 400 {object} apperr.ErrorResponse
// @Router /api/v1/articles/trending [get]
func (r *ArticleRouter) trendingHandler(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	articles := r.service.GetTrendingArticles(c.Request().Context(), limit)
	return c.JSON(http.StatusOK, dto.FromArticles(articles))
}

// searchHandler godoc
// @Summary Search all sources
// @Description Keyword search over regional titles and the international search endpoint.
// @Tags articles
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum number of articles (0-400)" default(20)
// @Success 200 {object} dto.ArticleList
// @Failure 400 {object} apperr.ErrorResponse
// @Router /api/v1/articles/search [get]
func (r *ArticleRouter) searchHandler(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return apperr.NewValidation("query parameter 'q' is required")
	}
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	articles := r.service.SearchAllSources(c.Request().Context(), query, limit)
	return c.JSON(http.StatusOK, dto.FromArticles(articles))
}

// byIDHandler godoc
// @Summary Resolve an article by id
// @Description Accepts a provider id, a percent-encoded article URL or a slug id.
// @Tags articles
// @Produce json
// @Param id path string true "Article id"
// @Success 200 {object} dto.Article
// @Failure 404 {object} apperr.ErrorResponse
// @Router /api/v1/articles/{id} [get]
func (r *ArticleRouter) byIDHandler(c echo.Context) error {
	id := c.Param("id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	article, ok := r.resolver.ResolveArticleByID(c.Request().Context(), id)
	if !ok {
		return apperr.NewNotFound("article", id)
	}
	return c.JSON(http.StatusOK, dto.FromArticle(article))
}

func parseLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return DefaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NewValidationWrap("limit must be an integer", err)
	}
	if limit < 0 || limit > MaxLimit {
		return 0, apperr.NewValidation("limit must be between 0 and " + strconv.Itoa(MaxLimit))
	}
	return limit, nil
}
