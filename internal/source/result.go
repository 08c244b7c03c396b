// Package source holds the contract shared by the upstream news adapters.
// Adapters never return errors past this boundary: transport failures and
// malformed responses become a failed Result with no articles.
package source

import (
	"fmt"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
)

type Result struct {
	Success      bool
	Articles     []domain.Article
	TotalResults int
	Err          error
}

func Succeeded(articles []domain.Article, total int) Result {
	if articles == nil {
		articles = []domain.Article{}
	}
	return Result{
		Success:      true,
		Articles:     articles,
		TotalResults: total,
	}
}

func Failed(err error) Result {
	return Result{
		Success:  false,
		Articles: []domain.Article{},
		Err:      err,
	}
}

// Empty reports whether the result carries no usable articles.
func (r Result) Empty() bool {
	return !r.Success || len(r.Articles) == 0
}

// Guard converts a panic inside an adapter call into a failed Result.
// Use as: defer source.Guard(&res, "newsapi")
func Guard(res *Result, adapter string) {
	if rec := recover(); rec != nil {
		*res = Failed(fmt.Errorf("%s adapter panicked: %v", adapter, rec))
	}
}
