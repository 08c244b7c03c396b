package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/metrics"
	"github.com/DjordjeVuckovic/news-hub/internal/source"
	"golang.org/x/sync/errgroup"
)

type branch struct {
	name    string
	adapter string
	fetch   func(ctx context.Context) source.Result
}

// settleAll runs every branch concurrently and waits for all of them.
// Failed, panicking and timed out branches yield an empty slice at their index.
func (f *Facade) settleAll(ctx context.Context, branches []branch) [][]domain.Article {
	results := make([][]domain.Article, len(branches))

	var g errgroup.Group
	for i, b := range branches {
		g.Go(func() error {
			res := f.run(ctx, b)
			if !res.Success {
				slog.Warn("aggregation branch failed", "branch", b.name, "error", res.Err)
				return nil // non-fatal
			}
			results[i] = wellFormed(res.Articles)
			return nil
		})
	}
	_ = g.Wait() // branches log their own failures and always return nil

	return results
}

// run races one branch against the branch timeout.
func (f *Facade) run(ctx context.Context, b branch) source.Result {
	ctx, cancel := context.WithTimeout(ctx, f.branchTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan source.Result, 1)
	go func() {
		done <- guarded(ctx, b)
	}()

	select {
	case res := <-done:
		outcome := metrics.OutcomeSuccess
		switch {
		case !res.Success:
			outcome = metrics.OutcomeFailure
		case len(res.Articles) == 0:
			outcome = metrics.OutcomeEmpty
		}
		metrics.RecordFetch(b.adapter, outcome, time.Since(start))
		return res
	case <-ctx.Done():
		outcome := metrics.OutcomeTimeout
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			outcome = metrics.OutcomeFailure
		}
		metrics.RecordFetch(b.adapter, outcome, time.Since(start))
		return source.Failed(ctx.Err())
	}
}

func guarded(ctx context.Context, b branch) (res source.Result) {
	defer source.Guard(&res, b.adapter)
	return b.fetch(ctx)
}

func wellFormed(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.WellFormed() {
			out = append(out, a)
		}
	}
	return out
}
