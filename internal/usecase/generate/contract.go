package generate

import (
	"context"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// PageFetcher is the consumer view of the live-site fetcher. The
// concrete implementation lives in transport/scrape, optionally
// wrapped by the pagecache decorator.
type PageFetcher interface {
	FetchPage(ctx context.Context, path string) (string, error)
	FetchPricing(ctx context.Context) (string, error)
	FetchCoupons(ctx context.Context) (string, error)
}

// Router produces one completion for a prompt, choosing and failing
// over models according to the complexity verdict.
type Router interface {
	Generate(ctx context.Context, prompt string, verdict domain.Complexity) (text string, model string, err error)
}
