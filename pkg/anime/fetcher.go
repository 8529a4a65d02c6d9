package anime

import "context"

// Fetcher looks up catalog data for a free-text query.
// A (nil, nil) return means "not found"; lookups are best-effort and the
// caller must treat any error the same way as not-found.
type Fetcher interface {
	GetAnimeData(ctx context.Context, query string) (*Data, error)
}
