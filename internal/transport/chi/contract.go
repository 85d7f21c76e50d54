package chi

import (
	"context"
	"time"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// Matcher runs the matching pipeline for one request.
type Matcher interface {
	Match(ctx context.Context, prefs domain.UserPreferences) (domain.MatchingResults, error)
}

// Feed exposes the listing feed for the passthrough endpoints.
type Feed interface {
	Search(ctx context.Context, q domain.FeedQuery) ([]domain.Dog, error)
	Dog(ctx context.Context, id string) (domain.Dog, error)
}

// Enrichment exposes the background facts worker: cached derived facts
// for detail views plus off-path submission of fresh listings.
type Enrichment interface {
	Facts(ctx context.Context, dogID string) (*domain.DerivedFacts, bool)
	Submit(dogs []domain.Dog)
}

// KVStore is the consumer interface for the response cache (ISP).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
