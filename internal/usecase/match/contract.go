package match

import (
	"context"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// Feed supplies candidate dogs from the external listing feed.
type Feed interface {
	Search(ctx context.Context, q domain.FeedQuery) ([]domain.Dog, error)
}

// Enricher fills in derived dog facts (shedding, grooming, barkiness,
// energy priors) before scoring.
type Enricher interface {
	Apply(ctx context.Context, dogs []domain.Dog) []domain.Dog
}

// Reasoner attaches verified natural-language explanations to the top
// analyses. Implementations must degrade to local fallbacks on failure;
// Explain never errors.
type Reasoner interface {
	Explain(ctx context.Context, analyses []domain.DogAnalysis, eff domain.EffectivePreferences) []domain.DogAnalysis
}
