// Package match implements the matching pipeline: filtering, weighted
// scoring, and ranking of candidate dogs against resolved preferences.
package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/usecase/normalize"
)

// Service runs the full matching pipeline for one request. Each request
// is independently computed from its inputs; the service holds no
// cross-request mutable state.
type Service struct {
	feed     Feed
	enrich   Enricher
	reasoner Reasoner
	topN     int
	logger   *zap.Logger
}

// New creates a matching service. reasoner can be nil, in which case top
// matches carry no generated text.
func New(feed Feed, reasoner Reasoner, logger *zap.Logger) *Service {
	return &Service{
		feed:     feed,
		reasoner: reasoner,
		topN:     domain.MaxTopMatches,
		logger:   logger,
	}
}

// WithEnricher attaches a derived-facts enricher.
func (s *Service) WithEnricher(e Enricher) *Service {
	s.enrich = e
	return s
}

// WithTopN overrides how many top matches get generated explanations.
func (s *Service) WithTopN(n int) *Service {
	if n > 0 {
		s.topN = n
	}
	return s
}

// Match resolves preferences, pulls candidates, and runs
// filter -> score -> rank -> explain. Only structurally invalid input or
// a feed failure aborts; everything downstream degrades.
func (s *Service) Match(ctx context.Context, prefs domain.UserPreferences) (domain.MatchingResults, error) {
	if err := prefs.Validate(); err != nil {
		return domain.MatchingResults{}, err
	}

	eff := normalize.Resolve(prefs)

	query := domain.FeedQuery{
		ZipCodes: eff.ZipCodes,
		RadiusMi: eff.RadiusMi,
	}
	if eff.Ages.Origin == domain.OriginUser {
		query.Ages = eff.Ages.Values
	}

	dogs, err := s.feed.Search(ctx, query)
	if err != nil {
		return domain.MatchingResults{}, fmt.Errorf("search feed: %w", err)
	}

	if s.enrich != nil {
		dogs = s.enrich.Apply(ctx, dogs)
	}

	dogs = Filter(dogs, eff)

	analyses := make([]domain.DogAnalysis, 0, len(dogs))
	for _, d := range dogs {
		analyses = append(analyses, Score(d, eff))
	}

	ranked := Rank(analyses)
	top := TopMatches(ranked, s.topN)

	if s.reasoner != nil && len(top) > 0 {
		top = s.reasoner.Explain(ctx, top, eff)
		copy(ranked, top)
	}

	s.logger.Debug("matching pipeline completed",
		zap.Int("candidates", len(dogs)),
		zap.Int("ranked", len(ranked)),
		zap.Int("top", len(top)),
	)

	return domain.MatchingResults{
		TopMatches:     top,
		AllMatches:     ranked,
		ExpansionNotes: eff.ExpansionNotes,
	}, nil
}
