// Package reason turns ranked analyses into verified natural-language
// explanations: constrained prompt, external generation with bounded
// fan-out, structured extraction, and a verifier rewrite pass. Generation
// failures degrade to deterministic template reasoning; Explain never
// errors.
package reason

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/usecase/verify"
)

const (
	defaultBatchSize = 10
	defaultPause     = 500 * time.Millisecond
	defaultTimeout   = 10 * time.Second
)

// Service generates and verifies explanations for a batch of analyses.
type Service struct {
	gen       Generator
	batchSize int
	pause     time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a reasoning service. gen can be nil, in which case every
// analysis gets template reasoning.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{
		gen:       gen,
		batchSize: defaultBatchSize,
		pause:     defaultPause,
		timeout:   defaultTimeout,
		logger:    logger,
	}
}

// WithBatchSize sets the generation fan-out per batch.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithPause sets the delay between batches.
func (s *Service) WithPause(d time.Duration) *Service {
	if d >= 0 {
		s.pause = d
	}
	return s
}

// WithTimeout sets the per-call generation timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Explain attaches verified reasoning to every analysis. Calls within a
// batch run concurrently and are awaited together; batches are separated
// by a pause to respect upstream rate limits. Fan-out is never unbounded.
func (s *Service) Explain(ctx context.Context, analyses []domain.DogAnalysis, eff domain.EffectivePreferences) []domain.DogAnalysis {
	out := make([]domain.DogAnalysis, len(analyses))
	copy(out, analyses)

	for start := 0; start < len(out); start += s.batchSize {
		end := min(start+s.batchSize, len(out))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				out[i] = s.explainOne(gctx, out[i], eff)
				return nil
			})
		}
		_ = g.Wait()

		if end < len(out) && s.pause > 0 {
			select {
			case <-ctx.Done():
				// Remaining analyses still get deterministic reasoning.
				for i := end; i < len(out); i++ {
					pack := BuildFactPack(out[i], eff)
					out[i].Reasons = verify.Rewrite(Fallback(out[i], pack), pack)
				}
				return out
			case <-time.After(s.pause):
			}
		}
	}

	return out
}

func (s *Service) explainOne(ctx context.Context, a domain.DogAnalysis, eff domain.EffectivePreferences) domain.DogAnalysis {
	pack := BuildFactPack(a, eff)

	reasoning, ok := s.generate(ctx, a, pack)
	if !ok {
		reasoning = Fallback(a, pack)
	}

	a.Reasons = verify.Rewrite(reasoning, pack)
	return a
}

func (s *Service) generate(ctx context.Context, a domain.DogAnalysis, pack domain.FactPack) (domain.AIReasoning, bool) {
	if s.gen == nil {
		return domain.AIReasoning{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.Generate(callCtx, BuildPrompt(a, pack))
	if err != nil {
		s.logger.Warn("reasoning generation failed, using template fallback",
			zap.String("dog_id", a.Dog.ID),
			zap.Error(err),
		)
		return domain.AIReasoning{}, false
	}

	if r, ok := Extract(raw); ok {
		return r, true
	}

	s.logger.Debug("no structured payload in generated text, truncating raw",
		zap.String("dog_id", a.Dog.ID),
	)
	if r := FromRaw(raw); r.Primary != "" {
		return r, true
	}
	return domain.AIReasoning{}, false
}
