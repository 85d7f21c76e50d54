package match

import (
	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
)

// Filter applies the radius stage and then the breed stage. Both are pure
// functions over (dogs, preferences); the input slice is never mutated.
func Filter(dogs []domain.Dog, eff domain.EffectivePreferences) []domain.Dog {
	return FilterBreeds(FilterRadius(dogs, eff), eff)
}

// FilterRadius drops dogs farther than the requested radius. Skipped
// entirely when no zip codes were supplied. A dog without a precomputed
// distance passes through (fail-open): unknown distance is not grounds
// for exclusion.
func FilterRadius(dogs []domain.Dog, eff domain.EffectivePreferences) []domain.Dog {
	if len(eff.ZipCodes) == 0 {
		return dogs
	}
	out := make([]domain.Dog, 0, len(dogs))
	for _, d := range dogs {
		if d.Location.DistanceMi != nil && *d.Location.DistanceMi > eff.RadiusMi {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterBreeds removes excluded breeds first (exclusion is absolute, even
// when the dog also matches an include term), then keeps dogs that match
// at least one include term. No include terms means pass-through.
func FilterBreeds(dogs []domain.Dog, eff domain.EffectivePreferences) []domain.Dog {
	out := make([]domain.Dog, 0, len(dogs))
	for _, d := range dogs {
		if hit, _ := breed.DogBreedHit(d.Breeds, eff.ExcludeBreeds); hit {
			continue
		}
		if len(eff.IncludeBreeds) > 0 {
			if hit, _ := breed.DogBreedHit(d.Breeds, eff.IncludeBreeds); !hit {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
