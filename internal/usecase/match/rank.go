package match

import (
	"math"
	"sort"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// Rank orders analyses highest first by (1) score, (2) matched-preference
// count — rewarding facet breadth over one large single-facet bonus —
// and (3) distance, missing distance sorting last. The sort is stable and
// operates over a copy; the caller's ordering is never mutated.
func Rank(analyses []domain.DogAnalysis) []domain.DogAnalysis {
	ranked := make([]domain.DogAnalysis, len(analyses))
	copy(ranked, analyses)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.MatchedPrefs) != len(b.MatchedPrefs) {
			return len(a.MatchedPrefs) > len(b.MatchedPrefs)
		}
		return distanceOf(a) < distanceOf(b)
	})

	return ranked
}

// TopMatches returns the first n of an already-ranked slice.
func TopMatches(ranked []domain.DogAnalysis, n int) []domain.DogAnalysis {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func distanceOf(a domain.DogAnalysis) float64 {
	if a.Dog.Location.DistanceMi == nil {
		return math.Inf(1)
	}
	return *a.Dog.Location.DistanceMi
}
