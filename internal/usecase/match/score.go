package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
)

// Score evaluates one dog against the effective preferences. Starts at
// 100 with no upper cap so exceptionally strong matches separate visibly;
// the final score floors at 0. Every bonus/penalty is scaled by the
// facet's origin weight and rounded per application.
func Score(dog domain.Dog, eff domain.EffectivePreferences) domain.DogAnalysis {
	s := scorer{score: baseScore}

	s.scoreSet(eff.Ages, dog.Age, "age", ageBonus, agePenalty)
	s.scoreSet(eff.Sizes, dog.Size, "size", sizeBonus, sizePenalty)
	s.scoreEnergy(eff, dog)
	s.scoreBreed(eff, dog)
	s.scoreTemperament(eff, dog)
	s.applyFlags(eff, dog)

	if s.score < 0 {
		s.score = 0
	}

	return domain.DogAnalysis{
		Dog:          dog,
		Score:        s.score,
		MatchedPrefs: s.matched,
		UnmetPrefs:   s.unmet,
	}
}

type scorer struct {
	score   int
	matched []string
	unmet   []domain.UnmetPref
}

func (s *scorer) add(delta float64, w float64) {
	s.score += int(math.Round(delta * w))
}

func (s *scorer) match(label string) {
	s.matched = append(s.matched, label)
}

func (s *scorer) miss(label, reason string) {
	s.unmet = append(s.unmet, domain.UnmetPref{Label: label, Reason: reason})
}

// scoreSet handles the symmetric bonus/penalty facets (age, size) with an
// OR-match over the requested value set.
func (s *scorer) scoreSet(facet domain.FacetValues, dogValue, label string, bonus, penalty int) {
	if !facet.IsSet() {
		return
	}
	w := originWeight[facet.Origin]
	if facet.Contains(dogValue) {
		s.add(float64(bonus), w)
		s.match(label)
		return
	}
	s.add(float64(-penalty), w)
	s.miss(label, fmt.Sprintf("wanted %s, dog is %s", strings.Join(facet.Values, " or "), dogValue))
}

// scoreEnergy uses an exact-equality test. A dog with no reported energy
// is recorded as unmet for transparency but takes no penalty: absence of
// data is not a mismatch.
func (s *scorer) scoreEnergy(eff domain.EffectivePreferences, dog domain.Dog) {
	if !eff.Energy.IsSet() {
		return
	}
	if dog.Energy == "" {
		s.miss("energy", "energy level unknown")
		return
	}
	w := originWeight[eff.Energy.Origin]
	if eff.Energy.Contains(dog.Energy) {
		s.add(energyBonus, w)
		s.match("energy")
		return
	}
	s.add(-energyPenalty, w)
	s.miss("energy", fmt.Sprintf("wanted %s energy, dog is %s", strings.Join(eff.Energy.Values, " or "), dog.Energy))
}

// scoreBreed applies a tier-graded bonus on a hit and a flat penalty on a
// miss. Breed terms come only from explicit input, so the user weight
// applies.
func (s *scorer) scoreBreed(eff domain.EffectivePreferences, dog domain.Dog) {
	if len(eff.IncludeBreeds) == 0 {
		return
	}
	w := originWeight[domain.OriginUser]
	if hit, tier := breed.DogBreedHit(dog.Breeds, eff.IncludeBreeds); hit {
		s.add(float64(breedTierBonus[tier]), w)
		s.match("breed")
		return
	}
	s.add(-breedMissPenalty, w)
	s.miss("breed", "no match for requested breeds")
}

// scoreTemperament blends explicit per-dog evidence with the breed prior:
// confidence = 0.6*evidence + 0.4*(prior/3), matched at >= 0.5. Bonuses
// and penalties sum across all requested traits, uncapped.
func (s *scorer) scoreTemperament(eff domain.EffectivePreferences, dog domain.Dog) {
	if !eff.Temperament.IsSet() {
		return
	}
	w := originWeight[eff.Temperament.Origin]
	for _, trait := range eff.Temperament.Values {
		if TemperamentMatched(dog, trait) {
			s.add(temperamentBonus, w)
			s.match("temperament: " + trait)
			continue
		}
		s.add(-temperamentPenalty, w)
		s.miss("temperament: "+trait, fmt.Sprintf("no evidence the dog is %s", trait))
	}
}

// TemperamentMatched is the blended-confidence test, exported for the
// fact pack builder which needs the same notion of "matched".
func TemperamentMatched(dog domain.Dog, trait string) bool {
	return temperamentConfidence(dog, trait) >= matchThreshold
}

func temperamentConfidence(dog domain.Dog, trait string) float64 {
	evidence := 0.0
	if dog.HasTemperament(trait) {
		evidence = 1.0
	}
	prior := breed.Prior(dog.Breeds, trait)
	return evidenceWeight*evidence + priorWeight*(prior/priorScaleMax)
}

// applyFlags adds the guidance-flag heuristic penalties. These are flat,
// independent, and cumulative; they are not origin-weighted because flags
// only ever come from guidance.
func (s *scorer) applyFlags(eff domain.EffectivePreferences, dog domain.Dog) {
	facts := dog.Facts

	if eff.HasFlag(domain.FlagLowMaintenance) {
		if dog.Age == domain.AgeBaby {
			s.score -= flagPuppyPenalty
			s.miss("low-maintenance", "puppies need training and constant attention")
		}
		if facts != nil && facts.GroomingLoad == domain.LevelHigh {
			s.score -= flagGroomingPenalty
			s.miss("low-maintenance", "this coat needs regular grooming")
		}
		if dog.Energy == domain.EnergyHigh {
			s.score -= flagEnergyPenalty
			s.miss("low-maintenance", "high energy dogs need daily exercise")
		}
	}

	if eff.HasFlag(domain.FlagQuietPreferred) && facts != nil && facts.Barky {
		s.score -= flagBarkyPenalty
		s.miss("quiet", "this breed tends to be vocal")
	}

	if eff.HasFlag(domain.FlagApartmentOK) && dog.Size == domain.SizeXLarge {
		s.score -= flagXLargePenalty
		s.miss("apartment", "extra-large dogs struggle in small spaces")
	}
}
