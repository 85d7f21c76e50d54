package match

import "github.com/pawmatch/pawmatch/internal/domain"

// Scoring constants. The magnitudes are empirically tuned; their relative
// values are load-bearing, so any change here is a behavioral change that
// needs re-validation against the scorer scenarios in the tests.
const (
	baseScore = 100

	ageBonus   = 10
	agePenalty = 15

	sizeBonus   = 10
	sizePenalty = 15

	energyBonus   = 10
	energyPenalty = 20

	breedMissPenalty = 25

	temperamentBonus   = 10
	temperamentPenalty = 15

	// Blended temperament confidence: w_e*evidence + w_p*(prior/3),
	// matched when >= matchThreshold.
	evidenceWeight = 0.6
	priorWeight    = 0.4
	priorScaleMax  = 3.0
	matchThreshold = 0.5

	// Guidance-flag penalties, independent and cumulative.
	flagPuppyPenalty    = 15
	flagGroomingPenalty = 10
	flagEnergyPenalty   = 10
	flagBarkyPenalty    = 15
	flagXLargePenalty   = 10
)

// breedTierBonus rewards more confident breed matches more.
var breedTierBonus = map[int]int{1: 22, 2: 18, 3: 14, 4: 10, 5: 6}

// originWeight scales facet bonuses and penalties by provenance.
var originWeight = map[domain.Origin]float64{
	domain.OriginUser:     1.0,
	domain.OriginGuidance: 0.7,
	domain.OriginDefault:  0.5,
}
