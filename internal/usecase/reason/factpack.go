package reason

import (
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
)

// Prior level at or above which a breed-level trait may be claimed
// tentatively ("tends to be X") with no direct evidence on the dog.
const tentativePriorMin = 2.0

// BuildFactPack derives the evidence the prompt may cite and the verifier
// checks against. Citable preferences are matched facets whose origin is
// not default: back-filled context must never be presented as something
// the adopter asked for. Direct traits come from per-dog evidence; traits
// with only a strong breed prior are claimable tentatively.
func BuildFactPack(a domain.DogAnalysis, eff domain.EffectivePreferences) domain.FactPack {
	pack := domain.FactPack{DirectTraits: make(map[string]bool)}

	for _, label := range a.MatchedPrefs {
		if labelOrigin(label, eff) != domain.OriginDefault {
			pack.Preferences = append(pack.Preferences, label)
		}
	}

	for _, t := range a.Dog.Temperament {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || pack.DirectTraits[t] {
			continue
		}
		pack.Traits = append(pack.Traits, t)
		pack.DirectTraits[t] = true
	}

	for _, trait := range eff.Temperament.Values {
		trait = strings.ToLower(trait)
		if pack.DirectTraits[trait] {
			continue
		}
		if breed.Prior(a.Dog.Breeds, trait) >= tentativePriorMin {
			pack.Traits = append(pack.Traits, trait)
		}
	}

	if f := a.Dog.Facts; f != nil && f.Hypoallergenic {
		pack.Traits = append(pack.Traits, "hypoallergenic")
		pack.DirectTraits["hypoallergenic"] = true
	}

	return pack
}

// labelOrigin maps a matched-preference label back to the facet that
// produced it. Breed terms only ever come from explicit input.
func labelOrigin(label string, eff domain.EffectivePreferences) domain.Origin {
	switch {
	case label == "age":
		return eff.Ages.Origin
	case label == "size":
		return eff.Sizes.Origin
	case label == "energy":
		return eff.Energy.Origin
	case label == "breed":
		return domain.OriginUser
	case strings.HasPrefix(label, "temperament: "):
		return eff.Temperament.Origin
	}
	return domain.OriginUser
}
