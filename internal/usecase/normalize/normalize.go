// Package normalize resolves raw adopter input into the effective
// preference model, tagging every facet with its origin.
package normalize

import (
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
	"github.com/pawmatch/pawmatch/internal/domain/guidance"
)

// Resolve merges explicit selections with guidance hints. Pure function:
// same input, same output, no side effects.
//
// Origin precedence per facet: user when the adopter supplied any explicit
// value (even if guidance also implies one), guidance when only free text
// implies a value, default otherwise. Values are always the de-duplicated
// union of explicit and hinted values.
func Resolve(p domain.UserPreferences) domain.EffectivePreferences {
	tokens := guidance.Tokenize(p.Guidance)
	hints := guidance.ExtractHints(tokens)

	eff := domain.EffectivePreferences{
		ZipCodes: p.ZipCodes,
		RadiusMi: p.RadiusMi,
	}

	eff.Ages = resolveFacet(p.Ages, hints.Ages)
	eff.Sizes = resolveFacet(p.Sizes, hints.Sizes)
	eff.Temperament = resolveFacet(p.Temperament, hints.Temperament)

	var explicitEnergy []string
	if p.Energy != "" {
		explicitEnergy = []string{p.Energy}
	}
	eff.Energy = resolveFacet(explicitEnergy, hints.Energy)

	var notes []string
	eff.IncludeBreeds, notes = breed.ExpandAll(p.BreedsInclude)
	eff.ExpansionNotes = append(eff.ExpansionNotes, notes...)
	eff.ExcludeBreeds, notes = breed.ExpandAll(p.BreedsExclude)
	eff.ExpansionNotes = append(eff.ExpansionNotes, notes...)

	if len(hints.Flags) > 0 {
		eff.Flags = make(map[domain.Flag]bool, len(hints.Flags))
		for _, f := range hints.Flags {
			eff.Flags[f] = true
		}
	}

	return eff
}

func resolveFacet(explicit, hinted []string) domain.FacetValues {
	values := dedupUnion(explicit, hinted)

	origin := domain.OriginDefault
	switch {
	case hasNonEmpty(explicit):
		origin = domain.OriginUser
	case len(hinted) > 0:
		origin = domain.OriginGuidance
	}

	return domain.FacetValues{Values: values, Origin: origin}
}

func hasNonEmpty(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func dedupUnion(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, v := range append(append([]string{}, a...), b...) {
		norm := strings.ToLower(strings.TrimSpace(v))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
