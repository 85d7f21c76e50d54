package reason

import (
	"testing"

	"github.com/pawmatch/pawmatch/internal/domain"
)

func TestBuildFactPack_DropsDefaultOriginMatches(t *testing.T) {
	eff := domain.EffectivePreferences{
		Ages:  domain.FacetValues{Values: []string{domain.AgeAdult}, Origin: domain.OriginUser},
		Sizes: domain.FacetValues{Values: []string{domain.SizeMedium}, Origin: domain.OriginDefault},
	}
	a := domain.DogAnalysis{MatchedPrefs: []string{"age", "size"}}

	pack := BuildFactPack(a, eff)
	if len(pack.Preferences) != 1 || pack.Preferences[0] != "age" {
		t.Errorf("preferences = %v, want only the user-origin facet", pack.Preferences)
	}
}

func TestBuildFactPack_GuidanceOriginIsCitable(t *testing.T) {
	eff := domain.EffectivePreferences{
		Energy: domain.FacetValues{Values: []string{domain.EnergyLow}, Origin: domain.OriginGuidance},
	}
	a := domain.DogAnalysis{MatchedPrefs: []string{"energy"}}

	pack := BuildFactPack(a, eff)
	if len(pack.Preferences) != 1 {
		t.Errorf("preferences = %v, guidance-origin matches must be citable", pack.Preferences)
	}
}

func TestBuildFactPack_DirectTraitsFromDogEvidence(t *testing.T) {
	a := domain.DogAnalysis{
		Dog: domain.Dog{Temperament: []string{"Gentle", "playful"}},
	}

	pack := BuildFactPack(a, domain.EffectivePreferences{})
	if !pack.IsDirect("gentle") || !pack.IsDirect("playful") {
		t.Errorf("direct traits = %v, want lowercased dog evidence", pack.DirectTraits)
	}
	if !pack.AllowsTrait("gentle") {
		t.Error("direct trait must be claimable")
	}
}

func TestBuildFactPack_StrongPriorAllowsTentativeClaim(t *testing.T) {
	eff := domain.EffectivePreferences{
		Temperament: domain.FacetValues{Values: []string{"gentle"}, Origin: domain.OriginUser},
	}
	a := domain.DogAnalysis{Dog: domain.Dog{Breeds: []string{"Golden Retriever"}}}

	pack := BuildFactPack(a, eff)
	if !pack.AllowsTrait("gentle") {
		t.Error("strong breed prior should allow a tentative claim")
	}
	if pack.IsDirect("gentle") {
		t.Error("prior-only trait must not be marked direct")
	}
}

func TestBuildFactPack_WeakPriorForbidsClaim(t *testing.T) {
	eff := domain.EffectivePreferences{
		Temperament: domain.FacetValues{Values: []string{"independent"}, Origin: domain.OriginUser},
	}
	a := domain.DogAnalysis{Dog: domain.Dog{Breeds: []string{"Golden Retriever"}}}

	pack := BuildFactPack(a, eff)
	if pack.AllowsTrait("independent") {
		t.Error("weak prior with no evidence must not allow the claim")
	}
}

func TestBuildFactPack_HypoallergenicOnlyWithDerivedFact(t *testing.T) {
	with := domain.DogAnalysis{Dog: domain.Dog{Facts: &domain.DerivedFacts{Hypoallergenic: true}}}
	pack := BuildFactPack(with, domain.EffectivePreferences{})
	if !pack.IsDirect("hypoallergenic") {
		t.Error("derived hypoallergenic fact must be a direct trait")
	}

	without := domain.DogAnalysis{Dog: domain.Dog{Facts: &domain.DerivedFacts{}}}
	pack = BuildFactPack(without, domain.EffectivePreferences{})
	if pack.AllowsTrait("hypoallergenic") {
		t.Error("hypoallergenic must not be claimable without the fact")
	}
}
