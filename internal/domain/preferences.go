package domain

import (
	"fmt"
	"strings"
)

// Flag is a guidance-only boolean preference. Flags are sparse: absent
// means false, and only true flags are carried.
type Flag string

// Guidance flags.
const (
	FlagLowMaintenance Flag = "lowMaintenance"
	FlagFirstTimeOwner Flag = "firstTimeOwner"
	FlagApartmentOK    Flag = "apartmentOk"
	FlagQuietPreferred Flag = "quietPreferred"
	FlagKidFriendly    Flag = "kidFriendly"
	FlagCatFriendly    Flag = "catFriendly"
)

// UserPreferences is the raw adopter input for one search request.
// Immutable once received.
type UserPreferences struct {
	ZipCodes      []string
	RadiusMi      float64
	Ages          []string
	Sizes         []string
	Energy        string
	Temperament   []string
	BreedsInclude []string
	BreedsExclude []string
	Guidance      string
}

// Validate checks structural validity of the top-level input. This is the
// only fatal condition in the pipeline; everything downstream degrades.
func (p UserPreferences) Validate() error {
	if len(p.ZipCodes) > 0 && p.RadiusMi <= 0 {
		return fmt.Errorf("%w: radiusMi must be positive when zip codes are given", ErrInvalidPreferences)
	}
	if p.RadiusMi < 0 {
		return fmt.Errorf("%w: radiusMi must not be negative", ErrInvalidPreferences)
	}
	return nil
}

// FacetValues is a resolved multi-value preference facet with provenance.
// Values combine with OR semantics when matched against a dog.
type FacetValues struct {
	Values []string
	Origin Origin
}

// IsSet reports whether the facet carries any value.
func (f FacetValues) IsSet() bool { return len(f.Values) > 0 }

// Contains reports whether v is among the facet values (case-insensitive).
func (f FacetValues) Contains(v string) bool {
	for _, x := range f.Values {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

// EffectivePreferences is the resolved preference model: every facet
// carries both its value set and the origin it was resolved from.
type EffectivePreferences struct {
	ZipCodes    []string
	RadiusMi    float64
	Ages        FacetValues
	Sizes       FacetValues
	Energy      FacetValues
	Temperament FacetValues

	// IncludeBreeds and ExcludeBreeds hold expanded terms; the types live
	// in the breed package, stored here as opaque canonical-name sets with
	// tiers. See internal/domain/breed.
	IncludeBreeds []ExpandedBreed
	ExcludeBreeds []ExpandedBreed

	ExpansionNotes []string
	Flags          map[Flag]bool
}

// ExpandedBreed is one user breed term resolved to canonical names.
// Tier 0 means the term matched nothing.
type ExpandedBreed struct {
	Raw       string
	Canonical []string
	Tier      int
	Note      string
}

// HasFlag reports whether a guidance flag is set.
func (e EffectivePreferences) HasFlag(f Flag) bool { return e.Flags[f] }
