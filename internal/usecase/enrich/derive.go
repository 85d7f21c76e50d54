// Package enrich fills in optional dog facts the listing feed does not
// provide: shedding, grooming load, barkiness, hypoallergenic status, and
// an energy level, derived from breed reference data and listing text.
package enrich

import (
	"context"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/domain/breed"
	"github.com/pawmatch/pawmatch/internal/domain/guidance"
)

// Deriver is the synchronous enricher used on the matching path. It is
// pure and allocation-light; the heavier cached variant lives on the
// Worker.
type Deriver struct{}

// Apply implements match.Enricher over a copy of the input.
func (Deriver) Apply(_ context.Context, dogs []domain.Dog) []domain.Dog {
	out := make([]domain.Dog, len(dogs))
	copy(out, dogs)
	for i := range out {
		out[i] = Derive(out[i])
	}
	return out
}

// Derive fills missing facts on one dog. Fields the feed reported are
// never overwritten.
func Derive(d domain.Dog) domain.Dog {
	if d.Facts == nil {
		d.Facts = breed.DeriveFacts(d.Breeds)
	}

	if d.Energy == "" {
		if e := energyFromDescription(d.Description); e != "" {
			d.Energy = e
		} else if len(d.Breeds) > 0 {
			d.Energy = breed.EnergyPrior(d.Breeds)
		}
	}

	return d
}

// energyFromDescription scans listing text with the same keyword rules
// used for adopter guidance. Shelter blurbs use the same vocabulary
// ("high energy", "couch potato"), and listing-stated energy beats a
// breed-level prior.
func energyFromDescription(text string) string {
	if text == "" {
		return ""
	}
	t := guidance.Tokenize(text)
	switch {
	case t.EnergyHigh:
		return domain.EnergyHigh
	case t.EnergyLow:
		return domain.EnergyLow
	case t.EnergyMedium:
		return domain.EnergyMedium
	}
	return ""
}
