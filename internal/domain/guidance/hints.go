package guidance

import "github.com/pawmatch/pawmatch/internal/domain"

// Hints are flat per-category lists derived from Tokens, consumed by the
// preference normalizer. Multiple hints within one category are legal and
// combine with OR semantics downstream.
type Hints struct {
	Ages        []string
	Sizes       []string
	Energy      []string
	Temperament []string
	Flags       []domain.Flag
}

// ExtractHints flattens tokens into hint lists.
func ExtractHints(t Tokens) Hints {
	var h Hints

	add := func(set bool, list *[]string, v string) {
		if set {
			*list = append(*list, v)
		}
	}

	add(t.AgeBaby, &h.Ages, domain.AgeBaby)
	add(t.AgeYoung, &h.Ages, domain.AgeYoung)
	add(t.AgeAdult, &h.Ages, domain.AgeAdult)
	add(t.AgeSenior, &h.Ages, domain.AgeSenior)

	add(t.SizeSmall, &h.Sizes, domain.SizeSmall)
	add(t.SizeMedium, &h.Sizes, domain.SizeMedium)
	add(t.SizeLarge, &h.Sizes, domain.SizeLarge)
	add(t.SizeXLarge, &h.Sizes, domain.SizeXLarge)

	add(t.EnergyLow, &h.Energy, domain.EnergyLow)
	add(t.EnergyMedium, &h.Energy, domain.EnergyMedium)
	add(t.EnergyHigh, &h.Energy, domain.EnergyHigh)

	add(t.TempCalm, &h.Temperament, "calm")
	add(t.TempGentle, &h.Temperament, "gentle")
	add(t.TempPlayful, &h.Temperament, "playful")
	add(t.TempAffectionate, &h.Temperament, "affectionate")
	add(t.TempIndependent, &h.Temperament, "independent")
	add(t.TempProtective, &h.Temperament, "protective")

	if t.LowMaintenance {
		h.Flags = append(h.Flags, domain.FlagLowMaintenance)
	}
	if t.FirstTimeOwner {
		h.Flags = append(h.Flags, domain.FlagFirstTimeOwner)
	}
	if t.ApartmentOK {
		h.Flags = append(h.Flags, domain.FlagApartmentOK)
	}
	if t.QuietPreferred {
		h.Flags = append(h.Flags, domain.FlagQuietPreferred)
	}
	if t.KidFriendly {
		h.Flags = append(h.Flags, domain.FlagKidFriendly)
	}
	if t.CatFriendly {
		h.Flags = append(h.Flags, domain.FlagCatFriendly)
	}

	return h
}
