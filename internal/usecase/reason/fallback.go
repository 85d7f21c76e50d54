package reason

import (
	"fmt"
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/usecase/verify"
)

// Concerns carried into template reasoning; the rest already live in
// unmetPrefs on the analysis itself.
const maxFallbackConcerns = 3

// Fallback builds deterministic template reasoning from the scoring
// evidence alone. Used when generation fails or times out; a candidate's
// explanation is never left empty.
func Fallback(a domain.DogAnalysis, pack domain.FactPack) domain.AIReasoning {
	name := a.Dog.Name
	if name == "" {
		name = "This dog"
	}

	var primary string
	switch {
	case len(pack.Preferences) >= 2:
		primary = fmt.Sprintf("%s matches your %s and %s preferences.",
			name, citeWord(pack.Preferences[0]), citeWord(pack.Preferences[1]))
	case len(pack.Preferences) == 1:
		primary = fmt.Sprintf("%s matches your %s preference.", name, citeWord(pack.Preferences[0]))
	default:
		primary = fmt.Sprintf("%s could be a match worth a closer look.", name)
	}

	r := domain.AIReasoning{Primary: verify.Truncate(primary, domain.PrimaryMaxLen)}

	for _, u := range a.UnmetPrefs {
		if len(r.Concerns) == maxFallbackConcerns {
			break
		}
		text := u.Reason
		if text == "" {
			text = u.Label
		}
		r.Concerns = append(r.Concerns, verify.Truncate(text, domain.ItemMaxLen))
	}

	return r
}

func citeWord(label string) string {
	if _, after, ok := strings.Cut(label, ": "); ok {
		return after
	}
	return label
}
