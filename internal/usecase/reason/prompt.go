package reason

import (
	"fmt"
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// BuildPrompt renders the constrained generation request for one analysis.
// The prompt names exactly what may be cited and what must be surfaced as
// a concern; the verifier still re-checks the output, since generators do
// not reliably honor instructions.
func BuildPrompt(a domain.DogAnalysis, pack domain.FactPack) string {
	var b strings.Builder

	b.WriteString("You write short adoption-match explanations for one shelter dog.\n\n")

	fmt.Fprintf(&b, "Dog: %s\n", a.Dog.Name)
	if len(a.Dog.Breeds) > 0 {
		fmt.Fprintf(&b, "Breeds: %s\n", strings.Join(a.Dog.Breeds, ", "))
	}
	writeAttr(&b, "Age", a.Dog.Age)
	writeAttr(&b, "Size", a.Dog.Size)
	writeAttr(&b, "Energy", a.Dog.Energy)
	if len(pack.Traits) > 0 {
		fmt.Fprintf(&b, "Known traits: %s\n", strings.Join(pack.Traits, ", "))
	}

	if len(pack.Preferences) > 0 {
		fmt.Fprintf(&b, "\nAdopter preferences this dog matched: %s\n", strings.Join(pack.Preferences, "; "))
		b.WriteString("Cite only these preferences. Do not mention any preference not in this list.\n")
	} else {
		b.WriteString("\nThe adopter stated no preferences this dog matched. Do not claim the dog matches any preference.\n")
	}

	if len(a.UnmetPrefs) > 0 {
		unmet := make([]string, len(a.UnmetPrefs))
		for i, u := range a.UnmetPrefs {
			unmet[i] = u.String()
		}
		fmt.Fprintf(&b, "Preferences this dog did not meet: %s\n", strings.Join(unmet, "; "))
		b.WriteString("Mention these honestly as concerns. Never hide them.\n")
	}

	fmt.Fprintf(&b,
		"\nRespond with only a JSON object, no other text:\n"+
			`{"primary": "...", "additional": ["..."], "concerns": ["..."]}`+"\n"+
			"primary is at most %d characters. additional has at most %d items of at most %d characters each. "+
			"Each concern is at most %d characters. Do not claim traits absent from the known traits list.\n",
		domain.PrimaryMaxLen, domain.MaxAdditional, domain.ItemMaxLen, domain.ItemMaxLen)

	return b.String()
}

func writeAttr(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}
