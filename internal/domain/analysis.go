package domain

// Reasoning length budgets enforced by the verifier.
const (
	PrimaryMaxLen = 150
	ItemMaxLen    = 50
	MaxAdditional = 2
	MaxTopMatches = 3
)

// UnmetPref is a preference the dog did not satisfy, with the reason kept
// for explanation ("age: wanted young or adult, dog is senior").
type UnmetPref struct {
	Label  string
	Reason string
}

func (u UnmetPref) String() string {
	if u.Reason == "" {
		return u.Label
	}
	return u.Label + ": " + u.Reason
}

// AIReasoning is the generated explanation for one match. Produced by the
// reasoning generator and mutated only by the verifier's rewrite pass.
type AIReasoning struct {
	Primary    string
	Additional []string
	Concerns   []string
}

// DogAnalysis is the per-dog output of a scoring pass. Created fresh per
// pass and never mutated afterwards, only replaced.
type DogAnalysis struct {
	Dog          Dog
	Score        int
	MatchedPrefs []string
	UnmetPrefs   []UnmetPref
	Reasons      AIReasoning
}

// FactPack is the evidence the verifier checks generated text against:
// the preference strings the text may cite and the dog traits it may claim.
// DirectTraits marks traits with direct per-dog evidence; traits present
// in Traits but not in DirectTraits are only inferred from breed priors.
type FactPack struct {
	Preferences  []string
	Traits       []string
	DirectTraits map[string]bool
}

// AllowsTrait reports whether the trait may be claimed at all.
func (f FactPack) AllowsTrait(trait string) bool {
	for _, t := range f.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// IsDirect reports whether the trait has direct per-dog evidence.
func (f FactPack) IsDirect(trait string) bool { return f.DirectTraits[trait] }

// MatchingResults is the terminal output of the pipeline.
type MatchingResults struct {
	TopMatches     []DogAnalysis
	AllMatches     []DogAnalysis
	ExpansionNotes []string
	Err            string
}
