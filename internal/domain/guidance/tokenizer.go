// Package guidance turns free-text adopter guidance into deterministic
// boolean tokens and flat hint lists. Tokenization is pure and total:
// no input can cause an error, and unmatched text yields an all-false
// token structure.
package guidance

import (
	"regexp"
	"strings"
)

// Tokens is the fixed-shape result of tokenizing guidance text.
type Tokens struct {
	AgeBaby   bool
	AgeYoung  bool
	AgeAdult  bool
	AgeSenior bool

	SizeSmall  bool
	SizeMedium bool
	SizeLarge  bool
	SizeXLarge bool

	EnergyLow    bool
	EnergyMedium bool
	EnergyHigh   bool

	TempCalm         bool
	TempGentle       bool
	TempPlayful      bool
	TempAffectionate bool
	TempIndependent  bool
	TempProtective   bool

	LowMaintenance bool
	FirstTimeOwner bool
	ApartmentOK    bool
	QuietPreferred bool
	KidFriendly    bool
	CatFriendly    bool
}

// rule binds a set of keyword patterns to one token. Rules are an ordered,
// data-driven table so categories can be extended and tested independently
// of pipeline control flow.
type rule struct {
	patterns []*regexp.Regexp
	apply    func(*Tokens)
}

// keywords compiles case-insensitive, word-bounded patterns. Word bounds
// keep short keywords like "cat" from firing inside "catch".
func keywords(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

var rules = []rule{
	// Age
	{keywords("puppy", "puppies", "pup"), func(t *Tokens) { t.AgeBaby = true }},
	{keywords("young dog", "young adult", "juvenile"), func(t *Tokens) { t.AgeYoung = true }},
	{keywords("adult dog", "grown dog", "full grown"), func(t *Tokens) { t.AgeAdult = true }},
	{keywords("senior", "older dog", "elderly"), func(t *Tokens) { t.AgeSenior = true }},

	// Size
	{keywords("small", "tiny", "little", "lap dog", "lapdog"), func(t *Tokens) { t.SizeSmall = true }},
	{keywords("medium", "mid-sized", "mid size", "midsize"), func(t *Tokens) { t.SizeMedium = true }},
	{keywords("big", "large"), func(t *Tokens) { t.SizeLarge = true }},
	{keywords("giant", "extra large", "extra-large", "huge"), func(t *Tokens) { t.SizeXLarge = true }},

	// Energy
	{keywords("laid back", "laid-back", "chill", "low energy", "low-energy", "couch potato", "mellow"),
		func(t *Tokens) { t.EnergyLow = true }},
	{keywords("moderate energy", "medium energy", "some exercise"),
		func(t *Tokens) { t.EnergyMedium = true }},
	{keywords("high energy", "high-energy", "energetic", "very active", "running partner", "hiking buddy"),
		func(t *Tokens) { t.EnergyHigh = true }},

	// Temperament
	{keywords("calm", "relaxed", "easygoing", "easy-going"), func(t *Tokens) { t.TempCalm = true }},
	{keywords("gentle", "sweet", "soft-natured"), func(t *Tokens) { t.TempGentle = true }},
	{keywords("playful", "fun-loving", "goofy"), func(t *Tokens) { t.TempPlayful = true }},
	{keywords("affectionate", "cuddly", "loving", "snuggly"), func(t *Tokens) { t.TempAffectionate = true }},
	{keywords("independent", "self-sufficient"), func(t *Tokens) { t.TempIndependent = true }},
	{keywords("protective", "watchdog", "guard dog"), func(t *Tokens) { t.TempProtective = true }},

	// Flags
	{keywords("minimal grooming", "low maintenance", "low-maintenance", "easy to care for", "minimal upkeep"),
		func(t *Tokens) { t.LowMaintenance = true }},
	{keywords("first-time owner", "first time owner", "first-time owners", "first time owners", "first dog", "never owned"),
		func(t *Tokens) { t.FirstTimeOwner = true }},
	{keywords("apartment", "condo", "no yard", "small space"), func(t *Tokens) { t.ApartmentOK = true }},
	{keywords("quiet", "doesn't bark", "not barky", "noise-sensitive", "thin walls"),
		func(t *Tokens) { t.QuietPreferred = true }},
	{keywords("kids", "children", "toddler", "toddlers", "kid-friendly", "family dog"),
		func(t *Tokens) { t.KidFriendly = true }},
	{keywords("cat", "cats", "cat-friendly", "feline"), func(t *Tokens) { t.CatFriendly = true }},
}

// Tokenize extracts boolean tokens from guidance text. Case-insensitive
// keyword matching over the rule table; empty or garbage input yields the
// zero value.
func Tokenize(text string) Tokens {
	var t Tokens
	if text == "" {
		return t
	}
	low := strings.ToLower(text)
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(low) {
				r.apply(&t)
				break
			}
		}
	}
	return t
}
