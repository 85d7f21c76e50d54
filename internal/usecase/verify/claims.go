package verify

import (
	"regexp"
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// denyRule removes any sentence containing one of its tokens unless the
// guarding trait has direct per-dog evidence. Token matching, not
// semantics: a sentence mentioning allergies at all is assumed to be an
// allergy claim, because the cost of a false "hypoallergenic" far exceeds
// the cost of a dropped sentence.
type denyRule struct {
	trait  string
	tokens []string
}

var denyRules = []denyRule{
	{
		trait: "hypoallergenic",
		tokens: []string{
			"hypoallergenic",
			"allergy",
			"allergies",
			"allergen",
			"non-shedding",
			"doesn't shed",
			"does not shed",
			"won't shed",
		},
	},
	{
		trait:  "kid-friendly",
		tokens: []string{"great with kids", "good with children", "safe around kids", "safe around children"},
	},
	{
		trait:  "cat-friendly",
		tokens: []string{"good with cats", "great with cats", "fine with cats"},
	},
}

func scrubClaims(s string, pack domain.FactPack) string {
	for _, rule := range denyRules {
		if pack.IsDirect(rule.trait) {
			continue
		}
		s = dropSentences(s, func(sentence string) bool {
			low := strings.ToLower(sentence)
			for _, tok := range rule.tokens {
				if strings.Contains(low, tok) {
					return true
				}
			}
			return false
		})
	}
	return s
}

// traitWords is the vocabulary the certainty grammar inspects. Claims
// about traits outside this list pass through untouched; the deny rules
// above catch the ones that can do harm.
var traitWords = []string{"calm", "gentle", "playful", "affectionate", "independent", "protective", "quiet"}

type certaintyPatterns struct {
	definitive *regexp.Regexp
	tentative  *regexp.Regexp
}

var certainty = func() map[string]certaintyPatterns {
	m := make(map[string]certaintyPatterns, len(traitWords))
	for _, w := range traitWords {
		m[w] = certaintyPatterns{
			definitive: regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:a\s+|very\s+|really\s+)?` + w + `\b`),
			tentative:  regexp.MustCompile(`(?i)\btends?\s+to\s+be\s+(?:a\s+|very\s+|really\s+)?` + w + `\b`),
		}
	}
	return m
}()

// applyCertainty enforces the two-tier grammar for temperament claims:
// definitive phrasing ("is calm") only with direct evidence, tentative
// phrasing ("tends to be calm") when only a breed prior supports it, and
// no claim at all when neither does.
func applyCertainty(s string, pack domain.FactPack) string {
	for _, w := range traitWords {
		p := certainty[w]
		if !pack.AllowsTrait(w) {
			s = dropSentences(s, func(sentence string) bool {
				return p.definitive.MatchString(sentence) || p.tentative.MatchString(sentence)
			})
			continue
		}
		if pack.IsDirect(w) {
			s = p.tentative.ReplaceAllString(s, "is "+w)
			continue
		}
		s = p.definitive.ReplaceAllString(s, "tends to be "+w)
	}
	return s
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*\s*`)

// dropSentences removes every sentence for which match returns true and
// rejoins the rest.
func dropSentences(s string, match func(string) bool) string {
	parts := sentenceRe.FindAllString(s, -1)
	if len(parts) == 0 {
		return s
	}
	var b strings.Builder
	for _, sentence := range parts {
		if match(sentence) {
			continue
		}
		b.WriteString(sentence)
	}
	return strings.TrimSpace(b.String())
}
