// Package verify fact-checks generated reasoning text against match
// evidence. The checks are token-level, not semantic: a deny-list of
// harmful claims, a two-tier certainty grammar for temperament claims,
// preference-citation enforcement, and hard length budgets. On any
// ambiguity the rewrite deletes or softens rather than risk a false
// assertion.
package verify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// Rewrite returns a cleaned copy of generated reasoning. Claim scrubbing
// and certainty rewriting run per field, citation enforcement runs on the
// primary text, and the length budgets apply last so nothing reintroduces
// an overrun.
func Rewrite(r domain.AIReasoning, pack domain.FactPack) domain.AIReasoning {
	out := domain.AIReasoning{
		Primary:    rewriteField(r.Primary, pack),
		Additional: rewriteItems(r.Additional, pack),
		Concerns:   rewriteItems(r.Concerns, pack),
	}

	out.Primary = enforceCitation(out.Primary, pack)
	out.Primary = Truncate(out.Primary, domain.PrimaryMaxLen)

	if len(out.Additional) > domain.MaxAdditional {
		out.Additional = out.Additional[:domain.MaxAdditional]
	}

	return out
}

func rewriteField(s string, pack domain.FactPack) string {
	s = scrubClaims(s, pack)
	s = applyCertainty(s, pack)
	return strings.TrimSpace(s)
}

func rewriteItems(items []string, pack domain.FactPack) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = rewriteField(item, pack)
		if item == "" {
			continue
		}
		out = append(out, Truncate(item, domain.ItemMaxLen))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// enforceCitation requires the primary text to cite at least one allowed
// preference when any exist; a citation sentence is appended if the text
// cites none. When no preferences exist, preference-sounding phrases are
// stripped instead of left dangling.
func enforceCitation(primary string, pack domain.FactPack) string {
	if len(pack.Preferences) == 0 {
		return stripPreferencePhrases(primary)
	}
	if primary == "" {
		return primary
	}

	for _, pref := range pack.Preferences {
		if citesToken(primary, citationToken(pref)) {
			return primary
		}
	}

	// Make room for the citation sentence inside the primary budget, so
	// the final length pass cannot cut it back out.
	suffix := " Matches your " + citationToken(pack.Preferences[0]) + " preference."
	if budget := domain.PrimaryMaxLen - utf8.RuneCountInString(suffix); utf8.RuneCountInString(primary) > budget {
		primary = Truncate(primary, budget)
	}
	if !hasTerminalPunctuation(primary) {
		primary += "."
	}
	return primary + suffix
}

// citesToken reports whether text mentions token as a whole word, so a
// token like "age" buried inside "average" does not count as a citation.
func citesToken(text, token string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
	return re.MatchString(text)
}

// citationToken extracts the citable word from a preference label:
// "temperament: gentle" cites as "gentle", plain labels cite as-is.
func citationToken(label string) string {
	if _, after, ok := strings.Cut(label, ": "); ok {
		return after
	}
	return label
}

var preferencePhrases = []string{
	"matches your preference",
	"matches your preferences",
	"fits your needs",
	"meets your criteria",
	"everything you asked for",
	"exactly what you wanted",
}

func stripPreferencePhrases(s string) string {
	return dropSentences(s, func(sentence string) bool {
		low := strings.ToLower(sentence)
		for _, p := range preferencePhrases {
			if strings.Contains(low, p) {
				return true
			}
		}
		return false
	})
}
