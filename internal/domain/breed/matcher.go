package breed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// Match tiers, most to least confident.
const (
	TierExact  = 1 // exact canonical name
	TierAlias  = 2 // known alias or family term
	TierFamily = 3 // substring containment against canonical names
	TierFuzzy  = 4 // edit-distance match (typos, misspellings)
	TierNgram  = 5 // bigram overlap fallback
)

// fuzzyMaxDistance is the edit-distance ceiling for tier 4. Short terms get
// a tighter bound so "pug" does not drift to "pom".
func fuzzyMaxDistance(term string) int {
	if len(term) < 6 {
		return 1
	}
	return 2
}

// ngramMinDice is the minimum bigram Dice coefficient for a tier-5 match.
const ngramMinDice = 0.45

// Expand resolves one user breed term through the five match tiers, in
// order, stopping at the first tier that produces candidates. An unknown
// term returns Tier 0 with an explanatory note, never an error.
func Expand(raw string) domain.ExpandedBreed {
	term := normalizeTerm(raw)
	if term == "" {
		return domain.ExpandedBreed{Raw: raw, Note: fmt.Sprintf("ignored empty breed term %q", raw)}
	}

	if name, ok := exactMatch(term); ok {
		return expanded(raw, []string{name}, TierExact, fmt.Sprintf("%q matched exactly", raw))
	}
	if names, ok := aliases[term]; ok {
		return expanded(raw, names, TierAlias,
			fmt.Sprintf("%q expanded to %s (known alias)", raw, strings.Join(names, ", ")))
	}
	if names := familyMatch(term); len(names) > 0 {
		return expanded(raw, names, TierFamily,
			fmt.Sprintf("%q matched breed family: %s", raw, strings.Join(names, ", ")))
	}
	if names := fuzzyMatch(term); len(names) > 0 {
		return expanded(raw, names, TierFuzzy,
			fmt.Sprintf("%q looked like a misspelling of %s", raw, strings.Join(names, ", ")))
	}
	if names := ngramMatch(term); len(names) > 0 {
		return expanded(raw, names, TierNgram,
			fmt.Sprintf("%q loosely resembled %s (low confidence)", raw, strings.Join(names, ", ")))
	}

	return domain.ExpandedBreed{Raw: raw, Note: fmt.Sprintf("no breed match for %q", raw)}
}

// ExpandAll expands every term and collects the per-term notes.
func ExpandAll(raws []string) ([]domain.ExpandedBreed, []string) {
	if len(raws) == 0 {
		return nil, nil
	}
	terms := make([]domain.ExpandedBreed, 0, len(raws))
	notes := make([]string, 0, len(raws))
	for _, raw := range raws {
		t := Expand(raw)
		terms = append(terms, t)
		notes = append(notes, t.Note)
	}
	return terms, notes
}

// DogBreedHit reports whether any of the dog's breed strings matches any
// expanded term, and the best (lowest-numbered) tier achieved. Ties break
// toward the lower tier number.
func DogBreedHit(dogBreeds []string, terms []domain.ExpandedBreed) (bool, int) {
	best := 0
	for _, term := range terms {
		if term.Tier == 0 {
			continue
		}
		if best != 0 && term.Tier >= best {
			continue
		}
		for _, name := range term.Canonical {
			if dogHasBreed(dogBreeds, name) {
				best = term.Tier
				break
			}
		}
	}
	return best != 0, best
}

func dogHasBreed(dogBreeds []string, canonicalName string) bool {
	want := strings.ToLower(canonicalName)
	for _, b := range dogBreeds {
		have := strings.ToLower(strings.TrimSpace(b))
		if have == "" {
			continue
		}
		// Containment either way covers feed strings like
		// "Labrador Retriever Mix" and bare family names.
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return true
		}
	}
	return false
}

func expanded(raw string, names []string, tier int, note string) domain.ExpandedBreed {
	return domain.ExpandedBreed{Raw: raw, Canonical: names, Tier: tier, Note: note}
}

func normalizeTerm(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")
}

func exactMatch(term string) (string, bool) {
	for _, name := range canonical {
		if strings.ToLower(name) == term {
			return name, true
		}
	}
	return "", false
}

// familyMatch finds canonical names containing the term or contained in it,
// e.g. "retriever" -> all retrievers, "german shepherd dog" -> "German Shepherd".
func familyMatch(term string) []string {
	var out []string
	for _, name := range canonical {
		low := strings.ToLower(name)
		if strings.Contains(low, term) || strings.Contains(term, low) {
			out = append(out, name)
		}
	}
	return out
}

// fuzzyMatch finds canonical names and alias keys within edit distance of
// the term, keeping only the closest candidates.
func fuzzyMatch(term string) []string {
	maxDist := fuzzyMaxDistance(term)
	bestDist := maxDist + 1
	var out []string

	consider := func(candidate string, expandsTo []string) {
		d := levenshtein.ComputeDistance(term, strings.ToLower(candidate))
		if d > maxDist || d > bestDist {
			return
		}
		if d < bestDist {
			bestDist = d
			out = out[:0]
		}
		out = append(out, expandsTo...)
	}

	for _, name := range canonical {
		consider(name, []string{name})
	}
	for key, names := range aliases {
		consider(key, names)
	}

	return dedupSorted(out)
}

// ngramMatch is the lowest-confidence fallback: bigram Dice overlap
// against canonical names, keeping the single best candidate.
func ngramMatch(term string) []string {
	termGrams := bigrams(term)
	if len(termGrams) == 0 {
		return nil
	}

	best := ""
	bestScore := ngramMinDice
	for _, name := range canonical {
		score := dice(termGrams, bigrams(strings.ToLower(name)))
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	if best == "" {
		return nil
	}
	return []string{best}
}

func bigrams(s string) map[string]int {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) < 2 {
		return nil
	}
	grams := make(map[string]int)
	for i := 0; i+2 <= len(s); i++ {
		grams[s[i:i+2]]++
	}
	return grams
}

func dice(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var common, totalA, totalB int
	for g, ca := range a {
		totalA += ca
		if cb, ok := b[g]; ok {
			if ca < cb {
				common += ca
			} else {
				common += cb
			}
		}
	}
	for _, cb := range b {
		totalB += cb
	}
	return 2 * float64(common) / float64(totalA+totalB)
}

func dedupSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
