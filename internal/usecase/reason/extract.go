package reason

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/usecase/verify"
)

type reasoningPayload struct {
	Primary    string   `json:"primary"`
	Additional []string `json:"additional"`
	Concerns   []string `json:"concerns"`
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Extract locates and parses a structured reasoning payload embedded in
// arbitrary generated text: fenced blocks first, then every balanced
// object literal in order of appearance, each validated by parsing. ok is
// false when no candidate parses into a payload with a primary line.
func Extract(raw string) (domain.AIReasoning, bool) {
	for _, m := range fencedBlockRe.FindAllStringSubmatch(raw, -1) {
		if r, ok := parseCandidates(m[1]); ok {
			return r, true
		}
	}
	return parseCandidates(raw)
}

func parseCandidates(s string) (domain.AIReasoning, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		candidate, end := balancedObject(s[i:])
		if candidate == "" {
			break // unbalanced to end of input; later opens can't close either
		}
		if r, ok := parsePayload(candidate); ok {
			return r, true
		}
		i += end - 1 // loop increment lands on the byte after the object
	}
	return domain.AIReasoning{}, false
}

func parsePayload(candidate string) (domain.AIReasoning, bool) {
	var p reasoningPayload
	if err := json.Unmarshal([]byte(candidate), &p); err != nil {
		return domain.AIReasoning{}, false
	}
	if strings.TrimSpace(p.Primary) == "" {
		return domain.AIReasoning{}, false
	}
	return domain.AIReasoning{
		Primary:    strings.TrimSpace(p.Primary),
		Additional: p.Additional,
		Concerns:   p.Concerns,
	}, true
}

// balancedObject returns the shortest brace-balanced prefix of s (which
// must start at '{') and the index just past it, respecting JSON string
// literals and escapes. Returns "" when no balance is reached.
func balancedObject(s string) (string, int) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return s[:i+1], i + 1
			}
		}
	}
	return "", 0
}

// FromRaw shapes unparsable generated text into reasoning by truncation.
// Fence markers and stray braces are dropped first so the budget is spent
// on prose.
func FromRaw(raw string) domain.AIReasoning {
	s := strings.NewReplacer("```json", " ", "```", " ", "{", " ", "}", " ").Replace(raw)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return domain.AIReasoning{}
	}
	return domain.AIReasoning{Primary: verify.Truncate(s, domain.PrimaryMaxLen)}
}
