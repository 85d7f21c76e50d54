package verify

import "strings"

// Truncate enforces a hard character budget. Text already within budget
// passes through untouched; overruns are cut at the last word or
// punctuation boundary that fits and closed with terminal punctuation,
// never mid-word.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	// Reserve one character for the closing period. The budget counts
	// runes, not bytes, so multibyte text is never cut mid-character.
	cut := string(runes[:max-1])
	if i := strings.LastIndexAny(cut, " .,;:!?"); i > 0 {
		cut = cut[:i]
	}
	cut = strings.TrimRight(cut, " ,;:")
	if cut == "" {
		cut = strings.TrimRight(string(runes[:max-1]), " ,;:")
	}

	if !hasTerminalPunctuation(cut) {
		cut += "."
	}
	return cut
}

func hasTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
