package plan

import "strings"

// SplitTop splits s on sep, ignoring separators nested inside parentheses,
// square brackets, curly braces, or double quotes. Leading and trailing
// whitespace is trimmed from each part and empty parts are dropped.
//
// This is the shared tokenizer for every property parser: plan property
// strings routinely nest lists ("[(a@0, b@0)]", "Hash([a, b], 4)") and a
// naive strings.Split would tear them apart.
func SplitTop(s string, sep rune) []string {
	var (
		parts    []string
		depth    int
		inQuote  bool
		start    int
		prevIsBS bool
	)

	for i, r := range s {
		switch {
		case inQuote:
			if r == '"' && !prevIsBS {
				inQuote = false
			}
		case r == '"':
			inQuote = true
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case r == sep && depth == 0:
			if p := strings.TrimSpace(s[start:i]); p != "" {
				parts = append(parts, p)
			}
			start = i + 1
		}
		prevIsBS = r == '\\' && !prevIsBS
	}

	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// StripBrackets removes one matching pair of surrounding brackets
// ("[...]", "(...)" or "{...}") and trims whitespace. Strings without a
// surrounding pair are returned trimmed but otherwise unchanged.
func StripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	pairs := map[byte]byte{'[': ']', '(': ')', '{': '}'}
	closer, ok := pairs[s[0]]
	if !ok || s[len(s)-1] != closer {
		return s
	}
	// Only strip when the opening bracket actually matches the final one:
	// "[a], [b]" must stay intact.
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case s[0]:
			depth++
		case closer:
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}
