package schema

import (
	"strings"
	"unicode"
)

// AbbreviateAuthor shortens "Ada Lovelace" to "Ada L" for narrow table
// columns. Single-word names and bot accounts pass through unchanged.
func AbbreviateAuthor(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "[bot]") {
		return strings.Join(strings.Fields(trimmed), " ")
	}

	trimmed = strings.Trim(trimmed, "()\"'`")
	var parts []string
	for _, p := range strings.Fields(trimmed) {
		p = strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
		})
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch {
	case len(parts) >= 2:
		initial := []rune(parts[len(parts)-1])
		return parts[0] + " " + string(initial[0])
	case len(parts) == 1:
		return parts[0]
	default:
		return trimmed
	}
}
