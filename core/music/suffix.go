package music

import "strings"

// suffixAliases maps chord suffix spellings to their canonical form.
var suffixAliases = map[string]string{
	"sus2":   "2",
	"sus4":   "sus",
	"min":    "m",
	"mi":     "m",
	"-":      "m",
	"maj":    "",
	"M":      "",
	"maj7":   "ma7",
	"M7":     "ma7",
	"Δ":      "ma7",
	"Δ7":     "ma7",
	"△":      "ma7",
	"△7":     "ma7",
	"maj9":   "ma9",
	"M9":     "ma9",
	"min7":   "m7",
	"mi7":    "m7",
	"-7":     "m7",
	"min9":   "m9",
	"mi9":    "m9",
	"min6":   "m6",
	"mi6":    "m6",
	"o":      "dim",
	"°":      "dim",
	"o7":     "dim7",
	"°7":     "dim7",
	"ø":      "m7b5",
	"ø7":     "m7b5",
	"min7b5": "m7b5",
	"aug":    "+",
	"+5":     "+",
	"#5":     "+",
	"7sus4":  "7sus",
	"9sus4":  "9sus",
	"add2":   "2",
	"6add9":  "6/9",
	"69":     "6/9",
}

// NormalizeSuffix returns the canonical spelling of a chord suffix.
func NormalizeSuffix(suffix string) string {
	if canonical, ok := suffixAliases[suffix]; ok {
		return canonical
	}
	return suffix
}

// isMinorSuffix reports whether a suffix starts with a minor marker.
func isMinorSuffix(suffix string) bool {
	if strings.HasPrefix(suffix, "maj") || strings.HasPrefix(suffix, "ma") {
		return false
	}
	return strings.HasPrefix(suffix, "m") || strings.HasPrefix(suffix, "-")
}

// stripMinorMarker removes the leading minor marker from a suffix.
func stripMinorMarker(suffix string) string {
	for _, marker := range []string{"min", "mi", "m", "-"} {
		if strings.HasPrefix(suffix, marker) {
			return suffix[len(marker):]
		}
	}
	return suffix
}
