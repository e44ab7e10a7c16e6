package holdings

import (
	"regexp"
	"strings"
)

// Spreadsheet round-trips encode long identifiers as scientific-notation
// floats ("9.78812E+12"). The healer expands every such substring back to a
// plain integer string before tokenization.
var scientificNotationRe = regexp.MustCompile(`(\d)\.(\d+)[Ee]\+(\d+)`)

// Heal replaces scientific-notation substrings with their expanded integer
// form. Healing is idempotent (healed text contains no exponent markers)
// and substrings that fail to expand cleanly are left exactly as found.
func Heal(text string) string {
	if text == "" {
		return text
	}
	return scientificNotationRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := scientificNotationRe.FindStringSubmatch(m)
		expanded, ok := expandMantissa(sub[1], sub[2], sub[3])
		if !ok {
			return m
		}
		return expanded
	})
}

// expandMantissa shifts the decimal point of lead.frac right by exp digits.
// Works on digit strings directly so 13-digit identifiers survive without
// float rounding. Fails (ok=false) on absurd exponents rather than
// producing a bogus value.
func expandMantissa(lead, frac, exp string) (string, bool) {
	shift := 0
	for _, r := range exp {
		shift = shift*10 + int(r-'0')
		if shift > 64 {
			return "", false
		}
	}

	digits := lead + frac
	// Decimal point sits after the first digit; shifting right by the
	// exponent leaves len(frac)-shift fractional digits.
	if shift >= len(frac) {
		return digits + strings.Repeat("0", shift-len(frac)), true
	}
	// Exponent smaller than the fraction: truncate the leftover fraction,
	// matching integer conversion of the original float.
	return digits[:1+shift], true
}
