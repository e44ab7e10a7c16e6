package holdings

import "regexp"

// A token is either a complete quoted segment or a maximal run of
// non-space characters. Quoted segments keep comma-joined groups (multi
// accession numbers) atomic; the alternation order matters so the
// doubly-wrapped form "'...'" wins over a bare double-quoted segment.
var tokenRe = regexp.MustCompile(`"'[^"]+'"|"[^"]+"|'[^']+'|\S+`)

// Tokenize splits a healed raw string into its ordered token sequence.
// Surrounding quote characters are stripped from the stored text; order is
// the only structural signal the input carries and is preserved. Empty
// input yields an empty sequence.
func Tokenize(raw string) []string {
	if raw == "" {
		return nil
	}

	matches := tokenRe.FindAllString(raw, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, stripQuotes(m))
	}
	return tokens
}

// stripQuotes removes matching quote delimiters, unwrapping the
// pathological double-then-single wrapped form in two passes.
func stripQuotes(tok string) string {
	for len(tok) >= 2 {
		first, last := tok[0], tok[len(tok)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			tok = tok[1 : len(tok)-1]
			continue
		}
		break
	}
	return tok
}
