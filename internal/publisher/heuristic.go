package publisher

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRe  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	noiseRe = regexp.MustCompile(`\b(NONE|NULL|X+|\|+)\b`)
)

// placeFixes corrects the spellings decades of manual entry left behind:
// concatenated city names and renamed Indian cities.
var placeFixes = map[string]string{
	"NEWDELHI":  "NEW DELHI",
	"N.DELHI":   "NEW DELHI",
	"MADRAS":    "CHENNAI",
	"BOMBAY":    "MUMBAI",
	"CALCUTTA":  "KOLKATA",
	"BANGALORE": "BENGALURU",
}

// Heuristic is the default Splitter: a year regex followed by delimiter
// splitting. It trades recall for zero dependencies.
type Heuristic struct{}

// NewHeuristic creates the default heuristic splitter.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Split implements Splitter.
func (h *Heuristic) Split(text string) (string, string, int) {
	if text == "" {
		return "", "", 0
	}

	year := 0
	clean := strings.TrimSpace(text)
	if m := yearRe.FindString(clean); m != "" {
		year, _ = strconv.Atoi(m)
		clean = strings.TrimSpace(strings.Replace(clean, m, "", 1))
	}

	clean = strings.TrimRight(clean, ".,;: ")
	clean = strings.TrimSpace(noiseRe.ReplaceAllString(clean, ""))
	clean = fixPlaceTypos(clean)
	clean = strings.Trim(clean, " ,.-")
	if clean == "" {
		return "", "", year
	}

	var place, pub string
	switch {
	case strings.Contains(clean, ":"):
		parts := strings.SplitN(clean, ":", 2)
		place, pub = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	case strings.Contains(clean, ","):
		parts := strings.SplitN(clean, ",", 2)
		place, pub = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	default:
		parts := strings.SplitN(clean, " ", 2)
		place = parts[0]
		if len(parts) > 1 {
			pub = strings.TrimSpace(parts[1])
		}
	}

	place = strings.TrimRight(place, ".,")
	pub = strings.TrimRight(pub, ".,")
	return place, pub, year
}

func fixPlaceTypos(text string) string {
	upper := strings.ToUpper(text)
	for bad, good := range placeFixes {
		if idx := strings.Index(upper, bad); idx >= 0 {
			text = text[:idx] + good + text[idx+len(bad):]
			upper = strings.ToUpper(text)
		}
	}
	return text
}
