// Package publisher splits free-text publication statements (MARC 260
// style: "NEW DELHI : PRENTICE HALL, 1998") into place, publisher and
// year components.
//
// Splitting quality is a pluggable capability: the heuristic
// implementation here is the default, and a higher-quality annotator can
// be swapped in by configuration without the core depending on it.
package publisher

// Splitter extracts place, publisher and publication year from one
// free-text publication statement. Implementations return zero values for
// components they cannot recover; they never fail the record.
type Splitter interface {
	Split(text string) (place, publisher string, year int)
}

// Noop is a Splitter that recovers nothing. It stands in when publication
// splitting is disabled.
type Noop struct{}

// Split implements Splitter.
func (Noop) Split(string) (string, string, int) {
	return "", "", 0
}
