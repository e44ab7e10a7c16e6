package holdings

import "strings"

// Options is the full configuration surface of the classifier. Every knob
// is data: changing one must never require touching the stage order or the
// classification algorithm.
type Options struct {
	// DefaultCurrency is assumed when the holdings string carries no
	// currency marker.
	DefaultCurrency string

	// CurrencyCodes are the markers recognized (case-insensitively) as
	// currency tokens.
	CurrencyCodes []string

	// LibraryCode is the owning-library literal (e.g. "VIT").
	LibraryCode string

	// ISBNPrefixes mark tokens as ISBN-like; such tokens are excluded from
	// call-number and barcode candidacy.
	ISBNPrefixes []string

	// GarbageLiterals never contribute to the vendor accumulator.
	GarbageLiterals []string

	// ElectronicTypeHints are item-type hints that relax the barcode rule
	// to accept alphanumeric values.
	ElectronicTypeHints []string

	// MinRawLength is the shortest raw string considered to carry data at
	// all; anything shorter yields ErrNoHoldingsData.
	MinRawLength int
}

// DefaultOptions returns the configuration matching the legacy VIT dataset.
func DefaultOptions() Options {
	return Options{
		DefaultCurrency:     "INR",
		CurrencyCodes:       []string{"INR", "USD", "EUR", "GBP", "RS", "RS."},
		LibraryCode:         "VIT",
		ISBNPrefixes:        []string{"978", "979"},
		GarbageLiterals:     []string{"0", "NONE", "NULL", "STAC", "STACK", "GEN", "REF"},
		ElectronicTypeHints: []string{"EB", "E-BOOK"},
		MinRawLength:        5,
	}
}

// isCurrency reports whether tok is a recognized currency marker.
func (o *Options) isCurrency(tok string) bool {
	for _, c := range o.CurrencyCodes {
		if strings.EqualFold(tok, c) {
			return true
		}
	}
	return false
}

// isGarbage reports whether tok belongs to the configured garbage set.
func (o *Options) isGarbage(tok string) bool {
	for _, g := range o.GarbageLiterals {
		if tok == g {
			return true
		}
	}
	return false
}

// isISBNLike reports whether tok starts with a configured ISBN prefix and
// is long enough to plausibly be an identifier rather than a class number.
func (o *Options) isISBNLike(tok string) bool {
	if len(tok) < 10 {
		return false
	}
	for _, p := range o.ISBNPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

// isElectronicHint reports whether the item-type hint triggers alphanumeric
// barcode mode.
func (o *Options) isElectronicHint(hint string) bool {
	for _, h := range o.ElectronicTypeHints {
		if strings.EqualFold(hint, h) {
			return true
		}
	}
	return false
}
