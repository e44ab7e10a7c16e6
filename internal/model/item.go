// Package model defines the core domain models used throughout the application.
package model

import "time"

// Item represents one physical or electronic copy of a catalog entry,
// reconstructed from a legacy holdings string. Every field may legitimately
// be absent; absence reflects incomplete source data, not an error.
type Item struct {
	BillDate     *time.Time
	DateAcquired *time.Time
	LastSeenDate *time.Time
	Price        *float64

	BiblioID         int64
	Barcode          string
	CallNumber       string
	ShelvingLocation string
	LibraryCode      string
	Vendor           string
	BillNumber       string
	Currency         string
	LastSeenTime     string

	StatusFlags StatusFlags
}

// StatusFlags holds the four positional availability markers encoded at the
// front of a holdings string.
type StatusFlags struct {
	Withdrawn  bool
	Lost       bool
	Damaged    bool
	NotForLoan bool
}

// Any reports whether at least one flag is set.
func (f StatusFlags) Any() bool {
	return f.Withdrawn || f.Lost || f.Damaged || f.NotForLoan
}
