// Package biblio builds bibliographic parent records from tagged legacy
// source fields.
package biblio

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vitlib/biblio-migrate/internal/model"
	"github.com/vitlib/biblio-migrate/internal/publisher"
)

var (
	numberRe = regexp.MustCompile(`\b\d+\b`)
	urlRe    = regexp.MustCompile(`https?://[^\s"<]+`)
)

// Page counts outside this range in the physical-description field are
// identifiers that collided into the wrong column, not page counts.
const (
	minPageCount = 10
	maxPageCount = 5000
)

// Extractor derives a model.Biblio from the MARC-numbered fields of a
// source record, delegating publication splitting to the configured
// Splitter.
type Extractor struct {
	splitter publisher.Splitter
}

// NewExtractor creates an extractor using the given publication splitter.
func NewExtractor(splitter publisher.Splitter) *Extractor {
	if splitter == nil {
		splitter = publisher.Noop{}
	}
	return &Extractor{splitter: splitter}
}

// Extract builds the parent record. Missing fields yield zero values;
// extraction never fails a record.
func (e *Extractor) Extract(rec *model.SourceRecord, rawLine string) model.Biblio {
	b := model.Biblio{
		BiblioID:   rec.BiblioID(),
		Title:      strings.TrimSpace(rec.Title),
		Author:     strings.TrimSpace(rec.Author),
		Edition:    strings.TrimSpace(rec.Edition),
		DeweyClass: strings.TrimSpace(rec.DeweyClass),
		ItemType:   ItemType(rec.ItemType),
		Language:   Language(rec.ControlInfo),
		AccessURL:  AccessURL(rec.OnlineAccess),
		RawJSON:    rawLine,
	}
	if b.Title == "" {
		b.Title = "Untitled"
	}

	b.PageCount, b.ISBN = PagesAndISBN(rec.Physical, strings.TrimSpace(rec.ISBN))
	b.PubPlace, b.Publisher, b.PubYear = e.splitter.Split(rec.Publication)

	return b
}

// Language pulls the language code out of control field 008 (positions
// 35-37 per the MARC 21 standard), dropping placeholder codes.
func Language(controlInfo string) string {
	if len(controlInfo) < 38 {
		return ""
	}
	code := strings.TrimSpace(controlInfo[35:38])
	switch code {
	case "", "|||", "xxx", "und":
		return ""
	}
	return code
}

// PagesAndISBN mines the physical-description field for a plausible page
// count and, when the catalog's own ISBN field is empty, rescues an ISBN
// that collided into it (13 digits starting 978, or the 10-digit Indian
// publisher range starting 81).
func PagesAndISBN(physical, catalogISBN string) (int, string) {
	pages := 0
	rescued := ""

	for _, numStr := range numberRe.FindAllString(physical, -1) {
		if (len(numStr) == 13 && strings.HasPrefix(numStr, "978")) ||
			(len(numStr) == 10 && strings.HasPrefix(numStr, "81")) {
			rescued = numStr
			continue
		}
		val, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		// First plausible number wins: the extent precedes dimensions
		// ("348 p. ; 24 cm") in legacy physical descriptions.
		if pages == 0 && val >= minPageCount && val <= maxPageCount {
			pages = val
		}
	}

	if catalogISBN != "" {
		return pages, catalogISBN
	}
	return pages, rescued
}

// AccessURL extracts the first http(s) URL from field 856.
func AccessURL(field string) string {
	return urlRe.FindString(field)
}

// ItemType returns the first whitespace-separated word of field 942.
func ItemType(field string) string {
	fields := strings.Fields(field)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
