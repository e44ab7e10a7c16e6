// Package holdings reconstructs typed item records from legacy catalog
// holdings strings.
//
// The input is a single unstructured, whitespace-delimited field with no
// fixed order or delimiter discipline; fields are recognized by shape and
// by elimination. Classification runs as a strict one-pass narrowing
// pipeline: flags, then unambiguous shapes, then context-dependent shapes.
// Each stage only removes tokens from the pool handed to the next stage;
// no stage re-inspects a token another stage has claimed, and there is no
// backtracking.
package holdings

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/model"
)

var (
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	dateRe     = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4}|\d{2}/\d{2}/\d{4})$`)
	priceRe    = regexp.MustCompile(`^\d+\.\d{2}$`)
	shelvingRe = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+){2,}$`)
	callNumRe  = regexp.MustCompile(`\d\.\d`)
	cutterRe   = regexp.MustCompile(`^[A-Z]{1,4}$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
)

// Parser classifies holdings strings into model.Item records. It holds no
// state across calls and is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given configuration.
func NewParser(opts Options) *Parser {
	if opts.MinRawLength <= 0 {
		opts.MinRawLength = DefaultOptions().MinRawLength
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultOptions().DefaultCurrency
	}
	return &Parser{opts: opts}
}

// datePos pairs a parsed date with the position its token held in the pool
// at extraction time. Positions anchor the bill-number heuristic.
type datePos struct {
	value time.Time
	pos   int
}

// Parse classifies one raw holdings string. itemTypeHint relaxes the
// barcode shape for electronic items and may be empty. The returned error
// is common.ErrNoHoldingsData for empty or too-short input; malformed
// field values never fail the record, they merely leave slots unset.
func (p *Parser) Parse(raw, itemTypeHint string) (*model.Item, error) {
	healed := Heal(raw)
	if len(healed) < p.opts.MinRawLength {
		return nil, common.ErrNoHoldingsData
	}

	item := &model.Item{Currency: p.opts.DefaultCurrency}

	pool := Tokenize(healed)
	pool = p.stripFlags(item, pool)

	pool, dates := p.extract(item, pool)
	pool = p.resolveAnchors(item, pool, dates)
	pool = p.classifyStructural(item, pool)
	p.classifyResidual(item, pool, itemTypeHint)

	return item, nil
}

// stripFlags interprets a leading run of four single-digit tokens as the
// positional status flags. The match is strictly all-or-nothing: a partial
// match could swallow a one-digit barcode or price fragment, so anything
// short of four single digits leaves the pool untouched.
func (p *Parser) stripFlags(item *model.Item, pool []string) []string {
	if len(pool) < 4 {
		return pool
	}
	for _, tok := range pool[:4] {
		if len(tok) != 1 || tok[0] < '0' || tok[0] > '9' {
			return pool
		}
	}

	item.StatusFlags = model.StatusFlags{
		Withdrawn:  pool[0] != "0",
		Lost:       pool[1] != "0",
		Damaged:    pool[2] != "0",
		NotForLoan: pool[3] != "0",
	}
	return pool[4:]
}

// extract walks the pool once, consuming time-of-day and currency tokens
// immediately. Date-shaped tokens that parse are recorded with their
// position but stay in the returned pool so the anchor resolver can still
// see their neighbors; date-shaped tokens that fail to parse (bad day or
// month) are left unconsumed for later stages.
func (p *Parser) extract(item *model.Item, pool []string) ([]string, []datePos) {
	kept := make([]string, 0, len(pool))
	var dates []datePos

	for _, tok := range pool {
		switch {
		case timeRe.MatchString(tok):
			item.LastSeenTime = tok
		case p.opts.isCurrency(tok):
			item.Currency = strings.ToUpper(tok)
		case dateRe.MatchString(tok):
			d, err := parseDate(tok)
			if err != nil {
				// Date-shaped but unparseable: not the same as absent.
				kept = append(kept, tok)
				continue
			}
			dates = append(dates, datePos{value: d, pos: len(kept)})
			kept = append(kept, tok)
		default:
			kept = append(kept, tok)
		}
	}

	return kept, dates
}

// parseDate picks the field order from the token's shape.
func parseDate(tok string) (time.Time, error) {
	switch {
	case strings.Contains(tok, "-") && tok[2] == '-':
		return time.Parse("02-01-2006", tok)
	case strings.Contains(tok, "/"):
		return time.Parse("02/01/2006", tok)
	default:
		return time.Parse("2006-01-02", tok)
	}
}

// resolveAnchors orders the extracted dates into their roles and recovers
// the bill number from the token immediately preceding the leftmost date.
// It consumes the date tokens and the captured bill-number token from the
// pool.
func (p *Parser) resolveAnchors(item *model.Item, pool []string, dates []datePos) []string {
	if len(dates) == 0 {
		return pool
	}

	byValue := make([]datePos, len(dates))
	copy(byValue, dates)
	sortDatesByValue(byValue)

	earliest := byValue[0].value
	latest := byValue[len(byValue)-1].value
	item.BillDate = &earliest
	item.LastSeenDate = &latest

	switch {
	case len(byValue) == 1:
		item.DateAcquired = &earliest
	case len(byValue) == 2:
		item.DateAcquired = &latest
	default:
		second := byValue[1].value
		item.DateAcquired = &second
	}

	consumed := make(map[int]bool, len(dates)+1)
	for _, d := range dates {
		consumed[d.pos] = true
	}

	// The leftmost date in the string is the anchor; its immediate
	// predecessor is the bill/voucher number unless that token is a
	// reserved literal. A non-adjacent token is never promoted.
	firstPos := dates[0].pos
	if firstPos > 0 {
		candidate := pool[firstPos-1]
		if !p.isReservedLiteral(candidate) {
			item.BillNumber = strings.Trim(candidate, `"'`)
			consumed[firstPos-1] = true
		}
	}

	remaining := make([]string, 0, len(pool))
	for i, tok := range pool {
		if consumed[i] {
			continue
		}
		remaining = append(remaining, tok)
	}
	return remaining
}

// isReservedLiteral reports whether tok may never serve as a bill number.
// Price-shaped tokens are reserved too: the unambiguous price shape
// outranks the context-dependent anchor in the confidence ordering.
func (p *Parser) isReservedLiteral(tok string) bool {
	switch tok {
	case "0", "NONE", "NULL":
		return true
	}
	if tok == p.opts.LibraryCode {
		return true
	}
	return isShelvingShape(tok) || priceRe.MatchString(tok)
}

func isShelvingShape(tok string) bool {
	return shelvingRe.MatchString(tok) && containsLetter(tok)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return true
		}
	}
	return false
}

// classifyStructural removes price, library-code and shelving-location
// tokens in that fixed priority order. First match wins for each slot;
// later shape matches are consumed without overwriting.
func (p *Parser) classifyStructural(item *model.Item, pool []string) []string {
	remaining := make([]string, 0, len(pool))

	for _, tok := range pool {
		switch {
		case priceRe.MatchString(tok):
			if item.Price == nil {
				if v, err := strconv.ParseFloat(tok, 64); err == nil {
					item.Price = &v
				}
			}
		case tok == p.opts.LibraryCode:
			item.LibraryCode = p.opts.LibraryCode
		case isShelvingShape(tok):
			// The letter requirement is what keeps an unparsed
			// DD-MM-YYYY or a pure-numeric run out of this slot.
			if item.ShelvingLocation == "" {
				item.ShelvingLocation = tok
			}
		default:
			remaining = append(remaining, tok)
		}
	}

	return remaining
}

// classifyResidual partitions whatever is left into call number, barcode
// and vendor. ISBN-like tokens (a healed 13-digit ISBN can masquerade as a
// Dewey call number) are excluded from both call-number and barcode
// candidacy and fall through to the vendor accumulator.
func (p *Parser) classifyResidual(item *model.Item, pool []string, itemTypeHint string) {
	electronic := p.opts.isElectronicHint(itemTypeHint)
	var vendorParts []string

	for i := 0; i < len(pool); i++ {
		tok := pool[i]
		isbnLike := p.opts.isISBNLike(tok)

		if !isbnLike && isCallNumberShape(tok) {
			if item.CallNumber == "" {
				item.CallNumber = tok
				// A short all-caps alphabetic follower is the Cutter
				// author code; join and consume it.
				if i+1 < len(pool) && cutterRe.MatchString(pool[i+1]) {
					item.CallNumber += " " + pool[i+1]
					i++
				}
			}
			continue
		}

		if !isbnLike && p.isBarcodeShape(tok, item, electronic) {
			if item.Barcode == "" {
				item.Barcode = tok
			}
			continue
		}

		if !p.opts.isGarbage(tok) && len(tok) > 1 {
			vendorParts = append(vendorParts, tok)
		}
	}

	if len(vendorParts) > 0 {
		item.Vendor = strings.Join(vendorParts, " ")
	}
}

func isCallNumberShape(tok string) bool {
	return strings.Contains(tok, ":") || callNumRe.MatchString(tok)
}

// isBarcodeShape accepts pure numerics longer than three digits whose
// value does not collide with the captured price literal. Electronic items
// widen the rule to any alphanumeric token longer than three characters
// that carries a digit.
func (p *Parser) isBarcodeShape(tok string, item *model.Item, electronic bool) bool {
	if electronic {
		return len(tok) > 3 && isAlphanumeric(tok) && containsDigit(tok)
	}
	if !digitsRe.MatchString(tok) || len(tok) <= 3 {
		return false
	}
	if item.Price != nil {
		if v, err := strconv.ParseInt(tok, 10, 64); err == nil && v == int64(*item.Price) {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !('0' <= r && r <= '9') && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if '0' <= r && r <= '9' {
			return true
		}
	}
	return false
}

// sortDatesByValue sorts in place, earliest first. Insertion sort; the
// list is a handful of entries at most.
func sortDatesByValue(dates []datePos) {
	for i := 1; i < len(dates); i++ {
		for j := i; j > 0 && dates[j].value.Before(dates[j-1].value); j-- {
			dates[j], dates[j-1] = dates[j-1], dates[j]
		}
	}
}
