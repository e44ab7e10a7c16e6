package model

import "encoding/json"

// SourceRecord is one line of the legacy JSONL export: a bibliographic
// identifier plus a flat map of MARC-numbered fields. Only the fields the
// migration consumes are decoded; everything else rides along in the raw
// line.
type SourceRecord struct {
	ID           json.Number `json:"id"`
	ControlInfo  string      `json:"008"`
	ISBN         string      `json:"020"`
	DeweyClass   string      `json:"082"`
	Author       string      `json:"100"`
	Title        string      `json:"245"`
	Edition      string      `json:"250"`
	Publication  string      `json:"260"`
	Physical     string      `json:"300"`
	OnlineAccess string      `json:"856"`
	ItemType     string      `json:"942"`
	Holdings     string      `json:"952"`
}

// BiblioID returns the numeric record identifier, or 0 when absent or
// non-numeric.
func (r *SourceRecord) BiblioID() int64 {
	id, err := r.ID.Int64()
	if err != nil {
		return 0
	}
	return id
}
