package model

// Biblio represents the bibliographic (parent) record for one catalog entry.
type Biblio struct {
	BiblioID   int64
	Title      string
	Author     string
	Edition    string
	ISBN       string
	PubPlace   string
	Publisher  string
	PubYear    int
	PageCount  int
	AccessURL  string
	Language   string
	DeweyClass string
	ItemType   string
	RawJSON    string // original source line, kept for auditing
}
