package biblio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitlib/biblio-migrate/internal/model"
	"github.com/vitlib/biblio-migrate/internal/publisher"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "english code at positions 35-37",
			input: "020523s2005    ii       b    001 0 eng d",
			want:  "eng",
		},
		{
			name:  "placeholder pipes dropped",
			input: "020523s2005    ii       b    001 0 ||| d",
			want:  "",
		},
		{
			name:  "undetermined dropped",
			input: "020523s2005    ii       b    001 0 und d",
			want:  "",
		},
		{
			name:  "too short field",
			input: "020523s2005",
			want:  "",
		},
		{
			name:  "empty field",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Language(tt.input))
		})
	}
}

func TestPagesAndISBN(t *testing.T) {
	tests := []struct {
		name        string
		physical    string
		catalogISBN string
		wantPages   int
		wantISBN    string
	}{
		{
			name:      "plain page count",
			physical:  "xii, 348 p. ; 24 cm",
			wantPages: 348,
		},
		{
			name:      "rescues 13-digit ISBN from physical field",
			physical:  "9788122414837 412 p.",
			wantPages: 412,
			wantISBN:  "9788122414837",
		},
		{
			name:      "rescues 10-digit Indian ISBN",
			physical:  "8122414834 250 p.",
			wantPages: 250,
			wantISBN:  "8122414834",
		},
		{
			name:        "catalog ISBN wins over rescue",
			physical:    "9788122414837 412 p.",
			catalogISBN: "9780131103627",
			wantPages:   412,
			wantISBN:    "9780131103627",
		},
		{
			name:      "numbers outside the page range ignored",
			physical:  "5 v. ; 9999 illustrations",
			wantPages: 0,
		},
		{
			name:     "empty field",
			physical: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, isbn := PagesAndISBN(tt.physical, tt.catalogISBN)
			assert.Equal(t, tt.wantPages, pages)
			assert.Equal(t, tt.wantISBN, isbn)
		})
	}
}

func TestAccessURL(t *testing.T) {
	assert.Equal(t, "https://ebooks.example.org/id/4211",
		AccessURL(`40$uhttps://ebooks.example.org/id/4211$zFull text`))
	assert.Empty(t, AccessURL("no url here"))
}

func TestItemType(t *testing.T) {
	assert.Equal(t, "BK", ItemType("BK GEN"))
	assert.Equal(t, "EB", ItemType("  EB  "))
	assert.Empty(t, ItemType(""))
}

func TestExtract(t *testing.T) {
	e := NewExtractor(publisher.NewHeuristic())

	rec := &model.SourceRecord{
		ID:          "4211",
		ControlInfo: "020523s2005    ii       b    001 0 eng d",
		ISBN:        "9780131103627",
		DeweyClass:  "621.7",
		Author:      "BHANDARI, V B",
		Title:       "DESIGN OF MACHINE ELEMENTS",
		Publication: "NEW DELHI : TATA MCGRAW HILL, 2007",
		Physical:    "xii, 348 p. ; 24 cm",
		ItemType:    "BK GEN",
	}

	b := e.Extract(rec, `{"id": 4211}`)

	assert.Equal(t, int64(4211), b.BiblioID)
	assert.Equal(t, "DESIGN OF MACHINE ELEMENTS", b.Title)
	assert.Equal(t, "BHANDARI, V B", b.Author)
	assert.Equal(t, "9780131103627", b.ISBN)
	assert.Equal(t, "eng", b.Language)
	assert.Equal(t, "BK", b.ItemType)
	assert.Equal(t, 348, b.PageCount)
	assert.Equal(t, "NEW DELHI", b.PubPlace)
	assert.Equal(t, "TATA MCGRAW HILL", b.Publisher)
	assert.Equal(t, 2007, b.PubYear)
	assert.Equal(t, `{"id": 4211}`, b.RawJSON)
}

func TestExtractDefaultsUntitled(t *testing.T) {
	e := NewExtractor(publisher.Noop{})

	b := e.Extract(&model.SourceRecord{ID: "12"}, "")
	assert.Equal(t, int64(12), b.BiblioID)
	assert.Equal(t, "Untitled", b.Title)
}
