package providers

import (
	"strconv"

	"github.com/brogergvhs/choirscrape/internal/csvout"
)

var (
	HymnHeader = []string{"Nr", "Titel", "Rubrik", "Komponist", "Dichter"}
	WorkHeader = []string{"Komponist", "Titel", "Tonart", "Besetzung", "Textquelle", "Dichter"}
)

// Song is one entry of a hymnal's song list.
type Song struct {
	Nr    int
	Title string
	URL   string
}

// Hymn is a fully resolved hymnal row.
type Hymn struct {
	Song
	Rubric   string
	Composer string
	Lyricist string
}

func (h Hymn) Record() []string {
	return []string{strconv.Itoa(h.Nr), h.Title, h.Rubric, h.Composer, h.Lyricist}
}

// Work is one choral work listed in a publisher's choir book.
type Work struct {
	Composer   string
	Title      string
	Key        string
	Voicing    string
	TextSource string
	Lyricist   string
}

func (w Work) Record() []string {
	return []string{w.Composer, w.Title, w.Key, w.Voicing, w.TextSource, w.Lyricist}
}

// Empty reports whether no field could be extracted at all.
func (w Work) Empty() bool {
	return w == Work{}
}

// DedupKey matches the keys returned by csvout.LoadKeys over WorkHeader.
func (w Work) DedupKey() string {
	return csvout.Key(w.Record()...)
}
