package eg

import (
	"html"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"

	"github.com/brogergvhs/choirscrape/internal/normalize"
	"github.com/brogergvhs/choirscrape/internal/providers"
)

var (
	// RE2 \s is ASCII only; the pages use U+00A0 (&nbsp;) as a separator too.
	reListNr   = regexp.MustCompile(`^(\d{1,3})(?:\.\d+)?[\s\x{00A0}]+`)
	reSongLink = regexp.MustCompile(`(?i)(\d{1,3})[\s\x{00A0}]*(?:&nbsp;|[\s\x{00A0}])*<a\s+href="(/song/\d+)">([^<]+)</a>`)
	reMultiWS  = regexp.MustCompile(`[\s\x{00A0}]{2,}`)

	reLyricist = regexp.MustCompile(`(?i)Text[\s\x{00A0}]*:[\s\x{00A0}]*([^\n\r]+)`)
	reComposer = regexp.MustCompile(`(?i)Melodie[\s\x{00A0}]*:[\s\x{00A0}]*([^\n\r]+)`)
)

// KnownRubrics are the section headings of the Stammteil.
var KnownRubrics = map[string]bool{
	"Advent":                        true,
	"Weihnachten":                   true,
	"Jahreswende":                   true,
	"Epiphanias":                    true,
	"Passion":                       true,
	"Ostern":                        true,
	"Himmelfahrt":                   true,
	"Pfingsten":                     true,
	"Trinitatis":                    true,
	"Besondere Tage":                true,
	"Ende des Kirchenjahres":        true,
	"Eingang und Ausgang":           true,
	"Liturgische Gesänge":           true,
	"Wort Gottes":                   true,
	"Taufe und Konfirmation":        true,
	"Abendmahl":                     true,
	"Beichte":                       true,
	"Trauung":                       true,
	"Sammlung und Sendung":          true,
	"Ökumene":                       true,
	"Psalmen und Lobgesänge":        true,
	"Biblische Erzähllieder":        true,
	"Loben und Danken":              true,
	"Rechtfertigung und Zuversicht": true,
	"Angst und Vertrauen":           true,
	"Umkehr und Nachfolge":          true,
	"Geborgen in Gottes Liebe":      true,
	"Nächsten- und Feindesliebe":    true,
	"Erhaltung der Schöpfung, Frieden und Gerechtigkeit": true,
	"Morgen":                               true,
	"Mittag und tägliches Brot":            true,
	"Abend":                                true,
	"Arbeit":                               true,
	"Auf Reisen":                           true,
	"Natur und Jahreszeiten":               true,
	"Sterben und ewiges Leben, Bestattung": true,
}

func inRange(nr int) bool {
	return nr >= MinNr && nr <= MaxNr
}

func headingTitle(h *goquery.Selection) string {
	if span := h.Find("span.mw-headline").First(); span.Length() > 0 {
		return strings.TrimSpace(span.Text())
	}

	c := h.Clone()
	c.Find(".mw-editsection").Remove()

	return strings.TrimSpace(c.Text())
}

// ParseRubrics walks headings and lists in document order. Every list item
// under a known section heading that starts with a hymn number is assigned
// to that section; the first assignment of a number wins.
func ParseRubrics(doc *goquery.Document) map[int]string {
	out := map[int]string{}
	current := ""

	doc.Find("h2, h3, ul, ol").Each(func(_ int, tag *goquery.Selection) {
		switch goquery.NodeName(tag) {
		case "h2", "h3":
			if title := headingTitle(tag); KnownRubrics[title] {
				current = title
			}
		default:
			if current == "" {
				return
			}

			tag.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				m := reListNr.FindStringSubmatch(flattenText(li, " "))
				if m == nil {
					return
				}

				nr, _ := strconv.Atoi(m[1])
				if !inRange(nr) {
					return
				}
				if _, ok := out[nr]; !ok {
					out[nr] = current
				}
			})
		}
	})

	return out
}

// ParseSongList extracts "<nr> <a href="/song/ID">title</a>" pairs from the
// raw songbook HTML. It returns the unique songs sorted by number and how
// many in-range matches were seen before dedup.
func ParseSongList(body, baseURL string) ([]providers.Song, int) {
	base, _ := url.Parse(baseURL)

	var unique []providers.Song
	seen := map[int]bool{}
	found := 0

	for _, m := range reSongLink.FindAllStringSubmatch(body, -1) {
		nr, err := strconv.Atoi(m[1])
		if err != nil || !inRange(nr) {
			continue
		}
		found++

		// the same number can be listed more than once (e.g. other languages)
		if seen[nr] {
			continue
		}
		seen[nr] = true

		link := m[2]
		if base != nil {
			if ref, err := url.Parse(m[2]); err == nil {
				link = base.ResolveReference(ref).String()
			}
		}

		title := html.UnescapeString(m[3])
		title = strings.TrimSpace(reMultiWS.ReplaceAllString(title, " "))

		unique = append(unique, providers.Song{Nr: nr, Title: title, URL: link})
	}

	sort.SliceStable(unique, func(i, j int) bool { return unique[i].Nr < unique[j].Nr })

	return unique, found
}

// ParseAuthors reads the "Melodie:" and "Text:" lines of a song page with
// life dates removed.
func ParseAuthors(doc *goquery.Document) (composer, lyricist string) {
	text := flattenText(doc.Selection, "\n")

	if m := reLyricist.FindStringSubmatch(text); m != nil {
		lyricist = normalize.LifeYears(m[1])
	}
	if m := reComposer.FindStringSubmatch(text); m != nil {
		composer = normalize.LifeYears(m[1])
	}

	return composer, lyricist
}

// flattenText joins the trimmed, non-empty text nodes below sel with sep.
// Script and style contents are skipped.
func flattenText(sel *goquery.Selection, sep string) string {
	var parts []string

	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		switch n.Type {
		case nethtml.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case nethtml.ElementNode:
			switch n.Data {
			case "script", "style", "template":
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(parts, sep)
}
