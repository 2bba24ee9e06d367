package carus

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/choirscrape/internal/normalize"
	"github.com/brogergvhs/choirscrape/internal/providers"
)

const (
	EntrySelector = "div.work-item-title a.work-item-link"

	authorSelector = "span.work-item-author-name"
	titleSelector  = "strong.work-item-name-and-year"
	infoSelector   = "div.work-item-info"
	fieldSelector  = "ul.list-unstyled li"
)

// ExtractWork reads one work from the outer HTML of its entry link and the
// inner HTML of its opened panel. panelHTML may be empty.
func ExtractWork(linkHTML, panelHTML string) (providers.Work, error) {
	var w providers.Work

	link, err := goquery.NewDocumentFromReader(strings.NewReader(linkHTML))
	if err != nil {
		return w, err
	}

	if s := link.Find(authorSelector).First(); s.Length() > 0 {
		w.Composer = normalize.Spaces(s.Text())
	}
	if s := link.Find(titleSelector).First(); s.Length() > 0 {
		w.Title = normalize.Spaces(s.Text())
	}

	var bible, fallbackSource string

	if strings.TrimSpace(panelHTML) != "" {
		panel, err := goquery.NewDocumentFromReader(strings.NewReader(panelHTML))
		if err != nil {
			return w, err
		}

		panel.Find(fieldSelector).Each(func(_ int, li *goquery.Selection) {
			text := normalize.Spaces(li.Text())

			strong := li.Find("strong")
			if strong.Length() == 0 {
				if fallbackSource == "" && text != "" {
					fallbackSource = text
				}
				return
			}

			rawLabel := normalize.Spaces(strong.Text())
			label := strings.ReplaceAll(strings.ToLower(strings.TrimRight(rawLabel, ":")), "*", "")
			value := strings.Trim(strings.ReplaceAll(text, rawLabel, ""), " :")

			switch label {
			case "besetzung":
				w.Voicing = value
			case "tonart":
				w.Key = value
			case "textquelle":
				w.TextSource = value
			case "komponistin":
				if w.Composer == "" {
					w.Composer = value
				}
			case "textdichterin":
				w.Lyricist = value
			case "bibelstelle":
				bible = value
			}
		})
	}

	if w.TextSource == "" {
		w.TextSource = fallbackSource
	}

	if bible != "" {
		if w.TextSource != "" {
			w.TextSource += "; Bibelstelle: " + bible
		} else {
			w.TextSource = bible
		}
	}

	return clean(w), nil
}

func clean(w providers.Work) providers.Work {
	return providers.Work{
		Composer:   normalize.PersonName(w.Composer),
		Title:      normalize.StripZurPerson(w.Title),
		Key:        normalize.Key(normalize.StripZurPerson(w.Key)),
		Voicing:    normalize.StripZurPerson(w.Voicing),
		TextSource: normalize.StripZurPerson(w.TextSource),
		Lyricist:   normalize.PersonName(w.Lyricist),
	}
}
