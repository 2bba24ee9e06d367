package carus

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/choirscrape/internal/providers"
	"github.com/brogergvhs/choirscrape/internal/ui"
)

// DefaultMaxConsecutiveEmpty stops a run once this many entries in a row
// yielded no field at all; the page layout has most likely changed.
const DefaultMaxConsecutiveEmpty = 3

type RowWriter interface {
	Write(row []string) error
}

type Scraper struct {
	log      *ui.Logger
	timing   Timing
	maxEmpty int

	Stats ui.Stats
}

func NewScraper(log *ui.Logger, t Timing, maxEmpty int) *Scraper {
	if maxEmpty <= 0 {
		maxEmpty = DefaultMaxConsecutiveEmpty
	}

	return &Scraper{log: log, timing: t, maxEmpty: maxEmpty}
}

type Result struct {
	// Errors lists entries that could not be opened or extracted.
	Errors  []string
	Aborted bool
}

// Run opens and extracts every entry in order. Works whose key is already in
// seen are skipped; new ones are added to seen and written immediately.
// Only context cancellation and write failures end the run with an error.
func (s *Scraper) Run(ctx context.Context, entries []Entry, seen map[string]bool, out RowWriter) (Result, error) {
	var res Result
	total := len(entries)
	consecutiveEmpty := 0

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s.log.Infof("entry %d/%d: opening %s", i+1, total, e.PanelID())

		opened, err := OpenEntry(ctx, e, s.timing, s.log)
		if err != nil {
			return res, err
		}
		if !opened {
			msg := fmt.Sprintf("entry %d/%d (%s) could not be opened", i+1, total, e.PanelID())
			s.log.Warnf("%s", msg)
			res.Errors = append(res.Errors, msg)
			s.Stats.Failed.Add(1)
			continue
		}

		w, err := s.extract(ctx, e)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}

			msg := fmt.Sprintf("extracting entry %d/%d: %v", i+1, total, err)
			s.log.Warnf("%s", msg)
			res.Errors = append(res.Errors, msg)
			s.Stats.Failed.Add(1)
			continue
		}

		s.log.Debugf("fields: %s", foundSummary(w))
		s.log.Debugf("data: composer=%q title=%q key=%q voicing=%q source=%q lyricist=%q",
			w.Composer, w.Title, w.Key, w.Voicing, w.TextSource, w.Lyricist)

		if w.Empty() {
			consecutiveEmpty++
			s.Stats.Empty.Add(1)
			s.log.Infof("no data extracted (%d in a row)", consecutiveEmpty)
		} else {
			consecutiveEmpty = 0
		}

		if consecutiveEmpty >= s.maxEmpty {
			s.log.Warnf("aborting: %d consecutive entries without data (%d/%d)", consecutiveEmpty, i+1, total)
			res.Aborted = true
			break
		}

		key := w.DedupKey()
		if seen[key] {
			s.log.Debugf("duplicate, skipped")
			s.Stats.Duplicates.Add(1)
			continue
		}

		seen[key] = true
		if err := out.Write(w.Record()); err != nil {
			return res, fmt.Errorf("writing row: %w", err)
		}
		s.Stats.Written.Add(1)
	}

	return res, nil
}

func (s *Scraper) extract(ctx context.Context, e Entry) (providers.Work, error) {
	linkHTML, err := e.LinkHTML()
	if err != nil {
		return providers.Work{}, fmt.Errorf("link: %w", err)
	}

	panelHTML := ""
	if e.PanelVisible() {
		if err := WaitPanelLoaded(ctx, e, s.timing, s.timing.RecheckTimeout); err != nil {
			return providers.Work{}, err
		}

		panelHTML, err = e.PanelHTML()
		if err != nil {
			return providers.Work{}, fmt.Errorf("panel: %w", err)
		}
	}

	return ExtractWork(linkHTML, panelHTML)
}

func foundSummary(w providers.Work) string {
	fields := []struct {
		name string
		ok   bool
	}{
		{"Komponist", w.Composer != ""},
		{"Titel", w.Title != ""},
		{"Tonart", w.Key != ""},
		{"Besetzung", w.Voicing != ""},
		{"Textquelle", w.TextSource != ""},
		{"Dichter", w.Lyricist != ""},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		mark := "-"
		if f.ok {
			mark = "ok"
		}
		parts = append(parts, f.name+"="+mark)
	}

	return strings.Join(parts, " ")
}
