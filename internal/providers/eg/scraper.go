package eg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/brogergvhs/choirscrape/internal/providers"
	"github.com/brogergvhs/choirscrape/internal/ui"
)

const (
	MinNr = 1
	MaxNr = 535
)

type Sources struct {
	WikiURL     string
	SongbookURL string
	SongBaseURL string
}

type Scraper struct {
	client  *http.Client
	log     *ui.Logger
	src     Sources
	limiter *rate.Limiter
}

// NewScraper paces song page requests at least delay apart.
func NewScraper(c *http.Client, log *ui.Logger, src Sources, delay time.Duration) *Scraper {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	return &Scraper{
		client:  c,
		log:     log,
		src:     src,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (s *Scraper) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, err
	}

	// one request per page; a failed page is reported, not retried
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", target, resp.StatusCode)
	}

	return resp, nil
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	resp, err := s.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) fetchBody(ctx context.Context, target string) (string, error) {
	resp, err := s.get(ctx, target)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	return string(data), err
}

// Rubrics maps hymn numbers to their Gesangbuch section.
func (s *Scraper) Rubrics(ctx context.Context) (map[int]string, error) {
	doc, err := s.fetchDOM(ctx, s.src.WikiURL)
	if err != nil {
		return map[int]string{}, fmt.Errorf("wikipedia: %w", err)
	}

	return ParseRubrics(doc), nil
}

// Songs returns the songbook entries within MinNr..MaxNr, one per number,
// ordered by number.
func (s *Scraper) Songs(ctx context.Context) ([]providers.Song, error) {
	body, err := s.fetchBody(ctx, s.src.SongbookURL)
	if err != nil {
		return nil, fmt.Errorf("songbook: %w", err)
	}

	songs, found := ParseSongList(body, s.src.SongBaseURL)
	s.log.Debugf("songs found (before dedup): %d, unique: %d", found, len(songs))

	return songs, nil
}

// Authors returns the composer ("Melodie:") and lyricist ("Text:") of a song page.
func (s *Scraper) Authors(ctx context.Context, songURL string) (composer, lyricist string, err error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", "", err
	}

	doc, err := s.fetchDOM(ctx, songURL)
	if err != nil {
		return "", "", err
	}

	composer, lyricist = ParseAuthors(doc)
	return composer, lyricist, nil
}
