package eg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/choirscrape/internal/ui"
)

func newTestScraper(t *testing.T, mux *http.ServeMux, delay time.Duration) (*Scraper, string) {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	src := Sources{
		WikiURL:     srv.URL + "/wiki",
		SongbookURL: srv.URL + "/songbook/8984",
		SongBaseURL: srv.URL,
	}

	return NewScraper(srv.Client(), ui.NewLoggerTo(io.Discard, true), src, delay), srv.URL
}

func TestScraperEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<h2><span class="mw-headline">Advent</span></h2><ul><li>1 Macht hoch</li></ul>`)
	})
	mux.HandleFunc("/songbook/8984", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `1&nbsp;<a href="/song/100">Macht hoch die Tür</a>`)
	})
	mux.HandleFunc("/song/100", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<p>Text: Georg Weissel 1642</p><p>Melodie: Halle 1704</p>`)
	})

	s, base := newTestScraper(t, mux, 0)
	ctx := context.Background()

	rubrics, err := s.Rubrics(ctx)
	require.NoError(t, err)
	require.Equal(t, "Advent", rubrics[1])

	songs, err := s.Songs(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	require.Equal(t, base+"/song/100", songs[0].URL)

	composer, lyricist, err := s.Authors(ctx, songs[0].URL)
	require.NoError(t, err)
	require.Equal(t, "Halle", composer)
	require.Equal(t, "Georg Weissel", lyricist)
}

func TestScraperFetchErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	s, base := newTestScraper(t, mux, 0)
	ctx := context.Background()

	rubrics, err := s.Rubrics(ctx)
	require.Error(t, err)
	require.NotNil(t, rubrics)
	require.Empty(t, rubrics)

	songs, err := s.Songs(ctx)
	require.Error(t, err)
	require.Empty(t, songs)

	_, _, err = s.Authors(ctx, base+"/song/1")
	require.Error(t, err)
}

func TestScraperDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/song/", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	s, base := newTestScraper(t, mux, 0)

	_, _, err := s.Authors(context.Background(), base+"/song/1")
	require.EqualError(t, err, fmt.Sprintf("GET %s/song/1: HTTP 502", base))
	require.Equal(t, int32(1), calls.Load())
}

func TestScraperPacesSongRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/song/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<p>Melodie: X</p>`)
	})

	delay := 50 * time.Millisecond
	s, base := newTestScraper(t, mux, delay)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, err := s.Authors(context.Background(), base+"/song/1")
		require.NoError(t, err)
	}

	require.GreaterOrEqual(t, time.Since(start), 2*delay)
}

func TestScraperAuthorsCancelled(t *testing.T) {
	s, base := newTestScraper(t, http.NewServeMux(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Authors(ctx, base+"/song/1")
	require.Error(t, err)
}
