package carus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"
)

const choirBookPage = `<!DOCTYPE html><html><body>
<div id="CybotCookiebotDialog"><button onclick="this.parentNode.remove()">Alle akzeptieren</button></div>

<div class="work-item-title"><a class="work-item-link" href="#work-1" aria-controls="work-1"
  onclick="document.getElementById('work-1').style.display='block'; return false;">
  <span class="work-item-author-name">Heinrich Schütz</span>
  <strong class="work-item-name-and-year">Also hat Gott die Welt geliebt</strong>
</a></div>
<div id="work-1" style="display:none"><div class="work-item-info">
  <ul class="list-unstyled"><li><strong>Besetzung:</strong> SATB</li></ul>
</div></div>

<div class="work-item-title"><a class="work-item-link" href="#work-2">
  <strong class="work-item-name-and-year">Ohne Details</strong>
</a></div>
<div id="work-2"><p>leer</p></div>
</body></html>`

func openTestSession(t *testing.T) *Session {
	t.Helper()

	if testing.Short() {
		t.Skip("starts a browser")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no Chromium found")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, choirBookPage)
	}))
	t.Cleanup(srv.Close)

	s, err := OpenSession(context.Background(), srv.URL, BrowserOptions{Bin: bin, NavTimeout: 20 * time.Second}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestSessionEntries(t *testing.T) {
	s := openTestSession(t)

	has, _, err := s.page.Has("#CybotCookiebotDialog")
	require.NoError(t, err)
	require.False(t, has, "cookie banner is removed")

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "work-1", entries[0].PanelID())
	require.Equal(t, "work-2", entries[1].PanelID())

	first := entries[0]
	require.False(t, first.PanelVisible())
	require.NoError(t, first.Click(2*time.Second))
	require.True(t, first.PanelVisible())
	require.True(t, first.InfoVisible(2*time.Second))

	html, err := first.PanelHTML()
	require.NoError(t, err)
	require.Contains(t, html, "Besetzung:")

	link, err := first.LinkHTML()
	require.NoError(t, err)
	w, err := ExtractWork(link, html)
	require.NoError(t, err)
	require.Equal(t, "Schütz, Heinrich", w.Composer)
	require.Equal(t, "SATB", w.Voicing)
}

func TestSessionInfoWaitIsBounded(t *testing.T) {
	s := openTestSession(t)

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	start := time.Now()
	require.False(t, entries[1].InfoVisible(300*time.Millisecond))
	require.Less(t, time.Since(start), 5*time.Second)

	// the expired deadline of the last wait does not leak into later calls
	require.NoError(t, entries[0].Click(2*time.Second))
	require.True(t, entries[0].InfoVisible(2*time.Second))
}
