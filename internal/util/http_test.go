package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoundTripperSetsHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookieFile, []byte("\n  session=abc  \nignored=1\n"), 0644))

	c, err := NewHTTPClient(HTTPClientOptions{
		Timeout:    5 * time.Second,
		UserAgent:  "choirscrape-test",
		Cookie:     "lang=de",
		CookieFile: cookieFile,
	})
	require.NoError(t, err)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, "choirscrape-test", gotUA)
	require.Equal(t, "lang=de; session=abc", gotCookie)
}

func TestTLSVerifyModes(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	strict, err := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)
	_, err = strict.Get(srv.URL)
	require.Error(t, err)

	insecure, err := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second, Verify: VerifyNone})
	require.NoError(t, err)
	resp, err := insecure.Get(srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	certifi, err := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second, Verify: VerifyCertifi})
	require.NoError(t, err)
	_, err = certifi.Get(srv.URL)
	require.Error(t, err)

	_, err = NewHTTPClient(HTTPClientOptions{Verify: "sometimes"})
	require.Error(t, err)

	badPEM := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(badPEM, []byte("not a certificate"), 0644))
	_, err = NewHTTPClient(HTTPClientOptions{CAFile: badPEM})
	require.Error(t, err)
}

func TestVerifyLabel(t *testing.T) {
	require.Equal(t, "system", VerifyLabel("", ""))
	require.Equal(t, "off", VerifyLabel("NONE", ""))
	require.Equal(t, "system", VerifyLabel("certifi", ""))
	require.Equal(t, "/etc/ca.pem", VerifyLabel("none", "/etc/ca.pem"))
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	require.ErrorIs(t, Sleep(ctx, time.Minute), context.Canceled)
	require.Less(t, time.Since(start), time.Second)

	require.NoError(t, Sleep(context.Background(), time.Millisecond))
}
