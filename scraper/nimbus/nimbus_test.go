package nimbus

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zero-termico/config"
	"zero-termico/utils"
)

func testLogger() *utils.Logger {
	return utils.NewLoggerTo(io.Discard, utils.LevelDebug)
}

func serveFixture(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeFixture(t *testing.T) {
	body, err := os.ReadFile("testdata/previpiemonte.htm")
	require.NoError(t, err)
	srv := serveFixture(t, "text/html; charset=utf-8", body)

	s := NewWithFetcher(srv.URL, NewHTTPFetcher("test-agent"), testLogger())
	obs, err := s.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []reading{
		{"15/GENNAIO/2024", 1300},
		{"16/gennaio/2024", 1650},
		{"17/Gennaio/2024", 800},
	}, readings(obs))
}

func TestScrapeDecodesLatin1(t *testing.T) {
	body := []byte("<html><body><p>Gioved\xec 18 GENNAIO 2024</p><p>Zero gradi a 1000-1200</p></body></html>")
	srv := serveFixture(t, "text/html; charset=iso-8859-1", body)

	page, err := NewHTTPFetcher("").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	r, err := page.Reader()
	require.NoError(t, err)
	blocks, err := TextBlocks(r)
	require.NoError(t, err)

	require.Len(t, blocks, 2)
	assert.Equal(t, "Giovedì 18 GENNAIO 2024", blocks[0])

	obs := Extract(blocks)
	assert.Equal(t, []reading{{"18/GENNAIO/2024", 1100}}, readings(obs))
}

func TestScrapeNoMatchesIsNoData(t *testing.T) {
	srv := serveFixture(t, "text/html", []byte("<html><body><p>Bollettino non disponibile</p></body></html>"))

	s := NewWithFetcher(srv.URL, NewHTTPFetcher(""), testLogger())
	obs, err := s.Scrape(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, obs)
}

func TestScrapeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewWithFetcher(srv.URL, NewHTTPFetcher(""), testLogger())
	_, err := s.Scrape(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestScrapeSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestScrapeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewWithFetcher(url, NewHTTPFetcher(""), testLogger())
	_, err := s.Scrape(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestHTTPFetcherSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("zero-termico/1.0").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "zero-termico/1.0", got)
}

func TestNewSelectsFetcher(t *testing.T) {
	cfg := &config.Config{SourceURL: "http://example.invalid", FetchMode: config.FetchModeHTTP}
	_, ok := New(cfg, testLogger()).fetcher.(*HTTPFetcher)
	assert.True(t, ok)

	cfg.FetchMode = config.FetchModeBrowser
	cfg.ChromeBin = "/opt/chrome/chrome"
	bf, ok := New(cfg, testLogger()).fetcher.(*BrowserFetcher)
	require.True(t, ok)
	assert.Equal(t, "/opt/chrome/chrome", bf.chromeBin)

	cfg.FetchMode = "carrier-pigeon"
	_, ok = New(cfg, testLogger()).fetcher.(*HTTPFetcher)
	assert.True(t, ok)
}
