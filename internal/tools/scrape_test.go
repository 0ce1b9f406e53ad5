package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePageHTML = `<!DOCTYPE html>
<html><head>
<title>Release   Notes</title>
<style>body { color: red; }</style>
<script>console.log("tracking");</script>
</head><body>
<h1>Release    Notes</h1>
<p>Version   1.2  is out.</p>
<noscript>enable javascript</noscript>
<ul><li>Faster startup</li><li>Fewer bugs</li></ul>
</body></html>`

func newScrapeServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeStripsScriptsAndCollapsesSpaces(t *testing.T) {
	srv := newScrapeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePageHTML))
	})

	tool := NewScrapeTool(WebOptions{})
	result, err := tool.Execute(context.Background(),
		fmt.Sprintf(`{"url": %q}`, srv.URL))
	require.NoError(t, err)

	assert.Contains(t, result, "Release Notes")
	assert.Contains(t, result, "Version 1.2 is out.")
	assert.Contains(t, result, "Faster startup")
	assert.NotContains(t, result, "console.log")
	assert.NotContains(t, result, "color: red")
	assert.NotContains(t, result, "enable javascript")
}

func TestScrapeKeepsLineBreaks(t *testing.T) {
	srv := newScrapeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>first</p>\n<p>second</p></body></html>"))
	})

	tool := NewScrapeTool(WebOptions{})
	result, err := tool.Execute(context.Background(),
		fmt.Sprintf(`{"url": %q}`, srv.URL))
	require.NoError(t, err)
	assert.Contains(t, result, "first")
	assert.Contains(t, result, "second")
	assert.NotContains(t, result, "first second")
}

func TestScrapeMarkdownKeepsStructure(t *testing.T) {
	srv := newScrapeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePageHTML))
	})

	tool := NewScrapeTool(WebOptions{})
	result, err := tool.Execute(context.Background(),
		fmt.Sprintf(`{"url": %q, "markdown": true}`, srv.URL))
	require.NoError(t, err)

	assert.Contains(t, result, "# Release")
	assert.Contains(t, result, "- Faster startup")
}

func TestScrapeNonOKStatus(t *testing.T) {
	srv := newScrapeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	tool := NewScrapeTool(WebOptions{})
	_, err := tool.Execute(context.Background(),
		fmt.Sprintf(`{"url": %q}`, srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestScrapeRejectsNonHTTPURL(t *testing.T) {
	tool := NewScrapeTool(WebOptions{})
	_, err := tool.Execute(context.Background(), `{"url": "file:///etc/passwd"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http")
}
