package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultWebTimeout      = 15 * time.Second
	defaultMaxResponseSize = 5 << 20
	defaultUserAgent       = "blackbox/1.0"
	defaultMaxResults      = 5

	searchEndpoint = "https://html.duckduckgo.com/html/"
)

// WebOptions configures the outbound HTTP behaviour shared by the web
// tools.
type WebOptions struct {
	Timeout         time.Duration
	MaxResponseSize int64
	UserAgent       string
}

func (o *WebOptions) applyDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = defaultWebTimeout
	}
	if o.MaxResponseSize <= 0 {
		o.MaxResponseSize = defaultMaxResponseSize
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
}

// SearchResult is a single hit returned by the search backend.
type SearchResult struct {
	Title   string
	Link    string
	Snippet string
}

// SearchTool queries the DuckDuckGo HTML endpoint and returns the top
// results as plain text blocks.
type SearchTool struct {
	client   *http.Client
	endpoint string
	opts     WebOptions
}

// SearchArgs represents the arguments for the web_search tool.
type SearchArgs struct {
	Query      string `json:"query"`                 // Search query
	MaxResults int    `json:"max_results,omitempty"` // Cap on returned results, defaults to 5
}

// NewSearchTool creates a SearchTool with the given options.
func NewSearchTool(opts WebOptions) *SearchTool {
	opts.applyDefaults()
	return &SearchTool{
		client:   &http.Client{Timeout: opts.Timeout},
		endpoint: searchEndpoint,
		opts:     opts,
	}
}

// Name returns the tool name.
func (t *SearchTool) Name() string {
	return "web_search"
}

// Description returns a description of what the tool does.
func (t *SearchTool) Description() string {
	return "Search the web and return the top results with title, link and snippet."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *SearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query.",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of results to return.",
				"default":     defaultMaxResults,
			},
		},
		"required": []string{"query"},
	}
}

// Execute runs the search and formats the results.
func (t *SearchTool) Execute(ctx context.Context, args string) (string, error) {
	var searchArgs SearchArgs
	if err := ParseArgs(args, &searchArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if strings.TrimSpace(searchArgs.Query) == "" {
		return "", fmt.Errorf("query is required")
	}
	if searchArgs.MaxResults <= 0 {
		searchArgs.MaxResults = defaultMaxResults
	}

	results, err := t.search(ctx, searchArgs.Query, searchArgs.MaxResults)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No results found.", nil
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s", r.Title, r.Link, r.Snippet))
	}
	return strings.Join(blocks, "\n---\n"), nil
}

func (t *SearchTool) search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", t.opts.UserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, NewUpstreamError(fmt.Sprintf("search request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewUpstreamError(fmt.Sprintf("search returned status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, t.opts.MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	var results []SearchResult
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("a.result__a").Text())
		link, _ := sel.Find("a.result__a").Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		if title == "" || link == "" {
			return true
		}
		results = append(results, SearchResult{
			Title:   title,
			Link:    cleanResultLink(link),
			Snippet: snippet,
		})
		return len(results) < limit
	})
	return results, nil
}

// cleanResultLink unwraps DuckDuckGo redirect links to the real target.
func cleanResultLink(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return link
}
