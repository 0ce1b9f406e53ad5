package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/wasilibs/go-re2"
)

var (
	// Collapses runs of spaces and tabs inside a line. Newlines are kept
	// so paragraph structure survives.
	inlineSpaceRe = re2.MustCompile(`[ \t]+`)
	// Collapses runs of three or more newlines down to a blank line.
	blankRunRe = re2.MustCompile(`\n{3,}`)
)

// ScrapeTool fetches a page and returns its readable text. With
// markdown output the page structure (headings, lists, links) is kept.
type ScrapeTool struct {
	client    *http.Client
	opts      WebOptions
	converter *md.Converter
}

// ScrapeArgs represents the arguments for the web_scrape tool.
type ScrapeArgs struct {
	URL      string `json:"url"`                // Page to fetch
	Markdown bool   `json:"markdown,omitempty"` // Return markdown instead of plain text
}

// NewScrapeTool creates a ScrapeTool with the given options.
func NewScrapeTool(opts WebOptions) *ScrapeTool {
	opts.applyDefaults()
	return &ScrapeTool{
		client:    &http.Client{Timeout: opts.Timeout},
		opts:      opts,
		converter: md.NewConverter("", true, nil),
	}
}

// Name returns the tool name.
func (t *ScrapeTool) Name() string {
	return "web_scrape"
}

// Description returns a description of what the tool does.
func (t *ScrapeTool) Description() string {
	return "Fetch a web page and return its text content, optionally as markdown."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ScrapeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "The URL of the page to fetch.",
			},
			"markdown": map[string]interface{}{
				"type":        "boolean",
				"description": "Return markdown preserving headings, lists and links.",
				"default":     false,
			},
		},
		"required": []string{"url"},
	}
}

// Execute fetches the page and extracts its content.
func (t *ScrapeTool) Execute(ctx context.Context, args string) (string, error) {
	var scrapeArgs ScrapeArgs
	if err := ParseArgs(args, &scrapeArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if scrapeArgs.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(scrapeArgs.URL, "http://") && !strings.HasPrefix(scrapeArgs.URL, "https://") {
		return "", fmt.Errorf("url must start with http:// or https://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scrapeArgs.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", t.opts.UserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", NewUpstreamError(fmt.Sprintf("fetch failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewUpstreamError(fmt.Sprintf("fetch returned status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, t.opts.MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	if scrapeArgs.Markdown {
		html, err := doc.Find("body").Html()
		if err != nil || html == "" {
			if html, err = doc.Html(); err != nil {
				return "", fmt.Errorf("failed to render page: %w", err)
			}
		}
		markdown, err := t.converter.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("failed to convert page to markdown: %w", err)
		}
		return strings.TrimSpace(markdown), nil
	}

	return normalizeText(doc.Text()), nil
}

// normalizeText collapses horizontal whitespace per line and squeezes
// long blank runs, keeping line breaks intact.
func normalizeText(text string) string {
	text = inlineSpaceRe.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
