// Package scrape fetches job postings from the web and reduces them to text.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/PuerkitoBio/goquery"
)

// ErrorPrefix starts the detail of every fetch failure.
const ErrorPrefix = "Kunde inte hämta jobbannons från URL: "

// maxBodySize caps how much of a posting page is read.
const maxBodySize = 10 << 20

// Fetcher retrieves job posting pages.
type Fetcher struct {
	client    *http.Client
	userAgent string
	browser   config.BrowserConfig

	// render returns the script-rendered HTML of a page
	render func(ctx context.Context, pageURL string) (string, error)
}

// New creates a Fetcher from the scrape configuration.
func New(cfg config.ScrapeConfig) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		browser:   cfg.Browser,
	}
	f.render = func(ctx context.Context, pageURL string) (string, error) {
		return renderWithBrowser(ctx, pageURL, f.browser)
	}
	return f
}

// Fetch downloads pageURL and returns its visible text. When the plain
// download yields no text and the browser fallback is enabled, the page is
// rendered in headless Chrome instead.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		if err == nil {
			err = fmt.Errorf("invalid URL %q", pageURL)
		}
		return "", fetchError(err)
	}

	html, err := f.get(ctx, pageURL)
	if err != nil {
		return "", fetchError(err)
	}

	text, err := HTMLToText(html)
	if err != nil {
		return "", fetchError(err)
	}
	if text != "" || !f.browser.Enabled {
		return text, nil
	}

	rendered, err := f.render(ctx, pageURL)
	if err != nil {
		return "", fetchError(err)
	}
	text, err = HTMLToText(rendered)
	if err != nil {
		return "", fetchError(err)
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchError wraps err so that its detail reads ErrorPrefix followed by the cause
func fetchError(err error) error {
	return errors.NewNetworkError(errors.ErrCodeScrapeFailed, strings.TrimSuffix(ErrorPrefix, ": "), err)
}

// HTMLToText drops script, style and noscript elements and returns the
// remaining document text, one non-empty chunk per line.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	return CleanText(doc.Text()), nil
}

// CleanText trims every line, splits lines on double spaces and joins the
// non-empty chunks with newlines.
func CleanText(text string) string {
	var chunks []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, "\n")
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
