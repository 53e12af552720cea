package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// User agents used for the HTML fetches. The conversion analyzer fetches
// with a mobile agent because its heuristics target mobile visitors.
const (
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	MobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	fetchTimeout = 15 * time.Second
)

// Page is one fetched HTML document ready for heuristic inspection.
type Page struct {
	URL  string
	HTML string
	Doc  *goquery.Document
}

// Fetcher retrieves HTML documents. A single instance is shared by the
// HTML-based analyzers; the client pools connections across requests.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with connection pooling and the analyzer
// fetch timeout.
func NewFetcher() *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: transport,
		},
	}
}

// Fetch downloads and parses a page. Non-2xx responses are treated as
// failures so the calling analyzer falls back to its default result.
func (f *Fetcher) Fetch(ctx context.Context, url, userAgent string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	return &Page{URL: url, HTML: buf.String(), Doc: doc}, nil
}
