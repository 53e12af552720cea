// Package pagespeed measures page performance through an external
// page-speed service. The provider is selected once at startup; business
// logic never branches on the environment.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Google PageSpeed Insights v5 API.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// The lab run has a hard ceiling below typical serverless limits.
const requestTimeout = 55 * time.Second

// Metrics holds the six lab timing metrics. FID cannot be measured in the
// lab, so total blocking time stands in for it.
type Metrics struct {
	LCP  float64 `json:"lcp"`
	FID  float64 `json:"fid"`
	CLS  float64 `json:"cls"`
	TTFB float64 `json:"ttfb"`
	FCP  float64 `json:"fcp"`
	SI   float64 `json:"si"`
	TBT  float64 `json:"tbt"`
}

// Result holds the category scores (0-100) and lab metrics of one run.
type Result struct {
	Performance   int      `json:"performance"`
	Accessibility int      `json:"accessibility"`
	BestPractices int      `json:"bestPractices"`
	SEO           int      `json:"seo"`
	Metrics       Metrics  `json:"metrics"`
	Errors        []string `json:"errors,omitempty"`
}

// DefaultResult is the neutral fallback when the measurement fails.
func DefaultResult(errs ...string) Result {
	return Result{
		Performance:   50,
		Accessibility: 50,
		BestPractices: 50,
		SEO:           50,
		Metrics: Metrics{
			LCP:  2500,
			FID:  100,
			CLS:  0.1,
			TTFB: 800,
			FCP:  1800,
			SI:   3000,
			TBT:  200,
		},
		Errors: errs,
	}
}

// Provider measures a URL. Implementations never return an error; on
// failure they resolve to DefaultResult.
type Provider interface {
	Measure(ctx context.Context, targetURL string) Result
}

// Client is the PageSpeed Insights API provider. Requests are paced so a
// burst of audits does not trip the API quota.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a PSI client. An empty endpoint selects the Google
// API; the key is optional for low volume.
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		limiter:  rate.NewLimiter(rate.Limit(1), 2),
	}
}

// Measure runs a mobile-strategy lab measurement for all four categories.
func (c *Client) Measure(ctx context.Context, targetURL string) Result {
	if err := c.limiter.Wait(ctx); err != nil {
		return DefaultResult(err.Error())
	}

	apiURL := fmt.Sprintf(
		"%s?url=%s&strategy=mobile&category=performance&category=accessibility&category=best-practices&category=seo",
		c.endpoint, url.QueryEscape(targetURL),
	)
	if c.apiKey != "" {
		apiURL += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return DefaultResult(err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("pagespeed: request failed for %s: %v", targetURL, err)
		return DefaultResult(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("pagespeed: API returned status %d for %s", resp.StatusCode, targetURL)
		return DefaultResult(fmt.Sprintf("pagespeed API status %d", resp.StatusCode))
	}

	var psi psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&psi); err != nil {
		return DefaultResult(err.Error())
	}
	if psi.LighthouseResult == nil {
		return DefaultResult("no lighthouse result in response")
	}

	lr := psi.LighthouseResult
	result := Result{
		Performance:   categoryScore(lr.Categories, "performance"),
		Accessibility: categoryScore(lr.Categories, "accessibility"),
		BestPractices: categoryScore(lr.Categories, "best-practices"),
		SEO:           categoryScore(lr.Categories, "seo"),
		Metrics: Metrics{
			LCP:  auditValue(lr.Audits, "largest-contentful-paint", 2500),
			FCP:  auditValue(lr.Audits, "first-contentful-paint", 1800),
			CLS:  auditValue(lr.Audits, "cumulative-layout-shift", 0.1),
			TBT:  auditValue(lr.Audits, "total-blocking-time", 200),
			SI:   auditValue(lr.Audits, "speed-index", 3000),
			TTFB: auditValue(lr.Audits, "server-response-time", 800),
			FID:  auditValue(lr.Audits, "total-blocking-time", 100),
		},
	}
	return result
}

func categoryScore(categories map[string]psiCategory, name string) int {
	score := 0.5
	if c, ok := categories[name]; ok && c.Score != nil {
		score = *c.Score
	}
	return int(math.Round(score * 100))
}

func auditValue(audits map[string]psiAudit, name string, fallback float64) float64 {
	if a, ok := audits[name]; ok && a.NumericValue != nil {
		return *a.NumericValue
	}
	return fallback
}

type psiResponse struct {
	LighthouseResult *psiLighthouse `json:"lighthouseResult"`
}

type psiLighthouse struct {
	Categories map[string]psiCategory `json:"categories"`
	Audits     map[string]psiAudit    `json:"audits"`
}

type psiCategory struct {
	Score *float64 `json:"score"`
}

type psiAudit struct {
	NumericValue *float64 `json:"numericValue"`
	DisplayValue string   `json:"displayValue"`
}

// Static always returns a fixed result. Used when no measurement service
// is configured and in tests.
type Static struct {
	Result Result
}

// Measure returns the fixed result.
func (s Static) Measure(context.Context, string) Result {
	return s.Result
}
