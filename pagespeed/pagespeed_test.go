package pagespeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const psiFixture = `{
	"lighthouseResult": {
		"categories": {
			"performance": {"score": 0.92},
			"accessibility": {"score": 0.88},
			"best-practices": {"score": 0.75},
			"seo": {"score": 1.0}
		},
		"audits": {
			"largest-contentful-paint": {"numericValue": 1800.5},
			"first-contentful-paint": {"numericValue": 900},
			"cumulative-layout-shift": {"numericValue": 0.02},
			"total-blocking-time": {"numericValue": 150},
			"speed-index": {"numericValue": 2100},
			"server-response-time": {"numericValue": 320}
		}
	}
}`

func TestClientMeasure(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, psiFixture)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	result := client.Measure(context.Background(), "https://example.de")

	if result.Performance != 92 {
		t.Errorf("Expected performance 92, got %d", result.Performance)
	}
	if result.Accessibility != 88 {
		t.Errorf("Expected accessibility 88, got %d", result.Accessibility)
	}
	if result.BestPractices != 75 {
		t.Errorf("Expected best practices 75, got %d", result.BestPractices)
	}
	if result.SEO != 100 {
		t.Errorf("Expected seo 100, got %d", result.SEO)
	}
	if result.Metrics.LCP != 1800.5 {
		t.Errorf("Expected LCP 1800.5, got %f", result.Metrics.LCP)
	}
	if result.Metrics.TTFB != 320 {
		t.Errorf("Expected TTFB 320, got %f", result.Metrics.TTFB)
	}
	// FID is approximated by total blocking time.
	if result.Metrics.FID != 150 {
		t.Errorf("Expected FID 150, got %f", result.Metrics.FID)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}

	for _, fragment := range []string{"strategy=mobile", "category=performance", "category=accessibility", "key=test-key"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Errorf("Query %q missing %q", gotQuery, fragment)
		}
	}
}

func TestClientMeasureAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result := client.Measure(context.Background(), "https://example.de")

	if result.Performance != 50 || result.Accessibility != 50 {
		t.Errorf("Expected neutral default scores, got %+v", result)
	}
	if len(result.Errors) == 0 {
		t.Error("Expected error to be recorded")
	}
	if result.Metrics.LCP != 2500 {
		t.Errorf("Expected fallback LCP 2500, got %f", result.Metrics.LCP)
	}
}

func TestClientMeasureMissingCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"lighthouseResult": {"categories": {}, "audits": {}}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result := client.Measure(context.Background(), "https://example.de")

	// Absent categories score the documented 0.5 default.
	if result.Performance != 50 || result.SEO != 50 {
		t.Errorf("Expected 50 for missing categories, got %+v", result)
	}
	if result.Metrics.TBT != 200 {
		t.Errorf("Expected fallback TBT 200, got %f", result.Metrics.TBT)
	}
}

func TestStaticProvider(t *testing.T) {
	static := Static{Result: Result{Performance: 77}}
	if got := static.Measure(context.Background(), "https://example.de"); got.Performance != 77 {
		t.Errorf("Expected 77, got %d", got.Performance)
	}
}
