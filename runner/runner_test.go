package runner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
	"github.com/mikegehrke/webcheck360/pagespeed"
	"github.com/mikegehrke/webcheck360/screenshot"
	"github.com/mikegehrke/webcheck360/store"
)

const fixtureHTML = `<html><head>
	<title>Testbetrieb Berlin - Handwerk mit Tradition seit 1984</title>
</head><body>
	<h1>Willkommen</h1>
	<a href="/impressum">Impressum</a>
	<a href="/datenschutz">Datenschutz</a>
	<a href="/kontakt">Kontakt</a>
</body></html>`

func newTestRunner(st store.Store, psi pagespeed.Result) (*Runner, *httptest.Server) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fixtureHTML)
	}))
	return New(pagespeed.Static{Result: psi}, screenshot.Disabled{}, st, nil), server
}

func TestRunInvalidURL(t *testing.T) {
	r := New(pagespeed.Static{}, screenshot.Disabled{}, store.NewMemory(), nil)

	for _, raw := range []string{"", "   ", "https://"} {
		_, err := r.Run(context.Background(), audit.AnalyzeRequest{URL: raw}, i18n.LocaleDE)
		if err != ErrInvalidURL {
			t.Errorf("Run(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestRun(t *testing.T) {
	st := store.NewMemory()
	r, server := newTestRunner(st, pagespeed.Result{
		Performance:   90,
		Accessibility: 81,
		BestPractices: 80,
		SEO:           95,
	})
	defer server.Close()

	resp, err := r.Run(context.Background(), audit.AnalyzeRequest{URL: server.URL, Industry: "handwerk"}, i18n.LocaleDE)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if resp.AuditID == "" {
		t.Error("Expected an audit id")
	}
	if resp.Scores.Performance != 90 {
		t.Errorf("Expected performance 90, got %d", resp.Scores.Performance)
	}
	// Mobile UX is derived: round((90 + 81) / 2) = 86.
	if resp.Scores.MobileUX != 86 {
		t.Errorf("Expected mobile_ux 86, got %d", resp.Scores.MobileUX)
	}
	if resp.Scores.SEO == 0 || resp.Scores.Trust == 0 {
		t.Errorf("HTML analyzers did not run: %+v", resp.Scores)
	}

	// Issues arrive sorted most severe first.
	for i := 1; i < len(resp.Issues); i++ {
		if resp.Issues[i-1].Severity.Rank() > resp.Issues[i].Severity.Rank() {
			t.Errorf("Issues not sorted by severity at %d: %v", i, resp.Issues)
		}
	}

	// The audit is persisted with the same data.
	persisted, err := st.GetAudit(resp.AuditID)
	if err != nil {
		t.Fatalf("Audit not persisted: %v", err)
	}
	if persisted.ScoreTotal != resp.Score {
		t.Errorf("Persisted score %d differs from response %d", persisted.ScoreTotal, resp.Score)
	}
	if persisted.Domain != "127.0.0.1" {
		t.Errorf("Unexpected domain %q", persisted.Domain)
	}
	if persisted.Industry != "handwerk" {
		t.Errorf("Industry not carried: %q", persisted.Industry)
	}
	if persisted.RawData["rating"] == nil {
		t.Error("Raw analyzer data not attached")
	}
}

func TestRunLocalizesIssues(t *testing.T) {
	st := store.NewMemory()
	r, server := newTestRunner(st, pagespeed.Result{Performance: 50, Accessibility: 50})
	defer server.Close()

	resp, err := r.Run(context.Background(), audit.AnalyzeRequest{URL: server.URL}, i18n.LocaleEN)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var sawTranslated bool
	for _, issue := range resp.Issues {
		if i18n.HasTranslation(issue.ID, i18n.LocaleEN) {
			en := i18n.Localize(audit.Issue{ID: issue.ID}, i18n.LocaleEN)
			if issue.Title == en.Title {
				sawTranslated = true
			}
		}
	}
	if !sawTranslated {
		t.Error("Expected at least one issue with English text")
	}
}

// failingStore rejects every audit write.
type failingStore struct {
	store.Store
}

func (failingStore) CreateAudit(*audit.Audit) error {
	return errors.New("disk full")
}

func TestRunStoreFailureClearsAuditID(t *testing.T) {
	r, server := newTestRunner(failingStore{store.NewMemory()}, pagespeed.Result{Performance: 90, Accessibility: 80})
	defer server.Close()

	resp, err := r.Run(context.Background(), audit.AnalyzeRequest{URL: server.URL}, i18n.LocaleDE)
	if err != nil {
		t.Fatalf("Run should degrade on store failure, got %v", err)
	}

	// An id pointing at nothing would 404 on the results page.
	if resp.AuditID != "" {
		t.Errorf("Expected empty audit id for unpersisted audit, got %q", resp.AuditID)
	}
	if resp.Score == 0 {
		t.Error("Analysis result should survive the failed write")
	}
}

func TestRunUnreachableSiteDegrades(t *testing.T) {
	st := store.NewMemory()
	r := New(pagespeed.Static{Result: pagespeed.DefaultResult()}, screenshot.Disabled{}, st, nil)

	// Closed port: every HTML analyzer falls back to the default score.
	resp, err := r.Run(context.Background(), audit.AnalyzeRequest{URL: "http://127.0.0.1:1"}, i18n.LocaleDE)
	if err != nil {
		t.Fatalf("Run should not fail on unreachable sites: %v", err)
	}

	if resp.Scores.SEO != audit.DefaultScore ||
		resp.Scores.Trust != audit.DefaultScore ||
		resp.Scores.Conversion != audit.DefaultScore {
		t.Errorf("Expected default scores, got %+v", resp.Scores)
	}
	if resp.Score != 50 {
		t.Errorf("All-default audit should total 50, got %d", resp.Score)
	}

	ids := make(map[string]bool)
	for _, issue := range resp.Issues {
		ids[issue.ID] = true
	}
	for _, id := range []string{"seo-analysis-error", "trust-scan-error", "conversion-analysis-error"} {
		if !ids[id] {
			t.Errorf("Expected synthetic issue %s, got %v", id, ids)
		}
	}
}
