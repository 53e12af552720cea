// Package runner orchestrates a full audit: it fans out the analyzers
// concurrently, merges their results into one audit record and persists it.
package runner

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikegehrke/webcheck360/analyzer"
	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
	"github.com/mikegehrke/webcheck360/pagespeed"
	"github.com/mikegehrke/webcheck360/scoring"
	"github.com/mikegehrke/webcheck360/screenshot"
	"github.com/mikegehrke/webcheck360/stats"
	"github.com/mikegehrke/webcheck360/store"
	"github.com/mikegehrke/webcheck360/urlutil"
)

// ErrInvalidURL rejects input that cannot be turned into an absolute
// http(s) URL. It is the only error Run returns before analysis starts.
var ErrInvalidURL = errors.New("runner: invalid url")

// runTimeout caps one complete audit. Individual analyzers carry their
// own shorter timeouts; this is the ceiling for the whole fan-out.
const runTimeout = 60 * time.Second

// Runner wires the analyzers, the score engine and the store together.
type Runner struct {
	seo        *analyzer.SEO
	trust      *analyzer.Trust
	conversion *analyzer.Conversion
	pagespeed  pagespeed.Provider
	screenshot screenshot.Provider
	store      store.Store
	funnel     *stats.Storage
}

// New creates a runner. The fetcher is shared across the HTML analyzers
// so they reuse one connection pool. funnel may be nil.
func New(psi pagespeed.Provider, shots screenshot.Provider, st store.Store, funnel *stats.Storage) *Runner {
	fetcher := analyzer.NewFetcher()
	return &Runner{
		seo:        analyzer.NewSEO(fetcher),
		trust:      analyzer.NewTrust(fetcher),
		conversion: analyzer.NewConversion(fetcher),
		pagespeed:  psi,
		screenshot: shots,
		store:      st,
		funnel:     funnel,
	}
}

// Run validates and normalizes the URL, runs all analyzers concurrently,
// scores the result and persists the audit. Analyzer failures never fail
// the run; each degraded analyzer contributes its neutral default score.
// A persistence failure is logged and the response returned anyway.
func (r *Runner) Run(ctx context.Context, req audit.AnalyzeRequest, locale i18n.Locale) (*audit.AnalyzeResponse, error) {
	normalized := urlutil.Normalize(req.URL)
	if !urlutil.IsValid(normalized) {
		return nil, ErrInvalidURL
	}
	domain := urlutil.ExtractDomain(normalized)

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	started := time.Now()
	log.Printf("audit started: %s", domain)

	var (
		psiRes   pagespeed.Result
		seoRes   analyzer.SEOResult
		trustRes analyzer.TrustResult
		convRes  analyzer.ConversionResult
		shots    audit.Screenshots
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		psiRes = r.pagespeed.Measure(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		seoRes = r.seo.Analyze(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		trustRes = r.trust.Analyze(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		convRes = r.conversion.Analyze(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		shots = r.screenshot.Capture(ctx, normalized)
	}()
	wg.Wait()

	scores := audit.Scores{
		Performance: psiRes.Performance,
		MobileUX:    int(math.Round(float64(psiRes.Performance+psiRes.Accessibility) / 2)),
		SEO:         seoRes.Score,
		Trust:       trustRes.Score,
		Conversion:  convRes.Score,
	}

	issues := make([]audit.Issue, 0, len(seoRes.Issues)+len(trustRes.Issues)+len(convRes.Issues))
	issues = append(issues, seoRes.Issues...)
	issues = append(issues, trustRes.Issues...)
	issues = append(issues, convRes.Issues...)
	issues = scoring.SortBySeverity(issues)
	issues = i18n.LocalizeIssues(issues, locale)

	result := scoring.Process(scores, issues, locale)

	now := time.Now()
	a := &audit.Audit{
		ID:          uuid.NewString(),
		URL:         normalized,
		Domain:      domain,
		ScoreTotal:  result.Total,
		Scores:      scores,
		Issues:      issues,
		Screenshots: shots,
		RawData: map[string]any{
			"pagespeed":  psiRes,
			"seo":        seoRes.Data,
			"trust":      trustRes.Data,
			"conversion": convRes.Data,
			"rating":     result.Rating,
			"summary":    result.Summary,
		},
		Industry:  req.Industry,
		Goal:      req.Goal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	auditID := a.ID
	if err := r.store.CreateAudit(a); err != nil {
		log.Printf("audit not persisted: %s: %v", domain, err)
		// No stored record to point the results page at.
		auditID = ""
	}

	if r.funnel != nil {
		failures := countAnalyzerFailures(psiRes, issues)
		_, shotsOff := r.screenshot.(screenshot.Disabled)
		shotsFailed := !shotsOff && shots.Desktop == "" && shots.Mobile == ""
		r.funnel.RecordAudit(failures, shotsFailed)
	}

	log.Printf("audit finished: %s score=%d rating=%s duration=%s",
		domain, result.Total, result.Rating, time.Since(started).Round(time.Millisecond))

	return &audit.AnalyzeResponse{
		AuditID:     auditID,
		Score:       result.Total,
		Scores:      scores,
		Issues:      issues,
		Screenshots: shots,
	}, nil
}

// countAnalyzerFailures counts analyzers that fell back to their neutral
// default, identified by their synthetic error issues or reported errors.
func countAnalyzerFailures(psi pagespeed.Result, issues []audit.Issue) int {
	n := 0
	if len(psi.Errors) > 0 {
		n++
	}
	for _, issue := range issues {
		switch issue.ID {
		case "seo-analysis-error", "trust-scan-error", "conversion-analysis-error":
			n++
		}
	}
	return n
}
