package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikegehrke/webcheck360/audit"
)

func mustPage(t *testing.T, url, html string) *Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return &Page{URL: url, HTML: html, Doc: doc}
}

func issueIDs(issues []audit.Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}
	return ids
}

func hasIssue(issues []audit.Issue, id string) bool {
	for _, issue := range issues {
		if issue.ID == id {
			return true
		}
	}
	return false
}

func TestAnalyzeSEOPage(t *testing.T) {
	t.Run("FullScorePage", func(t *testing.T) {
		desc := strings.Repeat("a", 130)
		html := fmt.Sprintf(`<html><head>
			<title>Handwerk Meyer Berlin - Ihr Dachdecker mit Erfahrung</title>
			<meta name="description" content="%s">
			<link rel="canonical" href="https://example.de/">
			<meta property="og:title" content="Handwerk Meyer">
			<meta property="og:description" content="Dachdecker in Berlin">
			<meta property="og:image" content="https://example.de/og.png">
			<script type="application/ld+json">{"@type":"LocalBusiness"}</script>
		</head><body>
			<h1>Dachdecker in Berlin</h1>
			<img src="a.jpg" alt="Dach"><img src="b.jpg" alt="Team">
			<a href="/leistungen">Leistungen</a>
			<a href="/ueber-uns">Ueber uns</a>
			<a href="/kontakt">Kontakt</a>
		</body></html>`, desc)

		result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))

		if result.Score != 100 {
			t.Errorf("Expected score 100, got %d (issues: %v)", result.Score, issueIDs(result.Issues))
		}
		if len(result.Issues) != 0 {
			t.Errorf("Expected no issues, got %v", issueIDs(result.Issues))
		}
		if result.Data.TitleLength != 52 {
			t.Errorf("Expected title length 52, got %d", result.Data.TitleLength)
		}
		if result.Data.InternalLinks != 3 {
			t.Errorf("Expected 3 internal links, got %d", result.Data.InternalLinks)
		}
	})

	t.Run("EmptyPage", func(t *testing.T) {
		result := AnalyzeSEOPage(mustPage(t, "https://example.de", "<html><head></head><body></body></html>"))

		// Only the image-alt budget is granted on a page with no images.
		if result.Score != 15 {
			t.Errorf("Expected score 15, got %d", result.Score)
		}
		for _, id := range []string{"seo-no-title", "seo-no-description", "seo-no-h1", "seo-no-canonical", "seo-no-og", "seo-no-structured-data"} {
			if !hasIssue(result.Issues, id) {
				t.Errorf("Expected issue %s, got %v", id, issueIDs(result.Issues))
			}
		}
	})

	t.Run("TitleLengthBoundaries", func(t *testing.T) {
		for _, length := range []int{30, 60} {
			html := fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>", strings.Repeat("x", length))
			result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))
			if hasIssue(result.Issues, "seo-title-length") {
				t.Errorf("Title of length %d should not be flagged", length)
			}
		}
		for _, length := range []int{29, 61} {
			html := fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>", strings.Repeat("x", length))
			result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))
			if !hasIssue(result.Issues, "seo-title-length") {
				t.Errorf("Title of length %d should be flagged", length)
			}
		}
	})

	t.Run("TitleLengthCountsRunes", func(t *testing.T) {
		// 59 characters but 61 bytes because of the two umlauts.
		title := strings.Repeat("x", 57) + "äö"
		html := fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>", title)
		result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))
		if result.Data.TitleLength != 59 {
			t.Errorf("Expected title length 59, got %d", result.Data.TitleLength)
		}
		if hasIssue(result.Issues, "seo-title-length") {
			t.Error("Umlaut title within bounds should not be flagged")
		}
	})

	t.Run("MultipleH1", func(t *testing.T) {
		html := "<html><body><h1>One</h1><h1>Two</h1></body></html>"
		result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))
		if !hasIssue(result.Issues, "seo-multiple-h1") {
			t.Errorf("Expected seo-multiple-h1, got %v", issueIDs(result.Issues))
		}
		if result.Data.H1Count != 2 {
			t.Errorf("Expected 2 h1 elements, got %d", result.Data.H1Count)
		}
	})

	t.Run("LowAltCoverage", func(t *testing.T) {
		// 1 of 4 images has alt text: high severity, partial credit.
		html := `<html><body>
			<img src="a.jpg" alt="ok"><img src="b.jpg"><img src="c.jpg"><img src="d.jpg">
		</body></html>`
		result := AnalyzeSEOPage(mustPage(t, "https://example.de", html))

		var found *audit.Issue
		for i := range result.Issues {
			if result.Issues[i].ID == "seo-images-alt" {
				found = &result.Issues[i]
			}
		}
		if found == nil {
			t.Fatalf("Expected seo-images-alt, got %v", issueIDs(result.Issues))
		}
		if found.Severity != audit.SeverityHigh {
			t.Errorf("Expected high severity below 50%% coverage, got %s", found.Severity)
		}
	})

	t.Run("ExternalLinks", func(t *testing.T) {
		html := `<html><body>
			<a href="https://example.de/intern">Intern</a>
			<a href="https://other.com/">Extern</a>
			<a href="tel:+4930123456">Anrufen</a>
		</body></html>`
		result := AnalyzeSEOPage(mustPage(t, "https://example.de/page", html))
		if result.Data.InternalLinks != 2 {
			t.Errorf("Expected 2 internal links, got %d", result.Data.InternalLinks)
		}
		if result.Data.ExternalLinks != 1 {
			t.Errorf("Expected 1 external link, got %d", result.Data.ExternalLinks)
		}
	})
}

func TestAnalyzeTrustPage(t *testing.T) {
	t.Run("FullScorePage", func(t *testing.T) {
		html := `<html><body>
			<div class="cookie-banner">Wir verwenden Cookies</div>
			<p>Meisterbetrieb, TÜV zertifiziert und ausgezeichnet. Über 500 zufriedene Kunden.</p>
			<p>Musterstraße 5, 10115 Berlin</p>
			<p>Telefon: 030 1234567, E-Mail: info@example.de</p>
			<a href="tel:+49301234567">Anrufen</a>
			<a href="/impressum">Impressum</a>
			<a href="/datenschutz">Datenschutz</a>
			<a href="/kontakt">Kontakt</a>
		</body></html>`
		result := AnalyzeTrustPage(mustPage(t, "https://example.de", html))

		if result.Score != 100 {
			t.Errorf("Expected score 100, got %d (issues: %v)", result.Score, issueIDs(result.Issues))
		}
		if len(result.Issues) != 0 {
			t.Errorf("Expected no issues, got %v", issueIDs(result.Issues))
		}
	})

	t.Run("BarePage", func(t *testing.T) {
		result := AnalyzeTrustPage(mustPage(t, "http://example.de", "<html><body><p>hallo welt</p></body></html>"))

		if result.Score != 0 {
			t.Errorf("Expected score 0, got %d", result.Score)
		}
		for _, id := range []string{"trust-no-https", "trust-no-impressum", "trust-no-privacy", "trust-no-contact", "trust-no-cookie-banner"} {
			if !hasIssue(result.Issues, id) {
				t.Errorf("Expected issue %s, got %v", id, issueIDs(result.Issues))
			}
		}
	})

	t.Run("HTTPSFromScheme", func(t *testing.T) {
		html := "<html><body></body></html>"
		httpsResult := AnalyzeTrustPage(mustPage(t, "https://example.de", html))
		httpResult := AnalyzeTrustPage(mustPage(t, "http://example.de", html))

		if !httpsResult.Data.HasHTTPS {
			t.Error("https URL should set HasHTTPS")
		}
		if httpResult.Data.HasHTTPS {
			t.Error("http URL should not set HasHTTPS")
		}
		if httpsResult.Score-httpResult.Score != 15 {
			t.Errorf("HTTPS should be worth 15 points, diff was %d", httpsResult.Score-httpResult.Score)
		}
	})

	t.Run("MissingEmailStaysSilent", func(t *testing.T) {
		result := AnalyzeTrustPage(mustPage(t, "https://example.de", "<html><body></body></html>"))
		if hasIssue(result.Issues, "trust-no-email") {
			t.Error("Missing email must not produce an issue")
		}
	})

	t.Run("EnglishImprint", func(t *testing.T) {
		html := `<html><body><a href="/imprint">Imprint</a><a href="/privacy">Privacy Policy</a></body></html>`
		result := AnalyzeTrustPage(mustPage(t, "https://example.com", html))
		if !result.Data.HasImpressum {
			t.Error("English imprint link should count")
		}
		if !result.Data.HasPrivacy {
			t.Error("English privacy link should count")
		}
	})
}

func TestAnalyzeConversionPage(t *testing.T) {
	t.Run("FullScorePage", func(t *testing.T) {
		html := `<html><body>
			<header><a class="btn" href="/kontakt">Jetzt anfragen</a></header>
			<nav><button class="menu-toggle" aria-label="menu">Menu</button></nav>
			<p>Kostenlose Beratung, über 20 Jahre Erfahrung.</p>
			<button class="cta">Termin vereinbaren</button>
			<a class="button" href="https://wa.me/49301234567">WhatsApp</a>
			<a href="tel:+49301234567">Jetzt anrufen</a>
			<iframe src="https://calendly.com/meyer"></iframe>
			<form><input type="email" name="email"><input type="text" name="name"></form>
		</body></html>`
		result := AnalyzeConversionPage(mustPage(t, "https://example.de", html))

		if result.Score != 100 {
			t.Errorf("Expected score 100, got %d (issues: %v)", result.Score, issueIDs(result.Issues))
		}
		if result.Data.CTACount < 3 {
			t.Errorf("Expected at least 3 CTAs, got %d", result.Data.CTACount)
		}
	})

	t.Run("BarePage", func(t *testing.T) {
		result := AnalyzeConversionPage(mustPage(t, "https://example.de", "<html><body><p>hallo</p></body></html>"))

		if result.Score != 0 {
			t.Errorf("Expected score 0, got %d", result.Score)
		}
		for _, id := range []string{
			"conversion-no-cta", "conversion-cta-below-fold", "conversion-no-form",
			"conversion-phone-not-clickable", "conversion-no-instant-contact",
			"conversion-no-mobile-menu", "conversion-no-value-proposition",
		} {
			if !hasIssue(result.Issues, id) {
				t.Errorf("Expected issue %s, got %v", id, issueIDs(result.Issues))
			}
		}
	})

	t.Run("FewCTAs", func(t *testing.T) {
		html := `<html><body><button>Jetzt anfragen</button></body></html>`
		result := AnalyzeConversionPage(mustPage(t, "https://example.de", html))
		if !hasIssue(result.Issues, "conversion-few-ctas") {
			t.Errorf("Expected conversion-few-ctas, got %v", issueIDs(result.Issues))
		}
		if hasIssue(result.Issues, "conversion-no-cta") {
			t.Error("Single CTA must not produce conversion-no-cta")
		}
	})

	t.Run("StandaloneURLInputCountsAsForm", func(t *testing.T) {
		html := `<html><body><input type="url" placeholder="Ihre Website"></body></html>`
		result := AnalyzeConversionPage(mustPage(t, "https://example.de", html))
		if !result.Data.HasContactForm {
			t.Error("Standalone url input should count as a contact form")
		}
	})

	t.Run("MissingBookingStaysSilent", func(t *testing.T) {
		result := AnalyzeConversionPage(mustPage(t, "https://example.de", "<html><body></body></html>"))
		if hasIssue(result.Issues, "conversion-no-booking") {
			t.Error("Missing booking system must not produce an issue")
		}
	})
}

func TestAnalyzerFallback(t *testing.T) {
	// Server that always fails forces every analyzer into its default result.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher()
	ctx := context.Background()

	seo := NewSEO(fetcher).Analyze(ctx, server.URL)
	if seo.Score != audit.DefaultScore || !hasIssue(seo.Issues, "seo-analysis-error") {
		t.Errorf("SEO fallback wrong: score=%d issues=%v", seo.Score, issueIDs(seo.Issues))
	}

	trust := NewTrust(fetcher).Analyze(ctx, server.URL)
	if trust.Score != audit.DefaultScore || !hasIssue(trust.Issues, "trust-scan-error") {
		t.Errorf("Trust fallback wrong: score=%d issues=%v", trust.Score, issueIDs(trust.Issues))
	}

	conv := NewConversion(fetcher).Analyze(ctx, server.URL)
	if conv.Score != audit.DefaultScore || !hasIssue(conv.Issues, "conversion-analysis-error") {
		t.Errorf("Conversion fallback wrong: score=%d issues=%v", conv.Score, issueIDs(conv.Issues))
	}
}

func TestFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "<html><head><title>UA: %s</title></head></html>", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	fetcher := NewFetcher()

	page, err := fetcher.Fetch(context.Background(), server.URL, MobileUserAgent)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	title := page.Doc.Find("title").Text()
	if !strings.Contains(title, "iPhone") {
		t.Errorf("Expected mobile user agent to be sent, got title %q", title)
	}

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/missing", DesktopUserAgent); err == nil {
		t.Error("Expected error for 404 response")
	}
}
