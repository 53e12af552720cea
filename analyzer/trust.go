package analyzer

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
)

// Phone and address heuristics are tuned for the German market (national
// phone format, five-digit postal codes) with generic international
// fallbacks.
var (
	phoneGermanRe        = regexp.MustCompile(`(\+49|0049|0)\s*[1-9][0-9]{1,4}\s*[/\-]?\s*[0-9]{3,}`)
	phoneInternationalRe = regexp.MustCompile(`\+\d{1,3}[\s.\-]?\(?\d{1,4}\)?[\s.\-]?\d{1,4}[\s.\-]?\d{1,9}`)
	emailRe              = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	addressRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{5}\s+[a-zäöüß]+`),
		regexp.MustCompile(`(?i)straße|strasse|str\.|weg|platz|allee|ring`),
		regexp.MustCompile(`(?i)street|road|avenue|lane`),
	}
	socialProofRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)kunde|kunden|kundenstimme|referenz|partner|zertifiziert|ausgezeichnet|award`),
		regexp.MustCompile(`(?i)customer|client|testimonial|partner|certified|award`),
		regexp.MustCompile(`(?i)google|facebook|instagram|linkedin|xing|trustpilot|provenexpert`),
	}
	reviewRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bewertung|rezension|sterne|★|⭐|rating|review`),
		regexp.MustCompile(`(?i)google\s*bewertung|facebook\s*bewertung`),
		regexp.MustCompile(`(?i)trustpilot|provenexpert|yelp|tripadvisor`),
	}
	trustLogoRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tuev|tüv|iso|din|gütesiegel|trusted|ssl|secure`),
		regexp.MustCompile(`(?i)mastercard|visa|paypal|klarna|sofort`),
	}
	cookieBannerRe = regexp.MustCompile(`(?i)cookie|consent|dsgvo|gdpr`)
)

// Trust inspects a page for legal-compliance and credibility signals.
type Trust struct {
	fetcher *Fetcher
}

// NewTrust creates the trust analyzer.
func NewTrust(fetcher *Fetcher) *Trust {
	return &Trust{fetcher: fetcher}
}

// Analyze fetches the page and scores it, falling back to the default
// result when the fetch fails.
func (a *Trust) Analyze(ctx context.Context, pageURL string) TrustResult {
	page, err := a.fetcher.Fetch(ctx, pageURL, DesktopUserAgent)
	if err != nil {
		log.Printf("trust: fetch failed for %s: %v", pageURL, err)
		return TrustResult{
			Score:  audit.DefaultScore,
			Issues: []audit.Issue{i18n.NewIssue("trust-scan-error", audit.CategoryTrust, audit.SeverityWarning)},
		}
	}
	return AnalyzeTrustPage(page)
}

// AnalyzeTrustPage scores an already fetched page. The HTTPS signal is
// pure URL-scheme inspection, no extra round-trip.
func AnalyzeTrustPage(page *Page) TrustResult {
	doc := page.Doc
	result := TrustResult{Issues: []audit.Issue{}}
	data := &result.Data

	bodyText := strings.ToLower(doc.Find("body").Text())
	htmlLower := strings.ToLower(page.HTML)

	data.HasHTTPS = strings.HasPrefix(page.URL, "https://")

	var hrefs, linkTexts strings.Builder
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs.WriteString(strings.ToLower(href))
		hrefs.WriteByte(' ')
		linkTexts.WriteString(strings.ToLower(s.Text()))
		linkTexts.WriteByte(' ')
	})
	links := hrefs.String() + linkTexts.String()

	data.HasImpressum = strings.Contains(links, "impressum") || strings.Contains(links, "imprint")
	data.HasPrivacy = strings.Contains(links, "datenschutz") || strings.Contains(links, "privacy")
	data.HasContact = strings.Contains(links, "kontakt") || strings.Contains(links, "contact")

	data.HasPhone = phoneGermanRe.MatchString(bodyText) ||
		phoneInternationalRe.MatchString(bodyText) ||
		strings.Contains(htmlLower, "tel:")
	data.HasEmail = emailRe.MatchString(bodyText) || strings.Contains(htmlLower, "mailto:")
	data.HasAddress = anyMatch(addressRes, bodyText)
	data.HasSocialProof = anyMatch(socialProofRes, bodyText)
	data.HasReviews = anyMatch(reviewRes, bodyText) ||
		doc.Find(`[class*="review"], [class*="rating"], [class*="stars"], [class*="testimonial"]`).Length() > 0
	data.HasLogos = anyMatch(trustLogoRes, bodyText) ||
		doc.Find(`[class*="trust"], [class*="badge"], [class*="seal"], [class*="partner"]`).Length() > 0
	data.HasCookieBanner = doc.Find(`[class*="cookie"], [id*="cookie"], [class*="consent"], [id*="consent"]`).Length() > 0 ||
		cookieBannerRe.MatchString(htmlLower)

	// Point budget, 100 total. Missing email and logos stay silent.
	points := 0
	if data.HasHTTPS {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-https", audit.CategoryTrust, audit.SeverityCritical))
	}
	if data.HasImpressum {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-impressum", audit.CategoryTrust, audit.SeverityCritical))
	}
	if data.HasPrivacy {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-privacy", audit.CategoryTrust, audit.SeverityCritical))
	}
	if data.HasContact {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-contact", audit.CategoryTrust, audit.SeverityHigh))
	}
	if data.HasPhone {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-phone", audit.CategoryTrust, audit.SeverityWarning))
	}
	if data.HasEmail {
		points += 5
	}
	if data.HasAddress {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-address", audit.CategoryTrust, audit.SeverityWarning))
	}
	if data.HasSocialProof || data.HasReviews {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-social-proof", audit.CategoryTrust, audit.SeverityWarning))
	}
	if data.HasLogos {
		points += 5
	}
	if data.HasCookieBanner {
		points += 5
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("trust-no-cookie-banner", audit.CategoryTrust, audit.SeverityHigh))
	}

	result.Score = points
	return result
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
