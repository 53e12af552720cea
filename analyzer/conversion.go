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

// CTA and value-proposition wording is tuned for German-market sites with
// English fallbacks, mirroring the trust heuristics.
var (
	ctaRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)jetzt\s+(anfragen|buchen|bestellen|kaufen|kontakt|termin|testen|starten|analysieren|anrufen|loslegen)`),
		regexp.MustCompile(`(?i)kostenlos\s+(anfragen|beraten|testen|starten|analysieren)`),
		regexp.MustCompile(`(?i)termin\s+(vereinbaren|buchen|machen)`),
		regexp.MustCompile(`(?i)(kontakt|anfrage|beratung)\s*(aufnehmen)?`),
		regexp.MustCompile(`(?i)call\s+to\s+action|book\s+now|contact\s+us|get\s+started|try\s+now|start\s+now`),
		regexp.MustCompile(`(?i)mehr\s+erfahren|zum\s+angebot|angebot\s+ansehen`),
		regexp.MustCompile(`(?i)gratis|unverbindlich|sofort|direkt`),
		regexp.MustCompile(`(?i)anrufen|schreiben|anfragen`),
	}
	chatWidgetRe = regexp.MustCompile(`(?i)intercom|drift|zendesk|freshchat|tawk|livechat|hubspot|crisp|tidio|chat-widget|chat-bubble|chat-button`)
	bookingRe    = regexp.MustCompile(`(?i)calendly|acuity|doctolib|treatwell|booksy|shore|timify|setmore|appointy|online-buchung|online-termin|termine\s+buchen`)
	valueRes     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)jahre\s+erfahrung|\d+\s*\+?\s*jahre`),
		regexp.MustCompile(`(?i)zufriedene\s+kunden|\d+\s*\+?\s*kunden`),
		regexp.MustCompile(`(?i)kostenlos|gratis|unverbindlich`),
		regexp.MustCompile(`(?i)qualität|meister|zertifiziert|ausgezeichnet`),
	}

	ctaHrefKeywords  = []string{"tel:", "mailto:", "kontakt", "contact", "termin", "booking", "funnel", "wa.me", "whatsapp"}
	formFieldHints   = []string{"email", "name", "nachricht", "message", "telefon", "phone", "url", "website"}
	ctaSelector      = `button, a.btn, a.button, [class*="btn"], [class*="cta"], [role="button"], a[href*="funnel"], a[href*="contact"], a[href*="kontakt"], a[href*="termin"], a[href*="booking"]`
	mobileMenuSelect = `[class*="mobile-menu"], [class*="hamburger"], [class*="menu-toggle"], [class*="burger"], button[aria-label*="menu"], [class*="nav-toggle"]`
)

// Conversion inspects a page for calls-to-action and contact affordances.
type Conversion struct {
	fetcher *Fetcher
}

// NewConversion creates the conversion analyzer.
func NewConversion(fetcher *Fetcher) *Conversion {
	return &Conversion{fetcher: fetcher}
}

// Analyze fetches the page with a mobile user agent and scores it,
// falling back to the default result when the fetch fails.
func (a *Conversion) Analyze(ctx context.Context, pageURL string) ConversionResult {
	page, err := a.fetcher.Fetch(ctx, pageURL, MobileUserAgent)
	if err != nil {
		log.Printf("conversion: fetch failed for %s: %v", pageURL, err)
		return ConversionResult{
			Score:  audit.DefaultScore,
			Issues: []audit.Issue{i18n.NewIssue("conversion-analysis-error", audit.CategoryConversion, audit.SeverityWarning)},
		}
	}
	return AnalyzeConversionPage(page)
}

// AnalyzeConversionPage scores an already fetched page.
func AnalyzeConversionPage(page *Page) ConversionResult {
	doc := page.Doc
	result := ConversionResult{Issues: []audit.Issue{}}
	data := &result.Data

	bodyText := strings.ToLower(doc.Find("body").Text())
	htmlLower := strings.ToLower(page.HTML)

	doc.Find(ctaSelector).Each(func(_ int, s *goquery.Selection) {
		if isCTA(s) {
			data.CTACount++
		}
	})
	data.HasCTA = data.CTACount > 0

	// A CTA counts as above the fold when a qualifying element sits in a
	// header, hero or nav container.
	data.CTAAboveFold = doc.Find(`header, [class*="hero"], [class*="header"], nav`).
		Find(`button, a.btn, [class*="btn"], [class*="cta"]`).Length() > 0

	doc.Find("form").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		formHTML, err := s.Html()
		if err != nil {
			return true
		}
		formHTML = strings.ToLower(formHTML)
		for _, hint := range formFieldHints {
			if strings.Contains(formHTML, hint) {
				data.HasContactForm = true
				return false
			}
		}
		return true
	})
	if !data.HasContactForm {
		// Standalone inputs acting as a form, e.g. the URL field of a funnel.
		data.HasContactForm = doc.Find(`input[type="email"], input[type="tel"], input[type="url"]`).Length() > 0
	}

	data.HasPhoneClickable = doc.Find(`a[href^="tel:"]`).Length() > 0
	data.HasWhatsapp = strings.Contains(htmlLower, "whatsapp") || strings.Contains(htmlLower, "wa.me")
	data.HasChatWidget = chatWidgetRe.MatchString(htmlLower) ||
		doc.Find(`[class*="chat"], [id*="chat"]`).Length() > 0
	data.HasBookingSystem = bookingRe.MatchString(htmlLower) ||
		doc.Find(`iframe[src*="calendly"], iframe[src*="booking"]`).Length() > 0
	data.MobileMenuAccessible = doc.Find(mobileMenuSelect).Length() > 0 ||
		doc.Find("nav").Length() > 0
	data.HasValueProposition = anyMatch(valueRes, bodyText)

	// Point budget, 100 total. A missing booking system costs points but
	// emits no issue.
	points := 0
	if data.HasCTA {
		if data.CTACount >= 3 {
			points += 20
		} else {
			points += 10
			result.Issues = append(result.Issues, i18n.NewIssue("conversion-few-ctas", audit.CategoryConversion, audit.SeverityWarning))
		}
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-no-cta", audit.CategoryConversion, audit.SeverityCritical))
	}
	if data.CTAAboveFold {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-cta-below-fold", audit.CategoryConversion, audit.SeverityHigh))
	}
	if data.HasContactForm {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-no-form", audit.CategoryConversion, audit.SeverityHigh))
	}
	if data.HasPhoneClickable {
		points += 15
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-phone-not-clickable", audit.CategoryConversion, audit.SeverityHigh))
	}
	if data.HasWhatsapp || data.HasChatWidget {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-no-instant-contact", audit.CategoryConversion, audit.SeverityWarning))
	}
	if data.HasBookingSystem {
		points += 10
	}
	if data.MobileMenuAccessible {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-no-mobile-menu", audit.CategoryConversion, audit.SeverityHigh))
	}
	if data.HasValueProposition {
		points += 5
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("conversion-no-value-proposition", audit.CategoryConversion, audit.SeverityWarning))
	}

	result.Score = points
	return result
}

func isCTA(s *goquery.Selection) bool {
	text := strings.ToLower(s.Text())
	href, _ := s.Attr("href")
	href = strings.ToLower(href)
	classes, _ := s.Attr("class")
	classes = strings.ToLower(classes)
	ariaLabel, _ := s.Attr("aria-label")
	ariaLabel = strings.ToLower(ariaLabel)

	for _, re := range ctaRes {
		if re.MatchString(text) {
			return true
		}
	}
	for _, keyword := range ctaHrefKeywords {
		if strings.Contains(href, keyword) {
			return true
		}
	}
	if strings.Contains(classes, "primary") || strings.Contains(classes, "cta") {
		return true
	}
	return strings.Contains(ariaLabel, "kontakt") ||
		strings.Contains(ariaLabel, "anrufen") ||
		strings.Contains(ariaLabel, "whatsapp")
}
