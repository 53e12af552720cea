package analyzer

import (
	"context"
	"log"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
)

// SEO inspects on-page search-engine signals.
type SEO struct {
	fetcher *Fetcher
}

// NewSEO creates the SEO analyzer.
func NewSEO(fetcher *Fetcher) *SEO {
	return &SEO{fetcher: fetcher}
}

// Analyze fetches the page and scores it. Fetch or parse failures resolve
// to the default result instead of an error.
func (a *SEO) Analyze(ctx context.Context, pageURL string) SEOResult {
	page, err := a.fetcher.Fetch(ctx, pageURL, DesktopUserAgent)
	if err != nil {
		log.Printf("seo: fetch failed for %s: %v", pageURL, err)
		return SEOResult{
			Score:  audit.DefaultScore,
			Issues: []audit.Issue{i18n.NewIssue("seo-analysis-error", audit.CategorySEO, audit.SeverityWarning)},
		}
	}
	return AnalyzeSEOPage(page)
}

// AnalyzeSEOPage scores an already fetched page. Pure over the document,
// so it can be exercised against fixed HTML fixtures.
func AnalyzeSEOPage(page *Page) SEOResult {
	doc := page.Doc
	result := SEOResult{
		Issues: []audit.Issue{},
		Data: SEOData{
			H1Text: []string{},
			OGTags: map[string]string{},
		},
	}
	data := &result.Data

	data.Title = strings.TrimSpace(doc.Find("title").First().Text())
	data.TitleLength = utf8.RuneCountInString(data.Title)

	data.Description, _ = doc.Find("meta[name='description']").Attr("content")
	data.DescriptionLength = utf8.RuneCountInString(data.Description)

	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			data.H1Text = append(data.H1Text, text)
		}
	})
	data.H1Count = doc.Find("h1").Length()
	data.H2Count = doc.Find("h2").Length()

	images := doc.Find("img")
	data.ImageCount = images.Length()
	images.Each(func(_ int, s *goquery.Selection) {
		if alt, _ := s.Attr("alt"); strings.TrimSpace(alt) != "" {
			data.ImagesWithAlt++
		}
	})
	data.ImagesWithoutAlt = data.ImageCount - data.ImagesWithAlt

	pageHost := ""
	if u, err := url.Parse(page.URL); err == nil {
		pageHost = u.Hostname()
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "/"), strings.HasPrefix(href, "#"),
			strings.HasPrefix(href, "tel:"), strings.HasPrefix(href, "mailto:"):
			data.InternalLinks++
		case strings.HasPrefix(href, "http"):
			if u, err := url.Parse(href); err == nil && u.Hostname() == pageHost {
				data.InternalLinks++
			} else {
				data.ExternalLinks++
			}
		default:
			data.InternalLinks++
		}
	})

	data.CanonicalURL, _ = doc.Find("link[rel='canonical']").Attr("href")
	data.RobotsMeta, _ = doc.Find("meta[name='robots']").Attr("content")

	doc.Find("meta[property^='og:']").Each(func(_ int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if property != "" && content != "" {
			data.OGTags[property] = content
		}
	})

	data.StructuredData = doc.Find("script[type='application/ld+json']").Length() > 0

	// Point budget, 100 total.
	points := 0

	// Title: 20 points, length 30-60 inclusive.
	if data.Title != "" {
		if data.TitleLength >= 30 && data.TitleLength <= 60 {
			points += 20
		} else {
			points += 10
			result.Issues = append(result.Issues, i18n.NewIssue("seo-title-length", audit.CategorySEO, audit.SeverityWarning))
		}
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-title", audit.CategorySEO, audit.SeverityCritical))
	}

	// Meta description: 15 points, length 120-160.
	if data.Description != "" {
		if data.DescriptionLength >= 120 && data.DescriptionLength <= 160 {
			points += 15
		} else {
			points += 8
			result.Issues = append(result.Issues, i18n.NewIssue("seo-description-length", audit.CategorySEO, audit.SeverityWarning))
		}
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-description", audit.CategorySEO, audit.SeverityHigh))
	}

	// H1: 15 points for exactly one.
	switch {
	case data.H1Count == 1:
		points += 15
	case data.H1Count > 1:
		points += 8
		result.Issues = append(result.Issues, i18n.NewIssue("seo-multiple-h1", audit.CategorySEO, audit.SeverityWarning))
	default:
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-h1", audit.CategorySEO, audit.SeverityHigh))
	}

	// Image alt coverage: 15 points. No images means no penalty.
	if data.ImageCount > 0 {
		ratio := float64(data.ImagesWithAlt) / float64(data.ImageCount)
		switch {
		case ratio == 1:
			points += 15
		case ratio >= 0.8:
			points += 10
		default:
			points += int(math.Round(ratio * 10))
			severity := audit.SeverityWarning
			if ratio < 0.5 {
				severity = audit.SeverityHigh
			}
			result.Issues = append(result.Issues, i18n.NewIssue("seo-images-alt", audit.CategorySEO, severity))
		}
	} else {
		points += 15
	}

	// Canonical: 10 points.
	if data.CanonicalURL != "" {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-canonical", audit.CategorySEO, audit.SeverityWarning))
	}

	// Open Graph: 10 points for three or more tags.
	switch {
	case len(data.OGTags) >= 3:
		points += 10
	case len(data.OGTags) > 0:
		points += 5
		result.Issues = append(result.Issues, i18n.NewIssue("seo-og-incomplete", audit.CategorySEO, audit.SeverityLow))
	default:
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-og", audit.CategorySEO, audit.SeverityLow))
	}

	// Structured data: 10 points.
	if data.StructuredData {
		points += 10
	} else {
		result.Issues = append(result.Issues, i18n.NewIssue("seo-no-structured-data", audit.CategorySEO, audit.SeverityWarning))
	}

	// Internal links: 5 points, informational only.
	if data.InternalLinks >= 3 {
		points += 5
	}

	result.Score = points
	return result
}
