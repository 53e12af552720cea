// Package analyzer implements the HTML-based heuristic analyzers (SEO,
// trust, conversion). Each analyzer shares the same contract: it never
// returns an error; on fetch or parse failure it reports the neutral
// default score and a single synthetic warning issue.
package analyzer

import "github.com/mikegehrke/webcheck360/audit"

// SEOData holds the structured facts extracted by the SEO analyzer.
type SEOData struct {
	Title             string            `json:"title"`
	TitleLength       int               `json:"titleLength"`
	Description       string            `json:"description"`
	DescriptionLength int               `json:"descriptionLength"`
	H1Count           int               `json:"h1Count"`
	H1Text            []string          `json:"h1Text"`
	H2Count           int               `json:"h2Count"`
	ImageCount        int               `json:"imageCount"`
	ImagesWithAlt     int               `json:"imagesWithAlt"`
	ImagesWithoutAlt  int               `json:"imagesWithoutAlt"`
	InternalLinks     int               `json:"internalLinks"`
	ExternalLinks     int               `json:"externalLinks"`
	CanonicalURL      string            `json:"canonicalUrl"`
	RobotsMeta        string            `json:"robotsMeta"`
	OGTags            map[string]string `json:"ogTags"`
	StructuredData    bool              `json:"structuredData"`
}

// SEOResult is the SEO analyzer output.
type SEOResult struct {
	Score  int           `json:"score"`
	Issues []audit.Issue `json:"issues"`
	Data   SEOData       `json:"data"`
}

// TrustData holds the credibility and legal-compliance signals.
type TrustData struct {
	HasHTTPS        bool `json:"hasHttps"`
	HasImpressum    bool `json:"hasImpressum"`
	HasPrivacy      bool `json:"hasPrivacy"`
	HasContact      bool `json:"hasContact"`
	HasPhone        bool `json:"hasPhone"`
	HasEmail        bool `json:"hasEmail"`
	HasAddress      bool `json:"hasAddress"`
	HasSocialProof  bool `json:"hasSocialProof"`
	HasReviews      bool `json:"hasReviews"`
	HasLogos        bool `json:"hasLogos"`
	HasCookieBanner bool `json:"hasCookieBanner"`
}

// TrustResult is the trust analyzer output.
type TrustResult struct {
	Score  int           `json:"score"`
	Issues []audit.Issue `json:"issues"`
	Data   TrustData     `json:"data"`
}

// ConversionData holds the conversion affordances found on the page.
type ConversionData struct {
	HasCTA               bool `json:"hasCta"`
	CTACount             int  `json:"ctaCount"`
	CTAAboveFold         bool `json:"ctaAboveFold"`
	HasContactForm       bool `json:"hasContactForm"`
	HasPhoneClickable    bool `json:"hasPhoneClickable"`
	HasWhatsapp          bool `json:"hasWhatsapp"`
	HasChatWidget        bool `json:"hasChatWidget"`
	HasBookingSystem     bool `json:"hasBookingSystem"`
	MobileMenuAccessible bool `json:"mobileMenuAccessible"`
	HasValueProposition  bool `json:"hasValueProposition"`
}

// ConversionResult is the conversion analyzer output.
type ConversionResult struct {
	Score  int           `json:"score"`
	Issues []audit.Issue `json:"issues"`
	Data   ConversionData `json:"data"`
}
