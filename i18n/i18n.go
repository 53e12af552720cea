// Package i18n holds the locale-keyed text for audit issues and provides
// the lookup used to localize analyzer output. Every heuristic rule id maps
// to a (de, en) pair; a missing entry falls back to whatever text the issue
// already carries instead of failing.
package i18n

import "github.com/mikegehrke/webcheck360/audit"

// Locale selects a message set. German is the default locale of the product.
type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleDE
)

// ParseLocale maps a raw locale string to a supported Locale.
func ParseLocale(raw string) Locale {
	if raw == string(LocaleEN) {
		return LocaleEN
	}
	return DefaultLocale
}

// Text is the localizable portion of an issue.
type Text struct {
	Title          string
	Description    string
	Impact         string
	Recommendation string
}

// NewIssue builds an issue for a rule id in the default locale.
func NewIssue(id string, category audit.Category, severity audit.Severity) audit.Issue {
	issue := audit.Issue{ID: id, Category: category, Severity: severity}
	if text, ok := issueTexts[id][DefaultLocale]; ok {
		issue.Title = text.Title
		issue.Description = text.Description
		issue.Impact = text.Impact
		issue.Recommendation = text.Recommendation
	}
	return issue
}

// Localize returns a copy of the issue with its texts rendered in the
// requested locale. Unknown ids keep their original text.
func Localize(issue audit.Issue, locale Locale) audit.Issue {
	text, ok := issueTexts[issue.ID][locale]
	if !ok {
		return issue
	}
	issue.Title = text.Title
	issue.Description = text.Description
	issue.Impact = text.Impact
	issue.Recommendation = text.Recommendation
	return issue
}

// LocalizeIssues localizes a slice of issues in place order.
func LocalizeIssues(issues []audit.Issue, locale Locale) []audit.Issue {
	out := make([]audit.Issue, len(issues))
	for i, issue := range issues {
		out[i] = Localize(issue, locale)
	}
	return out
}

// HasTranslation reports whether a rule id has an entry for a locale.
func HasTranslation(id string, locale Locale) bool {
	_, ok := issueTexts[id][locale]
	return ok
}

var issueTexts = map[string]map[Locale]Text{
	// SEO
	"seo-title-length": {
		LocaleDE: {
			Title:          "Title-Tag Länge optimieren",
			Description:    "Ihr Title-Tag ist zu lang oder zu kurz. Optimal sind 30-60 Zeichen.",
			Impact:         "Zu lange oder zu kurze Title werden in Suchergebnissen abgeschnitten oder sind weniger aussagekräftig.",
			Recommendation: "Optimieren Sie Ihren Title-Tag auf 30-60 Zeichen mit relevanten Keywords.",
		},
		LocaleEN: {
			Title:          "Optimize title tag length",
			Description:    "Your title tag is too long or too short. Optimal is 30-60 characters.",
			Impact:         "Titles that are too long or too short get truncated in search results or carry less meaning.",
			Recommendation: "Optimize your title tag to 30-60 characters with relevant keywords.",
		},
	},
	"seo-no-title": {
		LocaleDE: {
			Title:          "Kein Title-Tag vorhanden",
			Description:    "Ihre Seite hat keinen Title-Tag.",
			Impact:         "Ohne Title-Tag kann Google Ihre Seite nicht richtig indexieren.",
			Recommendation: "Fügen Sie einen aussagekräftigen Title-Tag mit 30-60 Zeichen hinzu.",
		},
		LocaleEN: {
			Title:          "No title tag found",
			Description:    "Your page has no title tag.",
			Impact:         "Without a title tag, Google cannot properly index your page.",
			Recommendation: "Add a meaningful title tag with 30-60 characters.",
		},
	},
	"seo-description-length": {
		LocaleDE: {
			Title:          "Meta-Description Länge optimieren",
			Description:    "Ihre Meta-Description ist zu lang oder zu kurz. Optimal sind 120-160 Zeichen.",
			Impact:         "Nicht optimale Länge kann zu abgeschnittenen Snippets in Suchergebnissen führen.",
			Recommendation: "Schreiben Sie eine prägnante Meta-Description mit 120-160 Zeichen.",
		},
		LocaleEN: {
			Title:          "Optimize meta description length",
			Description:    "Your meta description is too long or too short. Optimal is 120-160 characters.",
			Impact:         "A suboptimal length can lead to truncated snippets in search results.",
			Recommendation: "Write a concise meta description with 120-160 characters.",
		},
	},
	"seo-no-description": {
		LocaleDE: {
			Title:          "Keine Meta-Description vorhanden",
			Description:    "Ihre Seite hat keine Meta-Description.",
			Impact:         "Google generiert dann selbst einen Snippet-Text, der möglicherweise nicht optimal ist.",
			Recommendation: "Fügen Sie eine ansprechende Meta-Description mit 120-160 Zeichen hinzu.",
		},
		LocaleEN: {
			Title:          "No meta description found",
			Description:    "Your page has no meta description.",
			Impact:         "Google then generates its own snippet text, which may not be optimal.",
			Recommendation: "Add an appealing meta description with 120-160 characters.",
		},
	},
	"seo-multiple-h1": {
		LocaleDE: {
			Title:          "Mehrere H1-Überschriften",
			Description:    "Ihre Seite hat mehrere H1-Überschriften. Optimal ist genau eine.",
			Impact:         "Mehrere H1s können die Seitenstruktur für Suchmaschinen verwirren.",
			Recommendation: "Verwenden Sie nur eine H1-Überschrift pro Seite.",
		},
		LocaleEN: {
			Title:          "Multiple H1 headings",
			Description:    "Your page has multiple H1 headings. Optimal is exactly one.",
			Impact:         "Multiple H1s can confuse search engines about the page structure.",
			Recommendation: "Use only one H1 heading per page.",
		},
	},
	"seo-no-h1": {
		LocaleDE: {
			Title:          "Keine H1-Überschrift",
			Description:    "Ihre Seite hat keine H1-Überschrift.",
			Impact:         "Die H1 ist wichtig für SEO und Barrierefreiheit.",
			Recommendation: "Fügen Sie eine aussagekräftige H1-Überschrift hinzu.",
		},
		LocaleEN: {
			Title:          "No H1 heading",
			Description:    "Your page has no H1 heading.",
			Impact:         "The H1 is important for SEO and accessibility.",
			Recommendation: "Add a meaningful H1 heading.",
		},
	},
	"seo-images-alt": {
		LocaleDE: {
			Title:          "Bilder ohne Alt-Text",
			Description:    "Einige Bilder haben keinen Alt-Text.",
			Impact:         "Alt-Texte sind wichtig für SEO und Barrierefreiheit.",
			Recommendation: "Fügen Sie beschreibende Alt-Texte zu allen Bildern hinzu.",
		},
		LocaleEN: {
			Title:          "Images without alt text",
			Description:    "Some images have no alt text.",
			Impact:         "Alt texts are important for SEO and accessibility.",
			Recommendation: "Add descriptive alt text to all images.",
		},
	},
	"seo-no-canonical": {
		LocaleDE: {
			Title:          "Kein Canonical-Tag",
			Description:    "Ihre Seite hat keinen Canonical-Tag.",
			Impact:         "Ohne Canonical kann es zu Duplicate-Content-Problemen kommen.",
			Recommendation: "Fügen Sie einen Canonical-Tag hinzu, der auf die bevorzugte URL verweist.",
		},
		LocaleEN: {
			Title:          "No canonical tag",
			Description:    "Your page has no canonical tag.",
			Impact:         "Without a canonical tag, duplicate content problems may occur.",
			Recommendation: "Add a canonical tag pointing to the preferred URL.",
		},
	},
	"seo-og-incomplete": {
		LocaleDE: {
			Title:          "Open Graph Tags unvollständig",
			Description:    "Ihre Seite hat nicht alle wichtigen Open Graph Tags (og:title, og:description, og:image).",
			Impact:         "Social Media Shares werden möglicherweise nicht optimal dargestellt.",
			Recommendation: "Ergänzen Sie og:title, og:description und og:image Tags.",
		},
		LocaleEN: {
			Title:          "Open Graph tags incomplete",
			Description:    "Your page is missing some of the important Open Graph tags (og:title, og:description, og:image).",
			Impact:         "Social media shares may not be displayed optimally.",
			Recommendation: "Complete the og:title, og:description and og:image tags.",
		},
	},
	"seo-no-og": {
		LocaleDE: {
			Title:          "Keine Open Graph Tags",
			Description:    "Ihre Seite hat keine Open Graph Tags für Social Media.",
			Impact:         "Social Media Shares zeigen möglicherweise keine optimale Vorschau.",
			Recommendation: "Fügen Sie og:title, og:description und og:image Tags hinzu.",
		},
		LocaleEN: {
			Title:          "No Open Graph tags",
			Description:    "Your page has no Open Graph tags for social media.",
			Impact:         "Social media shares may not show an optimal preview.",
			Recommendation: "Add og:title, og:description and og:image tags.",
		},
	},
	"seo-no-structured-data": {
		LocaleDE: {
			Title:          "Keine strukturierten Daten",
			Description:    "Ihre Seite verwendet keine Schema.org strukturierten Daten.",
			Impact:         "Strukturierte Daten können Rich Snippets in Suchergebnissen ermöglichen.",
			Recommendation: "Implementieren Sie LocalBusiness oder Organization Schema Markup.",
		},
		LocaleEN: {
			Title:          "No structured data",
			Description:    "Your page does not use Schema.org structured data.",
			Impact:         "Structured data can enable rich snippets in search results.",
			Recommendation: "Implement LocalBusiness or Organization schema markup.",
		},
	},
	"seo-analysis-error": {
		LocaleDE: {
			Title:          "SEO-Analyse unvollständig",
			Description:    "Die SEO-Analyse konnte nicht vollständig durchgeführt werden.",
			Impact:         "Einige SEO-Faktoren konnten nicht geprüft werden.",
			Recommendation: "Versuchen Sie es später erneut.",
		},
		LocaleEN: {
			Title:          "SEO analysis incomplete",
			Description:    "The SEO analysis could not be completed.",
			Impact:         "Some SEO factors could not be checked.",
			Recommendation: "Try again later.",
		},
	},

	// Trust
	"trust-no-https": {
		LocaleDE: {
			Title:          "Keine HTTPS-Verschlüsselung",
			Description:    "Ihre Website verwendet kein HTTPS.",
			Impact:         "Browser zeigen Warnungen an und Google wertet HTTPS als Ranking-Faktor.",
			Recommendation: "Installieren Sie ein SSL-Zertifikat und erzwingen Sie HTTPS.",
		},
		LocaleEN: {
			Title:          "No HTTPS encryption",
			Description:    "Your website does not use HTTPS.",
			Impact:         "Browsers show warnings, and Google treats HTTPS as a ranking factor.",
			Recommendation: "Install an SSL certificate and enforce HTTPS.",
		},
	},
	"trust-no-impressum": {
		LocaleDE: {
			Title:          "Kein Impressum gefunden",
			Description:    "Wir konnten keinen Impressum-Link auf Ihrer Seite finden.",
			Impact:         "Ein fehlendes Impressum ist in Deutschland ein Gesetzesverstoß und zerstört Vertrauen.",
			Recommendation: "Fügen Sie ein vollständiges Impressum hinzu, das von jeder Seite erreichbar ist.",
		},
		LocaleEN: {
			Title:          "No legal notice found",
			Description:    "We could not find a legal notice link on your page.",
			Impact:         "A missing legal notice violates German law and destroys trust.",
			Recommendation: "Add a complete legal notice reachable from every page.",
		},
	},
	"trust-no-privacy": {
		LocaleDE: {
			Title:          "Keine Datenschutzerklärung gefunden",
			Description:    "Wir konnten keine Datenschutzerklärung auf Ihrer Seite finden.",
			Impact:         "Eine fehlende Datenschutzerklärung verstößt gegen die DSGVO.",
			Recommendation: "Fügen Sie eine DSGVO-konforme Datenschutzerklärung hinzu.",
		},
		LocaleEN: {
			Title:          "No privacy policy found",
			Description:    "We could not find a privacy policy on your page.",
			Impact:         "A missing privacy policy violates the GDPR.",
			Recommendation: "Add a GDPR-compliant privacy policy.",
		},
	},
	"trust-no-contact": {
		LocaleDE: {
			Title:          "Keine Kontaktseite gefunden",
			Description:    "Wir konnten keine Kontaktseite auf Ihrer Website finden.",
			Impact:         "Kunden können Sie nicht einfach erreichen.",
			Recommendation: "Erstellen Sie eine Kontaktseite mit allen Kontaktmöglichkeiten.",
		},
		LocaleEN: {
			Title:          "No contact page found",
			Description:    "We could not find a contact page on your website.",
			Impact:         "Customers cannot reach you easily.",
			Recommendation: "Create a contact page with all contact options.",
		},
	},
	"trust-no-phone": {
		LocaleDE: {
			Title:          "Keine Telefonnummer sichtbar",
			Description:    "Auf Ihrer Seite ist keine Telefonnummer sichtbar.",
			Impact:         "Viele Kunden möchten lieber anrufen als schreiben.",
			Recommendation: "Zeigen Sie Ihre Telefonnummer prominent an, idealerweise im Header.",
		},
		LocaleEN: {
			Title:          "No phone number visible",
			Description:    "No phone number is visible on your page.",
			Impact:         "Many customers prefer calling over writing.",
			Recommendation: "Display your phone number prominently, ideally in the header.",
		},
	},
	"trust-no-address": {
		LocaleDE: {
			Title:          "Keine Adresse sichtbar",
			Description:    "Auf Ihrer Seite ist keine Geschäftsadresse sichtbar.",
			Impact:         "Eine sichtbare Adresse erhöht das Vertrauen und hilft bei Local SEO.",
			Recommendation: "Zeigen Sie Ihre Geschäftsadresse auf der Website an.",
		},
		LocaleEN: {
			Title:          "No address visible",
			Description:    "No business address is visible on your page.",
			Impact:         "A visible address increases trust and helps with local SEO.",
			Recommendation: "Display your business address on the website.",
		},
	},
	"trust-no-social-proof": {
		LocaleDE: {
			Title:          "Keine Kundenstimmen oder Bewertungen",
			Description:    "Ihre Seite zeigt keine Kundenbewertungen oder Referenzen.",
			Impact:         "Social Proof erhöht die Conversion-Rate erheblich.",
			Recommendation: "Integrieren Sie Kundenbewertungen von Google, ProvenExpert oder Testimonials.",
		},
		LocaleEN: {
			Title:          "No testimonials or reviews",
			Description:    "Your page shows no customer reviews or references.",
			Impact:         "Social proof significantly increases the conversion rate.",
			Recommendation: "Integrate customer reviews from Google, ProvenExpert, or testimonials.",
		},
	},
	"trust-no-cookie-banner": {
		LocaleDE: {
			Title:          "Kein Cookie-Banner gefunden",
			Description:    "Ihre Website scheint keinen Cookie-Banner zu haben.",
			Impact:         "Ein fehlender Cookie-Banner kann zu DSGVO-Verstößen führen.",
			Recommendation: "Implementieren Sie einen DSGVO-konformen Cookie-Banner.",
		},
		LocaleEN: {
			Title:          "No cookie banner found",
			Description:    "Your website does not seem to have a cookie banner.",
			Impact:         "A missing cookie banner can lead to GDPR violations.",
			Recommendation: "Implement a GDPR-compliant cookie banner.",
		},
	},
	"trust-scan-error": {
		LocaleDE: {
			Title:          "Vertrauensanalyse unvollständig",
			Description:    "Die Vertrauensanalyse konnte nicht vollständig durchgeführt werden.",
			Impact:         "Einige Vertrauensfaktoren konnten nicht geprüft werden.",
			Recommendation: "Versuchen Sie es später erneut.",
		},
		LocaleEN: {
			Title:          "Trust analysis incomplete",
			Description:    "The trust analysis could not be completed.",
			Impact:         "Some trust factors could not be checked.",
			Recommendation: "Try again later.",
		},
	},

	// Conversion
	"conversion-no-cta": {
		LocaleDE: {
			Title:          "Keine Call-to-Action erkannt",
			Description:    "Wir konnten keine klaren Handlungsaufforderungen auf Ihrer Seite finden.",
			Impact:         "Ohne CTAs wissen Besucher nicht, was sie tun sollen.",
			Recommendation: "Fügen Sie klare CTAs wie \"Jetzt anfragen\" oder \"Termin buchen\" hinzu.",
		},
		LocaleEN: {
			Title:          "No call-to-action detected",
			Description:    "We could not find clear calls-to-action on your page.",
			Impact:         "Without CTAs, visitors don't know what to do.",
			Recommendation: "Add clear CTAs such as \"Request a quote\" or \"Book an appointment\".",
		},
	},
	"conversion-few-ctas": {
		LocaleDE: {
			Title:          "Wenige Call-to-Actions",
			Description:    "Ihre Seite hat nur wenige erkennbare CTAs.",
			Impact:         "Mehr strategisch platzierte CTAs können die Conversion-Rate erhöhen.",
			Recommendation: "Fügen Sie CTAs am Seitenende, nach wichtigen Abschnitten und im Header hinzu.",
		},
		LocaleEN: {
			Title:          "Few calls-to-action",
			Description:    "Your page has only a few recognizable CTAs.",
			Impact:         "More strategically placed CTAs can increase the conversion rate.",
			Recommendation: "Add CTAs at the end of the page, after key sections, and in the header.",
		},
	},
	"conversion-cta-below-fold": {
		LocaleDE: {
			Title:          "Kein CTA im sichtbaren Bereich",
			Description:    "Im oberen Bereich Ihrer Seite ist kein CTA sichtbar.",
			Impact:         "Besucher sollten sofort eine Handlungsmöglichkeit sehen.",
			Recommendation: "Platzieren Sie einen prominenten CTA im Hero-Bereich oder Header.",
		},
		LocaleEN: {
			Title:          "No CTA above the fold",
			Description:    "No CTA is visible in the top area of your page.",
			Impact:         "Visitors should immediately see something to act on.",
			Recommendation: "Place a prominent CTA in the hero area or header.",
		},
	},
	"conversion-no-form": {
		LocaleDE: {
			Title:          "Kein Kontaktformular gefunden",
			Description:    "Ihre Seite scheint kein Kontaktformular zu haben.",
			Impact:         "Formulare sind der einfachste Weg für Kunden, Kontakt aufzunehmen.",
			Recommendation: "Fügen Sie ein einfaches Kontaktformular auf der Startseite oder Kontaktseite hinzu.",
		},
		LocaleEN: {
			Title:          "No contact form found",
			Description:    "Your page does not seem to have a contact form.",
			Impact:         "Forms are the easiest way for customers to get in touch.",
			Recommendation: "Add a simple contact form on the home page or contact page.",
		},
	},
	"conversion-phone-not-clickable": {
		LocaleDE: {
			Title:          "Telefonnummer nicht klickbar",
			Description:    "Die Telefonnummer ist nicht als klickbarer Link formatiert.",
			Impact:         "Mobile Nutzer können nicht direkt anrufen.",
			Recommendation: "Formatieren Sie Telefonnummern als tel:-Links für direkte Anrufe.",
		},
		LocaleEN: {
			Title:          "Phone number not clickable",
			Description:    "The phone number is not formatted as a clickable link.",
			Impact:         "Mobile users cannot call directly.",
			Recommendation: "Format phone numbers as tel: links for direct calls.",
		},
	},
	"conversion-no-instant-contact": {
		LocaleDE: {
			Title:          "Keine Sofort-Kontaktmöglichkeit",
			Description:    "Ihre Seite hat kein WhatsApp oder Chat-Widget.",
			Impact:         "Viele Kunden bevorzugen schnelle Kommunikationswege.",
			Recommendation: "Integrieren Sie einen WhatsApp-Button oder ein Chat-Widget.",
		},
		LocaleEN: {
			Title:          "No instant contact option",
			Description:    "Your page has no WhatsApp or chat widget.",
			Impact:         "Many customers prefer fast communication channels.",
			Recommendation: "Integrate a WhatsApp button or chat widget.",
		},
	},
	"conversion-no-mobile-menu": {
		LocaleDE: {
			Title:          "Keine mobile Navigation erkannt",
			Description:    "Wir konnten keine mobile Navigation (Hamburger-Menü) finden.",
			Impact:         "Mobile Nutzer können nicht durch Ihre Seite navigieren.",
			Recommendation: "Stellen Sie sicher, dass ein mobiles Menü vorhanden ist.",
		},
		LocaleEN: {
			Title:          "No mobile navigation detected",
			Description:    "We could not find any mobile navigation (hamburger menu).",
			Impact:         "Mobile users cannot navigate through your page.",
			Recommendation: "Make sure a mobile menu is available.",
		},
	},
	"conversion-no-value-proposition": {
		LocaleDE: {
			Title:          "Keine klaren Argumente erkennbar",
			Description:    "Wir konnten keine klaren Verkaufsargumente auf Ihrer Seite finden.",
			Impact:         "Besucher verstehen nicht sofort, warum sie Sie wählen sollten.",
			Recommendation: "Zeigen Sie Erfahrung, Qualifikationen und Kundenzahlen prominent an.",
		},
		LocaleEN: {
			Title:          "No clear value proposition",
			Description:    "We could not find clear selling points on your page.",
			Impact:         "Visitors don't immediately understand why they should choose you.",
			Recommendation: "Display experience, qualifications and customer numbers prominently.",
		},
	},
	"conversion-analysis-error": {
		LocaleDE: {
			Title:          "Conversion-Analyse unvollständig",
			Description:    "Die Conversion-Analyse konnte nicht vollständig durchgeführt werden.",
			Impact:         "Einige Conversion-Faktoren konnten nicht geprüft werden.",
			Recommendation: "Versuchen Sie es später erneut.",
		},
		LocaleEN: {
			Title:          "Conversion analysis incomplete",
			Description:    "The conversion analysis could not be completed.",
			Impact:         "Some conversion factors could not be checked.",
			Recommendation: "Try again later.",
		},
	},
}
