// Package followup renders the outreach message that seeds the admin's
// contact workflow. Generation is a pure function of domain, score, issue
// list and locale: five score bands, each with a fixed prose template per
// locale, interpolating the top three issue titles.
package followup

import (
	"fmt"
	"strings"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
)

// Generate renders the follow-up text. Band lower bounds are inclusive:
// a score of exactly 95 selects the top band.
func Generate(domain string, score int, issues []audit.Issue, locale i18n.Locale) string {
	en := locale == i18n.LocaleEN
	switch {
	case score >= 95:
		return perfect(domain, score, en)
	case score >= 80:
		return excellent(domain, score, issueList(issues, en, excellentFallbackDE, excellentFallbackEN), en)
	case score >= 60:
		return good(domain, score, issueList(issues, en, goodFallbackDE, goodFallbackEN), en)
	case score >= 40:
		return needsWork(domain, score, issueList(issues, en, needsWorkFallbackDE, needsWorkFallbackEN), en)
	default:
		return critical(domain, score, issueList(issues, en, criticalFallbackDE, criticalFallbackEN), en)
	}
}

const (
	excellentFallbackDE = "- Kleinere technische Optimierungen\n- Feintuning der Ladezeiten\n- SEO-Verbesserungen fuer noch bessere Rankings"
	excellentFallbackEN = "- Minor technical optimizations\n- Fine-tuning of loading times\n- SEO improvements for even better rankings"
	goodFallbackDE      = "- Performance-Verbesserungen noetig\n- SEO-Optimierung empfohlen\n- Mobile Nutzererfahrung verbessern"
	goodFallbackEN      = "- Performance improvements needed\n- SEO optimization recommended\n- Mobile user experience could be improved"
	needsWorkFallbackDE = "- Technische Performance kritisch\n- SEO-Grundlagen fehlen\n- Mobile Darstellung problematisch"
	needsWorkFallbackEN = "- Technical performance is critical\n- SEO fundamentals are missing\n- Mobile display is problematic"
	criticalFallbackDE  = "- Schwere Performance-Probleme\n- Grundlegende SEO-Fehler\n- Website ist nicht mobilfreundlich"
	criticalFallbackEN  = "- Severe performance issues\n- Fundamental SEO errors\n- Website is not mobile-friendly"
)

// issueList renders up to the top three issue titles as bullets, falling
// back to generic band-specific bullets when no issues exist.
func issueList(issues []audit.Issue, en bool, fallbackDE, fallbackEN string) string {
	if len(issues) == 0 {
		if en {
			return fallbackEN
		}
		return fallbackDE
	}
	top := issues
	if len(top) > 3 {
		top = top[:3]
	}
	lines := make([]string, len(top))
	for i, issue := range top {
		lines[i] = "- " + issue.Title
	}
	return strings.Join(lines, "\n")
}

func perfect(domain string, score int, en bool) string {
	if en {
		return fmt.Sprintf(`Hello,

Your website %s was analyzed in our website check and achieved an outstanding result!

With an overall score of %d/100, your website is among the top performers. You're excellently positioned in terms of technical performance, SEO, and user experience.

For websites at this level, I offer advanced optimization services:
- Conversion rate optimization for more customer inquiries
- A/B testing for even better performance
- Strategic development and new features

If you're interested in taking your already strong online presence to the next level, I'd be happy to discuss this with you in a no-obligation conversation.

Best regards`, domain, score)
	}
	return fmt.Sprintf(`Guten Tag,

Ihre Website %s wurde in unserem Website-Check analysiert und hat ein hervorragendes Ergebnis erzielt!

Mit einem Gesamt-Score von %d/100 gehoert Ihre Website zu den Top-Performern. Technisch, in Sachen SEO und Nutzererfahrung sind Sie bestens aufgestellt.

Fuer Websites auf diesem Niveau biete ich weiterfuehrende Optimierungen an:
- Conversion-Rate-Optimierung fuer mehr Kundenanfragen
- A/B-Testing fuer noch bessere Performance
- Strategische Weiterentwicklung und neue Features

Wenn Sie Interesse haben, Ihre bereits starke Online-Praesenz auf das naechste Level zu bringen, stehe ich Ihnen gerne fuer ein unverbindliches Gespraech zur Verfuegung.

Freundliche Gruesse`, domain, score)
}

func excellent(domain string, score int, issues string, en bool) string {
	if en {
		return fmt.Sprintf(`Hello,

Your website %s was analyzed in our website check and shows very good results.

With an overall score of %d/100, you're already well positioned. However, there are still some refinements that could be optimized:

%s

These adjustments could take your website from "very good" to "excellent."

Would you be interested in a brief exchange? 15 minutes is enough to discuss the possibilities.

Best regards`, domain, score, issues)
	}
	return fmt.Sprintf(`Guten Tag,

Ihre Website %s wurde in unserem Website-Check analysiert und zeigt ein sehr gutes Ergebnis.

Mit einem Gesamt-Score von %d/100 sind Sie bereits gut aufgestellt. Es gibt jedoch noch einige Feinheiten, die optimiert werden koennten:

%s

Diese Anpassungen koennten Ihre Website von "sehr gut" auf "exzellent" bringen.

Haben Sie Interesse an einem kurzen Austausch? 15 Minuten genuegen, um die Moeglichkeiten zu besprechen.

Freundliche Gruesse`, domain, score, issues)
}

func good(domain string, score int, issues string, en bool) string {
	if en {
		return fmt.Sprintf(`Hello,

Your website %s was analyzed in our website check.

With an overall score of %d/100, you have a solid foundation, but there is clear potential for optimization:

%s

These points can often be fixed with manageable effort and lead to noticeably better results with search engines and visitors.

I would be happy to show you in a short conversation how these points can be pragmatically solved - without rebuilding everything.

Do you have 15 minutes in the coming days for a no-obligation exchange?

Best regards`, domain, score, issues)
	}
	return fmt.Sprintf(`Guten Tag,

Ihre Website %s wurde in unserem Website-Check analysiert.

Mit einem Gesamt-Score von %d/100 haben Sie eine solide Grundlage, aber es gibt deutliches Optimierungspotenzial:

%s

Diese Punkte koennen oft mit ueberschaubarem Aufwand behoben werden und fuehren zu spuerbar besseren Ergebnissen bei Suchmaschinen und Besuchern.

Ich wuerde mich freuen, Ihnen in einem kurzen Gespraech zu zeigen, wie diese Punkte pragmatisch geloest werden koennen - ohne alles neu zu bauen.

Haben Sie in den naechsten Tagen 15 Minuten Zeit fuer einen unverbindlichen Austausch?

Freundliche Gruesse`, domain, score, issues)
}

func needsWork(domain string, score int, issues string, en bool) string {
	if en {
		return fmt.Sprintf(`Hello,

Your website %s was analyzed in our website check and reveals important areas for improvement.

With an overall score of %d/100, there are several areas that urgently need attention:

%s

These issues can cause potential customers to leave and your website to rank lower on Google.

The good news: With targeted measures, these points can be fixed efficiently. I'd be happy to offer you a free 15-minute consultation to discuss the most important steps.

Best regards`, domain, score, issues)
	}
	return fmt.Sprintf(`Guten Tag,

Ihre Website %s wurde in unserem Website-Check analysiert und zeigt wichtige Verbesserungsmoeglichkeiten auf.

Mit einem Gesamt-Score von %d/100 gibt es einige Bereiche, die dringend Aufmerksamkeit benoetigen:

%s

Diese Probleme koennen dazu fuehren, dass potenzielle Kunden abspringen und Ihre Website bei Google schlechter rankt.

Die gute Nachricht: Mit gezielten Massnahmen lassen sich diese Punkte effizient beheben. Ich biete Ihnen gerne ein kostenloses 15-minuetiges Beratungsgespraech an, um die wichtigsten Schritte zu besprechen.

Freundliche Gruesse`, domain, score, issues)
}

func critical(domain string, score int, issues string, en bool) string {
	if en {
		return fmt.Sprintf(`Hello,

Your website %s was analyzed in our website check and reveals critical issues that should be addressed urgently.

With an overall score of %d/100, you are likely losing potential customers every day:

%s

These issues not only affect your Google ranking but also significantly impact your visitors' trust.

I strongly recommend a professional overhaul. Let's discuss the most important immediate measures in a short conversation - free and without obligation.

Best regards`, domain, score, issues)
	}
	return fmt.Sprintf(`Guten Tag,

Ihre Website %s wurde in unserem Website-Check analysiert und zeigt kritische Probleme auf, die dringend behoben werden sollten.

Mit einem Gesamt-Score von %d/100 verlieren Sie wahrscheinlich taeglich potenzielle Kunden:

%s

Diese Probleme beeintraechtigen nicht nur Ihre Google-Platzierung, sondern auch das Vertrauen Ihrer Besucher erheblich.

Ich empfehle dringend eine professionelle Ueberarbeitung. Lassen Sie uns in einem kurzen Gespraech die wichtigsten Sofortmassnahmen besprechen - kostenlos und unverbindlich.

Freundliche Gruesse`, domain, score, issues)
}
