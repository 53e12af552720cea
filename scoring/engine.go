// Package scoring combines the analyzer category scores into one weighted
// total, classifies the result into a rating band, and produces a short
// localized summary.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
)

// Rating is a named band of the 0-100 total score.
type Rating string

const (
	RatingExcellent        Rating = "excellent"
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

// Summary is the templated verdict shown next to the score.
type Summary struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Priority   string   `json:"priority"`
}

// Result bundles the engine output for one audit.
type Result struct {
	Total   int     `json:"total"`
	Rating  Rating  `json:"rating"`
	Summary Summary `json:"summary"`
}

// CalculateTotal computes the weighted sum of the five category scores,
// rounded to the nearest integer.
func CalculateTotal(scores audit.Scores, weights audit.Weights) int {
	weighted := float64(scores.Performance)*weights.Performance +
		float64(scores.MobileUX)*weights.MobileUX +
		float64(scores.SEO)*weights.SEO +
		float64(scores.Trust)*weights.Trust +
		float64(scores.Conversion)*weights.Conversion
	return int(math.Round(weighted))
}

// GetRating classifies a total score. Band lower bounds are inclusive.
func GetRating(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

var categoryNames = map[i18n.Locale]map[audit.Category]string{
	i18n.LocaleDE: {
		audit.CategoryPerformance: "Performance",
		audit.CategoryMobileUX:    "Mobile Darstellung",
		audit.CategorySEO:         "SEO",
		audit.CategoryTrust:       "Vertrauensfaktoren",
		audit.CategoryConversion:  "Conversion",
	},
	i18n.LocaleEN: {
		audit.CategoryPerformance: "Performance",
		audit.CategoryMobileUX:    "Mobile UX",
		audit.CategorySEO:         "SEO",
		audit.CategoryTrust:       "Trust Factors",
		audit.CategoryConversion:  "Conversion",
	},
}

// GenerateSummary lists categories scoring at least 80 as strengths and
// below 50 as weaknesses, and picks a priority: the category of the first
// critical issue, else the first weakness, else a generic all-clear.
func GenerateSummary(scores audit.Scores, issues []audit.Issue, locale i18n.Locale) Summary {
	names := categoryNames[locale]
	if names == nil {
		names = categoryNames[i18n.DefaultLocale]
	}

	var summary Summary
	for _, category := range audit.Categories {
		value := scores.Get(category)
		if value >= 80 {
			summary.Strengths = append(summary.Strengths, names[category])
		} else if value < 50 {
			summary.Weaknesses = append(summary.Weaknesses, names[category])
		}
	}

	var criticalCategory string
	for _, issue := range issues {
		if issue.Severity == audit.SeverityCritical {
			criticalCategory = names[issue.Category]
			break
		}
	}

	switch {
	case criticalCategory != "":
		if locale == i18n.LocaleEN {
			summary.Priority = fmt.Sprintf("Focus on %s – there are critical issues.", criticalCategory)
		} else {
			summary.Priority = fmt.Sprintf("Fokus auf %s – hier gibt es kritische Probleme.", criticalCategory)
		}
	case len(summary.Weaknesses) > 0:
		if locale == i18n.LocaleEN {
			summary.Priority = fmt.Sprintf("%s shows the biggest improvement potential.", summary.Weaknesses[0])
		} else {
			summary.Priority = fmt.Sprintf("%s zeigt das größte Verbesserungspotenzial.", summary.Weaknesses[0])
		}
	default:
		if locale == i18n.LocaleEN {
			summary.Priority = "The website is generally well set up. Fine-tuning possible."
		} else {
			summary.Priority = "Die Website ist insgesamt gut aufgestellt. Feintuning möglich."
		}
	}

	return summary
}

// Process runs the full engine for one audit.
func Process(scores audit.Scores, issues []audit.Issue, locale i18n.Locale) Result {
	total := CalculateTotal(scores, audit.DefaultWeights)
	return Result{
		Total:   total,
		Rating:  GetRating(total),
		Summary: GenerateSummary(scores, issues, locale),
	}
}

// SortBySeverity returns a copy of issues ordered most severe first. The
// sort is stable so issues of equal severity keep their analyzer order.
func SortBySeverity(issues []audit.Issue) []audit.Issue {
	sorted := make([]audit.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
	})
	return sorted
}

// GroupByCategory buckets issues by their score dimension.
func GroupByCategory(issues []audit.Issue) map[audit.Category][]audit.Issue {
	groups := make(map[audit.Category][]audit.Issue)
	for _, issue := range issues {
		groups[issue.Category] = append(groups[issue.Category], issue)
	}
	return groups
}
