package scoring

import (
	"testing"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/i18n"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name   string
		scores audit.Scores
		want   int
	}{
		{
			name:   "MixedScores",
			scores: audit.Scores{Performance: 90, MobileUX: 85, SEO: 70, Trust: 60, Conversion: 50},
			want:   76, // 27 + 21.25 + 14 + 9 + 5 = 76.25, rounded down
		},
		{
			name:   "AllHundred",
			scores: audit.Scores{Performance: 100, MobileUX: 100, SEO: 100, Trust: 100, Conversion: 100},
			want:   100,
		},
		{
			name:   "AllZero",
			scores: audit.Scores{},
			want:   0,
		},
		{
			name:   "AllDefault",
			scores: audit.Scores{Performance: 50, MobileUX: 50, SEO: 50, Trust: 50, Conversion: 50},
			want:   50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotal(tt.scores, audit.DefaultWeights); got != tt.want {
				t.Errorf("CalculateTotal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetRating(t *testing.T) {
	tests := []struct {
		score int
		want  Rating
	}{
		{100, RatingExcellent},
		{80, RatingExcellent},
		{79, RatingGood},
		{60, RatingGood},
		{59, RatingNeedsImprovement},
		{40, RatingNeedsImprovement},
		{39, RatingPoor},
		{0, RatingPoor},
	}
	for _, tt := range tests {
		if got := GetRating(tt.score); got != tt.want {
			t.Errorf("GetRating(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestGenerateSummary(t *testing.T) {
	scores := audit.Scores{Performance: 90, MobileUX: 85, SEO: 45, Trust: 30, Conversion: 70}

	t.Run("StrengthsAndWeaknesses", func(t *testing.T) {
		summary := GenerateSummary(scores, nil, i18n.LocaleDE)

		if len(summary.Strengths) != 2 {
			t.Errorf("Expected 2 strengths, got %v", summary.Strengths)
		}
		if len(summary.Weaknesses) != 2 {
			t.Errorf("Expected 2 weaknesses, got %v", summary.Weaknesses)
		}
		// Priority falls to the first weakness in category order: SEO.
		if summary.Priority != "SEO zeigt das größte Verbesserungspotenzial." {
			t.Errorf("Unexpected priority: %q", summary.Priority)
		}
	})

	t.Run("CriticalIssueWins", func(t *testing.T) {
		issues := []audit.Issue{
			{ID: "trust-no-https", Category: audit.CategoryTrust, Severity: audit.SeverityCritical},
		}
		summary := GenerateSummary(scores, issues, i18n.LocaleEN)
		if summary.Priority != "Focus on Trust Factors – there are critical issues." {
			t.Errorf("Unexpected priority: %q", summary.Priority)
		}
	})

	t.Run("AllClear", func(t *testing.T) {
		good := audit.Scores{Performance: 85, MobileUX: 82, SEO: 90, Trust: 88, Conversion: 81}
		summary := GenerateSummary(good, nil, i18n.LocaleDE)
		if len(summary.Weaknesses) != 0 {
			t.Errorf("Expected no weaknesses, got %v", summary.Weaknesses)
		}
		if summary.Priority != "Die Website ist insgesamt gut aufgestellt. Feintuning möglich." {
			t.Errorf("Unexpected priority: %q", summary.Priority)
		}
	})
}

func TestProcess(t *testing.T) {
	scores := audit.Scores{Performance: 90, MobileUX: 85, SEO: 70, Trust: 60, Conversion: 50}
	result := Process(scores, nil, i18n.LocaleDE)

	if result.Total != 76 {
		t.Errorf("Expected total 76, got %d", result.Total)
	}
	if result.Rating != RatingGood {
		t.Errorf("Expected rating good, got %s", result.Rating)
	}
}

func TestSortBySeverity(t *testing.T) {
	issues := []audit.Issue{
		{ID: "a", Severity: audit.SeverityLow},
		{ID: "b", Severity: audit.SeverityCritical},
		{ID: "c", Severity: audit.SeverityWarning},
		{ID: "d", Severity: audit.SeverityCritical},
		{ID: "e", Severity: audit.SeverityInfo},
		{ID: "f", Severity: audit.SeverityHigh},
	}
	sorted := SortBySeverity(issues)

	want := []string{"b", "d", "f", "c", "a", "e"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("Position %d: expected %s, got %s", i, id, sorted[i].ID)
		}
	}

	// Input untouched.
	if issues[0].ID != "a" {
		t.Error("SortBySeverity must not mutate its input")
	}
}

func TestGroupByCategory(t *testing.T) {
	issues := []audit.Issue{
		{ID: "a", Category: audit.CategorySEO},
		{ID: "b", Category: audit.CategoryTrust},
		{ID: "c", Category: audit.CategorySEO},
	}
	groups := GroupByCategory(issues)

	if len(groups[audit.CategorySEO]) != 2 {
		t.Errorf("Expected 2 SEO issues, got %d", len(groups[audit.CategorySEO]))
	}
	if len(groups[audit.CategoryTrust]) != 1 {
		t.Errorf("Expected 1 trust issue, got %d", len(groups[audit.CategoryTrust]))
	}
}
