// Package audit defines the domain model shared by the analyzers, the
// score engine, the store and the HTTP layer.
package audit

import "time"

// Category is one of the five score dimensions.
type Category string

const (
	CategoryPerformance Category = "performance"
	CategoryMobileUX    Category = "mobile_ux"
	CategorySEO         Category = "seo"
	CategoryTrust       Category = "trust"
	CategoryConversion  Category = "conversion"
)

// Categories lists all score dimensions in their canonical order.
var Categories = []Category{
	CategoryPerformance,
	CategoryMobileUX,
	CategorySEO,
	CategoryTrust,
	CategoryConversion,
}

// Severity classifies how serious an issue is. The order matters:
// critical > high > warning > low > info.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityWarning  Severity = "warning"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// severityRank maps severities to sort ranks, lowest rank first.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityWarning:  2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// Rank returns the sort rank of a severity. Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// DefaultScore is substituted when an analyzer cannot complete its check.
const DefaultScore = 50

// Scores holds the five category scores, each in [0,100]. All five keys
// are always present; a missing analyzer result is filled with DefaultScore
// so the weighted total is always well-defined.
type Scores struct {
	Performance int `json:"performance"`
	MobileUX    int `json:"mobile_ux"`
	SEO         int `json:"seo"`
	Trust       int `json:"trust"`
	Conversion  int `json:"conversion"`
}

// Get returns the score for a category.
func (s Scores) Get(c Category) int {
	switch c {
	case CategoryPerformance:
		return s.Performance
	case CategoryMobileUX:
		return s.MobileUX
	case CategorySEO:
		return s.SEO
	case CategoryTrust:
		return s.Trust
	case CategoryConversion:
		return s.Conversion
	}
	return 0
}

// Issue is a single detected problem. ID is a stable key identifying the
// heuristic rule that fired; it doubles as the translation-table lookup key.
type Issue struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Impact         string   `json:"impact,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// Screenshots holds optional desktop/mobile image references. Either may
// be empty; absence is not an error condition.
type Screenshots struct {
	Desktop string `json:"desktop,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
}

// Audit is the aggregate result of one analysis run. It is constructed
// once by the runner and immutable afterwards.
type Audit struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	Domain      string         `json:"domain"`
	ScoreTotal  int            `json:"score_total"`
	Scores      Scores         `json:"scores"`
	Issues      []Issue        `json:"issues"`
	Screenshots Screenshots    `json:"screenshots"`
	RawData     map[string]any `json:"raw_data,omitempty"`
	Industry    string         `json:"industry,omitempty"`
	Goal        string         `json:"goal,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// LeadStatus tracks a lead through the sales pipeline. Any status may
// transition to any other; the progression is monotonic in practice only.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadMeeting   LeadStatus = "meeting"
	LeadProposal  LeadStatus = "proposal"
	LeadClosed    LeadStatus = "closed"
)

// ValidLeadStatus reports whether s is one of the known pipeline states.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadContacted, LeadMeeting, LeadProposal, LeadClosed:
		return true
	}
	return false
}

// Lead is a visitor's contact submission associated with one audit.
type Lead struct {
	ID        string     `json:"id"`
	AuditID   string     `json:"audit_id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message,omitempty"`
	Consent   bool       `json:"consent"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Note is an internal admin annotation on an audit.
type Note struct {
	ID        string    `json:"id"`
	AuditID   string    `json:"audit_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyzeRequest is the input to the analyze operation.
type AnalyzeRequest struct {
	URL      string `json:"url" binding:"required"`
	Industry string `json:"industry,omitempty"`
	Goal     string `json:"goal,omitempty"`
}

// AnalyzeResponse is returned to the funnel after a completed analysis.
type AnalyzeResponse struct {
	AuditID     string      `json:"auditId"`
	Score       int         `json:"score"`
	Scores      Scores      `json:"scores"`
	Issues      []Issue     `json:"issues"`
	Screenshots Screenshots `json:"screenshots"`
}

// Weights is the weight vector used for the total score. The five fields
// should sum to 1.
type Weights struct {
	Performance float64
	MobileUX    float64
	SEO         float64
	Trust       float64
	Conversion  float64
}

// DefaultWeights is the canonical weighting applied everywhere.
var DefaultWeights = Weights{
	Performance: 0.30,
	MobileUX:    0.25,
	SEO:         0.20,
	Trust:       0.15,
	Conversion:  0.10,
}
