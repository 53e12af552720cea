// Package store persists audits, leads and notes. Two backends exist:
// an in-memory map store for tests and throwaway deployments, and a
// SQLite store for everything else.
package store

import (
	"errors"
	"time"

	"github.com/mikegehrke/webcheck360/audit"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrBadStatus = errors.New("store: invalid lead status")
	ErrNoAudit   = errors.New("store: lead references unknown audit")
)

// AuditSummary is the admin list row: the audit core plus whether a
// lead was captured for it.
type AuditSummary struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Domain     string    `json:"domain"`
	ScoreTotal int       `json:"score_total"`
	CreatedAt  time.Time `json:"created_at"`
	HasLead    bool      `json:"has_lead"`
	LeadEmail  string    `json:"lead_email,omitempty"`
	LeadStatus string    `json:"lead_status,omitempty"`
}

// Stats aggregates the numbers shown on the admin dashboard.
type Stats struct {
	TotalAudits   int            `json:"total_audits"`
	TotalLeads    int            `json:"total_leads"`
	AverageScore  float64        `json:"average_score"`
	LeadsByStatus map[string]int `json:"leads_by_status"`
}

// Store is the persistence contract shared by both backends.
type Store interface {
	CreateAudit(a *audit.Audit) error
	GetAudit(id string) (*audit.Audit, error)
	ListAudits(limit, offset int) ([]AuditSummary, error)

	// CreateLead upserts by audit id: a second submission for the same
	// audit updates the existing lead instead of creating another row.
	CreateLead(l *audit.Lead) error
	GetLead(id string) (*audit.Lead, error)
	GetLeadByAudit(auditID string) (*audit.Lead, error)
	ListLeads() ([]*audit.Lead, error)
	UpdateLeadStatus(id string, status audit.LeadStatus) error

	AddNote(n *audit.Note) error
	ListNotes(auditID string) ([]*audit.Note, error)

	Stats() (*Stats, error)
	Close() error
}
