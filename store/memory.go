package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikegehrke/webcheck360/audit"
)

// Memory is a map-backed store. Nothing survives a restart; use it for
// tests and local development.
type Memory struct {
	mu           sync.RWMutex
	audits       map[string]*audit.Audit
	leads        map[string]*audit.Lead
	leadsByAudit map[string]string
	notes        map[string][]*audit.Note
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		audits:       make(map[string]*audit.Audit),
		leads:        make(map[string]*audit.Lead),
		leadsByAudit: make(map[string]string),
		notes:        make(map[string][]*audit.Note),
	}
}

func (m *Memory) CreateAudit(a *audit.Audit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	cp := *a
	m.audits[a.ID] = &cp
	return nil
}

func (m *Memory) GetAudit(id string) (*audit.Audit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.audits[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *Memory) ListAudits(limit, offset int) ([]AuditSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*audit.Audit, 0, len(m.audits))
	for _, a := range m.audits {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	rows := make([]AuditSummary, 0, len(all))
	for _, a := range all {
		row := AuditSummary{
			ID:         a.ID,
			URL:        a.URL,
			Domain:     a.Domain,
			ScoreTotal: a.ScoreTotal,
			CreatedAt:  a.CreatedAt,
		}
		if leadID, ok := m.leadsByAudit[a.ID]; ok {
			lead := m.leads[leadID]
			row.HasLead = true
			row.LeadEmail = lead.Email
			row.LeadStatus = string(lead.Status)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *Memory) CreateLead(l *audit.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.audits[l.AuditID]; !ok {
		return ErrNoAudit
	}

	now := time.Now()
	if existingID, ok := m.leadsByAudit[l.AuditID]; ok {
		existing := m.leads[existingID]
		mergeLead(existing, l)
		existing.UpdatedAt = now
		*l = *existing
		return nil
	}

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = audit.LeadNew
	}
	l.CreatedAt = now
	l.UpdatedAt = now

	cp := *l
	m.leads[l.ID] = &cp
	m.leadsByAudit[l.AuditID] = l.ID
	return nil
}

func (m *Memory) GetLead(id string) (*audit.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *Memory) GetLeadByAudit(auditID string) (*audit.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.leadsByAudit[auditID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.leads[id]
	return &cp, nil
}

func (m *Memory) ListLeads() ([]*audit.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	leads := make([]*audit.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		cp := *l
		leads = append(leads, &cp)
	}
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads, nil
}

func (m *Memory) UpdateLeadStatus(id string, status audit.LeadStatus) error {
	if !audit.ValidLeadStatus(status) {
		return ErrBadStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.leads[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) AddNote(n *audit.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.audits[n.AuditID]; !ok {
		return ErrNoAudit
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()

	cp := *n
	m.notes[n.AuditID] = append(m.notes[n.AuditID], &cp)
	return nil
}

func (m *Memory) ListNotes(auditID string) ([]*audit.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.notes[auditID]
	notes := make([]*audit.Note, len(src))
	for i, n := range src {
		cp := *n
		notes[i] = &cp
	}
	return notes, nil
}

func (m *Memory) Stats() (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{
		TotalAudits:   len(m.audits),
		TotalLeads:    len(m.leads),
		LeadsByStatus: make(map[string]int),
	}
	sum := 0
	for _, a := range m.audits {
		sum += a.ScoreTotal
	}
	if len(m.audits) > 0 {
		stats.AverageScore = float64(sum) / float64(len(m.audits))
	}
	for _, l := range m.leads {
		stats.LeadsByStatus[string(l.Status)]++
	}
	return stats, nil
}

func (m *Memory) Close() error { return nil }

// mergeLead copies non-empty fields of an update onto an existing lead.
// A repeat submission never clears data the first one provided.
func mergeLead(dst, src *audit.Lead) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.Message != "" {
		dst.Message = src.Message
	}
	if src.Consent {
		dst.Consent = true
	}
}
