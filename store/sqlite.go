package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mikegehrke/webcheck360/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS audits (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	domain TEXT NOT NULL,
	score_total INTEGER NOT NULL,
	scores_json TEXT NOT NULL,
	issues_json TEXT NOT NULL,
	screenshots_json TEXT NOT NULL,
	raw_data_json TEXT,
	industry TEXT,
	goal TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL UNIQUE REFERENCES audits(id),
	name TEXT,
	email TEXT,
	phone TEXT,
	message TEXT,
	consent INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'new',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL REFERENCES audits(id),
	content TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audits_created ON audits(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_notes_audit ON notes(audit_id);
`

// SQLite is the durable store backend.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens (and if needed creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) CreateAudit(a *audit.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	scoresJSON, _ := json.Marshal(a.Scores)
	issuesJSON, _ := json.Marshal(a.Issues)
	shotsJSON, _ := json.Marshal(a.Screenshots)
	rawJSON, _ := json.Marshal(a.RawData)

	_, err := s.db.Exec(`
		INSERT INTO audits (id, url, domain, score_total, scores_json, issues_json, screenshots_json, raw_data_json, industry, goal, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.URL, a.Domain, a.ScoreTotal, string(scoresJSON), string(issuesJSON), string(shotsJSON), string(rawJSON), a.Industry, a.Goal, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}
	return nil
}

func (s *SQLite) GetAudit(id string) (*audit.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		a          audit.Audit
		scoresJSON string
		issuesJSON string
		shotsJSON  string
		rawJSON    sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT id, url, domain, score_total, scores_json, issues_json, screenshots_json, raw_data_json, industry, goal, created_at, updated_at
		FROM audits WHERE id = ?
	`, id).Scan(&a.ID, &a.URL, &a.Domain, &a.ScoreTotal, &scoresJSON, &issuesJSON, &shotsJSON, &rawJSON, &a.Industry, &a.Goal, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(scoresJSON), &a.Scores)
	json.Unmarshal([]byte(issuesJSON), &a.Issues)
	json.Unmarshal([]byte(shotsJSON), &a.Screenshots)
	if rawJSON.Valid && rawJSON.String != "" && rawJSON.String != "null" {
		json.Unmarshal([]byte(rawJSON.String), &a.RawData)
	}
	return &a, nil
}

func (s *SQLite) ListAudits(limit, offset int) ([]AuditSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT a.id, a.url, a.domain, a.score_total, a.created_at, l.email, l.status
		FROM audits a
		LEFT JOIN leads l ON l.audit_id = a.id
		ORDER BY a.created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditSummary
	for rows.Next() {
		var (
			row    AuditSummary
			email  sql.NullString
			status sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.URL, &row.Domain, &row.ScoreTotal, &row.CreatedAt, &email, &status); err != nil {
			return nil, err
		}
		if status.Valid {
			row.HasLead = true
			row.LeadEmail = email.String
			row.LeadStatus = status.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateLead(l *audit.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audits WHERE id = ?`, l.AuditID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNoAudit
	}

	now := time.Now()

	existing, err := s.leadByAudit(l.AuditID)
	if err != nil && err != ErrNotFound {
		return err
	}
	if existing != nil {
		mergeLead(existing, l)
		existing.UpdatedAt = now
		_, err := s.db.Exec(`
			UPDATE leads SET name = ?, email = ?, phone = ?, message = ?, consent = ?, updated_at = ?
			WHERE id = ?
		`, existing.Name, existing.Email, existing.Phone, existing.Message, existing.Consent, existing.UpdatedAt, existing.ID)
		if err != nil {
			return fmt.Errorf("failed to update lead: %w", err)
		}
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

	_, err = s.db.Exec(`
		INSERT INTO leads (id, audit_id, name, email, phone, message, consent, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.AuditID, l.Name, l.Email, l.Phone, l.Message, l.Consent, string(l.Status), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

const leadColumns = `id, audit_id, name, email, phone, message, consent, status, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*audit.Lead, error) {
	var l audit.Lead
	err := row.Scan(&l.ID, &l.AuditID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Consent, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLite) leadByAudit(auditID string) (*audit.Lead, error) {
	return scanLead(s.db.QueryRow(`SELECT `+leadColumns+` FROM leads WHERE audit_id = ?`, auditID))
}

func (s *SQLite) GetLead(id string) (*audit.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanLead(s.db.QueryRow(`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id))
}

func (s *SQLite) GetLeadByAudit(auditID string) (*audit.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.leadByAudit(auditID)
}

func (s *SQLite) ListLeads() ([]*audit.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*audit.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (s *SQLite) UpdateLeadStatus(id string, status audit.LeadStatus) error {
	if !audit.ValidLeadStatus(status) {
		return ErrBadStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) AddNote(n *audit.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audits WHERE id = ?`, n.AuditID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNoAudit
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()

	_, err := s.db.Exec(`
		INSERT INTO notes (id, audit_id, content, created_at) VALUES (?, ?, ?, ?)
	`, n.ID, n.AuditID, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (s *SQLite) ListNotes(auditID string) ([]*audit.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, audit_id, content, created_at FROM notes WHERE audit_id = ? ORDER BY created_at ASC`, auditID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*audit.Note
	for rows.Next() {
		var n audit.Note
		if err := rows.Scan(&n.ID, &n.AuditID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func (s *SQLite) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{LeadsByStatus: make(map[string]int)}

	s.db.QueryRow(`SELECT COUNT(*) FROM audits`).Scan(&stats.TotalAudits)
	s.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&stats.TotalLeads)
	s.db.QueryRow(`SELECT COALESCE(AVG(score_total), 0) FROM audits`).Scan(&stats.AverageScore)

	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var status string
			var count int
			rows.Scan(&status, &count)
			stats.LeadsByStatus[status] = count
		}
	}

	return stats, nil
}
