package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikegehrke/webcheck360/audit"
	"github.com/mikegehrke/webcheck360/followup"
	"github.com/mikegehrke/webcheck360/i18n"
	"github.com/mikegehrke/webcheck360/runner"
	"github.com/mikegehrke/webcheck360/stats"
	"github.com/mikegehrke/webcheck360/store"
)

// Server holds the handler dependencies.
type Server struct {
	store         store.Store
	runner        *runner.Runner
	funnel        *stats.Storage
	defaultLocale i18n.Locale
}

func (s *Server) locale(c *gin.Context) i18n.Locale {
	if raw := c.Query("locale"); raw != "" {
		return i18n.ParseLocale(raw)
	}
	return s.defaultLocale
}

func (s *Server) analyze(c *gin.Context) {
	log.Printf("Analyze request received from: %s\n", c.ClientIP())

	var req audit.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.Set("audit_url", req.URL)

	resp, err := s.runner.Run(c.Request.Context(), req, s.locale(c))
	if err != nil {
		if errors.Is(err, runner.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze URL"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getAudit(c *gin.Context) {
	a, err := s.store.GetAudit(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit"})
		return
	}

	a.Issues = i18n.LocalizeIssues(a.Issues, s.locale(c))
	c.JSON(http.StatusOK, a)
}

type leadRequest struct {
	AuditID string `json:"auditId" binding:"required"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

func (s *Server) createLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Email == "" && req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or phone is required"})
		return
	}
	if !req.Consent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Consent is required"})
		return
	}

	lead := &audit.Lead{
		AuditID: req.AuditID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Consent: req.Consent,
	}
	if err := s.store.CreateLead(lead); err != nil {
		if errors.Is(err, store.ErrNoAudit) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lead"})
		return
	}

	if s.funnel != nil {
		s.funnel.RecordLead()
	}

	c.JSON(http.StatusCreated, lead)
}

func (s *Server) listAudits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := s.store.ListAudits(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audits"})
		return
	}
	if rows == nil {
		rows = []store.AuditSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"audits": rows})
}

func (s *Server) auditDetail(c *gin.Context) {
	a, err := s.store.GetAudit(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit"})
		return
	}
	a.Issues = i18n.LocalizeIssues(a.Issues, s.locale(c))

	detail := gin.H{"audit": a}
	if lead, err := s.store.GetLeadByAudit(a.ID); err == nil {
		detail["lead"] = lead
	}
	if notes, err := s.store.ListNotes(a.ID); err == nil && len(notes) > 0 {
		detail["notes"] = notes
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) auditFollowup(c *gin.Context) {
	a, err := s.store.GetAudit(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit"})
		return
	}

	locale := s.locale(c)
	issues := i18n.LocalizeIssues(a.Issues, locale)
	text := followup.Generate(a.Domain, a.ScoreTotal, issues, locale)

	c.JSON(http.StatusOK, gin.H{
		"auditId": a.ID,
		"locale":  locale,
		"text":    text,
	})
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *Server) addNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	note := &audit.Note{
		AuditID: c.Param("id"),
		Content: req.Content,
	}
	if err := s.store.AddNote(note); err != nil {
		if errors.Is(err, store.ErrNoAudit) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (s *Server) listLeads(c *gin.Context) {
	leads, err := s.store.ListLeads()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}
	if leads == nil {
		leads = []*audit.Lead{}
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateLeadStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := s.store.UpdateLeadStatus(c.Param("id"), audit.LeadStatus(req.Status))
	switch {
	case errors.Is(err, store.ErrBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown lead status"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}

func (s *Server) exportLeads(c *gin.Context) {
	rows, err := store.ExportRows(s.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	filename := "leads-" + time.Now().Format("2006-01-02")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := store.WriteCSV(c.Writer, rows); err != nil {
			log.Printf("CSV export failed: %v", err)
		}
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := store.WriteXLSX(c.Writer, rows); err != nil {
			log.Printf("XLSX export failed: %v", err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
	}
}

func (s *Server) adminStats(c *gin.Context) {
	storeStats, err := s.store.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	monthly := make(map[string]stats.MonthlyStats)
	if s.funnel != nil {
		for _, month := range s.funnel.GetAllMonths() {
			if m, ok := s.funnel.GetMonthlyStats(month); ok {
				monthly[month] = m
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totals":  storeStats,
		"monthly": monthly,
	})
}
