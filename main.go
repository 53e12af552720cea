package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mikegehrke/webcheck360/config"
	"github.com/mikegehrke/webcheck360/i18n"
	"github.com/mikegehrke/webcheck360/logging"
	"github.com/mikegehrke/webcheck360/middleware"
	"github.com/mikegehrke/webcheck360/pagespeed"
	"github.com/mikegehrke/webcheck360/runner"
	"github.com/mikegehrke/webcheck360/screenshot"
	"github.com/mikegehrke/webcheck360/stats"
	"github.com/mikegehrke/webcheck360/store"
)

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Store == "memory" {
		return store.NewMemory(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DataPath), 0755); err != nil {
		return nil, err
	}
	return store.NewSQLite(cfg.DataPath)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	setupGinMode()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}
	defer st.Close()

	funnel, err := stats.NewStorage(filepath.Dir(cfg.DataPath))
	if err != nil {
		log.Fatal("Failed to init funnel stats: ", err)
	}

	var psi pagespeed.Provider = pagespeed.NewClient(cfg.PageSpeedEndpoint, cfg.PageSpeedKey)
	var shots screenshot.Provider = screenshot.Disabled{}
	if cfg.Screenshots == "chromedp" {
		shots = screenshot.NewChrome(cfg.ChromePath)
	}

	srv := &Server{
		store:         st,
		runner:        runner.New(psi, shots, st, funnel),
		funnel:        funnel,
		defaultLocale: i18n.ParseLocale(cfg.DefaultLocale),
	}

	runtimeStats := logging.Initialize(filepath.Join(filepath.Dir(cfg.DataPath), "statistics.json"))
	rateLimiter := middleware.NewRateLimiter(2, 5) // 2 requests per second, burst of 5

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Admin-Token, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.Tracking(runtimeStats))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", srv.analyze)
		api.GET("/audits/:id", srv.getAudit)
		api.POST("/leads", srv.createLead)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, runtimeStats.GetStatistics())
		})

		admin := api.Group("/admin", middleware.AdminAuth(cfg.AdminToken))
		{
			admin.GET("/audits", srv.listAudits)
			admin.GET("/audits/:id", srv.auditDetail)
			admin.GET("/audits/:id/followup", srv.auditFollowup)
			admin.POST("/audits/:id/notes", srv.addNote)
			admin.GET("/leads", srv.listLeads)
			admin.PATCH("/leads/:id/status", srv.updateLeadStatus)
			admin.GET("/export", srv.exportLeads)
			admin.GET("/stats", srv.adminStats)
		}
	}

	log.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
