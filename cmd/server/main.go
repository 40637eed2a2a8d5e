package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"grouplink/internal/brand"
	"grouplink/internal/config"
	"grouplink/internal/database"
	"grouplink/internal/handlers"
	"grouplink/internal/security"
	"grouplink/internal/service"
	"grouplink/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Load brand chrome
	b, err := brand.Load(cfg.BrandPath)
	if err != nil {
		log.Fatalf("Failed to load brand config: %v", err)
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := template.ParseGlob(filepath.Join(cfg.TemplatesPath, "*.tmpl"))
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize services
	inviteStore := store.New(db)
	inviteService := service.NewInviteService(inviteStore, cfg.BaseURL)

	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize handlers
	verifier := security.NewTokenVerifier(cfg.APIToken, cfg.APITokenHash)
	if !verifier.Configured() {
		log.Println("Warning: no API token configured, mutating endpoints will reject all requests")
	}
	limiter := security.NewRateLimiter(cfg.RateLimitBurst, cfg.RateLimitWindow)
	middleware := handlers.NewMiddleware(verifier, limiter)
	apiHandler := handlers.NewAPIHandler(inviteService, emailService, b)
	inviteHandler := handlers.NewInviteHandler(inviteService, b, cfg.BaseURL, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))

	// API routes
	mux.HandleFunc("POST /api/invite", middleware.RateLimit(middleware.RequireToken(apiHandler.CreateInvite)))
	mux.HandleFunc("POST /api/shorturl", middleware.RateLimit(middleware.RequireToken(apiHandler.CreateShortURL)))
	mux.HandleFunc("GET /api/invite/{code}", apiHandler.GetInvite)

	// Browser-facing invite routes
	mux.HandleFunc("GET /i/{code}", inviteHandler.DeepLink)
	mux.HandleFunc("GET /join/{code}", inviteHandler.Join)
	mux.HandleFunc("GET /j/{shortCode}", inviteHandler.ShortCode)

	// Landing and ops
	mux.HandleFunc("GET /{$}", inviteHandler.Home)
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("/", inviteHandler.NotFound)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s (brand: %s)", addr, b.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
