package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"studyaid/internal/catalog"
	"studyaid/internal/config"
	"studyaid/internal/database"
	"studyaid/internal/handlers"
	"studyaid/internal/logger"
	"studyaid/internal/repository"
	"studyaid/internal/security"
	"studyaid/internal/service"
	"studyaid/internal/sse"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	// Preferences degrade to per-page themes when the database is unavailable
	var store service.PreferenceStore = service.NoopPreferenceStore{}
	var pinger handlers.Pinger
	if db := openPreferenceDB(ctx, cfg, log); db != nil {
		defer db.Close()
		repo := repository.NewPreferenceRepository(db)
		store = repo
		pinger = repo
	}

	md := handlers.NewMarkdown()
	templates, err := handlers.LoadTemplates(cfg.Paths.Templates, md)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	log.Info("Templates loaded", "path", cfg.Paths.Templates)

	greeting, err := service.NewGreetingService(cfg.Greeting)
	if err != nil {
		return fmt.Errorf("creating greeting: %w", err)
	}

	visitors, err := security.NewVisitorSigner(cfg.Security.Secret, cfg.Security.VisitorCookieTTL)
	if err != nil {
		return fmt.Errorf("creating visitor signer: %w", err)
	}
	csrf, err := security.NewCSRFGenerator(cfg.Security.Secret)
	if err != nil {
		return fmt.Errorf("creating csrf generator: %w", err)
	}
	limiter := security.NewRateLimiter(cfg.Tutor.RateLimit, cfg.Tutor.RateWindow)

	hub := sse.NewHub(log)
	pages, err := service.NewPageService(service.PageServiceOptions{
		Catalog:      catalog.Default(),
		Themes:       service.NewThemeService(store, log),
		TutorLatency: cfg.Tutor.Latency,
		Notifier:     handlers.NewMarkdownNotifier(hub, md),
		TTL:          cfg.Session.PageTTL,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("creating page service: %w", err)
	}

	backend := service.NewBackendClient(cfg.Backend)
	log.Info("Backend integration", "status", backend.StatusLabel())

	mw := handlers.NewMiddleware(visitors, csrf, limiter, log)
	pageHandler := handlers.NewPageHandler(handlers.PageHandlerOptions{
		Pages:     pages,
		Greeting:  greeting,
		Backend:   backend,
		CSRF:      csrf,
		Hub:       hub,
		Markdown:  md,
		Templates: templates,
		Logger:    log,
	})
	health := handlers.NewHealthHandler(pinger, backend, pages, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handlers.NewRouter(pageHandler, health, mw, cfg.Paths.Static, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	server.RegisterOnShutdown(hub.Close)

	go cleanupLoop(ctx, cfg.Session.CleanupInterval, pages, limiter, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openPreferenceDB connects and migrates the preference database, or returns
// nil when persistence is disabled or unavailable.
func openPreferenceDB(ctx context.Context, cfg *config.Config, log *logger.Logger) *database.DB {
	if !cfg.PersistenceEnabled() {
		log.Info("Persistence disabled; theme choices last for the current page only")
		return nil
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Warn("Preference store unavailable; continuing without persistence", "type", cfg.Database.Type, "error", err)
		return nil
	}
	log.Info("Database connection established", "type", cfg.Database.Type)

	applied, err := db.RunMigrations(ctx, cfg.Paths.Migrations)
	if err != nil {
		log.Warn("Migrations failed; continuing without persistence", "error", err)
		db.Close()
		return nil
	}
	log.Info("Migrations completed", "applied", len(applied))
	return db
}

// cleanupLoop periodically evicts idle page sessions and rate-limit buckets
func cleanupLoop(ctx context.Context, interval time.Duration, pages *service.PageService, limiter *security.RateLimiter, log *logger.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := pages.CleanupExpired()
			buckets := limiter.Cleanup()
			log.Debug("Expired state cleaned up", "pages", removed, "rateBuckets", buckets, "live", pages.Len())
		}
	}
}
