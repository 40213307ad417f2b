// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/config"
	"github.com/vpac-edu/college-cms/internal/handler"
	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/session"
	"github.com/vpac-edu/college-cms/internal/store"
	"github.com/vpac-edu/college-cms/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Forms post back to the page they were served from.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + handler.RouteParamID
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base+handler.RouteSuffixNew, h.Create)
	r.Get(baseID+handler.RouteSuffixEdit, h.EditForm)
	r.Post(baseID+handler.RouteSuffixEdit, h.Update)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "collegecms - College Website CMS\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_DB_PATH       SQLite database path (default: ./data/college.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_SERVER_PORT   Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_LOG_LEVEL     Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_PAGES_DIR     Static informational pages directory (default: ./pages)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_IMAGES_DIR    Image files directory (default: ./images)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("collegecms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := store.Seed(context.Background(), db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("mounting templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	loginProtection := middleware.NewLoginProtection()
	slog.Info("login protection initialized")

	frontendHandler := handler.NewFrontendHandler(db, renderer, cfg.PagesDir)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, renderer)
	usersHandler := handler.NewUsersHandler(db, renderer, sessionManager)
	menusHandler := handler.NewMenusHandler(db, renderer)
	articlesHandler := handler.NewArticlesHandler(db, renderer)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(sessionManager.LoadAndSave)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("mounting static assets: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalLoadUser(sessionManager, db))
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteAdmissions, frontendHandler.Admissions)
		r.Get(handler.RoutePageSlug, frontendHandler.StaticPage)
		r.Get(handler.RouteSectionID, frontendHandler.Section)
		r.Get(handler.RouteArticles, frontendHandler.Articles)
		r.Get(handler.RouteArticlesID, frontendHandler.ArticleDetail)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get(handler.RouteRoot, adminHandler.Dashboard)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(auth.RoleOwner, auth.RoleAdmin))
			registerCRUD(r, handler.RouteUsers, crudHandlers{
				List:     usersHandler.List,
				NewForm:  usersHandler.NewForm,
				Create:   usersHandler.Create,
				EditForm: usersHandler.EditForm,
				Update:   usersHandler.Update,
				Delete:   usersHandler.Delete,
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(auth.RoleOwner, auth.RoleAdmin, auth.RoleEditor))
			registerCRUD(r, handler.RouteMenu, crudHandlers{
				List:     menusHandler.List,
				NewForm:  menusHandler.NewForm,
				Create:   menusHandler.Create,
				EditForm: menusHandler.EditForm,
				Update:   menusHandler.Update,
				Delete:   menusHandler.Delete,
			})
			registerCRUD(r, handler.RouteAdminArticles, crudHandlers{
				List:     articlesHandler.List,
				NewForm:  articlesHandler.NewForm,
				Create:   articlesHandler.Create,
				EditForm: articlesHandler.EditForm,
				Update:   articlesHandler.Update,
				Delete:   articlesHandler.Delete,
			})
		})
	})

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return <-shutdownErr
}
