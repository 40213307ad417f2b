// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin panel.
package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/session"
	"github.com/vpac-edu/college-cms/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page.
// Already-authenticated users are redirected to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID); userID > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Вхід"}); err != nil {
		logAndInternalError(w, "render login form", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Введіть логін і пароль.")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Акаунт тимчасово заблоковано. Спробуйте через %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown user", "username", username)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record the failure even for unknown users to prevent enumeration
		h.recordFailure(w, r, username)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, "Невірний логін або пароль.")
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "username", username)
		h.recordFailure(w, r, username)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	flashSuccess(w, r, h.renderer, redirectAdmin, "Вхід успішний.")
}

func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, username string) {
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Забагато невдалих спроб. Спробуйте через %s.", formatDuration(lockDuration)))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, "Невірний логін або пароль.")
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	flashAndRedirect(w, r, h.renderer, redirectLogin, "Ви вийшли з акаунта.", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d с", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d хв", int(d.Minutes()))
	}
	return fmt.Sprintf("%d год", int(d.Hours()))
}
