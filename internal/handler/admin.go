// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/store"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardData holds counters for the dashboard template.
type DashboardData struct {
	UserCount     int64
	MenuItemCount int64
	ArticleCount  int64
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var data DashboardData
	var err error

	if data.UserCount, err = h.queries.CountUsers(r.Context()); err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}
	if data.MenuItemCount, err = h.queries.CountMenuItems(r.Context()); err != nil {
		logAndInternalError(w, "failed to count menu items", "error", err)
		return
	}
	if data.ArticleCount, err = h.queries.CountArticles(r.Context()); err != nil {
		logAndInternalError(w, "failed to count articles", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Панель керування",
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render dashboard", "error", err)
	}
}
