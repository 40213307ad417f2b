// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/service"
	"github.com/vpac-edu/college-cms/internal/store"
	"github.com/vpac-edu/college-cms/internal/util"
)

// MenusHandler handles menu management routes.
type MenusHandler struct {
	queries  *store.Queries
	menus    *service.MenuService
	renderer *render.Renderer
}

// NewMenusHandler creates a new MenusHandler.
func NewMenusHandler(db *sql.DB, renderer *render.Renderer) *MenusHandler {
	return &MenusHandler{
		queries:  store.New(db),
		menus:    service.NewMenuService(db),
		renderer: renderer,
	}
}

// MenuListData holds data for the menu admin list template.
type MenuListData struct {
	Items []service.MenuNode
}

// MenuFormData holds data for the menu item form template.
type MenuFormData struct {
	Item    *model.MenuItem
	Parents []service.MenuNode
}

// List handles GET /admin/menu - shows the flattened tree with depths.
func (h *MenusHandler) List(w http.ResponseWriter, r *http.Request) {
	tree, err := h.menus.Load(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load menu", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Меню",
		User:  middleware.GetUser(r),
		Data:  MenuListData{Items: service.Flatten(tree)},
	}
	if err := h.renderer.Render(w, r, "admin/menu", data); err != nil {
		logAndInternalError(w, "render menu list", "error", err)
	}
}

// NewForm handles GET /admin/menu/new.
func (h *MenusHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	tree, err := h.menus.Load(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load menu", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Новий пункт меню",
		User:  middleware.GetUser(r),
		Data:  MenuFormData{Parents: service.Flatten(tree)},
	}
	if err := h.renderer.Render(w, r, "admin/menu_form", data); err != nil {
		logAndInternalError(w, "render menu form", "error", err)
	}
}

// Create handles POST /admin/menu/new.
func (h *MenusHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMenu) {
		return
	}

	params, ok := h.menuItemFromForm(w, r)
	if !ok {
		return
	}

	item, err := h.queries.CreateMenuItem(r.Context(), store.CreateMenuItemParams{
		ParentID:  params.ParentID,
		Title:     params.Title,
		URL:       params.URL,
		SortOrder: params.SortOrder,
	})
	if err != nil {
		logAndInternalError(w, "failed to create menu item", "error", err)
		return
	}

	slog.Info("menu item created", "item_id", item.ID, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminMenu, "Пункт меню створено.")
}

// EditForm handles GET /admin/menu/{id}/edit.
func (h *MenusHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenu, "Пункт меню", id,
		func(id int64) (model.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}

	tree, err := h.menus.Load(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load menu", "error", err)
		return
	}

	// An item cannot be its own parent
	parents := make([]service.MenuNode, 0)
	for _, node := range service.Flatten(tree) {
		if node.ID != id {
			parents = append(parents, node)
		}
	}

	data := render.TemplateData{
		Title: "Редагувати пункт меню",
		User:  middleware.GetUser(r),
		Data:  MenuFormData{Item: &item, Parents: parents},
	}
	if err := h.renderer.Render(w, r, "admin/menu_form", data); err != nil {
		logAndInternalError(w, "render menu form", "error", err)
	}
}

// Update handles POST /admin/menu/{id}/edit.
func (h *MenusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenu, "Пункт меню", id,
		func(id int64) (model.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) }); !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMenu) {
		return
	}

	params, ok := h.menuItemFromForm(w, r)
	if !ok {
		return
	}
	if params.ParentID.Valid && params.ParentID.Int64 == id {
		flashError(w, r, h.renderer, redirectAdminMenu, "Пункт меню не може бути власним батьком.")
		return
	}

	if err := h.queries.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		ParentID:  params.ParentID,
		Title:     params.Title,
		URL:       params.URL,
		SortOrder: params.SortOrder,
		ID:        id,
	}); err != nil {
		logAndInternalError(w, "failed to update menu item", "error", err)
		return
	}

	slog.Info("menu item updated", "item_id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminMenu, "Пункт меню оновлено.")
}

// Delete handles POST /admin/menu/{id}/delete.
// Removes the item and its direct children; deeper descendants become
// top-level orphans.
func (h *MenusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenu, "Пункт меню", id,
		func(id int64) (model.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteMenuItemWithChildren(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete menu item", "error", err)
		return
	}

	slog.Info("menu item deleted", "item_id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminMenu, "Пункт меню видалено.")
}

type menuItemForm struct {
	ParentID  sql.NullInt64
	Title     string
	URL       string
	SortOrder int64
}

func (h *MenusHandler) menuItemFromForm(w http.ResponseWriter, r *http.Request) (menuItemForm, bool) {
	form := menuItemForm{
		ParentID: util.ParseNullInt64(r.FormValue("parent_id")),
		Title:    strings.TrimSpace(r.FormValue("title")),
		URL:      strings.TrimSpace(r.FormValue("url")),
	}
	if form.URL == "" {
		form.URL = model.URLPlaceholder
	}
	if v, err := strconv.ParseInt(r.FormValue("sort_order"), 10, 64); err == nil {
		form.SortOrder = v
	}

	if form.Title == "" {
		flashError(w, r, h.renderer, redirectAdminMenu, "Назва обов'язкова.")
		return menuItemForm{}, false
	}
	return form, true
}
