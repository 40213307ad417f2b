// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/store"
)

// UsersHandler handles user management routes.
type UsersHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *UsersHandler {
	return &UsersHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users         []model.User
	CurrentUserID int64
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Користувачі",
		User:  middleware.GetUser(r),
		Data: UsersListData{
			Users:         users,
			CurrentUserID: middleware.GetUserID(r),
		},
	}
	if err := h.renderer.Render(w, r, "admin/users", data); err != nil {
		logAndInternalError(w, "render users list", "error", err)
	}
}

// UserFormData holds data for the user form template.
type UserFormData struct {
	User  *model.User
	Roles []string
}

// NewForm handles GET /admin/users/new.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)
	roles := auth.CreatableRoles(actor.Role)
	if len(roles) == 0 {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	data := render.TemplateData{
		Title: "Новий користувач",
		User:  actor,
		Data:  UserFormData{Roles: roles},
	}
	if err := h.renderer.Render(w, r, "admin/user_form", data); err != nil {
		logAndInternalError(w, "render user form", "error", err)
	}
}

// Create handles POST /admin/users/new.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := r.FormValue("role")

	if !auth.CanCreateRole(actor.Role, role) {
		flashError(w, r, h.renderer, redirectAdminUsers, "Недоступна роль для створення.")
		return
	}
	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectAdminUsers, "Заповніть логін і пароль.")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			flashError(w, r, h.renderer, redirectAdminUsers, "Такий логін уже існує.")
			return
		}
		logAndInternalError(w, "failed to create user", "error", err)
		return
	}

	slog.Info("user created", "user_id", user.ID, "role", user.Role, "created_by", actor.ID)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Користувача створено.")
}

// EditForm handles GET /admin/users/{id}/edit.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	target, ok := requireEntityWithError(w, "user", id, func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	roles, ok := h.editableRoles(actor, target)
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	data := render.TemplateData{
		Title: "Редагувати користувача",
		User:  actor,
		Data:  UserFormData{User: &target, Roles: roles},
	}
	if err := h.renderer.Render(w, r, "admin/user_form", data); err != nil {
		logAndInternalError(w, "render user form", "error", err)
	}
}

// Update handles POST /admin/users/{id}/edit.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	target, ok := requireEntityWithError(w, "user", id, func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	roles, ok := h.editableRoles(actor, target)
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	role := r.FormValue("role")
	password := r.FormValue("password")

	if username == "" {
		flashError(w, r, h.renderer, redirectAdminUsers, "Логін не може бути порожнім.")
		return
	}

	// Unknown or unauthorized role selections silently keep the current role
	if !containsRole(roles, role) {
		role = target.Role
	}

	if err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		Username: username,
		Role:     role,
		ID:       id,
	}); err != nil {
		if store.IsUniqueViolation(err) {
			flashError(w, r, h.renderer, redirectAdminUsers, "Такий логін уже існує.")
			return
		}
		logAndInternalError(w, "failed to update user", "error", err)
		return
	}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			logAndInternalError(w, "failed to hash password", "error", err)
			return
		}
		if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
			PasswordHash: hash,
			ID:           id,
		}); err != nil {
			logAndInternalError(w, "failed to update password", "error", err)
			return
		}
	}

	slog.Info("user updated", "user_id", id, "updated_by", actor.ID)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Дані користувача оновлено.")
}

// Delete handles POST /admin/users/{id}/delete.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	target, ok := requireEntityWithError(w, "user", id, func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if target.ID == actor.ID {
		flashError(w, r, h.renderer, redirectAdminUsers, "Неможливо видалити власний акаунт.")
		return
	}
	if !auth.CanManage(actor.Role, target.Role) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete user", "error", err)
		return
	}

	slog.Info("user deleted", "user_id", id, "deleted_by", actor.ID)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Користувача видалено.")
}

// editableRoles returns the role options the actor may assign when editing
// the target. Self-edits pin the role to its current value; otherwise the
// actor must be able to manage the target outright.
func (h *UsersHandler) editableRoles(actor *model.User, target model.User) ([]string, bool) {
	if actor.ID == target.ID {
		return []string{target.Role}, true
	}
	if !auth.CanManage(actor.Role, target.Role) {
		return nil, false
	}
	return auth.CreatableRoles(actor.Role), true
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
