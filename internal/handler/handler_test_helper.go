// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/store"
	"github.com/vpac-edu/college-cms/internal/testutil"
)

// testTemplates is a minimal template set covering every view the
// handlers render.
func testTemplates() fstest.MapFS {
	base := `{{define "base"}}{{template "content" .}}{{end}}`
	content := `{{define "content"}}{{.Title}}{{end}}`

	fs := fstest.MapFS{
		"layouts/base.html":  {Data: []byte(base)},
		"layouts/admin.html": {Data: []byte(``)},
	}
	pages := []string{
		"frontend/index", "frontend/admissions", "frontend/page",
		"frontend/section", "frontend/articles", "frontend/article_detail",
		"auth/login",
		"admin/dashboard", "admin/users", "admin/user_form",
		"admin/menu", "admin/menu_form",
		"admin/articles", "admin/article_form",
	}
	for _, name := range pages {
		fs[name+".html"] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

// testHandlerSetup creates a migrated database, session manager and
// renderer for handler tests.
func testHandlerSetup(t *testing.T) (*sql.DB, *scs.SessionManager, *render.Renderer) {
	t.Helper()

	db := testutil.TestDB(t)
	sm := scs.New()

	renderer, err := render.New(render.Config{
		TemplatesFS:    testTemplates(),
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return db, sm, renderer
}

// createTestUser inserts a user with the given role and a known password.
func createTestUser(t *testing.T, db *sql.DB, username, role string) model.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// formRequest builds a POST request with form values, an optional acting
// user in the context, and an optional {id} route parameter.
func formRequest(target string, values url.Values, actor *model.User, id string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ctx := req.Context()
	if actor != nil {
		ctx = context.WithValue(ctx, middleware.ContextKeyUser, *actor)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// getRequest builds a GET request with an optional acting user and {id}
// route parameter.
func getRequest(target string, actor *model.User, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)

	ctx := req.Context()
	if actor != nil {
		ctx = context.WithValue(ctx, middleware.ContextKeyUser, *actor)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// serveWithSession runs the handler inside the session middleware so
// flash messages and session writes work.
func serveWithSession(sm *scs.SessionManager, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	sm.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}
