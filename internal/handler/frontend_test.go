// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/store"
)

func slugRequest(target, slug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHomeShowsFrontPageArticles(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	_, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title: "Новина", Summary: "s", Content: "c",
		Category: model.CategoryNews, PublishedDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	rec := serveWithSession(sm, h.Home, getRequest("/", nil, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmissions(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	rec := serveWithSession(sm, h.Admissions, getRequest("/admissions-2026", nil, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticPageServesFile(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	pagesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "istoriya.html"), []byte("<p>Історія коледжу</p>"), 0o644))
	h := NewFrontendHandler(db, renderer, pagesDir)

	rec := serveWithSession(sm, h.StaticPage, slugRequest("/page/istoriya", "istoriya"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticPageMissingFileStillRenders(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	rec := serveWithSession(sm, h.StaticPage, slugRequest("/page/unknown", "unknown"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticPageRejectsTraversal(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	for _, slug := range []string{"../etc/passwd", "a/b", "..", "UPPER"} {
		rec := serveWithSession(sm, h.StaticPage, slugRequest("/page/x", slug))
		assert.Equal(t, http.StatusNotFound, rec.Code, "slug %q must 404", slug)
	}
}

func TestSectionAggregatesDescendants(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())
	q := store.New(db)
	ctx := context.Background()

	parent, err := q.CreateMenuItem(ctx, store.CreateMenuItemParams{Title: "Студенту", URL: "#"})
	require.NoError(t, err)
	child, err := q.CreateMenuItem(ctx, store.CreateMenuItemParams{
		Title: "Гуртожиток", URL: "#",
		ParentID: sql.NullInt64{Int64: parent.ID, Valid: true},
	})
	require.NoError(t, err)
	_, err = q.CreateArticle(ctx, store.CreateArticleParams{
		Title: "У дитини", Summary: "s", Content: "c",
		Category: model.CategoryNews, PublishedDate: time.Now().UTC(),
		SectionID: sql.NullInt64{Int64: child.ID, Valid: true},
	})
	require.NoError(t, err)

	id := strconv.FormatInt(parent.ID, 10)
	rec := serveWithSession(sm, h.Section, getRequest("/section/"+id, nil, id))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSectionUnknownID404(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	rec := serveWithSession(sm, h.Section, getRequest("/section/999", nil, "999"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticlesListing(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	rec := serveWithSession(sm, h.Articles, getRequest("/articles?category="+model.CategoryNews, nil, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestArticleDetail404(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	rec := serveWithSession(sm, h.ArticleDetail, getRequest("/articles/12345", nil, "12345"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleDetail(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewFrontendHandler(db, renderer, t.TempDir())

	created, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title: "Подія тижня", Summary: "s", Content: "c",
		Category: model.CategoryEvent, PublishedDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	id := strconv.FormatInt(created.ID, 10)
	rec := serveWithSession(sm, h.ArticleDetail, getRequest("/articles/"+id, nil, id))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardCounts(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewAdminHandler(db, renderer)

	rec := serveWithSession(sm, h.Dashboard, getRequest("/admin", nil, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}
