// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/store"
)

func TestArticleCreate(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{
		"title":          {"Новий набір"},
		"summary":        {"Короткий опис"},
		"content":        {"Повний текст"},
		"category":       {model.CategoryAnnouncement},
		"published_date": {"2026-08-20"},
	}
	rec := serveWithSession(sm, h.Create, formRequest("/admin/articles/new", form, &editor, ""))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	articles, err := store.New(db).ListArticles(context.Background(), store.ListArticlesParams{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Новий набір", articles[0].Title)
	assert.Equal(t, model.CategoryAnnouncement, articles[0].Category)
	assert.Equal(t, 2026, articles[0].PublishedDate.Year())
}

func TestArticleCreateRequiresFields(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{"title": {"Лише назва"}}
	serveWithSession(sm, h.Create, formRequest("/admin/articles/new", form, &editor, ""))

	count, err := store.New(db).CountArticles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestArticleCreateInvalidCategoryFallsBack(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{
		"title":    {"Стаття"},
		"summary":  {"Опис"},
		"content":  {"Текст"},
		"category": {"Неіснуюча"},
	}
	serveWithSession(sm, h.Create, formRequest("/admin/articles/new", form, &editor, ""))

	articles, err := store.New(db).ListArticles(context.Background(), store.ListArticlesParams{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, model.Categories[0], articles[0].Category)
}

func TestArticleCreateDefaultsPublishedDate(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{
		"title":   {"Стаття"},
		"summary": {"Опис"},
		"content": {"Текст"},
	}
	serveWithSession(sm, h.Create, formRequest("/admin/articles/new", form, &editor, ""))

	articles, err := store.New(db).ListArticles(context.Background(), store.ListArticlesParams{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, time.Now().UTC().Year(), articles[0].PublishedDate.Year())
}

func TestArticleUpdate(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	created, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title: "Стара назва", Summary: "s", Content: "c",
		Category: model.CategoryNews, PublishedDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	id := strconv.FormatInt(created.ID, 10)
	form := url.Values{
		"title":    {"Нова назва"},
		"summary":  {"s"},
		"content":  {"c"},
		"category": {model.CategoryNews},
	}
	rec := serveWithSession(sm, h.Update, formRequest("/admin/articles/"+id+"/edit", form, &editor, id))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	after, err := store.New(db).GetArticleByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Нова назва", after.Title)
}

func TestArticleDelete(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	created, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title: "Видалити", Summary: "s", Content: "c",
		Category: model.CategoryOther, PublishedDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	id := strconv.FormatInt(created.ID, 10)
	rec := serveWithSession(sm, h.Delete, formRequest("/admin/articles/"+id+"/delete", url.Values{}, &editor, id))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	_, err = store.New(db).GetArticleByID(context.Background(), created.ID)
	assert.Error(t, err)
}

func TestArticleList(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewArticlesHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	rec := serveWithSession(sm, h.List, getRequest("/admin/articles", &editor, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}
