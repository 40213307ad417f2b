// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vpac-edu/college-cms/internal/middleware"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/service"
	"github.com/vpac-edu/college-cms/internal/store"
	"github.com/vpac-edu/college-cms/internal/util"
)

// ArticlesHandler handles article management routes.
type ArticlesHandler struct {
	queries  *store.Queries
	menus    *service.MenuService
	renderer *render.Renderer
}

// NewArticlesHandler creates a new ArticlesHandler.
func NewArticlesHandler(db *sql.DB, renderer *render.Renderer) *ArticlesHandler {
	return &ArticlesHandler{
		queries:  store.New(db),
		menus:    service.NewMenuService(db),
		renderer: renderer,
	}
}

// ArticlesListData holds data for the articles admin list template.
type ArticlesListData struct {
	Articles   []store.ArticleWithSection
	Categories []string
}

// ArticleFormData holds data for the article form template.
type ArticleFormData struct {
	Article    *model.Article
	Sections   []service.MenuNode
	Categories []string
}

// List handles GET /admin/articles.
func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.queries.ListArticles(r.Context(), store.ListArticlesParams{})
	if err != nil {
		logAndInternalError(w, "failed to list articles", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Статті",
		User:  middleware.GetUser(r),
		Data: ArticlesListData{
			Articles:   articles,
			Categories: model.Categories,
		},
	}
	if err := h.renderer.Render(w, r, "admin/articles", data); err != nil {
		logAndInternalError(w, "render articles list", "error", err)
	}
}

// NewForm handles GET /admin/articles/new.
func (h *ArticlesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Нова стаття", nil)
}

// Create handles POST /admin/articles/new.
func (h *ArticlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminArticles) {
		return
	}

	form, ok := h.articleFromForm(w, r)
	if !ok {
		return
	}

	article, err := h.queries.CreateArticle(r.Context(), store.CreateArticleParams{
		Title:         form.Title,
		Summary:       form.Summary,
		Content:       form.Content,
		Category:      form.Category,
		SectionID:     form.SectionID,
		PublishedDate: form.PublishedDate,
		EventDate:     form.EventDate,
		ExternalLink:  form.ExternalLink,
	})
	if err != nil {
		logAndInternalError(w, "failed to create article", "error", err)
		return
	}

	slog.Info("article created", "article_id", article.ID, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Статтю створено.")
}

// EditForm handles GET /admin/articles/{id}/edit.
func (h *ArticlesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	article, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "Стаття", id,
		func(id int64) (store.ArticleWithSection, error) { return h.queries.GetArticleByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, "Редагувати статтю", &article.Article)
}

// Update handles POST /admin/articles/{id}/edit.
func (h *ArticlesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "Стаття", id,
		func(id int64) (store.ArticleWithSection, error) { return h.queries.GetArticleByID(r.Context(), id) }); !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminArticles) {
		return
	}

	form, ok := h.articleFromForm(w, r)
	if !ok {
		return
	}

	if err := h.queries.UpdateArticle(r.Context(), store.UpdateArticleParams{
		Title:         form.Title,
		Summary:       form.Summary,
		Content:       form.Content,
		Category:      form.Category,
		SectionID:     form.SectionID,
		PublishedDate: form.PublishedDate,
		EventDate:     form.EventDate,
		ExternalLink:  form.ExternalLink,
		ID:            id,
	}); err != nil {
		logAndInternalError(w, "failed to update article", "error", err)
		return
	}

	slog.Info("article updated", "article_id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Статтю оновлено.")
}

// Delete handles POST /admin/articles/{id}/delete.
func (h *ArticlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "Стаття", id,
		func(id int64) (store.ArticleWithSection, error) { return h.queries.GetArticleByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteArticle(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete article", "error", err)
		return
	}

	slog.Info("article deleted", "article_id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Статтю видалено.")
}

func (h *ArticlesHandler) renderForm(w http.ResponseWriter, r *http.Request, title string, article *model.Article) {
	tree, err := h.menus.Load(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load menu", "error", err)
		return
	}

	data := render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data: ArticleFormData{
			Article:    article,
			Sections:   service.Flatten(tree),
			Categories: model.Categories,
		},
	}
	if err := h.renderer.Render(w, r, "admin/article_form", data); err != nil {
		logAndInternalError(w, "render article form", "error", err)
	}
}

type articleForm struct {
	Title         string
	Summary       string
	Content       string
	Category      string
	SectionID     sql.NullInt64
	PublishedDate time.Time
	EventDate     sql.NullTime
	ExternalLink  sql.NullString
}

func (h *ArticlesHandler) articleFromForm(w http.ResponseWriter, r *http.Request) (articleForm, bool) {
	form := articleForm{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Summary:      strings.TrimSpace(r.FormValue("summary")),
		Content:      strings.TrimSpace(r.FormValue("content")),
		Category:     r.FormValue("category"),
		SectionID:    util.ParseNullInt64(r.FormValue("section_id")),
		EventDate:    util.ParseNullDate(r.FormValue("event_date")),
		ExternalLink: util.NullStringFromValue(strings.TrimSpace(r.FormValue("external_link"))),
	}

	if !model.IsValidCategory(form.Category) {
		form.Category = model.Categories[0]
	}

	if published := util.ParseNullDate(r.FormValue("published_date")); published.Valid {
		form.PublishedDate = published.Time
	} else {
		form.PublishedDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if form.Title == "" || form.Summary == "" || form.Content == "" {
		flashError(w, r, h.renderer, redirectAdminArticles, "Заповніть назву, опис та текст статті.")
		return articleForm{}, false
	}
	return form, true
}
