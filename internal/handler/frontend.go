// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/render"
	"github.com/vpac-edu/college-cms/internal/service"
	"github.com/vpac-edu/college-cms/internal/store"
	"github.com/vpac-edu/college-cms/internal/util"
)

// FrontendHandler handles the public site routes.
type FrontendHandler struct {
	queries  *store.Queries
	menus    *service.MenuService
	articles *service.ArticleService
	renderer *render.Renderer
	pagesDir string
}

// NewFrontendHandler creates a new FrontendHandler.
// pagesDir is the directory holding static page content files.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, pagesDir string) *FrontendHandler {
	return &FrontendHandler{
		queries:  store.New(db),
		menus:    service.NewMenuService(db),
		articles: service.NewArticleService(db),
		renderer: renderer,
		pagesDir: pagesDir,
	}
}

// menuTree loads the navigation tree, logging failures and returning an
// empty tree so pages still render.
func (h *FrontendHandler) menuTree(r *http.Request) []service.MenuNode {
	tree, err := h.menus.Load(r.Context())
	if err != nil {
		slog.Error("failed to load menu", "error", err)
		return nil
	}
	return tree
}

// HomeData holds data for the home page template.
type HomeData struct {
	Articles []store.ArticleWithSection
}

// Home handles GET / - the home page with the latest site-wide articles.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.FrontPage(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load front page articles", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Головна",
		Menu:  h.menuTree(r),
		Data:  HomeData{Articles: articles},
	}
	if err := h.renderer.Render(w, r, "frontend/index", data); err != nil {
		logAndInternalError(w, "render home page", "error", err)
	}
}

// Admissions handles GET /admissions-2026 - the static admissions page.
func (h *FrontendHandler) Admissions(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title: "Абітурієнту",
		Menu:  h.menuTree(r),
	}
	if err := h.renderer.Render(w, r, "frontend/admissions", data); err != nil {
		logAndInternalError(w, "render admissions page", "error", err)
	}
}

// PageData holds data for the static page template.
type PageData struct {
	PageTitle string
	Content   string
	HasFile   bool
}

// StaticPage handles GET /page/{slug}. Content comes from a file in the
// pages directory; the title comes from the menu item pointing at the
// page, falling back to a title-cased slug.
func (h *FrontendHandler) StaticPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		http.NotFound(w, r)
		return
	}

	var content string
	hasFile := false
	raw, err := os.ReadFile(filepath.Join(h.pagesDir, slug+".html"))
	if err == nil {
		content = string(raw)
		hasFile = true
	} else if !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to read page file", "slug", slug, "error", err)
	}

	pageTitle := ""
	item, err := h.queries.GetMenuItemByURL(r.Context(), model.StaticPagePrefix+slug)
	switch {
	case err == nil:
		pageTitle = item.Title
	case errors.Is(err, sql.ErrNoRows):
		pageTitle = cases.Title(language.Ukrainian).String(strings.ReplaceAll(slug, "-", " "))
	default:
		logAndInternalError(w, "failed to look up page title", "error", err)
		return
	}

	data := render.TemplateData{
		Title: pageTitle,
		Menu:  h.menuTree(r),
		Data:  PageData{PageTitle: pageTitle, Content: content, HasFile: hasFile},
	}
	if err := h.renderer.Render(w, r, "frontend/page", data); err != nil {
		logAndInternalError(w, "render static page", "error", err)
	}
}

// SectionData holds data for the section template.
type SectionData struct {
	Section  service.MenuNode
	Articles []store.ArticleWithSection
}

// Section handles GET /section/{id} - articles of a menu section and all
// its descendants. 404 when the id is not part of the navigation tree.
func (h *FrontendHandler) Section(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	tree := h.menuTree(r)
	node := service.FindNode(tree, id)
	if node == nil {
		http.NotFound(w, r)
		return
	}

	items, err := h.queries.ListMenuItems(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list menu items", "error", err)
		return
	}

	articles, err := h.articles.SectionArticles(r.Context(), items, id)
	if err != nil {
		logAndInternalError(w, "failed to load section articles", "error", err)
		return
	}

	data := render.TemplateData{
		Title: node.Title,
		Menu:  tree,
		Data:  SectionData{Section: *node, Articles: articles},
	}
	if err := h.renderer.Render(w, r, "frontend/section", data); err != nil {
		logAndInternalError(w, "render section page", "error", err)
	}
}

// ArticlesData holds data for the public articles listing template.
type ArticlesData struct {
	Groups           []service.CategoryGroup
	Categories       []string
	Sections         []service.MenuNode
	SelectedCategory string
	SelectedSection  string
}

// Articles handles GET /articles with optional category and section_id
// query filters. Articles are grouped by category.
func (h *FrontendHandler) Articles(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	sectionParam := strings.TrimSpace(r.URL.Query().Get("section_id"))

	groups, err := h.articles.GroupedByCategory(r.Context(), category, util.ParseNullInt64(sectionParam))
	if err != nil {
		logAndInternalError(w, "failed to load articles", "error", err)
		return
	}

	tree := h.menuTree(r)
	data := render.TemplateData{
		Title: "Статті",
		Menu:  tree,
		Data: ArticlesData{
			Groups:           groups,
			Categories:       model.Categories,
			Sections:         service.Flatten(tree),
			SelectedCategory: category,
			SelectedSection:  sectionParam,
		},
	}
	if err := h.renderer.Render(w, r, "frontend/articles", data); err != nil {
		logAndInternalError(w, "render articles page", "error", err)
	}
}

// ArticleDetailData holds data for the article detail template.
type ArticleDetailData struct {
	Article store.ArticleWithSection
}

// ArticleDetail handles GET /articles/{id}.
func (h *FrontendHandler) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	article, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load article", "error", err)
		return
	}

	data := render.TemplateData{
		Title: article.Title,
		Menu:  h.menuTree(r),
		Data:  ArticleDetailData{Article: article},
	}
	if err := h.renderer.Render(w, r, "frontend/article_detail", data); err != nil {
		logAndInternalError(w, "render article detail", "error", err)
	}
}
