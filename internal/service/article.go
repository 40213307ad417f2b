// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"

	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/store"
)

// CategoryGroup pairs a category name with its articles, in the fixed
// site category order.
type CategoryGroup struct {
	Category string
	Articles []store.ArticleWithSection
}

// ArticleService provides article listings for the public site.
type ArticleService struct {
	queries *store.Queries
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *sql.DB) *ArticleService {
	return &ArticleService{queries: store.New(db)}
}

// FrontPage returns the latest site-wide articles for the home page.
func (s *ArticleService) FrontPage(ctx context.Context) ([]store.ArticleWithSection, error) {
	return s.queries.ListFrontPageArticles(ctx)
}

// GroupedByCategory returns articles grouped by category, newest first
// within each group. When category is non-empty only that group is
// returned; otherwise every known category appears, empty groups included.
// A valid sectionID narrows every group to that section's own articles.
func (s *ArticleService) GroupedByCategory(ctx context.Context, category string, sectionID sql.NullInt64) ([]CategoryGroup, error) {
	categories := model.Categories
	if category != "" {
		categories = []string{category}
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		articles, err := s.queries.ListArticles(ctx, store.ListArticlesParams{
			Category:  cat,
			SectionID: sectionID,
		})
		if err != nil {
			return nil, err
		}
		groups = append(groups, CategoryGroup{Category: cat, Articles: articles})
	}
	return groups, nil
}

// SectionArticles returns the articles attached to the section and to any
// of its descendant sections, newest first.
func (s *ArticleService) SectionArticles(ctx context.Context, items []model.MenuItem, sectionID int64) ([]store.ArticleWithSection, error) {
	return s.queries.ListArticlesBySections(ctx, DescendantIDs(items, sectionID))
}
