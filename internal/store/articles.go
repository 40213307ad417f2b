// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/vpac-edu/college-cms/internal/model"
)

// ArticleWithSection is an article row joined with the title of the menu
// section it belongs to, when any.
type ArticleWithSection struct {
	model.Article
	SectionTitle sql.NullString
}

const articleColumns = `
	articles.id, articles.title, articles.summary, articles.content,
	articles.category, articles.section_id, articles.published_date,
	articles.event_date, articles.external_link, articles.created_at,
	articles.updated_at`

const articleSelect = `
	SELECT` + articleColumns + `, menu_items.title AS section_title
	FROM articles
	LEFT JOIN menu_items ON menu_items.id = articles.section_id`

func scanArticleWithSection(rows *sql.Rows) (ArticleWithSection, error) {
	var a ArticleWithSection
	err := rows.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content,
		&a.Category, &a.SectionID, &a.PublishedDate,
		&a.EventDate, &a.ExternalLink, &a.CreatedAt,
		&a.UpdatedAt, &a.SectionTitle)
	return a, err
}

func (q *Queries) queryArticles(ctx context.Context, query string, args ...any) ([]ArticleWithSection, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []ArticleWithSection
	for rows.Next() {
		a, err := scanArticleWithSection(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ListArticlesParams holds the optional equality filters of ListArticles.
// Zero values disable a filter; set filters are combined with AND.
type ListArticlesParams struct {
	Category  string
	SectionID sql.NullInt64
}

// ListArticles returns articles matching the filters, newest first.
func (q *Queries) ListArticles(ctx context.Context, arg ListArticlesParams) ([]ArticleWithSection, error) {
	query := articleSelect + ` WHERE 1 = 1`
	var args []any

	if arg.Category != "" {
		query += ` AND articles.category = ?`
		args = append(args, arg.Category)
	}
	if arg.SectionID.Valid {
		query += ` AND articles.section_id = ?`
		args = append(args, arg.SectionID.Int64)
	}
	query += ` ORDER BY articles.published_date DESC`

	return q.queryArticles(ctx, query, args...)
}

// ListFrontPageArticles returns the three newest articles without a section.
func (q *Queries) ListFrontPageArticles(ctx context.Context) ([]ArticleWithSection, error) {
	query := articleSelect + `
		WHERE articles.section_id IS NULL
		ORDER BY articles.published_date DESC
		LIMIT 3`
	return q.queryArticles(ctx, query)
}

// ListArticlesBySections returns all articles attached to any of the given
// menu item ids, newest first. An empty id set yields no rows.
func (q *Queries) ListArticlesBySections(ctx context.Context, sectionIDs []int64) ([]ArticleWithSection, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sectionIDs)), ",")
	query := articleSelect + `
		WHERE articles.section_id IN (` + placeholders + `)
		ORDER BY articles.published_date DESC`

	args := make([]any, len(sectionIDs))
	for i, id := range sectionIDs {
		args[i] = id
	}
	return q.queryArticles(ctx, query, args...)
}

// GetArticleByID fetches an article with its section title by id.
// Returns sql.ErrNoRows when absent.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (ArticleWithSection, error) {
	query := articleSelect + ` WHERE articles.id = ?`

	var a ArticleWithSection
	err := q.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content,
		&a.Category, &a.SectionID, &a.PublishedDate,
		&a.EventDate, &a.ExternalLink, &a.CreatedAt,
		&a.UpdatedAt, &a.SectionTitle)
	return a, err
}

// CreateArticleParams holds parameters for CreateArticle.
type CreateArticleParams struct {
	Title         string
	Summary       string
	Content       string
	Category      string
	SectionID     sql.NullInt64
	PublishedDate time.Time
	EventDate     sql.NullTime
	ExternalLink  sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateArticle inserts an article and returns it with the assigned id.
// Zero timestamps default to the current time.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (model.Article, error) {
	const query = `
		INSERT INTO articles
		(title, summary, content, category, section_id, published_date,
		 event_date, external_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, title, summary, content, category, section_id,
		          published_date, event_date, external_link, created_at, updated_at`

	now := time.Now().UTC()
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = now
	}
	if arg.UpdatedAt.IsZero() {
		arg.UpdatedAt = now
	}

	var a model.Article
	err := q.db.QueryRowContext(ctx, query,
		arg.Title, arg.Summary, arg.Content, arg.Category, arg.SectionID,
		arg.PublishedDate, arg.EventDate, arg.ExternalLink, arg.CreatedAt, arg.UpdatedAt,
	).Scan(&a.ID, &a.Title, &a.Summary, &a.Content, &a.Category, &a.SectionID,
		&a.PublishedDate, &a.EventDate, &a.ExternalLink, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// UpdateArticleParams holds parameters for UpdateArticle.
type UpdateArticleParams struct {
	Title         string
	Summary       string
	Content       string
	Category      string
	SectionID     sql.NullInt64
	PublishedDate time.Time
	EventDate     sql.NullTime
	ExternalLink  sql.NullString
	UpdatedAt     time.Time
	ID            int64
}

// UpdateArticle updates an article in place. A zero UpdatedAt defaults to
// the current time.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) error {
	const query = `
		UPDATE articles
		SET title = ?, summary = ?, content = ?, category = ?, section_id = ?,
		    published_date = ?, event_date = ?, external_link = ?, updated_at = ?
		WHERE id = ?`

	if arg.UpdatedAt.IsZero() {
		arg.UpdatedAt = time.Now().UTC()
	}

	_, err := q.db.ExecContext(ctx, query,
		arg.Title, arg.Summary, arg.Content, arg.Category, arg.SectionID,
		arg.PublishedDate, arg.EventDate, arg.ExternalLink, arg.UpdatedAt, arg.ID)
	return err
}

// CountArticles returns the total number of articles.
func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}

// DeleteArticle removes an article by id.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	return err
}
