// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/vpac-edu/college-cms/internal/model"
)

// studentRootTitle is the top-level menu item whose whole subtree is forced
// to be article-bearing sections by EnsureSectionURLs.
const studentRootTitle = "студенту"

// ListMenuItems returns every menu item ordered by (sort_order, title).
func (q *Queries) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	const query = `
		SELECT id, parent_id, title, url, sort_order
		FROM menu_items ORDER BY sort_order, title`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.ParentID, &m.Title, &m.URL, &m.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetMenuItemByID fetches a menu item by id. Returns sql.ErrNoRows when absent.
func (q *Queries) GetMenuItemByID(ctx context.Context, id int64) (model.MenuItem, error) {
	const query = `
		SELECT id, parent_id, title, url, sort_order
		FROM menu_items WHERE id = ?`

	var m model.MenuItem
	err := q.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.ParentID, &m.Title, &m.URL, &m.SortOrder)
	return m, err
}

// GetMenuItemByURL fetches the first menu item that points at the given url.
func (q *Queries) GetMenuItemByURL(ctx context.Context, url string) (model.MenuItem, error) {
	const query = `
		SELECT id, parent_id, title, url, sort_order
		FROM menu_items WHERE url = ? LIMIT 1`

	var m model.MenuItem
	err := q.db.QueryRowContext(ctx, query, url).
		Scan(&m.ID, &m.ParentID, &m.Title, &m.URL, &m.SortOrder)
	return m, err
}

// CountMenuItems returns the total number of menu items.
func (q *Queries) CountMenuItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count)
	return count, err
}

// CreateMenuItemParams holds parameters for CreateMenuItem.
type CreateMenuItemParams struct {
	ParentID  sql.NullInt64
	Title     string
	URL       string
	SortOrder int64
}

// CreateMenuItem inserts a menu item and returns it with the assigned id.
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (model.MenuItem, error) {
	const query = `
		INSERT INTO menu_items (parent_id, title, url, sort_order)
		VALUES (?, ?, ?, ?)
		RETURNING id, parent_id, title, url, sort_order`

	var m model.MenuItem
	err := q.db.QueryRowContext(ctx, query,
		arg.ParentID, arg.Title, arg.URL, arg.SortOrder,
	).Scan(&m.ID, &m.ParentID, &m.Title, &m.URL, &m.SortOrder)
	return m, err
}

// UpdateMenuItemParams holds parameters for UpdateMenuItem.
type UpdateMenuItemParams struct {
	ParentID  sql.NullInt64
	Title     string
	URL       string
	SortOrder int64
	ID        int64
}

// UpdateMenuItem updates a menu item in place.
func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) error {
	const query = `
		UPDATE menu_items
		SET parent_id = ?, title = ?, url = ?, sort_order = ?
		WHERE id = ?`

	_, err := q.db.ExecContext(ctx, query,
		arg.ParentID, arg.Title, arg.URL, arg.SortOrder, arg.ID)
	return err
}

// UpdateMenuItemURL rewrites the url of a single menu item.
func (q *Queries) UpdateMenuItemURL(ctx context.Context, url string, id int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE menu_items SET url = ? WHERE id = ?`, url, id)
	return err
}

// DeleteMenuItemWithChildren removes a menu item together with its direct
// children. The cascade is intentionally one level deep: grandchildren keep
// their parent_id and resurface as roots of the menu forest.
func (q *Queries) DeleteMenuItemWithChildren(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id = ? OR parent_id = ?`, id, id)
	return err
}

// EnsureSectionURLs is the provisioning-time repair pass over menu urls.
// Every item inside the subtree rooted at the top-level "Студенту" item
// whose url is empty, "#" or a static-page reference becomes a section url
// (/section/{id}); every other item with an empty or "#" url likewise.
// Idempotent: a rewritten url no longer matches the rewrite condition.
func (q *Queries) EnsureSectionURLs(ctx context.Context) error {
	items, err := q.ListMenuItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	children := make(map[int64][]int64)
	var studentRootID int64
	for _, item := range items {
		if item.ParentID.Valid {
			children[item.ParentID.Int64] = append(children[item.ParentID.Int64], item.ID)
		} else if strings.EqualFold(strings.TrimSpace(item.Title), studentRootTitle) {
			studentRootID = item.ID
		}
	}

	studentIDs := make(map[int64]bool)
	if studentRootID != 0 {
		stack := []int64{studentRootID}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if studentIDs[current] {
				continue
			}
			studentIDs[current] = true
			stack = append(stack, children[current]...)
		}
	}

	for _, item := range items {
		url := strings.TrimSpace(item.URL)

		if studentIDs[item.ID] {
			// Student subtree entries must be article sections, not static pages
			if url == "" || url == model.URLPlaceholder || strings.HasPrefix(url, model.StaticPagePrefix) {
				if err := q.UpdateMenuItemURL(ctx, model.SectionURL(item.ID), item.ID); err != nil {
					return err
				}
			}
			continue
		}

		if url == "" || url == model.URLPlaceholder {
			if err := q.UpdateMenuItemURL(ctx, model.SectionURL(item.ID), item.ID); err != nil {
				return err
			}
		}
	}

	return nil
}
