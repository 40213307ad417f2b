// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/model"
	"github.com/vpac-edu/college-cms/internal/store"
)

func createMenuItem(t *testing.T, db *sql.DB, title string, parentID sql.NullInt64) model.MenuItem {
	t.Helper()
	item, err := store.New(db).CreateMenuItem(context.Background(), store.CreateMenuItemParams{
		Title:    title,
		URL:      model.URLPlaceholder,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	return item
}

func TestMenuCreate(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{"title": {"Студенту"}, "url": {""}, "sort_order": {"2"}}
	rec := serveWithSession(sm, h.Create, formRequest("/admin/menu/new", form, &editor, ""))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	items, err := store.New(db).ListMenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Студенту", items[0].Title)
	assert.Equal(t, model.URLPlaceholder, items[0].URL, "empty url defaults to placeholder")
	assert.Equal(t, int64(2), items[0].SortOrder)
}

func TestMenuCreateRequiresTitle(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{"title": {"   "}}
	serveWithSession(sm, h.Create, formRequest("/admin/menu/new", form, &editor, ""))

	count, err := store.New(db).CountMenuItems(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMenuUpdateRejectsSelfParent(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)
	item := createMenuItem(t, db, "Коледж", sql.NullInt64{})

	id := strconv.FormatInt(item.ID, 10)
	form := url.Values{"title": {"Коледж"}, "parent_id": {id}}
	rec := serveWithSession(sm, h.Update, formRequest("/admin/menu/"+id+"/edit", form, &editor, id))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	after, err := store.New(db).GetMenuItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, after.ParentID.Valid, "item must not become its own parent")
}

func TestMenuDeleteShallowCascade(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	root := createMenuItem(t, db, "Діяльність", sql.NullInt64{})
	child := createMenuItem(t, db, "Виховна робота", sql.NullInt64{Int64: root.ID, Valid: true})
	grandchild := createMenuItem(t, db, "Гуртки", sql.NullInt64{Int64: child.ID, Valid: true})

	id := strconv.FormatInt(root.ID, 10)
	rec := serveWithSession(sm, h.Delete, formRequest("/admin/menu/"+id+"/delete", url.Values{}, &editor, id))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	q := store.New(db)
	ctx := context.Background()

	_, err := q.GetMenuItemByID(ctx, root.ID)
	assert.Error(t, err, "root should be gone")
	_, err = q.GetMenuItemByID(ctx, child.ID)
	assert.Error(t, err, "direct child should be gone")

	// Deeper descendants survive as orphans
	orphan, err := q.GetMenuItemByID(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, orphan.ParentID.Int64)
}

func TestMenuUpdateMissingItem(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)

	form := url.Values{"title": {"X"}}
	rec := serveWithSession(sm, h.Update, formRequest("/admin/menu/42/edit", form, &editor, "42"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectAdminMenu, rec.Header().Get("Location"))
}

func TestMenuList(t *testing.T) {
	db, sm, renderer := testHandlerSetup(t)
	h := NewMenusHandler(db, renderer)
	editor := createTestUser(t, db, "editor1", auth.RoleEditor)
	createMenuItem(t, db, "Коледж", sql.NullInt64{})

	rec := serveWithSession(sm, h.List, getRequest("/admin/menu", &editor, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}
