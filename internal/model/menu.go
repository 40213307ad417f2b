// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
)

// URLPlaceholder marks a menu item that is not navigable on its own.
const URLPlaceholder = "#"

// StaticPagePrefix is the url prefix of static informational pages.
const StaticPagePrefix = "/page/"

// MenuItem represents an entry of the site navigation menu. Items form a
// forest through ParentID; an item whose URL is "/section/{id}" acts as an
// article container, "/page/{slug}" points at a static page.
type MenuItem struct {
	ID        int64
	ParentID  sql.NullInt64
	Title     string
	URL       string
	SortOrder int64
}

// SectionURL returns the generated section path for a menu item id.
func SectionURL(id int64) string {
	return fmt.Sprintf("/section/%d", id)
}
