// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Article categories (original Ukrainian labels).
const (
	CategoryAnnouncement = "Оголошення"
	CategoryEvent        = "Подія"
	CategoryNews         = "Новина"
	CategoryOther        = "Інше"
)

// Categories lists all article categories in display order.
var Categories = []string{CategoryAnnouncement, CategoryEvent, CategoryNews, CategoryOther}

// IsValidCategory checks if a category label is valid.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Article represents a news or announcement entry. A nil SectionID marks a
// front-page article; otherwise the article belongs to the menu section it
// references and surfaces on that section and all of its ancestors.
type Article struct {
	ID            int64
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
