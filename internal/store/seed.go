// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vpac-edu/college-cms/internal/auth"
	"github.com/vpac-edu/college-cms/internal/model"
)

// Default owner credentials, intended to be changed right after first login.
const (
	DefaultOwnerUsername = "owner"
	DefaultOwnerPassword = "owner1234"
)

// seedItem is a literal (title, url, sort_order) triple of the seed menu.
type seedItem struct {
	title     string
	url       string
	sortOrder int64
}

var seedTopItems = []seedItem{
	{"Головна", "/", 1},
	{"Коледж", model.URLPlaceholder, 2},
	{"Абітурієнту", "/admissions-2026", 3},
	{"Студенту", model.URLPlaceholder, 4},
	{"Діяльність", model.URLPlaceholder, 5},
	{"Електронна бібліотека", model.URLPlaceholder, 6},
	{"Публічна інформація", model.URLPlaceholder, 7},
	{"Інше", model.URLPlaceholder, 8},
}

var seedChildren = map[string][]string{
	"Коледж": {
		"Структура та органи правління",
		"Історія",
		"Освітньо-професійні програми",
		"Публічна інформація*",
		"Нормативно-правова база",
		"Матеріально-технічна база",
		"Співпраця",
		"Вакантні посади",
		"Галерея",
		"Контакти",
		"About VPAC",
	},
	"Студенту": {
		"Розклад занять",
		"Рейтинги та стипендія",
		"Соціальна стипендія",
		"Плата за навчання та гуртожиток",
		"Графік освітнього процесу",
		"Графік предметних консультацій",
		"Навчальні плани",
		"Вибіркові освітні компоненти",
		"Неформальна освіта",
		"Психологічна служба",
		"Студентське самоврядування",
		"Правила поведінки здобувачів освіти",
		"Обхідний лист",
	},
	"Діяльність": {
		"Річні плани роботи коледжу",
		"Інноваційна",
		"Волонтерська",
		"Методична",
		"Навчальна",
		"Організаційна",
		"Практична підготовка",
		"Психологічна служба",
		"Проектна",
		"Фінансова",
		"Міжнародна співпраця",
	},
	"Електронна бібліотека": {
		"Допомога з електронними ресурсами",
		"Електронна бібліотека",
	},
	"Інше": {
		"Блоги",
		"Вибори директора",
		"Антикорупційні заходи",
		"Кваліфікаційний центр",
	},
}

// Seed provisions initial data: a default owner account when the users
// table is empty and the fixed menu hierarchy when no menu items exist.
// The section-url repair pass always runs afterward. Idempotent; must be
// called after Migrate and before the listener accepts traffic.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedOwner(ctx, queries); err != nil {
		return err
	}
	if err := seedMenu(ctx, queries); err != nil {
		return err
	}

	if err := queries.EnsureSectionURLs(ctx); err != nil {
		return fmt.Errorf("ensuring section urls: %w", err)
	}

	return nil
}

func seedOwner(ctx context.Context, queries *Queries) error {
	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultOwnerPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultOwnerUsername,
		PasswordHash: passwordHash,
		Role:         auth.RoleOwner,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating owner user: %w", err)
	}

	slog.Info("created default owner account; change the password immediately",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultOwnerPassword,
	)
	return nil
}

func seedMenu(ctx context.Context, queries *Queries) error {
	count, err := queries.CountMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("counting menu items: %w", err)
	}
	if count > 0 {
		return nil
	}

	topIDs := make(map[string]int64, len(seedTopItems))
	for _, item := range seedTopItems {
		created, err := queries.CreateMenuItem(ctx, CreateMenuItemParams{
			Title:     item.title,
			URL:       item.url,
			SortOrder: item.sortOrder,
		})
		if err != nil {
			return fmt.Errorf("seeding menu item %q: %w", item.title, err)
		}
		topIDs[item.title] = created.ID
	}

	for _, parent := range seedTopItems {
		children, ok := seedChildren[parent.title]
		if !ok {
			continue
		}
		parentID := sql.NullInt64{Int64: topIDs[parent.title], Valid: true}
		for idx, title := range children {
			_, err := queries.CreateMenuItem(ctx, CreateMenuItemParams{
				ParentID:  parentID,
				Title:     title,
				URL:       model.URLPlaceholder,
				SortOrder: int64(idx + 1),
			})
			if err != nil {
				return fmt.Errorf("seeding menu item %q: %w", title, err)
			}
		}
	}

	slog.Info("seeded menu hierarchy", "top_level", len(seedTopItems))
	return nil
}
