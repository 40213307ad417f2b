// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false", c)
		}
	}
	if IsValidCategory("Спорт") {
		t.Error(`IsValidCategory("Спорт") = true`)
	}
	if IsValidCategory("") {
		t.Error(`IsValidCategory("") = true`)
	}
}

func TestSectionURL(t *testing.T) {
	if got := SectionURL(42); got != "/section/42" {
		t.Errorf("SectionURL(42) = %q, want %q", got, "/section/42")
	}
}
