// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation.
package util

import (
	"strings"
	"unicode"
)

// ukSlugMap is the fixed Ukrainian-to-ASCII transliteration table.
var ukSlugMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g",
	'д': "d", 'е': "e", 'є': "ye", 'ж': "zh", 'з': "z",
	'и': "y", 'і': "i", 'ї': "yi", 'й': "i", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p",
	'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f",
	'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ю': "yu", 'я': "ya", 'ь': "", '’': "", '\'': "",
}

// SlugifyUK converts text into a URL-safe slug. Input is lower-cased and
// transliterated rune by rune through the Ukrainian table; unmapped letters
// and digits pass through unchanged, whitespace, hyphens and underscores
// become a single "-", everything else is dropped. Repeated separators are
// collapsed and leading/trailing separators trimmed. Pure and
// deterministic; empty or all-separator input yields "" and callers fall
// back to an id-derived path.
func SlugifyUK(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if mapped, ok := ukSlugMap[r]; ok {
				b.WriteString(mapped)
			} else {
				b.WriteRune(r)
			}
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteByte('-')
		case r == '’' || r == '\'':
			// Apostrophes vanish without becoming separators
			b.WriteString(ukSlugMap[r])
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// IsValidSlug checks if a string is a valid slug format: lowercase ASCII
// letters, digits and single hyphens, not at the edges.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
