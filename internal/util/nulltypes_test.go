// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestParseNullInt64(t *testing.T) {
	if v := ParseNullInt64(""); v.Valid {
		t.Error("empty string should be invalid")
	}
	if v := ParseNullInt64("abc"); v.Valid {
		t.Error("non-numeric string should be invalid")
	}
	if v := ParseNullInt64("42"); !v.Valid || v.Int64 != 42 {
		t.Errorf("ParseNullInt64(\"42\") = %+v", v)
	}
}

func TestNullStringFromValue(t *testing.T) {
	if v := NullStringFromValue(""); v.Valid {
		t.Error("empty string should be invalid")
	}
	if v := NullStringFromValue("x"); !v.Valid || v.String != "x" {
		t.Errorf("NullStringFromValue(\"x\") = %+v", v)
	}
}

func TestParseNullDate(t *testing.T) {
	if v := ParseNullDate(""); v.Valid {
		t.Error("empty string should be invalid")
	}
	if v := ParseNullDate("not-a-date"); v.Valid {
		t.Error("malformed date should be invalid")
	}
	v := ParseNullDate("2026-09-01")
	if !v.Valid {
		t.Fatal("valid date parsed as invalid")
	}
	if y, m, d := v.Time.Date(); y != 2026 || m != 9 || d != 1 {
		t.Errorf("parsed date = %v", v.Time)
	}
}
