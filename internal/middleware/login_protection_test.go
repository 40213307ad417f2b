// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecordFailedAttemptLocksAfterMax(t *testing.T) {
	lp := NewLoginProtection()

	for i := 0; i < 4; i++ {
		locked, _ := lp.RecordFailedAttempt("owner")
		if locked {
			t.Fatalf("locked too early after %d attempts", i+1)
		}
	}

	locked, duration := lp.RecordFailedAttempt("owner")
	if !locked {
		t.Fatal("expected account locked after 5 failures")
	}
	if duration <= 0 {
		t.Errorf("lock duration = %v", duration)
	}

	if locked, _ := lp.IsAccountLocked("owner"); !locked {
		t.Error("IsAccountLocked = false after lockout")
	}
}

func TestRecordSuccessfulLoginClearsAttempts(t *testing.T) {
	lp := NewLoginProtection()

	for i := 0; i < 3; i++ {
		lp.RecordFailedAttempt("owner")
	}
	lp.RecordSuccessfulLogin("owner")

	for i := 0; i < 4; i++ {
		if locked, _ := lp.RecordFailedAttempt("owner"); locked {
			t.Fatal("attempts were not cleared on success")
		}
	}
}

func TestIsAccountLockedUnknownAccount(t *testing.T) {
	lp := NewLoginProtection()
	if locked, _ := lp.IsAccountLocked("nobody"); locked {
		t.Error("unknown account reported locked")
	}
}

func TestMiddlewareRateLimitsPost(t *testing.T) {
	lp := NewLoginProtection()
	handler := lp.Middleware()(okHandler())

	var last int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestMiddlewareIgnoresGet(t *testing.T) {
	lp := NewLoginProtection()
	handler := lp.Middleware()(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET request %d rate limited", i)
		}
	}
}
