// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`,
		)},
		"frontend/home.html": {Data: []byte(
			`{{define "content"}}<h1>{{.Title}}</h1>{{markdown "**bold**"}}{{end}}`,
		)},
		"auth/login.html": {Data: []byte(
			`{{define "content"}}<form>{{.Title}}</form>{{end}}`,
		)},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testFS(), IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewParsesTemplates(t *testing.T) {
	r := newTestRenderer(t)
	for _, name := range []string{"frontend/home", "auth/login"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestRender(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := r.Render(rec, req, "frontend/home", TemplateData{Title: "Головна"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Головна</h1>") {
		t.Errorf("body missing title: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(httptest.NewRecorder(), req, "frontend/missing", TemplateData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestMarkdownFuncRendersAndSanitizes(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := r.Render(rec, req, "frontend/home", TemplateData{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", rec.Body.String())
	}
}

func TestMarkdownFuncStripsScript(t *testing.T) {
	r := newTestRenderer(t)

	fn, ok := r.templateFuncs()["markdown"].(func(string) template.HTML)
	if !ok {
		t.Fatal("markdown func has unexpected signature")
	}

	out := string(fn("привіт <script>alert(1)</script>"))
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %s", out)
	}
	if !strings.Contains(out, "привіт") {
		t.Errorf("text content lost: %s", out)
	}
}
