// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for "edit" routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for "delete" routes.
	RouteSuffixDelete = "/delete"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAdmissions is the admissions campaign route.
	RouteAdmissions = "/admissions-2026"
	// RoutePageSlug is the static page route pattern.
	RoutePageSlug = "/page" + RouteParamSlug
	// RouteSectionID is the section route pattern.
	RouteSectionID = "/section/{id}"
	// RouteArticles is the public articles route.
	RouteArticles = "/articles"
	// RouteArticlesID is the public article detail route pattern.
	RouteArticlesID = RouteArticles + RouteParamID

	// RouteUsers is the users admin route.
	RouteUsers = "/users"
	// RouteMenu is the menu admin route.
	RouteMenu = "/menu"
	// RouteAdminArticles is the articles admin route.
	RouteAdminArticles = "/articles"
)

const (
	redirectAdmin         = "/admin"
	redirectAdminUsers    = redirectAdmin + RouteUsers
	redirectAdminMenu     = redirectAdmin + RouteMenu
	redirectAdminArticles = redirectAdmin + RouteAdminArticles
	redirectLogin         = RouteLogin
)
