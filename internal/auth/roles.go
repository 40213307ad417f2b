// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

// User roles, strictly ordered by privilege: owner > admin > editor.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRoles contains all valid user roles.
var ValidRoles = []string{RoleOwner, RoleAdmin, RoleEditor}

// IsValidRole checks if a role is a known role name.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CreatableRoles returns the set of roles an actor may assign to new
// accounts. Owners create admins and editors, admins create editors,
// editors create nothing.
func CreatableRoles(actorRole string) []string {
	switch actorRole {
	case RoleOwner:
		return []string{RoleAdmin, RoleEditor}
	case RoleAdmin:
		return []string{RoleEditor}
	default:
		return nil
	}
}

// CanCreateRole reports whether the actor may create an account with the
// given role.
func CanCreateRole(actorRole, newRole string) bool {
	for _, r := range CreatableRoles(actorRole) {
		if r == newRole {
			return true
		}
	}
	return false
}

// CanManage reports whether the actor may edit or delete an account with
// the target role. Owners manage anyone; admins manage only editors.
// Self-edit is a separate exception handled by the caller.
func CanManage(actorRole, targetRole string) bool {
	if actorRole == RoleOwner {
		return true
	}
	if actorRole == RoleAdmin && targetRole == RoleEditor {
		return true
	}
	return false
}
