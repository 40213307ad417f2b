// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"reflect"
	"testing"
)

func TestCreatableRoles(t *testing.T) {
	tests := []struct {
		actor string
		want  []string
	}{
		{RoleOwner, []string{RoleAdmin, RoleEditor}},
		{RoleAdmin, []string{RoleEditor}},
		{RoleEditor, nil},
		{"unknown", nil},
	}

	for _, tt := range tests {
		got := CreatableRoles(tt.actor)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CreatableRoles(%q) = %v, want %v", tt.actor, got, tt.want)
		}
	}
}

func TestCanCreateRole(t *testing.T) {
	if CanCreateRole(RoleAdmin, RoleAdmin) {
		t.Error("admin must not be able to create another admin")
	}
	if !CanCreateRole(RoleAdmin, RoleEditor) {
		t.Error("admin should be able to create an editor")
	}
	if !CanCreateRole(RoleOwner, RoleAdmin) {
		t.Error("owner should be able to create an admin")
	}
	if CanCreateRole(RoleOwner, RoleOwner) {
		t.Error("nobody creates owners through the admin panel")
	}
	if CanCreateRole(RoleEditor, RoleEditor) {
		t.Error("editor must not create accounts")
	}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		actor, target string
		want          bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleEditor, true},
		{RoleAdmin, RoleOwner, false},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleEditor, true},
		{RoleEditor, RoleEditor, false},
		{RoleEditor, RoleOwner, false},
	}

	for _, tt := range tests {
		if got := CanManage(tt.actor, tt.target); got != tt.want {
			t.Errorf("CanManage(%q, %q) = %v, want %v", tt.actor, tt.target, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range ValidRoles {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false", r)
		}
	}
	if IsValidRole("superuser") {
		t.Error(`IsValidRole("superuser") = true`)
	}
}
