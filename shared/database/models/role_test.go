package models

import "testing"

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleSuperAdmin, true},
		{RoleAdmin, true},
		{RoleUser, true},
		{Role("manager"), false},
		{Role("SUPER_ADMIN"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestRoleCanAssign(t *testing.T) {
	tests := []struct {
		name   string
		actor  Role
		target Role
		want   bool
	}{
		{"super admin assigns super admin", RoleSuperAdmin, RoleSuperAdmin, true},
		{"super admin assigns admin", RoleSuperAdmin, RoleAdmin, true},
		{"super admin assigns user", RoleSuperAdmin, RoleUser, true},
		{"admin assigns super admin", RoleAdmin, RoleSuperAdmin, false},
		{"admin assigns admin", RoleAdmin, RoleAdmin, true},
		{"admin assigns user", RoleAdmin, RoleUser, true},
		{"user assigns user", RoleUser, RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanAssign(tt.target); got != tt.want {
				t.Errorf("%s.CanAssign(%s) = %v, want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}

func TestRoleCanToggle(t *testing.T) {
	tests := []struct {
		name   string
		actor  Role
		target Role
		want   bool
	}{
		{"super admin toggles super admin", RoleSuperAdmin, RoleSuperAdmin, true},
		{"admin toggles super admin", RoleAdmin, RoleSuperAdmin, false},
		{"admin toggles admin", RoleAdmin, RoleAdmin, true},
		{"admin toggles user", RoleAdmin, RoleUser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanToggle(tt.target); got != tt.want {
				t.Errorf("%s.CanToggle(%s) = %v, want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}
