package global

import "testing"

func TestRoleSeesAllFactories(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleBucho} {
		if !RoleSeesAllFactories(role) {
			t.Errorf("RoleSeesAllFactories(%q) = false, want true", role)
		}
	}
	for _, role := range []string{RoleKacho, RoleKakaricho, RoleHancho, RoleMember, "", "guest"} {
		if RoleSeesAllFactories(role) {
			t.Errorf("RoleSeesAllFactories(%q) = true, want false", role)
		}
	}
}

func TestIsKnownRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleBucho, RoleKacho, RoleKakaricho, RoleHancho, RoleMember} {
		if !IsKnownRole(role) {
			t.Errorf("IsKnownRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "superuser", "部 長"} {
		if IsKnownRole(role) {
			t.Errorf("IsKnownRole(%q) = true, want false", role)
		}
	}
}
