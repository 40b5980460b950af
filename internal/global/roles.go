package global

// Role names stored in the users collection. The Japanese titles mirror the
// factory hierarchy: 班長 (team lead), 係長 (section chief), 課長 (manager),
// 部長 (department head).
const (
	RoleAdmin     = "admin"
	RoleBucho     = "部長"
	RoleKacho     = "課長"
	RoleKakaricho = "係長"
	RoleHancho    = "班長"
	RoleMember    = "member"
)

// RoleSeesAllFactories reports whether the role bypasses factory scoping.
func RoleSeesAllFactories(role string) bool {
	return role == RoleAdmin || role == RoleBucho
}

// IsKnownRole reports whether the role name is one the system recognizes.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBucho, RoleKacho, RoleKakaricho, RoleHancho, RoleMember:
		return true
	}
	return false
}
