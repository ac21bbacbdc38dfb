package service

import "tienda/shophub/internal/model"

// The guard functions are the single source of access decisions. They are
// pure and side-effect free; callers translate a false into a forbidden
// rejection.

// RequireRole reports whether the caller's role is a member of the allowed
// set. Membership only: admin must be listed explicitly wherever it is
// allowed.
func RequireRole(caller *model.User, allowed ...model.Role) bool {
	if caller == nil {
		return false
	}
	return caller.Role.In(allowed...)
}

// RequireSelfOrRole allows a caller acting on their own record, or any caller
// whose role is in the allowed set. This is the dominant gate for
// update/delete/view-others operations.
func RequireSelfOrRole(caller *model.User, targetID uint, allowed ...model.Role) bool {
	if caller == nil {
		return false
	}
	return caller.ID == targetID || caller.Role.In(allowed...)
}

// IsProtectedSuperAdmin reports whether the target is the id-1
// super-administrator, who is immune to role changes and deletion regardless
// of who asks.
func IsProtectedSuperAdmin(targetID uint) bool {
	return targetID == model.SuperAdminID
}
