// Package rbac decides whether a caller's role may perform an operation.
// Roles are flat: every route lists the exact roles it admits.
package rbac

import (
	"slices"

	"mernspace-auth/models"
)

// CanAccess reports whether actual is one of allowed.
func CanAccess(allowed []models.Role, actual models.Role) bool {
	if actual == "" {
		return false
	}
	return slices.Contains(allowed, actual)
}

// AdminOnly is the allow-set of tenant and user management routes.
var AdminOnly = []models.Role{models.AdminRole}
