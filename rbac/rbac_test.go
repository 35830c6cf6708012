package rbac

import (
	"testing"

	"mernspace-auth/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		allowed []models.Role
		actual  models.Role
		want    bool
	}{
		{"admin on admin route", AdminOnly, models.AdminRole, true},
		{"customer on admin route", AdminOnly, models.CustomerRole, false},
		{"manager on admin route", AdminOnly, models.ManagerRole, false},
		{"admin does not imply manager", []models.Role{models.ManagerRole}, models.AdminRole, false},
		{"listed manager", []models.Role{models.AdminRole, models.ManagerRole}, models.ManagerRole, true},
		{"empty role", AdminOnly, "", false},
		{"unknown role", AdminOnly, models.Role("root"), false},
		{"empty allow-set", nil, models.AdminRole, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.allowed, tt.actual))
		})
	}
}
