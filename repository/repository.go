package repository

import (
	"context"
	"errors"
	"time"

	"mernspace-auth/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrEmailTaken           = errors.New("email already registered")
)

type UserRepository interface {
	// Create returns ErrEmailTaken when the unique email index rejects the row.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByEmail returns the user including the password hash.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, q ListQuery) ([]models.User, int64, error)
	Update(ctx context.Context, id uint, fields UserUpdate) error
	DeleteByID(ctx context.Context, id uint) error
}

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, id uint) (*models.Tenant, error)
	FindAll(ctx context.Context, q ListQuery) ([]models.Tenant, int64, error)
	Update(ctx context.Context, id uint, fields TenantUpdate) error
	DeleteByID(ctx context.Context, id uint) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindByID(ctx context.Context, id uint) (*models.RefreshToken, error)
	// DeleteByID reports whether a row was removed. A missing id is not an error.
	DeleteByID(ctx context.Context, id uint) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TxRepos are repositories bound to a single transaction.
type TxRepos interface {
	RefreshTokens() RefreshTokenRepository
}

type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// UserUpdate is a partial update; nil fields are left untouched.
// ClearTenant detaches the user from its tenant and wins over TenantID.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Role        *models.Role
	TenantID    *uint
	ClearTenant bool
}

func (u UserUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.FirstName != nil {
		cols["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		cols["last_name"] = *u.LastName
	}
	if u.Role != nil {
		cols["role"] = *u.Role
	}
	if u.ClearTenant {
		cols["tenant_id"] = nil
	} else if u.TenantID != nil {
		cols["tenant_id"] = *u.TenantID
	}
	return cols
}

type TenantUpdate struct {
	Name    *string
	Address *string
}

func (u TenantUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Address != nil {
		cols["address"] = *u.Address
	}
	return cols
}

type ListQuery struct {
	Q           string
	PerPage     int
	CurrentPage int
}

func (q ListQuery) Normalize() ListQuery {
	if q.PerPage <= 0 {
		q.PerPage = 10
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
	if q.CurrentPage <= 0 {
		q.CurrentPage = 1
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.CurrentPage - 1) * q.PerPage
}
