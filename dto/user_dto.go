package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

type RegisterUserDto struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

func (d *RegisterUserDto) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = normalizeEmail(d.Email)
}

type LoginUserDto struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (d *LoginUserDto) Normalize() {
	d.Email = normalizeEmail(d.Email)
}

// CreateUserDto is the admin variant of registration: the role is chosen by
// the caller and a manager may be attached to a tenant.
type CreateUserDto struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"required,oneof=admin manager customer"`
	TenantID  *uint  `json:"tenantId" validate:"omitempty,gt=0"`
}

func (d *CreateUserDto) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = normalizeEmail(d.Email)
	d.Role = strings.TrimSpace(d.Role)
}

type UpdateUserDto struct {
	FirstName *string    `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string    `json:"lastName" validate:"omitempty,min=1,max=50"`
	Role      *string    `json:"role" validate:"omitempty,oneof=admin manager customer"`
	TenantID  OptionalID `json:"tenantId"`
}

// OptionalID tells an absent field apart from an explicit null. Set is true
// whenever the key was present; Value is nil for null.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	if id == 0 {
		return errors.New("tenantId must be a positive id")
	}
	o.Value = &id
	return nil
}

func (d *UpdateUserDto) Normalize() {
	trimPtr(d.FirstName)
	trimPtr(d.LastName)
	trimPtr(d.Role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
