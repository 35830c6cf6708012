package dto

import "strings"

type CreateTenantDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required,min=2,max=255"`
}

func (d *CreateTenantDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
}

type UpdateTenantDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Address *string `json:"address" validate:"omitempty,min=2,max=255"`
}

func (d *UpdateTenantDTO) Normalize() {
	trimPtr(d.Name)
	trimPtr(d.Address)
}
