package services

import (
	"context"

	"mernspace-auth/models"
	"mernspace-auth/repository"
)

type TenantService struct {
	tenants repository.TenantRepository
}

func NewTenantService(tenants repository.TenantRepository) *TenantService {
	return &TenantService{tenants: tenants}
}

func (s *TenantService) Create(ctx context.Context, name, address string) (*models.Tenant, error) {
	tenant := &models.Tenant{Name: name, Address: address}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) Update(ctx context.Context, id uint, fields repository.TenantUpdate) error {
	return s.tenants.Update(ctx, id, fields)
}

func (s *TenantService) GetOne(ctx context.Context, id uint) (*models.Tenant, error) {
	return s.tenants.FindByID(ctx, id)
}

func (s *TenantService) GetAll(ctx context.Context, q repository.ListQuery) ([]models.Tenant, int64, error) {
	return s.tenants.FindAll(ctx, q)
}

func (s *TenantService) DeleteByID(ctx context.Context, id uint) error {
	return s.tenants.DeleteByID(ctx, id)
}
