package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"mernspace-auth/models"

	"gorm.io/gorm"
)

type tenantGormRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantGormRepository{db: db}
}

func (r *tenantGormRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantGormRepository) FindByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantGormRepository) FindAll(ctx context.Context, q ListQuery) ([]models.Tenant, int64, error) {
	q = q.Normalize()
	query := r.db.WithContext(ctx).Model(&models.Tenant{})
	if term := strings.TrimSpace(q.Q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []models.Tenant
	if err := query.Order("id").Limit(q.PerPage).Offset(q.Offset()).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

func (r *tenantGormRepository) Update(ctx context.Context, id uint, fields TenantUpdate) error {
	cols := fields.columns()
	if len(cols) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	cols["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&models.Tenant{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (r *tenantGormRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tenant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
