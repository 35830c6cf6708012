package services

import (
	"context"
	"errors"
	"fmt"

	"mernspace-auth/models"
	"mernspace-auth/repository"
)

var ErrUserExists = errors.New("user with same email already exists")

type UserData struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      models.Role
	TenantID  *uint
}

type UserService struct {
	users       repository.UserRepository
	tenants     repository.TenantRepository
	credentials *CredentialService
}

func NewUserService(users repository.UserRepository, tenants repository.TenantRepository, credentials *CredentialService) *UserService {
	return &UserService{users: users, tenants: tenants, credentials: credentials}
}

func (s *UserService) Create(ctx context.Context, data UserData) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, data.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	if err := s.checkTenant(ctx, data.TenantID); err != nil {
		return nil, err
	}

	hash, err := s.credentials.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}

	role := data.Role
	if role == "" {
		role = models.CustomerRole
	}
	user := &models.User{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Password:  hash,
		Role:      role,
		TenantID:  data.TenantID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can win between the lookup and the insert
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create the user in the database: %w", err)
	}
	return user, nil
}

// FindByEmailWithPassword returns the stored hash alongside the profile; it
// is only meant for credential checks.
func (s *UserService) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) FindAll(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	return s.users.FindAll(ctx, q)
}

func (s *UserService) Update(ctx context.Context, id uint, fields repository.UserUpdate) error {
	if !fields.ClearTenant {
		if err := s.checkTenant(ctx, fields.TenantID); err != nil {
			return err
		}
	}
	return s.users.Update(ctx, id, fields)
}

func (s *UserService) DeleteByID(ctx context.Context, id uint) error {
	return s.users.DeleteByID(ctx, id)
}

func (s *UserService) checkTenant(ctx context.Context, tenantID *uint) error {
	if tenantID == nil {
		return nil
	}
	if _, err := s.tenants.FindByID(ctx, *tenantID); err != nil {
		return err
	}
	return nil
}
