package repository

import (
	"context"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	GetAll(ctx context.Context) ([]model.Role, error)
	GetByID(ctx context.Context, id uint) (*model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db}
}

func (r *roleRepository) GetAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Order("id asc").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) GetByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	return &role, err
}
