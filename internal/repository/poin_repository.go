package repository

import (
	"context"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type PoinRepository interface {
	GetAll(ctx context.Context) ([]model.Poin, error)
	GetByID(ctx context.Context, id uint) (*model.Poin, error)
}

type poinRepository struct {
	db *gorm.DB
}

func NewPoinRepository(db *gorm.DB) PoinRepository {
	return &poinRepository{db}
}

func (r *poinRepository) GetAll(ctx context.Context) ([]model.Poin, error) {
	var list []model.Poin
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *poinRepository) GetByID(ctx context.Context, id uint) (*model.Poin, error) {
	var poin model.Poin
	err := r.db.WithContext(ctx).First(&poin, id).Error
	return &poin, err
}
