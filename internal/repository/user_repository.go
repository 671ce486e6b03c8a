package repository

import (
	"context"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// UsersByScope mengambil user dengan key level di scopeIDs dan role di
	// roleIDs, urut berdasarkan id.
	UsersByScope(ctx context.Context, level model.Level, scopeIDs []uint, roleIDs ...uint) ([]model.User, error)
	EndUserIDsByClusters(ctx context.Context, clusterIDs []uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Role").Preload("Cluster").First(&user, id).Error
	return &user, err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func scopeColumn(level model.Level) string {
	switch level {
	case model.LevelArea:
		return "area_id"
	case model.LevelRegion:
		return "region_id"
	case model.LevelBranch:
		return "branch_id"
	case model.LevelCluster:
		return "cluster_id"
	}
	return "id"
}

func (r *userRepository) UsersByScope(ctx context.Context, level model.Level, scopeIDs []uint, roleIDs ...uint) ([]model.User, error) {
	if len(scopeIDs) == 0 {
		return nil, nil
	}
	var users []model.User
	query := r.db.WithContext(ctx).Where(scopeColumn(level)+" IN ?", scopeIDs)
	if len(roleIDs) > 0 {
		query = query.Where("role_id IN ?", roleIDs)
	}
	err := query.Order("id asc").Find(&users).Error
	return users, err
}

func (r *userRepository) EndUserIDsByClusters(ctx context.Context, clusterIDs []uint) ([]uint, error) {
	if len(clusterIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("cluster_id IN ? AND role_id = ?", clusterIDs, model.RoleEndUser).
		Order("id asc").
		Pluck("id", &ids).Error
	return ids, err
}
