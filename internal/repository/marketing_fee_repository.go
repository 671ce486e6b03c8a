package repository

import (
	"context"
	"errors"
	"time"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type MarketingFeeRepository interface {
	SumForUsers(ctx context.Context, userIDs []uint, start, end time.Time) (float64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.MarketingFee, error)
	// Upsert mengupdate baris fee user di [start, end) atau insert fee baru.
	Upsert(ctx context.Context, fee *model.MarketingFee, start, end time.Time) error
}

type marketingFeeRepository struct {
	db *gorm.DB
}

func NewMarketingFeeRepository(db *gorm.DB) MarketingFeeRepository {
	return &marketingFeeRepository{db}
}

func (r *marketingFeeRepository) SumForUsers(ctx context.Context, userIDs []uint, start, end time.Time) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var total float64
	err := r.db.WithContext(ctx).Model(&model.MarketingFee{}).
		Where("user_id IN ? AND recorded_at >= ? AND recorded_at < ?", userIDs, start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *marketingFeeRepository) ListByUser(ctx context.Context, userID uint) ([]model.MarketingFee, error) {
	var list []model.MarketingFee
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("recorded_at asc").Find(&list).Error
	return list, err
}

func (r *marketingFeeRepository) Upsert(ctx context.Context, fee *model.MarketingFee, start, end time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.MarketingFee
		err := tx.Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", fee.UserID, start, end).
			Order("id desc").
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(fee).Error
		}
		if err != nil {
			return err
		}
		existing.Total = fee.Total
		existing.ClusterID = fee.ClusterID
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*fee = existing
		return nil
	})
}
