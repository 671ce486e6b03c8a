package repository

import (
	"context"
	"time"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type CategoryTotal struct {
	PoinID uint
	Amount float64
	Count  int64
}

type UserTotal struct {
	UserID uint
	Amount float64
	Count  int64
}

type TimedAmount struct {
	ReportedAt time.Time
	Amount     float64
}

// UsageRepository membaca nominal laporan sekumpulan user pada rentang
// [start, end). Rentang dihitung pemanggil, tidak ada fungsi tanggal di SQL.
type UsageRepository interface {
	SumByCategory(ctx context.Context, userIDs []uint, start, end time.Time) ([]CategoryTotal, error)
	SumByUser(ctx context.Context, userIDs []uint, start, end time.Time) ([]UserTotal, error)
	Amounts(ctx context.Context, userIDs []uint, start, end time.Time) ([]TimedAmount, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db}
}

func (r *usageRepository) window(ctx context.Context, userIDs []uint, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Report{}).
		Where("user_id IN ? AND reported_at >= ? AND reported_at < ?", userIDs, start, end)
}

func (r *usageRepository) SumByCategory(ctx context.Context, userIDs []uint, start, end time.Time) ([]CategoryTotal, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []CategoryTotal
	err := r.window(ctx, userIDs, start, end).
		Select("poin_id, COALESCE(SUM(amount_used), 0) AS amount, COUNT(*) AS count").
		Group("poin_id").
		Scan(&rows).Error
	return rows, err
}

func (r *usageRepository) SumByUser(ctx context.Context, userIDs []uint, start, end time.Time) ([]UserTotal, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []UserTotal
	err := r.window(ctx, userIDs, start, end).
		Select("user_id, COALESCE(SUM(amount_used), 0) AS amount, COUNT(*) AS count").
		Group("user_id").
		Scan(&rows).Error
	return rows, err
}

func (r *usageRepository) Amounts(ctx context.Context, userIDs []uint, start, end time.Time) ([]TimedAmount, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []TimedAmount
	err := r.window(ctx, userIDs, start, end).
		Select("reported_at, amount_used AS amount").
		Order("reported_at asc").
		Scan(&rows).Error
	return rows, err
}
