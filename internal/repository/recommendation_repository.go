package repository

import (
	"context"
	"errors"
	"time"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type RecommendationRepository interface {
	// ForPeriod mengembalikan maksimal satu rekomendasi per poin untuk user,
	// baris tertua dipakai jika ada duplikat.
	ForPeriod(ctx context.Context, userID uint, start, end time.Time) ([]model.Recommendation, error)
	Find(ctx context.Context, userID, poinID uint, start, end time.Time) (*model.Recommendation, error)
	// Upsert menulis semua rec dalam satu transaksi: update baris (user, poin,
	// window) yang sudah ada atau insert baru.
	Upsert(ctx context.Context, start, end time.Time, recs ...*model.Recommendation) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db}
}

func (r *recommendationRepository) ForPeriod(ctx context.Context, userID uint, start, end time.Time) ([]model.Recommendation, error) {
	var rows []model.Recommendation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period_at >= ? AND period_at < ?", userID, start, end).
		Order("poin_id asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Recommendation, 0, len(rows))
	seen := make(map[uint]bool, len(rows))
	for _, rec := range rows {
		if seen[rec.PoinID] {
			continue
		}
		seen[rec.PoinID] = true
		out = append(out, rec)
	}
	return out, nil
}

func findRecommendation(tx *gorm.DB, userID, poinID uint, start, end time.Time) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := tx.Where("user_id = ? AND poin_id = ? AND period_at >= ? AND period_at < ?", userID, poinID, start, end).
		Order("id asc").
		First(&rec).Error
	return &rec, err
}

func (r *recommendationRepository) Find(ctx context.Context, userID, poinID uint, start, end time.Time) (*model.Recommendation, error) {
	return findRecommendation(r.db.WithContext(ctx), userID, poinID, start, end)
}

func (r *recommendationRepository) Upsert(ctx context.Context, start, end time.Time, recs ...*model.Recommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range recs {
			existing, err := findRecommendation(tx, rec.UserID, rec.PoinID, start, end)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(rec).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := tx.Model(existing).Update("recommend", rec.Recommend).Error; err != nil {
					return err
				}
				existing.Recommend = rec.Recommend
				*rec = *existing
			}
		}
		return nil
	})
}
