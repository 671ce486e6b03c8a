package repository

import (
	"context"
	"time"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type ReportFilter struct {
	UserIDs []uint
	Start   time.Time
	End     time.Time
	PoinID  uint // 0 berarti semua kategori
}

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uint) (*model.Report, error)
	// Delete menghapus laporan lalu menjalankan onDeleted dalam transaksi yang
	// sama. Error dari onDeleted membatalkan penghapusan.
	Delete(ctx context.Context, id uint, onDeleted func(*model.Report) error) error
	List(ctx context.Context, f ReportFilter) ([]model.Report, error)
	Pending(ctx context.Context, userIDs []uint, limit int) ([]model.Report, error)
	CountPending(ctx context.Context, userIDs []uint) (int64, error)
	// ApprovePending menyetujui semua laporan pending userID di [start, end)
	// dan mengembalikan jumlah baris yang berubah.
	ApprovePending(ctx context.Context, userID uint, start, end, at time.Time) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).Preload("Poin").First(&report, id).Error
	return &report, err
}

func (r *reportRepository) Delete(ctx context.Context, id uint, onDeleted func(*model.Report) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report model.Report
		if err := tx.First(&report, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Report{}, report.ID).Error; err != nil {
			return err
		}
		if onDeleted != nil {
			return onDeleted(&report)
		}
		return nil
	})
}

func (r *reportRepository) List(ctx context.Context, f ReportFilter) ([]model.Report, error) {
	if len(f.UserIDs) == 0 {
		return []model.Report{}, nil
	}
	var list []model.Report
	query := r.db.WithContext(ctx).Preload("Poin").
		Where("user_id IN ? AND reported_at >= ? AND reported_at < ?", f.UserIDs, f.Start, f.End)
	if f.PoinID != 0 {
		query = query.Where("poin_id = ?", f.PoinID)
	}
	err := query.Order("reported_at asc, id asc").Find(&list).Error
	return list, err
}

func (r *reportRepository) Pending(ctx context.Context, userIDs []uint, limit int) ([]model.Report, error) {
	if len(userIDs) == 0 {
		return []model.Report{}, nil
	}
	var list []model.Report
	query := r.db.WithContext(ctx).Preload("User").Preload("Poin").
		Where("user_id IN ? AND status = ?", userIDs, false).
		Order("reported_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *reportRepository) CountPending(ctx context.Context, userIDs []uint) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("user_id IN ? AND status = ?", userIDs, false).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) ApprovePending(ctx context.Context, userID uint, start, end, at time.Time) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Report{}).
			Where("user_id = ? AND reported_at >= ? AND reported_at < ? AND status = ?", userID, start, end, false).
			Updates(map[string]interface{}{"status": true, "approved_at": at})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
