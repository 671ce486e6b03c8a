package usecase

import (
	"context"
	"log"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"
)

type ApprovalResult struct {
	UserID        uint          `json:"user_id"`
	Period        period.Period `json:"period"`
	ApprovedCount int64         `json:"approved_count"`
	ApprovedAt    *time.Time    `json:"approved_at"`
}

type ApprovalUsecase struct {
	reports repository.ReportRepository
	scopes  *HierarchyUsecase
	cache   cache.Cache
	loc     *time.Location
	now     func() time.Time
}

func NewApprovalUsecase(reports repository.ReportRepository, scopes *HierarchyUsecase, c cache.Cache, loc *time.Location) *ApprovalUsecase {
	if c == nil {
		c = cache.NoopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ApprovalUsecase{reports: reports, scopes: scopes, cache: c, loc: loc, now: time.Now}
}

// WithClock replaces the time source stamped into approved_at.
func (u *ApprovalUsecase) WithClock(now func() time.Time) *ApprovalUsecase {
	u.now = now
	return u
}

// ApprovePending approves every pending report of userID in the month with
// one shared timestamp. Already approved reports are untouched, so a rerun
// returns a zero count.
func (u *ApprovalUsecase) ApprovePending(ctx context.Context, userID uint, year, month int) (*ApprovalResult, error) {
	p, err := period.New(year, month)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, apperror.Validation("user_id wajib diisi")
	}
	if _, err := u.scopes.ScopeName(ctx, Scope{Level: model.LevelUser, ID: userID}); err != nil {
		return nil, err
	}

	at := u.now()
	n, err := u.reports.ApprovePending(ctx, userID, p.Start(u.loc), p.End(u.loc), at)
	if err != nil {
		return nil, apperror.Internal(err, "approve laporan user %d", userID)
	}

	res := &ApprovalResult{UserID: userID, Period: p, ApprovedCount: n}
	if n > 0 {
		res.ApprovedAt = &at
		u.cache.InvalidatePeriod(ctx, p)
		log.Printf("[INFO] %d laporan user %d periode %s disetujui", n, userID, p.Label())
	}
	return res, nil
}
