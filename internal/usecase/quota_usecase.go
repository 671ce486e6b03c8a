package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Target names the user a quota belongs to, either directly or through the
// end-user of a cluster. UserID wins when both are set.
type Target struct {
	UserID    uint
	ClusterID uint
}

type RecommendationItem struct {
	PoinID    uint    `json:"id_poin" validate:"required"`
	Recommend float64 `json:"recommend" validate:"gte=0"`
}

type QuotaUsecase struct {
	recs   repository.RecommendationRepository
	fees   repository.MarketingFeeRepository
	poins  repository.PoinRepository
	scopes *HierarchyUsecase
	users  repository.UserRepository
	cache  cache.Cache
	loc    *time.Location
}

func NewQuotaUsecase(
	recs repository.RecommendationRepository,
	fees repository.MarketingFeeRepository,
	poins repository.PoinRepository,
	users repository.UserRepository,
	scopes *HierarchyUsecase,
	c cache.Cache,
	loc *time.Location,
) *QuotaUsecase {
	if c == nil {
		c = cache.NoopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &QuotaUsecase{recs: recs, fees: fees, poins: poins, users: users, scopes: scopes, cache: c, loc: loc}
}

func (u *QuotaUsecase) resolveTarget(ctx context.Context, t Target) (*model.User, error) {
	switch {
	case t.UserID != 0:
		user, err := u.users.FindByID(ctx, t.UserID)
		if err != nil {
			return nil, notFoundOr(err, "User %d tidak ditemukan", t.UserID)
		}
		return user, nil
	case t.ClusterID != 0:
		return u.scopes.ClusterUser(ctx, t.ClusterID)
	}
	return nil, apperror.Validation("user_id atau cluster_id wajib diisi")
}

func (u *QuotaUsecase) UpsertRecommendation(ctx context.Context, t Target, poinID uint, p period.Period, amount float64) (*model.Recommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, apperror.Validation("Rekomendasi tidak boleh negatif")
	}
	user, err := u.resolveTarget(ctx, t)
	if err != nil {
		return nil, err
	}
	if _, err := u.poins.GetByID(ctx, poinID); err != nil {
		return nil, notFoundOr(err, "Poin %d tidak ditemukan", poinID)
	}

	rec := &model.Recommendation{UserID: user.ID, PoinID: poinID, Time: p.Start(u.loc), Recommend: amount}
	if err := u.recs.Upsert(ctx, p.Start(u.loc), p.End(u.loc), rec); err != nil {
		return nil, apperror.Internal(err, "simpan rekomendasi user %d", user.ID)
	}
	u.cache.InvalidatePeriod(ctx, p)
	return rec, nil
}

// ReplaceRecommendations writes a full set of recommendations for the month.
// Every poin category must be present exactly once.
func (u *QuotaUsecase) ReplaceRecommendations(ctx context.Context, userID uint, p period.Period, items []RecommendationItem) ([]model.Recommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	user, err := u.resolveTarget(ctx, Target{UserID: userID})
	if err != nil {
		return nil, err
	}
	poins, err := u.poins.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "ambil kategori poin")
	}

	given := make(map[uint]RecommendationItem, len(items))
	for _, it := range items {
		if it.Recommend < 0 {
			return nil, apperror.Validation("Rekomendasi poin %d tidak boleh negatif", it.PoinID)
		}
		if _, dup := given[it.PoinID]; dup {
			return nil, apperror.Validation("Poin %d dikirim lebih dari sekali", it.PoinID)
		}
		given[it.PoinID] = it
	}
	var missing []string
	recs := make([]*model.Recommendation, 0, len(poins))
	for _, poin := range poins {
		it, ok := given[poin.ID]
		if !ok {
			missing = append(missing, poin.Type)
			continue
		}
		delete(given, poin.ID)
		recs = append(recs, &model.Recommendation{UserID: user.ID, PoinID: poin.ID, Time: p.Start(u.loc), Recommend: it.Recommend})
	}
	if len(given) > 0 {
		return nil, apperror.Validation("Poin tidak dikenal dalam permintaan")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, apperror.Validation("Rekomendasi belum lengkap: %s", strings.Join(missing, ", "))
	}

	if err := u.recs.Upsert(ctx, p.Start(u.loc), p.End(u.loc), recs...); err != nil {
		return nil, apperror.Internal(err, "simpan rekomendasi user %d", user.ID)
	}
	u.cache.InvalidatePeriod(ctx, p)

	return lo.Map(recs, func(r *model.Recommendation, _ int) model.Recommendation { return *r }), nil
}

// GetRecommendation returns nil when no recommendation exists for the month.
func (u *QuotaUsecase) GetRecommendation(ctx context.Context, t Target, poinID uint, p period.Period) (*float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	user, err := u.resolveTarget(ctx, t)
	if err != nil {
		return nil, err
	}
	rec, err := u.recs.Find(ctx, user.ID, poinID, p.Start(u.loc), p.End(u.loc))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Internal(err, "ambil rekomendasi user %d", user.ID)
	}
	return &rec.Recommend, nil
}

func (u *QuotaUsecase) UpsertMarketingFee(ctx context.Context, t Target, p period.Period, amount float64) (*model.MarketingFee, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, apperror.Validation("Marketing fee tidak boleh negatif")
	}
	user, err := u.resolveTarget(ctx, t)
	if err != nil {
		return nil, err
	}

	fee := &model.MarketingFee{UserID: user.ID, ClusterID: user.ClusterID, Time: p.Start(u.loc), Total: amount}
	if err := u.fees.Upsert(ctx, fee, p.Start(u.loc), p.End(u.loc)); err != nil {
		return nil, apperror.Internal(err, "simpan marketing fee user %d", user.ID)
	}
	return fee, nil
}

// MarketingFeeFor sums every fee row of the user in the month; older data
// may hold more than one.
func (u *QuotaUsecase) MarketingFeeFor(ctx context.Context, userID uint, p period.Period) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	total, err := u.fees.SumForUsers(ctx, []uint{userID}, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return 0, apperror.Internal(err, "ambil marketing fee user %d", userID)
	}
	return total, nil
}

func (u *QuotaUsecase) MarketingFeeHistory(ctx context.Context, userID uint) ([]model.MarketingFee, error) {
	list, err := u.fees.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "ambil riwayat marketing fee user %d", userID)
	}
	return list, nil
}
