package usecase

import (
	"context"
	"fmt"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CategoryUsage struct {
	PoinID     uint    `json:"id_poin"`
	Type       string  `json:"type"`
	Amount     float64 `json:"total_amount"`
	Count      int64   `json:"count"`
	Quota      float64 `json:"recommendation"`
	Percentage float64 `json:"percentage"`
}

type UsageAggregate struct {
	Scope       Scope           `json:"scope"`
	Period      period.Period   `json:"period"`
	TotalAmount float64         `json:"total_amount"`
	Count       int64           `json:"total_reports"`
	QuotaUserID *uint           `json:"quota_user_id"`
	Categories  []CategoryUsage `json:"usage_details"`
}

type ChildUsage struct {
	ID                 uint        `json:"id"`
	Name               string      `json:"name"`
	Level              model.Level `json:"level"`
	TotalAmount        float64     `json:"total_amount"`
	Count              int64       `json:"total_reports"`
	PercentageOfParent float64     `json:"percentage"`
}

type TreeAggregate struct {
	Scope       Scope         `json:"scope"`
	Name        string        `json:"name"`
	Period      period.Period `json:"period"`
	TotalAmount float64       `json:"total_amount"`
	Count       int64         `json:"total_reports"`
	Children    []ChildUsage  `json:"children"`
}

type FeeUtilization struct {
	Scope           Scope         `json:"scope"`
	Period          period.Period `json:"period"`
	MarketingFee    float64       `json:"marketing_fee"`
	TotalUsage      float64       `json:"total_usage"`
	UsagePercentage float64       `json:"usage_percentage"`
}

type SeriesPoint struct {
	Index  int     `json:"index"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type CategoryEvidence struct {
	UserID      uint           `json:"id_user"`
	Poin        model.Poin     `json:"poin"`
	Period      period.Period  `json:"period"`
	Reports     []model.Report `json:"reports"`
	TotalAmount float64        `json:"total_amount"`
	Quota       float64        `json:"recommendation"`
	Percentage  float64        `json:"percentage"`
}

// Percentage is amount/quota*100 rounded half-up to two decimals. A quota
// that is zero or absent yields 0.
func Percentage(amount, quota float64) float64 {
	if quota <= 0 {
		return 0
	}
	v, _ := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(quota)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return v
}

func money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

// UsageUsecase aggregates report amounts over a scope closure and a month.
type UsageUsecase struct {
	scopes  *HierarchyUsecase
	usage   repository.UsageRepository
	reports repository.ReportRepository
	recs    repository.RecommendationRepository
	fees    repository.MarketingFeeRepository
	poins   repository.PoinRepository
	cache   cache.Cache
	loc     *time.Location
}

func NewUsageUsecase(
	scopes *HierarchyUsecase,
	usage repository.UsageRepository,
	reports repository.ReportRepository,
	recs repository.RecommendationRepository,
	fees repository.MarketingFeeRepository,
	poins repository.PoinRepository,
	c cache.Cache,
	loc *time.Location,
) *UsageUsecase {
	if c == nil {
		c = cache.NoopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &UsageUsecase{scopes: scopes, usage: usage, reports: reports, recs: recs, fees: fees, poins: poins, cache: c, loc: loc}
}

// quotas returns the recommendation per poin of the scope's representative
// user, the lowest id in the closure.
func (u *UsageUsecase) quotas(ctx context.Context, users []uint, p period.Period) (map[uint]float64, *uint, error) {
	if len(users) == 0 {
		return map[uint]float64{}, nil, nil
	}
	rep := lo.Min(users)
	recs, err := u.recs.ForPeriod(ctx, rep, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return nil, nil, apperror.Internal(err, "ambil rekomendasi user %d", rep)
	}
	out := lo.SliceToMap(recs, func(r model.Recommendation) (uint, float64) {
		return r.PoinID, r.Recommend
	})
	return out, &rep, nil
}

// AggregateUsage returns one entry per poin category, zero-filled, for every
// report of the scope closure inside the month.
func (u *UsageUsecase) AggregateUsage(ctx context.Context, scope Scope, p period.Period) (*UsageAggregate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	key := cache.Key("dense", scope.Level, scope.ID, p)
	var cached UsageAggregate
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	users, err := u.scopes.ScopeClosure(ctx, scope)
	if err != nil {
		return nil, err
	}
	poins, err := u.poins.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "ambil kategori poin")
	}
	totals, err := u.usage.SumByCategory(ctx, users, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return nil, apperror.Internal(err, "hitung penggunaan %s %d", scope.Level, scope.ID)
	}
	quota, repUser, err := u.quotas(ctx, users, p)
	if err != nil {
		return nil, err
	}

	byPoin := lo.KeyBy(totals, func(t repository.CategoryTotal) uint { return t.PoinID })
	sum := decimal.Zero
	var count int64
	for _, t := range totals {
		sum = sum.Add(decimal.NewFromFloat(t.Amount))
		count += t.Count
	}

	agg := &UsageAggregate{
		Scope:       scope,
		Period:      p,
		TotalAmount: money(sum),
		Count:       count,
		QuotaUserID: repUser,
		Categories:  make([]CategoryUsage, 0, len(poins)),
	}
	for _, poin := range poins {
		t := byPoin[poin.ID]
		agg.Categories = append(agg.Categories, CategoryUsage{
			PoinID:     poin.ID,
			Type:       poin.Type,
			Amount:     money(decimal.NewFromFloat(t.Amount)),
			Count:      t.Count,
			Quota:      quota[poin.ID],
			Percentage: Percentage(t.Amount, quota[poin.ID]),
		})
	}

	u.cache.Set(ctx, key, agg)
	return agg, nil
}

// AggregateUsageSparse is AggregateUsage without the zero-amount categories.
func (u *UsageUsecase) AggregateUsageSparse(ctx context.Context, scope Scope, p period.Period) (*UsageAggregate, error) {
	dense, err := u.AggregateUsage(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	sparse := *dense
	sparse.Categories = lo.Filter(dense.Categories, func(c CategoryUsage, _ int) bool {
		return c.Amount != 0
	})
	return &sparse, nil
}

// AggregateTree rolls usage up one level: each direct child with its total
// and its share of the parent total.
func (u *UsageUsecase) AggregateTree(ctx context.Context, scope Scope, p period.Period) (*TreeAggregate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if scope.Level == model.LevelUser {
		return nil, apperror.Validation("User tidak memiliki turunan")
	}
	key := cache.Key("tree", scope.Level, scope.ID, p)
	var cached TreeAggregate
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	name, err := u.scopes.ScopeName(ctx, scope)
	if err != nil {
		return nil, err
	}
	children, err := u.scopes.Children(ctx, scope)
	if err != nil {
		return nil, err
	}

	owner := map[uint]int{}
	var all []uint
	for i, child := range children {
		ids, err := u.scopes.ScopeClosure(ctx, child.Scope())
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			owner[id] = i
		}
		all = append(all, ids...)
	}
	totals, err := u.usage.SumByUser(ctx, all, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return nil, apperror.Internal(err, "hitung penggunaan %s %d", scope.Level, scope.ID)
	}

	sums := make([]decimal.Decimal, len(children))
	counts := make([]int64, len(children))
	parent := decimal.Zero
	var parentCount int64
	for _, t := range totals {
		i, ok := owner[t.UserID]
		if !ok {
			continue
		}
		amt := decimal.NewFromFloat(t.Amount)
		sums[i] = sums[i].Add(amt)
		counts[i] += t.Count
		parent = parent.Add(amt)
		parentCount += t.Count
	}

	tree := &TreeAggregate{
		Scope:       scope,
		Name:        name,
		Period:      p,
		TotalAmount: money(parent),
		Count:       parentCount,
		Children:    make([]ChildUsage, 0, len(children)),
	}
	for i, child := range children {
		amount := money(sums[i])
		tree.Children = append(tree.Children, ChildUsage{
			ID:                 child.ID,
			Name:               child.Name,
			Level:              child.Level,
			TotalAmount:        amount,
			Count:              counts[i],
			PercentageOfParent: Percentage(amount, tree.TotalAmount),
		})
	}

	u.cache.Set(ctx, key, tree)
	return tree, nil
}

// TotalUsage is the summed amount of the scope closure in the month.
func (u *UsageUsecase) TotalUsage(ctx context.Context, scope Scope, p period.Period) (float64, error) {
	agg, err := u.AggregateUsage(ctx, scope, p)
	if err != nil {
		return 0, err
	}
	return agg.TotalAmount, nil
}

// FeeUtilization compares total usage with the summed marketing fee of the
// scope closure.
func (u *UsageUsecase) FeeUtilization(ctx context.Context, scope Scope, p period.Period) (*FeeUtilization, error) {
	agg, err := u.AggregateUsage(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	users, err := u.scopes.ScopeClosure(ctx, scope)
	if err != nil {
		return nil, err
	}
	fee, err := u.fees.SumForUsers(ctx, users, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return nil, apperror.Internal(err, "hitung marketing fee %s %d", scope.Level, scope.ID)
	}
	return &FeeUtilization{
		Scope:           scope,
		Period:          p,
		MarketingFee:    money(decimal.NewFromFloat(fee)),
		TotalUsage:      agg.TotalAmount,
		UsagePercentage: Percentage(agg.TotalAmount, fee),
	}, nil
}

// MonthlySeries returns the scope's usage per month of year, only for the
// months that have at least one report, ascending.
func (u *UsageUsecase) MonthlySeries(ctx context.Context, scope Scope, year int) ([]SeriesPoint, error) {
	if _, err := period.New(year, 1); err != nil {
		return nil, err
	}
	users, err := u.scopes.ScopeClosure(ctx, scope)
	if err != nil {
		return nil, err
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, u.loc)
	rows, err := u.usage.Amounts(ctx, users, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, apperror.Internal(err, "ambil seri bulanan")
	}
	buckets := make([]decimal.Decimal, 12)
	seen := make([]bool, 12)
	for _, r := range rows {
		m := r.ReportedAt.In(u.loc).Month()
		buckets[m-1] = buckets[m-1].Add(decimal.NewFromFloat(r.Amount))
		seen[m-1] = true
	}
	points := []SeriesPoint{}
	for i := range buckets {
		if !seen[i] {
			continue
		}
		points = append(points, SeriesPoint{Index: i + 1, Label: period.MonthName(time.Month(i + 1)), Amount: money(buckets[i])})
	}
	return points, nil
}

// DailySeries returns one point per calendar day of the month.
func (u *UsageUsecase) DailySeries(ctx context.Context, scope Scope, p period.Period) ([]SeriesPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	users, err := u.scopes.ScopeClosure(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := u.usage.Amounts(ctx, users, p.Start(u.loc), p.End(u.loc))
	if err != nil {
		return nil, apperror.Internal(err, "ambil seri harian")
	}
	days := p.DaysIn()
	buckets := make([]decimal.Decimal, days)
	for _, r := range rows {
		d := r.ReportedAt.In(u.loc).Day()
		buckets[d-1] = buckets[d-1].Add(decimal.NewFromFloat(r.Amount))
	}
	points := make([]SeriesPoint, days)
	for i := range points {
		points[i] = SeriesPoint{
			Index:  i + 1,
			Label:  fmt.Sprintf("%02d %s", i+1, period.MonthName(p.Month)),
			Amount: money(buckets[i]),
		}
	}
	return points, nil
}

// CategoryEvidence lists the user's reports of one poin in the month, with
// the running total against the user's recommendation.
func (u *UsageUsecase) CategoryEvidence(ctx context.Context, userID, poinID uint, p period.Period) (*CategoryEvidence, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.scopes.ScopeName(ctx, Scope{Level: model.LevelUser, ID: userID}); err != nil {
		return nil, err
	}
	poin, err := u.poins.GetByID(ctx, poinID)
	if err != nil {
		return nil, notFoundOr(err, "Poin %d tidak ditemukan", poinID)
	}
	start, end := p.Start(u.loc), p.End(u.loc)
	reports, err := u.reports.List(ctx, repository.ReportFilter{UserIDs: []uint{userID}, Start: start, End: end, PoinID: poinID})
	if err != nil {
		return nil, apperror.Internal(err, "ambil laporan user %d", userID)
	}
	quota, _, err := u.quotas(ctx, []uint{userID}, p)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, r := range reports {
		sum = sum.Add(decimal.NewFromFloat(r.AmountUsed))
	}
	total := money(sum)
	return &CategoryEvidence{
		UserID:      userID,
		Poin:        *poin,
		Period:      p,
		Reports:     reports,
		TotalAmount: total,
		Quota:       quota[poinID],
		Percentage:  Percentage(total, quota[poinID]),
	}, nil
}
