package usecase

import (
	"context"
	"testing"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june = period.Period{Year: 2024, Month: time.June}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 25.0, Percentage(250, 1000))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 150.0, Percentage(1500, 1000))
	assert.Equal(t, 0.0, Percentage(500, 0))
	assert.Equal(t, 0.0, Percentage(0, 1000))
}

func TestAggregateUsage_QuotaPercentage(t *testing.T) {
	env := newTestEnv(t)
	addRecommendation(t, env.db, 6001, 1, 1000, day(2024, 6, 1, 0))
	addReport(t, env.db, 6001, 1, 250, day(2024, 6, 10, 9))

	agg, err := env.usage.AggregateUsage(context.Background(), Scope{model.LevelUser, 6001}, june)
	require.NoError(t, err)

	require.Len(t, agg.Categories, len(model.DefaultPoins))
	first := agg.Categories[0]
	assert.Equal(t, uint(1), first.PoinID)
	assert.Equal(t, 250.0, first.Amount)
	assert.Equal(t, 1000.0, first.Quota)
	assert.Equal(t, 25.0, first.Percentage)
	for _, c := range agg.Categories[1:] {
		assert.Zero(t, c.Amount)
		assert.Zero(t, c.Percentage)
	}
}

func TestAggregateUsage_DenseAndSparse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	addReport(t, env.db, 6001, 2, 100, day(2024, 6, 3, 8))
	addReport(t, env.db, 6002, 2, 50, day(2024, 6, 4, 8))
	addReport(t, env.db, 6002, 5, 75.5, day(2024, 6, 5, 8))

	dense, err := env.usage.AggregateUsage(ctx, Scope{model.LevelBranch, 1}, june)
	require.NoError(t, err)
	assert.Len(t, dense.Categories, len(model.DefaultPoins))
	for i, c := range dense.Categories {
		assert.Equal(t, model.DefaultPoins[i].ID, c.PoinID, "categories ordered by poin id")
	}
	assert.Equal(t, 225.5, dense.TotalAmount)
	assert.Equal(t, int64(3), dense.Count)

	sparse, err := env.usage.AggregateUsageSparse(ctx, Scope{model.LevelBranch, 1}, june)
	require.NoError(t, err)
	require.Len(t, sparse.Categories, 2)
	assert.Equal(t, uint(2), sparse.Categories[0].PoinID)
	assert.Equal(t, 150.0, sparse.Categories[0].Amount)
	assert.Equal(t, int64(2), sparse.Categories[0].Count)
	assert.Equal(t, uint(5), sparse.Categories[1].PoinID)
	assert.Equal(t, dense.TotalAmount, sparse.TotalAmount)
	assert.Len(t, dense.Categories, len(model.DefaultPoins), "sparse must not mutate the dense result")
}

func TestAggregateUsage_TotalEqualsClosureSum(t *testing.T) {
	env := newTestEnv(t)
	amounts := map[uint][]float64{
		6001: {10, 20.25},
		6002: {30},
		6003: {40.5, 1},
		6004: {99},
	}
	for user, list := range amounts {
		for i, a := range list {
			addReport(t, env.db, user, uint(i+1), a, day(2024, 6, 10+i, 12))
		}
	}

	cases := []struct {
		scope Scope
		want  float64
	}{
		{Scope{model.LevelArea, 1}, 200.75},
		{Scope{model.LevelRegion, 1}, 101.75},
		{Scope{model.LevelRegion, 2}, 99},
		{Scope{model.LevelBranch, 2}, 41.5},
		{Scope{model.LevelCluster, 1}, 30.25},
	}
	for _, tc := range cases {
		agg, err := env.usage.AggregateUsage(context.Background(), tc.scope, june)
		require.NoError(t, err)
		assert.Equal(t, tc.want, agg.TotalAmount, "%s %d", tc.scope.Level, tc.scope.ID)

		var sum float64
		for _, c := range agg.Categories {
			sum += c.Amount
		}
		assert.InDelta(t, agg.TotalAmount, sum, 0.001)
	}
}

func TestAggregateUsage_MonthWindowIsHalfOpen(t *testing.T) {
	env := newTestEnv(t)
	addReport(t, env.db, 6001, 1, 1, time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC))
	addReport(t, env.db, 6001, 1, 10, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	addReport(t, env.db, 6001, 1, 100, time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC))
	addReport(t, env.db, 6001, 1, 1000, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	agg, err := env.usage.AggregateUsage(context.Background(), Scope{model.LevelUser, 6001}, june)
	require.NoError(t, err)
	assert.Equal(t, 110.0, agg.TotalAmount)
	assert.Equal(t, int64(2), agg.Count)
}

func TestAggregateUsage_RepresentativeQuotaUser(t *testing.T) {
	env := newTestEnv(t)
	addRecommendation(t, env.db, 6001, 3, 400, day(2024, 6, 1, 0))
	addRecommendation(t, env.db, 6002, 3, 9999, day(2024, 6, 1, 0))
	addReport(t, env.db, 6001, 3, 100, day(2024, 6, 2, 0))
	addReport(t, env.db, 6002, 3, 100, day(2024, 6, 2, 0))

	agg, err := env.usage.AggregateUsage(context.Background(), Scope{model.LevelCluster, 1}, june)
	require.NoError(t, err)
	require.NotNil(t, agg.QuotaUserID)
	assert.Equal(t, uint(6001), *agg.QuotaUserID)

	agg, err = env.usage.AggregateUsage(context.Background(), Scope{model.LevelBranch, 1}, june)
	require.NoError(t, err)
	assert.Equal(t, uint(6001), *agg.QuotaUserID)
	c := agg.Categories[2]
	assert.Equal(t, 400.0, c.Quota)
	assert.Equal(t, 50.0, c.Percentage)
}

func TestAggregateUsage_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.usage.AggregateUsage(ctx, Scope{model.LevelUser, 6001}, period.Period{Year: 2024, Month: 13})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.usage.AggregateUsage(ctx, Scope{model.LevelRegion, 42}, june)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestAggregateTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	addReport(t, env.db, 6001, 1, 300, day(2024, 6, 3, 0))
	addReport(t, env.db, 6002, 1, 100, day(2024, 6, 3, 0))
	addReport(t, env.db, 6003, 1, 600, day(2024, 6, 3, 0))

	tree, err := env.usage.AggregateTree(ctx, Scope{model.LevelBranch, 1}, june)
	require.NoError(t, err)
	assert.Equal(t, "Medan", tree.Name)
	assert.Equal(t, 400.0, tree.TotalAmount)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, 300.0, tree.Children[0].TotalAmount)
	assert.Equal(t, 75.0, tree.Children[0].PercentageOfParent)
	assert.Equal(t, 25.0, tree.Children[1].PercentageOfParent)

	tree, err = env.usage.AggregateTree(ctx, Scope{model.LevelRegion, 1}, june)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, tree.TotalAmount)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, model.LevelBranch, tree.Children[0].Level)
	assert.Equal(t, 40.0, tree.Children[0].PercentageOfParent)
	assert.Equal(t, 60.0, tree.Children[1].PercentageOfParent)

	tree, err = env.usage.AggregateTree(ctx, Scope{model.LevelRegion, 2}, june)
	require.NoError(t, err)
	assert.Zero(t, tree.TotalAmount)
	require.Len(t, tree.Children, 1)
	assert.Zero(t, tree.Children[0].PercentageOfParent)

	_, err = env.usage.AggregateTree(ctx, Scope{model.LevelUser, 6001}, june)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestFeeUtilization(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.MarketingFee{UserID: 6001, Time: day(2024, 6, 1, 0), Total: 2000}).Error)
	require.NoError(t, env.db.Create(&model.MarketingFee{UserID: 6002, Time: day(2024, 6, 1, 0), Total: 2000}).Error)
	addReport(t, env.db, 6001, 1, 1000, day(2024, 6, 5, 0))

	fu, err := env.usage.FeeUtilization(context.Background(), Scope{model.LevelBranch, 1}, june)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, fu.MarketingFee)
	assert.Equal(t, 1000.0, fu.TotalUsage)
	assert.Equal(t, 25.0, fu.UsagePercentage)

	fu, err = env.usage.FeeUtilization(context.Background(), Scope{model.LevelBranch, 3}, june)
	require.NoError(t, err)
	assert.Zero(t, fu.UsagePercentage)
}

func TestMonthlySeries(t *testing.T) {
	env := newTestEnv(t)
	addReport(t, env.db, 6001, 1, 100, day(2024, 2, 10, 0))
	addReport(t, env.db, 6001, 2, 50, day(2024, 2, 11, 0))
	addReport(t, env.db, 6001, 1, 70, day(2024, 6, 1, 0))
	addReport(t, env.db, 6001, 1, 999, day(2023, 12, 31, 0))

	points, err := env.usage.MonthlySeries(context.Background(), Scope{model.LevelUser, 6001}, 2024)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, SeriesPoint{Index: 2, Label: "Februari", Amount: 150}, points[0])
	assert.Equal(t, SeriesPoint{Index: 6, Label: "Juni", Amount: 70}, points[1])
}

func TestDailySeries(t *testing.T) {
	env := newTestEnv(t)
	addReport(t, env.db, 6001, 1, 10, day(2024, 6, 1, 8))
	addReport(t, env.db, 6001, 2, 15, day(2024, 6, 1, 17))
	addReport(t, env.db, 6001, 1, 5, day(2024, 6, 30, 23))

	points, err := env.usage.DailySeries(context.Background(), Scope{model.LevelUser, 6001}, june)
	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, 25.0, points[0].Amount)
	assert.Equal(t, "01 Juni", points[0].Label)
	assert.Zero(t, points[14].Amount)
	assert.Equal(t, 5.0, points[29].Amount)
}

func TestCategoryEvidence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	addRecommendation(t, env.db, 6001, 4, 500, day(2024, 6, 1, 0))
	addReport(t, env.db, 6001, 4, 100, day(2024, 6, 2, 0))
	addReport(t, env.db, 6001, 4, 150, day(2024, 6, 9, 0))
	addReport(t, env.db, 6001, 1, 70, day(2024, 6, 9, 0))

	ev, err := env.usage.CategoryEvidence(ctx, 6001, 4, june)
	require.NoError(t, err)
	assert.Equal(t, "Akomodasi", ev.Poin.Type)
	require.Len(t, ev.Reports, 2)
	assert.Equal(t, 250.0, ev.TotalAmount)
	assert.Equal(t, 50.0, ev.Percentage)

	_, err = env.usage.CategoryEvidence(ctx, 6001, 99, june)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = env.usage.CategoryEvidence(ctx, 6999, 1, june)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
