package usecase

import (
	"context"
	"testing"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		addReport(t, env.db, 6001, uint(i+1), 100, day(2024, 6, 5+i, 10))
	}
	july := addReport(t, env.db, 6001, 1, 100, day(2024, 7, 1, 10))
	other := addReport(t, env.db, 6002, 1, 100, day(2024, 6, 5, 10))

	first := time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)
	env.approval.WithClock(func() time.Time { return first })

	res, err := env.approval.ApprovePending(ctx, 6001, 2024, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ApprovedCount)
	require.NotNil(t, res.ApprovedAt)
	assert.True(t, first.Equal(*res.ApprovedAt))

	var approved []model.Report
	require.NoError(t, env.db.Where("user_id = ? AND status = ?", 6001, true).Find(&approved).Error)
	require.Len(t, approved, 3)
	for _, r := range approved {
		require.NotNil(t, r.ApprovedAt)
		assert.True(t, first.Equal(*r.ApprovedAt), "all rows share one timestamp")
	}

	var untouched model.Report
	require.NoError(t, env.db.First(&untouched, july.ID).Error)
	assert.False(t, untouched.Status)
	require.NoError(t, env.db.First(&untouched, other.ID).Error)
	assert.False(t, untouched.Status)

	t.Run("rerun approves nothing", func(t *testing.T) {
		env.approval.WithClock(func() time.Time { return first.Add(time.Hour) })
		res, err := env.approval.ApprovePending(ctx, 6001, 2024, 6)
		require.NoError(t, err)
		assert.Zero(t, res.ApprovedCount)
		assert.Nil(t, res.ApprovedAt)

		var rows []model.Report
		require.NoError(t, env.db.Where("user_id = ? AND status = ?", 6001, true).Find(&rows).Error)
		for _, r := range rows {
			assert.True(t, first.Equal(*r.ApprovedAt), "approved_at unchanged")
		}
	})
}

func TestApprovePending_NoReports(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.approval.ApprovePending(context.Background(), 6004, 2024, 1)
	require.NoError(t, err)
	assert.Zero(t, res.ApprovedCount)
	assert.Nil(t, res.ApprovedAt)
}

func TestApprovePending_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.approval.ApprovePending(ctx, 6001, 2024, 0)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.approval.ApprovePending(ctx, 6001, 2024, 13)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.approval.ApprovePending(ctx, 0, 2024, 6)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.approval.ApprovePending(ctx, 6999, 2024, 6)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
