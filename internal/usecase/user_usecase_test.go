package usecase

import (
	"context"
	"testing"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func uintPtr(v uint) *uint { return &v }

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Register(context.Background(), RegisterInput{
		ID:        6010,
		Username:  "mf.baru",
		Email:     "Baru@Example.com",
		Password:  "rahasia123",
		RoleID:    model.RoleEndUser,
		ClusterID: uintPtr(3),
		RegionID:  uintPtr(2), // overridden by the tree
	})
	require.NoError(t, err)
	assert.Equal(t, "baru@example.com", user.Email)
	require.NotNil(t, user.BranchID)
	assert.Equal(t, uint(2), *user.BranchID)
	assert.Equal(t, uint(1), *user.RegionID)
	assert.Equal(t, uint(1), *user.AreaID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("rahasia123")))

	profile, err := env.users.Profile(context.Background(), 6010)
	require.NoError(t, err)
	require.NotNil(t, profile.Role)
	assert.Equal(t, model.RoleEndUser, profile.Role.ID)
}

func TestRegister_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := func() RegisterInput {
		return RegisterInput{ID: 3005, Username: "admin.baru", Email: "ab@example.com", Password: "rahasia123", RoleID: model.RoleBranchAdmin, BranchID: uintPtr(2)}
	}

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		kind   apperror.Kind
	}{
		{"id outside role range", func(in *RegisterInput) { in.ID = 2005 }, apperror.KindValidation},
		{"end-user id for admin", func(in *RegisterInput) { in.ID = 6005 }, apperror.KindValidation},
		{"id already taken", func(in *RegisterInput) { in.ID = 3001 }, apperror.KindValidation},
		{"duplicate username", func(in *RegisterInput) { in.Username = "admin.medan" }, apperror.KindValidation},
		{"missing own level", func(in *RegisterInput) { in.BranchID = nil; in.RegionID = uintPtr(1) }, apperror.KindValidation},
		{"unknown branch", func(in *RegisterInput) { in.BranchID = uintPtr(77) }, apperror.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mutate(&in)
			_, err := env.users.Register(ctx, in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperror.KindOf(err))
		})
	}

	_, err := env.users.Register(ctx, base())
	assert.NoError(t, err)
}
