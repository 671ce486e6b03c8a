package usecase

import (
	"context"
	"testing"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildrenOf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("area admin sees regions", func(t *testing.T) {
		_, nodes, err := env.hierarchy.ChildrenOf(ctx, 1001)
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, model.LevelRegion, nodes[0].Level)
		assert.Equal(t, "Sumbagut", nodes[0].Name)
		require.NotNil(t, nodes[0].AdminUserID)
		assert.Equal(t, uint(2001), *nodes[0].AdminUserID)
		require.NotNil(t, nodes[1].AdminUserID)
		assert.Equal(t, uint(2002), *nodes[1].AdminUserID)
	})

	t.Run("region admin sees branches only", func(t *testing.T) {
		_, nodes, err := env.hierarchy.ChildrenOf(ctx, 2001)
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		for _, n := range nodes {
			assert.Equal(t, model.LevelBranch, n.Level)
		}
		require.NotNil(t, nodes[0].AdminUserID)
		assert.Equal(t, uint(3001), *nodes[0].AdminUserID)
		assert.Nil(t, nodes[1].AdminUserID)
	})

	t.Run("branch admin sees clusters", func(t *testing.T) {
		scope, nodes, err := env.hierarchy.ChildrenOf(ctx, 3001)
		require.NoError(t, err)
		assert.Equal(t, Scope{Level: model.LevelBranch, ID: 1}, scope)
		require.Len(t, nodes, 2)
		assert.Equal(t, uint(1), nodes[0].ID)
		assert.Equal(t, uint(2), nodes[1].ID)
		require.NotNil(t, nodes[0].AdminUserID)
		assert.Equal(t, uint(4001), *nodes[0].AdminUserID)
	})

	t.Run("cluster admin sees its end-user", func(t *testing.T) {
		_, nodes, err := env.hierarchy.ChildrenOf(ctx, 4001)
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, model.LevelUser, nodes[0].Level)
		assert.Equal(t, uint(6001), nodes[0].ID)
	})

	t.Run("end-user is not an admin", func(t *testing.T) {
		_, _, err := env.hierarchy.ChildrenOf(ctx, 6001)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("unknown admin", func(t *testing.T) {
		_, _, err := env.hierarchy.ChildrenOf(ctx, 9999)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestChildrenOf_EmptyBranchGivesEmptyList(t *testing.T) {
	env := newTestEnv(t)
	region := uint(2)
	require.NoError(t, env.db.Create(&model.Branch{ID: 9, Name: "Kosong", RegionID: &region}).Error)
	branch := uint(9)
	require.NoError(t, env.db.Create(&model.User{ID: 3009, Username: "admin.kosong", Email: "k@example.com", Password: "x", RoleID: model.RoleBranchAdmin, BranchID: &branch}).Error)

	_, nodes, err := env.hierarchy.ChildrenOf(context.Background(), 3009)
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestChildrenOf_AdminWithoutScope(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.User{ID: 3002, Username: "admin.lepas", Email: "l@example.com", Password: "x", RoleID: model.RoleBranchAdmin}).Error)

	_, _, err := env.hierarchy.ChildrenOf(context.Background(), 3002)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestScopeClosure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		scope Scope
		want  []uint
	}{
		{"area", Scope{model.LevelArea, 1}, []uint{6001, 6002, 6003, 6004}},
		{"region", Scope{model.LevelRegion, 1}, []uint{6001, 6002, 6003}},
		{"branch", Scope{model.LevelBranch, 1}, []uint{6001, 6002}},
		{"cluster", Scope{model.LevelCluster, 3}, []uint{6003}},
		{"user", Scope{model.LevelUser, 6004}, []uint{6004}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.hierarchy.ScopeClosure(ctx, tc.scope)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown node", func(t *testing.T) {
		_, err := env.hierarchy.ScopeClosure(ctx, Scope{model.LevelBranch, 77})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestScopeClosure_FollowsTreeNotUserKeys(t *testing.T) {
	env := newTestEnv(t)
	// stale denormalized key must not pull 6003 into branch 1
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", 6003).Update("branch_id", 1).Error)

	got, err := env.hierarchy.ScopeClosure(context.Background(), Scope{model.LevelBranch, 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{6001, 6002}, got)
}

func TestClusterUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.hierarchy.ClusterUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(6002), u.ID)

	branch := uint(1)
	require.NoError(t, env.db.Create(&model.Cluster{ID: 8, Name: "Kosong", BranchID: &branch}).Error)
	_, err = env.hierarchy.ClusterUser(ctx, 8)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCheckClusterAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ok, err := env.hierarchy.CheckClusterAccess(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.hierarchy.CheckClusterAccess(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
