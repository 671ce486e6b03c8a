package usecase

import (
	"context"
	"errors"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/repository"

	"gorm.io/gorm"
)

// Scope identifies one node of the hierarchy, or a single user.
type Scope struct {
	Level model.Level `json:"level"`
	ID    uint        `json:"id"`
}

// ChildNode is one direct child of a scope together with the admin that
// manages it, when one exists. Children of a cluster are end-users.
type ChildNode struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Level         model.Level `json:"level"`
	AdminUserID   *uint       `json:"admin_user_id"`
	AdminUsername string      `json:"admin_username,omitempty"`
}

func (n ChildNode) Scope() Scope { return Scope{Level: n.Level, ID: n.ID} }

type HierarchyUsecase struct {
	hierarchy repository.HierarchyRepository
	users     repository.UserRepository
}

func NewHierarchyUsecase(hierarchy repository.HierarchyRepository, users repository.UserRepository) *HierarchyUsecase {
	return &HierarchyUsecase{hierarchy: hierarchy, users: users}
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(format, args...)
	}
	return apperror.Internal(err, format, args...)
}

// ScopeOfAdmin returns the node administered by adminID.
func (u *HierarchyUsecase) ScopeOfAdmin(ctx context.Context, adminID uint) (Scope, *model.User, error) {
	admin, err := u.users.FindByID(ctx, adminID)
	if err != nil {
		return Scope{}, nil, notFoundOr(err, "Admin %d tidak ditemukan", adminID)
	}
	level, ok := model.AdminLevel(admin.RoleID)
	if !ok {
		return Scope{}, nil, apperror.NotFound("User %d bukan admin", adminID)
	}
	id := admin.ScopeID(level)
	if id == nil {
		return Scope{}, nil, apperror.NotFound("Admin %d belum memiliki %s", adminID, level)
	}
	return Scope{Level: level, ID: *id}, admin, nil
}

// ChildrenOf lists the nodes directly under the scope of adminID, together
// with that scope.
func (u *HierarchyUsecase) ChildrenOf(ctx context.Context, adminID uint) (Scope, []ChildNode, error) {
	scope, _, err := u.ScopeOfAdmin(ctx, adminID)
	if err != nil {
		return Scope{}, nil, err
	}
	nodes, err := u.Children(ctx, scope)
	if err != nil {
		return Scope{}, nil, err
	}
	return scope, nodes, nil
}

// Children lists the nodes one level below scope. An empty level yields an
// empty, non-nil slice.
func (u *HierarchyUsecase) Children(ctx context.Context, scope Scope) ([]ChildNode, error) {
	nodes := []ChildNode{}
	var adminRoles []uint

	switch scope.Level {
	case model.LevelArea:
		regions, err := u.hierarchy.RegionsByArea(ctx, scope.ID)
		if err != nil {
			return nil, apperror.Internal(err, "ambil region area %d", scope.ID)
		}
		for _, r := range regions {
			nodes = append(nodes, ChildNode{ID: r.ID, Name: r.Name, Level: model.LevelRegion})
		}
		adminRoles = []uint{model.RoleRegionAdmin}
	case model.LevelRegion:
		branches, err := u.hierarchy.BranchesByRegion(ctx, scope.ID)
		if err != nil {
			return nil, apperror.Internal(err, "ambil branch region %d", scope.ID)
		}
		for _, b := range branches {
			nodes = append(nodes, ChildNode{ID: b.ID, Name: b.Name, Level: model.LevelBranch})
		}
		adminRoles = []uint{model.RoleBranchAdmin}
	case model.LevelBranch:
		clusters, err := u.hierarchy.ClustersByBranch(ctx, scope.ID)
		if err != nil {
			return nil, apperror.Internal(err, "ambil cluster branch %d", scope.ID)
		}
		for _, c := range clusters {
			nodes = append(nodes, ChildNode{ID: c.ID, Name: c.Name, Level: model.LevelCluster})
		}
		adminRoles = []uint{model.RoleClusterAdmin, model.RoleClusterAdmin2}
	case model.LevelCluster:
		users, err := u.users.UsersByScope(ctx, model.LevelCluster, []uint{scope.ID}, model.RoleEndUser)
		if err != nil {
			return nil, apperror.Internal(err, "ambil user cluster %d", scope.ID)
		}
		for _, usr := range users {
			id := usr.ID
			nodes = append(nodes, ChildNode{ID: usr.ID, Name: usr.Username, Level: model.LevelUser, AdminUserID: &id, AdminUsername: usr.Username})
		}
		return nodes, nil
	default:
		return nil, apperror.Validation("Level %q tidak memiliki turunan", scope.Level)
	}

	if len(nodes) == 0 {
		return nodes, nil
	}
	ids := make([]uint, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	admins, err := u.users.UsersByScope(ctx, nodes[0].Level, ids, adminRoles...)
	if err != nil {
		return nil, apperror.Internal(err, "ambil admin %s", nodes[0].Level)
	}
	// lowest admin id per node wins; admins arrive sorted by id
	for i := range nodes {
		for _, a := range admins {
			if key := a.ScopeID(nodes[i].Level); key != nil && *key == nodes[i].ID {
				id := a.ID
				nodes[i].AdminUserID = &id
				nodes[i].AdminUsername = a.Username
				break
			}
		}
	}
	return nodes, nil
}

// ScopeName verifies the scope exists and returns its display name.
func (u *HierarchyUsecase) ScopeName(ctx context.Context, scope Scope) (string, error) {
	switch scope.Level {
	case model.LevelArea:
		a, err := u.hierarchy.GetArea(ctx, scope.ID)
		if err != nil {
			return "", notFoundOr(err, "Area %d tidak ditemukan", scope.ID)
		}
		return a.Name, nil
	case model.LevelRegion:
		r, err := u.hierarchy.GetRegion(ctx, scope.ID)
		if err != nil {
			return "", notFoundOr(err, "Region %d tidak ditemukan", scope.ID)
		}
		return r.Name, nil
	case model.LevelBranch:
		b, err := u.hierarchy.GetBranch(ctx, scope.ID)
		if err != nil {
			return "", notFoundOr(err, "Branch %d tidak ditemukan", scope.ID)
		}
		return b.Name, nil
	case model.LevelCluster:
		c, err := u.hierarchy.GetCluster(ctx, scope.ID)
		if err != nil {
			return "", notFoundOr(err, "Cluster %d tidak ditemukan", scope.ID)
		}
		return c.Name, nil
	case model.LevelUser:
		usr, err := u.users.FindByID(ctx, scope.ID)
		if err != nil {
			return "", notFoundOr(err, "User %d tidak ditemukan", scope.ID)
		}
		return usr.Username, nil
	}
	return "", apperror.Validation("Level %q tidak dikenal", scope.Level)
}

// ScopeClosure returns the ids of every end-user under scope, following the
// hierarchy tree rather than the denormalized keys on the user row. A user
// scope is its own closure.
func (u *HierarchyUsecase) ScopeClosure(ctx context.Context, scope Scope) ([]uint, error) {
	if _, err := u.ScopeName(ctx, scope); err != nil {
		return nil, err
	}
	if scope.Level == model.LevelUser {
		return []uint{scope.ID}, nil
	}

	level, ids := scope.Level, []uint{scope.ID}
	for level != model.LevelCluster {
		child, _ := level.Child()
		next, err := u.hierarchy.ChildIDs(ctx, level, ids)
		if err != nil {
			return nil, apperror.Internal(err, "telusuri %s", child)
		}
		level, ids = child, next
	}
	users, err := u.users.EndUserIDsByClusters(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err, "ambil user cluster")
	}
	if users == nil {
		users = []uint{}
	}
	return users, nil
}

// ClusterUser returns the end-user of a cluster, the lowest id if several.
func (u *HierarchyUsecase) ClusterUser(ctx context.Context, clusterID uint) (*model.User, error) {
	if _, err := u.ScopeName(ctx, Scope{Level: model.LevelCluster, ID: clusterID}); err != nil {
		return nil, err
	}
	users, err := u.users.UsersByScope(ctx, model.LevelCluster, []uint{clusterID}, model.RoleEndUser)
	if err != nil {
		return nil, apperror.Internal(err, "ambil user cluster %d", clusterID)
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("Cluster %d belum memiliki user", clusterID)
	}
	return &users[0], nil
}

func (u *HierarchyUsecase) CheckClusterAccess(ctx context.Context, branchID, clusterID uint) (bool, error) {
	ok, err := u.hierarchy.ClusterInBranch(ctx, clusterID, branchID)
	if err != nil {
		return false, apperror.Internal(err, "cek akses cluster %d", clusterID)
	}
	return ok, nil
}

func (u *HierarchyUsecase) Areas(ctx context.Context) ([]model.Area, error) {
	list, err := u.hierarchy.GetAreas(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "ambil area")
	}
	return list, nil
}

func (u *HierarchyUsecase) Regions(ctx context.Context, areaID uint) ([]model.Region, error) {
	list, err := u.hierarchy.RegionsByArea(ctx, areaID)
	if err != nil {
		return nil, apperror.Internal(err, "ambil region")
	}
	return list, nil
}

func (u *HierarchyUsecase) Branches(ctx context.Context, regionID uint) ([]model.Branch, error) {
	list, err := u.hierarchy.BranchesByRegion(ctx, regionID)
	if err != nil {
		return nil, apperror.Internal(err, "ambil branch")
	}
	return list, nil
}

func (u *HierarchyUsecase) Clusters(ctx context.Context, branchID uint) ([]model.Cluster, error) {
	list, err := u.hierarchy.ClustersByBranch(ctx, branchID)
	if err != nil {
		return nil, apperror.Internal(err, "ambil cluster")
	}
	return list, nil
}
