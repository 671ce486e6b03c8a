package usecase

import (
	"context"
	"strings"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	ID        uint   `json:"id_user" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Telp      string `json:"telp" validate:"omitempty,max=20"`
	RoleID    uint   `json:"id_role" validate:"required,min=1,max=6"`
	ClusterID *uint  `json:"id_cluster"`
	BranchID  *uint  `json:"id_branch"`
	RegionID  *uint  `json:"id_region"`
	AreaID    *uint  `json:"id_area"`
}

type UserUsecase struct {
	repo      repository.UserRepository
	roles     repository.RoleRepository
	hierarchy repository.HierarchyRepository
}

func NewUserUsecase(repo repository.UserRepository, roles repository.RoleRepository, hierarchy repository.HierarchyRepository) *UserUsecase {
	return &UserUsecase{repo: repo, roles: roles, hierarchy: hierarchy}
}

// Register creates a user whose id range agrees with its role. Parent keys
// are derived from the most specific key given so they always match the tree.
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if want := model.RoleForUserID(in.ID); want != in.RoleID {
		return nil, apperror.Validation("ID %d tidak sesuai dengan role %d", in.ID, in.RoleID)
	}
	if _, err := u.roles.GetByID(ctx, in.RoleID); err != nil {
		return nil, notFoundOr(err, "Role %d tidak ditemukan", in.RoleID)
	}
	if _, err := u.repo.FindByID(ctx, in.ID); err == nil {
		return nil, apperror.Validation("ID %d sudah terdaftar", in.ID)
	}
	exists, err := u.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, apperror.Internal(err, "cek username")
	}
	if exists {
		return nil, apperror.Validation("Username atau email sudah digunakan")
	}

	user := &model.User{
		ID:       in.ID,
		Username: strings.TrimSpace(in.Username),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Telp:     in.Telp,
		RoleID:   in.RoleID,
	}
	if err := u.placeUser(ctx, user, in); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err, "hash password")
	}
	user.Password = string(hashed)

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err, "simpan user %d", in.ID)
	}
	return user, nil
}

// placeUser fills the hierarchy keys walking up from the deepest one given.
// The key of the role's own level is mandatory.
func (u *UserUsecase) placeUser(ctx context.Context, user *model.User, in RegisterInput) error {
	clusterID, branchID, regionID, areaID := in.ClusterID, in.BranchID, in.RegionID, in.AreaID

	if clusterID != nil {
		c, err := u.hierarchy.GetCluster(ctx, *clusterID)
		if err != nil {
			return notFoundOr(err, "Cluster %d tidak ditemukan", *clusterID)
		}
		branchID = c.BranchID
	}
	if branchID != nil {
		b, err := u.hierarchy.GetBranch(ctx, *branchID)
		if err != nil {
			return notFoundOr(err, "Branch %d tidak ditemukan", *branchID)
		}
		regionID = b.RegionID
	}
	if regionID != nil {
		r, err := u.hierarchy.GetRegion(ctx, *regionID)
		if err != nil {
			return notFoundOr(err, "Region %d tidak ditemukan", *regionID)
		}
		areaID = r.AreaID
	}
	if areaID != nil {
		if _, err := u.hierarchy.GetArea(ctx, *areaID); err != nil {
			return notFoundOr(err, "Area %d tidak ditemukan", *areaID)
		}
	}
	user.ClusterID, user.BranchID, user.RegionID, user.AreaID = clusterID, branchID, regionID, areaID

	level := model.LevelCluster
	if l, ok := model.AdminLevel(user.RoleID); ok {
		level = l
	}
	if user.ScopeID(level) == nil {
		return apperror.Validation("id_%s wajib diisi untuk role %d", level, user.RoleID)
	}
	return nil
}

func (u *UserUsecase) Profile(ctx context.Context, id uint) (*model.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User %d tidak ditemukan", id)
	}
	return user, nil
}

func (u *UserUsecase) Roles(ctx context.Context) ([]model.Role, error) {
	roles, err := u.roles.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "ambil role")
	}
	return roles, nil
}
