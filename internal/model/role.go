package model

import "time"

const (
	RoleAreaAdmin     uint = 1
	RoleRegionAdmin   uint = 2
	RoleBranchAdmin   uint = 3
	RoleClusterAdmin  uint = 4
	RoleClusterAdmin2 uint = 5
	RoleEndUser       uint = 6
)

type Role struct {
	ID        uint      `json:"id_role" gorm:"primaryKey"`
	Name      string    `json:"role" gorm:"column:role;unique;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DefaultRoles is the fixed role table, seeded once.
var DefaultRoles = []Role{
	{ID: RoleAreaAdmin, Name: "Admin Area"},
	{ID: RoleRegionAdmin, Name: "Admin Region"},
	{ID: RoleBranchAdmin, Name: "Admin Branch"},
	{ID: RoleClusterAdmin, Name: "Admin Cluster"},
	{ID: RoleClusterAdmin2, Name: "Admin Cluster (SBP)"},
	{ID: RoleEndUser, Name: "User"},
}

// RoleForUserID applies the numeric ID-range convention: 1000s area admin,
// 2000s region admin, 3000s branch admin, 4000s/5000s cluster admins,
// 6000 and up end-user. IDs below 1000 map to no role (0).
func RoleForUserID(id uint) uint {
	switch {
	case id < 1000:
		return 0
	case id >= 6000:
		return RoleEndUser
	default:
		return id / 1000
	}
}

// AdminLevel returns the scope level administered by roleID.
func AdminLevel(roleID uint) (Level, bool) {
	switch roleID {
	case RoleAreaAdmin:
		return LevelArea, true
	case RoleRegionAdmin:
		return LevelRegion, true
	case RoleBranchAdmin:
		return LevelBranch, true
	case RoleClusterAdmin, RoleClusterAdmin2:
		return LevelCluster, true
	}
	return "", false
}

func IsAdminRole(roleID uint) bool {
	_, ok := AdminLevel(roleID)
	return ok
}
