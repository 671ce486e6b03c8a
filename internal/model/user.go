package model

import "time"

// User is a field user or administrator. ID is assigned by the caller
// and follows the range convention checked at registration (see RoleForUserID).
type User struct {
	ID        uint      `json:"id_user" gorm:"primaryKey;autoIncrement:false"`
	Email     string    `json:"email" gorm:"unique;not null;size:255"`
	Username  string    `json:"username" gorm:"unique;not null;size:255"`
	Password  string    `json:"-" gorm:"not null"`
	Telp      string    `json:"telp"`
	ClusterID *uint     `json:"id_cluster" gorm:"index"`
	BranchID  *uint     `json:"id_branch" gorm:"index"`
	RegionID  *uint     `json:"id_region" gorm:"index"`
	AreaID    *uint     `json:"id_area" gorm:"index"`
	RoleID    uint      `json:"id_role" gorm:"index;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Role    *Role    `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Cluster *Cluster `json:"cluster,omitempty" gorm:"foreignKey:ClusterID"`
}

// ScopeID returns the user's foreign key at level l, if set.
func (u *User) ScopeID(l Level) *uint {
	switch l {
	case LevelArea:
		return u.AreaID
	case LevelRegion:
		return u.RegionID
	case LevelBranch:
		return u.BranchID
	case LevelCluster:
		return u.ClusterID
	case LevelUser:
		id := u.ID
		return &id
	}
	return nil
}
