package model

import "time"

// Area -> Region -> Branch -> Cluster. Each level points at its parent only.

type Area struct {
	ID        uint      `json:"id_area" gorm:"primaryKey"`
	Name      string    `json:"area" gorm:"column:area;not null"`
	Regions   []Region  `json:"regions,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Region struct {
	ID        uint      `json:"id_region" gorm:"primaryKey"`
	Name      string    `json:"region" gorm:"column:region;not null"`
	AreaID    *uint     `json:"id_area" gorm:"index"`
	Branches  []Branch  `json:"branches,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Branch struct {
	ID        uint      `json:"id_branch" gorm:"primaryKey"`
	Name      string    `json:"branch" gorm:"column:branch;not null"`
	RegionID  *uint     `json:"id_region" gorm:"index"`
	Clusters  []Cluster `json:"clusters,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Cluster struct {
	ID        uint      `json:"id_cluster" gorm:"primaryKey"`
	Name      string    `json:"cluster" gorm:"column:cluster;not null"`
	BranchID  *uint     `json:"id_branch" gorm:"index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Level names one node kind in the hierarchy. LevelUser is the leaf.
type Level string

const (
	LevelArea    Level = "area"
	LevelRegion  Level = "region"
	LevelBranch  Level = "branch"
	LevelCluster Level = "cluster"
	LevelUser    Level = "user"
)

func ParseLevel(s string) (Level, bool) {
	switch l := Level(s); l {
	case LevelArea, LevelRegion, LevelBranch, LevelCluster, LevelUser:
		return l, true
	}
	return "", false
}

// Child returns the level one step below l. The leaf has no child.
func (l Level) Child() (Level, bool) {
	switch l {
	case LevelArea:
		return LevelRegion, true
	case LevelRegion:
		return LevelBranch, true
	case LevelBranch:
		return LevelCluster, true
	case LevelCluster:
		return LevelUser, true
	}
	return "", false
}
