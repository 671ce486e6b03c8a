package repository

import (
	"context"

	"marketing-fee-backend/internal/model"

	"gorm.io/gorm"
)

type HierarchyRepository interface {
	GetAreas(ctx context.Context) ([]model.Area, error)
	GetArea(ctx context.Context, id uint) (*model.Area, error)
	GetRegion(ctx context.Context, id uint) (*model.Region, error)
	GetBranch(ctx context.Context, id uint) (*model.Branch, error)
	GetCluster(ctx context.Context, id uint) (*model.Cluster, error)
	RegionsByArea(ctx context.Context, areaID uint) ([]model.Region, error)
	BranchesByRegion(ctx context.Context, regionID uint) ([]model.Branch, error)
	ClustersByBranch(ctx context.Context, branchID uint) ([]model.Cluster, error)
	ChildIDs(ctx context.Context, parent model.Level, parentIDs []uint) ([]uint, error)
	ClusterInBranch(ctx context.Context, clusterID, branchID uint) (bool, error)
}

type hierarchyRepository struct {
	db *gorm.DB
}

func NewHierarchyRepository(db *gorm.DB) HierarchyRepository {
	return &hierarchyRepository{db}
}

func (r *hierarchyRepository) GetAreas(ctx context.Context) ([]model.Area, error) {
	var list []model.Area
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *hierarchyRepository) GetArea(ctx context.Context, id uint) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).First(&area, id).Error
	return &area, err
}

func (r *hierarchyRepository) GetRegion(ctx context.Context, id uint) (*model.Region, error) {
	var region model.Region
	err := r.db.WithContext(ctx).First(&region, id).Error
	return &region, err
}

func (r *hierarchyRepository) GetBranch(ctx context.Context, id uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).First(&branch, id).Error
	return &branch, err
}

func (r *hierarchyRepository) GetCluster(ctx context.Context, id uint) (*model.Cluster, error) {
	var cluster model.Cluster
	err := r.db.WithContext(ctx).First(&cluster, id).Error
	return &cluster, err
}

func (r *hierarchyRepository) RegionsByArea(ctx context.Context, areaID uint) ([]model.Region, error) {
	var list []model.Region
	err := r.db.WithContext(ctx).Where("area_id = ?", areaID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *hierarchyRepository) BranchesByRegion(ctx context.Context, regionID uint) ([]model.Branch, error) {
	var list []model.Branch
	err := r.db.WithContext(ctx).Where("region_id = ?", regionID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *hierarchyRepository) ClustersByBranch(ctx context.Context, branchID uint) ([]model.Cluster, error) {
	var list []model.Cluster
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id asc").Find(&list).Error
	return list, err
}

// ChildIDs mengembalikan id semua node satu level di bawah parent.
// Parent hanya boleh area, region atau branch; isi cluster adalah user.
func (r *hierarchyRepository) ChildIDs(ctx context.Context, parent model.Level, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var (
		ids   []uint
		query *gorm.DB
	)
	switch parent {
	case model.LevelArea:
		query = r.db.WithContext(ctx).Model(&model.Region{}).Where("area_id IN ?", parentIDs)
	case model.LevelRegion:
		query = r.db.WithContext(ctx).Model(&model.Branch{}).Where("region_id IN ?", parentIDs)
	case model.LevelBranch:
		query = r.db.WithContext(ctx).Model(&model.Cluster{}).Where("branch_id IN ?", parentIDs)
	default:
		return nil, nil
	}
	err := query.Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

func (r *hierarchyRepository) ClusterInBranch(ctx context.Context, clusterID, branchID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Cluster{}).
		Where("id = ? AND branch_id = ?", clusterID, branchID).
		Count(&count).Error
	return count > 0, err
}
