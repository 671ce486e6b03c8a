package database

import (
	"fmt"
	"log"

	"marketing-fee-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword adalah password semua akun hasil seed.
const DemoPassword = "admin123"

func ptr(v uint) *uint { return &v }

// SeedReference mengisi tabel role dan poin. Aman dijalankan ulang.
func SeedReference(db *gorm.DB) error {
	for _, r := range model.DefaultRoles {
		role := r
		if err := db.FirstOrCreate(&role, model.Role{ID: r.ID}).Error; err != nil {
			return fmt.Errorf("seed role %d: %w", r.ID, err)
		}
	}
	for _, p := range model.DefaultPoins {
		poin := p
		if err := db.FirstOrCreate(&poin, model.Poin{ID: p.ID}).Error; err != nil {
			return fmt.Errorf("seed poin %d: %w", p.ID, err)
		}
	}
	return nil
}

// SeedAll mengisi tabel referensi dan hierarki demo kecil:
//
//	Area 1 (Sumatera)
//	  Region 1 (Sumbagut)  -> Branch 1 (Medan) -> Cluster 1, Cluster 2
//	                       -> Branch 2 (Binjai) -> Cluster 3
//	  Region 2 (Sumbagsel) -> Branch 3 (Palembang) -> Cluster 4
//
// dengan satu admin per node sampai branch 1 dan satu end-user per cluster.
func SeedAll(db *gorm.DB) error {
	if err := SeedReference(db); err != nil {
		return err
	}

	areas := []model.Area{{ID: 1, Name: "Sumatera"}}
	regions := []model.Region{
		{ID: 1, Name: "Sumbagut", AreaID: ptr(1)},
		{ID: 2, Name: "Sumbagsel", AreaID: ptr(1)},
	}
	branches := []model.Branch{
		{ID: 1, Name: "Medan", RegionID: ptr(1)},
		{ID: 2, Name: "Binjai", RegionID: ptr(1)},
		{ID: 3, Name: "Palembang", RegionID: ptr(2)},
	}
	clusters := []model.Cluster{
		{ID: 1, Name: "Medan Kota", BranchID: ptr(1)},
		{ID: 2, Name: "Medan Utara", BranchID: ptr(1)},
		{ID: 3, Name: "Binjai Timur", BranchID: ptr(2)},
		{ID: 4, Name: "Palembang Ilir", BranchID: ptr(3)},
	}
	for i := range areas {
		if err := db.FirstOrCreate(&areas[i], model.Area{ID: areas[i].ID}).Error; err != nil {
			return fmt.Errorf("seed area: %w", err)
		}
	}
	for i := range regions {
		if err := db.FirstOrCreate(&regions[i], model.Region{ID: regions[i].ID}).Error; err != nil {
			return fmt.Errorf("seed region: %w", err)
		}
	}
	for i := range branches {
		if err := db.FirstOrCreate(&branches[i], model.Branch{ID: branches[i].ID}).Error; err != nil {
			return fmt.Errorf("seed branch: %w", err)
		}
	}
	for i := range clusters {
		if err := db.FirstOrCreate(&clusters[i], model.Cluster{ID: clusters[i].ID}).Error; err != nil {
			return fmt.Errorf("seed cluster: %w", err)
		}
	}

	// satu hash untuk semua akun demo
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	pw := string(hashed)

	users := []model.User{
		{ID: 1001, Username: "admin.area", RoleID: model.RoleAreaAdmin, AreaID: ptr(1)},
		{ID: 2001, Username: "admin.sumbagut", RoleID: model.RoleRegionAdmin, RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 2002, Username: "admin.sumbagsel", RoleID: model.RoleRegionAdmin, RegionID: ptr(2), AreaID: ptr(1)},
		{ID: 3001, Username: "admin.medan", RoleID: model.RoleBranchAdmin, BranchID: ptr(1), RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 4001, Username: "admin.medankota", RoleID: model.RoleClusterAdmin, ClusterID: ptr(1), BranchID: ptr(1), RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 6001, Username: "mf.medankota", RoleID: model.RoleEndUser, ClusterID: ptr(1), BranchID: ptr(1), RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 6002, Username: "mf.medanutara", RoleID: model.RoleEndUser, ClusterID: ptr(2), BranchID: ptr(1), RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 6003, Username: "mf.binjaitimur", RoleID: model.RoleEndUser, ClusterID: ptr(3), BranchID: ptr(2), RegionID: ptr(1), AreaID: ptr(1)},
		{ID: 6004, Username: "mf.palembangilir", RoleID: model.RoleEndUser, ClusterID: ptr(4), BranchID: ptr(3), RegionID: ptr(2), AreaID: ptr(1)},
	}
	for i := range users {
		u := &users[i]
		u.Email = u.Username + "@example.com"
		u.Password = pw
		if err := db.FirstOrCreate(u, model.User{ID: u.ID}).Error; err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}
	log.Printf("[INFO] seeded %d users, password %q", len(users), DemoPassword)
	return nil
}
