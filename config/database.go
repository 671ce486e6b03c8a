package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketing-fee-backend/internal/model"
)

func dialector(cfg DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		// user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.New(postgres.Config{DSN: cfg.DSN, PreferSimpleProtocol: true}), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("DB_DRIVER %q tidak didukung", cfg.Driver)
}

// ConnectDB membuka koneksi database, mengatur pool dan migrasi semua model.
func ConnectDB(cfg DBConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: NewGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("koneksi database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Printf("[INFO] Koneksi database (%s) berhasil", cfg.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Area{},
		&model.Region{},
		&model.Branch{},
		&model.Cluster{},
		&model.Role{},
		&model.Poin{},
		&model.User{},
		&model.Report{},
		&model.MarketingFee{},
		&model.Recommendation{},
	)
}
