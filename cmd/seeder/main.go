package main

import (
	"log"

	"marketing-fee-backend/config"
	"marketing-fee-backend/internal/database"
)

func main() {
	log.Println("[INFO] memulai database seeding...")

	cfg := config.Load()
	db, err := config.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] koneksi database gagal: %v", err)
	}

	if err := database.SeedAll(db); err != nil {
		log.Fatalf("[ERROR] seeding gagal: %v", err)
	}
	log.Println("[INFO] seeding selesai")
}
