package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketing-fee-backend/config"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/middleware"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/routes"
	"marketing-fee-backend/internal/storage"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	log.Println("[INFO] memulai aplikasi...")
	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] koneksi database gagal: %v", err)
	}

	redisClient, err := config.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("[WARN] redis tidak tersedia, cache dimatikan: %v", err)
		redisClient = nil
	}

	svc := routes.NewServices(routes.Deps{
		DB:        db,
		Storage:   storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.URLPrefix),
		Cache:     cache.New(redisClient, cfg.CacheTTL),
		Periods:   period.NewResolver(cfg.Fallback, cfg.Location),
		Location:  cfg.Location,
		JWTSecret: cfg.JWTSecret,
		MaxUpload: cfg.Upload.MaxBytes,
	})

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler,
		// tambahan untuk overhead multipart di atas batas file bukti
		BodyLimit: int(cfg.Upload.MaxBytes) + 512*1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(middleware.RateLimiter(cfg.RatePerMin))
	app.Use(middleware.Timeout(10 * time.Second))

	app.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.Setup(app, svc)

	go func() {
		log.Printf("[INFO] server siap di port :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("[ERROR] server berhenti: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
