package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/config"
	"github.com/davebaumann/whoptix-saas-sub000/internal/database"
	"github.com/davebaumann/whoptix-saas-sub000/internal/handlers"
	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
	"github.com/davebaumann/whoptix-saas-sub000/internal/store"
	syncsvc "github.com/davebaumann/whoptix-saas-sub000/internal/sync"
	"github.com/davebaumann/whoptix-saas-sub000/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Tenant{},
		&models.Customer{},
		&models.Product{},
		&models.Location{},
		&models.InventoryLevel{},
		&models.InventoryMovement{},
		&models.Transaction{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire services
	st := store.NewGormStore(db)
	svClient := skuvault.NewClient(cfg.SkuVault.BaseURL)

	syncService := syncsvc.NewService(st, svClient, syncsvc.Config{
		SyncInterval:    cfg.SkuVault.SyncInterval,
		Workers:         cfg.SkuVault.SyncWorkers,
		CustomerTimeout: time.Duration(cfg.SkuVault.CustomerTimeout) * time.Minute,
	})

	hub := websocket.NewHub()
	go hub.Run()
	syncService.SetNotifier(hub)

	syncService.Start()

	// 5. Set up HTTP router
	router := handlers.NewRouter(db, cfg, syncService, svClient, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 6. Start server with graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	syncService.Stop()

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
