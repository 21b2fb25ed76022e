// One-shot sync trigger for cron jobs and manual operator runs.
//
//	sync -all                    fleet sync for every syncable customer
//	sync -customer 3             full five-stage sync for one customer
//	sync -customer 3 -entity movements -since 2026-08-01T00:00:00Z
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/config"
	"github.com/davebaumann/whoptix-saas-sub000/internal/database"
	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
	"github.com/davebaumann/whoptix-saas-sub000/internal/store"
	syncsvc "github.com/davebaumann/whoptix-saas-sub000/internal/sync"
)

func main() {
	all := flag.Bool("all", false, "sync every customer with credentials")
	customerID := flag.Uint("customer", 0, "sync a single customer id")
	entity := flag.String("entity", "", "sync one entity only: products, locations, inventory, movements, transactions")
	sinceFlag := flag.String("since", "", "RFC3339 window start for movements/transactions")
	flag.Parse()

	if !*all && *customerID == 0 {
		log.Fatal("Specify -all or -customer <id>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Customer{},
		&models.Product{},
		&models.Location{},
		&models.InventoryLevel{},
		&models.InventoryMovement{},
		&models.Transaction{},
	); err != nil {
		log.Printf("⚠️ Migration warning: %v", err)
	}

	service := syncsvc.NewService(
		store.NewGormStore(db),
		skuvault.NewClient(cfg.SkuVault.BaseURL),
		syncsvc.Config{
			Workers:         cfg.SkuVault.SyncWorkers,
			CustomerTimeout: time.Duration(cfg.SkuVault.CustomerTimeout) * time.Minute,
		},
	)

	ctx := context.Background()

	if *all {
		result, err := service.SyncAllCustomers(ctx)
		if err != nil {
			log.Fatalf("❌ Fleet sync failed: %v", err)
		}
		log.Printf("✅ Fleet sync done: %d ok, %d failed of %d", result.Succeeded, result.Failed, result.Total)
		return
	}

	var since *time.Time
	if *sinceFlag != "" {
		t, err := time.Parse(time.RFC3339, *sinceFlag)
		if err != nil {
			log.Fatalf("Invalid -since value: %v", err)
		}
		since = &t
	}

	id := uint(*customerID)
	switch *entity {
	case "":
		err = service.SyncCustomer(ctx, id)
	case "products":
		err = service.SyncProducts(ctx, id)
	case "locations":
		err = service.SyncLocations(ctx, id)
	case "inventory":
		err = service.SyncInventoryLevels(ctx, id)
	case "movements":
		err = service.SyncInventoryMovements(ctx, id, since)
	case "transactions":
		err = service.SyncTransactions(ctx, id, since)
	default:
		log.Fatalf("Unknown entity %q", *entity)
	}

	if err != nil {
		log.Fatalf("❌ Sync failed for customer %d: %v", id, err)
	}
	log.Printf("✅ Sync completed for customer %d", id)
}
