package sync

import (
	"context"
	"fmt"
	"log"
	stdsync "sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
	"github.com/davebaumann/whoptix-saas-sub000/internal/store"
)

// Upstream is the contract the sync engine needs from the SkuVault client.
type Upstream interface {
	GetProducts(ctx context.Context, creds skuvault.Credentials) ([]skuvault.Product, error)
	GetLocations(ctx context.Context, creds skuvault.Credentials) ([]skuvault.Location, error)
	GetInventory(ctx context.Context, creds skuvault.Credentials) ([]skuvault.InventoryItem, error)
	GetInventoryMovements(ctx context.Context, creds skuvault.Credentials, from, to time.Time) ([]skuvault.Movement, error)
	GetTransactions(ctx context.Context, creds skuvault.Credentials, from, to time.Time) ([]skuvault.Transaction, error)
}

// Notifier receives per-stage progress events (dashboard websocket hub).
type Notifier interface {
	SyncEvent(customerID uint, stage, status string)
}

// Config holds sync scheduling settings
type Config struct {
	// Minutes between scheduled fleet runs; <= 0 disables the scheduler
	SyncInterval int
	// Max customers synced concurrently
	Workers int
	// Wall-clock budget for one customer's full sync
	CustomerTimeout time.Duration
}

// FleetResult summarizes one fleet run.
type FleetResult struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Errors    map[uint]string `json:"errors,omitempty"`
}

// Service orchestrates synchronization between SkuVault and the local store.
// Within one customer the five stages run strictly in order; across customers
// the fleet driver fans out over a bounded worker pool with per-customer
// failure isolation.
type Service struct {
	store    store.Store
	client   Upstream
	cfg      Config
	notifier Notifier

	now  func() time.Time
	stop chan struct{}
	kick chan struct{}

	mu       stdsync.Mutex
	running  bool
	lastRun  *time.Time
	lastInfo *FleetResult
}

// NewService creates a new synchronization service
func NewService(st store.Store, client Upstream, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.CustomerTimeout <= 0 {
		cfg.CustomerTimeout = 10 * time.Minute
	}
	return &Service{
		store:  st,
		client: client,
		cfg:    cfg,
		now:    time.Now,
		stop:   make(chan struct{}),
		kick:   make(chan struct{}, 1),
	}
}

// SetNotifier attaches a progress listener.
func (s *Service) SetNotifier(n Notifier) { s.notifier = n }

func (s *Service) notify(customerID uint, stage, status string) {
	if s.notifier != nil {
		s.notifier.SyncEvent(customerID, stage, status)
	}
}

// Start begins the background fleet sync loop. With no interval configured
// the ticker stays off but the loop still runs, so manual triggers keep
// working.
func (s *Service) Start() {
	go func() {
		log.Println("📡 SkuVault Sync Service started")

		// nil channel when the scheduler is disabled; select never fires
		var tick <-chan time.Time
		if s.cfg.SyncInterval > 0 {
			// Initial sync delay
			time.Sleep(5 * time.Second)
			s.runFleet()

			ticker := time.NewTicker(time.Duration(s.cfg.SyncInterval) * time.Minute)
			defer ticker.Stop()
			tick = ticker.C
		} else {
			log.Println("⚠️  SkuVault sync scheduler disabled: interval not configured, manual triggers only")
		}

		for {
			select {
			case <-tick:
				s.runFleet()
			case <-s.kick:
				s.runFleet()
			case <-s.stop:
				log.Println("🛑 SkuVault Sync Service stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *Service) Stop() {
	close(s.stop)
}

// RequestFleetSync schedules an immediate fleet run (manual trigger).
func (s *Service) RequestFleetSync() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Service) runFleet() {
	if _, err := s.SyncAllCustomers(context.Background()); err != nil {
		log.Printf("❌ Fleet sync aborted: %v", err)
	}
}

// Status is a snapshot of the scheduler state for the status endpoint.
type Status struct {
	Running   bool         `json:"running"`
	LastRun   *time.Time   `json:"lastRun,omitempty"`
	LastFleet *FleetResult `json:"lastFleet,omitempty"`
}

// GetStatus returns the current sync status.
func (s *Service) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Running: s.running, LastRun: s.lastRun, LastFleet: s.lastInfo}
}

// SyncAllCustomers runs a full sync for every customer whose tenant holds a
// tenant token. One customer's failure is logged and counted, never aborts
// the batch. The returned error covers only the customer enumeration itself.
func (s *Service) SyncAllCustomers(ctx context.Context) (FleetResult, error) {
	result := FleetResult{Errors: make(map[uint]string)}

	customers, err := s.store.ListSyncableCustomers(ctx)
	if err != nil {
		return result, fmt.Errorf("list syncable customers: %w", err)
	}
	result.Total = len(customers)

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	log.Printf("🔄 Fleet sync: starting for %d customers", len(customers))

	var mu stdsync.Mutex
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)

	for _, c := range customers {
		c := c
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.cfg.CustomerTimeout)
			defer cancel()

			if err := s.SyncCustomer(cctx, c.ID); err != nil {
				log.Printf("❌ Fleet sync: customer %d (%s) failed: %v", c.ID, c.Name, err)
				mu.Lock()
				result.Failed++
				result.Errors[c.ID] = err.Error()
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Succeeded++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	now := s.now().UTC()
	s.mu.Lock()
	s.running = false
	s.lastRun = &now
	s.lastInfo = &result
	s.mu.Unlock()

	log.Printf("✅ Fleet sync: completed (%d ok, %d failed)", result.Succeeded, result.Failed)
	return result, nil
}

// SyncCustomer runs all five stages for one customer, strictly sequential:
// products -> locations -> inventory levels -> movements -> transactions.
// LastSyncedAt is only updated when every stage succeeds; a stage error
// aborts the remaining stages.
func (s *Service) SyncCustomer(ctx context.Context, customerID uint) error {
	stages := []struct {
		name string
		run  func(context.Context, uint) error
	}{
		{"products", s.SyncProducts},
		{"locations", s.SyncLocations},
		{"inventory_levels", s.SyncInventoryLevels},
		{"movements", func(ctx context.Context, id uint) error {
			return s.SyncInventoryMovements(ctx, id, nil)
		}},
		{"transactions", func(ctx context.Context, id uint) error {
			return s.SyncTransactions(ctx, id, nil)
		}},
	}

	for _, stage := range stages {
		s.notify(customerID, stage.name, "started")
		if err := stage.run(ctx, customerID); err != nil {
			s.notify(customerID, stage.name, "failed")
			return fmt.Errorf("%s stage: %w", stage.name, err)
		}
		s.notify(customerID, stage.name, "completed")
	}

	if err := s.store.SetCustomerLastSynced(ctx, customerID, s.now().UTC()); err != nil {
		return fmt.Errorf("update last synced: %w", err)
	}
	s.notify(customerID, "all", "completed")
	return nil
}

// resolve re-reads the customer and its tenant from storage. Every stage
// calls this independently so a credential refresh between stages is picked
// up. Missing credentials make the stage a no-op with a warning, uniformly
// for all five stages; a customer lookup failure is an error.
func (s *Service) resolve(ctx context.Context, customerID uint, stage string) (*models.Customer, skuvault.Credentials, bool, error) {
	customer, err := s.store.GetCustomerWithTenant(ctx, customerID)
	if err != nil {
		return nil, skuvault.Credentials{}, false, err
	}

	if !customer.Tenant.HasCredentials() {
		log.Printf("⚠️  Sync (%s) skipped for customer %d: tenant credentials missing", stage, customerID)
		return customer, skuvault.Credentials{}, false, nil
	}

	creds := skuvault.Credentials{
		TenantToken: customer.Tenant.TenantToken,
		UserToken:   customer.Tenant.UserToken,
	}
	return customer, creds, true, nil
}

// fetchWindow computes the incremental [from, to] range for movement and
// transaction fetches: the explicit since parameter wins, then the
// customer's last sync, then a 7-day lookback.
func fetchWindow(since *time.Time, lastSyncedAt *time.Time, now time.Time) (time.Time, time.Time) {
	to := now.UTC()
	switch {
	case since != nil:
		return since.UTC(), to
	case lastSyncedAt != nil:
		return lastSyncedAt.UTC(), to
	default:
		return to.AddDate(0, 0, -7), to
	}
}
