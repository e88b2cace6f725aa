package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"freight-backend/internal/auth"
	"freight-backend/internal/backup"
	"freight-backend/internal/cache"
	"freight-backend/internal/config"
	"freight-backend/internal/database"
	"freight-backend/internal/handlers"
	"freight-backend/internal/health"
	h "freight-backend/internal/http"
	"freight-backend/internal/metrics"
	"freight-backend/internal/middleware"
	"freight-backend/internal/monitoring"
	"freight-backend/internal/notify"
	"freight-backend/internal/remote"
	"freight-backend/internal/services"
	"freight-backend/internal/store"

	"github.com/redis/go-redis/v9"
)

// newStore builds the configured record store backend.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Storage.DataDir)
	case "memory":
		return store.NewMemStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis store unreachable: %w", err)
		}
		return store.NewRedisStore(client), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Record store is the one hard dependency
	recordStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	log.Printf("[Store] Using %s backend", cfg.Storage.Backend)

	// Redis cache is optional; every helper degrades to a miss without it
	if cfg.Redis.Addr != "" {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
			log.Printf("[Redis] Cache unavailable: %v", err)
		} else {
			log.Println("[Redis] Cache connected")
		}
	}

	// Postgres is optional; remote-table endpoints answer 503 without it
	ctx := context.Background()
	pool, err := remote.Connect(ctx, cfg)
	if err != nil {
		log.Printf("[Remote] Database unavailable, remote tables disabled: %v", err)
		pool = nil
	}
	if pool != nil {
		defer pool.Close()

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := database.NewMigrator(pool).RunMigrations(migrateCtx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		cancel()
	}

	hub := notify.NewHub()
	jwtManager := auth.NewJWTManager(cfg)

	// Services
	userService := services.NewUserService(recordStore, jwtManager, hub)
	shipmentService := services.NewShipmentService(recordStore, hub)
	tripService := services.NewTripService(recordStore, shipmentService, hub)
	expenseService := services.NewExpenseService(recordStore, hub)
	trashService := services.NewTrashService(recordStore, shipmentService, tripService)
	reportService := services.NewReportService(shipmentService, tripService, expenseService, hub)

	if err := userService.Bootstrap(); err != nil {
		log.Fatalf("Failed to bootstrap users: %v", err)
	}
	metrics.TrackRecords(recordStore, hub)

	// Remote table clients (nil pool leaves them disabled)
	var shippingRequests, warehouseItems *remote.RowClient
	if pool != nil {
		shippingRequests = remote.NewShippingRequestClient(pool)
		warehouseItems = remote.NewWarehouseItemClient(pool)
	}

	healthChecker := health.NewHealthChecker(recordStore, pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	shipmentHandler := handlers.NewShipmentHandler(shipmentService)
	tripHandler := handlers.NewTripHandler(tripService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	trashHandler := handlers.NewTrashHandler(trashService)
	reportHandler := handlers.NewReportHandler(reportService)
	shippingRequestHandler := handlers.NewRemoteHandler(shippingRequests)
	warehouseHandler := handlers.NewRemoteHandler(warehouseItems)
	healthHandler := handlers.NewHealthHandler(healthChecker)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := h.NewRouter(
		authHandler,
		userHandler,
		shipmentHandler,
		tripHandler,
		expenseHandler,
		trashHandler,
		reportHandler,
		shippingRequestHandler,
		warehouseHandler,
		healthHandler,
		authMiddleware,
		hub,
	)

	// Background workers
	if cfg.Monitoring.Enabled {
		go monitoring.NewServer(healthChecker, cfg.Monitoring.Port).Start()
	}
	if uploader, err := backup.NewUploader(ctx, cfg, recordStore); err != nil {
		log.Printf("[Backup] Disabled: %v", err)
	} else if uploader != nil {
		go uploader.Run(ctx)
	}

	handler := middleware.PanicRecovery(middleware.NewCORS(cfg)(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
