package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee-shop-api/internal/config"
	"coffee-shop-api/internal/database"
	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/messaging"
	"coffee-shop-api/internal/models"
	"coffee-shop-api/internal/server"
	"coffee-shop-api/internal/service"
	"coffee-shop-api/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("coffee-shop-api")
	requestID := logger.GenerateRequestID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", requestID, "Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", requestID, "Coffee shop API failed", err)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	menuStore, orderStore, cleanup, err := buildStores(ctx, cfg, log, requestID)
	if err != nil {
		return err
	}
	defer cleanup()

	publisher, err := buildPublisher(cfg, log, requestID)
	if err != nil {
		return err
	}

	svc := service.New(menuStore, orderStore, publisher, log)
	handler := server.NewHandler(svc, log, cfg.Auth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", requestID,
			fmt.Sprintf("Coffee shop API started on port %d", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

// buildStores wires the configured store backend. Memory is the reference
// backend and starts with the seed catalog; postgres is opt-in.
func buildStores(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) (store.MenuStore, store.OrderStore, func(), error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Info("db_connected", requestID, "Connected to PostgreSQL database")
		return store.NewPostgresMenuStore(db), store.NewPostgresOrderStore(db), db.Close, nil
	}

	menuStore := store.NewMemoryMenuStore()
	for _, item := range seedMenu() {
		if _, err := menuStore.Insert(ctx, item); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	return menuStore, store.NewMemoryOrderStore(), func() {}, nil
}

func buildPublisher(cfg *config.Config, log *logger.Logger, requestID string) (service.EventPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		return service.NopPublisher{}, nil
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging: %w", err)
	}
	log.Info("rabbitmq_connected", requestID, "Connected to RabbitMQ")
	return messaging.NewPublisher(conn, log), nil
}

// seedMenu is the starter catalog for the in-memory backend.
func seedMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			Name:        "Espresso",
			Description: "Strong coffee brewed by forcing hot water through finely-ground coffee beans",
			Price:       2.50,
			Size:        models.SizeSmall,
			ExtraItems:  []string{"Extra Shot", "Whipped Cream"},
			Modifiers: []models.Modifier{
				{Name: "Sugar", Options: []string{"None", "Low", "Medium", "High"}},
			},
		},
		{
			Name:        "Cappuccino",
			Description: "Coffee drink with espresso, hot milk, and steamed milk foam",
			Price:       3.50,
			Size:        models.SizeMedium,
			ExtraItems:  []string{"Extra Shot", "Soy Milk", "Cinnamon"},
			Modifiers: []models.Modifier{
				{Name: "Milk Type", Options: []string{"Whole Milk", "Skim Milk", "Soy Milk", "Almond Milk"}},
			},
		},
	}
}
