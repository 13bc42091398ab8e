package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rl1809/retail/internal/adapter/storage"
	"github.com/rl1809/retail/internal/adapter/terminal"
	"github.com/rl1809/retail/internal/config"
	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/logging"
	"github.com/rl1809/retail/internal/port"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout belongs to the shell, so the logger only reports warnings.
	logger, err := logging.New("warn")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db port.DatabaseRepository
	if cfg.DataStore == config.StoreMemory {
		db = demoStore()
	} else {
		sqlDB, err := sql.Open("mysql", cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open mysql: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.PingContext(ctx); err != nil {
			logger.Error("data store unreachable", zap.Error(err))
			return fmt.Errorf("connect mysql: %w", err)
		}
		mysqlAdapter := storage.NewMySQLAdapter(sqlDB)
		if err := mysqlAdapter.Migrate(ctx); err != nil {
			return err
		}
		db = mysqlAdapter
	}

	policy := service.QuantityPolicyLiteral
	if cfg.StrictStockCheck {
		policy = service.QuantityPolicyStrict
	}
	market := service.NewMarketplace(db, service.WithQuantityPolicy(policy))

	shell := terminal.NewShell(market, terminal.NewConsole(os.Stdin, os.Stdout), os.Stdout, logger)
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// demoStore seeds a small marketplace for DATA_STORE=memory.
func demoStore() *storage.MemoryAdapter {
	mem := storage.NewMemoryAdapter()
	mem.SeedUser(domain.User{ID: 1, Name: "admin", Credential: "admin", Location: domain.Coordinate{Latitude: 50, Longitude: 50}, Role: domain.RoleAdmin})
	mem.SeedUser(domain.User{ID: 2, Name: "mia", Credential: "mia", Location: domain.Coordinate{Latitude: 20, Longitude: 20}, Role: domain.RoleManager})
	mem.SeedUser(domain.User{ID: 3, Name: "carl", Credential: "carl", Location: domain.Coordinate{Latitude: 10, Longitude: 10}, Role: domain.RoleCustomer})

	mem.SeedStore(domain.Store{ID: 1, Name: "Downtown", Location: domain.Coordinate{Latitude: 12, Longitude: 15}, ManagerID: 2})
	mem.SeedStore(domain.Store{ID: 2, Name: "Harbor", Location: domain.Coordinate{Latitude: 80, Longitude: 75}, ManagerID: 2})
	mem.SeedWarehouse(domain.Warehouse{ID: 1, Area: 12000, Location: domain.Coordinate{Latitude: 40, Longitude: 40}})

	for _, storeID := range []int64{1, 2} {
		mem.SeedProduct(domain.Product{StoreID: storeID, Name: "Apple", Units: 25, UnitPrice: 0.5})
		mem.SeedProduct(domain.Product{StoreID: storeID, Name: "Milk", Units: 10, UnitPrice: 2.99})
		mem.SeedProduct(domain.Product{StoreID: storeID, Name: "Bread", Units: 8, UnitPrice: 3.25})
	}
	return mem
}
