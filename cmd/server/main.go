package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/retail/internal/adapter/handler"
	"github.com/rl1809/retail/internal/adapter/storage"
	"github.com/rl1809/retail/internal/config"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/logging"
	"github.com/rl1809/retail/internal/port"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db    port.DatabaseRepository
		cache port.CacheRepository
	)

	if cfg.DataStore == config.StoreMemory {
		mem := storage.NewMemoryAdapter()
		db, cache = mem, mem
		logger.Warn("using in-memory data store, nothing will be persisted")
	} else {
		// Initialize MySQL
		sqlDB, err := sql.Open("mysql", cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("failed to open mysql", zap.Error(err))
		}
		defer sqlDB.Close()
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)

		if err := sqlDB.PingContext(ctx); err != nil {
			logger.Fatal("failed to ping mysql", zap.Error(err))
		}
		mysqlAdapter := storage.NewMySQLAdapter(sqlDB)
		if err := mysqlAdapter.Migrate(ctx); err != nil {
			logger.Fatal("failed to migrate mysql", zap.Error(err))
		}
		logger.Info("connected to mysql")

		// Initialize Redis
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err), zap.String("addr", cfg.RedisAddr))
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

		db, cache = mysqlAdapter, storage.NewRedisAdapter(rdb, cfg.SessionTTL)
	}

	policy := service.QuantityPolicyLiteral
	if cfg.StrictStockCheck {
		policy = service.QuantityPolicyStrict
	}
	market := service.NewMarketplace(db,
		service.WithQuantityPolicy(policy),
		service.WithIdempotency(cache),
	)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterRetailServer(grpcServer, handler.NewGRPCHandler(market, cache, logger))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.Error(err), zap.String("addr", cfg.GRPCAddr))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(market, cache, logger)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpHandler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
