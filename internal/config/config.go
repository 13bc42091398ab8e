package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	DatabaseDSN      string
	RedisAddr        string
	HTTPAddr         string
	GRPCAddr         string
	SessionTTL       time.Duration
	StrictStockCheck bool
	LogLevel         string
	DataStore        string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		RedisAddr:   fallback(os.Getenv("REDIS_ADDR"), "localhost:6379"),
		HTTPAddr:    fallback(os.Getenv("HTTP_ADDR"), ":8080"),
		GRPCAddr:    fallback(os.Getenv("GRPC_ADDR"), ":50051"),
		LogLevel:    fallback(os.Getenv("LOG_LEVEL"), "info"),
		DataStore:   strings.ToLower(fallback(os.Getenv("DATA_STORE"), StoreMySQL)),
	}

	minutes := fallback(os.Getenv("SESSION_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.SessionTTL = 60 * time.Minute
	}

	strict, err := strconv.ParseBool(fallback(os.Getenv("STRICT_STOCK_CHECK"), "false"))
	if err != nil {
		return Config{}, fmt.Errorf("STRICT_STOCK_CHECK: %w", err)
	}
	cfg.StrictStockCheck = strict

	switch cfg.DataStore {
	case StoreMySQL:
		if cfg.DatabaseDSN == "" {
			return Config{}, errors.New("DATABASE_DSN is required")
		}
		dsn, err := withParseTime(cfg.DatabaseDSN)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseDSN = dsn
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("DATA_STORE must be %q or %q, got %q", StoreMySQL, StoreMemory, cfg.DataStore)
	}

	return cfg, nil
}

// withParseTime forces parseTime so DATETIME columns scan into time.Time.
func withParseTime(dsn string) (string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("DATABASE_DSN: %w", err)
	}
	parsed.ParseTime = true
	return parsed.FormatDSN(), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
