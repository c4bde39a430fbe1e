// Package config loads process configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCatalogAddr = "localhost:50051"
	DefaultOrderAddr   = "localhost:50052"
)

// Database selects and locates a record store backend.
type Database struct {
	Driver string // sqlite, pgx or memory
	URL    string
}

// Telemetry toggles the OTel exporters.
type Telemetry struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

// CatalogService configures cmd/catalog-service.
type CatalogService struct {
	Port            string
	Database        Database
	RedisAddr       string
	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
	Telemetry       Telemetry
}

// OrderService configures cmd/order-service.
type OrderService struct {
	Port            string
	Database        Database
	CatalogAddr     string
	RPCTimeout      time.Duration
	ShutdownTimeout time.Duration
	Telemetry       Telemetry
}

// Gateway configures cmd/api-gateway.
type Gateway struct {
	HTTPAddr        string
	CatalogAddr     string
	OrderAddr       string
	RPCTimeout      time.Duration
	ShutdownTimeout time.Duration
	Telemetry       Telemetry
}

func LoadCatalogService() CatalogService {
	return CatalogService{
		Port:            GetEnv("PORT", "50051"),
		Database:        loadDatabase("./data/catalog.db"),
		RedisAddr:       GetEnv("REDIS_ADDR", ""),
		CacheTTL:        durationSeconds("CATALOG_CACHE_TTL_S", 300),
		ShutdownTimeout: durationSeconds("SHUTDOWN_TIMEOUT_S", 10),
		Telemetry:       loadTelemetry("catalog-service"),
	}
}

func LoadOrderService() OrderService {
	return OrderService{
		Port:            GetEnv("PORT", "50052"),
		Database:        loadDatabase("./data/orders.db"),
		CatalogAddr:     GetEnv("CATALOG_SERVICE_ADDR", DefaultCatalogAddr),
		RPCTimeout:      durationMillis("RPC_TIMEOUT_MS", 5000),
		ShutdownTimeout: durationSeconds("SHUTDOWN_TIMEOUT_S", 10),
		Telemetry:       loadTelemetry("order-service"),
	}
}

func LoadGateway() Gateway {
	return Gateway{
		HTTPAddr:        GetEnv("HTTP_ADDR", ":8080"),
		CatalogAddr:     GetEnv("CATALOG_SERVICE_ADDR", DefaultCatalogAddr),
		OrderAddr:       GetEnv("ORDER_SERVICE_ADDR", DefaultOrderAddr),
		RPCTimeout:      durationMillis("RPC_TIMEOUT_MS", 5000),
		ShutdownTimeout: durationSeconds("SHUTDOWN_TIMEOUT_S", 10),
		Telemetry:       loadTelemetry("api-gateway"),
	}
}

func loadDatabase(defaultPath string) Database {
	return Database{
		Driver: strings.ToLower(GetEnv("DATABASE_DRIVER", "sqlite")),
		URL:    GetEnv("DATABASE_URL", defaultPath),
	}
}

func loadTelemetry(service string) Telemetry {
	return Telemetry{
		Enabled:     boolEnv("OTEL_ENABLED", false),
		ServiceName: GetEnv("OTEL_SERVICE_NAME", service),
		Endpoint:    GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func durationMillis(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Millisecond
}

func durationSeconds(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}
