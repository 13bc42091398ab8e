package port

import (
	"context"

	"github.com/rl1809/retail/internal/core/domain"
)

// Lookups return (nil, nil) when the row does not exist.

type UserRepository interface {
	// CreateUser inserts a user and returns its id
	CreateUser(ctx context.Context, user domain.User) (int64, error)

	// FindUserByCredentials matches name and credential exactly
	FindUserByCredentials(ctx context.Context, name, credential string) (*domain.User, error)

	// FindUserByName retrieves a user by display name
	FindUserByName(ctx context.Context, name string) (*domain.User, error)
}

type StoreRepository interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, storeID int64) (*domain.Store, error)
	GetWarehouse(ctx context.Context, warehouseID int64) (*domain.Warehouse, error)
}

type ProductRepository interface {
	GetProduct(ctx context.Context, storeID int64, productName string) (*domain.Product, error)
	ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error)

	// SetProductUnits overwrites the unit count of one product
	SetProductUnits(ctx context.Context, storeID int64, productName string, units int) error

	// SetProductPrice overwrites the unit price of one product
	SetProductPrice(ctx context.Context, storeID int64, productName string, price float64) error

	// AddProductUnits increases the unit count of one product
	AddProductUnits(ctx context.Context, storeID int64, productName string, units int) error
}

type OrderRepository interface {
	// CreateOrder appends an order row
	CreateOrder(ctx context.Context, order domain.Order) error
}

type AuditRepository interface {
	// CreateProductUpdate appends an inventory change audit row
	CreateProductUpdate(ctx context.Context, update domain.ProductUpdate) error

	// CreateSupplyRequest appends a warehouse supply request row
	CreateSupplyRequest(ctx context.Context, req domain.SupplyRequest) error
}

type ReportRepository interface {
	// CustomerOrders returns the customer's orders, newest first
	CustomerOrders(ctx context.Context, customerID int64, limit int) ([]domain.OrderView, error)

	// ManagedStoreOrders returns orders at stores managed by managerID, newest first
	ManagedStoreOrders(ctx context.Context, managerID int64) ([]domain.OrderView, error)

	// PopularProducts ranks products at managed stores by units ordered
	PopularProducts(ctx context.Context, managerID int64, limit int) ([]domain.ProductPopularity, error)

	// PopularCustomers ranks customers at managed stores
	PopularCustomers(ctx context.Context, managerID int64, limit int) ([]domain.CustomerPopularity, error)

	// ProductUpdates returns audit rows, newest first. A zero managerID means all stores.
	ProductUpdates(ctx context.Context, managerID int64, limit int) ([]domain.ProductUpdate, error)
}

// DatabaseRepository is the full Data Store surface.
type DatabaseRepository interface {
	UserRepository
	StoreRepository
	ProductRepository
	OrderRepository
	AuditRepository
	ReportRepository
}
