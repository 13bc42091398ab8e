package service

import (
	"context"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

// Catalog is the read-only view of users, stores and products. A missing
// row is a nil result; Data Store failures come back as ErrDataAccess.
type Catalog struct {
	users    port.UserRepository
	stores   port.StoreRepository
	products port.ProductRepository
}

func NewCatalog(users port.UserRepository, stores port.StoreRepository, products port.ProductRepository) *Catalog {
	return &Catalog{users: users, stores: stores, products: products}
}

func (c *Catalog) FindUser(ctx context.Context, name string) (*domain.User, error) {
	user, err := c.users.FindUserByName(ctx, name)
	if err != nil {
		return nil, dataAccess("find user", err)
	}
	return user, nil
}

func (c *Catalog) FindUserCoordinate(ctx context.Context, name string) (*domain.Coordinate, error) {
	user, err := c.FindUser(ctx, name)
	if err != nil || user == nil {
		return nil, err
	}
	loc := user.Location
	return &loc, nil
}

func (c *Catalog) ListStores(ctx context.Context) ([]domain.Store, error) {
	stores, err := c.stores.ListStores(ctx)
	if err != nil {
		return nil, dataAccess("list stores", err)
	}
	return stores, nil
}

func (c *Catalog) FindStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	store, err := c.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, dataAccess("find store", err)
	}
	return store, nil
}

func (c *Catalog) FindWarehouse(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	wh, err := c.stores.GetWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, dataAccess("find warehouse", err)
	}
	return wh, nil
}

func (c *Catalog) FindProduct(ctx context.Context, storeID int64, productName string) (*domain.Product, error) {
	product, err := c.products.GetProduct(ctx, storeID, productName)
	if err != nil {
		return nil, dataAccess("find product", err)
	}
	return product, nil
}

func (c *Catalog) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	products, err := c.products.ListProducts(ctx, storeID)
	if err != nil {
		return nil, dataAccess("list products", err)
	}
	return products, nil
}
