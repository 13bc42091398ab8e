package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

type InventoryService struct {
	catalog  *Catalog
	products port.ProductRepository
	audit    port.AuditRepository
	now      func() time.Time
}

func NewInventoryService(catalog *Catalog, products port.ProductRepository, audit port.AuditRepository) *InventoryService {
	return &InventoryService{
		catalog:  catalog,
		products: products,
		audit:    audit,
		now:      time.Now,
	}
}

// SetClock replaces the audit timestamp source.
func (s *InventoryService) SetClock(now func() time.Time) {
	s.now = now
}

// UpdateProduct overwrites the fields chosen by src and records one audit
// row. The change is requested from src only after the store, ownership
// and product checks pass. It reports whether anything was written.
//
// The field updates and the audit insert are separate statements.
func (s *InventoryService) UpdateProduct(ctx context.Context, sess domain.Session, storeID int64, productName string, src port.ChangeSource) (bool, error) {
	if err := s.authorizeProduct(ctx, sess, storeID, productName); err != nil {
		return false, err
	}

	change, err := src.ProductChange(ctx)
	if err != nil {
		return false, err
	}
	if change.Units != nil && *change.Units < 0 {
		return false, fmt.Errorf("%w: unit count must not be negative", ErrValidation)
	}
	if change.UnitPrice != nil && *change.UnitPrice < 0 {
		return false, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	if change.Empty() {
		return false, nil
	}

	if change.Units != nil {
		if err := s.products.SetProductUnits(ctx, storeID, productName, *change.Units); err != nil {
			return false, dataAccess("update units", err)
		}
	}
	if change.UnitPrice != nil {
		if err := s.products.SetProductPrice(ctx, storeID, productName, *change.UnitPrice); err != nil {
			return false, dataAccess("update price", err)
		}
	}

	err = s.audit.CreateProductUpdate(ctx, domain.ProductUpdate{
		ManagerID:   sess.UserID,
		StoreID:     storeID,
		ProductName: productName,
		UpdatedOn:   s.now(),
	})
	if err != nil {
		return true, dataAccess("record product update", err)
	}
	return true, nil
}

// RequestSupply restocks a product from a warehouse and records the request.
func (s *InventoryService) RequestSupply(ctx context.Context, sess domain.Session, req domain.SupplyRequest) error {
	if err := s.authorizeProduct(ctx, sess, req.StoreID, req.ProductName); err != nil {
		return err
	}
	if req.Units < 1 {
		return fmt.Errorf("%w: at least one unit must be requested", ErrInvalidQuantity)
	}

	wh, err := s.catalog.FindWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: %d", ErrWarehouseNotFound, req.WarehouseID)
	}

	req.ManagerID = sess.UserID
	if err := s.products.AddProductUnits(ctx, req.StoreID, req.ProductName, req.Units); err != nil {
		return dataAccess("restock product", err)
	}
	if err := s.audit.CreateSupplyRequest(ctx, req); err != nil {
		return dataAccess("record supply request", err)
	}
	return nil
}

// authorizeProduct checks role, store existence, ownership and product
// existence in that order. Admins may act on any store.
func (s *InventoryService) authorizeProduct(ctx context.Context, sess domain.Session, storeID int64, productName string) error {
	if err := Require(sess, domain.RoleManager); err != nil {
		return err
	}

	store, err := s.catalog.FindStore(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: store number %d does not exist", ErrStoreNotFound, storeID)
	}

	if sess.Role == domain.RoleManager && store.ManagerID != sess.UserID {
		return fmt.Errorf("%w: store %d", ErrNotStoreOwner, storeID)
	}

	product, err := s.catalog.FindProduct(ctx, storeID, productName)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: %q is not sold at store %d", ErrProductNotFound, productName, storeID)
	}
	return nil
}
