package service

import (
	"github.com/rl1809/retail/internal/port"
)

// Marketplace bundles every service over one Data Store so transports and
// the shell wire them the same way.
type Marketplace struct {
	Auth      *AuthService
	Browse    *BrowseService
	Orders    *OrderService
	Inventory *InventoryService
	Reports   *ReportService
}

func NewMarketplace(db port.DatabaseRepository, opts ...OrderOption) *Marketplace {
	catalog := NewCatalog(db, db, db)
	return &Marketplace{
		Auth:      NewAuthService(db),
		Browse:    NewBrowseService(catalog),
		Orders:    NewOrderService(catalog, db, opts...),
		Inventory: NewInventoryService(catalog, db, db),
		Reports:   NewReportService(db),
	}
}
