package domain

import "time"

// ProductUpdate is the audit row written once per inventory change.
type ProductUpdate struct {
	ManagerID   int64     `json:"manager_id"`
	StoreID     int64     `json:"store_id"`
	ProductName string    `json:"product_name"`
	UpdatedOn   time.Time `json:"updated_on"`
}

type SupplyRequest struct {
	ManagerID   int64
	WarehouseID int64
	StoreID     int64
	ProductName string
	Units       int
}
