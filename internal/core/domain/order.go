package domain

import "time"

type Order struct {
	CustomerID  int64
	StoreID     int64
	ProductName string
	Units       int
	OrderTime   time.Time
}

// OrderView is an order row as shown in reports. Customer views carry the
// store name, manager views carry the customer name.
type OrderView struct {
	CustomerID   int64     `json:"customer_id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	StoreID      int64     `json:"store_id"`
	StoreName    string    `json:"store_name,omitempty"`
	ProductName  string    `json:"product_name"`
	Units        int       `json:"units"`
	OrderTime    time.Time `json:"order_time"`
}
