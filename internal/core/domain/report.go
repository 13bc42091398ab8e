package domain

type ProductPopularity struct {
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}

// CustomerPopularity ranks a customer by Score, the sum of the customer's
// id over their orders at the manager's stores.
type CustomerPopularity struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Score      int64  `json:"score"`
}
