package storage

import (
	"context"
	"fmt"

	"github.com/rl1809/retail/internal/core/domain"
)

const (
	queryCustomerOrders = `
		SELECT S.storeID, S.name, O.productName, O.unitsOrdered, O.orderTime
		FROM Store S
		JOIN Orders O ON S.storeID = O.storeID
		WHERE O.customerID = ?
		ORDER BY O.orderTime DESC
		LIMIT ?`

	queryManagedStoreOrders = `
		SELECT O.customerID, U.name, O.storeID, O.productName, O.unitsOrdered, O.orderTime
		FROM Users U
		JOIN Orders O ON U.userID = O.customerID
		JOIN Store S ON S.storeID = O.storeID
		WHERE S.managerID = ?
		ORDER BY O.orderTime DESC`

	queryPopularProducts = `
		SELECT O.productName, SUM(O.unitsOrdered) AS units
		FROM Orders O
		JOIN Store S ON S.storeID = O.storeID
		WHERE S.managerID = ?
		GROUP BY O.productName
		ORDER BY units DESC
		LIMIT ?`

	// Customers are ranked by the sum of their own id over matching orders.
	queryPopularCustomers = `
		SELECT U.userID, U.name, SUM(O.customerID) AS score
		FROM Users U
		JOIN Orders O ON U.userID = O.customerID
		JOIN Store S ON S.storeID = O.storeID
		WHERE S.managerID = ?
		GROUP BY U.userID, U.name
		ORDER BY score DESC
		LIMIT ?`

	queryManagedProductUpdates = `
		SELECT P.managerID, P.storeID, P.productName, P.updatedOn
		FROM ProductUpdates P
		JOIN Store S ON S.storeID = P.storeID
		WHERE S.managerID = ?
		ORDER BY P.updatedOn DESC
		LIMIT ?`

	queryAllProductUpdates = `
		SELECT P.managerID, P.storeID, P.productName, P.updatedOn
		FROM ProductUpdates P
		ORDER BY P.updatedOn DESC
		LIMIT ?`
)

func (m *MySQLAdapter) CustomerOrders(ctx context.Context, customerID int64, limit int) ([]domain.OrderView, error) {
	rows, err := m.db.QueryContext(ctx, queryCustomerOrders, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query customer orders: %w", err)
	}
	defer rows.Close()

	var out []domain.OrderView
	for rows.Next() {
		v := domain.OrderView{CustomerID: customerID}
		if err := rows.Scan(&v.StoreID, &v.StoreName, &v.ProductName, &v.Units, &v.OrderTime); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) ManagedStoreOrders(ctx context.Context, managerID int64) ([]domain.OrderView, error) {
	rows, err := m.db.QueryContext(ctx, queryManagedStoreOrders, managerID)
	if err != nil {
		return nil, fmt.Errorf("query store orders: %w", err)
	}
	defer rows.Close()

	var out []domain.OrderView
	for rows.Next() {
		var v domain.OrderView
		if err := rows.Scan(&v.CustomerID, &v.CustomerName, &v.StoreID, &v.ProductName, &v.Units, &v.OrderTime); err != nil {
			return nil, fmt.Errorf("scan store order: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) PopularProducts(ctx context.Context, managerID int64, limit int) ([]domain.ProductPopularity, error) {
	rows, err := m.db.QueryContext(ctx, queryPopularProducts, managerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular products: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductPopularity
	for rows.Next() {
		var p domain.ProductPopularity
		if err := rows.Scan(&p.ProductName, &p.Units); err != nil {
			return nil, fmt.Errorf("scan popular product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) PopularCustomers(ctx context.Context, managerID int64, limit int) ([]domain.CustomerPopularity, error) {
	rows, err := m.db.QueryContext(ctx, queryPopularCustomers, managerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular customers: %w", err)
	}
	defer rows.Close()

	var out []domain.CustomerPopularity
	for rows.Next() {
		var c domain.CustomerPopularity
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.Score); err != nil {
			return nil, fmt.Errorf("scan popular customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) ProductUpdates(ctx context.Context, managerID int64, limit int) ([]domain.ProductUpdate, error) {
	query, args := queryManagedProductUpdates, []any{managerID, limit}
	if managerID == 0 {
		query, args = queryAllProductUpdates, []any{limit}
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query product updates: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductUpdate
	for rows.Next() {
		var u domain.ProductUpdate
		if err := rows.Scan(&u.ManagerID, &u.StoreID, &u.ProductName, &u.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scan product update: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
