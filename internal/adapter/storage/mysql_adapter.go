package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

const mysqlDuplicateEntry = 1062

const (
	queryInsertUser = `
		INSERT INTO Users (name, password, latitude, longitude, type)
		VALUES (?, ?, ?, ?, ?)`

	queryUserByCredentials = `
		SELECT userID, name, password, latitude, longitude, type
		FROM Users WHERE name = ? AND password = ?
		LIMIT 1`

	queryUserByName = `
		SELECT userID, name, password, latitude, longitude, type
		FROM Users WHERE name = ?
		LIMIT 1`

	queryListStores = `
		SELECT storeID, name, latitude, longitude, managerID
		FROM Store ORDER BY storeID`

	queryStore = `
		SELECT storeID, name, latitude, longitude, managerID
		FROM Store WHERE storeID = ?`

	queryWarehouse = `
		SELECT WarehouseID, area, latitude, longitude
		FROM Warehouse WHERE WarehouseID = ?`

	queryProduct = `
		SELECT storeID, productName, numberOfUnits, pricePerUnit
		FROM Product WHERE storeID = ? AND productName = ?`

	queryListProducts = `
		SELECT storeID, productName, numberOfUnits, pricePerUnit
		FROM Product WHERE storeID = ? ORDER BY productName`

	queryUpdateUnits = `
		UPDATE Product SET numberOfUnits = ?
		WHERE storeID = ? AND productName = ?`

	queryUpdatePrice = `
		UPDATE Product SET pricePerUnit = ?
		WHERE storeID = ? AND productName = ?`

	queryAddUnits = `
		UPDATE Product SET numberOfUnits = numberOfUnits + ?
		WHERE storeID = ? AND productName = ?`

	queryInsertOrder = `
		INSERT INTO Orders (customerID, storeID, productName, unitsOrdered, orderTime)
		VALUES (?, ?, ?, ?, ?)`

	queryInsertProductUpdate = `
		INSERT INTO ProductUpdates (managerID, storeID, productName, updatedOn)
		VALUES (?, ?, ?, ?)`

	queryInsertSupplyRequest = `
		INSERT INTO ProductSupplyRequests (managerID, warehouseID, storeID, productName, unitsRequested)
		VALUES (?, ?, ?, ?, ?)`
)

var _ port.DatabaseRepository = (*MySQLAdapter)(nil)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	result, err := m.db.ExecContext(ctx, queryInsertUser,
		user.Name, user.Credential, user.Location.Latitude, user.Location.Longitude, user.Role.String(),
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return 0, port.ErrAlreadyExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user id: %w", err)
	}
	return id, nil
}

func (m *MySQLAdapter) FindUserByCredentials(ctx context.Context, name, credential string) (*domain.User, error) {
	return m.findUser(ctx, queryUserByCredentials, name, credential)
}

func (m *MySQLAdapter) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	return m.findUser(ctx, queryUserByName, name)
}

func (m *MySQLAdapter) findUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var (
		user     domain.User
		roleName string
	)
	err := m.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Name, &user.Credential, &user.Location.Latitude, &user.Location.Longitude, &roleName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	user.Role, err = domain.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("user %d type %q: %w", user.ID, roleName, err)
	}
	return &user, nil
}

func scanStore(row rowScanner) (domain.Store, error) {
	var s domain.Store
	err := row.Scan(&s.ID, &s.Name, &s.Location.Latitude, &s.Location.Longitude, &s.ManagerID)
	return s, err
}

func (m *MySQLAdapter) ListStores(ctx context.Context) ([]domain.Store, error) {
	rows, err := m.db.QueryContext(ctx, queryListStores)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (m *MySQLAdapter) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	s, err := scanStore(m.db.QueryRowContext(ctx, queryStore, storeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}
	return &s, nil
}

func (m *MySQLAdapter) GetWarehouse(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	var wh domain.Warehouse
	err := m.db.QueryRowContext(ctx, queryWarehouse, warehouseID).Scan(
		&wh.ID, &wh.Area, &wh.Location.Latitude, &wh.Location.Longitude,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query warehouse: %w", err)
	}
	return &wh, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.StoreID, &p.Name, &p.Units, &p.UnitPrice)
	return p, err
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, storeID int64, productName string) (*domain.Product, error) {
	p, err := scanProduct(m.db.QueryRowContext(ctx, queryProduct, storeID, productName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, queryListProducts, storeID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) SetProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	if _, err := m.db.ExecContext(ctx, queryUpdateUnits, units, storeID, productName); err != nil {
		return fmt.Errorf("update units: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) SetProductPrice(ctx context.Context, storeID int64, productName string, price float64) error {
	if _, err := m.db.ExecContext(ctx, queryUpdatePrice, price, storeID, productName); err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) AddProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	result, err := m.db.ExecContext(ctx, queryAddUnits, units, storeID, productName)
	if err != nil {
		return fmt.Errorf("restock product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("restock product rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("restock product: %w", sql.ErrNoRows)
	}
	return nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	_, err := m.db.ExecContext(ctx, queryInsertOrder,
		order.CustomerID, order.StoreID, order.ProductName, order.Units, order.OrderTime,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) CreateProductUpdate(ctx context.Context, update domain.ProductUpdate) error {
	_, err := m.db.ExecContext(ctx, queryInsertProductUpdate,
		update.ManagerID, update.StoreID, update.ProductName, update.UpdatedOn,
	)
	if err != nil {
		return fmt.Errorf("insert product update: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) CreateSupplyRequest(ctx context.Context, req domain.SupplyRequest) error {
	_, err := m.db.ExecContext(ctx, queryInsertSupplyRequest,
		req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.Units,
	)
	if err != nil {
		return fmt.Errorf("insert supply request: %w", err)
	}
	return nil
}
