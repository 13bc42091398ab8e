package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

var errBoom = errors.New("boom")

type productKey struct {
	storeID int64
	name    string
}

// Mock DatabaseRepository
type mockDataStore struct {
	mu sync.Mutex

	users      map[string]domain.User
	userErr    error
	stores     map[int64]domain.Store
	warehouses map[int64]domain.Warehouse
	products   map[productKey]domain.Product

	orders         []domain.Order
	updates        []domain.ProductUpdate
	supply         []domain.SupplyRequest
	unitWrites     int
	priceWrites    int
	restockWrites  int
	createUserErr  error
	createOrderErr error
	lastReportCall string
	lastManagerID  int64
	lastLimit      int
}

func newMockDataStore() *mockDataStore {
	return &mockDataStore{
		users:      make(map[string]domain.User),
		stores:     make(map[int64]domain.Store),
		warehouses: make(map[int64]domain.Warehouse),
		products:   make(map[productKey]domain.Product),
	}
}

var _ port.DatabaseRepository = (*mockDataStore)(nil)

func (m *mockDataStore) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders) + len(m.updates) + len(m.supply) + m.unitWrites + m.priceWrites + m.restockWrites
}

func (m *mockDataStore) addUser(u domain.User) {
	m.users[u.Name] = u
}

func (m *mockDataStore) addProduct(p domain.Product) {
	m.products[productKey{p.StoreID, p.Name}] = p
}

func (m *mockDataStore) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createUserErr != nil {
		return 0, m.createUserErr
	}
	if _, ok := m.users[user.Name]; ok {
		return 0, port.ErrAlreadyExists
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.Name] = user
	return user.ID, nil
}

func (m *mockDataStore) FindUserByCredentials(ctx context.Context, name, credential string) (*domain.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	u, ok := m.users[name]
	if !ok || u.Credential != credential {
		return nil, nil
	}
	return &u, nil
}

func (m *mockDataStore) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	u, ok := m.users[name]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *mockDataStore) ListStores(ctx context.Context) ([]domain.Store, error) {
	var out []domain.Store
	for _, s := range m.stores {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockDataStore) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	s, ok := m.stores[storeID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockDataStore) GetWarehouse(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	w, ok := m.warehouses[warehouseID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *mockDataStore) GetProduct(ctx context.Context, storeID int64, productName string) (*domain.Product, error) {
	p, ok := m.products[productKey{storeID, productName}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockDataStore) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	var out []domain.Product
	for k, p := range m.products {
		if k.storeID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockDataStore) SetProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := productKey{storeID, productName}
	p := m.products[k]
	p.Units = units
	m.products[k] = p
	m.unitWrites++
	return nil
}

func (m *mockDataStore) SetProductPrice(ctx context.Context, storeID int64, productName string, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := productKey{storeID, productName}
	p := m.products[k]
	p.UnitPrice = price
	m.products[k] = p
	m.priceWrites++
	return nil
}

func (m *mockDataStore) AddProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := productKey{storeID, productName}
	p := m.products[k]
	p.Units += units
	m.products[k] = p
	m.restockWrites++
	return nil
}

func (m *mockDataStore) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockDataStore) CreateProductUpdate(ctx context.Context, update domain.ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, update)
	return nil
}

func (m *mockDataStore) CreateSupplyRequest(ctx context.Context, req domain.SupplyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.supply = append(m.supply, req)
	return nil
}

func (m *mockDataStore) CustomerOrders(ctx context.Context, customerID int64, limit int) ([]domain.OrderView, error) {
	m.lastReportCall, m.lastManagerID, m.lastLimit = "customer", customerID, limit
	return []domain.OrderView{{CustomerID: customerID}}, nil
}

func (m *mockDataStore) ManagedStoreOrders(ctx context.Context, managerID int64) ([]domain.OrderView, error) {
	m.lastReportCall, m.lastManagerID, m.lastLimit = "managed", managerID, 0
	return nil, nil
}

func (m *mockDataStore) PopularProducts(ctx context.Context, managerID int64, limit int) ([]domain.ProductPopularity, error) {
	m.lastReportCall, m.lastManagerID, m.lastLimit = "products", managerID, limit
	return nil, nil
}

func (m *mockDataStore) PopularCustomers(ctx context.Context, managerID int64, limit int) ([]domain.CustomerPopularity, error) {
	m.lastReportCall, m.lastManagerID, m.lastLimit = "customers", managerID, limit
	return nil, nil
}

func (m *mockDataStore) ProductUpdates(ctx context.Context, managerID int64, limit int) ([]domain.ProductUpdate, error) {
	m.lastReportCall, m.lastManagerID, m.lastLimit = "updates", managerID, limit
	return nil, m.userErr
}

// Mock IdempotencyRepository
type mockGuard struct {
	mu       sync.Mutex
	keys     map[string]bool
	released int
}

func (g *mockGuard) SetIdempotency(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys == nil {
		g.keys = make(map[string]bool)
	}
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *mockGuard) ReleaseIdempotency(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	g.released++
	return nil
}

// recordingSource counts how often the change was requested.
type recordingSource struct {
	change domain.ProductChange
	calls  int
}

func (r *recordingSource) ProductChange(context.Context) (domain.ProductChange, error) {
	r.calls++
	return r.change, nil
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
