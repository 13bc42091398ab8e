package storage

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

var (
	_ port.DatabaseRepository = (*MemoryAdapter)(nil)
	_ port.CacheRepository    = (*MemoryAdapter)(nil)
)

type productKey struct {
	storeID int64
	name    string
}

// MemoryAdapter keeps the whole marketplace in process memory. It backs
// demos and transport tests; nothing survives a restart.
type MemoryAdapter struct {
	mu sync.RWMutex

	users      []domain.User
	stores     map[int64]domain.Store
	warehouses map[int64]domain.Warehouse
	products   map[productKey]domain.Product
	orders     []domain.Order
	updates    []domain.ProductUpdate
	supply     []domain.SupplyRequest

	sessions    map[string]domain.Session
	idempotency map[string]struct{}
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		stores:      make(map[int64]domain.Store),
		warehouses:  make(map[int64]domain.Warehouse),
		products:    make(map[productKey]domain.Product),
		sessions:    make(map[string]domain.Session),
		idempotency: make(map[string]struct{}),
	}
}

// Seed methods load fixtures directly, bypassing validation.

func (m *MemoryAdapter) SeedUser(u domain.User) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = int64(len(m.users) + 1)
	}
	m.users = append(m.users, u)
	return u.ID
}

func (m *MemoryAdapter) SeedStore(s domain.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[s.ID] = s
}

func (m *MemoryAdapter) SeedWarehouse(w domain.Warehouse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warehouses[w.ID] = w
}

func (m *MemoryAdapter) SeedProduct(p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[productKey{p.StoreID, p.Name}] = p
}

// Orders returns a copy of every order appended so far.
func (m *MemoryAdapter) Orders() []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Order(nil), m.orders...)
}

func (m *MemoryAdapter) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == user.Name {
			return 0, port.ErrAlreadyExists
		}
	}
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, user)
	return user.ID, nil
}

func (m *MemoryAdapter) FindUserByCredentials(ctx context.Context, name, credential string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Name == name && u.Credential == credential {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryAdapter) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryAdapter) userName(id int64) string {
	for _, u := range m.users {
		if u.ID == id {
			return u.Name
		}
	}
	return ""
}

func (m *MemoryAdapter) ListStores(ctx context.Context) ([]domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryAdapter) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stores[storeID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryAdapter) GetWarehouse(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.warehouses[warehouseID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *MemoryAdapter) GetProduct(ctx context.Context, storeID int64, productName string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[productKey{storeID, productName}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryAdapter) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for k, p := range m.products {
		if k.storeID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryAdapter) updateProduct(storeID int64, productName string, fn func(*domain.Product)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := productKey{storeID, productName}
	p, ok := m.products[k]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&p)
	m.products[k] = p
	return nil
}

func (m *MemoryAdapter) SetProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	return m.updateProduct(storeID, productName, func(p *domain.Product) { p.Units = units })
}

func (m *MemoryAdapter) SetProductPrice(ctx context.Context, storeID int64, productName string, price float64) error {
	return m.updateProduct(storeID, productName, func(p *domain.Product) { p.UnitPrice = price })
}

func (m *MemoryAdapter) AddProductUnits(ctx context.Context, storeID int64, productName string, units int) error {
	return m.updateProduct(storeID, productName, func(p *domain.Product) { p.Units += units })
}

func (m *MemoryAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return nil
}

func (m *MemoryAdapter) CreateProductUpdate(ctx context.Context, update domain.ProductUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, update)
	return nil
}

func (m *MemoryAdapter) CreateSupplyRequest(ctx context.Context, req domain.SupplyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.supply = append(m.supply, req)
	return nil
}

func (m *MemoryAdapter) CustomerOrders(ctx context.Context, customerID int64, limit int) ([]domain.OrderView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.OrderView
	for i := len(m.orders) - 1; i >= 0 && len(out) < limit; i-- {
		o := m.orders[i]
		if o.CustomerID != customerID {
			continue
		}
		out = append(out, domain.OrderView{
			CustomerID:  o.CustomerID,
			StoreID:     o.StoreID,
			StoreName:   m.stores[o.StoreID].Name,
			ProductName: o.ProductName,
			Units:       o.Units,
			OrderTime:   o.OrderTime,
		})
	}
	return out, nil
}

func (m *MemoryAdapter) ManagedStoreOrders(ctx context.Context, managerID int64) ([]domain.OrderView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.OrderView
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if m.stores[o.StoreID].ManagerID != managerID {
			continue
		}
		out = append(out, domain.OrderView{
			CustomerID:   o.CustomerID,
			CustomerName: m.userName(o.CustomerID),
			StoreID:      o.StoreID,
			ProductName:  o.ProductName,
			Units:        o.Units,
			OrderTime:    o.OrderTime,
		})
	}
	return out, nil
}

func (m *MemoryAdapter) PopularProducts(ctx context.Context, managerID int64, limit int) ([]domain.ProductPopularity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := make(map[string]int)
	for _, o := range m.orders {
		if m.stores[o.StoreID].ManagerID == managerID {
			totals[o.ProductName] += o.Units
		}
	}

	out := make([]domain.ProductPopularity, 0, len(totals))
	for name, units := range totals {
		out = append(out, domain.ProductPopularity{ProductName: name, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryAdapter) PopularCustomers(ctx context.Context, managerID int64, limit int) ([]domain.CustomerPopularity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	scores := make(map[int64]int64)
	for _, o := range m.orders {
		if m.stores[o.StoreID].ManagerID == managerID {
			scores[o.CustomerID] += o.CustomerID
		}
	}

	out := make([]domain.CustomerPopularity, 0, len(scores))
	for id, score := range scores {
		out = append(out, domain.CustomerPopularity{CustomerID: id, Name: m.userName(id), Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryAdapter) ProductUpdates(ctx context.Context, managerID int64, limit int) ([]domain.ProductUpdate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ProductUpdate
	for i := len(m.updates) - 1; i >= 0 && len(out) < limit; i-- {
		u := m.updates[i]
		if managerID != 0 && m.stores[u.StoreID].ManagerID != managerID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *MemoryAdapter) SaveSession(ctx context.Context, token string, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session
	return nil
}

func (m *MemoryAdapter) LoadSession(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryAdapter) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.idempotency[key]; ok {
		return false, nil
	}
	m.idempotency[key] = struct{}{}
	return true, nil
}

func (m *MemoryAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.idempotency, key)
	return nil
}
