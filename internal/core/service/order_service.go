package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/geo"
	"github.com/rl1809/retail/internal/port"
)

// QuantityPolicy decides which requested unit counts are acceptable
// against the product's current stock.
type QuantityPolicy int

const (
	// QuantityPolicyLiteral rejects orders for fewer units than are in
	// stock. This is the historical behaviour of the marketplace.
	QuantityPolicyLiteral QuantityPolicy = iota

	// QuantityPolicyStrict rejects orders for more units than are in stock.
	QuantityPolicyStrict
)

func (p QuantityPolicy) accepts(stock, requested int) bool {
	if requested < 1 {
		return false
	}
	if p == QuantityPolicyStrict {
		return requested <= stock
	}
	return stock <= requested
}

type OrderRequest struct {
	StoreID     int64
	ProductName string
	Units       int

	// RequestID is optional. When set and a guard is configured, a second
	// order with the same id from the same user is rejected.
	RequestID string
}

type OrderOption func(*OrderService)

func WithQuantityPolicy(p QuantityPolicy) OrderOption {
	return func(s *OrderService) { s.policy = p }
}

func WithIdempotency(guard port.IdempotencyRepository) OrderOption {
	return func(s *OrderService) { s.guard = guard }
}

func WithOrderClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

type OrderService struct {
	catalog *Catalog
	orders  port.OrderRepository
	guard   port.IdempotencyRepository
	policy  QuantityPolicy
	now     func() time.Time
}

func NewOrderService(catalog *Catalog, orders port.OrderRepository, opts ...OrderOption) *OrderService {
	s := &OrderService{
		catalog: catalog,
		orders:  orders,
		policy:  QuantityPolicyLiteral,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder validates req against the session and live inventory and
// appends one order. Nothing is written unless every check passes.
func (s *OrderService) PlaceOrder(ctx context.Context, sess domain.Session, req OrderRequest) (domain.Order, error) {
	if err := Require(sess, domain.RoleCustomer); err != nil {
		return domain.Order{}, err
	}

	customer, err := s.catalog.FindUser(ctx, sess.Name)
	if err != nil {
		return domain.Order{}, err
	}
	if customer == nil {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrDataIntegrity, ErrUserNotFound)
	}

	store, err := s.catalog.FindStore(ctx, req.StoreID)
	if err != nil {
		return domain.Order{}, err
	}
	if store == nil {
		return domain.Order{}, fmt.Errorf("%w: store number %d does not exist", ErrStoreNotFound, req.StoreID)
	}

	if !geo.Within(customer.Location, store.Location, geo.ProximityThreshold) {
		return domain.Order{}, ErrStoreTooFar
	}

	product, err := s.catalog.FindProduct(ctx, req.StoreID, req.ProductName)
	if err != nil {
		return domain.Order{}, err
	}
	if product == nil {
		return domain.Order{}, fmt.Errorf("%w: %q is not sold at store %d", ErrProductNotFound, req.ProductName, req.StoreID)
	}

	if !s.policy.accepts(product.Units, req.Units) {
		return domain.Order{}, fmt.Errorf("%w: %d requested, %d in stock", ErrInvalidQuantity, req.Units, product.Units)
	}

	var key string
	if req.RequestID != "" && s.guard != nil {
		key = fmt.Sprintf("order:%d:%s", customer.ID, req.RequestID)
		ok, err := s.guard.SetIdempotency(ctx, key)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return domain.Order{}, ErrDuplicateRequest
		}
	}

	order := domain.Order{
		CustomerID:  customer.ID,
		StoreID:     req.StoreID,
		ProductName: req.ProductName,
		Units:       req.Units,
		OrderTime:   s.now(),
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		err = dataAccess("create order", err)
		// Nothing was written, so a retry with the same id must be allowed.
		if key != "" {
			if relErr := s.guard.ReleaseIdempotency(ctx, key); relErr != nil {
				err = fmt.Errorf("%w (release idempotency key: %v)", err, relErr)
			}
		}
		return domain.Order{}, err
	}
	return order, nil
}
