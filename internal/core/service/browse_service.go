package service

import (
	"context"
	"fmt"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/geo"
)

type BrowseService struct {
	catalog *Catalog
}

func NewBrowseService(catalog *Catalog) *BrowseService {
	return &BrowseService{catalog: catalog}
}

// NearbyStores lists the stores within the proximity threshold of the
// session's user.
func (s *BrowseService) NearbyStores(ctx context.Context, sess domain.Session) ([]domain.Store, error) {
	if err := Require(sess, domain.RoleCustomer); err != nil {
		return nil, err
	}

	loc, err := s.catalog.FindUserCoordinate(ctx, sess.Name)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: %w", ErrDataIntegrity, ErrUserNotFound)
	}

	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if geo.Within(*loc, st.Location, geo.ProximityThreshold) {
			nearby = append(nearby, st)
		}
	}
	return nearby, nil
}

// StoreProducts lists the products stocked by a store.
func (s *BrowseService) StoreProducts(ctx context.Context, sess domain.Session, storeID int64) ([]domain.Product, error) {
	if err := Require(sess, domain.RoleCustomer); err != nil {
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	store, err := s.catalog.FindStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: %d", ErrStoreNotFound, storeID)
	}
	return products, nil
}
