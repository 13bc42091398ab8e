package service

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("invalid input")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrStoreTooFar      = errors.New("store too far away")
	ErrNotStoreOwner    = errors.New("not the manager of this store")
	ErrDataAccess       = errors.New("data store failure")
	ErrDataIntegrity    = errors.New("data integrity violation")
	ErrDuplicateRequest = errors.New("duplicate request")
)

var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrStoreNotFound     = fmt.Errorf("store %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrWarehouseNotFound = fmt.Errorf("warehouse %w", ErrNotFound)
)

func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataAccess, op, err)
}
