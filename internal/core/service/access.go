package service

import (
	"fmt"

	"github.com/rl1809/retail/internal/core/domain"
)

// Require is the single authorization check every business operation
// runs before touching the Data Store.
func Require(sess domain.Session, min domain.Role) error {
	if !sess.Role.MeetsMinimum(min) {
		return fmt.Errorf("%w: %s access required, have %s", ErrForbidden, min, sess.Role)
	}
	return nil
}
