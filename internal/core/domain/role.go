package domain

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the access level of a session. Values are totally ordered.
type Role int

const (
	RoleNone Role = iota
	RoleCustomer
	RoleManager
	RoleAdmin
)

// ParseRole maps a stored role string to a Role. Surrounding blanks are
// ignored since fixed-width columns pad the value.
func ParseRole(s string) (Role, error) {
	switch strings.TrimSpace(s) {
	case "customer":
		return RoleCustomer, nil
	case "manager":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleNone, ErrUnknownRole
}

// MeetsMinimum reports whether r grants at least the required access.
func (r Role) MeetsMinimum(required Role) bool {
	return r >= required
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}
