package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"customer":   RoleCustomer,
		"manager":    RoleManager,
		"admin":      RoleAdmin,
		"manager   ": RoleManager,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"vendor", "", "Customer"} {
		if _, err := ParseRole(in); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("ParseRole(%q) expected ErrUnknownRole, got %v", in, err)
		}
	}
}

func TestRoleMeetsMinimum(t *testing.T) {
	roles := []Role{RoleNone, RoleCustomer, RoleManager, RoleAdmin}
	for _, have := range roles {
		for _, need := range roles {
			want := int(have) >= int(need)
			if got := have.MeetsMinimum(need); got != want {
				t.Errorf("%v.MeetsMinimum(%v) = %v, want %v", have, need, got, want)
			}
		}
	}
}

func TestSessionZeroValueHasNoAccess(t *testing.T) {
	var s Session
	if s.Authenticated() {
		t.Error("zero session should not be authenticated")
	}
	if s.Role.MeetsMinimum(RoleCustomer) {
		t.Error("zero session should not meet customer access")
	}
}
