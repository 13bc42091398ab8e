package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rl1809/retail/internal/core/domain"
)

func TestRegister_CreatesCustomer(t *testing.T) {
	repo := newMockDataStore()
	svc := NewAuthService(repo)

	id, err := svc.Register(context.Background(), "alice", "pw", domain.Coordinate{Latitude: 10, Longitude: 20})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}
	if repo.users["alice"].Role != domain.RoleCustomer {
		t.Errorf("expected customer role, got %v", repo.users["alice"].Role)
	}
}

func TestRegister_Rejected(t *testing.T) {
	repo := newMockDataStore()
	svc := NewAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw", domain.Coordinate{}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice", "pw2", domain.Coordinate{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate: expected ErrValidation, got %v", err)
	}

	_, err = svc.Register(ctx, "", "pw", domain.Coordinate{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("empty name: expected ErrValidation, got %v", err)
	}

	_, err = svc.Register(ctx, "bob", "pw", domain.Coordinate{Latitude: 101})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("out of range: expected ErrValidation, got %v", err)
	}

	repo.createUserErr = errBoom
	_, err = svc.Register(ctx, "carol", "pw", domain.Coordinate{})
	if !errors.Is(err, ErrDataAccess) {
		t.Errorf("store failure: expected ErrDataAccess, got %v", err)
	}
}

func TestLogin_ManagerRole(t *testing.T) {
	repo := newMockDataStore()
	repo.addUser(domain.User{ID: 7, Name: "mia", Credential: "secret", Role: domain.RoleManager})
	svc := NewAuthService(repo)

	sess, ok, err := svc.Login(context.Background(), "mia", "secret")
	if err != nil || !ok {
		t.Fatalf("expected login, got ok=%v err=%v", ok, err)
	}
	if sess.Role != domain.RoleManager || sess.UserID != 7 || sess.Name != "mia" {
		t.Errorf("unexpected session %+v", sess)
	}

	if out := svc.Logout(sess); out.Authenticated() {
		t.Errorf("expected no access after logout, got %+v", out)
	}
}

func TestLogin_NoMatch(t *testing.T) {
	repo := newMockDataStore()
	repo.addUser(domain.User{ID: 7, Name: "mia", Credential: "secret", Role: domain.RoleManager})
	svc := NewAuthService(repo)

	sess, ok, err := svc.Login(context.Background(), "mia", "wrong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || sess.Authenticated() {
		t.Errorf("expected no session, got %+v", sess)
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	repo := newMockDataStore()
	repo.userErr = fmt.Errorf("user 3 type %q: %w", "vendor", domain.ErrUnknownRole)
	svc := NewAuthService(repo)

	sess, ok, err := svc.Login(context.Background(), "vince", "pw")
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("expected ErrDataIntegrity, got %v", err)
	}
	if ok || sess.Authenticated() {
		t.Errorf("expected no session, got %+v", sess)
	}
}
