package service

import (
	"context"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

const (
	recentOrderLimit   = 5
	popularityLimit    = 5
	recentUpdatesLimit = 5
)

type ReportService struct {
	reports port.ReportRepository
}

func NewReportService(reports port.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// RecentOrders returns the customer's last orders, or for managers and
// admins every order at the stores whose manager id equals theirs.
func (s *ReportService) RecentOrders(ctx context.Context, sess domain.Session) ([]domain.OrderView, error) {
	if err := Require(sess, domain.RoleCustomer); err != nil {
		return nil, err
	}

	var (
		orders []domain.OrderView
		err    error
	)
	if sess.Role == domain.RoleCustomer {
		orders, err = s.reports.CustomerOrders(ctx, sess.UserID, recentOrderLimit)
	} else {
		orders, err = s.reports.ManagedStoreOrders(ctx, sess.UserID)
	}
	if err != nil {
		return nil, dataAccess("recent orders", err)
	}
	return orders, nil
}

func (s *ReportService) PopularProducts(ctx context.Context, sess domain.Session) ([]domain.ProductPopularity, error) {
	if err := Require(sess, domain.RoleManager); err != nil {
		return nil, err
	}
	rows, err := s.reports.PopularProducts(ctx, sess.UserID, popularityLimit)
	if err != nil {
		return nil, dataAccess("popular products", err)
	}
	return rows, nil
}

func (s *ReportService) PopularCustomers(ctx context.Context, sess domain.Session) ([]domain.CustomerPopularity, error) {
	if err := Require(sess, domain.RoleManager); err != nil {
		return nil, err
	}
	rows, err := s.reports.PopularCustomers(ctx, sess.UserID, popularityLimit)
	if err != nil {
		return nil, dataAccess("popular customers", err)
	}
	return rows, nil
}

// RecentUpdates lists the latest audit rows for the manager's stores.
// Admins see every store.
func (s *ReportService) RecentUpdates(ctx context.Context, sess domain.Session) ([]domain.ProductUpdate, error) {
	if err := Require(sess, domain.RoleManager); err != nil {
		return nil, err
	}
	managerID := sess.UserID
	if sess.Role == domain.RoleAdmin {
		managerID = 0
	}
	rows, err := s.reports.ProductUpdates(ctx, managerID, recentUpdatesLimit)
	if err != nil {
		return nil, dataAccess("recent product updates", err)
	}
	return rows, nil
}
