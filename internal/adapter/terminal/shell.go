package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/port"
)

const guestMenu = `
MAIN MENU
---------
1. Create user
2. Log in
9. < EXIT
`

const userMenu = `
MAIN MENU
---------
1. View Stores within 30 miles
2. View Product List
3. Place a Order
4. View 5 recent orders
5. Update Product
6. View 5 recent Product Updates Info
7. View 5 Popular Items
8. View 5 Popular Customers
9. Place Product Supply Request to Warehouse
.........................
20. Log out
`

// Shell runs the menu loop for one local user. The session lives here and
// is handed to every service call.
type Shell struct {
	market *service.Marketplace
	p      port.Prompter
	out    io.Writer
	logger *zap.Logger
	sess   domain.Session
}

func NewShell(market *service.Marketplace, p port.Prompter, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{market: market, p: p, out: out, logger: logger}
}

// Run loops until the user exits or input ends. Business errors are
// printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if s.sess.Authenticated() {
			err = s.userStep(ctx)
		} else {
			var done bool
			done, err = s.guestStep(ctx)
			if done {
				fmt.Fprintln(s.out, "Bye !")
				return nil
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) guestStep(ctx context.Context) (bool, error) {
	choice, err := readChoice(s.p, s.out, guestMenu)
	if err != nil {
		return false, err
	}
	switch choice {
	case 1:
		return false, s.createUser(ctx)
	case 2:
		return false, s.login(ctx)
	case 9:
		return true, nil
	default:
		fmt.Fprintln(s.out, "Unrecognized choice!")
		return false, nil
	}
}

func (s *Shell) userStep(ctx context.Context) error {
	choice, err := readChoice(s.p, s.out, userMenu)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return s.viewStores(ctx)
	case 2:
		return s.viewProducts(ctx)
	case 3:
		return s.placeOrder(ctx)
	case 4:
		return s.viewRecentOrders(ctx)
	case 5:
		return s.updateProduct(ctx)
	case 6:
		return s.viewRecentUpdates(ctx)
	case 7:
		return s.viewPopularProducts(ctx)
	case 8:
		return s.viewPopularCustomers(ctx)
	case 9:
		return s.requestSupply(ctx)
	case 20:
		s.sess = s.market.Auth.Logout(s.sess)
		fmt.Fprintln(s.out, "Logged out.")
		return nil
	default:
		fmt.Fprintln(s.out, "Unrecognized choice!")
		return nil
	}
}

func (s *Shell) createUser(ctx context.Context) error {
	name, err := s.p.Prompt("\tEnter name: ")
	if err != nil {
		return err
	}
	password, err := s.p.Prompt("\tEnter password: ")
	if err != nil {
		return err
	}
	lat, err := s.promptFloat("\tEnter latitude: ")
	if err != nil {
		return err
	}
	long, err := s.promptFloat("\tEnter longitude: ")
	if err != nil {
		return err
	}

	if _, err := s.market.Auth.Register(ctx, name, password, domain.Coordinate{Latitude: lat, Longitude: long}); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintln(s.out, "User successfully created!")
	return nil
}

func (s *Shell) login(ctx context.Context) error {
	name, err := s.p.Prompt("\tEnter name: ")
	if err != nil {
		return err
	}
	password, err := s.p.Prompt("\tEnter password: ")
	if err != nil {
		return err
	}

	sess, ok, err := s.market.Auth.Login(ctx, name, password)
	if err != nil {
		s.report(err)
		return nil
	}
	if !ok {
		fmt.Fprintln(s.out, "Invalid username or password.")
		return nil
	}
	s.sess = sess
	fmt.Fprintf(s.out, "Welcome %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func (s *Shell) viewStores(ctx context.Context) error {
	stores, err := s.market.Browse.NearbyStores(ctx, s.sess)
	if err != nil {
		s.report(err)
		return nil
	}

	fmt.Fprintln(s.out, "Stores Within 30 Miles:")
	tw := s.table("ID", "NAME", "LATITUDE", "LONGITUDE")
	for _, st := range stores {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\n", st.ID, st.Name, st.Location.Latitude, st.Location.Longitude)
	}
	return s.flush(tw, len(stores))
}

func (s *Shell) viewProducts(ctx context.Context) error {
	storeID, err := s.promptInt64("\tEnter store ID: ")
	if err != nil {
		return err
	}

	products, err := s.market.Browse.StoreProducts(ctx, s.sess, storeID)
	if err != nil {
		s.report(err)
		return nil
	}

	tw := s.table("PRODUCT", "UNITS", "PRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.Name, p.Units, p.UnitPrice)
	}
	return s.flush(tw, len(products))
}

func (s *Shell) placeOrder(ctx context.Context) error {
	storeID, err := s.promptInt64("\tEnter store ID: ")
	if err != nil {
		return err
	}
	product, err := s.p.Prompt("\tEnter product name: ")
	if err != nil {
		return err
	}
	units, err := s.promptInt("\tEnter number of units: ")
	if err != nil {
		return err
	}

	order, err := s.market.Orders.PlaceOrder(ctx, s.sess, service.OrderRequest{
		StoreID:     storeID,
		ProductName: strings.TrimSpace(product),
		Units:       units,
	})
	if err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "Order placed: %d x %s from store %d\n", order.Units, order.ProductName, order.StoreID)
	return nil
}

func (s *Shell) viewRecentOrders(ctx context.Context) error {
	orders, err := s.market.Reports.RecentOrders(ctx, s.sess)
	if err != nil {
		s.report(err)
		return nil
	}

	if s.sess.Role == domain.RoleCustomer {
		fmt.Fprintln(s.out, "***** Last 5 Orders *****")
		tw := s.table("STORE", "STORE NAME", "PRODUCT", "UNITS", "ORDER TIME")
		for _, o := range orders {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.StoreID, o.StoreName, o.ProductName, o.Units, o.OrderTime.Format(timeFormat))
		}
		return s.flush(tw, len(orders))
	}

	fmt.Fprintln(s.out, "***** Orders *****")
	tw := s.table("CUSTOMER", "NAME", "STORE", "PRODUCT", "UNITS", "ORDER TIME")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\n", o.CustomerID, o.CustomerName, o.StoreID, o.ProductName, o.Units, o.OrderTime.Format(timeFormat))
	}
	return s.flush(tw, len(orders))
}

func (s *Shell) updateProduct(ctx context.Context) error {
	if err := service.Require(s.sess, domain.RoleManager); err != nil {
		s.report(err)
		return nil
	}
	storeID, err := s.promptInt64("\tEnter store ID: ")
	if err != nil {
		return err
	}
	product, err := s.p.Prompt("\tEnter product name: ")
	if err != nil {
		return err
	}

	updated, err := s.market.Inventory.UpdateProduct(ctx, s.sess, storeID, strings.TrimSpace(product), NewFieldMenu(s.p, s.out))
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		s.report(err)
		return nil
	}
	if updated {
		fmt.Fprintln(s.out, "Product updated.")
	} else {
		fmt.Fprintln(s.out, "Nothing changed.")
	}
	return nil
}

func (s *Shell) viewRecentUpdates(ctx context.Context) error {
	updates, err := s.market.Reports.RecentUpdates(ctx, s.sess)
	if err != nil {
		s.report(err)
		return nil
	}

	fmt.Fprintln(s.out, "***** Recent Product Updates *****")
	tw := s.table("MANAGER", "STORE", "PRODUCT", "UPDATED ON")
	for _, u := range updates {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", u.ManagerID, u.StoreID, u.ProductName, u.UpdatedOn.Format(timeFormat))
	}
	return s.flush(tw, len(updates))
}

func (s *Shell) viewPopularProducts(ctx context.Context) error {
	rows, err := s.market.Reports.PopularProducts(ctx, s.sess)
	if err != nil {
		s.report(err)
		return nil
	}

	fmt.Fprintln(s.out, "***** Top 5 Popular Products *****")
	tw := s.table("PRODUCT", "UNITS ORDERED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", r.ProductName, r.Units)
	}
	return s.flush(tw, len(rows))
}

func (s *Shell) viewPopularCustomers(ctx context.Context) error {
	rows, err := s.market.Reports.PopularCustomers(ctx, s.sess)
	if err != nil {
		s.report(err)
		return nil
	}

	fmt.Fprintln(s.out, "***** Top 5 Customers *****")
	tw := s.table("CUSTOMER", "NAME", "SCORE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", r.CustomerID, r.Name, r.Score)
	}
	return s.flush(tw, len(rows))
}

func (s *Shell) requestSupply(ctx context.Context) error {
	if err := service.Require(s.sess, domain.RoleManager); err != nil {
		s.report(err)
		return nil
	}
	storeID, err := s.promptInt64("\tEnter store ID: ")
	if err != nil {
		return err
	}
	product, err := s.p.Prompt("\tEnter product name: ")
	if err != nil {
		return err
	}
	units, err := s.promptInt("\tEnter number of units needed: ")
	if err != nil {
		return err
	}
	warehouseID, err := s.promptInt64("\tEnter warehouse ID: ")
	if err != nil {
		return err
	}

	err = s.market.Inventory.RequestSupply(ctx, s.sess, domain.SupplyRequest{
		ManagerID:   s.sess.UserID,
		WarehouseID: warehouseID,
		StoreID:     storeID,
		ProductName: strings.TrimSpace(product),
		Units:       units,
	})
	if err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintln(s.out, "Supply request placed.")
	return nil
}

const timeFormat = "2006-01-02 15:04:05"

// report prints a failed operation. Only infrastructure failures are logged.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		fmt.Fprintln(s.out, "Error: FORBIDDEN")
	case errors.Is(err, service.ErrDataAccess), errors.Is(err, service.ErrDataIntegrity):
		s.logger.Error("operation failed", zap.Int64("user_id", s.sess.UserID), zap.Error(err))
		fmt.Fprintln(s.out, "Error: the data store could not complete the request")
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) table(headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func (s *Shell) flush(tw *tabwriter.Writer, n int) error {
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	fmt.Fprintf(s.out, "[%d Results]\n", n)
	return nil
}

func (s *Shell) promptInt(text string) (int, error) {
	for {
		line, err := s.p.Prompt(text)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Your input is invalid!")
			continue
		}
		return n, nil
	}
}

func (s *Shell) promptInt64(text string) (int64, error) {
	for {
		line, err := s.p.Prompt(text)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Your input is invalid!")
			continue
		}
		return n, nil
	}
}

func (s *Shell) promptFloat(text string) (float64, error) {
	for {
		line, err := s.p.Prompt(text)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			fmt.Fprintln(s.out, "Your input is invalid!")
			continue
		}
		return f, nil
	}
}
