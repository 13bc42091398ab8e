package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/port"
)

// Wire shapes shared by the HTTP and gRPC transports.

type StoreMessage struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ManagerID int64   `json:"manager_id"`
}

type ProductMessage struct {
	StoreID   int64   `json:"store_id"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderMessage struct {
	CustomerID  int64  `json:"customer_id"`
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
	OrderTime   string `json:"order_time"`
}

type UpdateMessage struct {
	ManagerID   int64  `json:"manager_id"`
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	UpdatedOn   string `json:"updated_on"`
}

type SessionMessage struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func toStoreMessages(stores []domain.Store) []StoreMessage {
	out := make([]StoreMessage, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreMessage{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			ManagerID: s.ManagerID,
		})
	}
	return out
}

func toProductMessages(products []domain.Product) []ProductMessage {
	out := make([]ProductMessage, 0, len(products))
	for _, p := range products {
		out = append(out, ProductMessage{StoreID: p.StoreID, Name: p.Name, Units: p.Units, UnitPrice: p.UnitPrice})
	}
	return out
}

func toOrderMessage(o domain.Order) OrderMessage {
	return OrderMessage{
		CustomerID:  o.CustomerID,
		StoreID:     o.StoreID,
		ProductName: o.ProductName,
		Units:       o.Units,
		OrderTime:   o.OrderTime.Format(timeLayout),
	}
}

func toUpdateMessages(updates []domain.ProductUpdate) []UpdateMessage {
	out := make([]UpdateMessage, 0, len(updates))
	for _, u := range updates {
		out = append(out, UpdateMessage{
			ManagerID:   u.ManagerID,
			StoreID:     u.StoreID,
			ProductName: u.ProductName,
			UpdatedOn:   u.UpdatedOn.Format(timeLayout),
		})
	}
	return out
}

func toSessionMessage(token string, sess domain.Session) SessionMessage {
	return SessionMessage{Token: token, UserID: sess.UserID, Name: sess.Name, Role: sess.Role.String()}
}

// resolveSession maps a bearer token to its session. A missing or unknown
// token yields the zero session, which services reject on their own.
func resolveSession(ctx context.Context, sessions port.SessionRepository, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, nil
	}
	sess, err := sessions.LoadSession(ctx, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return domain.Session{}, nil
	}
	return *sess, nil
}

type failure struct {
	status int
	code   codes.Code
	msg    string
}

// classify maps service errors to transport codes. Internal failures get
// a generic message; the caller logs the real error.
func classify(err error, sess domain.Session) failure {
	switch {
	case errors.Is(err, service.ErrForbidden) && !sess.Authenticated():
		return failure{http.StatusUnauthorized, codes.Unauthenticated, "login required"}
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotStoreOwner):
		return failure{http.StatusForbidden, codes.PermissionDenied, err.Error()}
	case errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrDataIntegrity):
		return failure{http.StatusNotFound, codes.NotFound, err.Error()}
	case errors.Is(err, service.ErrValidation):
		return failure{http.StatusBadRequest, codes.InvalidArgument, err.Error()}
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrStoreTooFar):
		return failure{http.StatusUnprocessableEntity, codes.FailedPrecondition, err.Error()}
	case errors.Is(err, service.ErrDuplicateRequest):
		return failure{http.StatusConflict, codes.AlreadyExists, "duplicate request"}
	default:
		return failure{http.StatusInternalServerError, codes.Internal, "internal error"}
	}
}
