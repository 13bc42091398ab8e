package handler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/port"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Session SessionMessage `json:"session"`
}

type LogoutRequest struct {
	Token string `json:"token"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type NearbyStoresRequest struct {
	Token string `json:"token"`
}

type NearbyStoresResponse struct {
	Stores []StoreMessage `json:"stores"`
}

type PlaceOrderRequest struct {
	Token       string `json:"token"`
	RequestID   string `json:"request_id"`
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}

type PlaceOrderResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   OrderMessage `json:"order"`
}

type UpdateProductRequest struct {
	Token       string   `json:"token"`
	StoreID     int64    `json:"store_id"`
	ProductName string   `json:"product_name"`
	Units       *int     `json:"units,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

type UpdateProductResponse struct {
	Updated bool `json:"updated"`
}

type RecentOrdersRequest struct {
	Token string `json:"token"`
}

type RecentOrdersResponse struct {
	Orders []domain.OrderView `json:"orders"`
}

var _ RetailServer = (*GRPCHandler)(nil)

type GRPCHandler struct {
	market   *service.Marketplace
	sessions port.SessionRepository
	logger   *zap.Logger
}

func NewGRPCHandler(market *service.Marketplace, sessions port.SessionRepository, logger *zap.Logger) *GRPCHandler {
	return &GRPCHandler{market: market, sessions: sessions, logger: logger}
}

func (h *GRPCHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	sess, ok, err := h.market.Auth.Login(ctx, req.Name, req.Password)
	if err != nil {
		return nil, h.toStatus("Login", err, domain.Session{})
	}
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid username or password")
	}

	token := uuid.NewString()
	if err := h.sessions.SaveSession(ctx, token, sess); err != nil {
		h.logger.Error("save session failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &LoginResponse{Session: toSessionMessage(token, sess)}, nil
}

func (h *GRPCHandler) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	if req.Token != "" {
		if err := h.sessions.DeleteSession(ctx, req.Token); err != nil {
			h.logger.Error("delete session failed", zap.Error(err))
			return nil, status.Error(codes.Internal, "internal error")
		}
	}
	return &LogoutResponse{Success: true}, nil
}

func (h *GRPCHandler) NearbyStores(ctx context.Context, req *NearbyStoresRequest) (*NearbyStoresResponse, error) {
	sess, err := h.session(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	stores, err := h.market.Browse.NearbyStores(ctx, sess)
	if err != nil {
		return nil, h.toStatus("NearbyStores", err, sess)
	}
	return &NearbyStoresResponse{Stores: toStoreMessages(stores)}, nil
}

func (h *GRPCHandler) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	sess, err := h.session(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	order, err := h.market.Orders.PlaceOrder(ctx, sess, service.OrderRequest{
		StoreID:     req.StoreID,
		ProductName: req.ProductName,
		Units:       req.Units,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return nil, h.toStatus("PlaceOrder", err, sess)
	}

	return &PlaceOrderResponse{
		Success: true,
		Message: "order placed successfully",
		Order:   toOrderMessage(order),
	}, nil
}

func (h *GRPCHandler) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	sess, err := h.session(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	change := port.StaticChange{Units: req.Units, UnitPrice: req.UnitPrice}
	updated, err := h.market.Inventory.UpdateProduct(ctx, sess, req.StoreID, req.ProductName, change)
	if err != nil {
		return nil, h.toStatus("UpdateProduct", err, sess)
	}
	return &UpdateProductResponse{Updated: updated}, nil
}

func (h *GRPCHandler) RecentOrders(ctx context.Context, req *RecentOrdersRequest) (*RecentOrdersResponse, error) {
	sess, err := h.session(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	orders, err := h.market.Reports.RecentOrders(ctx, sess)
	if err != nil {
		return nil, h.toStatus("RecentOrders", err, sess)
	}
	return &RecentOrdersResponse{Orders: orders}, nil
}

func (h *GRPCHandler) session(ctx context.Context, token string) (domain.Session, error) {
	sess, err := resolveSession(ctx, h.sessions, token)
	if err != nil {
		h.logger.Error("resolve session failed", zap.Error(err))
		return domain.Session{}, status.Error(codes.Internal, "internal error")
	}
	return sess, nil
}

func (h *GRPCHandler) toStatus(method string, err error, sess domain.Session) error {
	f := classify(err, sess)
	if f.code == codes.Internal {
		h.logger.Error("rpc failed", zap.String("method", method), zap.Int64("user_id", sess.UserID), zap.Error(err))
	}
	return status.Error(f.code, f.msg)
}
