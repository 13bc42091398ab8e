package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
	"github.com/rl1809/retail/internal/port"
)

type HTTPHandler struct {
	market   *service.Marketplace
	sessions port.SessionRepository
	logger   *zap.Logger
}

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type registerHTTPRequest struct {
	Name      string  `json:"name"`
	Password  string  `json:"password"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type loginHTTPRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type orderHTTPRequest struct {
	RequestID   string `json:"request_id"`
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}

type productChangeHTTPRequest struct {
	Units     *int     `json:"units"`
	UnitPrice *float64 `json:"unit_price"`
}

type supplyHTTPRequest struct {
	WarehouseID int64  `json:"warehouse_id"`
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}

func NewHTTPHandler(market *service.Marketplace, sessions port.SessionRepository, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{market: market, sessions: sessions, logger: logger}
}

// Routes returns the router serving every HTTP endpoint.
func (h *HTTPHandler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.Logout).Methods(http.MethodDelete)

	api.HandleFunc("/stores/nearby", h.NearbyStores).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeID:[0-9]+}/products", h.StoreProducts).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeID:[0-9]+}/products/{productName}", h.UpdateProduct).Methods(http.MethodPatch)

	api.HandleFunc("/orders", h.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/recent", h.RecentOrders).Methods(http.MethodGet)
	api.HandleFunc("/supply-requests", h.RequestSupply).Methods(http.MethodPost)

	api.HandleFunc("/reports/popular-products", h.PopularProducts).Methods(http.MethodGet)
	api.HandleFunc("/reports/popular-customers", h.PopularCustomers).Methods(http.MethodGet)
	api.HandleFunc("/reports/product-updates", h.ProductUpdates).Methods(http.MethodGet)

	return r
}

func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.market.Auth.Register(r.Context(), req.Name, req.Password, domain.Coordinate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.writeError(w, r, err, domain.Session{})
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: "user created",
		Data:    map[string]int64{"id": id},
	})
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok, err := h.market.Auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		h.writeError(w, r, err, domain.Session{})
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, APIResponse{Success: false, Message: "invalid username or password"})
		return
	}

	token := uuid.NewString()
	if err := h.sessions.SaveSession(r.Context(), token, sess); err != nil {
		h.logger.Error("save session failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "internal error"})
		return
	}

	h.logger.Info("user logged in", zap.Int64("user_id", sess.UserID), zap.String("role", sess.Role.String()))
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: toSessionMessage(token, sess)})
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.sessions.DeleteSession(r.Context(), token); err != nil {
			h.logger.Error("delete session failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "internal error"})
			return
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "logged out"})
}

func (h *HTTPHandler) NearbyStores(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	stores, err := h.market.Browse.NearbyStores(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: toStoreMessages(stores)})
}

func (h *HTTPHandler) StoreProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid store id"})
		return
	}

	products, err := h.market.Browse.StoreProducts(r.Context(), sess, storeID)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: toProductMessages(products)})
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid store id"})
		return
	}

	var req productChangeHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	change := port.StaticChange{Units: req.Units, UnitPrice: req.UnitPrice}
	updated, err := h.market.Inventory.UpdateProduct(r.Context(), sess, storeID, vars["productName"], change)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}

	msg := "nothing to update"
	if updated {
		msg = "product updated"
		h.logger.Info("product updated",
			zap.Int64("manager_id", sess.UserID),
			zap.Int64("store_id", storeID),
			zap.String("product", vars["productName"]),
		)
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: msg, Data: map[string]bool{"updated": updated}})
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req orderHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.market.Orders.PlaceOrder(r.Context(), sess, service.OrderRequest{
		StoreID:     req.StoreID,
		ProductName: req.ProductName,
		Units:       req.Units,
		RequestID:   req.RequestID,
	})
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}

	h.logger.Info("order placed",
		zap.Int64("customer_id", order.CustomerID),
		zap.Int64("store_id", order.StoreID),
		zap.String("product", order.ProductName),
		zap.Int("units", order.Units),
	)
	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: "order placed successfully",
		Data:    toOrderMessage(order),
	})
}

func (h *HTTPHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	orders, err := h.market.Reports.RecentOrders(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: nonNil(orders)})
}

func (h *HTTPHandler) RequestSupply(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req supplyHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.market.Inventory.RequestSupply(r.Context(), sess, domain.SupplyRequest{
		ManagerID:   sess.UserID,
		WarehouseID: req.WarehouseID,
		StoreID:     req.StoreID,
		ProductName: req.ProductName,
		Units:       req.Units,
	})
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "supply request placed"})
}

func (h *HTTPHandler) PopularProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	rows, err := h.market.Reports.PopularProducts(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: nonNil(rows)})
}

func (h *HTTPHandler) PopularCustomers(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	rows, err := h.market.Reports.PopularCustomers(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: nonNil(rows)})
}

func (h *HTTPHandler) ProductUpdates(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	rows, err := h.market.Reports.RecentUpdates(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err, sess)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: toUpdateMessages(rows)})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) session(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	sess, err := resolveSession(r.Context(), h.sessions, bearerToken(r))
	if err != nil {
		h.logger.Error("resolve session failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "internal error"})
		return domain.Session{}, false
	}
	return sess, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, sess domain.Session) {
	f := classify(err, sess)
	if f.status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int64("user_id", sess.UserID),
			zap.Error(err),
		)
	}
	writeJSON(w, f.status, APIResponse{Success: false, Message: f.msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "invalid request body",
		})
		return false
	}
	return true
}

// nonNil keeps empty reports encoding as [] rather than being dropped.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
