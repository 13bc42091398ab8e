package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/rl1809/retail/internal/adapter/storage"
	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/core/service"
)

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestMarket() (*storage.MemoryAdapter, *service.Marketplace) {
	mem := storage.NewMemoryAdapter()
	mem.SeedUser(domain.User{ID: 9, Name: "mia", Credential: "pw", Location: domain.Coordinate{Latitude: 50, Longitude: 50}, Role: domain.RoleManager})
	mem.SeedUser(domain.User{ID: 1000, Name: "ada", Credential: "pw", Role: domain.RoleAdmin})
	mem.SeedStore(domain.Store{ID: 1, Name: "Corner", Location: domain.Coordinate{Latitude: 5, Longitude: 5}, ManagerID: 9})
	mem.SeedStore(domain.Store{ID: 2, Name: "Faraway", Location: domain.Coordinate{Latitude: 60, Longitude: 60}, ManagerID: 8})
	mem.SeedProduct(domain.Product{StoreID: 1, Name: "Widget", Units: 10, UnitPrice: 2.5})
	mem.SeedProduct(domain.Product{StoreID: 2, Name: "Widget", Units: 10, UnitPrice: 2.5})
	mem.SeedWarehouse(domain.Warehouse{ID: 1, Area: 500})
	return mem, service.NewMarketplace(mem, service.WithIdempotency(mem))
}

func newTestServer(t *testing.T) (*storage.MemoryAdapter, http.Handler) {
	t.Helper()
	mem, market := newTestMarket()
	return mem, NewHTTPHandler(market, mem, zap.NewNop()).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) (int, testResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, resp
}

func login(t *testing.T, h http.Handler, name string) string {
	t.Helper()
	code, resp := doRequest(t, h, http.MethodPost, "/api/sessions", "", map[string]string{"name": name, "password": "pw"})
	if code != http.StatusCreated {
		t.Fatalf("login %s: status %d (%s)", name, code, resp.Message)
	}
	var sess SessionMessage
	if err := json.Unmarshal(resp.Data, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sess.Token
}

func registerCustomer(t *testing.T, h http.Handler) string {
	t.Helper()
	code, resp := doRequest(t, h, http.MethodPost, "/api/users", "", map[string]interface{}{
		"name": "carl", "password": "pw", "latitude": 0, "longitude": 0,
	})
	if code != http.StatusCreated {
		t.Fatalf("register: status %d (%s)", code, resp.Message)
	}
	return login(t, h, "carl")
}

func TestHTTP_HealthCheck(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHTTP_RegisterValidation(t *testing.T) {
	_, h := newTestServer(t)

	code, _ := doRequest(t, h, http.MethodPost, "/api/users", "", map[string]interface{}{
		"name": "carl", "password": "pw", "latitude": 101, "longitude": 0,
	})
	if code != http.StatusBadRequest {
		t.Errorf("out of range coordinate: expected 400, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/api/users", "", map[string]interface{}{
		"name": "mia", "password": "pw", "latitude": 1, "longitude": 1,
	})
	if code != http.StatusBadRequest {
		t.Errorf("duplicate name: expected 400, got %d", code)
	}
}

func TestHTTP_LoginRejected(t *testing.T) {
	_, h := newTestServer(t)
	code, resp := doRequest(t, h, http.MethodPost, "/api/sessions", "", map[string]string{"name": "mia", "password": "nope"})
	if code != http.StatusUnauthorized || resp.Success {
		t.Errorf("expected 401, got %d %+v", code, resp)
	}
}

func TestHTTP_NearbyStores(t *testing.T) {
	_, h := newTestServer(t)
	token := registerCustomer(t, h)

	code, resp := doRequest(t, h, http.MethodGet, "/api/stores/nearby", token, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", code, resp.Message)
	}
	var stores []StoreMessage
	if err := json.Unmarshal(resp.Data, &stores); err != nil {
		t.Fatal(err)
	}
	if len(stores) != 1 || stores[0].ID != 1 {
		t.Errorf("expected only store 1, got %+v", stores)
	}
}

func TestHTTP_AccessStatus(t *testing.T) {
	_, h := newTestServer(t)
	token := registerCustomer(t, h)

	if code, _ := doRequest(t, h, http.MethodGet, "/api/stores/nearby", "", nil); code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", code)
	}
	if code, _ := doRequest(t, h, http.MethodGet, "/api/stores/nearby", "stale-token", nil); code != http.StatusUnauthorized {
		t.Errorf("unknown token: expected 401, got %d", code)
	}
	if code, _ := doRequest(t, h, http.MethodGet, "/api/reports/popular-products", token, nil); code != http.StatusForbidden {
		t.Errorf("customer on manager report: expected 403, got %d", code)
	}
}

func TestHTTP_PlaceOrder(t *testing.T) {
	mem, h := newTestServer(t)
	token := registerCustomer(t, h)
	order := map[string]interface{}{"store_id": 1, "product_name": "Widget", "units": 10, "request_id": "r-1"}

	code, resp := doRequest(t, h, http.MethodPost, "/api/orders", token, order)
	if code != http.StatusCreated || !resp.Success {
		t.Fatalf("expected 201, got %d (%s)", code, resp.Message)
	}

	if code, _ := doRequest(t, h, http.MethodPost, "/api/orders", token, order); code != http.StatusConflict {
		t.Errorf("duplicate request: expected 409, got %d", code)
	}

	cases := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"fewer than stock", map[string]interface{}{"store_id": 1, "product_name": "Widget", "units": 5}, http.StatusUnprocessableEntity},
		{"too far", map[string]interface{}{"store_id": 2, "product_name": "Widget", "units": 10}, http.StatusUnprocessableEntity},
		{"unknown store", map[string]interface{}{"store_id": 77, "product_name": "Widget", "units": 10}, http.StatusNotFound},
		{"unknown product", map[string]interface{}{"store_id": 1, "product_name": "Gizmo", "units": 10}, http.StatusNotFound},
	}
	for _, tc := range cases {
		if code, _ := doRequest(t, h, http.MethodPost, "/api/orders", token, tc.body); code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, code)
		}
	}

	if n := len(mem.Orders()); n != 1 {
		t.Errorf("expected 1 stored order, got %d", n)
	}

	code, resp = doRequest(t, h, http.MethodGet, "/api/orders/recent", token, nil)
	if code != http.StatusOK {
		t.Fatalf("recent orders: status %d", code)
	}
	var recent []domain.OrderView
	if err := json.Unmarshal(resp.Data, &recent); err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].StoreName != "Corner" || recent[0].Units != 10 {
		t.Errorf("unexpected recent orders %+v", recent)
	}
}

func TestHTTP_ManagerWorkflow(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "mia")

	code, resp := doRequest(t, h, http.MethodPatch, "/api/stores/1/products/Widget", token, map[string]interface{}{"units": 42})
	if code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", code, resp.Message)
	}

	code, _ = doRequest(t, h, http.MethodPatch, "/api/stores/2/products/Widget", token, map[string]interface{}{"units": 1})
	if code != http.StatusForbidden {
		t.Errorf("foreign store: expected 403, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/api/supply-requests", token, map[string]interface{}{
		"warehouse_id": 1, "store_id": 1, "product_name": "Widget", "units": 8,
	})
	if code != http.StatusCreated {
		t.Fatalf("supply: expected 201, got %d", code)
	}

	_, resp = doRequest(t, h, http.MethodGet, "/api/stores/1/products", token, nil)
	var products []ProductMessage
	if err := json.Unmarshal(resp.Data, &products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Units != 50 {
		t.Errorf("expected 42+8 units, got %+v", products)
	}

	_, resp = doRequest(t, h, http.MethodGet, "/api/reports/product-updates", token, nil)
	var updates []UpdateMessage
	if err := json.Unmarshal(resp.Data, &updates); err != nil {
		t.Fatal(err)
	}
	if len(updates) != 1 || updates[0].ManagerID != 9 {
		t.Errorf("expected one audit row, got %+v", updates)
	}

	code, resp = doRequest(t, h, http.MethodGet, "/api/reports/popular-customers", token, nil)
	if code != http.StatusOK || string(resp.Data) != "[]" {
		t.Errorf("expected empty report, got %d %s", code, resp.Data)
	}
}

func TestHTTP_OverflowingStoreID(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "mia")
	const path = "/api/stores/99999999999999999999/products"

	code, resp := doRequest(t, h, http.MethodGet, path, token, nil)
	if code != http.StatusBadRequest || resp.Message != "invalid store id" {
		t.Errorf("list: expected 400, got %d (%s)", code, resp.Message)
	}
	code, resp = doRequest(t, h, http.MethodPatch, path+"/Widget", token, map[string]interface{}{"units": 1})
	if code != http.StatusBadRequest || resp.Message != "invalid store id" {
		t.Errorf("update: expected 400, got %d (%s)", code, resp.Message)
	}
}

func TestHTTP_AdminBypassesOwnership(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "ada")

	code, _ := doRequest(t, h, http.MethodPatch, "/api/stores/2/products/Widget", token, map[string]interface{}{"unit_price": 3.0})
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
}

func TestHTTP_Logout(t *testing.T) {
	_, h := newTestServer(t)
	token := registerCustomer(t, h)

	if code, _ := doRequest(t, h, http.MethodDelete, "/api/sessions", token, nil); code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}
	if code, _ := doRequest(t, h, http.MethodGet, "/api/stores/nearby", token, nil); code != http.StatusUnauthorized {
		t.Errorf("after logout: expected 401, got %d", code)
	}
}

func TestHTTP_BadBody(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
