package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"propertyhub/cmd"
	"propertyhub/config"

	"github.com/google/go-cmp/cmp"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
}

type cartView struct {
	OwnerID string `json:"owner_id"`
	Items   []struct {
		ListingID int64  `json:"listing_id"`
		Price     string `json:"price"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	TotalQuantity int `json:"total_quantity"`
}

type enquiryView struct {
	ID         string `json:"id"`
	ListingID  int64  `json:"listing_id"`
	CustomerID string `json:"customer_id"`
	OwnerID    string `json:"owner_id"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.App.Env = "test"
	cfg.Database.Type = "memory"
	cfg.Worker.Enabled = false
	cfg.Server.RateLimit.Enabled = false

	app, err := cmd.NewBuilder(cfg).WithoutLoggerInit().Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return &client{t: t, handler: app.Handler()}
}

func (c *client) do(method, path, userID, role string, body interface{}) (int, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-USER-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-USER-ROLE", role)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("%s %s: invalid body %q", method, path, w.Body.String())
	}
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("invalid data %s: %v", env.Data, err)
	}
	return v
}

func TestCartAndEnquiryScenario(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 42, "price": 1000})
	if status != http.StatusOK {
		t.Fatalf("first add = %d %+v", status, env)
	}
	cart := decodeData[cartView](t, env)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("after first add = %+v", cart)
	}

	_, env = c.do(http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 42, "price": 1000})
	cart = decodeData[cartView](t, env)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 || cart.Items[0].Price != "1000.00" {
		t.Fatalf("after second add = %+v", cart)
	}

	status, env = c.do(http.MethodDelete, "/api/v1/cart/remove/42", "A", "CUSTOMER", nil)
	if status != http.StatusOK {
		t.Fatalf("remove = %d %+v", status, env)
	}

	_, env = c.do(http.MethodGet, "/api/v1/cart", "A", "CUSTOMER", nil)
	if cart = decodeData[cartView](t, env); len(cart.Items) != 0 {
		t.Fatalf("cart after remove = %+v", cart)
	}

	status, env = c.do(http.MethodPost, "/api/v1/enquiries", "A", "CUSTOMER", map[string]interface{}{
		"listing_id":  42,
		"owner_id":    "O",
		"message":     "interested",
		"customer_id": "someone-else",
	})
	if status != http.StatusCreated {
		t.Fatalf("create enquiry = %d %+v", status, env)
	}
	created := decodeData[enquiryView](t, env)
	want := enquiryView{ID: created.ID, ListingID: 42, CustomerID: "A", OwnerID: "O", Message: "interested", Status: "NEW"}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("created enquiry mismatch (-want +got):\n%s", diff)
	}

	status, env = c.do(http.MethodPut, "/api/v1/enquiries/"+created.ID+"/status", "B", "ADMIN", map[string]string{"status": "RESPONDED"})
	if status != http.StatusOK {
		t.Fatalf("admin update = %d %+v", status, env)
	}
	if got := decodeData[enquiryView](t, env); got.Status != "RESPONDED" {
		t.Fatalf("status after admin update = %s", got.Status)
	}

	status, env = c.do(http.MethodPut, "/api/v1/enquiries/"+created.ID+"/status", "A", "CUSTOMER", map[string]string{"status": "RESPONDED"})
	if status != http.StatusForbidden || env.Error != "FORBIDDEN" {
		t.Fatalf("customer update = %d %+v", status, env)
	}

	_, env = c.do(http.MethodGet, "/api/v1/enquiries/"+created.ID, "A", "CUSTOMER", nil)
	if got := decodeData[enquiryView](t, env); got.Status != "RESPONDED" {
		t.Errorf("status after forbidden update = %s", got.Status)
	}
}

func TestErrorResponses(t *testing.T) {
	c := newClient(t)

	tests := []struct {
		name       string
		method     string
		path       string
		userID     string
		role       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{"no identity", http.MethodGet, "/api/v1/cart", "", "", nil, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"unknown role", http.MethodGet, "/api/v1/cart", "A", "OWNER", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"remove without cart", http.MethodDelete, "/api/v1/cart/remove/42", "A", "CUSTOMER", nil, http.StatusNotFound, "CART_NOT_FOUND"},
		{"remove bad id", http.MethodDelete, "/api/v1/cart/remove/abc", "A", "CUSTOMER", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"negative price", http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 1, "price": -5}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"oversized price", http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 1, "price": "1e40"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing price", http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 1}, http.StatusBadRequest, "BAD_REQUEST"},
		{"empty message", http.MethodPost, "/api/v1/enquiries", "A", "CUSTOMER", map[string]interface{}{"listing_id": 1, "owner_id": "O", "message": ""}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"admin creates enquiry", http.MethodPost, "/api/v1/enquiries", "B", "ADMIN", map[string]interface{}{"listing_id": 1, "owner_id": "O", "message": "hi"}, http.StatusForbidden, "FORBIDDEN"},
		{"customer lists admin view", http.MethodGet, "/api/v1/enquiries/admin", "A", "CUSTOMER", nil, http.StatusForbidden, "FORBIDDEN"},
		{"missing enquiry", http.MethodPut, "/api/v1/enquiries/nope/status", "B", "ADMIN", map[string]string{"status": "CLOSED"}, http.StatusNotFound, "ENQUIRY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := c.do(tt.method, tt.path, tt.userID, tt.role, tt.body)
			if status != tt.wantStatus || env.Error != tt.wantError || env.Success {
				t.Errorf("got %d %+v, want %d %s", status, env, tt.wantStatus, tt.wantError)
			}
			if env.RequestID == "" {
				t.Error("error response without request id")
			}
		})
	}
}

func TestInvalidStatusLeavesEnquiryUnchanged(t *testing.T) {
	c := newClient(t)

	_, env := c.do(http.MethodPost, "/api/v1/enquiries", "A", "CUSTOMER", map[string]interface{}{
		"listing_id": 42, "owner_id": "O", "message": "interested",
	})
	created := decodeData[enquiryView](t, env)

	status, env := c.do(http.MethodPut, "/api/v1/enquiries/"+created.ID+"/status", "B", "ADMIN", map[string]string{"status": "ARCHIVED"})
	if status != http.StatusBadRequest || env.Error != "INVALID_ENQUIRY_STATUS" {
		t.Fatalf("invalid status = %d %+v", status, env)
	}

	_, env = c.do(http.MethodGet, "/api/v1/enquiries/admin?owner_id=O", "B", "ADMIN", nil)
	list := decodeData[[]enquiryView](t, env)
	if len(list) != 1 || list[0].Status != "NEW" {
		t.Errorf("admin list = %+v", list)
	}

	_, env = c.do(http.MethodGet, "/api/v1/enquiries/owner", "O", "CUSTOMER", nil)
	if inbox := decodeData[[]enquiryView](t, env); len(inbox) != 1 {
		t.Errorf("owner inbox = %+v", inbox)
	}

	status, _ = c.do(http.MethodGet, "/api/v1/enquiries/"+created.ID, "C", "CUSTOMER", nil)
	if status != http.StatusForbidden {
		t.Errorf("stranger read = %d, want 403", status)
	}
}

func TestClearCartIsIdempotent(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodDelete, "/api/v1/cart", "A", "CUSTOMER", nil)
	if status != http.StatusOK {
		t.Fatalf("clear empty = %d %+v", status, env)
	}

	c.do(http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 1, "price": "10.5"})
	c.do(http.MethodPost, "/api/v1/cart/add", "A", "CUSTOMER", map[string]interface{}{"listing_id": 2, "price": 20})

	_, env = c.do(http.MethodDelete, "/api/v1/cart", "A", "CUSTOMER", nil)
	var result struct {
		RemovedItems int `json:"removed_items"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil || result.RemovedItems != 2 {
		t.Errorf("clear result = %s", env.Data)
	}
}
