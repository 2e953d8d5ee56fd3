package response

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"propertyhub/domain/cart"
	"propertyhub/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set(RequestIDKey, "req-1")
	handler(c)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleAppErrorMapsStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   Response
	}{
		{
			name:   "not found",
			err:    cart.NewItemNotFoundError(7),
			status: http.StatusNotFound,
			want:   Response{Error: "CART_ITEM_NOT_FOUND", Code: 404, Message: "Item not found for listing 7", RequestID: "req-1"},
		},
		{
			name:   "forbidden",
			err:    shared.NewForbiddenError("enquiry", "Access denied"),
			status: http.StatusForbidden,
			want:   Response{Error: "FORBIDDEN", Code: 403, Message: "Access denied", RequestID: "req-1"},
		},
		{
			name:   "internal hidden",
			err:    stdErrors.New("pq: password authentication failed"),
			status: http.StatusInternalServerError,
			want:   Response{Error: "INTERNAL_ERROR", Code: 500, Message: "internal server error", RequestID: "req-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := run(func(c *gin.Context) { HandleAppError(c, tt.err) })
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if diff := cmp.Diff(tt.want, body); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleSuccessAndCreated(t *testing.T) {
	w, body := run(func(c *gin.Context) { HandleCreated(c, map[string]int{"n": 1}, "created") })
	if w.Code != http.StatusCreated || !body.Success || body.RequestID != "req-1" {
		t.Errorf("created response = %d %+v", w.Code, body)
	}

	w, body = run(func(c *gin.Context) { HandleSuccess(c, nil, "ok") })
	if w.Code != http.StatusOK || body.Message != "ok" || body.Data != nil {
		t.Errorf("success response = %d %+v", w.Code, body)
	}
}

func TestHandleErrorIsBadRequest(t *testing.T) {
	w, body := run(func(c *gin.Context) { HandleError(c, stdErrors.New("EOF"), "invalid request body") })
	if w.Code != http.StatusBadRequest || body.Error != "BAD_REQUEST" || body.Message != "invalid request body" {
		t.Errorf("response = %d %+v", w.Code, body)
	}
}
