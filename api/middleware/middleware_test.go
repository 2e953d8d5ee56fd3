package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"propertyhub/api/ctxutil"
	"propertyhub/api/response"
	"propertyhub/config"
	"propertyhub/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRequestIDPropagation(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware())

	var fromCtx string
	engine.GET("/", func(c *gin.Context) {
		fromCtx = persistence.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "upstream-1" {
		t.Errorf("response header = %q", got)
	}
	if fromCtx != "upstream-1" {
		t.Errorf("request context id = %q", fromCtx)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("request id should be generated")
	}
}

func TestIdentityMiddleware(t *testing.T) {
	cfg := &config.IdentityConfig{UserIDHeader: "X-USER-ID", RoleHeader: "X-USER-ROLE"}
	engine := gin.New()
	engine.Use(RequestIDMiddleware(), IdentityMiddleware(cfg))
	engine.GET("/", func(c *gin.Context) {
		caller := ctxutil.Caller(c)
		c.String(http.StatusOK, caller.CallerID()+"/"+string(caller.Role()))
	})

	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantCode   string
	}{
		{"customer", "u1", "CUSTOMER", http.StatusOK, ""},
		{"admin", "a1", "ADMIN", http.StatusOK, ""},
		{"missing user", "", "CUSTOMER", http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"unknown role", "u1", "ROOT", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"lowercase role", "u1", "customer", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set("X-USER-ID", tt.userID)
			}
			req.Header.Set("X-USER-ROLE", tt.role)
			engine.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				if body := decode(t, w); body.Error != tt.wantCode || body.RequestID == "" {
					t.Errorf("body = %+v", body)
				}
			} else if w.Body.String() != tt.userID+"/"+tt.role {
				t.Errorf("caller = %q", w.Body.String())
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 2}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware(), RecoveryMiddleware())
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body.Message != "internal server error" || body.Success {
		t.Errorf("body = %+v", body)
	}
}

func TestCORSMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(CORSMiddleware(&config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type", "X-USER-ID"},
		MaxAge:       600,
	}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	engine.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign origin status = %d, want 403", w.Code)
	}
}
