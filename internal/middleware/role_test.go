package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		role     interface{}
		wantCode int
	}{
		{"matching role", []string{"admin"}, "admin", http.StatusOK},
		{"one of several", []string{"trucker", "broker"}, "broker", http.StatusOK},
		{"wrong role", []string{"admin"}, "trucker", http.StatusForbidden},
		{"role not set", []string{"admin"}, nil, http.StatusForbidden},
		{"role wrong type", []string{"admin"}, 42, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			next := func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}
			if err := RequireRole(tt.allowed...)(next)(c); err != nil {
				t.Fatalf("middleware error = %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
