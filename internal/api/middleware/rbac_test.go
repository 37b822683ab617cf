package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	called := false
	handler := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	rec, called := runRBAC(t, "Admin", domain.RoleAdmin)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (called=%v)", rec.Code, called)
	}
}

func TestRBAC_ForbidsOtherRole(t *testing.T) {
	rec, called := runRBAC(t, "Tourist", domain.RoleAdmin)
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (called=%v)", rec.Code, called)
	}
}

func TestRBAC_ForbidsMissingRole(t *testing.T) {
	rec, called := runRBAC(t, "", domain.RoleAdmin)
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (called=%v)", rec.Code, called)
	}
}
