package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zopuu/soa-team-20/internal/core/domain"
	"github.com/zopuu/soa-team-20/internal/core/service"
)

var testTokenCfg = service.TokenConfig{
	Secret:   "secret",
	Issuer:   "AuthService",
	Audience: "AuthServiceClient",
	TTL:      24 * time.Hour,
}

// signToken signs a raw claim set with the test secret.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testTokenCfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// tokenClaims returns a fully valid claim set issued at the given time.
func tokenClaims(issuedAt time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "acc-1",
		"name":  "alice",
		"role":  "Admin",
		"email": "alice@example.com",
		"iss":   testTokenCfg.Issuer,
		"aud":   testTokenCfg.Audience,
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(testTokenCfg.TTL).Unix(),
	}
}

// runAuth pushes a request through the Auth middleware and reports the
// context, recorder, and whether the wrapped handler ran.
func runAuth(t *testing.T, token string, decorate func(*http.Request)) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testTokenCfg)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return c, rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, tokenClaims(time.Now()))
	c, rec, called := runAuth(t, token, nil)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(CtxUserID) != "acc-1" {
		t.Fatalf("user_id not set: %v", c.Get(CtxUserID))
	}
	if c.Get(CtxUsername) != "alice" || c.Get(CtxRole) != "Admin" || c.Get(CtxEmail) != "alice@example.com" {
		t.Fatalf("claims not injected")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, rec, called := runAuth(t, "", nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	_, rec, called := runAuth(t, "", func(r *http.Request) {
		r.Header.Set("Authorization", "Token abc")
	})
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	_, rec, called := runAuth(t, "not-a-token", nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims(time.Now()))
	signed, err := tok.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_, rec, called := runAuth(t, signed, nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_WrongIssuer(t *testing.T) {
	claims := tokenClaims(time.Now())
	claims["iss"] = "SomeoneElse"
	_, rec, called := runAuth(t, signToken(t, claims), nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_WrongAudience(t *testing.T) {
	claims := tokenClaims(time.Now())
	claims["aud"] = "OtherClient"
	_, rec, called := runAuth(t, signToken(t, claims), nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_MissingExpiry(t *testing.T) {
	claims := tokenClaims(time.Now())
	delete(claims, "exp")
	_, rec, called := runAuth(t, signToken(t, claims), nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

// A token issued 23h59m ago is still inside its 24h window; one issued
// 24h01m ago is past it. There is no refresh: expiry is the only thing that
// ends a session.
func TestAuthMiddleware_ExpiryBoundary(t *testing.T) {
	fresh := signToken(t, tokenClaims(time.Now().Add(-23*time.Hour-59*time.Minute)))
	if _, rec, called := runAuth(t, fresh, nil); !called || rec.Code != http.StatusOK {
		t.Fatalf("token inside window rejected: %d", rec.Code)
	}

	stale := signToken(t, tokenClaims(time.Now().Add(-24*time.Hour-1*time.Minute)))
	if _, rec, called := runAuth(t, stale, nil); called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("token past window accepted: %d", rec.Code)
	}
}

func TestAuthMiddleware_SubjectFallbackUID(t *testing.T) {
	claims := tokenClaims(time.Now())
	delete(claims, "sub")
	claims["uid"] = "acc-9"
	c, _, called := runAuth(t, signToken(t, claims), nil)
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(CtxUserID) != "acc-9" {
		t.Fatalf("expected uid fallback, got %v", c.Get(CtxUserID))
	}
}

func TestAuthMiddleware_SubjectFallbackForwardedHeader(t *testing.T) {
	claims := tokenClaims(time.Now())
	delete(claims, "sub")
	c, _, called := runAuth(t, signToken(t, claims), func(r *http.Request) {
		r.Header.Set(ForwardedUserHeader, "acc-42")
	})
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(CtxUserID) != "acc-42" {
		t.Fatalf("expected forwarded header fallback, got %v", c.Get(CtxUserID))
	}
}

// The gate never consults the credential store, so a token issued for an
// account that was blocked afterwards stays accepted until natural expiry.
func TestAuthMiddleware_AcceptsTokenIssuedBeforeBlock(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenCfg)
	acc := &domain.Account{ID: "acc-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleTourist}

	token, err := issuer.Issue(acc, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	now := time.Now().UTC()
	acc.Status = domain.StatusBlocked
	acc.BlockedAt = &now

	if _, rec, called := runAuth(t, token, nil); !called || rec.Code != http.StatusOK {
		t.Fatalf("expected stale token to remain valid, got %d", rec.Code)
	}
}
