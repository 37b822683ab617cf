package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zopuu/soa-team-20/internal/core/service"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxEmail    = "email"
)

// ForwardedUserHeader carries a caller identity injected by the platform
// gateway. It is only consulted as the last resort of the subject
// resolution chain and is only trustworthy when the gateway strips any
// inbound copy of the header before proxying.
const ForwardedUserHeader = "X-User-Id"

// Auth validates the bearer token (signature, HS256 method, issuer,
// audience, expiry) and injects the decoded claims into the echo context.
// It performs no store lookups: a token stays valid for its full lifetime
// even if the account is blocked after issuance.
func Auth(cfg service.TokenConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(cfg.Issuer),
				jwt.WithAudience(cfg.Audience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, resolveSubject(claims, c.Request()))
			c.Set(CtxUsername, stringClaim(claims, "name"))
			c.Set(CtxRole, stringClaim(claims, "role"))
			c.Set(CtxEmail, stringClaim(claims, "email"))

			return next(c)
		}
	}
}

// resolveSubject returns the caller's account id, checking in order: the
// registered "sub" claim, the legacy "uid" claim, then the gateway's
// forwarded identity header.
func resolveSubject(claims jwt.MapClaims, r *http.Request) string {
	if sub := stringClaim(claims, "sub"); sub != "" {
		return sub
	}
	if uid := stringClaim(claims, "uid"); uid != "" {
		return uid
	}
	return r.Header.Get(ForwardedUserHeader)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
