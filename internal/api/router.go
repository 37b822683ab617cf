package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zopuu/soa-team-20/internal/api/handler"
	"github.com/zopuu/soa-team-20/internal/api/middleware"
	"github.com/zopuu/soa-team-20/internal/core/domain"
	"github.com/zopuu/soa-team-20/internal/core/ports"
	"github.com/zopuu/soa-team-20/internal/core/service"
	mongodb "github.com/zopuu/soa-team-20/internal/infrastructure/db/mongo"
	redisdb "github.com/zopuu/soa-team-20/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenCfg service.TokenConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb)
	}
	issuer := service.NewTokenIssuer(tokenCfg)
	authService := service.NewAuthService(accountRepo, issuer, throttle, log)
	adminService := service.NewAdminService(accountRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	authMiddleware := middleware.Auth(tokenCfg)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/whoami", authHandler.WhoAmI, authMiddleware)

	// --- Admin routes (Admin role only) ---
	admin := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("", adminHandler.List)
	admin.PUT("/:id/block", adminHandler.Block)
	admin.PUT("/:id/unblock", adminHandler.Unblock)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
