package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/campushub/user-directory/docs"
	"github.com/campushub/user-directory/internal/api/handler"
	"github.com/campushub/user-directory/internal/api/middleware"
	"github.com/campushub/user-directory/internal/core/service"
	mongodb "github.com/campushub/user-directory/internal/infrastructure/db/mongo"
	"github.com/campushub/user-directory/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit receives a directory event for every mutation; pass nil to disable
// the audit trail (tests do).
func NewRouter(db *mongo.Database, rdb *redis.Client, audit service.AuditSink, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userdir"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	minter := service.NewTokenMinter(jwtSecret, tokenTTL)
	oracle := service.NewRepoRoleOracle(userRepo)
	userService := service.NewUserService(userRepo, oracle, minter, audit, log)
	authService := service.NewAuthService(userRepo, minter, log)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)

	resolve := middleware.ResolveIdentity(jwtSecret)
	require := middleware.RequireIdentity()

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, resolve)

	// --- Directory routes ---
	// Create resolves the credential but does not require one: anonymous
	// self-registration is allowed, and the admin-minting guard needs to
	// distinguish absent from invalid credentials.
	users := e.Group("/v1/users", resolve)
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List, require)
	users.GET("/:id", userHandler.Get, require)
	users.PUT("/:id", userHandler.Update, require)
	users.DELETE("/:id", userHandler.Delete, require)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
