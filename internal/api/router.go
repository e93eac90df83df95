package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/spar-shoe/storefront-api/docs"
	"github.com/spar-shoe/storefront-api/internal/api/handler"
	"github.com/spar-shoe/storefront-api/internal/api/middleware"
	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
	"github.com/spar-shoe/storefront-api/internal/core/service"
	"github.com/spar-shoe/storefront-api/internal/core/session"
	"github.com/spar-shoe/storefront-api/internal/core/token"
	"github.com/spar-shoe/storefront-api/internal/infrastructure/config"
	mongodb "github.com/spar-shoe/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/spar-shoe/storefront-api/internal/infrastructure/db/redis"
	"github.com/spar-shoe/storefront-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, notifier ports.AccountNotifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	listingCache := redisdb.NewCatalogCache(rdb)

	signer := session.NewSigner(cfg.JWTSecret, cfg.SessionTTL)
	issuer := token.NewIssuer(cfg.VerificationTokenTTL, cfg.ResetTokenTTL)

	accounts := service.NewAccountService(userRepo, issuer, signer, notifier, log)
	catalog := service.NewCatalogService(productRepo, listingCache, log)

	authHandler := handler.NewAuthHandler(accounts, cfg.AppBaseURL)
	productHandler := handler.NewProductHandler(catalog)

	authn := middleware.Auth(signer)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/verify-email/:token", authHandler.VerifyEmail)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password/:token", authHandler.ResetPassword)

	// --- Catalog routes (reads public, mutations behind the gate) ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authn, adminOnly)
	e.PUT("/products/:id", productHandler.Update, authn, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authn, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
