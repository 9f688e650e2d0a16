package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/zoo-arcadia/arcadia-api/docs"
	"github.com/zoo-arcadia/arcadia-api/internal/api/handler"
	"github.com/zoo-arcadia/arcadia-api/internal/api/middleware"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
	"github.com/zoo-arcadia/arcadia-api/internal/core/service"
	"github.com/zoo-arcadia/arcadia-api/internal/core/token"
	mongodb "github.com/zoo-arcadia/arcadia-api/internal/infrastructure/db/mongo"
	"github.com/zoo-arcadia/arcadia-api/internal/infrastructure/http/handlers"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/config"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/hash"
)

// Deps carries the externally constructed collaborators the router wires
// into services and handlers.
type Deps struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Mailer ports.Mailer
	Codes  ports.ResetCodeStore
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("arcadia"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(deps.Mongo)
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	hasher := hash.New(cfg.Hash.Workers)

	authService := service.NewAuthService(users, tokens, hasher, deps.Log)
	passwordService := service.NewPasswordService(users, deps.Codes, deps.Mailer, hasher, cfg.Reset.CodeTTL, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	passwordHandler := handler.NewPasswordHandler(passwordService)
	userHandler := handler.NewUserHandler(passwordService)

	guard := middleware.Auth(tokens, users)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Password reset routes (no auth: the caller lost their password) ---
	reset := e.Group("/password-reset")
	reset.POST("/initiate", passwordHandler.InitiateReset)
	reset.POST("/verify", passwordHandler.VerifyResetCode)
	reset.POST("/reset", passwordHandler.ResetPassword)

	// --- User routes (guarded) ---
	usersGroup := e.Group("/users", guard)
	usersGroup.POST("", userHandler.Create, middleware.RBAC("admin"))
	usersGroup.GET("/me", userHandler.Me)
	usersGroup.PUT("/me/password", userHandler.ChangePassword)

	// --- Ops endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
