package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"tambo/internal/auth"
	"tambo/internal/config"
	"tambo/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	orderHandler *handler.OrderHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	// Order routes. Status updates stay reachable without a token for the
	// in-restaurant staff tablets; the admin dashboard uses the gated path.
	e.POST("/pedidos", orderHandler.Create)
	e.GET("/pedidos/:id", orderHandler.Get)
	e.PUT("/pedidos/:id", orderHandler.UpdateStatus)

	// Customer routes
	usuarios := e.Group("/usuarios")
	usuarios.POST("/login", authHandler.Login)
	usuarios.POST("/registro", authHandler.Register)
	usuarios.GET("/:email", userHandler.GetProfile)
	usuarios.PUT("/:id", userHandler.UpdateProfile, jwtMiddleware)

	// Admin routes
	admin := e.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)

	secured := admin.Group("", jwtMiddleware, adminOnly)
	secured.GET("/pedidos", orderHandler.List)
	secured.PUT("/pedidos/:id", orderHandler.UpdateStatus)
}

// adminOnly rejects tokens whose role claim is not admin.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != auth.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "acceso denegado")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
