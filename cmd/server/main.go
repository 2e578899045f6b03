package main

import (
	"log"
	"net/http"

	_ "tambo/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tambo/internal/auth"
	"tambo/internal/cache"
	"tambo/internal/config"
	"tambo/internal/db"
	"tambo/internal/handler"
	"tambo/internal/model"
	"tambo/internal/notify"
	"tambo/internal/repository"
	"tambo/internal/router"
	"tambo/internal/service"
)

// @title El Tambo Order API
// @version 1.0
// @description Restaurant order backend with status notifications and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Product{},
		&model.Order{},
		&model.OrderLine{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	mailer, err := notify.NewMailer(notify.MailerConfig{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUser,
		Password:      cfg.SMTPPass,
		From:          cfg.MailFrom,
		ForceIPv4:     cfg.SMTPForceIPv4,
		SkipTLSVerify: cfg.SMTPSkipTLSVerify,
	})
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	dispatcher := notify.NewDispatcher(mailer, cfg.NotifyQueueSize)
	defer dispatcher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, adminRepo, jwtService)
	orderService := service.NewOrderService(orderRepo, dispatcher, cacheClient)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, cfg, authHandler, orderHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
