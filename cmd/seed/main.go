package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tambo/internal/config"
	"tambo/internal/db"
	"tambo/internal/model"
	"tambo/internal/repository"
)

const bcryptCost = 10

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Product{},
		&model.Order{},
		&model.OrderLine{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, err := seedProducts(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Products created: %d", created)
}

// seedAdmin ensures the staff account from the environment exists.
func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing model.Admin
	err := gormDB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	adminRepo := repository.NewAdminRepository(gormDB)
	admin := &model.Admin{
		Name:         getEnv("ADMIN_NAME", "Administrador"),
		Email:        email,
		PasswordHash: string(hashed),
		Active:       true,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin %s created", email)
	return nil
}

// seedProducts loads a small starter menu so fresh environments can take orders.
func seedProducts(ctx context.Context, gormDB *gorm.DB) (int, error) {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Catalog already has %d products, skipping", count)
		return 0, nil
	}

	menu := []model.Product{
		{Name: "Sopa seca con carapulcra", Description: "Plato bandera de Cañete", Price: decimal.NewFromFloat(18.50)},
		{Name: "Arroz con pato", Price: decimal.NewFromFloat(22.00)},
		{Name: "Ceviche de pescado", Price: decimal.NewFromFloat(20.00)},
		{Name: "Chicha morada 1L", Price: decimal.NewFromFloat(8.00)},
	}

	if err := gormDB.WithContext(ctx).Create(&menu).Error; err != nil {
		return 0, err
	}
	return len(menu), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
