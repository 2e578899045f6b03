package repository

import (
	"context"

	"gorm.io/gorm"

	"tambo/internal/model"
)

// AdminRepository defines staff account persistence operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindActiveByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository builds a GORM-backed repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// FindActiveByEmail looks up an admin restricted to active accounts.
// Deactivated staff cannot authenticate.
func (r *adminRepository) FindActiveByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).
		Where("email = ? AND activo = ?", email, true).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
