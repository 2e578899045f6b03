package model

import "time"

// Admin represents a staff account. Read-only except for login; inactive
// admins cannot authenticate.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nombre" gorm:"column:nombre;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	Active       bool      `json:"activo" gorm:"column:activo;default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the GORM default to match the storefront schema.
func (Admin) TableName() string { return "administradores" }
