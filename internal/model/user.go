package model

import "time"

// User represents a registered customer. Email is the primary login key and
// carries the unique index that authoritatively prevents duplicate
// registration; phone is the alternate login key. PasswordHash may be empty
// for legacy accounts imported without a credential.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nombre" gorm:"column:nombre;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string    `json:"telefono,omitempty" gorm:"column:telefono;size:30;index"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255"` // Never expose in JSON
	City         string    `json:"ciudad,omitempty" gorm:"column:ciudad;size:100"`
	District     string    `json:"distrito,omitempty" gorm:"column:distrito;size:100"`
	Address      string    `json:"direccion,omitempty" gorm:"column:direccion;size:255"`
	AddressHint  string    `json:"referencia_domicilio,omitempty" gorm:"column:referencia_domicilio;size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the GORM default to match the storefront schema.
func (User) TableName() string { return "usuarios" }
