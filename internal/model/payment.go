package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pendiente"
	PaymentStatusPaid    PaymentStatus = "pagado"
)

// PaymentMethodCard is the gateway-settled method. Card payments are
// confirmed by the external processor, so no local pending record is kept.
const PaymentMethodCard = "tarjeta"

// Payment represents an expected-but-unconfirmed cash or transfer payment
// recorded alongside an order.
type Payment struct {
	ID      uint            `json:"id" gorm:"primaryKey"`
	OrderID uint            `json:"pedido_id" gorm:"column:pedido_id;not null;index"`
	Amount  decimal.Decimal `json:"monto" gorm:"column:monto;type:decimal(10,2);not null"`
	Status  PaymentStatus   `json:"estado" gorm:"column:estado;type:varchar(20);not null;default:'pendiente'"`
	Method  string          `json:"metodo_pago" gorm:"column:metodo_pago;size:50;not null"`
	PaidAt  time.Time       `json:"fecha_pago" gorm:"column:fecha_pago"`
}

// TableName overrides the GORM default to match the storefront schema.
func (Payment) TableName() string { return "pagos" }
