package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusConfirmed OrderStatus = "confirmado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// transitions is the closed table of allowed status changes. Forward only,
// except that cancellation is reachable from every non-terminal state.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusCancelled},
	OrderStatusCancelled: {},
}

// ParseOrderStatus maps a wire string to a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the change from s to next is in the table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a customer order. The Notes field carries the table or
// time-slot info the storefront collects as "direccion_envio".
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Code      string          `json:"numero_pedido" gorm:"column:numero_pedido;size:20;not null;index"`
	UserID    uint            `json:"usuario_id" gorm:"column:usuario_id;not null;index"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Status    OrderStatus     `json:"estado" gorm:"column:estado;type:varchar(20);not null;default:'pendiente';index"`
	Notes     string          `json:"observaciones" gorm:"column:observaciones;size:500"`
	OrderedAt time.Time       `json:"fecha_pedido" gorm:"column:fecha_pedido"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	Lines []OrderLine `json:"detalles_pedidos,omitempty" gorm:"foreignKey:OrderID"`
	User  *User       `json:"usuarios,omitempty" gorm:"foreignKey:UserID"`
}

// TableName overrides the GORM default to match the storefront schema.
func (Order) TableName() string { return "pedidos" }

// OrderLine represents one line of an order. Immutable after creation.
type OrderLine struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   uint            `json:"pedido_id" gorm:"column:pedido_id;not null;index"`
	ProductID uint            `json:"producto_id" gorm:"column:producto_id;not null;index"`
	Quantity  int             `json:"cantidad" gorm:"column:cantidad;not null"`
	UnitPrice decimal.Decimal `json:"precio_unitario" gorm:"column:precio_unitario;type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"column:subtotal;type:decimal(10,2);not null"`

	// Relations
	Product *Product `json:"productos,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName overrides the GORM default to match the storefront schema.
func (OrderLine) TableName() string { return "detalles_pedidos" }
