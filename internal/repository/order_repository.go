package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tambo/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	// CreateWithLines persists the order, its lines and the optional payment
	// record in one transaction. Lines receive the new order id before
	// insertion; a nil payment is skipped.
	CreateWithLines(ctx context.Context, order *model.Order, lines []model.OrderLine, payment *model.Payment) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	// UpdateStatus sets the status and update timestamp, then reloads the
	// order with the owning user's projection embedded.
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds a GORM-backed repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithLines(ctx context.Context, order *model.Order, lines []model.OrderLine, payment *model.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		if payment != nil {
			payment.OrderID = order.ID
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		order.Lines = lines
		return nil
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":     status,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return nil, err
	}

	var order model.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Lines").
		Preload("Lines.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
