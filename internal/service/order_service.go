package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tambo/internal/cache"
	apperrors "tambo/internal/errors"
	"tambo/internal/model"
	"tambo/internal/notify"
	"tambo/internal/repository"
)

const (
	orderCacheTTL = 5 * time.Minute

	// orderCodePrefix is the customer-visible code prefix, e.g. P-48215037.
	orderCodePrefix = "P-"
	orderCodeDigits = 8
)

// OrderItemInput is one requested line. Price is the storefront's generic
// price field, used when UnitPrice is absent.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
	Price     decimal.Decimal
}

// CreateOrderInput carries a new order request.
type CreateOrderInput struct {
	UserID        uint
	Total         decimal.Decimal
	PaymentMethod string
	Notes         string
	Items         []OrderItemInput
}

// OrderService coordinates order intake and the status state machine.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id uint) (*model.Order, error)
	// UpdateStatus applies a status transition and, for statuses customers
	// care about, enqueues a notification without waiting on delivery.
	UpdateStatus(ctx context.Context, id uint, status string) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type orderService struct {
	repo  repository.OrderRepository
	queue notify.Queue
	cache *cache.Client
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, queue notify.Queue, cache *cache.Client) OrderService {
	return &orderService{
		repo:  repo,
		queue: queue,
		cache: cache,
	}
}

func (s *orderService) cacheKey(id uint) string {
	return fmt.Sprintf("order:%d", id)
}

// CreateOrder validates, derives line subtotals and persists order, lines
// and the optional payment record in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if in.UserID == 0 || len(in.Items) == 0 {
		return nil, apperrors.ErrMissingOrderData
	}

	order := &model.Order{
		Code:      generateOrderCode(),
		UserID:    in.UserID,
		Total:     in.Total,
		Status:    model.OrderStatusPending,
		Notes:     in.Notes,
		OrderedAt: time.Now(),
	}

	lines := make([]model.OrderLine, 0, len(in.Items))
	for _, item := range in.Items {
		unit := item.UnitPrice
		if unit.IsZero() {
			unit = item.Price
		}
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Subtotal:  unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	// Card payments settle through the gateway; everything else is recorded
	// as an expected payment pending collection.
	var payment *model.Payment
	if in.PaymentMethod != model.PaymentMethodCard {
		payment = &model.Payment{
			Amount: in.Total,
			Status: model.PaymentStatusPending,
			Method: in.PaymentMethod,
			PaidAt: time.Now(),
		}
	}

	if err := s.repo.CreateWithLines(ctx, order, lines, payment); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// GetOrder returns an order with lines and product names, cache-aside.
func (s *orderService) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if payload, err := json.Marshal(order); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, orderCacheTTL)
	}
	return order, nil
}

// UpdateStatus enforces the transition table, persists the change and
// hands the notification to the dispatcher. The HTTP response never waits
// on, or reflects, delivery.
func (s *orderService) UpdateStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	if status == "" {
		return nil, apperrors.ErrMissingStatus
	}

	next, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, apperrors.ErrUnknownStatus
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidTransition
	}

	order, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	if shouldNotify(next) && order.User != nil && order.User.Email != "" {
		s.queue.Enqueue(notify.Message{
			Email:     order.User.Email,
			Name:      order.User.Name,
			OrderCode: order.Code,
			Status:    next,
		})
	}

	return order, nil
}

// ListOrders returns all orders for the staff dashboard, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func shouldNotify(status model.OrderStatus) bool {
	return status == model.OrderStatusConfirmed || status == model.OrderStatusDelivered
}

// generateOrderCode builds the customer-visible code from random digits.
// The prefix-plus-digits shape is part of the storefront contract.
func generateOrderCode() string {
	buf := make([]byte, orderCodeDigits)
	if _, err := rand.Read(buf); err != nil {
		// Extremely unlikely; fall back to a time-derived suffix.
		return fmt.Sprintf("%s%d", orderCodePrefix, time.Now().UnixNano()%100000000)
	}
	code := make([]byte, orderCodeDigits)
	for i, b := range buf {
		code[i] = '0' + b%10
	}
	return orderCodePrefix + string(code)
}
