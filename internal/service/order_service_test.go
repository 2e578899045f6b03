package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "tambo/internal/errors"
	"tambo/internal/model"
	"tambo/internal/notify"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithLines(ctx context.Context, order *model.Order, lines []model.OrderLine, payment *model.Payment) error {
	args := m.Called(ctx, order, lines, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// fakeQueue records enqueued notifications synchronously.
type fakeQueue struct {
	messages []notify.Message
}

func (q *fakeQueue) Enqueue(msg notify.Message) bool {
	q.messages = append(q.messages, msg)
	return true
}

var orderCodePattern = regexp.MustCompile(`^P-\d+$`)

func TestOrderService_CreateOrder(t *testing.T) {
	input := CreateOrderInput{
		UserID:        5,
		Total:         decimal.RequireFromString("37.5"),
		PaymentMethod: "efectivo",
		Notes:         "Mesa 4 - 13:00",
		Items: []OrderItemInput{
			{ProductID: 9, Quantity: 3, UnitPrice: decimal.RequireFromString("12.5")},
		},
	}

	mockRepo := new(MockOrderRepository)
	mockRepo.On("CreateWithLines", mock.Anything, mock.AnythingOfType("*model.Order"), mock.AnythingOfType("[]model.OrderLine"), mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*model.Order)
			lines := args.Get(2).([]model.OrderLine)
			payment := args.Get(3).(*model.Payment)

			assert.Regexp(t, orderCodePattern, order.Code)
			assert.Equal(t, model.OrderStatusPending, order.Status)
			assert.Equal(t, "Mesa 4 - 13:00", order.Notes)

			assert.Len(t, lines, 1)
			assert.Equal(t, uint(9), lines[0].ProductID)
			assert.True(t, lines[0].Subtotal.Equal(decimal.RequireFromString("37.5")),
				"subtotal must equal cantidad x precio_unitario, got %s", lines[0].Subtotal)

			assert.NotNil(t, payment)
			assert.True(t, payment.Amount.Equal(order.Total))
			assert.Equal(t, model.PaymentStatusPending, payment.Status)
			assert.Equal(t, "efectivo", payment.Method)
		}).
		Return(nil)

	service := NewOrderService(mockRepo, &fakeQueue{}, nil)
	order, err := service.CreateOrder(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrderLineDerivation(t *testing.T) {
	tests := []struct {
		name         string
		item         OrderItemInput
		wantUnit     string
		wantSubtotal string
	}{
		{
			name:         "explicit unit price",
			item:         OrderItemInput{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			wantUnit:     "10.00",
			wantSubtotal: "20.00",
		},
		{
			name:         "falls back to generic price",
			item:         OrderItemInput{ProductID: 1, Quantity: 4, Price: decimal.RequireFromString("7.25")},
			wantUnit:     "7.25",
			wantSubtotal: "29.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			mockRepo.On("CreateWithLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					lines := args.Get(2).([]model.OrderLine)
					assert.Len(t, lines, 1)
					assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString(tt.wantUnit)))
					assert.True(t, lines[0].Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)))
				}).
				Return(nil)

			service := NewOrderService(mockRepo, &fakeQueue{}, nil)
			_, err := service.CreateOrder(context.Background(), CreateOrderInput{
				UserID:        1,
				Total:         decimal.RequireFromString(tt.wantSubtotal),
				PaymentMethod: "efectivo",
				Items:         []OrderItemInput{tt.item},
			})
			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_CreateOrderSkipsPaymentForCard(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("CreateWithLines", mock.Anything, mock.Anything, mock.Anything, (*model.Payment)(nil)).Return(nil)

	service := NewOrderService(mockRepo, &fakeQueue{}, nil)
	_, err := service.CreateOrder(context.Background(), CreateOrderInput{
		UserID:        5,
		Total:         decimal.RequireFromString("15.00"),
		PaymentMethod: model.PaymentMethodCard,
		Items:         []OrderItemInput{{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("15.00")}},
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrderValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{
			name:  "missing owner",
			input: CreateOrderInput{Items: []OrderItemInput{{ProductID: 1, Quantity: 1}}},
		},
		{
			name:  "empty items",
			input: CreateOrderInput{UserID: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			service := NewOrderService(mockRepo, &fakeQueue{}, nil)

			order, err := service.CreateOrder(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrMissingOrderData)
			assert.Nil(t, order)
			mockRepo.AssertNotCalled(t, "CreateWithLines")
		})
	}
}

func TestOrderService_CreateOrderLineCountMatchesItems(t *testing.T) {
	items := []OrderItemInput{
		{ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		{ProductID: 2, Quantity: 2, UnitPrice: decimal.RequireFromString("8.00")},
		{ProductID: 3, Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
	}

	mockRepo := new(MockOrderRepository)
	mockRepo.On("CreateWithLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lines := args.Get(2).([]model.OrderLine)
			assert.Len(t, lines, len(items))
			for i, line := range lines {
				expected := items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
				assert.True(t, line.Subtotal.Equal(expected))
			}
		}).
		Return(nil)

	service := NewOrderService(mockRepo, &fakeQueue{}, nil)
	_, err := service.CreateOrder(context.Background(), CreateOrderInput{
		UserID:        5,
		Total:         decimal.RequireFromString("28.50"),
		PaymentMethod: "yape",
		Items:         items,
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	owner := &model.User{ID: 5, Name: "Ana", Email: "ana@example.com"}

	tests := []struct {
		name          string
		current       model.OrderStatus
		newStatus     string
		owner         *model.User
		expectedError error
		wantNotify    int
	}{
		{
			name:       "confirm notifies owner",
			current:    model.OrderStatusPending,
			newStatus:  "confirmado",
			owner:      owner,
			wantNotify: 1,
		},
		{
			name:       "deliver notifies owner",
			current:    model.OrderStatusConfirmed,
			newStatus:  "entregado",
			owner:      owner,
			wantNotify: 1,
		},
		{
			name:       "cancel does not notify",
			current:    model.OrderStatusPending,
			newStatus:  "cancelado",
			owner:      owner,
			wantNotify: 0,
		},
		{
			name:       "confirm without known email stays silent",
			current:    model.OrderStatusPending,
			newStatus:  "confirmado",
			owner:      &model.User{ID: 5, Name: "Ana"},
			wantNotify: 0,
		},
		{
			name:          "missing status",
			current:       model.OrderStatusPending,
			newStatus:     "",
			expectedError: apperrors.ErrMissingStatus,
		},
		{
			name:          "unknown status",
			current:       model.OrderStatusPending,
			newStatus:     "lavando",
			expectedError: apperrors.ErrUnknownStatus,
		},
		{
			name:          "transition outside the table",
			current:       model.OrderStatusDelivered,
			newStatus:     "confirmado",
			expectedError: apperrors.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			queue := &fakeQueue{}

			if tt.expectedError == nil || tt.expectedError == apperrors.ErrInvalidTransition {
				mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Order{
					ID:     1,
					Code:   "P-12345678",
					Status: tt.current,
				}, nil)
			}
			if tt.expectedError == nil {
				next, _ := model.ParseOrderStatus(tt.newStatus)
				mockRepo.On("UpdateStatus", mock.Anything, uint(1), next).Return(&model.Order{
					ID:     1,
					Code:   "P-12345678",
					Status: next,
					User:   tt.owner,
				}, nil)
			}

			service := NewOrderService(mockRepo, queue, nil)
			order, err := service.UpdateStatus(context.Background(), 1, tt.newStatus)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, model.OrderStatus(tt.newStatus), order.Status)
			}

			assert.Len(t, queue.messages, tt.wantNotify)
			if tt.wantNotify == 1 {
				msg := queue.messages[0]
				assert.Equal(t, "ana@example.com", msg.Email)
				assert.Equal(t, "Ana", msg.Name)
				assert.Equal(t, "P-12345678", msg.OrderCode)
				assert.Equal(t, model.OrderStatus(tt.newStatus), msg.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatusOrderNotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewOrderService(mockRepo, &fakeQueue{}, nil)
	order, err := service.UpdateStatus(context.Background(), 99, "confirmado")

	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderService_GetOrderNotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewOrderService(mockRepo, &fakeQueue{}, nil)
	order, err := service.GetOrder(context.Background(), 404)

	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestGenerateOrderCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateOrderCode()
		assert.Regexp(t, orderCodePattern, code)
		seen[code] = true
	}
	// Random suffixes should not collide within a small sample.
	assert.Greater(t, len(seen), 90)
}
