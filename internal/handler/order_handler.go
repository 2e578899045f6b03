package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tambo/internal/service"
)

// OrderHandler handles order intake, reads and status transitions.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one requested line. "precio" is the storefront's
// generic price field, used when "precio_unitario" is absent.
type OrderItemRequest struct {
	ProductID uint            `json:"producto_id" validate:"required"`
	Quantity  int             `json:"cantidad" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Price     decimal.Decimal `json:"precio"`
}

// CreateOrderRequest represents a new order. "direccion_envio" carries the
// table or time-slot info the storefront collects under that name.
type CreateOrderRequest struct {
	UserID        uint               `json:"usuario_id" validate:"required"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"metodo_pago" validate:"required"`
	Notes         string             `json:"direccion_envio"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerEmail string             `json:"email_cliente"`
}

// UpdateStatusRequest represents a status transition request.
type UpdateStatusRequest struct {
	Status string `json:"estado"`
}

// Create godoc
// @Summary Create an order with its lines and optional payment record
// @Tags pedidos
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pedidos [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), service.CreateOrderInput{
		UserID:        req.UserID,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Pedido creado exitosamente",
		"id":      order.ID,
	})
}

// Get godoc
// @Summary Read an order with embedded lines and product names
// @Tags pedidos
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pedidos/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ID inválido")
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Transition an order's status
// @Tags pedidos
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pedidos/{id} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ID inválido")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Estado actualizado",
		"pedido":  order,
	})
}

// List godoc
// @Summary List all orders for the staff dashboard, newest first
// @Tags admin
// @Produce json
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/pedidos [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
