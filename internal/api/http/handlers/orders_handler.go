package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrdersHandler exposes order endpoints. Placing an order needs any
// authenticated caller; administration needs the admin privilege.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /api/v1/orders. The order is placed on behalf of the
// authenticated subject; the claims come from the gate.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing credential")
	}

	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ShippingAddress1 == "" || req.City == "" || req.Zip == "" || req.Country == "" || req.Phone == "" {
		return apperrors.NewValidationError("shippingAddress1, city, zip, country, phone required", nil)
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order := &domain.Order{
		UserID:           claims.SubjectID,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
	}
	placed, err := h.orders.PlaceOrder(c.Context(), order, lines)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"order": dto.NewOrderResponse(placed)},
	})
}

// List handles GET /api/v1/orders (admin).
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.NewOrderListResponse(orders)}})
}

// Get handles GET /api/v1/orders/:id. Admins may read any order; other
// callers only their own.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing credential")
	}

	order, err := h.orders.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	if !claims.IsAdmin && order.UserID != claims.SubjectID {
		return apperrors.NewForbidden("not your order")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order": dto.NewOrderResponse(order)}})
}

// UserOrders handles GET /api/v1/orders/get/userorders/:id (admin).
func (h *OrdersHandler) UserOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListUserOrders(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.NewOrderListResponse(orders)}})
}

// Count handles GET /api/v1/orders/get/count (admin).
func (h *OrdersHandler) Count(c *fiber.Ctx) error {
	count, err := h.orders.CountOrders(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// TotalSales handles GET /api/v1/orders/get/totalsales (admin).
func (h *OrdersHandler) TotalSales(c *fiber.Ctx) error {
	total, err := h.orders.TotalSales(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"totalSales": total}})
}

// UpdateStatus handles PUT /api/v1/orders/:id (admin).
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order": dto.NewOrderResponse(order)}})
}

// Delete handles DELETE /api/v1/orders/:id (admin).
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
