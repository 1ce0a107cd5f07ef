package handler

import (
	"log/slog"
	"net/http"

	"jordanmarket/internal/delivery/http/response"
	"jordanmarket/internal/domain/entity"
	"jordanmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// Checkout turns the authenticated buyer's cart into a placed order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	buyerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.Checkout(c.Request().Context(), buyerID, &usecase.CheckoutInput{
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// GetOrder returns one order visible to the actor (buyer, seller, or admin).
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMyOrders returns the authenticated buyer's orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	buyerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	orders, err := h.uc.ListBuyerOrders(c.Request().Context(), buyerID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListSellerOrders returns the authenticated seller's incoming orders.
func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	orders, err := h.uc.ListSellerOrders(c.Request().Context(), sellerID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

type advanceOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdvanceOrder moves the seller's order to the exact next fulfilment state.
func (h *OrderHandler) AdvanceOrder(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req advanceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.AdvanceOrder(c.Request().Context(), sellerID, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// CancelOrder cancels an order while it is still placed or accepted.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled")
}
