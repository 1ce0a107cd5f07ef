package handler

import (
	"log/slog"
	"net/http"

	"jordanmarket/internal/delivery/http/response"
	"jordanmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DriverHandler holds dependencies for driver-side delivery and cash handlers.
type DriverHandler struct {
	deliveryUC usecase.DeliveryUsecase
	cashUC     usecase.CashUsecase
	logger     *slog.Logger
}

// NewDriverHandler is the constructor for DriverHandler, injected by Fx.
func NewDriverHandler(deliveryUC usecase.DeliveryUsecase, cashUC usecase.CashUsecase, logger *slog.Logger) *DriverHandler {
	return &DriverHandler{deliveryUC: deliveryUC, cashUC: cashUC, logger: logger}
}

// ListAvailableDeliveries returns the open delivery board.
func (h *DriverHandler) ListAvailableDeliveries(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	deliveries, err := h.deliveryUC.ListAvailableDeliveries(c.Request().Context(), driverID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deliveries, "Available deliveries retrieved")
}

// ListMyDeliveries returns the authenticated driver's deliveries.
func (h *DriverHandler) ListMyDeliveries(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	deliveries, err := h.deliveryUC.ListMyDeliveries(c.Request().Context(), driverID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deliveries, "Deliveries retrieved")
}

// AcceptDelivery claims an available delivery; first accept wins.
func (h *DriverHandler) AcceptDelivery(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	deliveryID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	delivery, err := h.deliveryUC.AcceptDelivery(c.Request().Context(), driverID, deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery accepted")
}

// MarkPickedUp stamps pickup on the driver's delivery.
func (h *DriverHandler) MarkPickedUp(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	deliveryID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	delivery, err := h.deliveryUC.MarkPickedUp(c.Request().Context(), driverID, deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery picked up")
}

type completeDeliveryRequest struct {
	CashCollected string `json:"cash_collected" validate:"required"`
}

// CompleteDelivery stamps completion and records the cash taken at the door.
func (h *DriverHandler) CompleteDelivery(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	deliveryID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req completeDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	cashCollected, err := decimal.NewFromString(req.CashCollected)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cash amount format")
	}

	delivery, err := h.deliveryUC.CompleteDelivery(c.Request().Context(), driverID, deliveryID, cashCollected)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, delivery, "Delivery completed")
}

// ListMyCashCollections returns the driver's COD ledger entries.
func (h *DriverHandler) ListMyCashCollections(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	collections, err := h.cashUC.ListMyCollections(c.Request().Context(), driverID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collections, "Cash collections retrieved")
}

type markCollectedRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// MarkCashCollected records the amount the driver physically holds.
func (h *DriverHandler) MarkCashCollected(c echo.Context) error {
	driverID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	collectionID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req markCollectedRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid amount input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid amount format")
	}

	collection, err := h.cashUC.MarkCollected(c.Request().Context(), driverID, collectionID, amount)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collection, "Cash collection recorded")
}
