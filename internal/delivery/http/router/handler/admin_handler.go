package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"jordanmarket/internal/delivery/http/response"
	"jordanmarket/internal/domain/entity"
	"jordanmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AdminHandler holds dependencies for platform moderation handlers.
type AdminHandler struct {
	adminUC  usecase.AdminUsecase
	cashUC   usecase.CashUsecase
	walletUC usecase.WalletUsecase
	logger   *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, cashUC usecase.CashUsecase, walletUC usecase.WalletUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, cashUC: cashUC, walletUC: walletUC, logger: logger}
}

// ListUsers returns registered users for the admin console.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context(), parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// VerifySeller flips the user's seller profile to verified.
func (h *AdminHandler) VerifySeller(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.adminUC.VerifySeller(c.Request().Context(), adminID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Seller verified")
}

// VerifyDriver flips the user's driver profile to verified.
func (h *AdminHandler) VerifyDriver(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.adminUC.VerifyDriver(c.Request().Context(), adminID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Driver verified")
}

// ListCashCollections returns collections in one reconciliation state.
func (h *AdminHandler) ListCashCollections(c echo.Context) error {
	status := entity.CashStatus(c.QueryParam("status"))
	if status == "" {
		status = entity.CashCollected
	}

	collections, err := h.cashUC.ListByStatus(c.Request().Context(), status, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collections, "Cash collections retrieved")
}

// CashSummary returns aggregate cash amounts per reconciliation state.
func (h *AdminHandler) CashSummary(c echo.Context) error {
	summary, err := h.cashUC.Summary(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Cash summary retrieved")
}

// ConfirmCashReceipt acknowledges handed-over cash and settles wallets.
func (h *AdminHandler) ConfirmCashReceipt(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	collectionID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	collection, err := h.cashUC.ConfirmReceipt(c.Request().Context(), adminID, collectionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collection, "Cash receipt confirmed")
}

type issueCodeRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// IssueTopupCode mints a single-use top-up code with its QR voucher.
func (h *AdminHandler) IssueTopupCode(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req issueCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid top-up code input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid amount format")
	}

	output, err := h.walletUC.IssueCode(c.Request().Context(), adminID, amount)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"code":   output.Code,
		"qr_png": base64.StdEncoding.EncodeToString(output.QRPNG),
	}, "Top-up code issued")
}

// ListTopupCodes returns issued codes, newest first.
func (h *AdminHandler) ListTopupCodes(c echo.Context) error {
	codes, err := h.walletUC.ListCodes(c.Request().Context(), parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codes, "Top-up codes retrieved")
}
