package handler

import (
	"log/slog"
	"net/http"

	"jordanmarket/internal/delivery/http/response"
	"jordanmarket/internal/domain/service"
	"jordanmarket/internal/usecase"
	"jordanmarket/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WalletHandler holds dependencies for QANZ wallet handlers.
type WalletHandler struct {
	uc        usecase.WalletUsecase
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewWalletHandler is the constructor for WalletHandler, injected by Fx.
func NewWalletHandler(uc usecase.WalletUsecase, qrService service.QRCodeService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{uc: uc, qrService: qrService, logger: logger}
}

// GetBalance returns the wallet balance, zero when no wallet exists yet.
func (h *WalletHandler) GetBalance(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	balance, err := h.uc.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"balance": util.FormatAmount(balance),
	}, "Balance retrieved successfully")
}

// ListTransactions returns the wallet's movements, newest first.
func (h *WalletHandler) ListTransactions(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	transactions, err := h.uc.ListTransactions(c.Request().Context(), userID, parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, transactions, "Transactions retrieved successfully")
}

type redeemCodeRequest struct {
	Code   string `json:"code"`
	QRData string `json:"qr_data"`
}

// RedeemCode consumes a single-use top-up code, submitted either as the raw
// code or as scanned QR payload data.
func (h *WalletHandler) RedeemCode(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req redeemCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redemption input")
	}

	code := req.Code
	if code == "" && req.QRData != "" {
		parsed, err := h.qrService.ParseTopupQR(req.QRData)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Unrecognized QR payload")
		}
		code = parsed
	}
	if code == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Top-up code is required")
	}

	output, err := h.uc.RedeemCode(c.Request().Context(), userID, code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"amount":  util.FormatAmount(output.Amount),
		"balance": util.FormatAmount(output.Balance),
	}, "Top-up code redeemed")
}
