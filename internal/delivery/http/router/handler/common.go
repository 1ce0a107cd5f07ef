// Package handler contains the HTTP handlers for the marketplace API.
package handler

import (
	"net/http"
	"strconv"

	"jordanmarket/internal/delivery/http/middleware"
	"jordanmarket/internal/delivery/http/response"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// actorID extracts the authenticated user ID set by the auth middleware.
func actorID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	return userID, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidInput.WrapMessage("invalid " + name)
	}

	return id, nil
}

// parsePage reads limit/offset query parameters; defaults are applied by
// Page.Normalize in the usecase layer.
func parsePage(c echo.Context) usecase.Page {
	var page usecase.Page
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		page.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		page.Offset = offset
	}

	return page
}
