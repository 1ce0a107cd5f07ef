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

// CatalogHandler holds dependencies for product catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

// ListProducts returns the public storefront page of active products.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListActiveProducts(c.Request().Context(), parsePage(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct returns a single product.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

type createProductRequest struct {
	Name        string `json:"name"  validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// CreateProduct lists a new product for the authenticated seller.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid price format")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), sellerID, &usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
}

// UpdateProduct mutates the seller's own product; omitted fields are kept.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	productID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	input := &usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid price format")
		}
		input.Price = &price
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), sellerID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

type setProductActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SetProductActive flips storefront visibility of the seller's product.
func (h *CatalogHandler) SetProductActive(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	productID, err := pathUUID(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req setProductActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid visibility input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetProductActive(c.Request().Context(), sellerID, productID, *req.Active); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product visibility updated")
}

// ListMyProducts returns the authenticated seller's products.
func (h *CatalogHandler) ListMyProducts(c echo.Context) error {
	sellerID, err := actorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	includeInactive := c.QueryParam("include_inactive") == "true"

	products, err := h.uc.ListSellerProducts(c.Request().Context(), sellerID, includeInactive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}
