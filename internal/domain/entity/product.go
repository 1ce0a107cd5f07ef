package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by a seller.
// Stock is decremented only through order placement; a product referenced by
// historical order items is deactivated rather than deleted.
type Product struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available reports whether the product can currently be ordered in the given quantity.
func (p *Product) Available(quantity int) bool {
	return p.IsActive && quantity > 0 && p.Stock >= quantity
}
