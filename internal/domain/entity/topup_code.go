package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopupCode is an admin-issued single-use code redeemable once for a fixed
// QANZ amount. It is redeemable only while RedeemedBy is nil.
type TopupCode struct {
	ID         uuid.UUID
	Code       string
	Amount     decimal.Decimal
	CreatedBy  uuid.UUID
	RedeemedBy *uuid.UUID
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

// Redeemed reports whether the code has already been consumed.
func (c *TopupCode) Redeemed() bool {
	return c.RedeemedBy != nil
}
