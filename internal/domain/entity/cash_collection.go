package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashStatus is the reconciliation state of a cash-on-delivery collection.
// The chain is strictly monotonic: pending -> collected -> confirmed.
type CashStatus string

const (
	CashPending   CashStatus = "pending"
	CashCollected CashStatus = "collected"
	CashConfirmed CashStatus = "confirmed"
)

// String returns the string representation of the status.
func (s CashStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s CashStatus) CanTransitionTo(next CashStatus) bool {
	switch next {
	case CashCollected:
		return s == CashPending
	case CashConfirmed:
		return s == CashCollected
	default:
		return false
	}
}

// CashCollection tracks physical cash from driver collection through admin
// confirmation. AmountCollected is set only at the collected transition.
type CashCollection struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	DriverID        uuid.UUID
	Status          CashStatus
	AmountExpected  decimal.Decimal
	AmountCollected decimal.Decimal
	CollectedAt     *time.Time
	ConfirmedAt     *time.Time
	ConfirmedBy     *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CashSummary is the admin aggregate view over the collection ledger.
type CashSummary struct {
	PendingWithDrivers   decimal.Decimal
	AwaitingConfirmation decimal.Decimal
	Confirmed            decimal.Decimal
}
