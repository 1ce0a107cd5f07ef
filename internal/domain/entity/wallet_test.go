package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_IsCredit(t *testing.T) {
	credits := []TransactionType{TxTopup, TxRefund, TxSaleCredit, TxDeliveryFee}
	for _, tx := range credits {
		assert.True(t, tx.IsCredit(), tx)
	}

	debits := []TransactionType{TxPayment, TxPayout}
	for _, tx := range debits {
		assert.False(t, tx.IsCredit(), tx)
	}
}

func TestTransactionType_Signed(t *testing.T) {
	amount := decimal.RequireFromString("10.00")

	assert.True(t, TxTopup.Signed(amount).Equal(amount))
	assert.True(t, TxPayment.Signed(amount).Equal(amount.Neg()))
}

func TestCashStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, CashPending.CanTransitionTo(CashCollected))
	assert.True(t, CashCollected.CanTransitionTo(CashConfirmed))

	// The ledger is strictly monotonic.
	assert.False(t, CashPending.CanTransitionTo(CashConfirmed))
	assert.False(t, CashConfirmed.CanTransitionTo(CashCollected))
	assert.False(t, CashCollected.CanTransitionTo(CashPending))
	assert.False(t, CashCollected.CanTransitionTo(CashCollected))
}
