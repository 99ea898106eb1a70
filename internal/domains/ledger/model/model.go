package model

import (
	"nightlife/shared/failure"
	"nightlife/shared/model"
)

const (
	BalanceTableName  = "drink_dollars"
	BalanceEntityName = "drink_dollar"

	BalanceFieldUserID = "user_id"
	BalanceFieldCoins  = "coins"

	ConstraintCoinsNonNegative = "drink_dollars_coins_check"
)

const (
	TransactionTableName  = "ledger_transactions"
	TransactionEntityName = "ledger_transaction"

	TransactionFieldID        = "id"
	TransactionFieldUserID    = "user_id"
	TransactionFieldBookingID = "booking_id"

	TitleRedeem = "redeem"
)

var ErrInsufficientBalance = failure.UnprocessableEntity("insufficient drink dollars")

// Balance is a user's Drink Dollars. A missing row means a balance of zero.
type Balance struct {
	UserID string `db:"user_id"`
	Coins  int64  `db:"coins"`
	model.Metadata
}

// Transaction is an append-only ledger entry. Coins is signed, negative for debits.
type Transaction struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Coins       int64   `db:"coins"`
	BookingID   *string `db:"booking_id"`
	model.Metadata
}
