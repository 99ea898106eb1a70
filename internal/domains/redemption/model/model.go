package model

import "nightlife/shared/model"

const (
	TableName  = "redemptions"
	EntityName = "redemption"

	FieldID        = "id"
	FieldBookingID = "booking_id"
)

// Redemption is one redeemed line of a booking, priced at the time it was applied.
type Redemption struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	ItemID    string `db:"item_id"`
	ItemName  string `db:"item_name"`
	Quantity  int    `db:"quantity"`
	UnitPrice int64  `db:"unit_price"`
	Amount    int64  `db:"amount"`
	model.Metadata
}
