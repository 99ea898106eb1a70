package model

import (
	"nightlife/shared/failure"
	"nightlife/shared/model"
)

const (
	TableName     = "venue_redeem_items"
	EntityName    = "venue_redeem_item"
	ItemTableName = "redeem_items"

	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldItemID  = "item_id"
	FieldAmount  = "amount"
	FieldName    = "item_name"
)

var ErrUnknownItem = failure.BadRequestFromString("item is not on the venue's price list")

// VenueItem is a redeemable item priced for one venue. Its ID is the id clients select by.
type VenueItem struct {
	ID          string  `db:"id"`
	VenueID     string  `db:"venue_id"`
	ItemID      string  `db:"item_id"`
	Amount      int64   `db:"amount"`
	Name        string  `db:"item_name"        table:"redeem_items"`
	Description *string `db:"item_description" table:"redeem_items"`
	PicPath     *string `db:"pic_path"         table:"redeem_items"`
	model.Metadata
}

func (VenueItem) GetJoinQuery() string {
	return "JOIN redeem_items ON redeem_items.id = venue_redeem_items.item_id"
}
