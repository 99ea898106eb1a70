package model

import (
	"time"

	"nightlife/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "alcohol_balances"
	EntityName = "alcoholbalance"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldVenueID     = "venue_id"
	FieldAlcoholName = "alcohol_name"
	FieldExpiryDate  = "expiry_date"
	FieldImagePaths  = "image_paths"
)

// AlcoholBalance is a bottle a guest keeps at a venue between visits.
type AlcoholBalance struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	VenueID     string         `db:"venue_id"`
	AlcoholName string         `db:"alcohol_name"`
	Quantity    int            `db:"quantity"`
	ExpiryDate  time.Time      `db:"expiry_date"`
	ImagePaths  pq.StringArray `db:"image_paths"`
	Reminder    bool           `db:"reminder"`
	VenueName   string         `db:"venue_name"     table:"venues"`
	model.Metadata
}

func (a AlcoholBalance) GetJoinQuery() string {
	return "JOIN venues ON venues.id = alcohol_balances.venue_id"
}

func (a AlcoholBalance) IsExpired(now time.Time) bool {
	return !a.ExpiryDate.IsZero() && a.ExpiryDate.Before(now)
}
