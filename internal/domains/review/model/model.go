package model

import (
	"nightlife/shared/model"
)

const (
	TableName  = "venue_reviews"
	EntityName = "venue_review"

	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldUserID  = "user_id"

	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID               string  `db:"id"`
	VenueID          string  `db:"venue_id"`
	UserID           string  `db:"user_id"`
	Title            string  `db:"title"`
	Comment          string  `db:"comment"`
	AtmosphereRating int     `db:"atmosphere_rating"`
	PersonnelRating  int     `db:"personnel_rating"`
	PriceRating      int     `db:"price_rating"`
	TotalRating      float64 `db:"total_rating"`
	Username         *string `db:"username"          table:"profiles"`
	model.Metadata
}

func (r Review) GetJoinQuery() string {
	return "JOIN profiles ON profiles.id = venue_reviews.user_id"
}

// Summary aggregates every review of one venue. Averages are zero when Total is zero.
type Summary struct {
	Total      int     `db:"total"`
	Overall    float64 `db:"overall"`
	Atmosphere float64 `db:"atmosphere"`
	Personnel  float64 `db:"personnel"`
	Price      float64 `db:"price"`
}
