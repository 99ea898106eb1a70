package model

import (
	"nightlife/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "favourites"
	EntityName = "favourite"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldVenueID = "venue_id"

	ConstraintUserVenue = "favourites_user_venue_key"
)

// Favourite is a venue a user saved. Venue columns are read through the join.
type Favourite struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	VenueID         string         `db:"venue_id"`
	VenueName       string         `db:"venue_name"                          table:"venues"`
	VenueCategories pq.StringArray `db:"venue_categories" column:"categories" table:"venues"`
	VenueAddress    string         `db:"venue_address"    column:"address"    table:"venues"`
	VenueImageURL   *string        `db:"venue_image_url"  column:"image_url"  table:"venues"`
	model.Metadata
}

func (f Favourite) GetJoinQuery() string {
	return "JOIN venues ON venues.id = favourites.venue_id"
}
