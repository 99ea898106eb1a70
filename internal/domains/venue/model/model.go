package model

import (
	"slices"

	"nightlife/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID         = "id"
	FieldName       = "venue_name"
	FieldCategories = "categories"
	FieldManagerIDs = "manager_ids"
	FieldActive     = "active"
)

const (
	RoomTableName  = "venue_rooms"
	RoomEntityName = "venue_room"

	RoomFieldID       = "id"
	RoomFieldVenueID  = "venue_id"
	RoomFieldRoomType = "room_type"
	RoomFieldPax      = "pax"
)

const (
	SessionHappy   = "happy"
	SessionNight   = "night"
	SessionMorning = "morning"
)

type Venue struct {
	ID           string         `db:"id"`
	Name         string         `db:"venue_name"`
	Categories   pq.StringArray `db:"categories"`
	Address      string         `db:"address"`
	Latitude     float64        `db:"latitude"`
	Longitude    float64        `db:"longitude"`
	PricingTier  string         `db:"pricing_tier"`
	MinSpend     int64          `db:"min_spend"`
	HappyHours   string         `db:"happy_hours"`
	NightHours   string         `db:"night_hours"`
	MorningHours string         `db:"morning_hours"`
	ImageURL     *string        `db:"image_url"`
	ManagerIDs   pq.StringArray `db:"manager_ids"`
	Active       bool           `db:"active"`
	model.Metadata
}

// IsManagedBy reports whether userID is one of the venue's managers.
func (v Venue) IsManagedBy(userID string) bool {
	return userID != "" && slices.Contains(v.ManagerIDs, userID)
}

// HoursFor returns the opening window of a booking session, empty when the session is unknown.
func (v Venue) HoursFor(session string) string {
	switch session {
	case SessionHappy:
		return v.HappyHours
	case SessionNight:
		return v.NightHours
	case SessionMorning:
		return v.MorningHours
	default:
		return ""
	}
}

type Room struct {
	ID               string `db:"id"`
	VenueID          string `db:"venue_id"`
	RoomType         string `db:"room_type"`
	Pax              int    `db:"pax"`
	MinSpend         int64  `db:"min_spend"`
	HappyHourPrice   int64  `db:"happy_hour_price"`
	NightHourPrice   int64  `db:"night_hour_price"`
	MorningHourPrice int64  `db:"morning_hour_price"`
	model.Metadata
}
