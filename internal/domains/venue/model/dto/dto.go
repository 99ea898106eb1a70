package dto

import (
	"nightlife/internal/domains/venue/model"
	"nightlife/shared"
	gDto "nightlife/shared/dto"
)

type VenueFilter struct {
	Category string
	Name     string
}

type RoomResponse struct {
	ID               string `json:"id"`
	RoomType         string `json:"room_type"`
	Pax              int    `json:"pax"`
	MinSpend         int64  `json:"min_spend"`
	HappyHourPrice   int64  `json:"happy_hour_price"`
	NightHourPrice   int64  `json:"night_hour_price"`
	MorningHourPrice int64  `json:"morning_hour_price"`
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomType = model.RoomType
	r.Pax = model.Pax
	r.MinSpend = model.MinSpend
	r.HappyHourPrice = model.HappyHourPrice
	r.NightHourPrice = model.NightHourPrice
	r.MorningHourPrice = model.MorningHourPrice
}

type VenueResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"venue_name"`
	Categories   []string       `json:"categories"`
	Address      string         `json:"address"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	PricingTier  string         `json:"pricing_tier"`
	MinSpend     int64          `json:"min_spend"`
	HappyHours   string         `json:"happy_hours"`
	NightHours   string         `json:"night_hours"`
	MorningHours string         `json:"morning_hours"`
	ImageURL     *string        `json:"image_url,omitempty"`
	Rooms        []RoomResponse `json:"rooms,omitempty"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.Name = model.Name
	r.Categories = []string(model.Categories)
	r.Address = model.Address
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.PricingTier = model.PricingTier
	r.MinSpend = model.MinSpend
	r.HappyHours = model.HappyHours
	r.NightHours = model.NightHours
	r.MorningHours = model.MorningHours
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

func (r *VenueResponse) WithRooms(rooms []model.Room) {
	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}
