package dto

import (
	"nightlife/internal/domains/favourite/model"
	"nightlife/shared"
	gDto "nightlife/shared/dto"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"

	"github.com/google/uuid"
)

func NewFavourite(userID, venueID string) model.Favourite {
	return model.Favourite{
		ID:       uuid.NewString(),
		UserID:   userID,
		VenueID:  venueID,
		Metadata: gModel.NewMetadata(timezone.Now(), userID),
	}
}

type FavouriteResponse struct {
	ID         string   `json:"id"`
	VenueID    string   `json:"venue_id"`
	VenueName  string   `json:"venue_name"`
	Categories []string `json:"categories"`
	Address    string   `json:"address"`
	ImageURL   *string  `json:"image_url"`
	gDto.Metadata
}

func (r *FavouriteResponse) FromModel(m model.Favourite) {
	r.ID = m.ID
	r.VenueID = m.VenueID
	r.VenueName = m.VenueName
	r.Categories = m.VenueCategories
	r.Address = m.VenueAddress
	r.ImageURL = m.VenueImageURL
	r.Metadata.FromModel(m.Metadata)
}

type GetFavouritesResponse struct {
	Favourites []FavouriteResponse `json:"favourites"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetFavouritesResponse) FromModels(models []model.Favourite, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Favourites = make([]FavouriteResponse, len(models))
	for i, m := range models {
		r.Favourites[i].FromModel(m)
	}
}

// FavouriteStatusResponse answers "is this venue saved" for the venue page heart icon.
type FavouriteStatusResponse struct {
	VenueID   string `json:"venue_id"`
	Favourite bool   `json:"favourite"`
}
