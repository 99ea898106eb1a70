package dto

import "nightlife/internal/domains/catalog/model"

type RedeemItemResponse struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	Name        string  `json:"item_name"`
	Description *string `json:"item_description,omitempty"`
	PicPath     *string `json:"pic_path,omitempty"`
	Amount      int64   `json:"amount"`
}

func (r *RedeemItemResponse) FromModel(model model.VenueItem) {
	r.ID = model.ID
	r.ItemID = model.ItemID
	r.Name = model.Name
	r.Description = model.Description
	r.PicPath = model.PicPath
	r.Amount = model.Amount
}

type PriceListResponse struct {
	VenueID string               `json:"venue_id"`
	Items   []RedeemItemResponse `json:"items"`
}

func (r *PriceListResponse) FromModels(venueID string, models []model.VenueItem) {
	r.VenueID = venueID

	r.Items = make([]RedeemItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
