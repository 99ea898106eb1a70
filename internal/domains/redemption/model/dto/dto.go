package dto

import (
	"cmp"
	"slices"
	"time"

	"nightlife/internal/domains/redemption/cart"
	"nightlife/internal/domains/redemption/model"
	gModel "nightlife/shared/model"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
}

type CartResponse struct {
	VenueID   string      `json:"venue_id"`
	Balance   int64       `json:"balance"`
	Total     int64       `json:"total"`
	Remaining int64       `json:"remaining"`
	Lines     []cart.Line `json:"lines"`
	Items     []cart.Item `json:"items"`
}

func (r *CartResponse) FromCart(venueID string, c *cart.Cart) {
	r.VenueID = venueID
	r.Balance = c.Balance()
	r.Total = c.Total()
	r.Remaining = r.Balance - r.Total
	r.Lines = c.Finalize()

	if r.Lines == nil {
		r.Lines = []cart.Line{}
	}

	snapshot := c.Snapshot()

	r.Items = make([]cart.Item, 0, len(snapshot.PriceList))
	for _, item := range snapshot.PriceList {
		r.Items = append(r.Items, item)
	}

	slices.SortFunc(r.Items, func(a, b cart.Item) int { return cmp.Compare(a.Name, b.Name) })
}

type RedemptionResponse struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
}

func (r *RedemptionResponse) FromModel(model model.Redemption) {
	r.ItemID = model.ItemID
	r.ItemName = model.ItemName
	r.Quantity = model.Quantity
	r.UnitPrice = model.UnitPrice
	r.Amount = model.Amount
}

// ToModels turns priced lines into redemption rows for bookingID.
func ToModels(bookingID string, lines []cart.Line, now time.Time, actor string) []model.Redemption {
	models := make([]model.Redemption, len(lines))
	for i, line := range lines {
		models[i] = model.Redemption{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			ItemID:    line.ItemID,
			ItemName:  line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount(),
			Metadata:  gModel.NewMetadata(now, actor),
		}
	}

	return models
}
