package dto

import (
	"math"

	"nightlife/internal/domains/review/model"
	"nightlife/shared"
	gDto "nightlife/shared/dto"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Title            string `json:"title"             validate:"required,min=2,max=100"`
	Comment          string `json:"comment"           validate:"omitempty,max=2000"`
	AtmosphereRating int    `json:"atmosphere_rating" validate:"required,min=1,max=5"`
	PersonnelRating  int    `json:"personnel_rating"  validate:"required,min=1,max=5"`
	PriceRating      int    `json:"price_rating"      validate:"required,min=1,max=5"`
}

// TotalRating is the mean of the three ratings rounded to two decimals.
func (c *CreateReviewRequest) TotalRating() float64 {
	mean := float64(c.AtmosphereRating+c.PersonnelRating+c.PriceRating) / 3

	return math.Round(mean*100) / 100
}

func (c *CreateReviewRequest) ToModel(venueID, userID string) model.Review {
	return model.Review{
		ID:               uuid.NewString(),
		VenueID:          venueID,
		UserID:           userID,
		Title:            c.Title,
		Comment:          c.Comment,
		AtmosphereRating: c.AtmosphereRating,
		PersonnelRating:  c.PersonnelRating,
		PriceRating:      c.PriceRating,
		TotalRating:      c.TotalRating(),
		Metadata:         gModel.NewMetadata(timezone.Now(), userID),
	}
}

type ReviewResponse struct {
	ID               string  `json:"id"`
	VenueID          string  `json:"venue_id"`
	Username         *string `json:"username"`
	Title            string  `json:"title"`
	Comment          string  `json:"comment"`
	AtmosphereRating int     `json:"atmosphere_rating"`
	PersonnelRating  int     `json:"personnel_rating"`
	PriceRating      int     `json:"price_rating"`
	TotalRating      float64 `json:"total_rating"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.VenueID = m.VenueID
	r.Username = m.Username
	r.Title = m.Title
	r.Comment = m.Comment
	r.AtmosphereRating = m.AtmosphereRating
	r.PersonnelRating = m.PersonnelRating
	r.PriceRating = m.PriceRating
	r.TotalRating = m.TotalRating
	r.Metadata.FromModel(m.Metadata)
}

type SummaryResponse struct {
	TotalReviews int     `json:"total_reviews"`
	Overall      float64 `json:"overall"`
	Atmosphere   float64 `json:"atmosphere"`
	Personnel    float64 `json:"personnel"`
	Price        float64 `json:"price"`
}

func (r *SummaryResponse) FromModel(m model.Summary) {
	r.TotalReviews = m.Total
	r.Overall = m.Overall
	r.Atmosphere = m.Atmosphere
	r.Personnel = m.Personnel
	r.Price = m.Price
}

type GetReviewsResponse struct {
	Summary   SummaryResponse  `json:"summary"`
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(summary model.Summary, models []model.Review, totalData, limit int) {
	r.Summary.FromModel(summary)
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}
