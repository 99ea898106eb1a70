package dto

import (
	"fmt"
	"mime/multipart"
	"time"

	"nightlife/internal/domains/alcoholbalance/model"
	"nightlife/shared"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateAlcoholBalanceRequest struct {
	VenueID     string   `json:"venue_id"     validate:"required,uuid"`
	AlcoholName string   `json:"alcohol_name" validate:"required,min=2,max=100"`
	Quantity    int      `json:"quantity"     validate:"required,min=1,max=100"`
	ExpiryDate  string   `json:"expiry_date"  validate:"required,dateonly"`
	ImagePaths  []string `json:"image_paths"  validate:"omitempty,max=5,dive,url"`
	Reminder    bool     `json:"reminder"`
}

func (c *CreateAlcoholBalanceRequest) ToModel(userID string) (model.AlcoholBalance, error) {
	expiry, err := timezone.ParseDate(c.ExpiryDate)
	if err != nil {
		return model.AlcoholBalance{}, fmt.Errorf("invalid expiry date: %w", err)
	}

	return model.AlcoholBalance{
		ID:          uuid.NewString(),
		UserID:      userID,
		VenueID:     c.VenueID,
		AlcoholName: c.AlcoholName,
		Quantity:    c.Quantity,
		ExpiryDate:  expiry,
		ImagePaths:  pq.StringArray(c.ImagePaths),
		Reminder:    c.Reminder,
		Metadata:    gModel.NewMetadata(timezone.Now(), userID),
	}, nil
}

// UpdateAlcoholBalanceRequest is a partial update. Pointer fields distinguish zero from absent.
type UpdateAlcoholBalanceRequest struct {
	AlcoholName string         `db:"alcohol_name" json:"alcohol_name" validate:"omitempty,min=2,max=100"`
	Quantity    *int           `db:"quantity"     json:"quantity"     validate:"omitempty,min=0,max=100"`
	ExpiryDate  string         `db:"expiry_date"  json:"expiry_date"  validate:"omitempty,dateonly"`
	ImagePaths  pq.StringArray `db:"image_paths"  json:"image_paths"  validate:"omitempty,max=5,dive,url"`
	Reminder    *bool          `db:"reminder"     json:"reminder"`
}

type AlcoholBalanceResponse struct {
	ID          string   `json:"id"`
	VenueID     string   `json:"venue_id"`
	VenueName   string   `json:"venue_name"`
	AlcoholName string   `json:"alcohol_name"`
	Quantity    int      `json:"quantity"`
	ExpiryDate  string   `json:"expiry_date"`
	Expired     bool     `json:"expired"`
	ImagePaths  []string `json:"image_paths"`
	Reminder    bool     `json:"reminder"`
	gDto.Metadata
}

func (r *AlcoholBalanceResponse) FromModel(model model.AlcoholBalance, now time.Time) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.VenueName = model.VenueName
	r.AlcoholName = model.AlcoholName
	r.Quantity = model.Quantity
	r.ExpiryDate = model.ExpiryDate.Format(constant.DateOnlyFormat)
	r.Expired = model.IsExpired(now)
	r.ImagePaths = model.ImagePaths
	r.Reminder = model.Reminder
	r.Metadata.FromModel(model.Metadata)
}

type GetAlcoholBalancesResponse struct {
	AlcoholBalances []AlcoholBalanceResponse `json:"alcohol_balances"`
	TotalPage       int                      `json:"total_page"`
	TotalData       int                      `json:"total_data"`
}

func (r *GetAlcoholBalancesResponse) FromModels(models []model.AlcoholBalance, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.AlcoholBalances = make([]AlcoholBalanceResponse, len(models))
	for i, m := range models {
		r.AlcoholBalances[i].FromModel(m, now)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
