package dto

import (
	"fmt"
	"time"

	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/redemption/cart"
	redemptionDto "nightlife/internal/domains/redemption/model/dto"
	"nightlife/shared"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"

	"github.com/google/uuid"
)

const (
	RedemptionApplied = "applied"
	RedemptionFailed  = "failed"
	RedemptionSkipped = "skipped"

	ErrorKindInsufficientBalance     = "insufficient_balance"
	ErrorKindRedemptionPersistFailed = "redemption_persist_failed"
)

// RedemptionLineRequest selects an item by its venue price list id. Prices are never taken from the client.
type RedemptionLineRequest struct {
	ItemID   string `json:"item_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=99"`
}

type CreateBookingRequest struct {
	VenueID         string                  `json:"venue_id"         validate:"required,uuid"`
	RoomID          *string                 `json:"room_id"          validate:"omitempty,uuid"`
	PreferredDate   string                  `json:"preferred_date"   validate:"required,dateonly"`
	Session         string                  `json:"session"          validate:"required,oneof=happy night morning"`
	Pax             int                     `json:"pax"              validate:"required,min=1,max=10"`
	ReservationName string                  `json:"reservation_name" validate:"required,max=100"`
	Notes           *string                 `json:"notes"            validate:"omitempty,max=500"`
	Redemptions     []RedemptionLineRequest `json:"redemptions"      validate:"omitempty,max=50,dive"`
	FromCart        bool                    `json:"from_cart"`
}

func (c *CreateBookingRequest) ParseDate() (time.Time, error) {
	date, err := timezone.ParseDate(c.PreferredDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid preferred date: %w", err)
	}

	return date, nil
}

func (c *CreateBookingRequest) ToModel(userID string, date time.Time, code string, managerID *string) model.Booking {
	return model.Booking{
		ID:                uuid.NewString(),
		VenueID:           c.VenueID,
		UserID:            userID,
		RoomID:            c.RoomID,
		PreferredDate:     date,
		Session:           c.Session,
		Pax:               c.Pax,
		ReservationName:   c.ReservationName,
		ManagerID:         managerID,
		Notes:             c.Notes,
		BookingUniqueCode: code,
		RedemptionCode:    model.RedemptionCodeFor(code),
		Status:            model.StatusPending,
		Version:           1,
		Metadata:          gModel.NewMetadata(timezone.Now(), userID),
	}
}

type ApplyRedemptionRequest struct {
	Redemptions []RedemptionLineRequest `json:"redemptions" validate:"required,min=1,max=50,dive"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=accepted rejected"`
	Version int    `json:"version" validate:"required,min=1"`
}

type BookingResponse struct {
	ID                string  `json:"id"`
	VenueID           string  `json:"venue_id"`
	VenueName         string  `json:"venue_name,omitempty"`
	UserID            string  `json:"user_id"`
	RoomID            *string `json:"room_id,omitempty"`
	PreferredDate     string  `json:"preferred_date"`
	Session           string  `json:"session"`
	Pax               int     `json:"pax"`
	ReservationName   string  `json:"reservation_name"`
	ManagerID         *string `json:"manager_id,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	BookingUniqueCode string  `json:"booking_unique_code"`
	RedemptionCode    string  `json:"redemption_code"`
	Status            string  `json:"status"`
	Version           int     `json:"version"`
	HasRedemption     bool    `json:"has_redemption"`
	IsArrived         bool    `json:"is_arrived"`
	ArrivedAt         *string `json:"arrived_at,omitempty"`
	HasReceipt        bool    `json:"has_receipt"`
	ReceiptURL        *string `json:"receipt_url,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.VenueName = model.VenueName
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.PreferredDate = model.PreferredDate.Format(constant.DateOnlyFormat)
	r.Session = model.Session
	r.Pax = model.Pax
	r.ReservationName = model.ReservationName
	r.ManagerID = model.ManagerID
	r.Notes = model.Notes
	r.BookingUniqueCode = model.BookingUniqueCode
	r.RedemptionCode = model.RedemptionCode
	r.Status = model.Status
	r.Version = model.Version
	r.HasRedemption = model.HasRedemption
	r.IsArrived = model.IsArrived
	r.HasReceipt = model.HasReceipt
	r.ReceiptURL = model.ReceiptURL
	r.Metadata.FromModel(model.Metadata)

	r.ArrivedAt = timezone.FormatPtr(model.ArrivedAt, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// RedemptionOutcome reports what happened to the redemption part of a submission.
// Skipped means nothing was selected, which is not the same as a failed attempt.
type RedemptionOutcome struct {
	Status    string                             `json:"status"`
	ErrorKind string                             `json:"error_kind,omitempty"`
	Message   string                             `json:"message,omitempty"`
	Items     []redemptionDto.RedemptionResponse `json:"items,omitempty"`
	Total     int64                              `json:"total"`
}

func SkippedRedemption() RedemptionOutcome {
	return RedemptionOutcome{Status: RedemptionSkipped}
}

func AppliedRedemption(lines []cart.Line) RedemptionOutcome {
	outcome := RedemptionOutcome{
		Status: RedemptionApplied,
		Items:  make([]redemptionDto.RedemptionResponse, len(lines)),
		Total:  cart.TotalOf(lines),
	}

	for i, line := range lines {
		outcome.Items[i] = redemptionDto.RedemptionResponse{
			ItemID:    line.ItemID,
			ItemName:  line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount(),
		}
	}

	return outcome
}

func FailedRedemption(kind string, err error) RedemptionOutcome {
	return RedemptionOutcome{
		Status:    RedemptionFailed,
		ErrorKind: kind,
		Message:   err.Error(),
	}
}

type BookingConfirmation struct {
	Booking        BookingResponse   `json:"booking"`
	BookingCode    string            `json:"booking_code"`
	RedemptionCode string            `json:"redemption_code"`
	Redemption     RedemptionOutcome `json:"redemption"`
}

func (c *BookingConfirmation) FromModel(model model.Booking, outcome RedemptionOutcome) {
	c.Booking.FromModel(model)
	c.BookingCode = model.BookingUniqueCode
	c.RedemptionCode = model.RedemptionCode
	c.Redemption = outcome
}

// CurrentBookingResponse is the upcoming booking with a short redemption summary.
type CurrentBookingResponse struct {
	BookingResponse
	RedeemedItems  int   `json:"redeemed_items"`
	RedeemedPoints int64 `json:"redeemed_points"`
}

type ReceiptResponse struct {
	BookingID  string `json:"booking_id"`
	ReceiptURL string `json:"receipt_url"`
}

type UploadReceiptRequest struct {
	FileName string
	File     []byte
}

type MerchantFilter struct {
	Status    string `validate:"omitempty,oneof=pending accepted rejected"`
	IsArrived *bool
}

type MineFilter struct {
	Status string `validate:"omitempty,oneof=pending accepted rejected"`
}

// Event payloads
type BookingCreatedEvent struct {
	BookingID   string `json:"booking_id"`
	VenueID     string `json:"venue_id"`
	UserID      string `json:"user_id"`
	BookingCode string `json:"booking_code"`
	Date        string `json:"preferred_date"`
	Session     string `json:"session"`
	Pax         int    `json:"pax"`
}

func (e *BookingCreatedEvent) FromModel(model model.Booking) {
	e.BookingID = model.ID
	e.VenueID = model.VenueID
	e.UserID = model.UserID
	e.BookingCode = model.BookingUniqueCode
	e.Date = model.PreferredDate.Format(constant.DateOnlyFormat)
	e.Session = model.Session
	e.Pax = model.Pax
}

type RedemptionAppliedEvent struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Items     int    `json:"items"`
	Total     int64  `json:"total"`
}

type StatusChangedEvent struct {
	BookingID string `json:"booking_id"`
	VenueID   string `json:"venue_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	Version   int    `json:"version"`
}
