package model

import (
	"time"

	"nightlife/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldVenueID           = "venue_id"
	FieldUserID            = "user_id"
	FieldPreferredDate     = "preferred_date"
	FieldBookingUniqueCode = "booking_unique_code"
	FieldStatus            = "status"
	FieldVersion           = "version"
	FieldHasRedemption     = "has_redemption"
	FieldIsArrived         = "is_arrived"
	FieldArrivedAt         = "arrived_at"
	FieldHasReceipt        = "has_receipt"
	FieldReceiptURL        = "receipt_url"

	ConstraintBookingCode = "bookings_booking_unique_code_key"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// RedemptionCodeSuffix is appended to the booking code to form the redemption code.
const RedemptionCodeSuffix = "001"

type Booking struct {
	ID                string     `db:"id"`
	VenueID           string     `db:"venue_id"`
	UserID            string     `db:"user_id"`
	RoomID            *string    `db:"room_id"`
	PreferredDate     time.Time  `db:"preferred_date"`
	Session           string     `db:"session"`
	Pax               int        `db:"pax"`
	ReservationName   string     `db:"reservation_name"`
	ManagerID         *string    `db:"manager_id"`
	Notes             *string    `db:"notes"`
	BookingUniqueCode string     `db:"booking_unique_code"`
	RedemptionCode    string     `db:"redemption_code"`
	Status            string     `db:"status"`
	Version           int        `db:"version"`
	HasRedemption     bool       `db:"has_redemption"`
	IsArrived         bool       `db:"is_arrived"`
	ArrivedAt         *time.Time `db:"arrived_at"`
	HasReceipt        bool       `db:"has_receipt"`
	ReceiptURL        *string    `db:"receipt_url"`
	VenueName         string     `db:"venue_name" table:"venues"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN venues ON venues.id = bookings.venue_id"
}

func (b Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// RedemptionCodeFor derives the redemption code from a booking code. The result is stable.
func RedemptionCodeFor(bookingCode string) string {
	return bookingCode + RedemptionCodeSuffix
}
