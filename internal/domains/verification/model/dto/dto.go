package dto

const MessageWrongCode = "wrong code, try again"

// VerifyArrivalRequest carries whatever the scanner read. Any text that is not the
// booking code, however long, is a mismatch rather than a bad request.
type VerifyArrivalRequest struct {
	Code string `json:"code" validate:"required,max=8192"`
}

type ScanArrivalRequest struct {
	Image []byte
}

// ScanFrameRequest carries a camera frame as a data URL, as produced by
// canvas.toDataURL in the scanner page.
type ScanFrameRequest struct {
	Frame string `json:"frame" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=8"`
}

// VerifyResult tells the scanner whether the presented code belongs to the booking.
// Arrived is the booking's arrival flag after the check.
type VerifyResult struct {
	BookingID string `json:"booking_id"`
	Matched   bool   `json:"matched"`
	Arrived   bool   `json:"arrived"`
	Message   string `json:"message,omitempty"`
}

type ArrivedEvent struct {
	BookingID  string `json:"booking_id"`
	VenueID    string `json:"venue_id"`
	UserID     string `json:"user_id"`
	VerifiedBy string `json:"verified_by"`
}
