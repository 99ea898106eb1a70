package validator_test

import (
	"net/http"
	"nightlife/shared/failure"
	"nightlife/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	VenueID       string `json:"venue_id"       validate:"required"`
	Pax           int    `json:"pax"            validate:"gte=1,lte=10"`
	Session       string `json:"session"        validate:"required,oneof=happy night morning"`
	PreferredDate string `json:"preferred_date" validate:"required,dateonly"`
}

func validBooking() bookingRequest {
	return bookingRequest{
		VenueID:       "venue-1",
		Pax:           4,
		Session:       "night",
		PreferredDate: "2026-12-31",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *bookingRequest)
		wantErr string
	}{
		{name: "valid request", mutate: func(*bookingRequest) {}},
		{name: "missing venue", mutate: func(r *bookingRequest) { r.VenueID = "" }, wantErr: "venue_id is required"},
		{name: "zero pax", mutate: func(r *bookingRequest) { r.Pax = 0 }, wantErr: "pax must be greater than or equal to 1"},
		{name: "too many pax", mutate: func(r *bookingRequest) { r.Pax = 11 }, wantErr: "pax must be less than or equal to 10"},
		{name: "unknown session", mutate: func(r *bookingRequest) { r.Session = "brunch" }, wantErr: "session must be one of happy night morning"},
		{name: "malformed date", mutate: func(r *bookingRequest) { r.PreferredDate = "31/12/2026" }, wantErr: "preferred_date must be a date in YYYY-MM-DD format"},
		{name: "impossible date", mutate: func(r *bookingRequest) { r.PreferredDate = "2026-02-30" }, wantErr: "preferred_date must be a date in YYYY-MM-DD format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "booking code", field: "AB12CD34", tag: "required,bookingcode", wantErr: false},
		{name: "lowercase booking code", field: "ab12cd34", tag: "required,bookingcode", wantErr: true},
		{name: "booking code with symbols", field: "AB-2CD34", tag: "required,bookingcode", wantErr: true},
		{name: "exact length", field: "AB12CD34", tag: "len=8", wantErr: false},
		{name: "wrong length", field: "AB12CD3", tag: "len=8", wantErr: true},
		{name: "valid email", field: "guest@example.com", tag: "email", wantErr: false},
		{name: "invalid email", field: "guest", tag: "email", wantErr: true},
		{name: "empty required", field: "", tag: "required", wantErr: true},
		{name: "mimetype from base64", field: "data:image/png;base64,AAAA", tag: "mimetypes=image/png image/jpeg", wantErr: false},
		{name: "mimetype not allowed", field: "data:text/plain;base64,AAAA", tag: "mimetypes=image/png image/jpeg", wantErr: true},
		{name: "mimetype missing prefix", field: "AAAA", tag: "mimetypes=image/png", wantErr: true},
		{name: "within max file size", field: "AAAA", tag: "maxfilesize=1", wantErr: false},
		{name: "over max file size", field: strings.Repeat("A", 2*1024*1024), tag: "maxfilesize=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"venue_id":"v1","pax":2,"session":"happy","preferred_date":"2026-11-01"}`, wantErr: false},
		{name: "rule violation", body: `{"venue_id":"v1","pax":20,"session":"happy","preferred_date":"2026-11-01"}`, wantErr: true},
		{name: "malformed json", body: `{"venue_id":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 2, req.Pax)
			}
		})
	}
}

func TestFieldNameFallsBackToStructField(t *testing.T) {
	type filter struct {
		Status string `json:"-" validate:"required"`
	}

	err := validator.ValidateStruct(&filter{})

	assert.EqualError(t, err, "Status is required")
}

func TestValidateStructReportsEveryViolation(t *testing.T) {
	req := validBooking()
	req.VenueID = ""
	req.Pax = 0

	err := validator.ValidateStruct(&req)

	assert.EqualError(t, err, "venue_id is required; pax must be greater than or equal to 1")
}
