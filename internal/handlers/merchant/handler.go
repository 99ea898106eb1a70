package merchant

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/booking/model"
	bookingDto "nightlife/internal/domains/booking/model/dto"
	bookingService "nightlife/internal/domains/booking/service"
	"nightlife/internal/domains/verification/model/dto"
	verificationService "nightlife/internal/domains/verification/service"
	"nightlife/shared/base64"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/validator"
	"nightlife/transport/http/request"
	"nightlife/transport/http/response"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves venue staff: booking triage and arrival checks.
type Handler struct {
	booking      bookingService.Booking
	verification verificationService.Verification
	otel         otel.Otel
}

func New(booking bookingService.Booking, verification verificationService.Verification, otel otel.Otel) Handler {
	return Handler{
		booking:      booking,
		verification: verification,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/merchant/bookings", func(r chi.Router) {
		r.Get("/", handler.GetVenueBookings)
		r.Patch("/{id}/status", handler.UpdateStatus)
		r.Post("/{id}/verify-arrival", handler.VerifyArrival)
		r.Post("/{id}/verify-arrival/scan", handler.ScanArrival)
	})
}

// GetVenueBookings lists bookings at the venues the caller manages.
// @Summary Get bookings of my venues
// @Tags Merchant
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, accepted, rejected)"
// @Param is_arrived query bool false "Filter by arrival"
// @Success 200 {object} bookingDto.GetBookingsResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/merchant/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetVenueBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filter := bookingDto.MerchantFilter{Status: r.URL.Query().Get(model.FieldStatus)}

	if raw := r.URL.Query().Get(model.FieldIsArrived); raw != "" {
		arrived, err := strconv.ParseBool(raw)
		if err != nil {
			err = failure.BadRequestFromString("is_arrived must be a boolean")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		filter.IsArrived = &arrived
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate filter")

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.GetVenueBookings(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus accepts or rejects a pending booking.
// @Summary Accept or reject a booking
// @Tags Merchant
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body bookingDto.UpdateStatusRequest true "New status and the version the caller last saw"
// @Success 200 {object} bookingDto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/merchant/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	req := bookingDto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + res.ID + " moved to " + res.Status)

	response.WithJSON(w, http.StatusOK, res)
}

// VerifyArrival checks a typed booking code and marks the guest as arrived.
// @Summary Verify arrival by code
// @Tags Merchant
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.VerifyArrivalRequest true "Code presented by the guest"
// @Success 200 {object} dto.VerifyResult
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/merchant/bookings/{id}/verify-arrival [post]
// @Security BearerAuth
func (handler *Handler) VerifyArrival(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyArrival")
	defer scope.End()

	req := dto.VerifyArrivalRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.verification.VerifyArrival(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify arrival")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// scannedFrame reads the camera frame either from a multipart upload or from
// a JSON body carrying a data URL.
func scannedFrame(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeJSON) {
		_, data, err := request.FormFileBytes(r)

		return data, err
	}

	var req dto.ScanFrameRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		return nil, err
	}

	data, _, err := base64.Decode(req.Frame)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	return data, nil
}

// ScanArrival reads the booking code from a photo of the guest's QR.
// @Summary Verify arrival by QR image
// @Description Send the photo as multipart "file", or as JSON {"frame": "data:image/png;base64,..."}.
// @Tags Merchant
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param file formData file false "Photo of the QR code"
// @Success 200 {object} dto.VerifyResult
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/merchant/bookings/{id}/verify-arrival/scan [post]
// @Security BearerAuth
func (handler *Handler) ScanArrival(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ScanArrival")
	defer scope.End()

	data, err := scannedFrame(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read scanned image")

		response.WithError(w, err)

		return
	}

	res, err := handler.verification.VerifyArrivalFromImage(ctx, chi.URLParam(r, constant.RequestParamID), dto.ScanArrivalRequest{Image: data})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify arrival from image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
