package booking

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	"nightlife/internal/domains/booking/service"
	verificationService "nightlife/internal/domains/verification/service"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/validator"
	"nightlife/transport/http/request"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Booking
	verification verificationService.Verification
	otel         otel.Otel
}

func New(service service.Booking, verification verificationService.Verification, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		verification: verification,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", handler.CreateBooking)
		r.Get("/mybookings", handler.GetMyBookings)
		r.Get("/current", handler.GetCurrentBooking)
		r.Get("/{id}", handler.GetBookingByID)
		r.Post("/{id}/redemptions", handler.ApplyRedemption)
		r.Post("/{id}/receipt", handler.UploadReceipt)
		r.Get("/{id}/qr/check-in", handler.CheckInCode)
		r.Get("/{id}/qr/redemption", handler.RedemptionCode)
	})
}

// CreateBooking submits a booking and redeems the selected items in one go.
// @Summary Create a new booking
// @Description Create a booking. Redemption lines come from the body or from the open cart and are priced by the server.
// @Tags Booking
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first confirmation for a repeated submission"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingConfirmation "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Submit(ctx, req, r.Header.Get(constant.RequestHeaderIdempotencyKey))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully with code " + res.BookingCode)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMyBookings retrieves the caller's bookings.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, accepted, rejected)"
// @Success 200 {object} dto.GetBookingsResponse "List of user's bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filter := dto.MineFilter{Status: r.URL.Query().Get(model.FieldStatus)}

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate filter")

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetMine(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetCurrentBooking returns the caller's nearest upcoming booking.
// @Summary Get my current booking
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.CurrentBookingResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/current [get]
// @Security BearerAuth
func (handler *Handler) GetCurrentBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentBooking")
	defer scope.End()

	booking, err := handler.service.GetCurrent(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// ApplyRedemption redeems items against a booking that has none yet.
// @Summary Redeem items for a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ApplyRedemptionRequest true "Redemption lines"
// @Success 200 {object} dto.RedemptionOutcome
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/redemptions [post]
// @Security BearerAuth
func (handler *Handler) ApplyRedemption(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyRedemption")
	defer scope.End()

	req := dto.ApplyRedemptionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ApplyRedemption(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply redemption")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadReceipt attaches a payment receipt to the caller's booking.
// @Summary Upload a booking receipt
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param file formData file true "Receipt image"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/receipt [post]
// @Security BearerAuth
func (handler *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadReceipt")
	defer scope.End()

	name, data, err := request.FormFileBytes(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read receipt file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadReceipt(ctx, chi.URLParam(r, constant.RequestParamID), dto.UploadReceiptRequest{
		FileName: name,
		File:     data,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload receipt")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckInCode renders the booking code as a QR image.
// @Summary Get the check-in QR code
// @Tags Booking
// @Produce png
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/qr/check-in [get]
// @Security BearerAuth
func (handler *Handler) CheckInCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckInCode")
	defer scope.End()

	png, err := handler.verification.RenderCheckInCode(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render check-in code")

		response.WithError(w, err)

		return
	}

	response.WithPNG(w, png)
}

// RedemptionCode renders the redemption QR for a booking with redeemed items.
// @Summary Get the redemption QR code
// @Tags Booking
// @Produce png
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/qr/redemption [get]
// @Security BearerAuth
func (handler *Handler) RedemptionCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RedemptionCode")
	defer scope.End()

	png, err := handler.verification.RenderRedemptionCode(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render redemption code")

		response.WithError(w, err)

		return
	}

	response.WithPNG(w, png)
}
