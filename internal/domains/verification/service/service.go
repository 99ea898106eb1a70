package service

import (
	"bytes"
	"context"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	bookingModel "nightlife/internal/domains/booking/model"
	bookingRepo "nightlife/internal/domains/booking/repository"
	"nightlife/internal/domains/verification/model/dto"
	venueModel "nightlife/internal/domains/venue/model"
	venueRepo "nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/constant"
	"nightlife/shared/event"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	"nightlife/shared/qrcode"

	"github.com/rs/zerolog/log"
)

var (
	ErrBookingNotFound      = failure.NotFound("booking not found")
	ErrNoRedemption         = failure.NotFound("booking has no redemption")
	ErrForbidden            = failure.Forbidden("you do not have access to this booking")
	ErrNotAccepted          = failure.Conflict("booking has not been accepted")
	ErrNoCodeFound          = failure.BadRequestFromString("no code found")
	ErrVerificationMismatch = failure.UnprocessableEntity(dto.MessageWrongCode)
)

type Verification interface {
	RenderCheckInCode(ctx context.Context, bookingID string) ([]byte, error)
	RenderRedemptionCode(ctx context.Context, bookingID string) ([]byte, error)
	VerifyArrival(ctx context.Context, bookingID string, req dto.VerifyArrivalRequest) (dto.VerifyResult, error)
	VerifyArrivalFromImage(ctx context.Context, bookingID string, req dto.ScanArrivalRequest) (dto.VerifyResult, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	venueRepo   venueRepo.Venue
	publisher   event.Publisher
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, venueRepo venueRepo.Venue, publisher event.Publisher, cfg *config.Config, otel otel.Otel) Verification {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		publisher:   publisher,
		cfg:         cfg,
		otel:        otel,
	}
}

// RenderCheckInCode draws the booking code for the owner or the venue's staff.
func (s *serviceImpl) RenderCheckInCode(ctx context.Context, bookingID string) (png []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RenderCheckInCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.visibleBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return s.render(booking.BookingUniqueCode)
}

func (s *serviceImpl) RenderRedemptionCode(ctx context.Context, bookingID string) (png []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RenderRedemptionCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.visibleBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.HasRedemption {
		return nil, ErrNoRedemption
	}

	return s.render(booking.RedemptionCode)
}

// VerifyArrival compares a scanned code with the booking code, byte for byte.
// A mismatch is a normal answer, not an error.
func (s *serviceImpl) VerifyArrival(ctx context.Context, bookingID string, req dto.VerifyArrivalRequest) (res dto.VerifyResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyArrival")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if err = s.authorizeStaff(ctx, caller, booking); err != nil {
		return res, err
	}

	if booking.Status != bookingModel.StatusAccepted {
		return res, ErrNotAccepted
	}

	res.BookingID = booking.ID
	res.Arrived = booking.IsArrived

	if req.Code != booking.BookingUniqueCode {
		log.Warn().Str("booking_id", booking.ID).Str("verified_by", caller.UserID).Msg("arrival code mismatch")

		res.Message = ErrVerificationMismatch.Error()

		return res, nil
	}

	res.Matched = true
	res.Arrived = true

	if booking.IsArrived {
		return res, nil
	}

	first, err := s.bookingRepo.MarkArrived(ctx, booking.ID, caller.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to mark arrival")

		return dto.VerifyResult{}, fmt.Errorf("failed to mark arrival: %w", err)
	}

	if !first {
		return res, nil
	}

	log.Info().Str("booking_id", booking.ID).Str("verified_by", caller.UserID).Msg("guest arrived")

	go func() {
		c := context.WithoutCancel(ctx)

		payload := dto.ArrivedEvent{
			BookingID:  booking.ID,
			VenueID:    booking.VenueID,
			UserID:     booking.UserID,
			VerifiedBy: caller.UserID,
		}

		if err := s.publisher.Publish(c, event.TopicBookingArrived, booking.ID, payload); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish arrival")
		}
	}()

	return res, nil
}

// VerifyArrivalFromImage reads the code from a camera frame before verifying it.
func (s *serviceImpl) VerifyArrivalFromImage(ctx context.Context, bookingID string, req dto.ScanArrivalRequest) (res dto.VerifyResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyArrivalFromImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code, err := qrcode.Decode(bytes.NewReader(req.Image))
	if err != nil {
		log.Warn().Err(err).Str("booking_id", bookingID).Msg("could not read code from image")

		return res, ErrNoCodeFound
	}

	return s.VerifyArrival(ctx, bookingID, dto.VerifyArrivalRequest{Code: code})
}

func (s *serviceImpl) render(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, s.cfg.Booking.QRCodeSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to render qr code")

		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return png, nil
}

func (s *serviceImpl) visibleBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	caller, err := identity.FromContext(ctx)
	if err != nil {
		return bookingModel.Booking{}, err
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return booking, err
	}

	if booking.IsOwnedBy(caller.UserID) {
		return booking, nil
	}

	return booking, s.authorizeStaff(ctx, caller, booking)
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, ErrBookingNotFound
	}

	return booking, nil
}

func (s *serviceImpl) authorizeStaff(ctx context.Context, caller identity.Identity, booking bookingModel.Booking) error {
	if caller.IsAdmin() {
		return nil
	}

	if !caller.HasRole(constant.RoleManager) {
		return ErrForbidden
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(booking.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if !venue.IsManagedBy(caller.UserID) {
		return ErrForbidden
	}

	return nil
}

