package service

import (
	"context"
	"fmt"

	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	"nightlife/shared/constant"
	"nightlife/shared/event"
	"nightlife/shared/identity"

	"github.com/rs/zerolog/log"
)

// UpdateStatus lets venue staff accept or reject a pending booking. The caller's version
// must match the stored one.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeStaff(ctx, caller, booking); err != nil {
		return res, err
	}

	if booking.Status != model.StatusPending {
		return res, ErrStatusFinal
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status, req.Version, caller.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !updated {
		return res, ErrStaleVersion
	}

	booking, err = s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		payload := dto.StatusChangedEvent{
			BookingID: booking.ID,
			VenueID:   booking.VenueID,
			UserID:    booking.UserID,
			Status:    booking.Status,
			Version:   booking.Version,
		}

		if err := s.publisher.Publish(c, event.TopicBookingStatusChanged, booking.ID, payload); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish status change")
		}
	}()

	return res, nil
}
