package service

import (
	"context"
	"fmt"

	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	redemptionModel "nightlife/internal/domains/redemption/model"
	venueModel "nightlife/internal/domains/venue/model"
	"nightlife/shared"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/identity"
	"nightlife/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	sortCreatedAt     = model.TableName + ".created_at"
	sortPreferredDate = model.TableName + "." + model.FieldPreferredDate
)

// GetCurrent returns the caller's nearest booking from today on that was not rejected.
func (s *serviceImpl) GetCurrent(ctx context.Context) (res dto.CurrentBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCurrent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: caller.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldPreferredDate, Value: timezone.Today(), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusRejected, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: 1, SortBy: sortPreferredDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming booking")

		return res, fmt.Errorf("failed to get upcoming booking: %w", err)
	}

	if len(bookings) == 0 {
		return res, ErrNoUpcomingBooking
	}

	res.FromModel(bookings[0])

	if !bookings[0].HasRedemption {
		return res, nil
	}

	redemptions, err := s.redemptionRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByFields(redemptionModel.TableName, redemptionModel.FieldBookingID, bookings[0].ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get redemptions")

		return res, fmt.Errorf("failed to get redemptions: %w", err)
	}

	for _, redemption := range redemptions {
		res.RedeemedItems += redemption.Quantity
		res.RedeemedPoints += redemption.Amount
	}

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams, filter dto.MineFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	params.RestrictSort(sortCreatedAt, gDto.SortDirDesc, sortCreatedAt, sortPreferredDate)

	group := shared.FilterByFields(model.TableName, model.FieldUserID, caller.UserID)
	if filter.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldStatus, Value: filter.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	return s.list(ctx, params, group)
}

// Get returns a booking to its owner, an admin, or a manager of the venue.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
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

	if !booking.IsOwnedBy(caller.UserID) {
		if err = s.authorizeStaff(ctx, caller, booking); err != nil {
			return res, err
		}
	}

	res.FromModel(booking)

	return res, nil
}

// GetVenueBookings lists bookings for the venues the caller manages. Admins see every venue.
func (s *serviceImpl) GetVenueBookings(ctx context.Context, params gDto.QueryParams, filter dto.MerchantFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVenueBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	if !caller.IsStaff() {
		return res, ErrBookingForbidden
	}

	params.RestrictSort(sortCreatedAt, gDto.SortDirDesc, sortCreatedAt, sortPreferredDate)

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if !caller.IsAdmin() {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: venueModel.FieldManagerIDs, Value: caller.UserID, Operator: gDto.FilterOperatorAny, Table: venueModel.TableName,
		})
	}

	if filter.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldStatus, Value: filter.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if filter.IsArrived != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldIsArrived, Value: *filter.IsArrived, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	return s.list(ctx, params, group)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}
