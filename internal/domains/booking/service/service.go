package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/infras/s3"
	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	"nightlife/internal/domains/booking/repository"
	catalogService "nightlife/internal/domains/catalog/service"
	ledgerModel "nightlife/internal/domains/ledger/model"
	ledgerDto "nightlife/internal/domains/ledger/model/dto"
	ledgerService "nightlife/internal/domains/ledger/service"
	"nightlife/internal/domains/redemption/cart"
	redemptionDto "nightlife/internal/domains/redemption/model/dto"
	redemptionRepo "nightlife/internal/domains/redemption/repository"
	redemptionService "nightlife/internal/domains/redemption/service"
	venueModel "nightlife/internal/domains/venue/model"
	venueRepo "nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/event"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	"nightlife/shared/randcode"
	gRepo "nightlife/shared/repository"
	"nightlife/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheIdempotency     = "booking:idempotency"
	cacheIdempotencyLock = "booking:idempotency:lock"

	defaultCodeLength     = 8
	defaultIdempotencyTTL = 86400
	idempotencyLockTTL    = 30
)

var (
	ErrBookingPersistFailed     = failure.InternalError(errors.New("booking could not be saved, please try again"))
	ErrRedemptionPersistFailed  = failure.InternalError(errors.New("booking confirmed, redemption failed, please retry redemption separately"))
	ErrCodeGenerationExhausted  = failure.InternalError(errors.New("could not allocate a unique booking code, please try again"))
	ErrRedemptionAlreadyApplied = failure.Conflict("booking already has a redemption")
	ErrStaleVersion             = failure.Conflict("booking was changed by someone else, reload and try again")
	ErrStatusFinal              = failure.Conflict("booking status can no longer change")
	ErrBookingRejected          = failure.Conflict("booking was rejected, drink dollars cannot be redeemed on it")
	ErrDuplicateSubmission      = failure.Conflict("a submission with this idempotency key is still in progress")
	ErrBookingNotFound          = failure.NotFound("booking not found")
	ErrBookingForbidden         = failure.Forbidden("you do not have access to this booking")
	ErrNoUpcomingBooking        = failure.NotFound("no upcoming booking")
	ErrVenueNotFound            = failure.BadRequestFromString("venue does not exist")
	ErrRoomNotFound             = failure.BadRequestFromString("room does not belong to the venue")
	ErrRoomTooSmall             = failure.BadRequestFromString("party size exceeds room capacity")
	ErrDateInPast               = failure.BadRequestFromString("preferred date is in the past")
	ErrInvalidDate              = failure.BadRequestFromString("preferred date must be formatted as YYYY-MM-DD")
)

type Booking interface {
	Submit(ctx context.Context, req dto.CreateBookingRequest, idempotencyKey string) (dto.BookingConfirmation, error)
	ApplyRedemption(ctx context.Context, id string, req dto.ApplyRedemptionRequest) (dto.RedemptionOutcome, error)
	GetCurrent(ctx context.Context) (dto.CurrentBookingResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams, filter dto.MineFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetVenueBookings(ctx context.Context, params gDto.QueryParams, filter dto.MerchantFilter) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	UploadReceipt(ctx context.Context, id string, req dto.UploadReceiptRequest) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	venueRepo      venueRepo.Venue
	roomRepo       venueRepo.Room
	redemptionRepo redemptionRepo.Redemption
	catalog        catalogService.Catalog
	ledger         ledgerService.Ledger
	carts          redemptionService.Cart
	transactor     gRepo.Transactor
	publisher      event.Publisher
	s3             s3.S3
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
	codes          randcode.Generator
}

func New(
	repo repository.Booking,
	venueRepo venueRepo.Venue,
	roomRepo venueRepo.Room,
	redemptionRepo redemptionRepo.Redemption,
	catalog catalogService.Catalog,
	ledger ledgerService.Ledger,
	carts redemptionService.Cart,
	transactor gRepo.Transactor,
	publisher event.Publisher,
	s3 s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	codes randcode.Generator,
) Booking {
	return &serviceImpl{
		repo:           repo,
		venueRepo:      venueRepo,
		roomRepo:       roomRepo,
		redemptionRepo: redemptionRepo,
		catalog:        catalog,
		ledger:         ledger,
		carts:          carts,
		transactor:     transactor,
		publisher:      publisher,
		s3:             s3,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
		codes:          codes,
	}
}

// Submit persists a booking and, when items were selected, applies the redemption in one
// transaction. The booking is the commit point: a failed redemption is reported in the
// confirmation and leaves the booking in place.
func (s *serviceImpl) Submit(ctx context.Context, req dto.CreateBookingRequest, idempotencyKey string) (res dto.BookingConfirmation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	if idempotencyKey != constant.Empty {
		resultKey := shared.BuildCacheKey(cacheIdempotency, caller.UserID, idempotencyKey)

		if stored, ok := s.storedConfirmation(ctx, resultKey); ok {
			return stored, nil
		}

		lockKey := shared.BuildCacheKey(cacheIdempotencyLock, caller.UserID, idempotencyKey)

		acquired, err := s.cache.Lock(ctx, lockKey, idempotencyLockTTL)
		if err != nil {
			return res, fmt.Errorf("failed to lock submission: %w", err)
		}

		if !acquired {
			return res, ErrDuplicateSubmission
		}

		defer func() {
			if err := s.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
				log.Error().Err(err).Str("key", lockKey).Msg("failed to release submission lock")
			}
		}()

		// The holder before us may have finished between the first read and the lock.
		if stored, ok := s.storedConfirmation(ctx, resultKey); ok {
			return stored, nil
		}
	}

	date, err := req.ParseDate()
	if err != nil {
		return res, ErrInvalidDate
	}

	if date.Before(timezone.Today()) {
		return res, ErrDateInPast
	}

	venue, err := s.validatePlace(ctx, req)
	if err != nil {
		return res, err
	}

	lines, err := s.selectedLines(ctx, req)
	if err != nil {
		return res, err
	}

	var managerID *string
	if len(venue.ManagerIDs) > 0 {
		managerID = &venue.ManagerIDs[0]
	}

	booking, err := s.insertWithUniqueCode(ctx, req, caller.UserID, date, managerID)
	if err != nil {
		return res, err
	}

	booking.VenueName = venue.Name

	outcome := dto.SkippedRedemption()

	if len(lines) > 0 {
		switch err := s.redeem(ctx, booking, lines, caller.UserID); {
		case err == nil:
			booking.HasRedemption = true
			outcome = dto.AppliedRedemption(lines)
		case errors.Is(err, ledgerModel.ErrInsufficientBalance):
			outcome = dto.FailedRedemption(dto.ErrorKindInsufficientBalance, err)
		default:
			outcome = dto.FailedRedemption(dto.ErrorKindRedemptionPersistFailed, ErrRedemptionPersistFailed)
		}
	}

	res.FromModel(booking, outcome)

	log.Info().
		Str("booking_id", booking.ID).
		Str("user_id", caller.UserID).
		Str("redemption", outcome.Status).
		Int64("redeemed_total", outcome.Total).
		Msg("booking submitted")

	if idempotencyKey != constant.Empty {
		ttl := s.cfg.Booking.IdempotencyTTLSeconds
		if ttl <= 0 {
			ttl = defaultIdempotencyTTL
		}

		resultKey := shared.BuildCacheKey(cacheIdempotency, caller.UserID, idempotencyKey)
		if err := s.cache.Save(ctx, resultKey, res, ttl); err != nil {
			log.Error().Err(err).Msg("failed to save booking confirmation for replay")
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		var created dto.BookingCreatedEvent
		created.FromModel(booking)

		if err := s.publisher.Publish(c, event.TopicBookingCreated, booking.ID, created); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking created")
		}

		if outcome.Status == dto.RedemptionApplied {
			s.publishRedemption(c, booking, lines)
		}

		if req.FromCart && outcome.Status != dto.RedemptionFailed {
			if err := s.carts.Clear(c, booking.VenueID); err != nil {
				log.Error().Err(err).Msg("failed to clear cart after booking")
			}
		}
	}()

	return res, nil
}

// ApplyRedemption redeems items against an existing booking that has none yet.
func (s *serviceImpl) ApplyRedemption(ctx context.Context, id string, req dto.ApplyRedemptionRequest) (res dto.RedemptionOutcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyRedemption")
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
		return res, ErrBookingForbidden
	}

	if booking.Status == model.StatusRejected {
		return res, ErrBookingRejected
	}

	if booking.HasRedemption {
		return res, ErrRedemptionAlreadyApplied
	}

	lines, err := s.priceLines(ctx, booking.VenueID, req.Redemptions)
	if err != nil {
		return res, err
	}

	if err = s.redeem(ctx, booking, lines, caller.UserID); err != nil {
		if errors.Is(err, ledgerModel.ErrInsufficientBalance) || errors.Is(err, ErrRedemptionAlreadyApplied) {
			return res, err
		}

		return res, ErrRedemptionPersistFailed
	}

	go s.publishRedemption(context.WithoutCancel(ctx), booking, lines)

	return dto.AppliedRedemption(lines), nil
}

// redeem runs the redemption unit: claim the booking, write the redemption rows, debit the
// balance and append the ledger entry. Nothing is kept unless every step succeeds.
func (s *serviceImpl) redeem(ctx context.Context, booking model.Booking, lines []cart.Line, userID string) error {
	total := cart.TotalOf(lines)

	err := s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		claimed, err := s.repo.MarkRedeemedTx(ctx, tx, booking.ID, userID)
		if err != nil {
			return err
		}

		if !claimed {
			return ErrRedemptionAlreadyApplied
		}

		rows := redemptionDto.ToModels(booking.ID, lines, timezone.Now(), userID)
		if err = s.redemptionRepo.InsertBulkTx(ctx, tx, rows); err != nil {
			return err
		}

		if total == 0 {
			return nil
		}

		_, err = s.ledger.Debit(ctx, tx, ledgerDto.DebitRequest{
			UserID:      userID,
			Amount:      total,
			Description: fmt.Sprintf("Redeemed %d item(s) for booking %s", len(lines), booking.BookingUniqueCode),
			BookingID:   booking.ID,
		})

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Int64("total", total).Msg("redemption rolled back")

		return err
	}

	return nil
}

func (s *serviceImpl) insertWithUniqueCode(ctx context.Context, req dto.CreateBookingRequest, userID string, date time.Time, managerID *string) (model.Booking, error) {
	length := s.cfg.Booking.CodeLength
	if length <= 0 {
		length = defaultCodeLength
	}

	attempts := max(s.cfg.Booking.CodeMaxAttempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		code, err := s.codes(length)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate booking code")

			return model.Booking{}, ErrBookingPersistFailed
		}

		booking := req.ToModel(userID, date, code, managerID)

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			return booking, nil
		}

		if gRepo.IsUniqueViolation(err, model.ConstraintBookingCode) {
			log.Warn().Int("attempt", attempt).Msg("booking code collision, regenerating")

			continue
		}

		log.Error().Err(err).Msg("failed to create booking")

		return model.Booking{}, ErrBookingPersistFailed
	}

	return model.Booking{}, ErrCodeGenerationExhausted
}

func (s *serviceImpl) storedConfirmation(ctx context.Context, resultKey string) (dto.BookingConfirmation, bool) {
	var stored dto.BookingConfirmation
	if err := s.cache.Get(ctx, resultKey, &stored); err != nil {
		return dto.BookingConfirmation{}, false
	}

	log.Info().Str("key", resultKey).Msg("replaying booking confirmation")

	return stored, true
}

func (s *serviceImpl) validatePlace(ctx context.Context, req dto.CreateBookingRequest) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByFields(venueModel.TableName, venueModel.FieldID, req.VenueID, venueModel.FieldActive, true))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, ErrVenueNotFound
	}

	if req.RoomID == nil {
		return venue, nil
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByFields(venueModel.RoomTableName,
		venueModel.RoomFieldID, *req.RoomID,
		venueModel.RoomFieldVenueID, venue.ID,
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return venue, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return venue, ErrRoomNotFound
	}

	if room.Pax > 0 && req.Pax > room.Pax {
		return venue, ErrRoomTooSmall
	}

	return venue, nil
}

// selectedLines gathers the requested items from the body or the open cart and prices them.
func (s *serviceImpl) selectedLines(ctx context.Context, req dto.CreateBookingRequest) ([]cart.Line, error) {
	requested := req.Redemptions

	if req.FromCart {
		cartLines, err := s.carts.Lines(ctx, req.VenueID)
		if err != nil && !errors.Is(err, redemptionService.ErrCartNotOpen) {
			return nil, err
		}

		for _, line := range cartLines {
			requested = append(requested, dto.RedemptionLineRequest{ItemID: line.ItemID, Quantity: line.Quantity})
		}
	}

	return s.priceLines(ctx, req.VenueID, requested)
}

// priceLines merges repeated items and prices every line from the venue's current price list.
func (s *serviceImpl) priceLines(ctx context.Context, venueID string, requested []dto.RedemptionLineRequest) ([]cart.Line, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(requested))
	quantities := make(map[string]int, len(requested))

	for _, line := range requested {
		if _, seen := quantities[line.ItemID]; !seen {
			ids = append(ids, line.ItemID)
		}

		quantities[line.ItemID] += line.Quantity
	}

	prices, err := s.catalog.ResolvePrices(ctx, venueID, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(ids))
	for _, id := range ids {
		price := prices[id]

		lines = append(lines, cart.Line{
			ItemID:    id,
			Name:      price.Name,
			Quantity:  quantities[id],
			UnitPrice: price.Amount,
		})
	}

	return lines, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, ErrBookingNotFound
	}

	return booking, nil
}

// authorizeStaff allows admins and the managers of the booking's venue.
func (s *serviceImpl) authorizeStaff(ctx context.Context, caller identity.Identity, booking model.Booking) error {
	if caller.IsAdmin() {
		return nil
	}

	if !caller.HasRole(constant.RoleManager) {
		return ErrBookingForbidden
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(booking.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if !venue.IsManagedBy(caller.UserID) {
		return ErrBookingForbidden
	}

	return nil
}

func (s *serviceImpl) publishRedemption(ctx context.Context, booking model.Booking, lines []cart.Line) {
	payload := dto.RedemptionAppliedEvent{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Items:     len(lines),
		Total:     cart.TotalOf(lines),
	}

	if err := s.publisher.Publish(ctx, event.TopicRedemptionApplied, booking.ID, payload); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish redemption applied")
	}
}
