package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	s3Mocks "nightlife/infras/s3/mocks"
	"nightlife/infras/otel/mocks"
	bookingMocks "nightlife/internal/domains/booking/mocks"
	"nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/booking/model/dto"
	"nightlife/internal/domains/booking/service"
	catalogMocks "nightlife/internal/domains/catalog/mocks"
	catalogDto "nightlife/internal/domains/catalog/model/dto"
	ledgerMocks "nightlife/internal/domains/ledger/mocks"
	ledgerModel "nightlife/internal/domains/ledger/model"
	ledgerDto "nightlife/internal/domains/ledger/model/dto"
	"nightlife/internal/domains/redemption/cart"
	redemptionMocks "nightlife/internal/domains/redemption/mocks"
	redemptionModel "nightlife/internal/domains/redemption/model"
	venueMocks "nightlife/internal/domains/venue/mocks"
	venueModel "nightlife/internal/domains/venue/model"
	cacheMocks "nightlife/shared/cache/mocks"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	eventMocks "nightlife/shared/event/mocks"
	"nightlife/shared/identity"
	repoMocks "nightlife/shared/repository/mocks"
	"nightlife/shared/timezone"
)

type harness struct {
	repo        *bookingMocks.MockBooking
	venues      *venueMocks.MockVenue
	rooms       *venueMocks.MockRoom
	redemptions *redemptionMocks.MockRedemption
	catalog     *catalogMocks.MockCatalog
	ledger      *ledgerMocks.MockLedger
	carts       *redemptionMocks.MockCart
	transactor  *repoMocks.MockTransactor
	publisher   *eventMocks.MockPublisher
	s3          *s3Mocks.MockS3
	cache       *cacheMocks.MockRedisCache
	cfg         *config.Config
	svc         service.Booking
}

func newHarness(t *testing.T, codes ...string) *harness {
	ctrl := gomock.NewController(t)

	h := &harness{
		repo:        bookingMocks.NewMockBooking(ctrl),
		venues:      venueMocks.NewMockVenue(ctrl),
		rooms:       venueMocks.NewMockRoom(ctrl),
		redemptions: redemptionMocks.NewMockRedemption(ctrl),
		catalog:     catalogMocks.NewMockCatalog(ctrl),
		ledger:      ledgerMocks.NewMockLedger(ctrl),
		carts:       redemptionMocks.NewMockCart(ctrl),
		transactor:  repoMocks.NewMockTransactor(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		cfg:         &config.Config{},
	}

	h.cfg.Booking.CodeLength = 8
	h.cfg.Booking.CodeMaxAttempts = 5
	h.cfg.Booking.IdempotencyTTLSeconds = 60
	h.cfg.External.S3.BucketName = "nightlife"

	if len(codes) == 0 {
		codes = []string{"AB12CD34"}
	}

	calls := 0
	generator := func(int) (string, error) {
		code := codes[min(calls, len(codes)-1)]
		calls++

		return code, nil
	}

	h.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h.svc = service.New(h.repo, h.venues, h.rooms, h.redemptions, h.catalog, h.ledger, h.carts,
		h.transactor, h.publisher, h.s3, h.cfg, h.cache, mocks.NewOtel(), generator)

	return h
}

func (h *harness) inTx() {
	h.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(*sqlx.Tx) error) error { return fn(nil) },
	)
}

func (h *harness) activeVenue() {
	h.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueModel.Venue{
		ID:         "venue-1",
		Name:       "Skybar",
		ManagerIDs: pq.StringArray{"manager-1"},
		Active:     true,
	}, nil)
}

func asUser(id string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: constant.RoleUser})
}

func asManager(id string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: constant.RoleManager})
}

func tomorrow() string {
	return timezone.Today().AddDate(0, 0, 1).Format(constant.DateOnlyFormat)
}

func request() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		VenueID:         "venue-1",
		PreferredDate:   tomorrow(),
		Session:         venueModel.SessionNight,
		Pax:             4,
		ReservationName: "Budi",
	}
}

func priceList() map[string]catalogDto.RedeemItemResponse {
	return map[string]catalogDto.RedeemItemResponse{
		"item-a": {ID: "item-a", Name: "Beer", Amount: 3},
		"item-b": {ID: "item-b", Name: "Wine", Amount: 4},
	}
}

func TestBookingService_Submit_EmptyCartSkipsRedemption(t *testing.T) {
	h := newHarness(t)

	req := request()
	req.FromCart = true

	h.activeVenue()
	h.carts.EXPECT().Lines(gomock.Any(), "venue-1").Return(nil, nil)
	h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	h.carts.EXPECT().Clear(gomock.Any(), "venue-1").Return(nil).AnyTimes()

	res, err := h.svc.Submit(asUser("user-1"), req, "")

	require.NoError(t, err)
	assert.Equal(t, dto.RedemptionSkipped, res.Redemption.Status)
	assert.Equal(t, "AB12CD34", res.BookingCode)
	assert.Equal(t, "AB12CD34001", res.RedemptionCode)
	assert.Equal(t, model.StatusPending, res.Booking.Status)
	assert.False(t, res.Booking.HasRedemption)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_RedeemsCartAtomically(t *testing.T) {
	h := newHarness(t)

	req := request()
	req.FromCart = true

	h.activeVenue()
	h.carts.EXPECT().Lines(gomock.Any(), "venue-1").Return([]cart.Line{
		{ItemID: "item-a", Name: "Beer", Quantity: 2, UnitPrice: 3},
		{ItemID: "item-b", Name: "Wine", Quantity: 1, UnitPrice: 4},
	}, nil)
	h.catalog.EXPECT().ResolvePrices(gomock.Any(), "venue-1", []string{"item-a", "item-b"}).Return(priceList(), nil)
	h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	h.inTx()
	h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), "user-1").Return(true, nil)
	h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rows []redemptionModel.Redemption) error {
			assert.Len(t, rows, 2)
			assert.Equal(t, int64(6), rows[0].Amount)
			assert.Equal(t, int64(4), rows[1].Amount)

			return nil
		})
	h.ledger.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req ledgerDto.DebitRequest) (ledgerModel.Transaction, error) {
			assert.Equal(t, int64(10), req.Amount)
			assert.Equal(t, "user-1", req.UserID)

			return ledgerModel.Transaction{Coins: -10}, nil
		}).Times(1)
	h.carts.EXPECT().Clear(gomock.Any(), "venue-1").Return(nil).AnyTimes()

	res, err := h.svc.Submit(asUser("user-1"), req, "")

	require.NoError(t, err)
	assert.Equal(t, dto.RedemptionApplied, res.Redemption.Status)
	assert.Equal(t, int64(10), res.Redemption.Total)
	assert.Len(t, res.Redemption.Items, 2)
	assert.True(t, res.Booking.HasRedemption)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_UsesServerPrices(t *testing.T) {
	h := newHarness(t)

	req := request()
	req.Redemptions = []dto.RedemptionLineRequest{
		{ItemID: "item-a", Quantity: 1},
		{ItemID: "item-a", Quantity: 2},
	}

	h.activeVenue()
	h.catalog.EXPECT().ResolvePrices(gomock.Any(), "venue-1", []string{"item-a"}).Return(priceList(), nil)
	h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	h.inTx()
	h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
	h.ledger.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Return(ledgerModel.Transaction{}, nil)

	res, err := h.svc.Submit(asUser("user-1"), req, "")

	require.NoError(t, err)
	assert.Equal(t, int64(9), res.Redemption.Total)
	assert.Equal(t, 3, res.Redemption.Items[0].Quantity)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_InsufficientBalanceKeepsBooking(t *testing.T) {
	h := newHarness(t)

	req := request()
	req.Redemptions = []dto.RedemptionLineRequest{{ItemID: "item-b", Quantity: 10}}

	h.activeVenue()
	h.catalog.EXPECT().ResolvePrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(priceList(), nil)
	h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	h.inTx()
	h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.ledger.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Return(ledgerModel.Transaction{}, ledgerModel.ErrInsufficientBalance)

	res, err := h.svc.Submit(asUser("user-1"), req, "")

	require.NoError(t, err)
	assert.Equal(t, dto.RedemptionFailed, res.Redemption.Status)
	assert.Equal(t, dto.ErrorKindInsufficientBalance, res.Redemption.ErrorKind)
	assert.False(t, res.Booking.HasRedemption)
	assert.NotEmpty(t, res.BookingCode)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_RedemptionPersistFailure(t *testing.T) {
	h := newHarness(t)

	req := request()
	req.Redemptions = []dto.RedemptionLineRequest{{ItemID: "item-a", Quantity: 1}}

	h.activeVenue()
	h.catalog.EXPECT().ResolvePrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(priceList(), nil)
	h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	h.inTx()
	h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	res, err := h.svc.Submit(asUser("user-1"), req, "")

	require.NoError(t, err)
	assert.Equal(t, dto.RedemptionFailed, res.Redemption.Status)
	assert.Equal(t, dto.ErrorKindRedemptionPersistFailed, res.Redemption.ErrorKind)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_Failures(t *testing.T) {
	collision := &pq.Error{Code: "23505", Constraint: model.ConstraintBookingCode}

	past := request()
	past.PreferredDate = timezone.Today().AddDate(0, 0, -1).Format(constant.DateOnlyFormat)

	withRoom := request()
	room := "room-1"
	withRoom.RoomID = &room
	withRoom.Pax = 8

	unknownItem := request()
	unknownItem.Redemptions = []dto.RedemptionLineRequest{{ItemID: "ghost", Quantity: 1}}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateBookingRequest
		setupMock func(h *harness)
		wantErr   error
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       request(),
			setupMock: func(*harness) {},
			wantErr:   identity.ErrUnauthenticated,
		},
		{
			name:      "date in the past",
			ctx:       asUser("user-1"),
			req:       past,
			setupMock: func(*harness) {},
			wantErr:   service.ErrDateInPast,
		},
		{
			name: "inactive or unknown venue",
			ctx:  asUser("user-1"),
			req:  request(),
			setupMock: func(h *harness) {
				h.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueModel.Venue{}, nil)
			},
			wantErr: service.ErrVenueNotFound,
		},
		{
			name: "room too small",
			ctx:  asUser("user-1"),
			req:  withRoom,
			setupMock: func(h *harness) {
				h.activeVenue()
				h.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueModel.Room{ID: "room-1", VenueID: "venue-1", Pax: 6}, nil)
			},
			wantErr: service.ErrRoomTooSmall,
		},
		{
			name: "unknown item",
			ctx:  asUser("user-1"),
			req:  unknownItem,
			setupMock: func(h *harness) {
				h.activeVenue()
				h.catalog.EXPECT().ResolvePrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, cart.ErrUnknownItem)
			},
			wantErr: cart.ErrUnknownItem,
		},
		{
			name: "booking persist failure stops everything",
			ctx:  asUser("user-1"),
			req:  request(),
			setupMock: func(h *harness) {
				h.activeVenue()
				h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantErr: service.ErrBookingPersistFailed,
		},
		{
			name: "code generation exhausted",
			ctx:  asUser("user-1"),
			req:  request(),
			setupMock: func(h *harness) {
				h.activeVenue()
				h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(collision).Times(5)
			},
			wantErr: service.ErrCodeGenerationExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setupMock(h)

			_, err := h.svc.Submit(tt.ctx, tt.req, "")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingService_Submit_RetriesCodeCollision(t *testing.T) {
	h := newHarness(t, "DUPLICAT", "FRESH001")

	collision := &pq.Error{Code: "23505", Constraint: model.ConstraintBookingCode}

	h.activeVenue()
	gomock.InOrder(
		h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(collision),
		h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
	)

	res, err := h.svc.Submit(asUser("user-1"), request(), "")

	require.NoError(t, err)
	assert.Equal(t, "FRESH001", res.BookingCode)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Submit_Idempotency(t *testing.T) {
	t.Run("replays stored confirmation", func(t *testing.T) {
		h := newHarness(t)

		h.cache.EXPECT().Get(gomock.Any(), "booking:idempotency:user-1:key-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*dto.BookingConfirmation) = dto.BookingConfirmation{BookingCode: "STORED01"}

				return nil
			})

		res, err := h.svc.Submit(asUser("user-1"), request(), "key-1")

		require.NoError(t, err)
		assert.Equal(t, "STORED01", res.BookingCode)
	})

	t.Run("concurrent duplicate rejected", func(t *testing.T) {
		h := newHarness(t)

		h.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		h.cache.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := h.svc.Submit(asUser("user-1"), request(), "key-1")

		assert.ErrorIs(t, err, service.ErrDuplicateSubmission)
	})

	t.Run("confirmation stored while acquiring the lock is replayed", func(t *testing.T) {
		h := newHarness(t)

		resultKey := "booking:idempotency:user-1:key-1"

		gomock.InOrder(
			h.cache.EXPECT().Get(gomock.Any(), resultKey, gomock.Any()).Return(errors.New("cache miss")),
			h.cache.EXPECT().Lock(gomock.Any(), "booking:idempotency:lock:user-1:key-1", gomock.Any()).Return(true, nil),
			h.cache.EXPECT().Get(gomock.Any(), resultKey, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					*value.(*dto.BookingConfirmation) = dto.BookingConfirmation{BookingCode: "STORED01"}

					return nil
				}),
			h.cache.EXPECT().Delete(gomock.Any(), "booking:idempotency:lock:user-1:key-1").Return(nil),
		)

		res, err := h.svc.Submit(asUser("user-1"), request(), "key-1")

		require.NoError(t, err)
		assert.Equal(t, "STORED01", res.BookingCode)
	})

	t.Run("first submission stores confirmation", func(t *testing.T) {
		h := newHarness(t)

		h.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		h.cache.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		h.activeVenue()
		h.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		h.cache.EXPECT().Save(gomock.Any(), "booking:idempotency:user-1:key-1", gomock.Any(), 60).Return(nil)
		h.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := h.svc.Submit(asUser("user-1"), request(), "key-1")

		require.NoError(t, err)
		assert.Equal(t, "AB12CD34", res.BookingCode)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_ApplyRedemption(t *testing.T) {
	req := dto.ApplyRedemptionRequest{Redemptions: []dto.RedemptionLineRequest{{ItemID: "item-a", Quantity: 2}}}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(h *harness)
		wantTotal int64
		wantErr   error
	}{
		{
			name: "applies to owned booking",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", VenueID: "venue-1", UserID: "user-1"}, nil)
				h.catalog.EXPECT().ResolvePrices(gomock.Any(), "venue-1", gomock.Any()).Return(priceList(), nil)
				h.inTx()
				h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), "booking-1", "user-1").Return(true, nil)
				h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				h.ledger.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Return(ledgerModel.Transaction{}, nil)
			},
			wantTotal: 6,
		},
		{
			name: "already redeemed",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1", HasRedemption: true}, nil)
			},
			wantErr: service.ErrRedemptionAlreadyApplied,
		},
		{
			name: "lost race to another redemption",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", VenueID: "venue-1", UserID: "user-1"}, nil)
				h.catalog.EXPECT().ResolvePrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(priceList(), nil)
				h.inTx()
				h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrRedemptionAlreadyApplied,
		},
		{
			name: "rejected booking",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusRejected}, nil)
			},
			wantErr: service.ErrBookingRejected,
		},
		{
			name: "someone else's booking",
			ctx:  asUser("user-2"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1"}, nil)
			},
			wantErr: service.ErrBookingForbidden,
		},
		{
			name: "insufficient balance",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", VenueID: "venue-1", UserID: "user-1"}, nil)
				h.catalog.EXPECT().ResolvePrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(priceList(), nil)
				h.inTx()
				h.repo.EXPECT().MarkRedeemedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				h.redemptions.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				h.ledger.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Return(ledgerModel.Transaction{}, ledgerModel.ErrInsufficientBalance)
			},
			wantErr: ledgerModel.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setupMock(h)

			res, err := h.svc.ApplyRedemption(tt.ctx, "booking-1", req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, dto.RedemptionApplied, res.Status)
			assert.Equal(t, tt.wantTotal, res.Total)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestBookingService_GetCurrent(t *testing.T) {
	t.Run("summarises redemptions", func(t *testing.T) {
		h := newHarness(t)

		h.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.Booking{{ID: "booking-1", UserID: "user-1", HasRedemption: true, PreferredDate: timezone.Today()}}, nil
			})
		h.redemptions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]redemptionModel.Redemption{
			{Quantity: 2, Amount: 6},
			{Quantity: 1, Amount: 4},
		}, nil)

		res, err := h.svc.GetCurrent(asUser("user-1"))

		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, 3, res.RedeemedItems)
		assert.Equal(t, int64(10), res.RedeemedPoints)
	})

	t.Run("nothing upcoming", func(t *testing.T) {
		h := newHarness(t)

		h.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := h.svc.GetCurrent(asUser("user-1"))

		assert.ErrorIs(t, err, service.ErrNoUpcomingBooking)
	})
}

func TestBookingService_GetVenueBookings(t *testing.T) {
	t.Run("manager sees managed venues", func(t *testing.T) {
		h := newHarness(t)
		arrived := true

		h.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		h.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "ANY(venues.manager_ids)")
				assert.Equal(t, "manager-1", args[venueModel.FieldManagerIDs])
				assert.Equal(t, true, args[model.FieldIsArrived])
				assert.Equal(t, "bookings.created_at", params.SortBy)

				return []model.Booking{{ID: "booking-1"}}, nil
			})

		res, err := h.svc.GetVenueBookings(asManager("manager-1"), gDto.QueryParams{Page: 1, Limit: 10}, dto.MerchantFilter{IsArrived: &arrived})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Bookings, 1)
	})

	t.Run("guests are rejected", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.svc.GetVenueBookings(asUser("user-1"), gDto.QueryParams{}, dto.MerchantFilter{})

		assert.ErrorIs(t, err, service.ErrBookingForbidden)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	pending := model.Booking{ID: "booking-1", VenueID: "venue-1", UserID: "user-1", Status: model.StatusPending, Version: 1}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(h *harness)
		wantErr   error
	}{
		{
			name: "manager accepts",
			ctx:  asManager("manager-1"),
			setupMock: func(h *harness) {
				accepted := pending
				accepted.Status = model.StatusAccepted
				accepted.Version = 2

				gomock.InOrder(
					h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil),
					h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted, nil),
				)
				h.activeVenue()
				h.repo.EXPECT().UpdateStatus(gomock.Any(), "booking-1", model.StatusAccepted, 1, "manager-1").Return(true, nil)
			},
		},
		{
			name: "stale version",
			ctx:  asManager("manager-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
				h.activeVenue()
				h.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrStaleVersion,
		},
		{
			name: "already decided",
			ctx:  asManager("manager-1"),
			setupMock: func(h *harness) {
				rejected := pending
				rejected.Status = model.StatusRejected

				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejected, nil)
				h.activeVenue()
			},
			wantErr: service.ErrStatusFinal,
		},
		{
			name: "manager of another venue",
			ctx:  asManager("manager-9"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
				h.activeVenue()
			},
			wantErr: service.ErrBookingForbidden,
		},
		{
			name: "regular user",
			ctx:  asUser("user-1"),
			setupMock: func(h *harness) {
				h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantErr: service.ErrBookingForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setupMock(h)

			res, err := h.svc.UpdateStatus(tt.ctx, "booking-1", dto.UpdateStatusRequest{Status: model.StatusAccepted, Version: 1})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusAccepted, res.Status)
			assert.Equal(t, 2, res.Version)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestBookingService_UploadReceipt(t *testing.T) {
	oldURL := "https://cdn.example.com/receipts/old.png"
	png := []byte("\x89PNG\r\n\x1a\n0000")

	t.Run("replaces previous receipt", func(t *testing.T) {
		h := newHarness(t)

		h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1", ReceiptURL: &oldURL}, nil)
		h.s3.EXPECT().UploadFileBytes(gomock.Any(), "nightlife", "receipts", gomock.Any(), "image/png", png).
			Return("https://cdn.example.com/receipts/new.png", nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, patch map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, patch[model.FieldHasReceipt])

				return nil
			})
		h.s3.EXPECT().GetObjectNameFromURL("nightlife", oldURL).Return("receipts/old.png")
		h.s3.EXPECT().DeleteFile(gomock.Any(), "nightlife", "", "receipts/old.png").Return(nil)

		res, err := h.svc.UploadReceipt(asUser("user-1"), "booking-1", dto.UploadReceiptRequest{FileName: "../bill.png", File: png})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/receipts/new.png", res.ReceiptURL)
	})

	t.Run("failed save removes upload", func(t *testing.T) {
		h := newHarness(t)

		h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1"}, nil)
		h.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		h.s3.EXPECT().DeleteFile(gomock.Any(), "nightlife", "receipts", gomock.Any()).Return(nil)

		_, err := h.svc.UploadReceipt(asUser("user-1"), "booking-1", dto.UploadReceiptRequest{FileName: "bill.png", File: png})

		assert.Error(t, err)
	})

	t.Run("not the owner", func(t *testing.T) {
		h := newHarness(t)

		h.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", UserID: "user-1"}, nil)

		_, err := h.svc.UploadReceipt(asUser("user-2"), "booking-1", dto.UploadReceiptRequest{FileName: "bill.png", File: png})

		assert.ErrorIs(t, err, service.ErrBookingForbidden)
	})
}
