package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/otel/mocks"
	bookingMocks "nightlife/internal/domains/booking/mocks"
	bookingModel "nightlife/internal/domains/booking/model"
	"nightlife/internal/domains/verification/model/dto"
	"nightlife/internal/domains/verification/service"
	venueMocks "nightlife/internal/domains/venue/mocks"
	venueModel "nightlife/internal/domains/venue/model"
	"nightlife/shared/constant"
	eventMocks "nightlife/shared/event/mocks"
	"nightlife/shared/identity"
	"nightlife/shared/qrcode"
)

func as(id, role string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: role})
}

func accepted() bookingModel.Booking {
	return bookingModel.Booking{
		ID:                "booking-1",
		VenueID:           "venue-1",
		UserID:            "user-1",
		BookingUniqueCode: "AB12CD34",
		RedemptionCode:    "AB12CD34001",
		Status:            bookingModel.StatusAccepted,
	}
}

func managedVenue() venueModel.Venue {
	return venueModel.Venue{ID: "venue-1", ManagerIDs: pq.StringArray{"manager-1"}, Active: true}
}

func TestVerificationService_VerifyArrival(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockVenues := venueMocks.NewMockVenue(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	svc := service.New(mockBookings, mockVenues, mockPublisher, &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name        string
		ctx         context.Context
		code        string
		setupMock   func()
		wantMatched bool
		wantArrived bool
		wantErr     error
	}{
		{
			name: "lowercase code does not match",
			ctx:  as("manager-1", constant.RoleManager),
			code: "ab12cd34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
			},
			wantMatched: false,
			wantArrived: false,
		},
		{
			name: "long foreign payload does not match",
			ctx:  as("manager-1", constant.RoleManager),
			code: "https://example.com/menu?table=" + strings.Repeat("7", 300),
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
			},
			wantMatched: false,
			wantArrived: false,
		},
		{
			name: "exact code marks arrival",
			ctx:  as("manager-1", constant.RoleManager),
			code: "AB12CD34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
				mockBookings.EXPECT().MarkArrived(gomock.Any(), "booking-1", "manager-1").Return(true, nil)
				mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), "booking-1", gomock.Any()).Return(nil).Times(1)
			},
			wantMatched: true,
			wantArrived: true,
		},
		{
			name: "second scan is idempotent",
			ctx:  as("admin-1", constant.RoleAdmin),
			code: "AB12CD34",
			setupMock: func() {
				booking := accepted()
				booking.IsArrived = true

				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantMatched: true,
			wantArrived: true,
		},
		{
			name: "concurrent scan lost the race",
			ctx:  as("manager-1", constant.RoleManager),
			code: "AB12CD34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
				mockBookings.EXPECT().MarkArrived(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantMatched: true,
			wantArrived: true,
		},
		{
			name: "pending booking",
			ctx:  as("manager-1", constant.RoleManager),
			code: "AB12CD34",
			setupMock: func() {
				booking := accepted()
				booking.Status = bookingModel.StatusPending

				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
			},
			wantErr: service.ErrNotAccepted,
		},
		{
			name: "booking owner cannot verify themselves",
			ctx:  as("user-1", constant.RoleUser),
			code: "AB12CD34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
			},
			wantErr: service.ErrForbidden,
		},
		{
			name: "manager of another venue",
			ctx:  as("manager-2", constant.RoleManager),
			code: "AB12CD34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
				mockVenues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedVenue(), nil)
			},
			wantErr: service.ErrForbidden,
		},
		{
			name: "unknown booking",
			ctx:  as("admin-1", constant.RoleAdmin),
			code: "AB12CD34",
			setupMock: func() {
				mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantErr: service.ErrBookingNotFound,
		},
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			code:      "AB12CD34",
			setupMock: func() {},
			wantErr:   identity.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.VerifyArrival(tt.ctx, "booking-1", dto.VerifyArrivalRequest{Code: tt.code})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMatched, res.Matched)
			assert.Equal(t, tt.wantArrived, res.Arrived)

			if !tt.wantMatched {
				assert.Equal(t, dto.MessageWrongCode, res.Message)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestVerificationService_VerifyArrivalFromImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockVenues := venueMocks.NewMockVenue(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	svc := service.New(mockBookings, mockVenues, mockPublisher, &config.Config{}, mocks.NewOtel())

	t.Run("scanned code is verified", func(t *testing.T) {
		frame, err := qrcode.Encode("AB12CD34", 256)
		require.NoError(t, err)

		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)
		mockBookings.EXPECT().MarkArrived(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.VerifyArrivalFromImage(as("admin-1", constant.RoleAdmin), "booking-1", dto.ScanArrivalRequest{Image: frame})

		require.NoError(t, err)
		assert.True(t, res.Matched)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unreadable frame", func(t *testing.T) {
		_, err := svc.VerifyArrivalFromImage(as("admin-1", constant.RoleAdmin), "booking-1", dto.ScanArrivalRequest{Image: []byte("not an image")})

		assert.ErrorIs(t, err, service.ErrNoCodeFound)
	})
}

func TestVerificationService_RenderCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockVenues := venueMocks.NewMockVenue(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	cfg := &config.Config{}
	cfg.Booking.QRCodeSize = 200

	svc := service.New(mockBookings, mockVenues, mockPublisher, cfg, mocks.NewOtel())

	t.Run("owner gets check-in code", func(t *testing.T) {
		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)

		png, err := svc.RenderCheckInCode(as("user-1", constant.RoleUser), "booking-1")
		require.NoError(t, err)

		decoded, err := qrcode.DecodeBytes(png)
		require.NoError(t, err)
		assert.Equal(t, "AB12CD34", decoded)
	})

	t.Run("redemption code needs a redemption", func(t *testing.T) {
		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)

		_, err := svc.RenderRedemptionCode(as("user-1", constant.RoleUser), "booking-1")

		assert.ErrorIs(t, err, service.ErrNoRedemption)
	})

	t.Run("redemption code rendered", func(t *testing.T) {
		booking := accepted()
		booking.HasRedemption = true

		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		png, err := svc.RenderRedemptionCode(as("user-1", constant.RoleUser), "booking-1")
		require.NoError(t, err)

		decoded, err := qrcode.DecodeBytes(png)
		require.NoError(t, err)
		assert.Equal(t, "AB12CD34001", decoded)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(), nil)

		_, err := svc.RenderCheckInCode(as("user-9", constant.RoleUser), "booking-1")

		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockBookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, errors.New("database error"))

		_, err := svc.RenderCheckInCode(as("user-1", constant.RoleUser), "booking-1")

		assert.Error(t, err)
	})
}
