package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/otel/mocks"
	catalogMocks "nightlife/internal/domains/catalog/mocks"
	catalogDto "nightlife/internal/domains/catalog/model/dto"
	ledgerMocks "nightlife/internal/domains/ledger/mocks"
	"nightlife/internal/domains/redemption/cart"
	"nightlife/internal/domains/redemption/service"
	"nightlife/shared/cache"
	cacheMocks "nightlife/shared/cache/mocks"
	"nightlife/shared/constant"
	"nightlife/shared/identity"
)

func asUser(id string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: constant.RoleUser})
}

// memoryCache backs the cart mock with a map so a session survives between calls.
func memoryCache(mockCache *cacheMocks.MockRedisCache) map[string]cart.Snapshot {
	store := map[string]cart.Snapshot{}

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			store[key] = value.(cart.Snapshot)

			return nil
		}).AnyTimes()
	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			snapshot, ok := store[key]
			if !ok {
				return fmt.Errorf("failed to get cache value: %w", cache.Nil)
			}

			*value.(*cart.Snapshot) = snapshot

			return nil
		}).AnyTimes()
	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			delete(store, key)

			return nil
		}).AnyTimes()

	return store
}

func TestCartService_Session(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockLedger := ledgerMocks.NewMockLedger(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	memoryCache(mockCache)

	cfg := &config.Config{}
	cfg.Booking.CartTTLSeconds = 600

	svc := service.NewCart(mockCatalog, mockLedger, cfg, mockCache, mocks.NewOtel())
	ctx := asUser("user-1")

	mockLedger.EXPECT().Balance(gomock.Any(), "user-1").Return(int64(10), nil).Times(1)
	mockCatalog.EXPECT().PriceList(gomock.Any(), "venue-1").Return(catalogDto.PriceListResponse{
		VenueID: "venue-1",
		Items: []catalogDto.RedeemItemResponse{
			{ID: "cocktail", Name: "Cocktail", Amount: 6},
			{ID: "wine", Name: "Wine", Amount: 5},
		},
	}, nil)

	opened, err := svc.Open(ctx, "venue-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(10), opened.Balance)
	assert.Empty(t, opened.Lines)
	assert.Len(t, opened.Items, 2)

	res, err := svc.AddItem(ctx, "venue-1", "cocktail")
	assert.NoError(t, err)
	assert.Equal(t, int64(6), res.Total)
	assert.Equal(t, int64(4), res.Remaining)

	_, err = svc.AddItem(ctx, "venue-1", "wine")
	assert.ErrorIs(t, err, cart.ErrInsufficientBalance)

	current, err := svc.Get(ctx, "venue-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(6), current.Total)

	_, err = svc.AddItem(ctx, "venue-1", "beer")
	assert.ErrorIs(t, err, cart.ErrUnknownItem)

	lines, err := svc.Lines(ctx, "venue-1")
	assert.NoError(t, err)
	assert.Equal(t, []cart.Line{{ItemID: "cocktail", Name: "Cocktail", Quantity: 1, UnitPrice: 6}}, lines)

	res, err = svc.RemoveItem(ctx, "venue-1", "cocktail")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)

	assert.NoError(t, svc.Clear(ctx, "venue-1"))

	_, err = svc.Get(ctx, "venue-1")
	assert.ErrorIs(t, err, service.ErrCartNotOpen)
}

func TestCartService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockLedger := ledgerMocks.NewMockLedger(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.NewCart(mockCatalog, mockLedger, &config.Config{}, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "balance lookup fails",
			ctx:  asUser("user-1"),
			setupMock: func() {
				mockLedger.EXPECT().Balance(gomock.Any(), "user-1").Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "cache write fails",
			ctx:  asUser("user-1"),
			setupMock: func() {
				mockLedger.EXPECT().Balance(gomock.Any(), "user-1").Return(int64(5), nil)
				mockCatalog.EXPECT().PriceList(gomock.Any(), "venue-1").Return(catalogDto.PriceListResponse{}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Open(tt.ctx, "venue-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
