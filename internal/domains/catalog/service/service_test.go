package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/otel/mocks"
	catalogMocks "nightlife/internal/domains/catalog/mocks"
	"nightlife/internal/domains/catalog/model"
	"nightlife/internal/domains/catalog/service"
	cacheMocks "nightlife/shared/cache/mocks"
	gDto "nightlife/shared/dto"
)

func TestCatalogService_PriceList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockVenueItem(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantItems int
		wantErr   bool
	}{
		{
			name: "loads price list",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.VenueItem{
					{ID: "vi-1", VenueID: "venue-1", ItemID: "beer", Name: "Beer", Amount: 30},
					{ID: "vi-2", VenueID: "venue-1", ItemID: "wine", Name: "Wine", Amount: 50},
				}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantItems: 2,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.PriceList(context.Background(), "venue-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Items, tt.wantItems)
				assert.Equal(t, "venue-1", res.VenueID)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestCatalogService_ResolvePrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockVenueItem(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	priced := []model.VenueItem{
		{ID: "vi-1", VenueID: "venue-1", Name: "Beer", Amount: 30},
		{ID: "vi-2", VenueID: "venue-1", Name: "Wine", Amount: 50},
	}

	tests := []struct {
		name      string
		itemIDs   []string
		setupMock func()
		wantErr   error
	}{
		{
			name:    "resolves every requested item",
			itemIDs: []string{"vi-2", "vi-1", "vi-2"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.VenueItem, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "vi-1", args["id_0"])
						assert.Equal(t, "vi-2", args["id_1"])
						assert.NotContains(t, args, "id_2")

						return priced, nil
					})
			},
		},
		{
			name:    "unknown item rejected",
			itemIDs: []string{"vi-1", "vi-404"},
			setupMock: func() {
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(priced[:1], nil)
			},
			wantErr: model.ErrUnknownItem,
		},
		{
			name:      "nothing requested",
			itemIDs:   nil,
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ResolvePrices(context.Background(), "venue-1", tt.itemIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)

			for _, id := range tt.itemIDs {
				assert.Contains(t, res, id)
			}
		})
	}
}
