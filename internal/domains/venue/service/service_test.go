package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/otel/mocks"
	venueMocks "nightlife/internal/domains/venue/mocks"
	"nightlife/internal/domains/venue/model"
	"nightlife/internal/domains/venue/model/dto"
	"nightlife/internal/domains/venue/service"
	cacheMocks "nightlife/shared/cache/mocks"
	gDto "nightlife/shared/dto"
)

func TestVenueService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := venueMocks.NewMockVenue(ctrl)
	mockRoomRepo := venueMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.VenueFilter
		setupMock func()
		wantTotal int
		wantErr   bool
	}{
		{
			name: "filters by category tag",
			req:  dto.VenueFilter{Category: "club"},
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						where, args := filter.GetWhereClause()
						assert.True(t, strings.Contains(where, "ANY(venues.categories)"))
						assert.Equal(t, "club", args[model.FieldCategories])

						return 1, nil
					})
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Venue, error) {
						assert.Equal(t, model.FieldName, params.SortBy)

						return []model.Venue{{ID: "venue-1", Name: "Sky Bar", Categories: []string{"club"}}}, nil
					})
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantTotal: 1,
		},
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalData)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestVenueService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := venueMocks.NewMockVenue(ctrl)
	mockRoomRepo := venueMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockRoomRepo, &config.Config{}, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantRooms int
		wantErr   error
	}{
		{
			name: "venue with rooms",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "venue-1", Name: "Sky Bar"}, nil)
				mockRoomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{
					{ID: "room-1", VenueID: "venue-1", RoomType: "VIP", Pax: 6, MinSpend: 500},
					{ID: "room-2", VenueID: "venue-1", RoomType: "Regular", Pax: 10, MinSpend: 200},
				}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantRooms: 2,
		},
		{
			name: "venue not found",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantErr: service.ErrVenueNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "venue-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Rooms, tt.wantRooms)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestVenue_IsManagedBy(t *testing.T) {
	venue := model.Venue{ManagerIDs: []string{"manager-1", "manager-2"}}

	assert.True(t, venue.IsManagedBy("manager-2"))
	assert.False(t, venue.IsManagedBy("someone-else"))
	assert.False(t, venue.IsManagedBy(""))
}
