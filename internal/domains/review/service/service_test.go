package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/otel/mocks"
	reviewMocks "nightlife/internal/domains/review/mocks"
	"nightlife/internal/domains/review/model"
	"nightlife/internal/domains/review/model/dto"
	"nightlife/internal/domains/review/service"
	venueMocks "nightlife/internal/domains/venue/mocks"
	cacheMocks "nightlife/shared/cache/mocks"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/identity"
)

func asUser(id string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: constant.RoleUser})
}

func TestCreateReviewRequest_TotalRating(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateReviewRequest
		want float64
	}{
		{name: "uniform", req: dto.CreateReviewRequest{AtmosphereRating: 4, PersonnelRating: 4, PriceRating: 4}, want: 4},
		{name: "rounded down", req: dto.CreateReviewRequest{AtmosphereRating: 5, PersonnelRating: 4, PriceRating: 4}, want: 4.33},
		{name: "rounded up", req: dto.CreateReviewRequest{AtmosphereRating: 5, PersonnelRating: 5, PriceRating: 3}, want: 4.33},
		{name: "half", req: dto.CreateReviewRequest{AtmosphereRating: 1, PersonnelRating: 2, PriceRating: 2}, want: 1.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.req.TotalRating(), 0.001)
		})
	}
}

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockVenues := venueMocks.NewMockVenue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockVenues, &config.Config{}, mockCache, mocks.NewOtel())

	req := dto.CreateReviewRequest{
		Title:            "Great night",
		Comment:          "Loud in the best way",
		AtmosphereRating: 5,
		PersonnelRating:  4,
		PriceRating:      3,
	}

	tests := []struct {
		name        string
		ctx         context.Context
		setupMock   func()
		wantErr     error
		wantFailure bool
	}{
		{
			name: "stores review",
			ctx:  asUser("user-1"),
			setupMock: func() {
				mockVenues.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m model.Review) error {
						assert.Equal(t, "venue-1", m.VenueID)
						assert.Equal(t, "user-1", m.UserID)
						assert.InDelta(t, 4.0, m.TotalRating, 0.001)
						assert.NotEmpty(t, m.ID)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), "review:get_all:venue-1*").Return(nil)
			},
		},
		{
			name: "unknown venue",
			ctx:  asUser("user-1"),
			setupMock: func() {
				mockVenues.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrVenueNotFound,
		},
		{
			name: "insert failure",
			ctx:  asUser("user-1"),
			setupMock: func() {
				mockVenues.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantFailure: true,
		},
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   identity.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, "venue-1", req)

			if tt.wantFailure {
				assert.Error(t, err)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Great night", res.Title)
			assert.InDelta(t, 4.0, res.TotalRating, 0.001)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestReviewService_GetByVenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockVenues := venueMocks.NewMockVenue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(mockRepo, mockVenues, cfg, mockCache, mocks.NewOtel())

	t.Run("summary and page", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockVenues.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Summary(gomock.Any(), "venue-1").
			Return(model.Summary{Total: 3, Overall: 4.11, Atmosphere: 4.67, Personnel: 4, Price: 3.67}, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Review, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "venue-1", args[model.FieldVenueID])
				assert.Equal(t, "venue_reviews.created_at", params.SortBy)

				return []model.Review{{ID: "r-1", Title: "Great"}, {ID: "r-2", Title: "Fine"}}, nil
			})
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).AnyTimes()

		res, err := svc.GetByVenue(context.Background(), "venue-1", gDto.QueryParams{Page: 1, Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Summary.TotalReviews)
		assert.InDelta(t, 4.11, res.Summary.Overall, 0.001)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Reviews, 2)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown venue", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockVenues.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.GetByVenue(context.Background(), "venue-2", gDto.QueryParams{Page: 1, Limit: 2})

		assert.ErrorIs(t, err, service.ErrVenueNotFound)
	})
}
