package service

import (
	"context"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/review/model"
	"nightlife/internal/domains/review/model/dto"
	"nightlife/internal/domains/review/repository"
	venueModel "nightlife/internal/domains/venue/model"
	venueRepo "nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/identity"

	"github.com/rs/zerolog/log"
)

const cacheGetVenueReviews = "review:get_all"

var ErrVenueNotFound = failure.NotFound("venue not found")

type Review interface {
	Create(ctx context.Context, venueID string, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetByVenue(ctx context.Context, venueID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	repo      repository.Review
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Review, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) ensureVenue(ctx context.Context, venueID string) error {
	exist, err := s.venueRepo.Exist(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check venue existence")

		return fmt.Errorf("failed to check venue: %w", err)
	}

	if !exist {
		return ErrVenueNotFound
	}

	return nil
}

// Create stores a review by the caller. A user may review the same venue more than once.
func (s *serviceImpl) Create(ctx context.Context, venueID string, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	if err = s.ensureVenue(ctx, venueID); err != nil {
		return res, err
	}

	review := req.ToModel(venueID, caller.UserID)

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(cacheGetVenueReviews, venueID))

	res.FromModel(review)

	return res, nil
}

// GetByVenue pages through a venue's reviews, newest first, alongside the rating summary.
func (s *serviceImpl) GetByVenue(ctx context.Context, venueID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVenueReviews")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	createdAt := model.TableName + "." + constant.FieldCreatedAt
	params.RestrictSort(createdAt, gDto.SortDirDesc, createdAt, model.TableName+".total_rating")

	filter := shared.FilterByFields(model.TableName, model.FieldVenueID, venueID)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetVenueReviews, venueID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	if err = s.ensureVenue(ctx, venueID); err != nil {
		return res, err
	}

	summary, err := s.repo.Summary(ctx, venueID)
	if err != nil {
		log.Error().Err(err).Msg("failed to summarise reviews")

		return res, fmt.Errorf("failed to summarise reviews: %w", err)
	}

	reviews, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(summary, reviews, summary.Total, params.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}
