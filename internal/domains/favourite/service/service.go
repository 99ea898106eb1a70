package service

import (
	"context"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/favourite/model"
	"nightlife/internal/domains/favourite/model/dto"
	"nightlife/internal/domains/favourite/repository"
	venueModel "nightlife/internal/domains/venue/model"
	venueRepo "nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	gRepo "nightlife/shared/repository"

	"github.com/rs/zerolog/log"
)

const cacheGetAllFavourite = "favourite:get_all"

var ErrVenueNotFound = failure.NotFound("venue not found")

type Favourite interface {
	Add(ctx context.Context, venueID string) (dto.FavouriteResponse, bool, error)
	Remove(ctx context.Context, venueID string) error
	Status(ctx context.Context, venueID string) (dto.FavouriteStatusResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetFavouritesResponse, error)
}

type serviceImpl struct {
	repo      repository.Favourite
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Favourite, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Favourite {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func byOwner(userID, venueID string) gDto.FilterGroup {
	return shared.FilterByFields(model.TableName, model.FieldUserID, userID, model.FieldVenueID, venueID)
}

// Add saves venueID for the caller. Saving an already saved venue is not an error;
// the boolean reports whether a new row was written.
func (s *serviceImpl) Add(ctx context.Context, venueID string) (res dto.FavouriteResponse, created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddFavourite")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, false, err
	}

	exist, err := s.venueRepo.Exist(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check venue existence")

		return res, false, fmt.Errorf("failed to check venue: %w", err)
	}

	if !exist {
		return res, false, ErrVenueNotFound
	}

	err = s.repo.Insert(ctx, dto.NewFavourite(caller.UserID, venueID))

	switch {
	case err == nil:
		created = true
	case gRepo.IsUniqueViolation(err, model.ConstraintUserVenue):
		log.Debug().Str("venue_id", venueID).Msg("venue already in favourites")
	default:
		log.Error().Err(err).Msg("failed to add favourite")

		return res, false, fmt.Errorf("failed to add favourite: %w", err)
	}

	favourite, err := s.repo.Get(ctx, byOwner(caller.UserID, venueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to read favourite")

		return res, false, fmt.Errorf("failed to read favourite: %w", err)
	}

	res.FromModel(favourite)

	if created {
		go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(cacheGetAllFavourite, caller.UserID))
	}

	return res, created, nil
}

// Remove is a no-op when the venue was not saved.
func (s *serviceImpl) Remove(ctx context.Context, venueID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveFavourite")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byOwner(caller.UserID, venueID)); err != nil {
		log.Error().Err(err).Msg("failed to remove favourite")

		return fmt.Errorf("failed to remove favourite: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(cacheGetAllFavourite, caller.UserID))

	return nil
}

func (s *serviceImpl) Status(ctx context.Context, venueID string) (res dto.FavouriteStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FavouriteStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	saved, err := s.repo.Exist(ctx, byOwner(caller.UserID, venueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check favourite")

		return res, fmt.Errorf("failed to check favourite: %w", err)
	}

	return dto.FavouriteStatusResponse{VenueID: venueID, Favourite: saved}, nil
}

// GetMine lists the caller's saved venues, most recently saved first.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetFavouritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyFavourites")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	createdAt := model.TableName + "." + constant.FieldCreatedAt
	params.RestrictSort(createdAt, gDto.SortDirDesc, createdAt, venueModel.TableName+"."+venueModel.FieldName)

	filter := shared.FilterByFields(model.TableName, model.FieldUserID, caller.UserID)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllFavourite, caller.UserID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count favourites")

		return res, fmt.Errorf("failed to count favourites: %w", err)
	}

	favourites, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favourites")

		return res, fmt.Errorf("failed to get favourites: %w", err)
	}

	res.FromModels(favourites, total, params.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save favourites to cache")
		}
	}()

	return res, nil
}
