package service

import (
	"context"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/venue/model"
	"nightlife/internal/domains/venue/model/dto"
	"nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVenue    = "venue:get"
	cacheGetAllVenue = "venue:gets"
)

var ErrVenueNotFound = failure.NotFound("venue not found")

type Venue interface {
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.VenueFilter) (dto.GetVenuesResponse, error)
	Get(ctx context.Context, id string) (dto.VenueResponse, error)
}

type serviceImpl struct {
	repo     repository.Venue
	roomRepo repository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Venue, roomRepo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Venue {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.VenueFilter) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(model.FieldName, gDto.SortDirAsc, model.FieldName, constant.FieldCreatedAt, "min_spend")
	filter := venueFilter(req)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venues")

		return res, fmt.Errorf("failed to get venues: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}

// Get returns an active venue together with its rooms.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetVenue, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue")

		return res, nil
	}

	venue, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, model.FieldID, id, model.FieldActive, true))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return res, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return res, ErrVenueNotFound
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.RoomFieldPax, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.RoomTableName, model.RoomFieldVenueID, venue.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue rooms")

		return res, fmt.Errorf("failed to get venue rooms: %w", err)
	}

	res.FromModel(venue)
	res.WithRooms(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue to cache")
		}
	}()

	return res, nil
}

func venueFilter(req dto.VenueFilter) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if req.Category != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategories,
			Value:    req.Category,
			Operator: gDto.FilterOperatorAny,
			Table:    model.TableName,
		})
	}

	if req.Name != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldName,
			Value:    req.Name,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	return filter
}
