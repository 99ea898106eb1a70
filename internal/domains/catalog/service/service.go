package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/catalog/model"
	"nightlife/internal/domains/catalog/model/dto"
	"nightlife/internal/domains/catalog/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"

	"github.com/rs/zerolog/log"
)

const cachePriceList = "catalog:pricelist"

var priceListOrder = gDto.QueryParams{SortBy: model.ItemTableName + "." + model.FieldName, SortDir: gDto.SortDirAsc}

type Catalog interface {
	PriceList(ctx context.Context, venueID string) (dto.PriceListResponse, error)
	ResolvePrices(ctx context.Context, venueID string, itemIDs []string) (map[string]dto.RedeemItemResponse, error)
}

type serviceImpl struct {
	repo  repository.VenueItem
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.VenueItem, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// PriceList returns the redeemable items of a venue, ordered by name.
func (s *serviceImpl) PriceList(ctx context.Context, venueID string) (res dto.PriceListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PriceList")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cachePriceList, venueID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for price list")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, priceListOrder, shared.FilterByFields(model.TableName, model.FieldVenueID, venueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get price list")

		return res, fmt.Errorf("failed to get price list: %w", err)
	}

	res.FromModels(venueID, models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price list to cache")
		}
	}()

	return res, nil
}

// ResolvePrices reads the current prices of itemIDs straight from the database.
// Any id that is not priced at the venue fails the whole call with ErrUnknownItem.
func (s *serviceImpl) ResolvePrices(ctx context.Context, venueID string, itemIDs []string) (res map[string]dto.RedeemItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolvePrices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids := slices.Compact(slices.Sorted(slices.Values(itemIDs)))
	if len(ids) == 0 {
		return map[string]dto.RedeemItemResponse{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve item prices")

		return nil, fmt.Errorf("failed to resolve item prices: %w", err)
	}

	res = make(map[string]dto.RedeemItemResponse, len(models))
	for _, mod := range models {
		var item dto.RedeemItemResponse
		item.FromModel(mod)
		res[mod.ID] = item
	}

	for _, id := range ids {
		if _, ok := res[id]; !ok {
			log.Warn().Str("venue_id", venueID).Str("item_id", id).Msg("item not priced at venue")

			return nil, model.ErrUnknownItem
		}
	}

	return res, nil
}
