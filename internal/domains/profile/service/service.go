package service

import (
	"context"
	"fmt"
	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/profile/model"
	"nightlife/internal/domains/profile/model/dto"
	"nightlife/internal/domains/profile/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/identity"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfile    = "profile:get"
	cacheGetAllProfile = "profile:gets"
	cacheReferrals     = "profile:referrals"
)

var (
	ErrProfileNotFound = failure.NotFound("profile not found")
	ErrUsernameTaken   = failure.Conflict("username already taken")
)

type Profile interface {
	Me(ctx context.Context) (dto.ProfileResponse, error)
	UpdateMe(ctx context.Context, req dto.UpdateProfileRequest) error
	Referrals(ctx context.Context, params gDto.QueryParams) (dto.GetReferralsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProfilesResponse, error)
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	return s.Get(ctx, caller.UserID)
}

func (s *serviceImpl) UpdateMe(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUsername, Operator: gDto.FilterOperatorEq, Value: req.Username, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: caller.UserID, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check username availability")

		return fmt.Errorf("failed to check username availability: %w", err)
	}

	if taken {
		return ErrUsernameTaken
	}

	filter := shared.FilterByID(caller.UserID, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.UserID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfile, caller.UserID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProfile)
		shared.InvalidateCaches(c, s.cache, cacheReferrals)
	}()

	return nil
}

// Referrals lists the profiles that registered with the caller's referral code.
func (s *serviceImpl) Referrals(ctx context.Context, params gDto.QueryParams) (res dto.GetReferralsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Referrals")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	me, err := s.Get(ctx, caller.UserID)
	if err != nil {
		return res, err
	}

	params.RestrictSort(constant.DefaultValueSortBy, constant.DefaultValueSortDir, constant.FieldCreatedAt)
	filter := shared.FilterByFields(model.TableName, model.FieldReferredBy, caller.UserID)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheReferrals, caller.UserID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for referrals")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count referrals")

		return res, fmt.Errorf("failed to count referrals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get referrals")

		return res, fmt.Errorf("failed to get referrals: %w", err)
	}

	res.FromModels(me.ReferralCode, models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save referrals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProfilesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProfile, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profiles")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profiles")

		return res, fmt.Errorf("failed to count profiles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles")

		return res, fmt.Errorf("failed to get profiles: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profiles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProfile, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, ErrProfileNotFound
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}
