package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/infras/s3"
	"nightlife/internal/domains/alcoholbalance/model"
	"nightlife/internal/domains/alcoholbalance/model/dto"
	"nightlife/internal/domains/alcoholbalance/repository"
	venueModel "nightlife/internal/domains/venue/model"
	venueRepo "nightlife/internal/domains/venue/repository"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	"nightlife/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAlcoholBalance    = "alcohol_balance:get"
	cacheGetAllAlcoholBalance = "alcohol_balance:get_all"
)

var (
	ErrAlcoholBalanceNotFound = failure.NotFound("alcohol balance not found")
	ErrVenueNotFound          = failure.BadRequestFromString("venue does not exist")
	ErrInvalidExpiryDate      = failure.BadRequestFromString("expiry date must be formatted as YYYY-MM-DD")
	ErrDeleteImagesFromS3     = errors.New("failed to delete images from S3")
)

type AlcoholBalance interface {
	Create(ctx context.Context, req dto.CreateAlcoholBalanceRequest) (dto.AlcoholBalanceResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetAlcoholBalancesResponse, error)
	Get(ctx context.Context, id string) (dto.AlcoholBalanceResponse, error)
	Update(ctx context.Context, req dto.UpdateAlcoholBalanceRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo      repository.AlcoholBalance
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.AlcoholBalance, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) AlcoholBalance {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAlcoholBalanceRequest) (res dto.AlcoholBalanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	exist, err := s.venueRepo.Exist(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check venue existence")

		return res, fmt.Errorf("failed to check venue: %w", err)
	}

	if !exist {
		return res, ErrVenueNotFound
	}

	balance, err := req.ToModel(caller.UserID)
	if err != nil {
		return res, ErrInvalidExpiryDate
	}

	if err = s.repo.Insert(ctx, balance); err != nil {
		log.Error().Err(err).Msg("failed to create alcohol balance")

		return res, fmt.Errorf("failed to create alcohol balance: %w", err)
	}

	res.FromModel(balance, timezone.Now())

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(cacheGetAllAlcoholBalance, caller.UserID))
	}()

	return res, nil
}

// GetMine lists the caller's bottles, soonest expiry first by default.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetAlcoholBalancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	expiry := model.TableName + "." + model.FieldExpiryDate
	params.RestrictSort(expiry, gDto.SortDirAsc, expiry, model.TableName+".created_at")

	filter := shared.FilterByFields(model.TableName, model.FieldUserID, caller.UserID)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllAlcoholBalance, caller.UserID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for alcohol balances")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count alcohol balances")

		return res, fmt.Errorf("failed to count alcohol balances: %w", err)
	}

	balances, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get alcohol balances")

		return res, fmt.Errorf("failed to get alcohol balances: %w", err)
	}

	res.FromModels(balances, total, params.Limit, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save alcohol balances to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AlcoholBalanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetAlcoholBalance, caller.UserID, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for alcohol balance")

		return res, nil
	}

	balance, err := s.owned(ctx, caller.UserID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(balance, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save alcohol balance to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAlcoholBalanceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	if _, err = s.owned(ctx, caller.UserID, id); err != nil {
		return err
	}

	if req.ExpiryDate != constant.Empty {
		if _, err := timezone.ParseDate(req.ExpiryDate); err != nil {
			return ErrInvalidExpiryDate
		}
	}

	updatedFields := shared.TransformFields(req, caller.UserID)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update alcohol balance")

		return fmt.Errorf("failed to update alcohol balance: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), caller.UserID, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	balance, err := s.owned(ctx, caller.UserID, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete alcohol balance")

		return fmt.Errorf("failed to delete alcohol balance: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, caller.UserID, id)

		if err := s.deleteImages(c, balance.ImagePaths); err != nil {
			log.Error().Err(err).Msg("failed to delete alcohol balance images")
		}
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	fileName := fmt.Sprintf("%s_%d_%s", caller.UserID, timezone.Now().UnixMilli(), filepath.Base(req.Image.Filename))

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, req.ImageFile, req.Image, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromModel(url, fileName)

	return res, nil
}

func (s *serviceImpl) owned(ctx context.Context, userID, id string) (model.AlcoholBalance, error) {
	balance, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, model.FieldID, id, model.FieldUserID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get alcohol balance")

		return balance, fmt.Errorf("failed to get alcohol balance: %w", err)
	}

	if balance.ID == constant.Empty {
		return balance, ErrAlcoholBalanceNotFound
	}

	return balance, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, userID, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetAlcoholBalance, userID, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete alcohol balance cache")
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetAllAlcoholBalance, userID))
}

func (s *serviceImpl) deleteImages(ctx context.Context, urls []string) error {
	bucketName := s.cfg.External.S3.BucketName

	var failed int

	for _, imageURL := range urls {
		objectName := s.s3.GetObjectNameFromURL(bucketName, imageURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d images", ErrDeleteImagesFromS3, failed)
	}

	return nil
}
