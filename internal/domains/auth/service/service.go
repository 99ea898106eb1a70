package service

import (
	"context"
	"errors"
	"fmt"
	"nightlife/config"
	"nightlife/infras/jwt"
	"nightlife/infras/otel"
	"nightlife/internal/domains/auth/model/dto"
	profileModel "nightlife/internal/domains/profile/model"
	profileRepo "nightlife/internal/domains/profile/repository"
	"nightlife/shared"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	"nightlife/shared/password"
	"nightlife/shared/randcode"
	gRepo "nightlife/shared/repository"
	"nightlife/shared/timezone"

	"github.com/rs/zerolog/log"
)

const defaultReferralCodeLength = 10

var (
	ErrEmailRegistered          = failure.BadRequestFromString("email already registered")
	ErrUnknownReferralCode      = failure.BadRequestFromString("referral code does not exist")
	ErrInvalidCredentials       = failure.BadRequestFromString("invalid email or password")
	ErrReferralCodeExhausted    = failure.InternalError(errors.New("could not allocate a unique referral code, please try again"))
	ErrCurrentPasswordIncorrect = failure.BadRequestFromString("current password is incorrect")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	profileRepo profileRepo.Profile
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
	codes       randcode.Generator
}

func New(profileRepo profileRepo.Profile, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, codes randcode.Generator) Auth {
	return &serviceImpl{
		profileRepo: profileRepo,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
		codes:       codes,
	}
}

// Register creates a profile with a fresh referral code, linking the referrer when a code was given.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := shared.FilterByFields(profileModel.TableName, profileModel.FieldEmail, req.Email)

	exists, err := s.profileRepo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if profile exists")

		return res, fmt.Errorf("failed to check if profile exists: %w", err)
	}

	if exists {
		return res, ErrEmailRegistered
	}

	var referredBy *string

	if req.ReferralCode != constant.Empty {
		referrer, err := s.profileRepo.Get(ctx, shared.FilterByFields(profileModel.TableName, profileModel.FieldReferralCode, req.ReferralCode))
		if err != nil {
			log.Error().Err(err).Msg("failed to look up referrer")

			return res, fmt.Errorf("failed to look up referrer: %w", err)
		}

		if referrer.ID == constant.Empty {
			return res, ErrUnknownReferralCode
		}

		referredBy = &referrer.ID
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	length := s.cfg.Booking.ReferralCodeLength
	if length <= 0 {
		length = defaultReferralCodeLength
	}

	attempts := max(s.cfg.Booking.CodeMaxAttempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		code, err := s.codes(length)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate referral code")

			return res, fmt.Errorf("failed to generate referral code: %w", err)
		}

		profile := req.ToProfileModel(constant.ContextGuest, hashedPassword, code, referredBy)

		err = s.profileRepo.Insert(ctx, profile)
		if err == nil {
			res.FromModel(profile)

			log.Info().Str("profile_id", profile.ID).Bool("referred", referredBy != nil).Msg("profile registered")

			return res, nil
		}

		switch {
		case gRepo.IsUniqueViolation(err, profileModel.ConstraintReferralCode):
			log.Warn().Int("attempt", attempt).Msg("referral code collision, regenerating")

			continue
		case gRepo.IsUniqueViolation(err, profileModel.ConstraintEmail):
			return res, ErrEmailRegistered
		default:
			log.Error().Err(err).Msg("failed to create profile")

			return res, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	return res, ErrReferralCodeExhausted
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := shared.FilterByFields(profileModel.TableName, profileModel.FieldEmail, req.Email)

	profile, err := s.profileRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, ErrInvalidCredentials
	}

	if err := password.Verify(req.Password, profile.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	if !profile.Active {
		return res, failure.BadRequestFromString("account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(profile.ID, profile.Email, profile.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, profile.ID)

	if err := s.profileRepo.Update(ctx, updatedFields, shared.FilterByID(profile.ID, profileModel.FieldID, profileModel.TableName)); err != nil {
		log.Warn().Err(err).Str("profile_id", profile.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(caller.UserID, profileModel.FieldID, profileModel.TableName)

	profile, err := s.profileRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return failure.NotFound("profile not found")
	}

	if err := password.Verify(req.CurrentPassword, profile.Password); err != nil {
		return ErrCurrentPasswordIncorrect
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.profileRepo.Update(ctx, shared.TransformFields(updatePassword, caller.UserID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
