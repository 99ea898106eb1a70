package dto

import (
	"nightlife/infras/jwt"
	profileModel "nightlife/internal/domains/profile/model"
	"nightlife/shared/constant"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8,max=72"`
	Username     *string `json:"username,omitempty"      validate:"omitempty,min=3,max=30,alphanum"`
	ReferralCode string  `json:"referral_code,omitempty" validate:"omitempty,len=10,bookingcode"`
}

// ToProfileModel builds a regular-tier profile. referredBy is the referrer's profile id, if any.
func (r *RegisterRequest) ToProfileModel(actor, hashedPassword, referralCode string, referredBy *string) profileModel.Profile {
	now := timezone.Now()

	return profileModel.Profile{
		ID:                 uuid.NewString(),
		Email:              r.Email,
		Password:           hashedPassword,
		Role:               constant.RoleUser,
		Username:           r.Username,
		ReferralCode:       referralCode,
		ReferredBy:         referredBy,
		Tier:               profileModel.TierRegular,
		SubscriptionStatus: profileModel.SubscriptionInactive,
		Active:             true,
		Metadata:           gModel.NewMetadata(now, actor),
	}
}

type RegisterResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}

func (r *RegisterResponse) FromModel(model profileModel.Profile) {
	r.ID = model.ID
	r.Email = model.Email
	r.ReferralCode = model.ReferralCode
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// TokenResponse is returned by both login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	*r = TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required"`
}
