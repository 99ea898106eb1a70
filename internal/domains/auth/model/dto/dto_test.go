package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nightlife/infras/jwt"
	"nightlife/internal/domains/auth/model/dto"
	profileModel "nightlife/internal/domains/profile/model"
	"nightlife/shared/constant"
	"nightlife/shared/validator"
)

func TestRegisterRequest_ToProfileModel(t *testing.T) {
	username := "nightowl"
	referrer := "referrer-id"

	req := dto.RegisterRequest{
		Email:    "owl@example.com",
		Password: "password123",
		Username: &username,
	}

	profile := req.ToProfileModel(constant.ContextGuest, "hashed", "AB12CD34EF", &referrer)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "owl@example.com", profile.Email)
	assert.Equal(t, "hashed", profile.Password)
	assert.Equal(t, constant.RoleUser, profile.Role)
	assert.Equal(t, "AB12CD34EF", profile.ReferralCode)
	assert.Equal(t, &referrer, profile.ReferredBy)
	assert.Equal(t, profileModel.TierRegular, profile.Tier)
	assert.Equal(t, profileModel.SubscriptionInactive, profile.SubscriptionStatus)
	assert.True(t, profile.Active)
	assert.Equal(t, constant.ContextGuest, profile.CreatedBy)
	assert.Equal(t, profile.CreatedAt, profile.ModifiedAt)
}

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr bool
	}{
		{
			name:    "valid without referral",
			req:     dto.RegisterRequest{Email: "owl@example.com", Password: "password123"},
			wantErr: false,
		},
		{
			name:    "valid with referral",
			req:     dto.RegisterRequest{Email: "owl@example.com", Password: "password123", ReferralCode: "AB12CD34EF"},
			wantErr: false,
		},
		{
			name:    "referral code with lowercase",
			req:     dto.RegisterRequest{Email: "owl@example.com", Password: "password123", ReferralCode: "ab12cd34ef"},
			wantErr: true,
		},
		{
			name:    "referral code too short",
			req:     dto.RegisterRequest{Email: "owl@example.com", Password: "password123", ReferralCode: "AB12"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Email: "owl@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.TokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, dto.TokenResponse{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}, response)
}
