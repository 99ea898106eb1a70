package jwt_test

import (
	"nightlife/config"
	"nightlife/infras/jwt"
	"nightlife/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "nightlife"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("u1", "guest@example.com", constant.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	id := claims.Identity()
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "guest@example.com", id.Email)
	assert.Equal(t, constant.RoleUser, id.Role)
	assert.NotEmpty(t, id.TokenID)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("u1", "guest@example.com", constant.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{name: "refresh token used as access", token: pair.RefreshToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token, tt.tokenType)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("u1", "guest@example.com", constant.RoleManager)
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, constant.RoleManager, claims.Role)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "basic", header: "Basic abc", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
		{name: "empty", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrNoBearer)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	pair, err := newService().GenerateTokenPair("u1", "guest@example.com", constant.RoleUser)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "someone-else"
	cfg.JWT.AccessSecret = "access-secret"

	_, err = jwt.New(cfg).ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_SameSecretWrongType(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "nightlife"
	cfg.JWT.AccessSecret = "shared"
	cfg.JWT.RefreshSecret = "shared"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	svc := jwt.New(cfg)

	pair, err := svc.GenerateTokenPair("u1", "guest@example.com", constant.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}
