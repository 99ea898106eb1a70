package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nightlife/config"
	"nightlife/infras/jwt"
	jwtMocks "nightlife/infras/jwt/mocks"
	"nightlife/infras/otel/mocks"
	"nightlife/internal/domains/auth/model/dto"
	"nightlife/internal/domains/auth/service"
	profileMocks "nightlife/internal/domains/profile/mocks"
	profileModel "nightlife/internal/domains/profile/model"
	"nightlife/shared/constant"
	"nightlife/shared/identity"
	"nightlife/shared/password"
)

func sequence(codes ...string) func(int) (string, error) {
	next := 0

	return func(int) (string, error) {
		code := codes[next%len(codes)]
		next++

		return code, nil
	}
}

func referralCollision() error {
	return &pq.Error{Code: "23505", Constraint: profileModel.ConstraintReferralCode}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := profileMocks.NewMockProfile(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.Booking.ReferralCodeLength = 10
	cfg.Booking.CodeMaxAttempts = 3

	referrer := profileModel.Profile{ID: "referrer-id", ReferralCode: "REFERRER01"}

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		codes     []string
		setupMock func()
		wantCode  string
		wantErr   error
	}{
		{
			name:  "registers without referral",
			req:   dto.RegisterRequest{Email: "owl@example.com", Password: "password123"},
			codes: []string{"AB12CD34EF"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p profileModel.Profile) error {
						assert.Nil(t, p.ReferredBy)
						assert.Equal(t, constant.RoleUser, p.Role)
						assert.NotEqual(t, "password123", p.Password)

						return nil
					})
			},
			wantCode: "AB12CD34EF",
		},
		{
			name:  "links referrer",
			req:   dto.RegisterRequest{Email: "owl@example.com", Password: "password123", ReferralCode: referrer.ReferralCode},
			codes: []string{"AB12CD34EF"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(referrer, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p profileModel.Profile) error {
						if assert.NotNil(t, p.ReferredBy) {
							assert.Equal(t, referrer.ID, *p.ReferredBy)
						}

						return nil
					})
			},
			wantCode: "AB12CD34EF",
		},
		{
			name: "unknown referral code",
			req:  dto.RegisterRequest{Email: "owl@example.com", Password: "password123", ReferralCode: "NOBODY0001"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
			},
			wantErr: service.ErrUnknownReferralCode,
		},
		{
			name: "email already registered",
			req:  dto.RegisterRequest{Email: "owl@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: service.ErrEmailRegistered,
		},
		{
			name:  "regenerates on referral code collision",
			req:   dto.RegisterRequest{Email: "owl@example.com", Password: "password123"},
			codes: []string{"TAKEN00001", "FRESH00002"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				gomock.InOrder(
					mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(referralCollision()),
					mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			wantCode: "FRESH00002",
		},
		{
			name:  "gives up after bounded attempts",
			req:   dto.RegisterRequest{Email: "owl@example.com", Password: "password123"},
			codes: []string{"TAKEN00001"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(referralCollision()).Times(3)
			},
			wantErr: service.ErrReferralCodeExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			codes := tt.codes
			if len(codes) == 0 {
				codes = []string{"UNUSED0000"}
			}

			svc := service.New(mockRepo, cfg, mocks.NewOtel(), mockJWT, sequence(codes...))

			res, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.ReferralCode)
			assert.Equal(t, tt.req.Email, res.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := profileMocks.NewMockProfile(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT, sequence("UNUSED0000"))

	hashed, err := password.Hash("password123")
	assert.NoError(t, err)

	valid := profileModel.Profile{
		ID:       "profile-id",
		Email:    "owl@example.com",
		Password: hashed,
		Role:     constant.RoleUser,
		Active:   true,
	}

	inactive := valid
	inactive.Active = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: valid.Email, Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(valid, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(valid.ID, valid.Email, valid.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: valid.Email, Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(valid, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(valid.ID, valid.Email, valid.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: false,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "ghost@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: valid.Email, Password: "wrong-password"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(valid, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive account",
			req:  dto.LoginRequest{Email: valid.Email, Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: valid.Email, Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(valid, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("jwt error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.AccessToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := profileMocks.NewMockProfile(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT, sequence("UNUSED0000"))

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful refresh",
			setupMock: func() {
				mockJWT.EXPECT().RefreshTokens("refresh-token").Return(&jwt.TokenPair{AccessToken: "new-access"}, nil)
			},
			wantErr: false,
		},
		{
			name: "invalid refresh token",
			setupMock: func() {
				mockJWT.EXPECT().RefreshTokens("refresh-token").Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := profileMocks.NewMockProfile(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT, sequence("UNUSED0000"))

	hashed, err := password.Hash("password123")
	assert.NoError(t, err)

	profile := profileModel.Profile{ID: "profile-id", Email: "owl@example.com", Password: hashed}
	authed := identity.WithIdentity(context.Background(), identity.Identity{UserID: profile.ID, Role: constant.RoleUser})

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   error
	}{
		{
			name: "successful change",
			ctx:  authed,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profile, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password123"},
			setupMock: func() {},
			wantErr:   identity.ErrUnauthenticated,
		},
		{
			name: "wrong current password",
			ctx:  authed,
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password123"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profile, nil)
			},
			wantErr: service.ErrCurrentPasswordIncorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(tt.ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
