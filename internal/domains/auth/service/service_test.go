package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/config"
	"clinicbook/infras/jwt"
	jwtMocks "clinicbook/infras/jwt/mocks"
	"clinicbook/infras/otel/mocks"
	"clinicbook/internal/domains/auth/model/dto"
	"clinicbook/internal/domains/auth/service"
	userMocks "clinicbook/internal/domains/user/mocks"
	userModel "clinicbook/internal/domains/user/model"
	cacheMocks "clinicbook/shared/cache/mocks"
	"clinicbook/shared/constant"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"
)

// "password" hashed with bcrypt cost 10.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func validUser() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Name:     "Test Patient",
		Email:    "test@example.com",
		Mobile:   "+8801700000001",
		Password: passwordHash,
		Role:     constant.RolePatient,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT, mockCache)

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				mockJWT.EXPECT().GenerateTokenPair("user-id-123", "test@example.com", constant.RolePatient).Return(tokenPair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "not-the-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				user := validUser()
				user.Active = false
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
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

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tokenPair.AccessToken, res.AccessToken)
			assert.Equal(t, tokenPair.RefreshToken, res.RefreshToken)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT, mockCache)

	req := dto.RegisterRequest{
		Name:     "New Patient",
		Email:    "new@example.com",
		Mobile:   "+8801700000002",
		Password: "password",
	}

	t.Run("successful registration", func(t *testing.T) {
		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RolePatient, user.Role)
				assert.Equal(t, req.Email, user.Email)
				assert.NotEqual(t, req.Password, user.Password)

				return nil
			})

		assert.NoError(t, svc.Register(context.Background(), req))
	})

	t.Run("email already registered", func(t *testing.T) {
		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.Error(t, svc.Register(context.Background(), req))
	})

	t.Run("existence check fails", func(t *testing.T) {
		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		assert.Error(t, svc.Register(context.Background(), req))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT, mockCache)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().RefreshTokens("valid-refresh").Return(&jwt.TokenPair{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().RefreshTokens("bad-refresh").Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-refresh"})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT, mockCache)

	t.Run("blacklists a live token until it expires", func(t *testing.T) {
		claims := &jwt.Claims{
			UserID:  "user-id-123",
			TokenID: "token-id-456",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(timezone.Now().Add(time.Hour)),
			},
		}

		mockJWT.EXPECT().ValidateToken("live-token", jwt.AccessToken).Return(claims, nil)
		mockCache.EXPECT().Save(gomock.Any(), "auth:blacklist:token-id-456", true, gomock.Any()).Return(nil)

		assert.NoError(t, svc.Logout(context.Background(), "live-token"))
	})

	t.Run("already expired token needs no blacklist entry", func(t *testing.T) {
		claims := &jwt.Claims{
			UserID:  "user-id-123",
			TokenID: "token-id-789",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(timezone.Now().Add(-time.Minute)),
			},
		}

		mockJWT.EXPECT().ValidateToken("stale-token", jwt.AccessToken).Return(claims, nil)

		assert.NoError(t, svc.Logout(context.Background(), "stale-token"))
	})

	t.Run("invalid token", func(t *testing.T) {
		mockJWT.EXPECT().ValidateToken("garbage", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)

		assert.Error(t, svc.Logout(context.Background(), "garbage"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT, mockCache)

	t.Run("successful change", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
		mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"}
		assert.NoError(t, svc.ChangePassword(context.Background(), req, "user-id-123"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)

		req := dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-password"}
		assert.Error(t, svc.ChangePassword(context.Background(), req, "user-id-123"))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		req := dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"}
		assert.Error(t, svc.ChangePassword(context.Background(), req, "missing-user"))
	})
}
