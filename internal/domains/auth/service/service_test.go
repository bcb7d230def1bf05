package service_test

import (
	"context"
	"net/http"
	"testing"

	"lodge/config"
	"lodge/infras/jwt"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	userMocks "lodge/internal/domains/user/mocks"
	userModel "lodge/internal/domains/user/model"
	"lodge/shared/failure"
	"lodge/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	cfg := newConfig()

	svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg))

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "new user defaults to the staff role",
			req:  dto.RegisterRequest{Username: "alice", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "staff", user.Role)
						assert.True(t, user.Active)
						assert.NotEqual(t, "password123", user.Password)

						return nil
					})
			},
		},
		{
			name: "duplicate username is rejected",
			req:  dto.RegisterRequest{Username: "alice", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.setupMock()

			err := svc.Register(context.Background(), test.req)

			if test.wantErr {
				assert.Error(t, err)
				assert.Equal(t, test.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	cfg := newConfig()

	svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg))

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	activeUser := userModel.User{
		ID:       "user-1",
		Username: "alice",
		Password: hashed,
		Role:     "staff",
		Active:   true,
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "password123"})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("wrong password is rejected without leaking which part failed", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "wrong"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "password123"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		inactive := activeUser
		inactive.Active = false

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "password123"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	cfg := newConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwtService)

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair("user-1", "alice", "staff")
		require.NoError(t, err)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	cfg := newConfig()

	svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg))

	hashed, err := password.Hash("oldpassword")
	require.NoError(t, err)

	user := userModel.User{ID: "user-1", Username: "alice", Password: hashed, Active: true}

	t.Run("correct current password updates the hash", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				newHash, _ := fields["password"].(string)
				assert.NoError(t, password.Verify("newpassword", newHash))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		}, "user-1")

		assert.NoError(t, err)
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword",
		}, "user-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
