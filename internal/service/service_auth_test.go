package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/crypto"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/mock"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "learn-logbook-test",
	TokenDuration: time.Hour,
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAppConfig, logger.Nop())

	mockRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			require.Empty(t, user.Password, "plaintext must not reach the store")
			require.NotEmpty(t, user.PasswordHash)

			ok, err := crypto.VerifyPassword(user.PasswordHash, "secret")
			require.NoError(t, err)
			require.True(t, ok)

			user.UserID = 1
			return user, nil
		})

	registered, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestAuthService_RegisterUser_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(mock.NewMockUserRepository(ctrl), testAppConfig, logger.Nop())

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_DuplicateLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAppConfig, logger.Nop())

	mockRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "secret"})
	require.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := crypto.HashPassword("secret")
	require.NoError(t, err)

	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAppConfig, logger.Nop())

	mockRepo.EXPECT().
		FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UserID: 7, Login: "john", PasswordHash: hash}, nil)

	user, err := svc.Login(context.Background(), models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := crypto.HashPassword("secret")
	require.NoError(t, err)

	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAppConfig, logger.Nop())

	mockRepo.EXPECT().
		FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UserID: 7, Login: "john", PasswordHash: hash}, nil)

	_, err = svc.Login(context.Background(), models.User{Login: "john", Password: "not-secret"})
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(mock.NewMockUserRepository(ctrl), testAppConfig, logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_GarbageIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(mock.NewMockUserRepository(ctrl), testAppConfig, logger.Nop())

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
