package service

import (
	"context"
	"fmt"

	"github.com/dmarakulin/learn-logbook/internal/adapter"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/models"
)

type clientAuthService struct {
	adapter  adapter.ServerAdapter
	identity *sessionIdentity
	logger   *logger.Logger
}

// NewClientAuthService constructs the client-side auth flow. After a
// successful Register or Login the adapter holds the bearer token and the
// session identity resolves the signed-in owner.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, identity *sessionIdentity, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:  serverAdapter,
		identity: identity,
		logger:   log,
	}
}

func (a *clientAuthService) Register(ctx context.Context, login, password, name string) (models.User, error) {
	if login == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.adapter.Register(ctx, models.User{Login: login, Password: password, Name: name})
	if err != nil {
		a.logger.Err(err).Str("login", login).Msg("registration failed")
		return models.User{}, fmt.Errorf("register on server: %w", err)
	}

	a.identity.SignIn(user.UserID)
	return user, nil
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (int64, error) {
	if login == "" || password == "" {
		return 0, ErrInvalidDataProvided
	}

	token, err := a.adapter.Login(ctx, models.User{Login: login, Password: password})
	if err != nil {
		a.logger.Err(err).Str("login", login).Msg("login failed")
		return 0, fmt.Errorf("login on server: %w", err)
	}

	a.identity.SignIn(token.UserID)
	return token.UserID, nil
}

func (a *clientAuthService) Logout() {
	a.adapter.SetToken("")
	a.identity.SignOut()
	a.logger.Info().Msg("signed out")
}
