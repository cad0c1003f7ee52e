package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

// TokenExchanger is the slice of the game client the auth provider needs.
type TokenExchanger interface {
	Login(ctx context.Context, initDataRaw string) (string, error)
}

// AuthProvider obtains the web-app authorization blob from the messaging
// platform and exchanges it for a game bearer token. It holds no state.
type AuthProvider struct {
	source ports.WebAppDataSource
	game   TokenExchanger
	log    ports.Logger
	sleep  ports.Sleeper
}

func NewAuthProvider(source ports.WebAppDataSource, game TokenExchanger, log ports.Logger, sleep ports.Sleeper) *AuthProvider {
	if sleep == nil {
		sleep = ports.SystemClock{}
	}

	return &AuthProvider{source: source, game: game, log: log, sleep: sleep}
}

// Authenticate returns a fresh bearer token. domain.ErrInvalidSession is
// fatal for the account; any other error is transient and already backed off
// by 3 seconds, so callers just retry on the next loop pass.
func (a *AuthProvider) Authenticate(ctx context.Context) (string, error) {
	initData, err := a.source.WebAppData(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return "", err
		}
		a.log.Error("authorization failed: %v", err)
		if sleepErr := a.sleep.Sleep(ctx, 3*time.Second); sleepErr != nil {
			return "", sleepErr
		}
		return "", fmt.Errorf("obtain web-app data: %w", err)
	}

	token, err := a.game.Login(ctx, initData)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return "", err
		}
		a.log.Error("getting access token failed: %v", err)
		if sleepErr := a.sleep.Sleep(ctx, 3*time.Second); sleepErr != nil {
			return "", sleepErr
		}
		return "", fmt.Errorf("exchange web-app data: %w", err)
	}

	return token, nil
}
