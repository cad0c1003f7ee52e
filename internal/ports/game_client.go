package ports

import (
	"context"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
)

// GameClient is one method per game endpoint. Implementations own the
// per-session auth header; SetToken replaces it after each login.
type GameClient interface {
	Login(ctx context.Context, initDataRaw string) (string, error)
	SetToken(token string)

	SyncProfile(ctx context.Context) (domain.ProfileSnapshot, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	SelectExchange(ctx context.Context, exchangeID string) error
	ClaimDailyTask(ctx context.Context) error
	ListUpgrades(ctx context.Context) ([]domain.Upgrade, error)
	ListBoosts(ctx context.Context) ([]domain.Boost, error)
	BuyUpgrade(ctx context.Context, upgradeID string) error
	BuyBoost(ctx context.Context, boostID string) error
	SendTaps(ctx context.Context, availableTaps, count int) (domain.ProfileSnapshot, error)
}
