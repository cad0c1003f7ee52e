package application

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

// UpgradeMarket is the slice of the game client the planner needs.
type UpgradeMarket interface {
	ListUpgrades(ctx context.Context) ([]domain.Upgrade, error)
	BuyUpgrade(ctx context.Context, upgradeID string) error
}

type PlannerConfig struct {
	MaxLevel             int
	MaxReturnPeriodHours float64
	MaxEarningTimeHours  float64
}

// PlanOutcome reports what a planning pass did. Latched means the best
// remaining upgrade amortizes too slowly and planning should stay off until
// the latch resets (or the process restarts).
type PlanOutcome struct {
	Purchased      []domain.Upgrade
	HourlyEarnings float64
	Latched        bool
}

// UpgradePlanner greedily buys the best-return upgrade until nothing
// affordable or worthwhile remains.
type UpgradePlanner struct {
	cfg    PlannerConfig
	market UpgradeMarket
	log    ports.Logger
	sleep  ports.Sleeper
}

func NewUpgradePlanner(cfg PlannerConfig, market UpgradeMarket, log ports.Logger, sleep ports.Sleeper) *UpgradePlanner {
	if sleep == nil {
		sleep = ports.SystemClock{}
	}

	return &UpgradePlanner{cfg: cfg, market: market, log: log, sleep: sleep}
}

// Plan fetches the catalog and runs one greedy purchase pass against the
// given balance and hourly earnings. Only context errors and
// domain.ErrInvalidSession are returned; everything else is a normal stop
// condition.
func (p *UpgradePlanner) Plan(ctx context.Context, balance, hourlyEarnings float64) (PlanOutcome, error) {
	out := PlanOutcome{HourlyEarnings: hourlyEarnings}

	catalog, err := p.market.ListUpgrades(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) {
			return out, err
		}
		p.log.Error("upgrades fetch failed: %v", err)
		return out, nil
	}

	candidates := make([]domain.Upgrade, 0, len(catalog))
	for _, upgrade := range catalog {
		if upgrade.Purchasable(p.cfg.MaxLevel) {
			candidates = append(candidates, upgrade)
		}
	}

	for len(candidates) > 0 {
		idx := bestRatioIndex(candidates)
		best := candidates[idx]
		if math.IsInf(best.Ratio(), -1) {
			break
		}

		timeToEarn := float64(best.CooldownSeconds)
		if best.CooldownSeconds == 0 {
			timeToEarn = (best.Price - balance) / out.HourlyEarnings
		}

		p.log.Info("best upgrade for now: %s | +%.0f/h | price %.0f | return period %dh",
			best.ID, best.ProfitPerHourDelta, best.Price, int(best.ReturnPeriodHours()))
		if err := p.sleep.Sleep(ctx, time.Second); err != nil {
			return out, err
		}

		if best.ReturnPeriodHours() > p.cfg.MaxReturnPeriodHours {
			p.log.Warn("upgrade return period %dh exceeds the %.0fh cap, disabling upgrade checks",
				int(best.ReturnPeriodHours()), p.cfg.MaxReturnPeriodHours)
			out.Latched = true
			break
		}

		if balance > best.Price {
			if err := p.market.BuyUpgrade(ctx, best.ID); err != nil {
				if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
					return out, err
				}
				p.log.Warn("upgrade %s declined by server: %v", best.ID, err)
				break
			}

			balance -= best.Price
			out.HourlyEarnings += best.ProfitPerHourDelta
			out.Purchased = append(out.Purchased, best)
			p.log.Success("upgraded %s to level %d | earn every hour: %.0f (+%.0f)",
				best.ID, best.Level+1, out.HourlyEarnings, best.ProfitPerHourDelta)

			candidates = append(candidates[:idx], candidates[idx+1:]...)
			if err := p.sleep.Sleep(ctx, time.Second); err != nil {
				return out, err
			}
			continue
		}

		if timeToEarn > p.cfg.MaxEarningTimeHours {
			candidates = cheaperThan(candidates, best.Price)
			if len(candidates) == 0 {
				p.log.Info("no upgrade fits the earning time limit; waiting for coins")
				break
			}
			continue
		}

		if timeToEarn >= 1 {
			p.log.Info("approximate time to earn: %.2f hour(s)", timeToEarn)
		} else {
			p.log.Info("approximate time to earn: %.2f minute(s)", timeToEarn*60)
		}
		break
	}

	return out, nil
}

// bestRatioIndex returns the first maximum, so catalog order breaks ties.
func bestRatioIndex(upgrades []domain.Upgrade) int {
	best := 0
	for i := 1; i < len(upgrades); i++ {
		if upgrades[i].Ratio() > upgrades[best].Ratio() {
			best = i
		}
	}
	return best
}

func cheaperThan(upgrades []domain.Upgrade, price float64) []domain.Upgrade {
	kept := upgrades[:0]
	for _, upgrade := range upgrades {
		if upgrade.Price < price {
			kept = append(kept, upgrade)
		}
	}
	return kept
}
