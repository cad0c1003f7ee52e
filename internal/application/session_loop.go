package application

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

const (
	tokenTTL           = time.Hour
	turboWindow        = 20 * time.Second
	turboSleep         = 4 * time.Second
	boostCheckInterval = 3650 * time.Second
	boostDeferOnCap    = 5 * time.Hour
	boostReuseCooldown = time.Hour
	loopBackoff        = time.Minute
	probeEnergy        = 1000
	defaultExchange    = "bybit"
)

type LoopConfig struct {
	RandomTapsMin       int
	RandomTapsMax       int
	AddTapsOnTurbo      int
	SleepBetweenTapsMin int
	SleepBetweenTapsMax int
	ApplyDailyEnergy    bool
	AutoUpgrade         bool
	// LatchReset re-enables upgrade planning this long after the
	// return-period latch fires. Zero keeps the latch for the process
	// lifetime.
	LatchReset time.Duration
}

// SessionLoop drives one account: re-authenticate when the token is stale,
// refresh the profile when missing, tap, periodically apply the energy boost
// and run the upgrade planner, then sleep a randomized interval.
type SessionLoop struct {
	cfg     LoopConfig
	auth    *AuthProvider
	client  ports.GameClient
	engine  TapEngine
	planner *UpgradePlanner
	clock   ports.Clock
	sleep   ports.Sleeper
	log     ports.Logger
	randInt func(min, max int) int

	token         string
	tokenIssuedAt time.Time

	profile         *domain.ProfileSnapshot
	balance         float64
	availableEnergy int
	maxTaps         int
	earnPerTap      int
	hourly          float64

	turboActive bool
	turboSince  time.Time

	boostLastCheck time.Time
	useBoost       bool

	upgradesLatched bool
	latchedAt       time.Time
}

func NewSessionLoop(cfg LoopConfig, auth *AuthProvider, client ports.GameClient, engine TapEngine, planner *UpgradePlanner, clock ports.Clock, sleep ports.Sleeper, log ports.Logger) *SessionLoop {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if sleep == nil {
		sleep = ports.SystemClock{}
	}

	return &SessionLoop{
		cfg:     cfg,
		auth:    auth,
		client:  client,
		engine:  engine,
		planner: planner,
		clock:   clock,
		sleep:   sleep,
		log:     log,
		randInt: func(min, max int) int {
			if max <= min {
				return min
			}
			return min + rand.Intn(max-min+1)
		},
	}
}

// Run loops until the context is cancelled or the messaging session turns
// out to be invalid. Everything else is logged and retried after a minute.
func (s *SessionLoop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.iterate(ctx)
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrInvalidSession) {
			s.log.Error("invalid session, stopping")
			return err
		}
		if ctx.Err() != nil {
			return err
		}

		s.log.Error("unexpected error: %v", err)
		if sleepErr := s.sleep.Sleep(ctx, loopBackoff); sleepErr != nil {
			return sleepErr
		}
	}
}

func (s *SessionLoop) iterate(ctx context.Context) error {
	if s.token == "" || s.clock.Now().Sub(s.tokenIssuedAt) >= tokenTTL {
		s.log.Warn("authorization started")
		token, err := s.auth.Authenticate(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
				return err
			}
			// transient; AuthProvider already backed off
			return nil
		}

		s.token = token
		s.client.SetToken(token)
		s.tokenIssuedAt = s.clock.Now()
		s.profile = nil
	}

	if s.profile == nil {
		if err := s.loadProfile(ctx); err != nil {
			return err
		}
		if s.profile == nil {
			return nil
		}
	}

	taps := s.randInt(s.cfg.RandomTapsMin, s.cfg.RandomTapsMax)
	if s.turboActive {
		taps += s.cfg.AddTapsOnTurbo
		if s.clock.Now().Sub(s.turboSince) > turboWindow {
			s.turboActive = false
		}
	}

	plan := s.engine.PlanTaps(s.availableEnergy, taps, s.earnPerTap)
	snap, err := s.client.SendTaps(ctx, plan.AvailableTaps, plan.Count)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Info("tap failed, sleeping 1 min...")
		return s.sleep.Sleep(ctx, loopBackoff)
	}

	gained := snap.BalanceCoins - s.balance
	s.applySnapshot(snap)
	s.logTapped(gained)

	if !s.turboActive {
		if s.cfg.ApplyDailyEnergy {
			if err := s.refreshBoostUsability(ctx); err != nil {
				return err
			}
			lastBoostAt := s.profile.BoostByID(domain.EnergyBoostID).LastUpgradeAt
			if s.useBoost && s.clock.Now().Unix()-lastBoostAt > int64(boostReuseCooldown.Seconds()) {
				// the boost round replaces the rest of this pass
				return s.applyEnergyBoost(ctx)
			}
		}

		if s.cfg.AutoUpgrade && s.planningEnabled() {
			out, err := s.planner.Plan(ctx, s.balance, s.hourly)
			if err != nil {
				return err
			}
			s.hourly = out.HourlyEarnings
			if out.Latched {
				s.upgradesLatched = true
				s.latchedAt = s.clock.Now()
			}
		}
	}

	delay := time.Duration(s.randInt(s.cfg.SleepBetweenTapsMin, s.cfg.SleepBetweenTapsMax)) * time.Second
	if s.turboActive {
		delay = turboSleep
	}
	s.log.Info("sleep %s", delay)
	return s.sleep.Sleep(ctx, delay)
}

func (s *SessionLoop) loadProfile(ctx context.Context) error {
	snap, err := s.client.SyncProfile(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}

		s.log.Warn("profile data broken, trying to fetch from a tap request...")
		probe := s.engine.PlanTaps(probeEnergy, 1, 1)
		snap, err = s.client.SendTaps(ctx, probe.AvailableTaps, probe.Count)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
				return err
			}
			s.log.Warn("server is down, trying in 1 minute...")
			return s.sleep.Sleep(ctx, loopBackoff)
		}
	}

	s.applySnapshot(snap)
	s.log.Success("profile data loaded")
	s.log.Info("last passive earn: +%.0f | earn every hour: %.0f", snap.LastPassiveEarn, snap.EarnPassivePerHour)

	if snap.ExchangeID == "" {
		if err := s.client.SelectExchange(ctx, defaultExchange); err != nil {
			if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
				return err
			}
			s.log.Warn("exchange selection failed: %v", err)
		} else {
			s.log.Success("selected exchange %s", defaultExchange)
		}
	}

	return s.claimDaily(ctx)
}

func (s *SessionLoop) claimDaily(ctx context.Context) error {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Warn("tasks fetch failed: %v", err)
		return nil
	}

	daily, ok := domain.DailyTask(tasks)
	if !ok || daily.IsCompleted {
		return nil
	}

	if err := s.client.ClaimDailyTask(ctx); err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Warn("daily reward claim failed: %v", err)
		return nil
	}

	s.log.Success("daily reward claimed | day: %d | reward coins: %d", daily.Days, daily.TodayReward())
	return nil
}

// refreshBoostUsability re-reads the boost catalog at most once per
// boostCheckInterval and decides whether the energy boost still has daily
// headroom. Hitting the cap defers the next check by five hours.
func (s *SessionLoop) refreshBoostUsability(ctx context.Context) error {
	now := s.clock.Now()
	if now.Sub(s.boostLastCheck) <= boostCheckInterval {
		return nil
	}

	boosts, err := s.client.ListBoosts(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Warn("boosts fetch is broken, skipping...")
		return nil
	}

	s.boostLastCheck = now
	for _, boost := range boosts {
		if boost.ID != domain.EnergyBoostID {
			continue
		}
		if boost.HasHeadroom() {
			s.useBoost = true
			s.log.Info("energy boost %d/%d | next check at %s",
				boost.Level, boost.MaxLevel, now.Add(boostCheckInterval).Format("15:04:05"))
		} else {
			s.useBoost = false
			s.boostLastCheck = now.Add(boostDeferOnCap)
			s.log.Info("all energy boosts used for today, retrying in ~6h")
		}
		break
	}

	return nil
}

// applyEnergyBoost drains the remaining energy, buys the refill boost, then
// taps through the restored bar. Any failure abandons the round; the outer
// loop continues.
func (s *SessionLoop) applyEnergyBoost(ctx context.Context) error {
	s.log.Info("using full energy before boost apply...")
	if err := s.sleep.Sleep(ctx, time.Second); err != nil {
		return err
	}

	drain := s.engine.PlanTaps(s.availableEnergy, s.availableEnergy, s.earnPerTap)
	if snap, err := s.client.SendTaps(ctx, drain.AvailableTaps, drain.Count); err == nil {
		s.applySnapshot(snap)
	} else if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
		return err
	}

	s.log.Info("applying energy boost...")
	if err := s.sleep.Sleep(ctx, time.Second); err != nil {
		return err
	}
	if err := s.client.BuyBoost(ctx, domain.EnergyBoostID); err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Warn("energy boost declined, skipping...")
		return nil
	}
	s.log.Success("energy boost applied")
	if err := s.sleep.Sleep(ctx, 3*time.Second); err != nil {
		return err
	}

	full := s.engine.PlanTaps(s.maxTaps, s.maxTaps, s.earnPerTap)
	snap, err := s.client.SendTaps(ctx, full.AvailableTaps, full.Count)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) || ctx.Err() != nil {
			return err
		}
		s.log.Warn("post-boost tap failed, skipping...")
		return nil
	}

	gained := snap.BalanceCoins - s.balance
	s.applySnapshot(snap)
	s.logTapped(gained)
	return nil
}

func (s *SessionLoop) planningEnabled() bool {
	if !s.upgradesLatched {
		return true
	}
	if s.cfg.LatchReset <= 0 {
		return false
	}
	if s.clock.Now().Sub(s.latchedAt) < s.cfg.LatchReset {
		return false
	}

	s.upgradesLatched = false
	s.log.Info("upgrade checks re-enabled after latch reset")
	return true
}

func (s *SessionLoop) applySnapshot(snap domain.ProfileSnapshot) {
	if snap.AvailableTaps > snap.MaxTaps {
		snap.AvailableTaps = snap.MaxTaps
	}

	s.profile = &snap
	s.balance = snap.BalanceCoins
	s.availableEnergy = snap.AvailableTaps
	s.maxTaps = snap.MaxTaps
	s.earnPerTap = snap.EarnPerTap
	if s.earnPerTap < 1 {
		s.earnPerTap = 1
	}
	s.hourly = snap.HourlyEarnings()
}

func (s *SessionLoop) logTapped(gained float64) {
	s.log.Success("tapped | balance: %.0f (+%.0f) | total: %.0f | farm: %.0f [%.0f]",
		s.balance, gained, s.profile.TotalCoins, s.hourly, s.profile.EarnPassivePerHour)
}
