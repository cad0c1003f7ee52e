package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSleeper struct {
	slept []time.Duration
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.slept = append(s.slept, d)
	return ctx.Err()
}

type logRecorder struct {
	lines []string
}

func (l *logRecorder) Success(format string, args ...any) { l.record("success", format, args...) }
func (l *logRecorder) Info(format string, args ...any)    { l.record("info", format, args...) }
func (l *logRecorder) Warn(format string, args ...any)    { l.record("warn", format, args...) }
func (l *logRecorder) Error(format string, args ...any)   { l.record("error", format, args...) }

func (l *logRecorder) record(level, format string, args ...any) {
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *logRecorder) contains(fragment string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

type fakeWebAppSource struct {
	data string
	err  error
}

func (s fakeWebAppSource) WebAppData(context.Context) (string, error) {
	return s.data, s.err
}

// fakeGameClient records every call and delegates to the optional hooks.
type fakeGameClient struct {
	calls []string

	loginFn    func(initDataRaw string) (string, error)
	syncFn     func() (domain.ProfileSnapshot, error)
	tasksFn    func() ([]domain.Task, error)
	upgradesFn func() ([]domain.Upgrade, error)
	boostsFn   func() ([]domain.Boost, error)
	tapFn      func(availableTaps, count int) (domain.ProfileSnapshot, error)
	buyFn      func(upgradeID string) error
	boostBuyFn func(boostID string) error
	exchangeFn func(exchangeID string) error
	claimFn    func() error

	token string
}

func (c *fakeGameClient) Login(_ context.Context, initDataRaw string) (string, error) {
	c.calls = append(c.calls, "login")
	if c.loginFn != nil {
		return c.loginFn(initDataRaw)
	}
	return "token-1", nil
}

func (c *fakeGameClient) SetToken(token string) { c.token = token }

func (c *fakeGameClient) SyncProfile(context.Context) (domain.ProfileSnapshot, error) {
	c.calls = append(c.calls, "sync")
	if c.syncFn != nil {
		return c.syncFn()
	}
	return domain.ProfileSnapshot{}, nil
}

func (c *fakeGameClient) ListTasks(context.Context) ([]domain.Task, error) {
	c.calls = append(c.calls, "list-tasks")
	if c.tasksFn != nil {
		return c.tasksFn()
	}
	return nil, nil
}

func (c *fakeGameClient) SelectExchange(_ context.Context, exchangeID string) error {
	c.calls = append(c.calls, "select-exchange")
	if c.exchangeFn != nil {
		return c.exchangeFn(exchangeID)
	}
	return nil
}

func (c *fakeGameClient) ClaimDailyTask(context.Context) error {
	c.calls = append(c.calls, "claim-daily")
	if c.claimFn != nil {
		return c.claimFn()
	}
	return nil
}

func (c *fakeGameClient) ListUpgrades(context.Context) ([]domain.Upgrade, error) {
	c.calls = append(c.calls, "list-upgrades")
	if c.upgradesFn != nil {
		return c.upgradesFn()
	}
	return nil, nil
}

func (c *fakeGameClient) ListBoosts(context.Context) ([]domain.Boost, error) {
	c.calls = append(c.calls, "list-boosts")
	if c.boostsFn != nil {
		return c.boostsFn()
	}
	return nil, nil
}

func (c *fakeGameClient) BuyUpgrade(_ context.Context, upgradeID string) error {
	c.calls = append(c.calls, "buy-upgrade:"+upgradeID)
	if c.buyFn != nil {
		return c.buyFn(upgradeID)
	}
	return nil
}

func (c *fakeGameClient) BuyBoost(_ context.Context, boostID string) error {
	c.calls = append(c.calls, "buy-boost:"+boostID)
	if c.boostBuyFn != nil {
		return c.boostBuyFn(boostID)
	}
	return nil
}

func (c *fakeGameClient) SendTaps(_ context.Context, availableTaps, count int) (domain.ProfileSnapshot, error) {
	c.calls = append(c.calls, fmt.Sprintf("tap:%d:%d", availableTaps, count))
	if c.tapFn != nil {
		return c.tapFn(availableTaps, count)
	}
	return domain.ProfileSnapshot{}, nil
}

func (c *fakeGameClient) called(name string) int {
	n := 0
	for _, call := range c.calls {
		if call == name || strings.HasPrefix(call, name+":") {
			n++
		}
	}
	return n
}
