// Package gameapi is the HTTP adapter for the clicker backend: one method
// per endpoint, bearer auth, JSON bodies.
package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

const DefaultBaseURL = "https://api.hamsterkombat.io"

const maxResponseBytes = 1 << 20

const (
	loginPath          = "/auth/auth-by-telegram-webapp"
	syncPath           = "/clicker/sync"
	listTasksPath      = "/clicker/list-tasks"
	selectExchangePath = "/clicker/select-exchange"
	checkTaskPath      = "/clicker/check-task"
	buyBoostPath       = "/clicker/buy-boost"
	buyUpgradePath     = "/clicker/buy-upgrade"
	listUpgradesPath   = "/clicker/upgrades-for-buy"
	listBoostsPath     = "/clicker/boosts-for-buy"
	tapPath            = "/clicker/tap"
)

// Client owns the per-session auth header explicitly; nothing is shared
// across sessions. One Client per account, driven by a single goroutine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	now        func() time.Time
}

var _ ports.GameClient = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

type loginRequest struct {
	InitDataRaw string         `json:"initDataRaw"`
	Fingerprint map[string]any `json:"fingerprint"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

func (c *Client) Login(ctx context.Context, initDataRaw string) (string, error) {
	var payload loginResponse
	body := loginRequest{InitDataRaw: initDataRaw, Fingerprint: map[string]any{}}
	if err := c.post(ctx, loginPath, body, &payload); err != nil {
		return "", err
	}
	if payload.AuthToken == "" {
		return "", errors.New("auth response missing authToken")
	}

	return payload.AuthToken, nil
}

type clickerUserResponse struct {
	ClickerUser domain.ProfileSnapshot `json:"clickerUser"`
}

func (c *Client) SyncProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	var payload clickerUserResponse
	if err := c.post(ctx, syncPath, struct{}{}, &payload); err != nil {
		return domain.ProfileSnapshot{}, err
	}

	return payload.ClickerUser, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var payload struct {
		Tasks []domain.Task `json:"tasks"`
	}
	if err := c.post(ctx, listTasksPath, struct{}{}, &payload); err != nil {
		return nil, err
	}

	return payload.Tasks, nil
}

func (c *Client) SelectExchange(ctx context.Context, exchangeID string) error {
	body := struct {
		ExchangeID string `json:"exchangeId"`
	}{ExchangeID: exchangeID}

	return c.post(ctx, selectExchangePath, body, nil)
}

func (c *Client) ClaimDailyTask(ctx context.Context) error {
	body := struct {
		TaskID string `json:"taskId"`
	}{TaskID: "streak_days"}

	return c.post(ctx, checkTaskPath, body, nil)
}

func (c *Client) ListUpgrades(ctx context.Context) ([]domain.Upgrade, error) {
	var payload struct {
		UpgradesForBuy []domain.Upgrade `json:"upgradesForBuy"`
	}
	if err := c.post(ctx, listUpgradesPath, struct{}{}, &payload); err != nil {
		return nil, err
	}

	return payload.UpgradesForBuy, nil
}

func (c *Client) ListBoosts(ctx context.Context) ([]domain.Boost, error) {
	var payload struct {
		BoostsForBuy []domain.Boost `json:"boostsForBuy"`
	}
	if err := c.post(ctx, listBoostsPath, struct{}{}, &payload); err != nil {
		return nil, err
	}

	return payload.BoostsForBuy, nil
}

func (c *Client) BuyUpgrade(ctx context.Context, upgradeID string) error {
	body := struct {
		Timestamp int64  `json:"timestamp"`
		UpgradeID string `json:"upgradeId"`
	}{Timestamp: c.now().Unix(), UpgradeID: upgradeID}

	return c.post(ctx, buyUpgradePath, body, nil)
}

func (c *Client) BuyBoost(ctx context.Context, boostID string) error {
	body := struct {
		Timestamp int64  `json:"timestamp"`
		BoostID   string `json:"boostId"`
	}{Timestamp: c.now().Unix(), BoostID: boostID}

	return c.post(ctx, buyBoostPath, body, nil)
}

type tapRequest struct {
	AvailableTaps int   `json:"availableTaps"`
	Count         int   `json:"count"`
	Timestamp     int64 `json:"timestamp"`
}

// SendTaps failure messages carry the outgoing body and whatever the server
// sent back; tap rejections are the hardest calls to diagnose after the fact.
func (c *Client) SendTaps(ctx context.Context, availableTaps, count int) (domain.ProfileSnapshot, error) {
	body := tapRequest{AvailableTaps: availableTaps, Count: count, Timestamp: c.now().Unix()}

	var payload clickerUserResponse
	if err := c.post(ctx, tapPath, body, &payload); err != nil {
		request, _ := json.Marshal(body)
		return domain.ProfileSnapshot{}, fmt.Errorf("send taps (request %s): %w", request, err)
	}

	return payload.ClickerUser, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// auth failures here are NOT fatal: the bearer token simply expires and
	// the loop re-authenticates on its next pass
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		partial, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(partial)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}
