package gameapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const ipCheckURL = "https://httpbin.org/ip"

const ipCheckTimeout = 5 * time.Second

// NewHTTPClient builds the transport for one session, routed through the
// account's proxy when one is configured.
func NewHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{}, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("proxy url %q missing scheme or host", proxyURL)
	}

	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(parsed)},
	}, nil
}

// CheckIP reports the egress address the backend will see. The only call
// with its own timeout; everything else rides the transport defaults.
func CheckIP(ctx context.Context, httpClient *http.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ipCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipCheckURL, nil)
	if err != nil {
		return "", fmt.Errorf("create ip check request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("check proxy ip: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload struct {
		Origin string `json:"origin"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode ip check response: %w", err)
	}

	return payload.Origin, nil
}
