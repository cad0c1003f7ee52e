// Package telegram turns a messaging-platform web-view hand-off into the
// raw init-data blob the game backend authenticates with.
package telegram

import (
	"fmt"
	"net/url"
	"strings"
)

// BotUsername and WebAppURL identify the mini-app whose web view carries
// the init data.
const (
	BotUsername = "hamster_kombat_bot"
	WebAppURL   = "https://hamsterkombat.io/"
)

// ExtractWebAppData pulls the tgWebAppData fragment out of a web-view URL.
// The platform percent-encodes the blob twice, so it is unescaped twice;
// the result is the exact query string the backend expects.
func ExtractWebAppData(webViewURL string) (string, error) {
	_, after, found := strings.Cut(webViewURL, "tgWebAppData=")
	if !found {
		return "", fmt.Errorf("web view url missing tgWebAppData fragment")
	}

	raw, _, _ := strings.Cut(after, "&tgWebAppVersion")

	once, err := url.QueryUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("unescape web app data: %w", err)
	}
	twice, err := url.QueryUnescape(once)
	if err != nil {
		return "", fmt.Errorf("unescape web app data: %w", err)
	}

	return twice, nil
}

// revokedMarkers are the platform's ways of saying the stored session is
// gone for good. Anything else is treated as transient.
var revokedMarkers = []string{
	"unauthorized",
	"auth_key_unregistered",
	"auth_key_invalid",
	"user_deactivated",
	"session_revoked",
	"session_expired",
}

func isSessionRevoked(message string) bool {
	lowered := strings.ToLower(message)
	for _, marker := range revokedMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}

	return false
}
