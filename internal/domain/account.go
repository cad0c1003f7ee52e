package domain

import "errors"

type AccountID string

// Account is one roster entry: a Telegram identity the tapper runs on behalf
// of. Game state is never persisted; only this connection descriptor is.
type Account struct {
	ID      AccountID
	Name    string
	Proxy   string
	WebView WebViewSource
	Enabled bool
}

// WebViewSource describes how to obtain the game bot's web-view URL for this
// account: an external command that holds the messaging-platform session.
type WebViewSource struct {
	Command string
	Args    []string
}

func (a Account) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.WebView.Command == "" {
		return errors.New("web-view command is required")
	}
	return nil
}

// SessionName is the label used to prefix every log line for this account.
func (a Account) SessionName() string {
	if a.Name != "" {
		return a.Name
	}
	return string(a.ID)
}
