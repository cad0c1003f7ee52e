package ports

import "context"

// WebAppDataSource yields the opaque web-app authorization blob (the decoded
// tgWebAppData payload) that the game backend exchanges for a bearer token.
// Implementations must return domain.ErrInvalidSession when the underlying
// messaging credential is unauthorized, deactivated, or unregistered.
type WebAppDataSource interface {
	WebAppData(ctx context.Context) (string, error)
}
