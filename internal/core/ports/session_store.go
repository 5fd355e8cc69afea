package ports

import "context"

// SessionStore binds opaque cookie tokens to user ids.
type SessionStore interface {
	// Issue starts a session for userID and returns the token to hand out.
	Issue(ctx context.Context, userID int64) (string, error)
	// Resolve returns domain.ErrUnauthenticated for unknown or tampered tokens.
	Resolve(ctx context.Context, token string) (int64, error)
	// Revoke ends the session. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
}
