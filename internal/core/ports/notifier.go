package ports

import (
	"context"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// Notifier sends a best-effort message to a matched user. Implementations
// must never fail the caller: delivery problems are absorbed internally.
type Notifier interface {
	Notify(ctx context.Context, match domain.User)
}
