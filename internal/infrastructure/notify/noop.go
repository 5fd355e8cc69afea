// Package notify holds the match notifiers. Every implementation is
// best-effort: Notify never fails the request that triggered it.
package notify

import (
	"context"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// Noop is used when no SMS credentials are configured.
type Noop struct{}

func (Noop) Notify(context.Context, domain.User) {}
