package port

import (
	"context"
	"siggibot/internal/core/domain"
)

type ReplySender interface {
	// SendReply delivers a rendered reply to the invocation's target. Calling it again for the same
	// invocation replaces or follows up the earlier reply, depending on the platform.
	SendReply(ctx context.Context, inv *domain.Invocation, reply domain.Reply) error
	// NotifyAndReturnError tells the invoker something went wrong, without leaking internals, and returns
	// the error for logging.
	NotifyAndReturnError(ctx context.Context, err error, inv *domain.Invocation) error
}
