package handler

import (
	"context"

	"siggibot/internal/core/domain"
)

// Dispatcher queues invocations for asynchronous handling.
type Dispatcher interface {
	Handle(ctx context.Context, inv *domain.Invocation) error
}

// Runner handles an invocation on the calling goroutine.
type Runner interface {
	Run(ctx context.Context, inv *domain.Invocation) error
}
