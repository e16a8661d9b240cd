package sender

import (
	"context"
	"fmt"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
)

// Router forwards replies to the sender of the platform an invocation came from.
type Router struct {
	senders map[domain.Platform]port.ReplySender
}

func NewRouter() *Router {
	return &Router{senders: make(map[domain.Platform]port.ReplySender)}
}

func (r *Router) Register(platform domain.Platform, s port.ReplySender) {
	r.senders[platform] = s
}

func (r *Router) route(inv *domain.Invocation) (port.ReplySender, error) {
	s, ok := r.senders[inv.Target.Platform]
	if !ok {
		return nil, &domain.DeliveryError{Err: fmt.Errorf("no sender for platform %q", inv.Target.Platform)}
	}

	return s, nil
}

func (r *Router) SendReply(ctx context.Context, inv *domain.Invocation, reply domain.Reply) error {
	s, err := r.route(inv)
	if err != nil {
		return err
	}

	return s.SendReply(ctx, inv, reply)
}

func (r *Router) NotifyAndReturnError(ctx context.Context, err error, inv *domain.Invocation) error {
	s, routeErr := r.route(inv)
	if routeErr != nil {
		return routeErr
	}

	return s.NotifyAndReturnError(ctx, err, inv)
}
