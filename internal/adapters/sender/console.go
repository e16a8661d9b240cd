package sender

import (
	"context"
	"fmt"
	"io"
	"sync"

	"siggibot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Console prints replies, used by the run sub-command.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) SendReply(_ context.Context, _ *domain.Invocation, reply domain.Reply) error {
	text := RenderText(reply)
	if img, ok := reply.ImageURL.Get(); ok {
		text += "\n[image] " + img
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.out, text); err != nil {
		return &domain.DeliveryError{Err: err}
	}

	return nil
}

func (c *Console) NotifyAndReturnError(ctx context.Context, err error, inv *domain.Invocation) error {
	log.Debug().Err(err).Msg("notifying console user")

	if sendErr := c.SendReply(ctx, inv, domain.TextReply(domain.UserMessage(err))); sendErr != nil {
		return sendErr
	}

	return err
}
