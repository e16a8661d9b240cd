package command

import (
	"context"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"
	"time"

	"github.com/samber/mo"
)

type Siggi struct {
	sender  port.ReplySender
	command string
}

func NewSiggi(sender port.ReplySender, command string) *Siggi {
	return &Siggi{sender: sender, command: command}
}

func (s *Siggi) GetCommand() string {
	return s.command
}

func (s *Siggi) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: s.command, Description: "Get a picture of Albert Einstein"}
}

func (s *Siggi) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, s.command)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.sender.SendReply(ctx, inv, domain.Reply{
		Title:    "Albert Einstein",
		ImageURL: mo.Some(service.EinsteinImage),
		URL:      mo.None[string](),
		Color:    domain.ColorGreen,
		Footer:   requestedBy(inv),
	})
}
