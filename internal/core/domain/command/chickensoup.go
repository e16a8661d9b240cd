package command

import (
	"context"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

const chickenSoupRant = "my fucking mother cooks this horrid packet chicken soup SHIT I hate it, " +
	"it smells so bad and gets everywhere"

type ChickenSoup struct {
	sender  port.ReplySender
	command string
}

func NewChickenSoup(sender port.ReplySender, command string) *ChickenSoup {
	return &ChickenSoup{sender: sender, command: command}
}

func (c *ChickenSoup) GetCommand() string {
	return c.command
}

func (c *ChickenSoup) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: c.command, Description: "Express frustration about packet chicken soup"}
}

func (c *ChickenSoup) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, c.command)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.sender.SendReply(ctx, inv, domain.TextReply(chickenSoupRant))
}
