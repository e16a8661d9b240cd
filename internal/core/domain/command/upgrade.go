package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"
	"time"
)

type Upgrade struct {
	sender  port.ReplySender
	command string
	salt    string
}

func NewUpgrade(sender port.ReplySender, command string, salt string) *Upgrade {
	return &Upgrade{sender: sender, command: command, salt: salt}
}

func (u *Upgrade) GetCommand() string {
	return u.command
}

func (u *Upgrade) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        u.command,
		Description: "Get a cybernetic upgrade offer",
		Params: []domain.Param{
			{Name: "user", Description: "Who gets the upgrade, yourself if empty", Type: domain.ArgUser},
		},
	}
}

func (u *Upgrade) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, u.command)

	target, ok := inv.Args.User("user")
	if !ok {
		target = inv.Invoker
	}
	l.Info().Str("target", target.ID).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	offer := service.Upgrade(target, u.salt)

	return u.sender.SendReply(ctx, inv, domain.Reply{
		Title: "UPGRADE AVAILABLE: " + offer.Title(),
		Body:  fmt.Sprintf("Ripperdoc recommendation for %s", target.Name()),
		Fields: []domain.Field{
			{Name: "Cost", Value: fmt.Sprintf("€$ %d", offer.Cost), Inline: true},
			{Name: "Success chance", Value: fmt.Sprintf("%d%%", offer.SuccessChance), Inline: true},
			{Name: "Side effects", Value: offer.SideEffect},
		},
		Color:  domain.ColorPurple,
		Footer: requestedBy(inv),
	})
}
