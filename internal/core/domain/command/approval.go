package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

type Approval struct {
	approval port.ApprovalProvider
	sender   port.ReplySender
	command  string
}

func NewApproval(approval port.ApprovalProvider, sender port.ReplySender, command string) *Approval {
	return &Approval{approval: approval, sender: sender, command: command}
}

func (a *Approval) GetCommand() string {
	return a.command
}

func (a *Approval) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: a.command, Description: "Show the current presidential approval rating"}
}

func (a *Approval) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, a.command)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rating := a.approval.Approval(ctx)

	color := domain.ColorGreen
	if rating.Net < 0 {
		color = domain.ColorRed
	}

	return a.sender.SendReply(ctx, inv, domain.Reply{
		Title: rating.Subject,
		Body:  "Source: " + rating.Source,
		Fields: []domain.Field{
			{Name: "Approve", Value: fmt.Sprintf("%.1f%%", rating.Approve), Inline: true},
			{Name: "Disapprove", Value: fmt.Sprintf("%.1f%%", rating.Disapprove), Inline: true},
			{Name: "Net", Value: fmt.Sprintf("%+.1f", rating.Net), Inline: true},
		},
		URL:    link(rating.SourceURL),
		Color:  color,
		Footer: requestedBy(inv),
	})
}
