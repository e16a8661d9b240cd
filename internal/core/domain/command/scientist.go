package command

import (
	"context"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

type Scientist struct {
	summaries port.SummaryProvider
	sender    port.ReplySender
	command   string
}

func NewScientist(summaries port.SummaryProvider, sender port.ReplySender, command string) *Scientist {
	return &Scientist{summaries: summaries, sender: sender, command: command}
}

func (s *Scientist) GetCommand() string {
	return s.command
}

func (s *Scientist) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        s.command,
		Description: "Learn about a scientist",
		Params: []domain.Param{
			{Name: "name", Description: "Scientist to look up, random if empty", Type: domain.ArgString,
				MaxLength: 100},
		},
	}
}

func (s *Scientist) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, s.command)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var summary domain.Summary
	if name, ok := inv.Args.String("name"); ok {
		l.Info().Str("name", name).Msg("handling request")
		summary = s.summaries.Summary(ctx, name)
	} else {
		l.Info().Msg("handling request for random scientist")
		summary = s.summaries.RandomScientist(ctx)
	}

	return s.sender.SendReply(ctx, inv, domain.Reply{
		Title:    summary.Name,
		Body:     truncate(summary.Description, domain.PageBudget),
		ImageURL: summary.ImageURL,
		URL:      link(summary.SourceURL),
		Color:    domain.ColorBlue,
		Footer:   requestedBy(inv),
	})
}
