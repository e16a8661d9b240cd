package command

import (
	"context"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

type Saint struct {
	saints  port.SaintProvider
	sender  port.ReplySender
	command string
	now     func() time.Time
}

func NewSaint(saints port.SaintProvider, sender port.ReplySender, command string) *Saint {
	return &Saint{saints: saints, sender: sender, command: command, now: time.Now}
}

func (s *Saint) GetCommand() string {
	return s.command
}

func (s *Saint) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: s.command, Description: "Who is today's saint?"}
}

func (s *Saint) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, s.command)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	saint := s.saints.SaintOfDay(ctx, s.now())

	var fields []domain.Field
	if rank, ok := saint.Rank.Get(); ok {
		fields = append(fields, domain.Field{Name: "Rank", Value: rank, Inline: true})
	}

	if colour, ok := saint.Colour.Get(); ok {
		fields = append(fields, domain.Field{Name: "Liturgical colour", Value: colour, Inline: true})
	}

	return s.sender.SendReply(ctx, inv, domain.Reply{
		Title:  saint.Name,
		Body:   truncate(saint.Description, domain.PageBudget),
		Fields: fields,
		Color:  domain.ColorGold,
		Footer: saint.Date.Format("Monday, 2 January 2006"),
	})
}
