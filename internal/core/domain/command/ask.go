package command

import (
	"context"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

type Ask struct {
	answers port.AnswerProvider
	limiter port.UsageLimiter
	sender  port.ReplySender
	command string
}

func NewAsk(answers port.AnswerProvider, limiter port.UsageLimiter, sender port.ReplySender,
	command string) *Ask {
	return &Ask{answers: answers, limiter: limiter, sender: sender, command: command}
}

func (a *Ask) GetCommand() string {
	return a.command
}

func (a *Ask) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        a.command,
		Description: "Ask Siggi a question",
		Params: []domain.Param{
			{Name: "question", Description: "Your question", Type: domain.ArgString, Required: true,
				MinLength: 3, MaxLength: 500},
		},
	}
}

func (a *Ask) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, a.command)

	question, _ := inv.Args.String("question")
	l.Debug().Str("question", question).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := a.limiter.CheckLimit(inv.Invoker.ID); err != nil {
		l.Info().Msg("user is over the daily answer limit")
		return a.sender.NotifyAndReturnError(ctx, err, inv)
	}

	answer := a.answers.Answer(ctx, question)

	// only model answers count, the oracle is free
	footer := "answered by the oracle"
	if model, ok := answer.Model.Get(); ok {
		footer = "answered by " + model
		a.limiter.AddUsage(inv.Invoker.ID)
	}

	return a.sender.SendReply(ctx, inv, domain.Reply{
		Title:  truncate(question, 256),
		Body:   truncate(answer.Text, domain.PageBudget),
		Color:  domain.ColorGreen,
		Footer: footer,
	})
}
