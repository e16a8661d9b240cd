package command

import (
	"context"
	"fmt"
	"math"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"
	"strconv"
	"time"
)

type Convert struct {
	sender  port.ReplySender
	command string
}

func NewConvert(sender port.ReplySender, command string) *Convert {
	return &Convert{sender: sender, command: command}
}

func (c *Convert) GetCommand() string {
	return c.command
}

func (c *Convert) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        c.command,
		Description: "Convert between units",
		Params: []domain.Param{
			{Name: "value", Description: "Amount to convert", Type: domain.ArgNumber, Required: true},
			{Name: "from", Description: "Unit to convert from", Type: domain.ArgString, Required: true,
				Choices: service.UnitCodes()},
			{Name: "to", Description: "Unit to convert to", Type: domain.ArgString, Required: true,
				Choices: service.UnitCodes()},
		},
	}
}

func (c *Convert) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, c.command)

	value, _ := inv.Args.Float("value")
	from, _ := inv.Args.String("from")
	to, _ := inv.Args.String("to")
	l.Info().Float64("value", value).Str("from", from).Str("to", to).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := service.Convert(value, from, to)
	if err != nil {
		return c.sender.NotifyAndReturnError(ctx, err, inv)
	}

	return c.sender.SendReply(ctx, inv, domain.TextReply(fmt.Sprintf("%s %s = **%s %s**",
		formatAmount(value), service.UnitName(from), formatAmount(result), service.UnitName(to))))
}

// formatAmount rounds to four decimals and drops trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*10000)/10000, 'f', -1, 64)
}
