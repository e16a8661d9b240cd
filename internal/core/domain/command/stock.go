package command

import (
	"context"
	"fmt"
	"regexp"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strings"
	"time"

	"github.com/samber/mo"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,9}$`)

type Stock struct {
	quotes  port.QuoteProvider
	sender  port.ReplySender
	command string
}

func NewStock(quotes port.QuoteProvider, sender port.ReplySender, command string) *Stock {
	return &Stock{quotes: quotes, sender: sender, command: command}
}

func (s *Stock) GetCommand() string {
	return s.command
}

func (s *Stock) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        s.command,
		Description: "Get a stock quote",
		Params: []domain.Param{
			{Name: "symbol", Description: "Ticker symbol, e.g. AAPL", Type: domain.ArgString, Required: true,
				MaxLength: 10},
		},
	}
}

func (s *Stock) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, s.command)

	raw, _ := inv.Args.String("symbol")
	symbol := strings.ToUpper(strings.TrimPrefix(raw, "$"))
	l.Info().Str("symbol", symbol).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !symbolPattern.MatchString(symbol) {
		return s.sender.NotifyAndReturnError(ctx,
			domain.NewValidationError("%q doesn't look like a ticker symbol", raw), inv)
	}

	quote := s.quotes.Quote(ctx, symbol)

	return s.sender.SendReply(ctx, inv, renderQuote(quote, inv))
}

func renderQuote(q domain.Quote, inv *domain.Invocation) domain.Reply {
	color := domain.ColorGreen
	arrow := "▲"
	sign := "+"
	if q.Change.IsNegative() {
		color = domain.ColorRed
		arrow = "▼"
		sign = ""
	}

	body := fmt.Sprintf("**%s %s** %s %s%s (%s%s%%)", q.Price.StringFixed(2), q.Currency, arrow,
		sign, q.Change.StringFixed(2), sign, q.ChangePercent.StringFixed(2))

	return domain.Reply{
		Title: q.Symbol,
		Body:  body,
		Fields: []domain.Field{
			{Name: "Previous close", Value: q.PreviousClose().StringFixed(2), Inline: true},
			{Name: "Volume", Value: fmt.Sprintf("%d", q.Volume), Inline: true},
			{Name: "As of", Value: q.AsOf.UTC().Format("2006-01-02 15:04 MST"), Inline: true},
		},
		URL:    mo.Some("https://finance.yahoo.com/quote/" + q.Symbol),
		Color:  color,
		Footer: requestedBy(inv),
	}
}
