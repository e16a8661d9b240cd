package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strings"
	"time"

	"github.com/samber/mo"
)

const defaultHeadlines = 5

type News struct {
	news    port.NewsProvider
	sender  port.ReplySender
	command string
}

func NewNews(news port.NewsProvider, sender port.ReplySender, command string) *News {
	return &News{news: news, sender: sender, command: command}
}

func (n *News) GetCommand() string {
	return n.command
}

func (n *News) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        n.command,
		Description: "Read the latest headlines",
		Params: []domain.Param{
			{Name: "count", Description: "How many headlines (1-10)", Type: domain.ArgInteger,
				Min: mo.Some(1.0), Max: mo.Some(10.0)},
		},
	}
}

func (n *News) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, n.command)

	count, ok := inv.Args.Int("count")
	if !ok {
		count = defaultHeadlines
	}
	l.Info().Int("count", count).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	headlines := n.news.Headlines(ctx, count)

	return n.sender.SendReply(ctx, inv, domain.Reply{
		Title:  "Latest headlines",
		Body:   renderHeadlines(headlines),
		Color:  domain.ColorBlue,
		Footer: requestedBy(inv),
	})
}

func renderHeadlines(headlines []domain.Headline) string {
	var sb strings.Builder

	for i, h := range headlines {
		entry := fmt.Sprintf("%d. [%s](%s) (%s)", i+1, h.Title, h.Link, h.Source)
		if summary, ok := h.Summary.Get(); ok {
			entry += "\n" + truncate(summary, 160)
		}
		entry += "\n"

		if sb.Len()+len(entry) > domain.PageBudget {
			break
		}
		sb.WriteString(entry)
	}

	return strings.TrimSpace(sb.String())
}
