package command

import (
	"context"
	"errors"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"
	"strings"
	"time"

	"github.com/samber/mo"
)

const maxPassages = 5

const catechismUnavailable = "The catechism isn't available right now, please try again later."

type Catechism struct {
	searcher port.ReferenceSearcher
	sender   port.ReplySender
	command  string
}

func NewCatechism(searcher port.ReferenceSearcher, sender port.ReplySender, command string) *Catechism {
	return &Catechism{searcher: searcher, sender: sender, command: command}
}

func (c *Catechism) GetCommand() string {
	return c.command
}

func (c *Catechism) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        c.command,
		Description: "Search the catechism",
		Params: []domain.Param{
			{Name: "query", Description: "Words or a paragraph number", Type: domain.ArgString, Required: true,
				MinLength: service.MinQueryLength, MaxLength: 200},
			{Name: "page", Description: "Result page", Type: domain.ArgInteger, Min: mo.Some(1.0)},
		},
	}
}

func (c *Catechism) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, c.command)

	query, _ := inv.Args.String("query")
	page, ok := inv.Args.Int("page")
	if !ok {
		page = 1
	}
	l.Info().Str("query", query).Int("page", page).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	passages, err := c.searcher.Search(query, maxPassages)
	if errors.Is(err, domain.ErrDocumentMissing) {
		l.Warn().Msg("catechism requested but no document is loaded")
		return c.sender.SendReply(ctx, inv, domain.Reply{Body: catechismUnavailable, Ephemeral: true})
	}
	if err != nil {
		return c.sender.NotifyAndReturnError(ctx, err, inv)
	}

	if len(passages) == 0 {
		return c.sender.SendReply(ctx, inv, domain.TextReply(fmt.Sprintf("Nothing in the catechism matches %q.", query)))
	}

	pages := service.Paginate(renderPassages(passages), domain.PageBudget)

	text, err := pages.Get(page)
	if err != nil {
		return c.sender.NotifyAndReturnError(ctx, err, inv)
	}

	footer := fmt.Sprintf("Page %d of %d", page, len(pages))
	if page < len(pages) {
		footer += fmt.Sprintf(" · use page:%d for more", page+1)
	}

	return c.sender.SendReply(ctx, inv, domain.Reply{
		Title:  "Catechism: " + truncate(query, 200),
		Body:   text,
		Color:  domain.ColorPurple,
		Footer: footer,
	})
}

func renderPassages(passages []domain.Passage) string {
	var sb strings.Builder

	for _, p := range passages {
		fmt.Fprintf(&sb, "**§%d**", p.Number)
		if p.Section != "" {
			fmt.Fprintf(&sb, " *%s*", p.Section)
		}
		sb.WriteString("\n" + p.Text + "\n\n")
	}

	return sb.String()
}
