package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strings"
	"time"
)

type Help struct {
	registry port.CommandRegistry
	sender   port.ReplySender
	command  string
}

func NewHelp(registry port.CommandRegistry, sender port.ReplySender, command string) *Help {
	return &Help{registry: registry, sender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: h.command, Description: "List everything Siggi can do"}
}

// Usage renders a command's invocation line, optional arguments in brackets.
func Usage(spec domain.CommandSpec) string {
	parts := []string{"/" + spec.Name}
	for _, p := range spec.Params {
		if p.Required {
			parts = append(parts, "<"+p.Name+">")
		} else {
			parts = append(parts, "["+p.Name+"]")
		}
	}

	return strings.Join(parts, " ")
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, h.command)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sb strings.Builder
	for _, spec := range h.registry.Specs() {
		fmt.Fprintf(&sb, "`%s` %s\n", Usage(spec), spec.Description)
	}

	return h.sender.SendReply(ctx, inv, domain.Reply{
		Title:     "Siggi commands",
		Body:      truncate(strings.TrimSpace(sb.String()), domain.MessageLimit),
		Color:     domain.ColorGreen,
		Ephemeral: true,
	})
}
