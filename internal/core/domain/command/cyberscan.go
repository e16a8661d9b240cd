package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"
	"strings"
	"time"
)

type CyberScan struct {
	sender  port.ReplySender
	command string
	delay   time.Duration
	salt    string
}

type CyberScanParams struct {
	Sender  port.ReplySender
	Command string
	// Delay is how long the staged "scanning" reply stays up before the result replaces it.
	Delay time.Duration
	Salt  string
}

func NewCyberScan(p CyberScanParams) *CyberScan {
	return &CyberScan{sender: p.Sender, command: p.Command, delay: p.Delay, salt: p.Salt}
}

func (c *CyberScan) GetCommand() string {
	return c.command
}

func (c *CyberScan) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        c.command,
		Description: "Run a biometric cyberscan on someone",
		Params: []domain.Param{
			{Name: "user", Description: "Who to scan, yourself if empty", Type: domain.ArgUser},
		},
	}
}

func (c *CyberScan) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, c.command)

	target, ok := inv.Args.User("user")
	if !ok {
		target = inv.Invoker
	}
	l.Info().Str("target", target.ID).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := c.sender.SendReply(ctx, inv, domain.Reply{
		Title: "CYBERSCAN",
		Body:  fmt.Sprintf("🔍 Scanning %s...\n`[▓▓▓▓░░░░░░] establishing neural handshake`", target.Name()),
		Color: domain.ColorCyan,
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("scan interrupted: %w", ctx.Err())
	case <-time.After(c.delay):
	}

	return c.sender.SendReply(ctx, inv, renderScan(service.Scan(target, c.salt), inv))
}

func renderScan(p service.ScanProfile, inv *domain.Invocation) domain.Reply {
	color := domain.ColorCyan
	if p.ThreatLevel >= 70 {
		color = domain.ColorRed
	}

	return domain.Reply{
		Title: "CYBERSCAN COMPLETE: " + p.Target.Name(),
		Body:  fmt.Sprintf("Designation **%s**\nVulnerability: %s", p.Designation, p.Vulnerability),
		Fields: []domain.Field{
			{Name: "Threat level", Value: fmt.Sprintf("%d/100 (%s)", p.ThreatLevel, p.ThreatClass), Inline: true},
			{Name: "Neural sync", Value: fmt.Sprintf("%.1f%%", p.NeuralSync), Inline: true},
			{Name: "Credits", Value: fmt.Sprintf("€$ %d", p.Credits), Inline: true},
			{Name: "Affiliation", Value: p.Affiliation},
			{Name: "Implants", Value: strings.Join(p.Implants, "\n")},
		},
		Color:  color,
		Footer: requestedBy(inv),
	}
}
