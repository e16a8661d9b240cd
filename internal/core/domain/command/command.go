package command

import (
	"siggibot/internal/core/domain"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

func invocationLogger(inv *domain.Invocation, command string) zerolog.Logger {
	return log.With().
		Str("invocationId", inv.ID).
		Str("command", command).
		Str("userId", inv.Invoker.ID).
		Str("channelId", inv.Target.ChannelID).
		Logger()
}

func requestedBy(inv *domain.Invocation) string {
	return "Requested by " + inv.Invoker.Name()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	rs := []rune(s)
	return strings.TrimRightFunc(string(rs[:n-1]), func(r rune) bool { return r == ' ' || r == '\n' }) + "…"
}

func link(url string) mo.Option[string] {
	if url == "" {
		return mo.None[string]()
	}

	return mo.Some(url)
}
