package command

import (
	"context"
	"encoding/base64"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strings"
	"time"
	"unicode/utf8"
)

type Base64 struct {
	sender  port.ReplySender
	command string
}

func NewBase64(sender port.ReplySender, command string) *Base64 {
	return &Base64{sender: sender, command: command}
}

func (b *Base64) GetCommand() string {
	return b.command
}

func (b *Base64) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        b.command,
		Description: "Encode or decode base64",
		Params: []domain.Param{
			{Name: "action", Description: "encode or decode", Type: domain.ArgString, Required: true,
				Choices: []string{"encode", "decode"}},
			{Name: "text", Description: "Input text", Type: domain.ArgString, Required: true,
				MaxLength: MaxEncodeBytes, Verbatim: true},
		},
	}
}

// MaxEncodeBytes is the largest input whose encoding still fits on one page.
const MaxEncodeBytes = domain.PageBudget / 4 * 3

// DecodeBase64 accepts standard and URL-safe alphabets, padded or not, and requires UTF-8 output.
func DecodeBase64(text string) (string, error) {
	text = strings.TrimSpace(text)

	encodings := []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	}

	for _, enc := range encodings {
		decoded, err := enc.DecodeString(text)
		if err != nil {
			continue
		}

		if !utf8.Valid(decoded) {
			return "", domain.NewValidationError("that decodes to binary data, not text")
		}

		return string(decoded), nil
	}

	return "", domain.NewValidationError("%q isn't valid base64", truncate(text, 100))
}

func (b *Base64) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, b.command)

	action, _ := inv.Args.String("action")
	text, _ := inv.Args.String("text")
	l.Info().Str("action", action).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out string
	switch action {
	case "encode":
		if len(text) > MaxEncodeBytes {
			return b.sender.NotifyAndReturnError(ctx,
				domain.NewValidationError("that's too long to encode, keep it to %d bytes or fewer", MaxEncodeBytes), inv)
		}
		out = base64.StdEncoding.EncodeToString([]byte(text))
	default:
		decoded, err := DecodeBase64(text)
		if err != nil {
			return b.sender.NotifyAndReturnError(ctx, err, inv)
		}
		out = decoded
	}

	return b.sender.SendReply(ctx, inv, domain.Reply{
		Title: "base64 " + action,
		Body:  "```\n" + out + "\n```",
		Color: domain.ColorGrey,
	})
}
