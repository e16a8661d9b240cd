package command

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

var hashes = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

type Hash struct {
	sender  port.ReplySender
	command string
}

func NewHash(sender port.ReplySender, command string) *Hash {
	return &Hash{sender: sender, command: command}
}

func (h *Hash) GetCommand() string {
	return h.command
}

func (h *Hash) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        h.command,
		Description: "Hash some text",
		Params: []domain.Param{
			{Name: "text", Description: "Text to hash", Type: domain.ArgString, Required: true, MaxLength: 1000,
				Verbatim: true},
			{Name: "algorithm", Description: "Hash algorithm", Type: domain.ArgString, Required: true,
				Choices: []string{"md5", "sha1", "sha256", "sha512"}},
		},
	}
}

// Digest returns the lower-case hex digest of text.
func Digest(algorithm, text string) (string, error) {
	newHash, ok := hashes[algorithm]
	if !ok {
		return "", domain.NewValidationError("unknown hash algorithm %q", algorithm)
	}

	sum := newHash()
	_, _ = sum.Write([]byte(text))

	return hex.EncodeToString(sum.Sum(nil)), nil
}

func (h *Hash) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, h.command)

	text, _ := inv.Args.String("text")
	algorithm, _ := inv.Args.String("algorithm")
	l.Info().Str("algorithm", algorithm).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	digest, err := Digest(algorithm, text)
	if err != nil {
		return h.sender.NotifyAndReturnError(ctx, err, inv)
	}

	return h.sender.SendReply(ctx, inv, domain.Reply{
		Title: algorithm,
		Body:  "`" + digest + "`",
		Color: domain.ColorGrey,
	})
}
