package sender

import (
	"context"
	"errors"

	"siggibot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// DiscordSession is the part of a discordgo session used to answer interactions.
type DiscordSession interface {
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var errNoInteraction = errors.New("invocation carries no discord interaction")

// Discord edits the deferred interaction response. Ephemeral replies replace it with a private follow-up.
type Discord struct {
	session DiscordSession
}

func NewDiscord(session DiscordSession) *Discord {
	return &Discord{session: session}
}

func (s *Discord) SendReply(ctx context.Context, inv *domain.Invocation, reply domain.Reply) error {
	interaction, ok := inv.Target.Handle.(*discordgo.Interaction)
	if !ok || interaction == nil {
		return &domain.DeliveryError{Err: errNoInteraction}
	}

	content, embeds := discordMessage(reply)
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}

	if reply.Ephemeral {
		if err := s.session.InteractionResponseDelete(interaction, opts...); err != nil {
			log.Debug().Err(err).Msg("could not delete deferred response")
		}

		_, err := s.session.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
			Content: content,
			Embeds:  embeds,
			Flags:   discordgo.MessageFlagsEphemeral,
		}, opts...)
		if err != nil {
			return &domain.DeliveryError{Err: err}
		}

		return nil
	}

	_, err := s.session.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	}, opts...)
	if err != nil {
		return &domain.DeliveryError{Err: err}
	}

	return nil
}

func (s *Discord) NotifyAndReturnError(ctx context.Context, err error, inv *domain.Invocation) error {
	reply := domain.TextReply(domain.UserMessage(err))
	reply.Ephemeral = true

	if sendErr := s.SendReply(ctx, inv, reply); sendErr != nil {
		log.Error().Err(sendErr).Msg("failed to notify user about error")
		return sendErr
	}

	return err
}

// discordMessage renders plain replies as content and everything else as a single embed.
func discordMessage(reply domain.Reply) (string, []*discordgo.MessageEmbed) {
	if reply.Title == "" && reply.Footer == "" && len(reply.Fields) == 0 && reply.ImageURL.IsAbsent() {
		return truncateRunes(reply.Body, domain.MessageLimit), []*discordgo.MessageEmbed{}
	}

	embed := &discordgo.MessageEmbed{
		Title:       reply.Title,
		Description: truncateRunes(reply.Body, domain.MessageLimit),
		URL:         reply.URL.OrEmpty(),
		Color:       reply.Color,
	}

	if img, ok := reply.ImageURL.Get(); ok {
		embed.Image = &discordgo.MessageEmbedImage{URL: img}
	}

	for _, f := range reply.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	if reply.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: reply.Footer}
	}

	return "", []*discordgo.MessageEmbed{embed}
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}

	return string(rs[:n-1]) + "…"
}
