package handler

import (
	"context"
	"fmt"
	"sort"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const presence = "/siggi commands"

type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
}

// Discord receives slash command interactions from the gateway.
type Discord struct {
	session         *discordgo.Session
	commandRegistry port.CommandRegistry
	dispatcher      Dispatcher
	guildID         string
}

func NewDiscord(session *discordgo.Session, commandRegistry port.CommandRegistry, dispatcher Dispatcher,
	guildID string) *Discord {
	return &Discord{
		session:         session,
		commandRegistry: commandRegistry,
		dispatcher:      dispatcher,
		guildID:         guildID,
	}
}

// Start connects to the gateway, registers the slash commands and blocks until ctx is done.
func (d *Discord) Start(ctx context.Context) error {
	d.session.Identify.Intents = discordgo.IntentsGuilds

	d.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected to discord")

		if err := s.UpdateListeningStatus(presence); err != nil {
			log.Warn().Err(err).Msg("could not set presence")
		}
	})

	d.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		d.onInteraction(ctx, s, i.Interaction)
	})

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("error opening discord session: %w", err)
	}

	commands := ApplicationCommands(d.commandRegistry.Specs())
	if _, err := d.session.ApplicationCommandBulkOverwrite(d.session.State.User.ID, d.guildID, commands); err != nil {
		_ = d.session.Close()
		return fmt.Errorf("error registering slash commands: %w", err)
	}

	log.Info().Int("commands", len(commands)).Str("guild", d.guildID).Msg("registered slash commands")

	<-ctx.Done()

	log.Info().Msg("closing discord session")

	return d.session.Close()
}

func (d *Discord) onInteraction(ctx context.Context, r interactionResponder, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	inv := invocationFromInteraction(i)

	if _, err := d.commandRegistry.Get(inv.Command); err != nil {
		log.Debug().Str("command", inv.Command).Msg("no handler for command")
		return
	}

	err := r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Error().Err(&domain.DeliveryError{Err: err}).Str("command", inv.Command).
			Msg("failed to acknowledge interaction")
		return
	}

	if err := d.dispatcher.Handle(ctx, inv); err != nil {
		log.Err(err).Str("command", inv.Command).Msg("failed to dispatch command")
	}
}

func invocationFromInteraction(i *discordgo.Interaction) *domain.Invocation {
	data := i.ApplicationCommandData()

	raw := make(map[string]any, len(data.Options))
	for _, opt := range data.Options {
		if opt.Type != discordgo.ApplicationCommandOptionUser {
			raw[opt.Name] = opt.Value
			continue
		}

		id, _ := opt.Value.(string)
		user := domain.User{ID: id}
		if data.Resolved != nil {
			if u, ok := data.Resolved.Users[id]; ok {
				user = discordUser(u, "")
			}
		}
		raw[opt.Name] = user
	}

	var invoker domain.User
	switch {
	case i.Member != nil && i.Member.User != nil:
		invoker = discordUser(i.Member.User, i.Member.Nick)
	case i.User != nil:
		invoker = discordUser(i.User, "")
	}

	return &domain.Invocation{
		Command: data.Name,
		Raw:     raw,
		Invoker: invoker,
		Target: domain.Target{
			Platform:  domain.Discord,
			ChannelID: i.ChannelID,
			GuildID:   i.GuildID,
			IsDM:      i.GuildID == "",
			Handle:    i,
		},
	}
}

func discordUser(u *discordgo.User, nick string) domain.User {
	display := nick
	if display == "" {
		display = u.GlobalName
	}

	return domain.User{ID: u.ID, Username: u.Username, DisplayName: display}
}

var optionTypes = map[domain.ArgType]discordgo.ApplicationCommandOptionType{
	domain.ArgString:  discordgo.ApplicationCommandOptionString,
	domain.ArgInteger: discordgo.ApplicationCommandOptionInteger,
	domain.ArgNumber:  discordgo.ApplicationCommandOptionNumber,
	domain.ArgBoolean: discordgo.ApplicationCommandOptionBoolean,
	domain.ArgUser:    discordgo.ApplicationCommandOptionUser,
}

// ApplicationCommands converts command specs into slash command definitions. Discord wants required
// options first, so they are moved ahead of optional ones.
func ApplicationCommands(specs []domain.CommandSpec) []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, 0, len(specs))

	for _, spec := range specs {
		params := append([]domain.Param(nil), spec.Params...)
		sort.SliceStable(params, func(a, b int) bool { return params[a].Required && !params[b].Required })

		options := make([]*discordgo.ApplicationCommandOption, 0, len(params))
		for _, p := range params {
			options = append(options, applicationCommandOption(p))
		}

		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        spec.Name,
			Description: describe(spec.Description, spec.Name),
			Options:     options,
		})
	}

	return commands
}

func applicationCommandOption(p domain.Param) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        optionTypes[p.Type],
		Name:        p.Name,
		Description: describe(p.Description, p.Name),
		Required:    p.Required,
	}

	for _, c := range p.Choices {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}

	if p.MinLength > 0 {
		minLength := p.MinLength
		opt.MinLength = &minLength
	}

	if p.MaxLength > 0 {
		opt.MaxLength = p.MaxLength
	}

	if lo, ok := p.Min.Get(); ok {
		opt.MinValue = &lo
	}

	if hi, ok := p.Max.Get(); ok {
		opt.MaxValue = hi
	}

	return opt
}

// describe fills the description Discord requires, capped at its 100 character limit.
func describe(description, fallback string) string {
	if description == "" {
		description = fallback
	}

	if rs := []rune(description); len(rs) > 100 {
		description = string(rs[:99]) + "…"
	}

	return description
}
