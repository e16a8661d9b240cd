package handler

import (
	"context"
	"strconv"
	"strings"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/domain/command"
	"siggibot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram turns "/command arg arg" messages into invocations.
type Telegram struct {
	commandRegistry port.CommandRegistry
	dispatcher      Dispatcher
}

func NewTelegram(commandRegistry port.CommandRegistry, dispatcher Dispatcher) *Telegram {
	return &Telegram{commandRegistry: commandRegistry, dispatcher: dispatcher}
}

func (t *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	if !strings.HasPrefix(text, "/") {
		return
	}

	log.Debug().Str("message", text).Msg("received command")

	name := command.ParseCommand(text)
	commandHandler, err := t.commandRegistry.Get(name)
	if err != nil {
		log.Debug().Str("command", name).Msg("no handler for command")
		return
	}

	spec := commandHandler.Spec()
	raw := textArgs(spec, command.ParseCommandArgs(text))

	// a reply to someone's message targets that person when the command takes a user
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		for _, p := range spec.Params {
			if _, set := raw[p.Name]; p.Type == domain.ArgUser && !set {
				raw[p.Name] = telegramUser(msg.ReplyToMessage.From)
			}
		}
	}

	inv := &domain.Invocation{
		Command: name,
		Raw:     raw,
		Invoker: telegramUser(msg.From),
		Target: domain.Target{
			Platform:  domain.Telegram,
			ChannelID: strconv.FormatInt(msg.Chat.ID, 10),
			MessageID: msg.ID,
			IsDM:      msg.Chat.Type == models.ChatTypePrivate,
		},
	}

	if err := t.dispatcher.Handle(ctx, inv); err != nil {
		log.Err(err).Str("command", name).Msg("failed to dispatch command")
	}
}

func telegramUser(user *models.User) domain.User {
	if user == nil {
		return domain.User{}
	}

	display := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if display == "" && user.Username != "" {
		display = "@" + user.Username
	}

	return domain.User{
		ID:          strconv.FormatInt(user.ID, 10),
		Username:    user.Username,
		DisplayName: display,
	}
}
