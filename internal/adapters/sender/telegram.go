package sender

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"siggibot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	TelegramMessageLimit = 4096
	TelegramCaptionLimit = 1024
)

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func telegramTarget(inv *domain.Invocation) (int64, *models.ReplyParameters, error) {
	chatID, err := strconv.ParseInt(inv.Target.ChannelID, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid telegram chat id %q: %w", inv.Target.ChannelID, err)
	}

	if inv.Target.MessageID == 0 {
		return chatID, nil, nil
	}

	return chatID, &models.ReplyParameters{MessageID: inv.Target.MessageID, ChatID: chatID}, nil
}

func (s *Telegram) SendReply(ctx context.Context, inv *domain.Invocation, reply domain.Reply) error {
	chatID, replyTo, err := telegramTarget(inv)
	if err != nil {
		return &domain.DeliveryError{Err: err}
	}

	if img, ok := reply.ImageURL.Get(); ok {
		if err := s.sendPhoto(ctx, chatID, replyTo, img, reply.Title); err != nil {
			return err
		}
		// the caption already carries the title
		reply.Title = ""
		replyTo = nil
	}

	text := strings.ReplaceAll(RenderText(reply), "**", "")
	if text == "" {
		return nil
	}

	for i, part := range chunk(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{ChatID: chatID, Text: part}
		if i == 0 {
			params.ReplyParameters = replyTo
		}

		if _, err := s.bot.SendMessage(ctx, params); err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send telegram message")
			return &domain.DeliveryError{Err: err}
		}
	}

	return nil
}

func (s *Telegram) sendPhoto(ctx context.Context, chatID int64, replyTo *models.ReplyParameters,
	url, caption string) error {
	if utf8.RuneCountInString(caption) > TelegramCaptionLimit {
		caption = string([]rune(caption)[:TelegramCaptionLimit])
	}

	_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:          chatID,
		Photo:           &models.InputFileString{Data: url},
		Caption:         caption,
		ReplyParameters: replyTo,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return &domain.DeliveryError{Err: err}
	}

	return nil
}

func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, inv *domain.Invocation) error {
	if sendErr := s.SendReply(ctx, inv, domain.TextReply(domain.UserMessage(err))); sendErr != nil {
		log.Error().Err(sendErr).Msg("failed to notify user about error")
		return sendErr
	}

	return err
}
