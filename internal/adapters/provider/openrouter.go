package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/revrost/go-openrouter"
	"github.com/samber/mo"
)

const (
	DefaultOpenRouterModel = "openai/gpt-4.1-mini"
	systemPrompt           = "You are Siggi, a cheerful Discord bot named after Albert Einstein. Answer in at most " +
		"three short paragraphs. Never mention that you are a language model."
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouter answers one-shot questions. Without an API key every question goes to the oracle.
type OpenRouter struct {
	client chatClient
	model  string
	rng    *rand.Rand
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	if model == "" {
		model = DefaultOpenRouterModel
	}

	o := &OpenRouter{model: model, rng: service.NewRand(time.Now().UnixNano())}
	if apiKey != "" {
		o.client = openrouter.NewClient(apiKey, openrouter.WithXTitle("siggibot"))
	}

	return o
}

func (o *OpenRouter) Answer(ctx context.Context, question string) domain.Answer {
	answer, _ := service.Resolve(ctx, "openrouter", []service.Strategy[domain.Answer]{
		{Name: "openrouter", Fetch: func(ctx context.Context) (mo.Option[domain.Answer], error) {
			return o.ask(ctx, question)
		}},
	}, func() domain.Answer {
		return service.FallbackAnswer(question, o.rng)
	})

	return answer
}

func (o *OpenRouter) ask(ctx context.Context, question string) (mo.Option[domain.Answer], error) {
	if o.client == nil {
		return mo.None[domain.Answer](), &domain.ProviderError{Provider: "openrouter", Err: errMissingCredentials}
	}

	resp, err := o.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model: o.model,
		Messages: []openrouter.ChatCompletionMessage{
			{Role: openrouter.ChatMessageRoleSystem, Content: openrouter.Content{Text: systemPrompt}},
			{Role: openrouter.ChatMessageRoleUser, Content: openrouter.Content{Text: question}},
		},
	})
	if err != nil {
		return mo.None[domain.Answer](), &domain.ProviderError{Provider: "openrouter",
			Err: fmt.Errorf("openrouter API error: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return mo.None[domain.Answer](), &domain.ProviderError{Provider: "openrouter", Err: errors.New("no choices")}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if text == "" {
		return mo.None[domain.Answer](), nil
	}

	model := resp.Model
	if model == "" {
		model = o.model
	}

	return mo.Some(domain.Answer{Question: question, Text: text, Model: mo.Some(model)}), nil
}
