package handler

import (
	"context"
	"errors"
	"testing"

	"siggibot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot/models"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Handle(ctx context.Context, inv *domain.Invocation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockDispatcher) Run(ctx context.Context, inv *domain.Invocation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func scanSpec() domain.CommandSpec {
	return domain.CommandSpec{Name: "cyberscan", Description: "Scan a user", Params: []domain.Param{
		{Name: "user", Type: domain.ArgUser},
	}}
}

func registryWith(spec domain.CommandSpec) *MockRegistry {
	reg := new(MockRegistry)
	reg.cmd = &MockCmdHandler{spec: spec}
	return reg
}

func makeUpdate(txt string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: txt,
			Chat: models.Chat{ID: 100, Type: models.ChatTypeGroup},
			From: &models.User{ID: 200, Username: "bob", FirstName: "Bob"},
		},
	}
}

func TestTelegram_Handle(t *testing.T) {
	tests := []struct {
		name      string
		update    *models.Update
		spec      domain.CommandSpec
		mockSetup func(r *MockRegistry, d *MockDispatcher)
		wantInv   *domain.Invocation
	}{
		{
			name:      "no message in update",
			update:    &models.Update{},
			spec:      stockSpec(),
			mockSetup: func(_ *MockRegistry, _ *MockDispatcher) {},
		},
		{
			name:      "plain chatter",
			update:    makeUpdate("hello there"),
			spec:      stockSpec(),
			mockSetup: func(_ *MockRegistry, _ *MockDispatcher) {},
		},
		{
			name:   "unknown command",
			update: makeUpdate("/unknown"),
			spec:   stockSpec(),
			mockSetup: func(r *MockRegistry, _ *MockDispatcher) {
				r.On("Get", "unknown").Return(nil, domain.ErrUnknownCommand)
			},
		},
		{
			name:   "known command with positional argument",
			update: makeUpdate("/Stock@siggibot aapl"),
			spec:   stockSpec(),
			mockSetup: func(r *MockRegistry, d *MockDispatcher) {
				r.On("Get", "stock").Return(nil, nil)
				d.On("Handle", mock.Anything, mock.Anything).Return(nil)
			},
			wantInv: &domain.Invocation{
				Command: "stock",
				Raw:     map[string]any{"symbol": "aapl"},
				Invoker: domain.User{ID: "200", Username: "bob", DisplayName: "Bob"},
				Target:  domain.Target{Platform: domain.Telegram, ChannelID: "100", MessageID: 1},
			},
		},
		{
			name: "reply targets the replied-to user",
			update: func() *models.Update {
				u := makeUpdate("/cyberscan")
				u.Message.ReplyToMessage = &models.Message{From: &models.User{ID: 300, Username: "eve"}}
				return u
			}(),
			spec: scanSpec(),
			mockSetup: func(r *MockRegistry, d *MockDispatcher) {
				r.On("Get", "cyberscan").Return(nil, nil)
				d.On("Handle", mock.Anything, mock.Anything).Return(errors.New("queue closed"))
			},
			wantInv: &domain.Invocation{
				Command: "cyberscan",
				Raw:     map[string]any{"user": domain.User{ID: "300", Username: "eve", DisplayName: "@eve"}},
				Invoker: domain.User{ID: "200", Username: "bob", DisplayName: "Bob"},
				Target:  domain.Target{Platform: domain.Telegram, ChannelID: "100", MessageID: 1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := registryWith(tc.spec)
			d := new(MockDispatcher)
			tc.mockSetup(reg, d)

			NewTelegram(reg, d).Handle(t.Context(), nil, tc.update)

			reg.AssertExpectations(t)
			if tc.wantInv == nil {
				assert.Empty(t, d.Calls)
				return
			}

			d.AssertCalled(t, "Handle", mock.Anything, mock.MatchedBy(func(inv *domain.Invocation) bool {
				return assert.ObjectsAreEqual(tc.wantInv, inv)
			}))
		})
	}
}

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
	_ ...discordgo.RequestOption) error {
	args := m.Called(interaction, resp)
	return args.Error(0)
}

func weatherInteraction() *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "i1",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "chan",
		GuildID:   "guild",
		Member: &discordgo.Member{
			Nick: "Bobby",
			User: &discordgo.User{ID: "200", Username: "bob", GlobalName: "Bob"},
		},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "weather",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "location", Type: discordgo.ApplicationCommandOptionString, Value: "Glasgow"},
			},
		},
	}
}

func TestDiscord_OnInteraction(t *testing.T) {
	t.Run("known command is deferred then dispatched", func(t *testing.T) {
		reg := registryWith(domain.CommandSpec{Name: "weather"})
		reg.On("Get", "weather").Return(nil, nil)
		r := new(MockResponder)
		d := new(MockDispatcher)
		i := weatherInteraction()

		r.On("InteractionRespond", i, mock.MatchedBy(func(resp *discordgo.InteractionResponse) bool {
			return resp.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource
		})).Return(nil).Once()
		d.On("Handle", mock.Anything, mock.MatchedBy(func(inv *domain.Invocation) bool {
			return inv.Command == "weather" && inv.Raw["location"] == "Glasgow" &&
				inv.Invoker.DisplayName == "Bobby" && inv.Target.Handle == i
		})).Return(nil).Once()

		NewDiscord(nil, reg, d, "").onInteraction(t.Context(), r, i)

		r.AssertExpectations(t)
		d.AssertExpectations(t)
	})

	t.Run("unknown command is not acknowledged", func(t *testing.T) {
		reg := registryWith(domain.CommandSpec{Name: "weather"})
		reg.On("Get", "weather").Return(nil, domain.ErrUnknownCommand)
		r := new(MockResponder)
		d := new(MockDispatcher)

		NewDiscord(nil, reg, d, "").onInteraction(t.Context(), r, weatherInteraction())

		assert.Empty(t, r.Calls)
		assert.Empty(t, d.Calls)
	})

	t.Run("failed acknowledgement drops the invocation", func(t *testing.T) {
		reg := registryWith(domain.CommandSpec{Name: "weather"})
		reg.On("Get", "weather").Return(nil, nil)
		r := new(MockResponder)
		r.On("InteractionRespond", mock.Anything, mock.Anything).Return(errors.New("unknown interaction"))
		d := new(MockDispatcher)

		NewDiscord(nil, reg, d, "").onInteraction(t.Context(), r, weatherInteraction())

		assert.Empty(t, d.Calls)
	})

	t.Run("other interaction types are ignored", func(t *testing.T) {
		reg := new(MockRegistry)
		r := new(MockResponder)
		d := new(MockDispatcher)

		NewDiscord(nil, reg, d, "").onInteraction(t.Context(), r,
			&discordgo.Interaction{Type: discordgo.InteractionMessageComponent})

		assert.Empty(t, reg.Calls)
		assert.Empty(t, r.Calls)
	})
}

func TestInvocationFromInteraction(t *testing.T) {
	i := &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "dm",
		User:      &discordgo.User{ID: "200", Username: "bob"},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "cyberscan",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "300"},
				{Name: "page", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(2)},
			},
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users: map[string]*discordgo.User{"300": {ID: "300", Username: "eve", GlobalName: "Eve"}},
			},
		},
	}

	inv := invocationFromInteraction(i)

	assert.Equal(t, "cyberscan", inv.Command)
	assert.Equal(t, domain.User{ID: "300", Username: "eve", DisplayName: "Eve"}, inv.Raw["user"])
	assert.Equal(t, float64(2), inv.Raw["page"])
	assert.Equal(t, domain.User{ID: "200", Username: "bob"}, inv.Invoker)
	assert.True(t, inv.Target.IsDM)
	assert.Equal(t, domain.Discord, inv.Target.Platform)
}

func TestApplicationCommands(t *testing.T) {
	specs := []domain.CommandSpec{
		{
			Name:        "catechism",
			Description: "Search the catechism",
			Params: []domain.Param{
				{Name: "page", Type: domain.ArgInteger, Min: mo.Some(1.0)},
				{Name: "query", Description: "Words to look for", Type: domain.ArgString, Required: true, MinLength: 3},
			},
		},
		{
			Name: "hash",
			Params: []domain.Param{
				{Name: "algorithm", Type: domain.ArgString, Required: true, Choices: []string{"md5", "sha1"}},
			},
		},
	}

	got := ApplicationCommands(specs)

	require.Len(t, got, 2)

	cat := got[0]
	assert.Equal(t, "catechism", cat.Name)
	require.Len(t, cat.Options, 2)
	assert.Equal(t, "query", cat.Options[0].Name)
	assert.True(t, cat.Options[0].Required)
	assert.Equal(t, 3, *cat.Options[0].MinLength)
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, cat.Options[1].Type)
	assert.InDelta(t, 1.0, *cat.Options[1].MinValue, 1e-9)
	assert.Equal(t, "page", cat.Options[1].Description)

	hash := got[1]
	assert.Equal(t, "hash", hash.Description)
	require.Len(t, hash.Options[0].Choices, 2)
	assert.Equal(t, "sha1", hash.Options[0].Choices[1].Value)
}

func TestConsole_Run(t *testing.T) {
	t.Run("binds key=value arguments", func(t *testing.T) {
		reg := registryWith(stockSpec())
		reg.On("Get", "stock").Return(nil, nil)
		runner := new(MockDispatcher)
		runner.On("Run", mock.Anything, mock.MatchedBy(func(inv *domain.Invocation) bool {
			return inv.Raw["symbol"] == "MSFT" && inv.Target.Platform == domain.Console
		})).Return(nil).Once()

		require.NoError(t, NewConsole(reg, runner).Run(t.Context(), "/stock", []string{"symbol=MSFT"}))
		runner.AssertExpectations(t)
	})

	t.Run("validation errors are already shown", func(t *testing.T) {
		reg := registryWith(stockSpec())
		reg.On("Get", "stock").Return(nil, nil)
		runner := new(MockDispatcher)
		runner.On("Run", mock.Anything, mock.Anything).Return(domain.NewValidationError("bad"))

		require.NoError(t, NewConsole(reg, runner).Run(t.Context(), "stock", nil))
	})

	t.Run("unknown command lists known ones", func(t *testing.T) {
		reg := registryWith(stockSpec())
		reg.On("Get", "nope").Return(nil, domain.ErrUnknownCommand)
		reg.On("ListCommands").Return()

		err := NewConsole(reg, new(MockDispatcher)).Run(t.Context(), "nope", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "foo, bar")
	})
}
