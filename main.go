package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"siggibot/internal/adapters/file"
	"siggibot/internal/adapters/handler"
	"siggibot/internal/adapters/provider"
	"siggibot/internal/adapters/sender"
	"siggibot/internal/adapters/server"
	"siggibot/internal/config"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/domain/command"
	"siggibot/internal/core/port"
	"siggibot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type app struct {
	configPath string
	dev        bool
	cfg        *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "siggibot",
		Short:         "A chat bot with slash commands for science, news, weather and nonsense",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", ".", "directory containing config.toml, or a .toml file")
	root.PersistentFlags().BoolVar(&a.dev, "dev", false, "development mode: load .env and log to the console")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Connect to Discord (and Telegram when configured) and answer commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:     "run <command> [name=value | value]...",
		Short:   "Run a single command locally and print the reply",
		Example: "  siggibot run weather location=Glasgow\n  siggibot run hash hello world sha256",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], args[1:])
		},
	})

	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath, a.dev)
	if err != nil {
		log.Error().Err(err).Msg("could not load configuration")
		return err
	}

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	zerolog.SetGlobalLevel(cfg.Bot.LogLevel)
	a.cfg = cfg

	return nil
}

func (a *app) serve(ctx context.Context) error {
	log.Info().Msg("starting siggibot...")

	if err := a.cfg.RequireDiscord(); err != nil {
		log.Error().Err(err).Msg("refusing to start")
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session, err := discordgo.New("Bot " + a.cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed initializing discord session: %w", err)
	}

	router := sender.NewRouter()
	router.Register(domain.Discord, sender.NewDiscord(session))

	var telegram *bot.Bot
	if a.cfg.Telegram.Token != "" {
		telegram, err = bot.New(a.cfg.Telegram.Token, bot.WithDefaultHandler(noOpHandler))
		if err != nil {
			return fmt.Errorf("failed initializing telegram bot: %w", err)
		}
		router.Register(domain.Telegram, sender.NewTelegram(telegram))
	}

	registry := a.registry(ctx, router)

	dispatcher := handler.NewCommand(registry, router, a.cfg.Handler.Timeout, a.cfg.Handler.Workers).
		WithAuthorizer(service.NewAuthorizer(map[domain.Platform][]string{
			domain.Discord:  a.cfg.Discord.AllowedChannels,
			domain.Telegram: a.cfg.Telegram.AllowedChats,
		}))
	defer dispatcher.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.NewDiscord(session, registry, dispatcher, a.cfg.Discord.GuildID).Start(ctx)
	})

	if telegram != nil {
		tg := handler.NewTelegram(registry, dispatcher)
		telegram.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, tg.Handle)
		telegram.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, tg.Handle)

		g.Go(func() error {
			log.Info().Msg("telegram bot listening")
			telegram.Start(ctx)
			return nil
		})
	}

	if a.cfg.HTTPAddr != "" {
		g.Go(func() error {
			return server.NewHealth(registry).Serve(ctx, a.cfg.HTTPAddr)
		})
	}

	log.Info().Msg("bot listening")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutting down after error")
		return err
	}

	log.Info().Msg("siggibot stopped")

	return nil
}

func (a *app) run(ctx context.Context, name string, args []string) error {
	router := sender.NewRouter()
	router.Register(domain.Console, sender.NewConsole(os.Stdout))

	registry := a.registry(ctx, router)

	dispatcher := handler.NewCommand(registry, router, a.cfg.Handler.Timeout, 1)
	defer dispatcher.Stop()

	return handler.NewConsole(registry, dispatcher).Run(ctx, name, args)
}

// registry wires every provider and command. Providers that lack credentials still register and answer
// from their fallbacks.
func (a *app) registry(ctx context.Context, replySender port.ReplySender) *command.Registry {
	cfg := a.cfg
	client := provider.NewClient(cfg.Provider.Timeout, cfg.Provider.UserAgent)

	doc, err := file.LoadReferenceDocument(ctx, cfg.Catechism)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Catechism).Msg("catechism disabled")
	}

	openMeteo := provider.NewOpenMeteo(client, cfg.Endpoints.Geocoding, cfg.Endpoints.Forecast)

	registry := &command.Registry{}

	registry.Register(command.NewSiggi(replySender, "siggi"))
	registry.Register(command.NewChickenSoup(replySender, "chickensoup"))
	registry.Register(command.NewScientist(provider.NewWikipedia(client, cfg.Endpoints.Wikipedia), replySender,
		"scientist"))
	registry.Register(command.NewRecipe(provider.NewEdamam(provider.EdamamParams{
		Client:   client,
		Endpoint: cfg.Endpoints.Recipe,
		AppID:    cfg.Recipe.AppID,
		AppKey:   cfg.Recipe.AppKey,
	}), replySender, "recipe"))
	registry.Register(command.NewStock(provider.NewYahoo(client, cfg.Endpoints.Stock), replySender, "stock"))
	registry.Register(command.NewApproval(provider.NewApprovalScraper(client, cfg.Endpoints.Approval), replySender,
		"approval"))
	registry.Register(command.NewWeather(openMeteo, openMeteo, replySender, "weather"))
	registry.Register(command.NewElement(provider.NewPubChem(client, cfg.Endpoints.PubChem), replySender, "element"))
	registry.Register(command.NewSaint(provider.NewCalendar(client, cfg.Endpoints.Calendar), replySender, "saint"))
	registry.Register(command.NewNews(provider.NewFeeds(client, cfg.NewsFeeds), replySender, "news"))
	registry.Register(command.NewCatechism(service.NewCatechism(doc), replySender, "catechism"))
	registry.Register(command.NewHash(replySender, "hash"))
	registry.Register(command.NewBase64(replySender, "base64"))
	registry.Register(command.NewConvert(replySender, "convert"))
	registry.Register(command.NewTimezone(replySender, "timezone"))
	registry.Register(command.NewCyberScan(command.CyberScanParams{
		Sender:  replySender,
		Command: "cyberscan",
		Delay:   cfg.Scan.Delay,
		Salt:    cfg.Scan.Salt,
	}))
	registry.Register(command.NewUpgrade(replySender, "upgrade", cfg.Scan.Salt))
	registry.Register(command.NewAsk(provider.NewOpenRouter(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model),
		service.NewUsageTracker(cfg.OpenRouter.DailyLimit), replySender, "ask"))
	registry.Register(command.NewHelp(registry, replySender, "help"))
	registry.Register(command.NewDebug(replySender, "debug"))

	return registry
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
