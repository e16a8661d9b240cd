package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"siggibot/internal/core/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
	envPrefix       = "SIGGI"
)

type Bot struct {
	Mode     string
	LogLevel zerolog.Level
}

type Discord struct {
	Token   string
	GuildID string
	// AllowedChannels restricts the bot to these channel ids. Empty allows every channel.
	AllowedChannels []string
}

type Telegram struct {
	Token        string
	AllowedChats []string
}

type Handler struct {
	Timeout time.Duration
	Workers int
}

type Provider struct {
	Timeout   time.Duration
	UserAgent string
}

// Endpoints overrides provider base URLs; empty values mean the adapter default.
type Endpoints struct {
	Wikipedia string
	Recipe    string
	Stock     string
	Approval  string
	Geocoding string
	Forecast  string
	PubChem   string
	Calendar  string
}

type Recipe struct {
	AppID  string
	AppKey string
}

type OpenRouter struct {
	APIKey string
	Model  string
	// DailyLimit caps model answers per user and day. Zero disables the cap.
	DailyLimit int
}

type Scan struct {
	Delay time.Duration
	Salt  string
}

type Config struct {
	Bot        Bot
	Discord    Discord
	Telegram   Telegram
	Handler    Handler
	Provider   Provider
	Endpoints  Endpoints
	Recipe     Recipe
	OpenRouter OpenRouter
	NewsFeeds  []string
	Catechism  string
	Scan       Scan
	HTTPAddr   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.mode", ModeProduction)
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("handler.timeout", "30s")
	v.SetDefault("handler.workers", 16)
	v.SetDefault("provider.timeout", "10s")
	v.SetDefault("provider.user_agent", "siggibot/1.0")
	v.SetDefault("openrouter.model", "openai/gpt-4.1-mini")
	v.SetDefault("openrouter.daily_limit", 20)
	v.SetDefault("scan.delay", "2s")
	v.SetDefault("scan.salt", "siggi")
	v.SetDefault("catechism.path", "")
	v.SetDefault("http.addr", "")
}

// Load reads config.toml from dir (or the file at path when it ends in .toml), then the environment.
// Development mode, from the dev flag or bot.mode, also loads a local .env file into the environment.
func Load(path string, dev bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if strings.HasSuffix(path, ".toml") {
		v.SetConfigFile(path)
	} else {
		if path == "" {
			path = "."
		}
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log.Debug().Str("path", path).Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Info().Msg("no config file found, using defaults and environment")
	}

	if dev {
		v.Set("bot.mode", ModeDevelopment)
	}

	if v.GetString("bot.mode") == ModeDevelopment {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	handlerTimeout, err := duration(v, "handler.timeout")
	if err != nil {
		return nil, err
	}

	providerTimeout, err := duration(v, "provider.timeout")
	if err != nil {
		return nil, err
	}

	scanDelay, err := duration(v, "scan.delay")
	if err != nil {
		return nil, err
	}

	discordToken := v.GetString("discord.token")
	if discordToken == "" {
		discordToken = os.Getenv("DISCORD_TOKEN")
	}

	return &Config{
		Bot: Bot{
			Mode:     v.GetString("bot.mode"),
			LogLevel: logLevel(v.GetString("bot.log_level")),
		},
		Discord: Discord{
			Token:           discordToken,
			GuildID:         v.GetString("discord.guild_id"),
			AllowedChannels: list(v, "discord.allowed_channel_ids"),
		},
		Telegram: Telegram{
			Token:        v.GetString("telegram.bot_token"),
			AllowedChats: list(v, "telegram.allowed_chat_ids"),
		},
		Handler:  Handler{Timeout: handlerTimeout, Workers: v.GetInt("handler.workers")},
		Provider: Provider{Timeout: providerTimeout, UserAgent: v.GetString("provider.user_agent")},
		Endpoints: Endpoints{
			Wikipedia: v.GetString("endpoints.wikipedia"),
			Recipe:    v.GetString("endpoints.recipe"),
			Stock:     v.GetString("endpoints.stock"),
			Approval:  v.GetString("endpoints.approval"),
			Geocoding: v.GetString("endpoints.geocoding"),
			Forecast:  v.GetString("endpoints.forecast"),
			PubChem:   v.GetString("endpoints.pubchem"),
			Calendar:  v.GetString("endpoints.calendar"),
		},
		Recipe: Recipe{AppID: v.GetString("recipe.app_id"), AppKey: v.GetString("recipe.app_key")},
		OpenRouter: OpenRouter{
			APIKey:     v.GetString("openrouter.api_key"),
			Model:      v.GetString("openrouter.model"),
			DailyLimit: v.GetInt("openrouter.daily_limit"),
		},
		NewsFeeds: list(v, "news.feeds"),
		Catechism: v.GetString("catechism.path"),
		Scan:      Scan{Delay: scanDelay, Salt: v.GetString("scan.salt")},
		HTTPAddr:  v.GetString("http.addr"),
	}, nil
}

// list accepts a TOML array or a comma separated environment value.
func list(v *viper.Viper, key string) []string {
	var out []string
	for _, f := range v.GetStringSlice(key) {
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, &domain.FatalConfigurationError{Key: key, Err: err}
	}

	if d <= 0 {
		return 0, &domain.FatalConfigurationError{Key: key, Err: fmt.Errorf("must be positive, got %s", d)}
	}

	return d, nil
}

func logLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Bot.Mode == ModeDevelopment
}

// RequireDiscord reports a missing bot token as a fatal configuration error.
func (c *Config) RequireDiscord() error {
	if c.Discord.Token == "" {
		return &domain.FatalConfigurationError{Key: "discord.token", Err: domain.ErrMissingCredential}
	}

	return nil
}
