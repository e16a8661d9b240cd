package port

import (
	"context"
	"siggibot/internal/core/domain"
	"time"
)

type Command interface {
	// Respond processes a bound invocation within a specified timeout and replies to its target.
	Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// Spec returns the registration record: description and argument schema.
	Spec() domain.CommandSpec
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
	// Specs returns the schemas of all registered commands, sorted by name.
	Specs() []domain.CommandSpec
}

type Authorizer interface {
	// Authorize returns a validation error when the invocation's channel may not use the bot.
	Authorize(inv *domain.Invocation) error
}

type UsageLimiter interface {
	// CheckLimit returns a validation error once the user has used up their allowance.
	CheckLimit(userID string) error
	// AddUsage records one use against the user's allowance.
	AddUsage(userID string)
}
