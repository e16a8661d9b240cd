package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"

	"github.com/gammazero/workerpool"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Command is the dispatcher every front end hands invocations to. It binds arguments against the
// command schema and runs the handler on a bounded worker pool.
type Command struct {
	commandRegistry port.CommandRegistry
	sender          port.ReplySender
	authorizer      port.Authorizer
	timeout         time.Duration
	pool            *workerpool.WorkerPool
}

func NewCommand(commandRegistry port.CommandRegistry, sender port.ReplySender, timeout time.Duration,
	workers int) *Command {
	if workers < 1 {
		workers = 1
	}

	return &Command{
		commandRegistry: commandRegistry,
		sender:          sender,
		timeout:         timeout,
		pool:            workerpool.New(workers),
	}
}

// WithAuthorizer rejects invocations from channels the authorizer refuses.
func (c *Command) WithAuthorizer(authorizer port.Authorizer) *Command {
	c.authorizer = authorizer
	return c
}

// Handle queues an invocation. Unknown commands are rejected synchronously and never reach the pool.
func (c *Command) Handle(ctx context.Context, inv *domain.Invocation) error {
	if err := assignID(inv); err != nil {
		return err
	}

	if _, err := c.commandRegistry.Get(inv.Command); err != nil {
		log.Debug().Str("command", inv.Command).Msg("no handler for command")
		return fmt.Errorf("no handler for command: %w", err)
	}

	c.pool.Submit(func() {
		c.report(inv, c.Run(ctx, inv))
	})

	return nil
}

// Run binds and executes an invocation on the calling goroutine.
func (c *Command) Run(ctx context.Context, inv *domain.Invocation) error {
	if err := assignID(inv); err != nil {
		return err
	}

	commandHandler, err := c.commandRegistry.Get(inv.Command)
	if err != nil {
		return fmt.Errorf("no handler for command: %w", err)
	}

	if c.authorizer != nil {
		if err := c.authorizer.Authorize(inv); err != nil {
			return c.notify(ctx, err, inv)
		}
	}

	args, err := commandHandler.Spec().Bind(inv.Raw)
	if err != nil {
		return c.notify(ctx, err, inv)
	}

	inv.Args = args

	return commandHandler.Respond(ctx, c.timeout, inv)
}

func (c *Command) notify(ctx context.Context, err error, inv *domain.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.sender.NotifyAndReturnError(ctx, err, inv)
}

// Stop waits for queued invocations to finish.
func (c *Command) Stop() {
	c.pool.StopWait()
}

func (c *Command) report(inv *domain.Invocation, err error) {
	l := log.With().Str("invocationId", inv.ID).Str("command", inv.Command).Logger()

	var delivery *domain.DeliveryError

	switch {
	case err == nil:
		l.Debug().Msg("command completed")
	case domain.IsValidation(err):
		l.Debug().Err(err).Msg("invalid command input")
	case errors.As(err, &delivery):
		l.Error().Err(err).Msg("failed to deliver reply")
	default:
		l.Error().Err(err).Msg("failed to respond to command")
	}
}

func assignID(inv *domain.Invocation) error {
	if inv.ID != "" {
		return nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("error generating invocation id: %w", err)
	}

	inv.ID = id.String()

	return nil
}
