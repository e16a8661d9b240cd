package handler

import (
	"context"
	"fmt"
	"os/user"
	"strings"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
)

// Console runs a single command from the terminal.
type Console struct {
	commandRegistry port.CommandRegistry
	runner          Runner
}

func NewConsole(commandRegistry port.CommandRegistry, runner Runner) *Console {
	return &Console{commandRegistry: commandRegistry, runner: runner}
}

// Run invokes name with arguments written as name=value or positionally. Validation problems have
// already been printed by the console sender and are not returned.
func (c *Console) Run(ctx context.Context, name string, args []string) error {
	name = strings.TrimPrefix(strings.ToLower(name), "/")

	commandHandler, err := c.commandRegistry.Get(name)
	if err != nil {
		return fmt.Errorf("unknown command %q, known commands: %s", name,
			strings.Join(c.commandRegistry.ListCommands(), ", "))
	}

	inv := &domain.Invocation{
		Command: name,
		Raw:     textArgs(commandHandler.Spec(), strings.Join(args, " ")),
		Invoker: consoleUser(),
		Target:  domain.Target{Platform: domain.Console, ChannelID: "console", IsDM: true},
	}

	if err := c.runner.Run(ctx, inv); err != nil && !domain.IsValidation(err) {
		return err
	}

	return nil
}

func consoleUser() domain.User {
	u, err := user.Current()
	if err != nil {
		return domain.User{ID: "console", Username: "console"}
	}

	return domain.User{ID: u.Uid, Username: u.Username, DisplayName: u.Name}
}
