package command

import (
	"errors"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, domain.ErrUnknownCommand
	}

	return handler, nil
}

// ListCommands returns the registered command names in alphabetical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func (r *Registry) Specs() []domain.CommandSpec {
	specs := make([]domain.CommandSpec, 0, len(r.commands))
	for _, name := range r.ListCommands() {
		specs = append(specs, r.commands[name].Spec())
	}

	return specs
}

// ParseCommandArgs drops the command word and returns the rest of the line.
func ParseCommandArgs(args string) string {
	command := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(command) < 2 {
		return ""
	}

	return strings.TrimSpace(command[1])
}

// ParseCommand returns the lower-cased command name without its slash or a trailing @botname.
func ParseCommand(args string) string {
	command := strings.Split(strings.TrimSpace(args), " ")
	name := strings.TrimPrefix(strings.ToLower(command[0]), "/")

	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}

	return name
}
