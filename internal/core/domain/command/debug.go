package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"
)

type Debug struct {
	sender  port.ReplySender
	command string
	started time.Time
}

func NewDebug(sender port.ReplySender, command string) *Debug {
	return &Debug{sender: sender, command: command, started: time.Now()}
}

func (d *Debug) GetCommand() string {
	return d.command
}

func (d *Debug) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: d.command, Description: "Show runtime statistics"}
}

const kb = 1024
const debugTemplate = "```\nallocated mem: %d KB\nthreads running: %d\nheap: %d KB\nstack: %d KB\n" +
	"uptime: %s\ncompiled with %s for %s-%s\n```"
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, d.command)

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	return d.sender.SendReply(ctx, inv, domain.Reply{
		Title: "Debug",
		Body: fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			time.Since(d.started).Truncate(time.Second),
			runtime.Version(), goos, goarch,
		),
		Color:     domain.ColorGrey,
		Ephemeral: true,
	})
}
