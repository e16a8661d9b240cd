package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strings"
	"time"
	_ "time/tzdata"
)

type Timezone struct {
	sender  port.ReplySender
	command string
	now     func() time.Time
}

func NewTimezone(sender port.ReplySender, command string) *Timezone {
	return &Timezone{sender: sender, command: command, now: time.Now}
}

func (t *Timezone) GetCommand() string {
	return t.command
}

func (t *Timezone) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        t.command,
		Description: "Convert a time between time zones",
		Params: []domain.Param{
			{Name: "time", Description: "Time as HH:MM", Type: domain.ArgString, Required: true, MaxLength: 5},
			{Name: "from", Description: "Zone, e.g. Europe/London or UTC", Type: domain.ArgString, Required: true},
			{Name: "to", Description: "Zone, e.g. America/New_York", Type: domain.ArgString, Required: true},
		},
	}
}

var zoneAliases = map[string]string{
	"utc": "UTC",
	"gmt": "Etc/GMT",
	"z":   "UTC",
}

func loadZone(name string) (*time.Location, error) {
	if alias, ok := zoneAliases[strings.ToLower(name)]; ok {
		name = alias
	}

	if strings.EqualFold(name, "local") || name == "" {
		return nil, domain.NewValidationError("unknown time zone %q", name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationError("unknown time zone %q, use a name like Europe/London", name)
	}

	return loc, nil
}

// ConvertClock moves a wall-clock time on the given day from one zone to another.
func ConvertClock(clock, from, to string, day time.Time) (time.Time, time.Time, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("%q isn't a time, use HH:MM like 14:30", clock)
	}

	src, err := loadZone(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	dst, err := loadZone(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	d := day.In(src)
	at := time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, src)

	return at, at.In(dst), nil
}

func (t *Timezone) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, t.command)

	clock, _ := inv.Args.String("time")
	from, _ := inv.Args.String("from")
	to, _ := inv.Args.String("to")
	l.Info().Str("time", clock).Str("from", from).Str("to", to).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	at, converted, err := ConvertClock(clock, from, to, t.now())
	if err != nil {
		return t.sender.NotifyAndReturnError(ctx, err, inv)
	}

	text := fmt.Sprintf("%s in %s is **%s** in %s", at.Format("15:04"), at.Location(),
		converted.Format("15:04"), converted.Location())
	if converted.YearDay() != at.YearDay() {
		text += converted.Format(" (Mon 2 Jan)")
	}

	return t.sender.SendReply(ctx, inv, domain.TextReply(text))
}
