package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"time"

	"github.com/samber/mo"
)

type Weather struct {
	geocoder port.Geocoder
	weather  port.WeatherProvider
	sender   port.ReplySender
	command  string
}

func NewWeather(geocoder port.Geocoder, weather port.WeatherProvider, sender port.ReplySender,
	command string) *Weather {
	return &Weather{geocoder: geocoder, weather: weather, sender: sender, command: command}
}

func (w *Weather) GetCommand() string {
	return w.command
}

func (w *Weather) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        w.command,
		Description: "Get the current weather for a place",
		Params: []domain.Param{
			{Name: "location", Description: "City or place name", Type: domain.ArgString, Required: true,
				MaxLength: 100},
		},
	}
}

func (w *Weather) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, w.command)

	query, _ := inv.Args.String("location")
	l.Info().Str("location", query).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	location, err := w.geocoder.Geocode(ctx, query)
	if err != nil {
		return w.sender.NotifyAndReturnError(ctx, err, inv)
	}

	current := w.weather.Current(ctx, location)

	return w.sender.SendReply(ctx, inv, renderWeather(current, inv))
}

func renderWeather(w domain.Weather, inv *domain.Invocation) domain.Reply {
	fields := []domain.Field{
		{Name: "Temperature", Value: fmt.Sprintf("%.1f °C", w.Temperature), Inline: true},
		{Name: "Conditions", Value: w.Condition, Inline: true},
		{Name: "Wind", Value: fmt.Sprintf("%.1f km/h", w.WindSpeed), Inline: true},
	}

	if h, ok := w.Humidity.Get(); ok {
		fields = append(fields, domain.Field{Name: "Humidity", Value: fmt.Sprintf("%.0f%%", h), Inline: true})
	}

	if p, ok := w.Precipitation.Get(); ok {
		fields = append(fields, domain.Field{Name: "Precipitation", Value: fmt.Sprintf("%.1f mm", p), Inline: true})
	}

	return domain.Reply{
		Title:  "Weather in " + w.Location.Label(),
		Fields: fields,
		URL:    mo.None[string](),
		Color:  domain.ColorCyan,
		Footer: requestedBy(inv),
	}
}
