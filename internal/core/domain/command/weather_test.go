package command

import (
	"context"
	"siggibot/internal/core/domain"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeocoder struct {
	location domain.Location
	err      error
	query    string
}

func (m *MockGeocoder) Geocode(_ context.Context, query string) (domain.Location, error) {
	m.query = query
	return m.location, m.err
}

type MockWeatherProvider struct {
	weather domain.Weather
	called  bool
}

func (m *MockWeatherProvider) Current(_ context.Context, location domain.Location) domain.Weather {
	m.called = true
	w := m.weather
	w.Location = location
	return w
}

func findField(fields []domain.Field, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return "", false
}

func TestWeatherRespondResolvedLocation(t *testing.T) {
	geo := &MockGeocoder{location: domain.Location{Name: "Glasgow", Region: "Scotland", Country: "United Kingdom",
		Latitude: 55.86, Longitude: -4.25}}
	wp := &MockWeatherProvider{weather: domain.Weather{
		Temperature:   11.5,
		Condition:     "Light rain",
		WindSpeed:     18.2,
		Humidity:      mo.Some(81.0),
		Precipitation: mo.None[float64](),
	}}
	ms := new(MockSender)
	cmd := NewWeather(geo, wp, ms, "weather")

	inv := bind(t, cmd, map[string]any{"location": "Glasgow"})

	var sent domain.Reply
	ms.On("SendReply", mock.Anything, inv, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(domain.Reply) }).
		Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))

	assert.Equal(t, "Glasgow", geo.query)
	assert.Equal(t, "Weather in Glasgow, Scotland, United Kingdom", sent.Title)

	temp, ok := findField(sent.Fields, "Temperature")
	require.True(t, ok)
	assert.Equal(t, "11.5 °C", temp)

	condition, _ := findField(sent.Fields, "Conditions")
	assert.NotEmpty(t, condition)

	_, ok = findField(sent.Fields, "Humidity")
	assert.True(t, ok)
	_, ok = findField(sent.Fields, "Precipitation")
	assert.False(t, ok)
}

func TestWeatherRespondUnresolvableLocation(t *testing.T) {
	geo := &MockGeocoder{err: domain.NewValidationError("couldn't find a place called %q", "Xyzzyville")}
	wp := &MockWeatherProvider{}
	ms := new(MockSender)
	cmd := NewWeather(geo, wp, ms, "weather")

	inv := bind(t, cmd, map[string]any{"location": "Xyzzyville"})

	ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

	err := cmd.Respond(t.Context(), time.Second, inv)
	require.Error(t, err)
	assert.Contains(t, domain.UserMessage(err), `"Xyzzyville"`)
	assert.False(t, wp.called)
	ms.AssertExpectations(t)
}
