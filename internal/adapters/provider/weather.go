package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultGeocodingEndpoint = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastEndpoint  = "https://api.open-meteo.com/v1/forecast"
)

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature   *float64 `json:"temperature_2m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Precipitation *float64 `json:"precipitation"`
		WeatherCode   *int     `json:"weather_code"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// OpenMeteo implements geocoding and current conditions.
type OpenMeteo struct {
	client            *Client
	geocodingEndpoint string
	forecastEndpoint  string
}

func NewOpenMeteo(client *Client, geocodingEndpoint, forecastEndpoint string) *OpenMeteo {
	if geocodingEndpoint == "" {
		geocodingEndpoint = DefaultGeocodingEndpoint
	}

	if forecastEndpoint == "" {
		forecastEndpoint = DefaultForecastEndpoint
	}

	return &OpenMeteo{
		client:            client,
		geocodingEndpoint: geocodingEndpoint,
		forecastEndpoint:  forecastEndpoint,
	}
}

func (o *OpenMeteo) Geocode(ctx context.Context, query string) (domain.Location, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var res geocodingResponse
	if err := o.client.GetJSON(ctx, o.geocodingEndpoint+"?"+params.Encode(), &res); err != nil {
		log.Warn().Err(&domain.ProviderError{Provider: "geocoding", Err: err}).Str("query", query).
			Msg("geocoding failed, using placeholder location")

		return domain.Location{Name: titleCase(strings.TrimSpace(query))}, nil
	}

	if len(res.Results) == 0 || res.Results[0].Name == "" {
		return domain.Location{}, domain.NewValidationError("couldn't find a place called %q", query)
	}

	r := res.Results[0]

	return domain.Location{
		Name:      r.Name,
		Region:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

func (o *OpenMeteo) Current(ctx context.Context, location domain.Location) domain.Weather {
	weather, _ := service.Resolve(ctx, "open-meteo", []service.Strategy[domain.Weather]{
		{Name: "forecast", Fetch: func(ctx context.Context) (mo.Option[domain.Weather], error) {
			return o.fetch(ctx, location)
		}},
	}, func() domain.Weather {
		return service.FallbackWeather(location)
	})

	return weather
}

func (o *OpenMeteo) fetch(ctx context.Context, location domain.Location) (mo.Option[domain.Weather], error) {
	if location.Latitude == 0 && location.Longitude == 0 {
		return mo.None[domain.Weather](), nil
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m")

	var res forecastResponse
	if err := o.client.GetJSON(ctx, o.forecastEndpoint+"?"+params.Encode(), &res); err != nil {
		return mo.None[domain.Weather](), &domain.ProviderError{Provider: "open-meteo", Err: err}
	}

	return normalizeWeather(location, res), nil
}

// normalizeWeather declines payloads without a temperature.
func normalizeWeather(location domain.Location, res forecastResponse) mo.Option[domain.Weather] {
	c := res.Current
	if c.Temperature == nil {
		return mo.None[domain.Weather]()
	}

	condition := "Unknown"
	if c.WeatherCode != nil {
		condition = describeWeatherCode(*c.WeatherCode)
	}

	wind := 0.0
	if c.WindSpeed != nil {
		wind = *c.WindSpeed
	}

	return mo.Some(domain.Weather{
		Location:      location,
		Temperature:   *c.Temperature,
		Condition:     condition,
		WindSpeed:     wind,
		Humidity:      optional(c.Humidity),
		Precipitation: optional(c.Precipitation),
	})
}

// titleCase builds a caser per call: casers keep state and can't be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func optional[T any](v *T) mo.Option[T] {
	if v == nil {
		return mo.None[T]()
	}

	return mo.Some(*v)
}

var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Light rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Light snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with light hail",
	99: "Thunderstorm with heavy hail",
}

func describeWeatherCode(code int) string {
	if d, ok := weatherCodes[code]; ok {
		return d
	}

	return fmt.Sprintf("Weather code %d", code)
}
