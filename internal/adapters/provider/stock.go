package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

const DefaultYahooEndpoint = "https://query1.finance.yahoo.com/v8/finance/chart/"

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta yahooMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooMeta struct {
	Currency           string           `json:"currency"`
	Symbol             string           `json:"symbol"`
	RegularMarketPrice *decimal.Decimal `json:"regularMarketPrice"`
	ChartPreviousClose *decimal.Decimal `json:"chartPreviousClose"`
	PreviousClose      *decimal.Decimal `json:"previousClose"`
	RegularMarketVol   int64            `json:"regularMarketVolume"`
	RegularMarketTime  int64            `json:"regularMarketTime"`
}

type Yahoo struct {
	client   *Client
	endpoint string
	rng      *rand.Rand
	now      func() time.Time
}

func NewYahoo(client *Client, endpoint string) *Yahoo {
	if endpoint == "" {
		endpoint = DefaultYahooEndpoint
	}

	return &Yahoo{
		client:   client,
		endpoint: strings.TrimSuffix(endpoint, "/") + "/",
		rng:      service.NewRand(time.Now().UnixNano()),
		now:      time.Now,
	}
}

func (y *Yahoo) Quote(ctx context.Context, symbol string) domain.Quote {
	quote, _ := service.Resolve(ctx, "yahoo", []service.Strategy[domain.Quote]{
		{Name: "yahoo", Fetch: func(ctx context.Context) (mo.Option[domain.Quote], error) {
			return y.fetch(ctx, symbol)
		}},
	}, func() domain.Quote {
		return service.FallbackQuote(symbol, y.rng, y.now())
	})

	return quote
}

func (y *Yahoo) fetch(ctx context.Context, symbol string) (mo.Option[domain.Quote], error) {
	var res yahooChart
	if err := y.client.GetJSON(ctx, y.endpoint+url.PathEscape(symbol)+"?interval=1d&range=1d", &res); err != nil {
		return mo.None[domain.Quote](), &domain.ProviderError{Provider: "yahoo", Err: err}
	}

	if res.Chart.Error != nil {
		return mo.None[domain.Quote](), &domain.ProviderError{Provider: "yahoo",
			Err: fmt.Errorf("%s: %s", res.Chart.Error.Code, res.Chart.Error.Description)}
	}

	if len(res.Chart.Result) == 0 {
		return mo.None[domain.Quote](), &domain.ProviderError{Provider: "yahoo", Err: errors.New("empty chart")}
	}

	return normalizeQuote(symbol, res.Chart.Result[0].Meta), nil
}

// normalizeQuote declines payloads without a positive price.
func normalizeQuote(symbol string, m yahooMeta) mo.Option[domain.Quote] {
	if m.RegularMarketPrice == nil || !m.RegularMarketPrice.IsPositive() {
		return mo.None[domain.Quote]()
	}

	price := *m.RegularMarketPrice

	previous := price
	switch {
	case m.ChartPreviousClose != nil && m.ChartPreviousClose.IsPositive():
		previous = *m.ChartPreviousClose
	case m.PreviousClose != nil && m.PreviousClose.IsPositive():
		previous = *m.PreviousClose
	}

	if m.Symbol != "" {
		symbol = m.Symbol
	}

	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}

	asOf := time.Unix(m.RegularMarketTime, 0).UTC()
	if m.RegularMarketTime == 0 {
		asOf = time.Now().UTC()
	}

	return mo.Some(service.NewQuote(strings.ToUpper(symbol), currency, price, previous, m.RegularMarketVol, asOf))
}
