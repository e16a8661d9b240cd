package service

import (
	"math"
	"time"

	"siggibot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// MinPrice is the floor for any quote price, live or synthetic.
var MinPrice = decimal.RequireFromString("0.01")

// NewQuote derives change figures from the current price and the previous close. Prices are rounded to
// cents and clamped to MinPrice so the quote invariants hold for any input.
func NewQuote(symbol, currency string, price, previousClose decimal.Decimal, volume int64,
	asOf time.Time) domain.Quote {
	price = clampPrice(price.Round(2))
	previousClose = clampPrice(previousClose.Round(2))

	change := price.Sub(previousClose)
	percent := change.Div(previousClose).Mul(decimal.NewFromInt(100)).Round(2)

	if volume < 0 {
		volume = 0
	}

	return domain.Quote{
		Symbol:        symbol,
		Currency:      currency,
		Price:         price,
		Change:        change,
		ChangePercent: percent,
		Volume:        volume,
		AsOf:          asOf,
	}
}

func clampPrice(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(MinPrice) {
		return MinPrice
	}

	return p
}

// CaloriesPerServing divides total calories by the serving count, rounded to the nearest whole unit.
// Unknown or nonsensical serving counts count as one serving.
func CaloriesPerServing(total float64, servings int) int {
	if servings < 1 {
		servings = 1
	}

	if total < 0 || math.IsNaN(total) {
		return 0
	}

	return int(math.Round(total / float64(servings)))
}

// NewApproval computes the net rating in percentage points.
func NewApproval(subject, source, sourceURL string, approve, disapprove float64) domain.Approval {
	return domain.Approval{
		Subject:    subject,
		Source:     source,
		Approve:    approve,
		Disapprove: disapprove,
		Net:        math.Round((approve-disapprove)*10) / 10,
		SourceURL:  sourceURL,
	}
}
