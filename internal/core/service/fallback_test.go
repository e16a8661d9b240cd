package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQuoteInvariants(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	symbols := []string{"AAPL", "tsla", "ZZZZ", "A", "BRK.B"}

	for seed := int64(0); seed < 500; seed++ {
		rng := NewRand(seed)
		for _, symbol := range symbols {
			q := FallbackQuote(symbol, rng, now)

			require.True(t, q.Price.IsPositive(), "price must be positive: %s", q.Price)
			require.True(t, q.PreviousClose().IsPositive())

			want := q.Change.Div(q.Price.Sub(q.Change)).Mul(decimal.NewFromInt(100))
			diff := want.Sub(q.ChangePercent).Abs()
			require.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
				"percent %s inconsistent with change %s and price %s", q.ChangePercent, q.Change, q.Price)

			swing := q.Change.Abs().Div(q.PreviousClose())
			assert.True(t, swing.LessThanOrEqual(decimal.NewFromFloat(maxSwing+0.001)))
			assert.Positive(t, q.Volume)
			assert.Equal(t, "USD", q.Currency)
		}
	}
}

func TestNewQuoteClampsPrice(t *testing.T) {
	q := NewQuote("X", "USD", decimal.NewFromFloat(-5), decimal.Zero, 10, time.Time{})

	assert.True(t, q.Price.Equal(MinPrice))
	assert.True(t, q.PreviousClose().Equal(MinPrice))
	assert.True(t, q.ChangePercent.IsZero())
}

func TestNewQuoteDerivesChange(t *testing.T) {
	q := NewQuote("AAPL", "USD", decimal.NewFromFloat(110), decimal.NewFromFloat(100), 1, time.Time{})

	assert.Equal(t, "10", q.Change.String())
	assert.Equal(t, "10", q.ChangePercent.String())
}

func TestCaloriesPerServing(t *testing.T) {
	assert.Equal(t, 370, CaloriesPerServing(1480, 4))
	assert.Equal(t, 143, CaloriesPerServing(860, 6))
	assert.Equal(t, 500, CaloriesPerServing(500, 0))
	assert.Equal(t, 0, CaloriesPerServing(-1, 2))
}

func TestNewApproval(t *testing.T) {
	a := NewApproval("President", "Average", "", 43.4, 53.1)
	assert.InDelta(t, -9.7, a.Net, 1e-9)
}

func TestFallbackRecipe(t *testing.T) {
	rng := NewRand(1)

	r := FallbackRecipe("chicken soup", rng)
	assert.Equal(t, "Chicken Noodle Soup", r.Name)
	assert.Equal(t, 370, r.CaloriesPerServing)
	assert.True(t, r.TotalTime.IsPresent())

	r = FallbackRecipe("zzz", rng)
	assert.NotEmpty(t, r.Name)
	assert.Positive(t, r.Servings)
}

func TestFindScientist(t *testing.T) {
	s, ok := FindScientist("einstein").Get()
	require.True(t, ok)
	assert.Equal(t, "Albert Einstein", s.Name)

	_, ok = FindScientist("Marie_Curie").Get()
	assert.True(t, ok)

	assert.False(t, FindScientist("Nobody Inparticular").IsPresent())
}

func TestPick(t *testing.T) {
	rng := NewRand(7)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for range 200 {
		seen[Pick(rng, items)] = true
	}
	assert.Len(t, seen, 3)
}
