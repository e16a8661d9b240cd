package domain

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// Summary is an encyclopedic article summary, e.g. a scientist.
type Summary struct {
	Name        string
	Description string
	ImageURL    mo.Option[string]
	SourceURL   string
}

type Recipe struct {
	Name               string
	Calories           float64
	Servings           int
	CaloriesPerServing int
	Ingredients        []string
	TotalTime          mo.Option[time.Duration]
	ImageURL           mo.Option[string]
	SourceURL          string
}

// Quote is a stock price snapshot. Price is always positive.
type Quote struct {
	Symbol        string
	Currency      string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        int64
	AsOf          time.Time
}

// PreviousClose is the price the change is measured against.
func (q Quote) PreviousClose() decimal.Decimal {
	return q.Price.Sub(q.Change)
}

type Approval struct {
	Subject    string
	Source     string
	Approve    float64
	Disapprove float64
	// Net is approve minus disapprove, in percentage points.
	Net       float64
	SourceURL string
}

type Location struct {
	Name      string
	Region    string
	Country   string
	Latitude  float64
	Longitude float64
}

// Label is the human readable place name.
func (l Location) Label() string {
	label := l.Name
	if l.Region != "" && l.Region != l.Name {
		label += ", " + l.Region
	}

	if l.Country != "" {
		label += ", " + l.Country
	}

	return label
}

type Weather struct {
	Location      Location
	Temperature   float64
	Condition     string
	WindSpeed     float64
	Humidity      mo.Option[float64]
	Precipitation mo.Option[float64]
}

type Element struct {
	Number            int
	Symbol            string
	Name              string
	AtomicMass        mo.Option[float64]
	Category          mo.Option[string]
	StandardState     mo.Option[string]
	ElectronConfig    mo.Option[string]
	YearDiscovered    mo.Option[string]
	Electronegativity mo.Option[float64]
}

type Saint struct {
	Date        time.Time
	Name        string
	Description string
	Rank        mo.Option[string]
	Colour      mo.Option[string]
}

type Headline struct {
	Title     string
	Link      string
	Source    string
	Summary   mo.Option[string]
	Published mo.Option[time.Time]
}

// Passage is one paragraph of the reference document.
type Passage struct {
	Number  int
	Section string
	Text    string
}

// Answer is a one-shot reply to a free-form question.
type Answer struct {
	Question string
	Text     string
	Model    mo.Option[string]
}
