package port

import (
	"context"
	"siggibot/internal/core/domain"
	"time"
)

// Providers never return provider failures: they fall back to substitute data. The only errors they
// surface are validation errors about the user's input.

type SummaryProvider interface {
	Summary(ctx context.Context, title string) domain.Summary
	// RandomScientist returns a summary for a scientist picked from a curated list.
	RandomScientist(ctx context.Context) domain.Summary
}

type RecipeProvider interface {
	Search(ctx context.Context, query string) domain.Recipe
}

type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) domain.Quote
}

type ApprovalProvider interface {
	Approval(ctx context.Context) domain.Approval
}

type Geocoder interface {
	// Geocode resolves a place name. An unresolvable name is a ValidationError; a provider failure
	// yields a placeholder location named after the query.
	Geocode(ctx context.Context, query string) (domain.Location, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, location domain.Location) domain.Weather
}

type ElementProvider interface {
	// Lookup finds an element by symbol, name or atomic number. Unknown elements are a ValidationError.
	Lookup(ctx context.Context, query string) (domain.Element, error)
}

type SaintProvider interface {
	SaintOfDay(ctx context.Context, day time.Time) domain.Saint
}

type NewsProvider interface {
	Headlines(ctx context.Context, count int) []domain.Headline
}

type ReferenceSearcher interface {
	// Search scores passages against the query. It returns ErrDocumentMissing when nothing was loaded.
	Search(query string, limit int) ([]domain.Passage, error)
}

type AnswerProvider interface {
	Answer(ctx context.Context, question string) domain.Answer
}
