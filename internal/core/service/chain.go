package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

// Strategy is one tier of a degradation chain. It returns None when it ran fine but judged its data
// unusable, and an error when it could not run at all.
type Strategy[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (mo.Option[T], error)
}

// Fallback is the name Resolve reports when no strategy produced a value.
const Fallback = "fallback"

// Resolve tries strategies in order and returns the first usable value together with the name of the
// strategy that produced it. When every strategy fails or declines, last supplies the value.
func Resolve[T any](ctx context.Context, provider string, strategies []Strategy[T], last func() T) (T, string) {
	l := log.With().Str("provider", provider).Logger()

	for _, s := range strategies {
		if ctx.Err() != nil {
			l.Warn().Err(ctx.Err()).Str("strategy", s.Name).Msg("context done, skipping strategy")
			break
		}

		v, err := s.Fetch(ctx)
		if err != nil {
			l.Warn().Err(err).Str("strategy", s.Name).Msg("strategy failed")
			continue
		}

		if value, ok := v.Get(); ok {
			l.Debug().Str("strategy", s.Name).Msg("strategy succeeded")
			return value, s.Name
		}

		l.Debug().Str("strategy", s.Name).Msg("strategy declined result")
	}

	l.Info().Msg("all strategies exhausted, using fallback")

	return last(), Fallback
}
