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
)

const DefaultWikipediaEndpoint = "https://en.wikipedia.org/api/rest_v1/page/summary/"

type wikipediaSummary struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Wikipedia looks up article summaries, falling back to the curated scientists.
type Wikipedia struct {
	client   *Client
	endpoint string
	rng      *rand.Rand
}

func NewWikipedia(client *Client, endpoint string) *Wikipedia {
	if endpoint == "" {
		endpoint = DefaultWikipediaEndpoint
	}

	return &Wikipedia{
		client:   client,
		endpoint: strings.TrimSuffix(endpoint, "/") + "/",
		rng:      service.NewRand(time.Now().UnixNano()),
	}
}

func (w *Wikipedia) Summary(ctx context.Context, title string) domain.Summary {
	summary, _ := service.Resolve(ctx, "wikipedia", []service.Strategy[domain.Summary]{
		{Name: "wikipedia", Fetch: func(ctx context.Context) (mo.Option[domain.Summary], error) {
			return w.fetch(ctx, title)
		}},
		{Name: "curated", Fetch: func(_ context.Context) (mo.Option[domain.Summary], error) {
			return service.FindScientist(title), nil
		}},
	}, func() domain.Summary {
		return placeholderSummary(title)
	})

	return summary
}

func (w *Wikipedia) RandomScientist(ctx context.Context) domain.Summary {
	pick := service.Pick(w.rng, service.Scientists)

	summary, _ := service.Resolve(ctx, "wikipedia", []service.Strategy[domain.Summary]{
		{Name: "wikipedia", Fetch: func(ctx context.Context) (mo.Option[domain.Summary], error) {
			return w.fetch(ctx, pick.Name)
		}},
	}, func() domain.Summary {
		return pick
	})

	return summary
}

func (w *Wikipedia) fetch(ctx context.Context, title string) (mo.Option[domain.Summary], error) {
	var res wikipediaSummary
	path := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))

	if err := w.client.GetJSON(ctx, w.endpoint+path, &res); err != nil {
		return mo.None[domain.Summary](), &domain.ProviderError{Provider: "wikipedia", Err: err}
	}

	return normalizeSummary(res)
}

// normalizeSummary declines disambiguation pages and empty extracts.
func normalizeSummary(res wikipediaSummary) (mo.Option[domain.Summary], error) {
	if res.Type == "disambiguation" || strings.TrimSpace(res.Extract) == "" {
		return mo.None[domain.Summary](), nil
	}

	if res.Title == "" {
		return mo.None[domain.Summary](), errors.New("summary without title")
	}

	image := mo.None[string]()
	switch {
	case res.OriginalImage != nil && res.OriginalImage.Source != "":
		image = mo.Some(res.OriginalImage.Source)
	case res.Thumbnail != nil && res.Thumbnail.Source != "":
		image = mo.Some(res.Thumbnail.Source)
	}

	source := res.ContentURLs.Desktop.Page
	if source == "" {
		source = "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(res.Title, " ", "_"))
	}

	return mo.Some(domain.Summary{
		Name:        res.Title,
		Description: strings.TrimSpace(res.Extract),
		ImageURL:    image,
		SourceURL:   source,
	}), nil
}

func placeholderSummary(title string) domain.Summary {
	return domain.Summary{
		Name:        title,
		Description: fmt.Sprintf("I couldn't find anything about %s right now.", title),
		ImageURL:    mo.None[string](),
		SourceURL:   "https://en.wikipedia.org/w/index.php?search=" + url.QueryEscape(title),
	}
}
