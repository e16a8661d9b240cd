package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

var DefaultFeeds = []string{
	"https://feeds.bbci.co.uk/news/world/rss.xml",
	"https://feeds.npr.org/1001/rss.xml",
}

const maxConcurrentFeeds = 4

type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Feeds merges headlines from several RSS feeds.
type Feeds struct {
	client *Client
	feeds  []string
}

func NewFeeds(client *Client, feeds []string) *Feeds {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}

	return &Feeds{client: client, feeds: feeds}
}

func (f *Feeds) Headlines(ctx context.Context, count int) []domain.Headline {
	headlines, _ := service.Resolve(ctx, "news", []service.Strategy[[]domain.Headline]{
		{Name: "rss", Fetch: func(ctx context.Context) (mo.Option[[]domain.Headline], error) {
			return f.fetchAll(ctx, count)
		}},
	}, service.FallbackHeadlines)

	return headlines
}

// fetchAll reads every feed concurrently. A failing feed is logged and skipped.
func (f *Feeds) fetchAll(ctx context.Context, count int) (mo.Option[[]domain.Headline], error) {
	var mu sync.Mutex
	var all []domain.Headline

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFeeds)

	for _, feed := range f.feeds {
		g.Go(func() error {
			items, err := f.fetch(ctx, feed)
			if err != nil {
				log.Warn().Err(err).Str("feed", feed).Msg("skipping feed")
				return nil
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	merged := mergeHeadlines(all, count)
	if len(merged) == 0 {
		return mo.None[[]domain.Headline](), nil
	}

	return mo.Some(merged), nil
}

func (f *Feeds) fetch(ctx context.Context, feed string) ([]domain.Headline, error) {
	body, err := f.client.Get(ctx, feed)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "news", Err: err}
	}

	return parseFeed(body)
}

func parseFeed(body []byte) ([]domain.Headline, error) {
	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &domain.ProviderError{Provider: "news", Err: fmt.Errorf("error parsing feed: %w", err)}
	}

	source := strings.TrimSpace(doc.Channel.Title)

	out := make([]domain.Headline, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(StripHTML(item.Title))
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		summary := mo.None[string]()
		if text := StripHTML(item.Description); text != "" {
			summary = mo.Some(text)
		}

		out = append(out, domain.Headline{
			Title:     title,
			Link:      link,
			Source:    source,
			Summary:   summary,
			Published: parsePubDate(item.PubDate),
		})
	}

	return out, nil
}

var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}

func parsePubDate(s string) mo.Option[time.Time] {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return mo.Some(t)
		}
	}

	return mo.None[time.Time]()
}

// mergeHeadlines de-duplicates by title and keeps the newest count entries; undated entries sort last.
func mergeHeadlines(all []domain.Headline, count int) []domain.Headline {
	seen := make(map[string]struct{}, len(all))
	unique := make([]domain.Headline, 0, len(all))

	for _, h := range all {
		key := strings.ToLower(h.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, h)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, aok := unique[i].Published.Get()
		b, bok := unique[j].Published.Get()
		switch {
		case aok && bok:
			return a.After(b)
		default:
			return aok && !bok
		}
	})

	if count > 0 && len(unique) > count {
		unique = unique[:count]
	}

	return unique
}
