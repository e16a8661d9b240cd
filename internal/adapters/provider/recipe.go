package provider

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/samber/mo"
)

const DefaultEdamamEndpoint = "https://api.edamam.com/api/recipes/v2"

var errMissingCredentials = errors.New("missing credentials")

type edamamResponse struct {
	Hits []struct {
		Recipe edamamRecipe `json:"recipe"`
	} `json:"hits"`
}

type edamamRecipe struct {
	Label           string   `json:"label"`
	Image           string   `json:"image"`
	URL             string   `json:"url"`
	Yield           float64  `json:"yield"`
	Calories        float64  `json:"calories"`
	TotalTime       float64  `json:"totalTime"`
	IngredientLines []string `json:"ingredientLines"`
}

type Edamam struct {
	client   *Client
	endpoint string
	appID    string
	appKey   string
	rng      *rand.Rand
}

type EdamamParams struct {
	Client   *Client
	Endpoint string
	AppID    string
	AppKey   string
}

func NewEdamam(p EdamamParams) *Edamam {
	if p.Endpoint == "" {
		p.Endpoint = DefaultEdamamEndpoint
	}

	return &Edamam{
		client:   p.Client,
		endpoint: p.Endpoint,
		appID:    p.AppID,
		appKey:   p.AppKey,
		rng:      service.NewRand(time.Now().UnixNano()),
	}
}

func (e *Edamam) Search(ctx context.Context, query string) domain.Recipe {
	recipe, _ := service.Resolve(ctx, "edamam", []service.Strategy[domain.Recipe]{
		{Name: "edamam", Fetch: func(ctx context.Context) (mo.Option[domain.Recipe], error) {
			return e.fetch(ctx, query)
		}},
	}, func() domain.Recipe {
		return service.FallbackRecipe(query, e.rng)
	})

	return recipe
}

func (e *Edamam) fetch(ctx context.Context, query string) (mo.Option[domain.Recipe], error) {
	if e.appID == "" || e.appKey == "" {
		return mo.None[domain.Recipe](), &domain.ProviderError{Provider: "edamam", Err: errMissingCredentials}
	}

	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", e.appID)
	params.Set("app_key", e.appKey)

	var res edamamResponse
	if err := e.client.GetJSON(ctx, e.endpoint+"?"+params.Encode(), &res); err != nil {
		return mo.None[domain.Recipe](), &domain.ProviderError{Provider: "edamam", Err: err}
	}

	if len(res.Hits) == 0 {
		return mo.None[domain.Recipe](), nil
	}

	return normalizeRecipe(res.Hits[0].Recipe), nil
}

func normalizeRecipe(r edamamRecipe) mo.Option[domain.Recipe] {
	if strings.TrimSpace(r.Label) == "" {
		return mo.None[domain.Recipe]()
	}

	servings := int(math.Round(r.Yield))
	if servings < 1 {
		servings = 1
	}

	total := mo.None[time.Duration]()
	if r.TotalTime > 0 {
		total = mo.Some(time.Duration(r.TotalTime) * time.Minute)
	}

	image := mo.None[string]()
	if r.Image != "" {
		image = mo.Some(r.Image)
	}

	return mo.Some(domain.Recipe{
		Name:               r.Label,
		Calories:           math.Round(r.Calories),
		Servings:           servings,
		CaloriesPerServing: service.CaloriesPerServing(r.Calories, servings),
		Ingredients:        r.IngredientLines,
		TotalTime:          total,
		ImageURL:           image,
		SourceURL:          r.URL,
	})
}
