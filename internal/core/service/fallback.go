package service

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"

	"siggibot/internal/core/domain"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// lockedSource makes a rand.Source safe for concurrent invocations.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewRand returns a concurrency-safe generator for fallback data.
func NewRand(seed int64) *rand.Rand {
	src, _ := rand.NewSource(seed).(rand.Source64)
	return rand.New(&lockedSource{src: src})
}

// Pick returns one entry chosen uniformly at random.
func Pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

var basePrices = map[string]float64{
	"AAPL":  190,
	"MSFT":  410,
	"GOOGL": 165,
	"AMZN":  180,
	"NVDA":  120,
	"META":  480,
	"TSLA":  220,
	"NFLX":  620,
	"IBM":   185,
	"INTC":  30,
}

// maxSwing is the largest synthetic move away from the base price, as a fraction.
const maxSwing = 0.05

func basePrice(symbol string) decimal.Decimal {
	if p, ok := basePrices[strings.ToUpper(symbol)]; ok {
		return decimal.NewFromFloat(p)
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToUpper(symbol)))

	return decimal.NewFromInt(int64(20 + h.Sum32()%480))
}

// FallbackQuote synthesises a quote within maxSwing of a realistic base price for the symbol.
func FallbackQuote(symbol string, rng *rand.Rand, now time.Time) domain.Quote {
	base := basePrice(symbol)
	swing := decimal.NewFromFloat((rng.Float64()*2 - 1) * maxSwing)
	price := base.Add(base.Mul(swing))
	volume := 100_000 + rng.Int63n(50_000_000)

	return NewQuote(strings.ToUpper(symbol), "USD", price, base, volume, now)
}

// FallbackApproval is a fixed, plausible polling average.
func FallbackApproval() domain.Approval {
	return NewApproval("Presidential approval", "Polling average", "https://www.realclearpolling.com/",
		45.0, 52.0)
}

// FallbackWeather is a mild placeholder for the given location.
func FallbackWeather(location domain.Location) domain.Weather {
	return domain.Weather{
		Location:      location,
		Temperature:   14,
		Condition:     "Partly cloudy",
		WindSpeed:     12,
		Humidity:      mo.None[float64](),
		Precipitation: mo.None[float64](),
	}
}

const EinsteinImage = "https://upload.wikimedia.org/wikipedia/commons/1/14/Albert_Einstein_1947.jpg"

// Scientists is the curated set used when no name is given and when the encyclopedia is unreachable.
var Scientists = []domain.Summary{
	{
		Name: "Albert Einstein",
		Description: "Albert Einstein was a German-born theoretical physicist who developed the theory of " +
			"relativity and made major contributions to quantum mechanics.",
		ImageURL:  mo.Some(EinsteinImage),
		SourceURL: "https://en.wikipedia.org/wiki/Albert_Einstein",
	},
	{
		Name: "Marie Curie",
		Description: "Marie Curie was a Polish and naturalised-French physicist and chemist who conducted " +
			"pioneering research on radioactivity and was the first person to win two Nobel Prizes.",
		ImageURL:  mo.Some("https://upload.wikimedia.org/wikipedia/commons/c/c8/Marie_Curie_c._1920s.jpg"),
		SourceURL: "https://en.wikipedia.org/wiki/Marie_Curie",
	},
	{
		Name: "Isaac Newton",
		Description: "Sir Isaac Newton was an English polymath who formulated the laws of motion and " +
			"universal gravitation and co-invented calculus.",
		ImageURL:  mo.None[string](),
		SourceURL: "https://en.wikipedia.org/wiki/Isaac_Newton",
	},
	{
		Name: "Ada Lovelace",
		Description: "Ada Lovelace was an English mathematician known for her work on Charles Babbage's " +
			"Analytical Engine and for publishing the first algorithm intended for such a machine.",
		ImageURL:  mo.None[string](),
		SourceURL: "https://en.wikipedia.org/wiki/Ada_Lovelace",
	},
	{
		Name: "Nikola Tesla",
		Description: "Nikola Tesla was a Serbian-American engineer and inventor best known for his " +
			"contributions to the design of the alternating current electricity supply system.",
		ImageURL:  mo.None[string](),
		SourceURL: "https://en.wikipedia.org/wiki/Nikola_Tesla",
	},
	{
		Name: "Rosalind Franklin",
		Description: "Rosalind Franklin was a British chemist whose X-ray diffraction images were central " +
			"to understanding the molecular structure of DNA.",
		ImageURL:  mo.None[string](),
		SourceURL: "https://en.wikipedia.org/wiki/Rosalind_Franklin",
	},
	{
		Name: "Charles Darwin",
		Description: "Charles Darwin was an English naturalist best known for his contributions to " +
			"evolutionary biology and the theory of natural selection.",
		ImageURL:  mo.None[string](),
		SourceURL: "https://en.wikipedia.org/wiki/Charles_Darwin",
	},
}

// FindScientist looks a name up in the curated set, case-insensitively.
func FindScientist(name string) mo.Option[domain.Summary] {
	needle := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "_", " ")))
	for _, s := range Scientists {
		lower := strings.ToLower(s.Name)
		if lower == needle || strings.HasSuffix(lower, " "+needle) {
			return mo.Some(s)
		}
	}

	return mo.None[domain.Summary]()
}

type curatedRecipe struct {
	name        string
	calories    float64
	servings    int
	minutes     int
	ingredients []string
	url         string
}

var curatedRecipes = []curatedRecipe{
	{
		name: "Chicken Noodle Soup", calories: 1480, servings: 4, minutes: 45,
		ingredients: []string{"1 whole chicken breast", "2 carrots", "2 celery sticks", "1 onion",
			"150g egg noodles", "1.5l chicken stock"},
		url: "https://www.bbcgoodfood.com/recipes/chicken-noodle-soup",
	},
	{
		name: "Spaghetti Bolognese", calories: 2600, servings: 4, minutes: 60,
		ingredients: []string{"400g spaghetti", "500g beef mince", "1 onion", "2 garlic cloves",
			"400g chopped tomatoes", "2 tbsp tomato purée"},
		url: "https://www.bbcgoodfood.com/recipes/best-spaghetti-bolognese-recipe",
	},
	{
		name: "Vegetable Curry", calories: 1650, servings: 4, minutes: 40,
		ingredients: []string{"1 cauliflower", "400g chickpeas", "400ml coconut milk", "2 tbsp curry paste",
			"1 onion", "200g spinach"},
		url: "https://www.bbcgoodfood.com/recipes/vegetable-curry",
	},
	{
		name: "Pancakes", calories: 860, servings: 6, minutes: 20,
		ingredients: []string{"100g plain flour", "2 eggs", "300ml milk", "1 tbsp oil", "pinch of salt"},
		url:         "https://www.bbcgoodfood.com/recipes/easy-pancakes",
	},
}

func (c curatedRecipe) recipe() domain.Recipe {
	return domain.Recipe{
		Name:               c.name,
		Calories:           c.calories,
		Servings:           c.servings,
		CaloriesPerServing: CaloriesPerServing(c.calories, c.servings),
		Ingredients:        c.ingredients,
		TotalTime:          mo.Some(time.Duration(c.minutes) * time.Minute),
		ImageURL:           mo.None[string](),
		SourceURL:          c.url,
	}
}

// FallbackRecipe prefers a curated recipe whose name matches the query and otherwise picks one at random.
func FallbackRecipe(query string, rng *rand.Rand) domain.Recipe {
	q := strings.ToLower(query)
	for _, c := range curatedRecipes {
		for _, word := range strings.Fields(q) {
			if len(word) > 2 && strings.Contains(strings.ToLower(c.name), word) {
				return c.recipe()
			}
		}
	}

	return Pick(rng, curatedRecipes).recipe()
}

// FallbackHeadlines is the placeholder shown when no feed could be read.
func FallbackHeadlines() []domain.Headline {
	return []domain.Headline{
		{
			Title:     "News feeds are quiet right now, check back in a few minutes",
			Link:      "https://www.bbc.co.uk/news",
			Source:    "siggibot",
			Summary:   mo.None[string](),
			Published: mo.None[time.Time](),
		},
	}
}

// GenericSaint is the last tier of the saint-of-the-day chain.
func GenericSaint(day time.Time) domain.Saint {
	return domain.Saint{
		Date:        day,
		Name:        "All the Saints",
		Description: "No particular saint is remembered on this day, so here's to all of them.",
		Rank:        mo.None[string](),
		Colour:      mo.None[string](),
	}
}

var oracleAnswers = []string{
	"It is certain.",
	"Without a doubt.",
	"Ask again later.",
	"Better not tell you now.",
	"My sources say no.",
	"Outlook not so good.",
	"Signs point to yes.",
	"Very doubtful.",
	"God does not play dice, but I might.",
}

// FallbackAnswer is an oracle style answer for when no language model is reachable.
func FallbackAnswer(question string, rng *rand.Rand) domain.Answer {
	return domain.Answer{
		Question: question,
		Text:     Pick(rng, oracleAnswers),
		Model:    mo.None[string](),
	}
}
