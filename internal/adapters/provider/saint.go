package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/samber/mo"
)

const DefaultCalendarEndpoint = "http://calapi.inadiutorium.cz/api/v0/en/calendars/default"

type calendarDay struct {
	Date         string `json:"date"`
	Season       string `json:"season"`
	Weekday      string `json:"weekday"`
	Celebrations []struct {
		Title  string `json:"title"`
		Colour string `json:"colour"`
		Rank   string `json:"rank"`
	} `json:"celebrations"`
}

// genericCelebration matches calendar titles that name a weekday or a season rather than a saint. This is a
// heuristic and can misjudge legitimate feasts.
var genericCelebration = regexp.MustCompile(
	`(?i)ordinary time|^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b|\bweekday\b|` +
		`\b(advent|lent|easter|christmas) (time|season)\b`)

// IsGenericCelebration reports whether a calendar title is too generic to present as the saint of the day.
func IsGenericCelebration(title string) bool {
	return strings.TrimSpace(title) == "" || genericCelebration.MatchString(title)
}

// Calendar resolves the saint of the day: the liturgical calendar API, then the bundled month-day table,
// then a generic placeholder.
type Calendar struct {
	client   *Client
	endpoint string
}

func NewCalendar(client *Client, endpoint string) *Calendar {
	if endpoint == "" {
		endpoint = DefaultCalendarEndpoint
	}

	return &Calendar{client: client, endpoint: strings.TrimSuffix(endpoint, "/")}
}

func (c *Calendar) SaintOfDay(ctx context.Context, day time.Time) domain.Saint {
	saint, _ := service.Resolve(ctx, "calendar", []service.Strategy[domain.Saint]{
		{Name: "calendar-api", Fetch: func(ctx context.Context) (mo.Option[domain.Saint], error) {
			return c.fetch(ctx, day)
		}},
		{Name: "month-day", Fetch: func(_ context.Context) (mo.Option[domain.Saint], error) {
			return SaintFromTable(day), nil
		}},
	}, func() domain.Saint {
		return service.GenericSaint(day)
	})

	return saint
}

func (c *Calendar) fetch(ctx context.Context, day time.Time) (mo.Option[domain.Saint], error) {
	var res calendarDay

	url := fmt.Sprintf("%s/%04d/%02d/%02d", c.endpoint, day.Year(), day.Month(), day.Day())
	if err := c.client.GetJSON(ctx, url, &res); err != nil {
		return mo.None[domain.Saint](), &domain.ProviderError{Provider: "calendar", Err: err}
	}

	return normalizeCalendar(day, res), nil
}

// normalizeCalendar picks the first celebration that names someone, declining the day otherwise.
func normalizeCalendar(day time.Time, res calendarDay) mo.Option[domain.Saint] {
	for _, cel := range res.Celebrations {
		if IsGenericCelebration(cel.Title) {
			continue
		}

		description := fmt.Sprintf("Celebrated today in the %s season.", res.Season)
		if known, ok := SaintFromTable(day).Get(); ok && strings.EqualFold(known.Name, cel.Title) {
			description = known.Description
		}

		return mo.Some(domain.Saint{
			Date:        day,
			Name:        cel.Title,
			Description: description,
			Rank:        optionalString(cel.Rank),
			Colour:      optionalString(cel.Colour),
		})
	}

	return mo.None[domain.Saint]()
}

type tableSaint struct {
	name        string
	description string
}

// saintsByDay is keyed by month and day, e.g. "10-04".
var saintsByDay = map[string]tableSaint{
	"01-02": {"Saints Basil the Great and Gregory Nazianzen", "Cappadocian bishops and Doctors of the Church who defended the Nicene faith."},
	"01-17": {"Saint Anthony, Abbot", "Egyptian hermit regarded as the father of monasticism."},
	"01-21": {"Saint Agnes", "Roman virgin martyred as a young girl in the early fourth century."},
	"01-24": {"Saint Francis de Sales", "Bishop of Geneva and patron of writers and journalists."},
	"01-28": {"Saint Thomas Aquinas", "Dominican friar, philosopher and Doctor of the Church."},
	"01-31": {"Saint John Bosco", "Founder of the Salesians, devoted to educating poor young people."},
	"02-03": {"Saint Blaise", "Bishop and martyr, invoked for ailments of the throat."},
	"02-05": {"Saint Agatha", "Sicilian virgin and martyr, patron of Catania."},
	"02-10": {"Saint Scholastica", "Sister of Saint Benedict and foundress of Benedictine nuns."},
	"02-14": {"Saints Cyril and Methodius", "Brothers who brought the Gospel and a written alphabet to the Slavs."},
	"03-07": {"Saints Perpetua and Felicity", "Martyrs of Carthage who died together in the arena."},
	"03-17": {"Saint Patrick", "Missionary bishop and patron saint of Ireland."},
	"03-19": {"Saint Joseph", "Spouse of the Blessed Virgin Mary and patron of the universal Church."},
	"04-23": {"Saint George", "Soldier and martyr, patron of England and of many other lands."},
	"04-25": {"Saint Mark, Evangelist", "Author of the second Gospel and companion of Saint Peter."},
	"04-29": {"Saint Catherine of Siena", "Dominican tertiary, mystic and Doctor of the Church."},
	"05-14": {"Saint Matthias, Apostle", "Chosen by lot to take the place of Judas among the Twelve."},
	"05-26": {"Saint Philip Neri", "The joyful apostle of Rome and founder of the Oratory."},
	"06-13": {"Saint Anthony of Padua", "Franciscan preacher and finder of lost things."},
	"06-24": {"The Nativity of Saint John the Baptist", "Birth of the forerunner of the Lord."},
	"06-29": {"Saints Peter and Paul, Apostles", "The pillars of the Church, martyred in Rome."},
	"07-03": {"Saint Thomas, Apostle", "The apostle who doubted and then confessed, My Lord and my God."},
	"07-11": {"Saint Benedict", "Father of Western monasticism and patron of Europe."},
	"07-22": {"Saint Mary Magdalene", "First witness of the Resurrection, called apostle to the apostles."},
	"07-25": {"Saint James, Apostle", "Son of Zebedee, first of the apostles to be martyred."},
	"07-26": {"Saints Joachim and Anne", "Parents of the Blessed Virgin Mary."},
	"07-31": {"Saint Ignatius of Loyola", "Founder of the Society of Jesus."},
	"08-04": {"Saint John Vianney", "The Curé of Ars, patron of parish priests."},
	"08-08": {"Saint Dominic", "Founder of the Order of Preachers."},
	"08-10": {"Saint Lawrence", "Deacon and martyr of Rome."},
	"08-11": {"Saint Clare", "Follower of Saint Francis and foundress of the Poor Clares."},
	"08-28": {"Saint Augustine", "Bishop of Hippo and Doctor of the Church."},
	"09-03": {"Saint Gregory the Great", "Pope and Doctor of the Church who sent missionaries to England."},
	"09-21": {"Saint Matthew, Apostle and Evangelist", "Tax collector called to follow Christ and author of the first Gospel."},
	"09-23": {"Saint Pius of Pietrelcina", "Capuchin friar known as Padre Pio."},
	"09-29": {"Saints Michael, Gabriel and Raphael, Archangels", "The archangels named in Scripture."},
	"09-30": {"Saint Jerome", "Translator of the Bible into Latin and Doctor of the Church."},
	"10-01": {"Saint Thérèse of the Child Jesus", "Carmelite nun of Lisieux and her little way of love."},
	"10-04": {"Saint Francis of Assisi", "Founder of the Franciscans and patron of ecology."},
	"10-15": {"Saint Teresa of Jesus", "Carmelite reformer, mystic and Doctor of the Church."},
	"10-18": {"Saint Luke, Evangelist", "Physician and author of the third Gospel and the Acts of the Apostles."},
	"11-01": {"All Saints", "Solemnity honouring all the saints, known and unknown."},
	"11-11": {"Saint Martin of Tours", "Soldier turned bishop who shared his cloak with a beggar."},
	"11-22": {"Saint Cecilia", "Virgin and martyr, patron of musicians."},
	"11-30": {"Saint Andrew, Apostle", "Brother of Peter and patron of Scotland."},
	"12-06": {"Saint Nicholas", "Bishop of Myra, known for his secret generosity."},
	"12-13": {"Saint Lucy", "Virgin and martyr of Syracuse, patron of the blind."},
	"12-14": {"Saint John of the Cross", "Carmelite mystic and Doctor of the Church."},
	"12-26": {"Saint Stephen, the first martyr", "Deacon stoned to death in Jerusalem."},
	"12-27": {"Saint John, Apostle and Evangelist", "The beloved disciple."},
}

// SaintFromTable looks the day up in the bundled month-day table.
func SaintFromTable(day time.Time) mo.Option[domain.Saint] {
	s, ok := saintsByDay[day.Format("01-02")]
	if !ok {
		return mo.None[domain.Saint]()
	}

	return mo.Some(domain.Saint{
		Date:        day,
		Name:        s.name,
		Description: s.description,
		Rank:        mo.None[string](),
		Colour:      mo.None[string](),
	})
}
