package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"siggibot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

const DefaultPubChemEndpoint = "https://pubchem.ncbi.nlm.nih.gov/rest/pug/periodictable/JSON"

type pubChemTable struct {
	Table struct {
		Columns struct {
			Column []string `json:"Column"`
		} `json:"Columns"`
		Row []struct {
			Cell []string `json:"Cell"`
		} `json:"Row"`
	} `json:"Table"`
}

// PubChem serves element data from the PubChem periodic table. The table is fetched once and kept in
// memory; queries are validated against the bundled element list so unknown names never reach the network.
type PubChem struct {
	client   *Client
	endpoint string

	mu    sync.RWMutex
	table map[int]domain.Element
	group singleflight.Group

	bySymbol map[string]int
	byName   map[string]int
}

func NewPubChem(client *Client, endpoint string) *PubChem {
	if endpoint == "" {
		endpoint = DefaultPubChemEndpoint
	}

	p := &PubChem{
		client:   client,
		endpoint: endpoint,
		bySymbol: make(map[string]int, len(bundledElements)),
		byName:   make(map[string]int, len(bundledElements)),
	}

	for i, entry := range bundledElements {
		symbol, name, _ := strings.Cut(entry, " ")
		p.bySymbol[strings.ToLower(symbol)] = i + 1
		p.byName[strings.ToLower(name)] = i + 1
	}

	return p
}

// resolve maps a symbol, name or atomic number to an atomic number.
func (p *PubChem) resolve(query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	if n, err := strconv.Atoi(q); err == nil {
		return n, n >= 1 && n <= len(bundledElements)
	}

	if alias, ok := elementAliases[q]; ok {
		q = alias
	}

	if n, ok := p.bySymbol[q]; ok {
		return n, true
	}

	n, ok := p.byName[q]
	return n, ok
}

func (p *PubChem) Lookup(ctx context.Context, query string) (domain.Element, error) {
	number, ok := p.resolve(query)
	if !ok {
		return domain.Element{}, domain.NewValidationError("there's no element called %q", query)
	}

	table, err := p.loadTable(ctx)
	if err != nil {
		log.Warn().Err(err).Int("number", number).Msg("periodic table unavailable, using bundled element")
		return bundledElement(number), nil
	}

	if el, ok := table[number]; ok {
		return el, nil
	}

	return bundledElement(number), nil
}

func (p *PubChem) loadTable(ctx context.Context) (map[int]domain.Element, error) {
	p.mu.RLock()
	table := p.table
	p.mu.RUnlock()

	if table != nil {
		return table, nil
	}

	v, err, _ := p.group.Do("table", func() (any, error) {
		var res pubChemTable
		if err := p.client.GetJSON(ctx, p.endpoint, &res); err != nil {
			return nil, &domain.ProviderError{Provider: "pubchem", Err: err}
		}

		table, err := p.normalizeTable(res)
		if err != nil {
			return nil, &domain.ProviderError{Provider: "pubchem", Err: err}
		}

		p.mu.Lock()
		p.table = table
		p.mu.Unlock()

		log.Info().Int("elements", len(table)).Msg("cached periodic table")

		return table, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[int]domain.Element), nil
}

func (p *PubChem) normalizeTable(res pubChemTable) (map[int]domain.Element, error) {
	index := make(map[string]int, len(res.Table.Columns.Column))
	for i, c := range res.Table.Columns.Column {
		index[c] = i
	}

	for _, required := range []string{"AtomicNumber", "Symbol", "Name"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("periodic table without %s column", required)
		}
	}

	cell := func(cells []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	table := make(map[int]domain.Element, len(res.Table.Row))
	for _, row := range res.Table.Row {
		number, err := strconv.Atoi(cell(row.Cell, "AtomicNumber"))
		if err != nil || number < 1 {
			continue
		}

		table[number] = domain.Element{
			Number:            number,
			Symbol:            cell(row.Cell, "Symbol"),
			Name:              cell(row.Cell, "Name"),
			AtomicMass:        optionalFloat(cell(row.Cell, "AtomicMass")),
			Category:          optionalString(titleCase(cell(row.Cell, "GroupBlock"))),
			StandardState:     optionalString(cell(row.Cell, "StandardState")),
			ElectronConfig:    optionalString(cell(row.Cell, "ElectronConfiguration")),
			YearDiscovered:    optionalString(cell(row.Cell, "YearDiscovered")),
			Electronegativity: optionalFloat(cell(row.Cell, "Electronegativity")),
		}
	}

	if len(table) == 0 {
		return nil, errors.New("periodic table without rows")
	}

	return table, nil
}

func bundledElement(number int) domain.Element {
	symbol, name, _ := strings.Cut(bundledElements[number-1], " ")

	return domain.Element{
		Number:            number,
		Symbol:            symbol,
		Name:              name,
		AtomicMass:        mo.None[float64](),
		Category:          mo.None[string](),
		StandardState:     mo.None[string](),
		ElectronConfig:    mo.None[string](),
		YearDiscovered:    mo.None[string](),
		Electronegativity: mo.None[float64](),
	}
}

func optionalString(s string) mo.Option[string] {
	if s == "" {
		return mo.None[string]()
	}

	return mo.Some(s)
}

func optionalFloat(s string) mo.Option[float64] {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return mo.None[float64]()
	}

	return mo.Some(f)
}
