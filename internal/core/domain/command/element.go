package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strconv"
	"time"
)

type Element struct {
	elements port.ElementProvider
	sender   port.ReplySender
	command  string
}

func NewElement(elements port.ElementProvider, sender port.ReplySender, command string) *Element {
	return &Element{elements: elements, sender: sender, command: command}
}

func (e *Element) GetCommand() string {
	return e.command
}

func (e *Element) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        e.command,
		Description: "Look up a chemical element",
		Params: []domain.Param{
			{Name: "query", Description: "Symbol, name or atomic number", Type: domain.ArgString, Required: true,
				MaxLength: 40},
		},
	}
}

func (e *Element) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, e.command)

	query, _ := inv.Args.String("query")
	l.Info().Str("query", query).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	element, err := e.elements.Lookup(ctx, query)
	if err != nil {
		return e.sender.NotifyAndReturnError(ctx, err, inv)
	}

	return e.sender.SendReply(ctx, inv, renderElement(element, inv))
}

func renderElement(el domain.Element, inv *domain.Invocation) domain.Reply {
	fields := []domain.Field{
		{Name: "Atomic number", Value: strconv.Itoa(el.Number), Inline: true},
		{Name: "Symbol", Value: el.Symbol, Inline: true},
	}

	if m, ok := el.AtomicMass.Get(); ok {
		fields = append(fields, domain.Field{Name: "Atomic mass", Value: strconv.FormatFloat(m, 'f', -1, 64),
			Inline: true})
	}

	optional := []struct {
		name  string
		value string
		ok    bool
	}{
		{"Category", el.Category.OrEmpty(), el.Category.IsPresent()},
		{"Standard state", el.StandardState.OrEmpty(), el.StandardState.IsPresent()},
		{"Electron configuration", el.ElectronConfig.OrEmpty(), el.ElectronConfig.IsPresent()},
		{"Discovered", el.YearDiscovered.OrEmpty(), el.YearDiscovered.IsPresent()},
	}

	for _, o := range optional {
		if o.ok {
			fields = append(fields, domain.Field{Name: o.name, Value: o.value, Inline: true})
		}
	}

	if en, ok := el.Electronegativity.Get(); ok {
		fields = append(fields, domain.Field{Name: "Electronegativity", Value: fmt.Sprintf("%.2f", en),
			Inline: true})
	}

	return domain.Reply{
		Title:  fmt.Sprintf("%s (%s)", el.Name, el.Symbol),
		Fields: fields,
		URL:    link("https://pubchem.ncbi.nlm.nih.gov/element/" + strconv.Itoa(el.Number)),
		Color:  domain.ColorPurple,
		Footer: requestedBy(inv),
	}
}
