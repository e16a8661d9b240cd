package command

import (
	"context"
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/port"
	"strconv"
	"strings"
	"time"
)

const maxIngredients = 12

type Recipe struct {
	recipes port.RecipeProvider
	sender  port.ReplySender
	command string
}

func NewRecipe(recipes port.RecipeProvider, sender port.ReplySender, command string) *Recipe {
	return &Recipe{recipes: recipes, sender: sender, command: command}
}

func (r *Recipe) GetCommand() string {
	return r.command
}

func (r *Recipe) Spec() domain.CommandSpec {
	return domain.CommandSpec{
		Name:        r.command,
		Description: "Find a recipe",
		Params: []domain.Param{
			{Name: "query", Description: "Dish or ingredient", Type: domain.ArgString, Required: true,
				MinLength: 2, MaxLength: 100},
		},
	}
}

func (r *Recipe) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	l := invocationLogger(inv, r.command)

	query, _ := inv.Args.String("query")
	l.Info().Str("query", query).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	recipe := r.recipes.Search(ctx, query)

	return r.sender.SendReply(ctx, inv, renderRecipe(recipe, inv))
}

func renderRecipe(recipe domain.Recipe, inv *domain.Invocation) domain.Reply {
	var sb strings.Builder
	for i, ingredient := range recipe.Ingredients {
		if i == maxIngredients {
			fmt.Fprintf(&sb, "…and %d more", len(recipe.Ingredients)-maxIngredients)
			break
		}
		sb.WriteString("• " + ingredient + "\n")
	}

	fields := []domain.Field{
		{Name: "Calories per serving", Value: fmt.Sprintf("%d kcal", recipe.CaloriesPerServing), Inline: true},
		{Name: "Servings", Value: strconv.Itoa(recipe.Servings), Inline: true},
	}

	if d, ok := recipe.TotalTime.Get(); ok {
		fields = append(fields, domain.Field{Name: "Total time", Value: d.String(), Inline: true})
	}

	return domain.Reply{
		Title:    recipe.Name,
		Body:     truncate(strings.TrimSpace(sb.String()), domain.PageBudget),
		ImageURL: recipe.ImageURL,
		Fields:   fields,
		URL:      link(recipe.SourceURL),
		Color:    domain.ColorGold,
		Footer:   requestedBy(inv),
	}
}
