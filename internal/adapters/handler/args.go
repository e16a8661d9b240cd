package handler

import (
	"strings"
	"unicode"

	"siggibot/internal/core/domain"
)

// textArgs maps a command line onto a schema. Tokens written as name=value bind by name; the others
// bind in parameter order. The last free-text parameter is greedy and takes every token not needed by
// the required parameters after it, so optional parameters behind it can only be given by name.
func textArgs(spec domain.CommandSpec, line string) map[string]any {
	raw := make(map[string]any)

	known := make(map[string]struct{}, len(spec.Params))
	for _, p := range spec.Params {
		known[p.Name] = struct{}{}
	}

	var tokens []token
	for i, tok := range splitTokens(line) {
		if name, value, ok := strings.Cut(tok.text, "="); ok {
			if _, isParam := known[strings.ToLower(name)]; isParam {
				raw[strings.ToLower(name)] = value
				continue
			}
		}
		tok.index = i
		tokens = append(tokens, tok)
	}

	var open []domain.Param
	for _, p := range spec.Params {
		if _, set := raw[p.Name]; !set {
			open = append(open, p)
		}
	}

	greedy := -1
	for i, p := range open {
		if p.Type == domain.ArgString && len(p.Choices) == 0 {
			greedy = i
		}
	}

	last := ""
	for i, p := range open {
		if len(tokens) == 0 {
			break
		}

		if i == greedy {
			n := len(tokens) - requiredCount(open[i+1:])
			if n < 1 {
				n = 1
			}

			raw[p.Name] = joinTokens(line, tokens[:n], p.Verbatim)
			tokens = tokens[n:]
			last = p.Name
			continue
		}

		if i > greedy && greedy >= 0 && !p.Required {
			continue
		}

		raw[p.Name] = tokens[0].text
		tokens = tokens[1:]
		last = p.Name
	}

	if len(tokens) > 0 && last != "" {
		raw[last] = raw[last].(string) + " " + joinTokens(line, tokens, false)
	}

	return raw
}

type token struct {
	text       string
	start, end int
	// index is the position among all tokens of the line, named ones included.
	index int
}

func splitTokens(line string) []token {
	var tokens []token

	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: line[start:i], start: start, end: i})
				start = -1
			}
			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		tokens = append(tokens, token{text: line[start:], start: start, end: len(line)})
	}

	return tokens
}

// joinTokens rebuilds text from tokens. Verbatim keeps the original spacing when the tokens were adjacent
// on the line.
func joinTokens(line string, tokens []token, verbatim bool) string {
	first, last := tokens[0], tokens[len(tokens)-1]
	if verbatim && last.index-first.index == len(tokens)-1 {
		return line[first.start:last.end]
	}

	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.text
	}

	return strings.Join(parts, " ")
}

func requiredCount(params []domain.Param) int {
	n := 0
	for _, p := range params {
		if p.Required {
			n++
		}
	}

	return n
}
