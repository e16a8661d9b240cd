package service

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"siggibot/internal/core/domain"
)

// MinQueryLength is the shortest query the reference search accepts.
const MinQueryLength = 3

// Catechism is an immutable, flattened view of the reference document; safe for concurrent searches.
type Catechism struct {
	passages []domain.Passage
}

// NewCatechism flattens the document into passages ordered by paragraph number. A nil document gives a
// nil searcher, which reports ErrDocumentMissing.
func NewCatechism(doc domain.ReferenceDocument) *Catechism {
	if doc == nil {
		return nil
	}

	c := &Catechism{}
	for _, node := range doc {
		c.collect(node, nil)
	}

	sort.Slice(c.passages, func(i, j int) bool {
		return c.passages[i].Number < c.passages[j].Number
	})

	return c
}

func (c *Catechism) collect(node *domain.ReferenceNode, titles []string) {
	if node == nil {
		return
	}

	if node.Title != "" {
		titles = append(titles[:len(titles):len(titles)], node.Title)
	}

	for key, text := range node.Paragraphs {
		n, err := strconv.Atoi(key)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}

		c.passages = append(c.passages, domain.Passage{
			Number:  n,
			Section: strings.Join(titles, " › "),
			Text:    strings.TrimSpace(text),
		})
	}

	for _, child := range node.Children {
		c.collect(child, titles)
	}
}

// Len is the number of searchable passages.
func (c *Catechism) Len() int {
	if c == nil {
		return 0
	}

	return len(c.passages)
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "what": {}, "who": {}, "how": {}, "does": {},
	"with": {}, "that": {}, "this": {}, "from": {}, "about": {}, "why": {}, "which": {}, "into": {},
}

type scored struct {
	passage domain.Passage
	score   int
}

// Search ranks passages by how well they match the query: a paragraph number hit beats a whole-phrase hit,
// which beats individual term hits in the text or section title.
func (c *Catechism) Search(query string, limit int) ([]domain.Passage, error) {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil, domain.NewValidationError("search terms must be at least %d characters long", MinQueryLength)
	}

	if c == nil {
		return nil, domain.ErrDocumentMissing
	}

	var terms []string
	for _, t := range strings.Fields(q) {
		if _, stop := stopWords[t]; !stop && utf8.RuneCountInString(t) >= MinQueryLength {
			terms = append(terms, t)
		}
	}

	number, numErr := strconv.Atoi(q)

	var hits []scored
	for _, p := range c.passages {
		score := 0
		text := strings.ToLower(p.Text)
		section := strings.ToLower(p.Section)

		if numErr == nil && p.Number == number {
			score += 100
		}

		if strings.Contains(text, q) {
			score += 10
		}

		for _, term := range terms {
			score += 2 * min(strings.Count(text, term), 5)
			if strings.Contains(section, term) {
				score += 3
			}
		}

		if score > 0 {
			hits = append(hits, scored{passage: p, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]domain.Passage, len(hits))
	for i, h := range hits {
		out[i] = h.passage
	}

	return out, nil
}
