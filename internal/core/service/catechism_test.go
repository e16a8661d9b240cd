package service

import (
	"errors"
	"testing"

	"siggibot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() domain.ReferenceDocument {
	return domain.ReferenceDocument{
		"1": {
			Title: "The Profession of Faith",
			Children: map[string]*domain.ReferenceNode{
				"1": {
					Title: "Man's Capacity for God",
					Paragraphs: map[string]string{
						"27": "The desire for God is written in the human heart.",
						"28": "In many ways, throughout history, people have expressed their quest for God.",
					},
				},
			},
		},
		"2": {
			Title: "The Celebration of the Christian Mystery",
			Paragraphs: map[string]string{
				"1113": "The whole liturgical life of the Church revolves around the sacraments.",
				"1213": "Baptism is the basis of the whole Christian life. Grace flows through baptism.",
				"bad":  "ignored, not numeric",
			},
		},
	}
}

func TestNewCatechismFlattens(t *testing.T) {
	c := NewCatechism(testDocument())

	require.Equal(t, 4, c.Len())
	assert.Equal(t, 27, c.passages[0].Number)
	assert.Equal(t, "The Profession of Faith › Man's Capacity for God", c.passages[0].Section)
	assert.Equal(t, 1213, c.passages[3].Number)
}

func TestCatechismSearch(t *testing.T) {
	c := NewCatechism(testDocument())

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "phrase beats terms", query: "desire for God", want: []int{27, 28}},
		{name: "term counts", query: "baptism", want: []int{1213}},
		{name: "paragraph number", query: "1113", want: []int{1113}},
		{name: "section title", query: "celebration", want: []int{1113, 1213}},
		{name: "no hit", query: "zebra", want: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Search(tc.query, 10)
			require.NoError(t, err)

			numbers := make([]int, 0, len(got))
			for _, p := range got {
				numbers = append(numbers, p.Number)
			}
			assert.Equal(t, tc.want, numbers)
		})
	}
}

func TestCatechismSearchLimit(t *testing.T) {
	got, err := NewCatechism(testDocument()).Search("the", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCatechismShortQueryRejectedFirst(t *testing.T) {
	var missing *Catechism

	_, err := missing.Search(" go ", 5)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = missing.Search("grace", 5)
	assert.True(t, errors.Is(err, domain.ErrDocumentMissing))
}

func TestNewCatechismNil(t *testing.T) {
	assert.Nil(t, NewCatechism(nil))
	assert.Equal(t, 0, NewCatechism(nil).Len())
}
