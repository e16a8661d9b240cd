package command

import (
	"fmt"
	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearcher struct {
	passages []domain.Passage
	err      error
	calls    int
}

func (m *MockSearcher) Search(_ string, _ int) ([]domain.Passage, error) {
	m.calls++
	return m.passages, m.err
}

func longPassages() []domain.Passage {
	var out []domain.Passage
	for i := range 5 {
		out = append(out, domain.Passage{
			Number:  1000 + i,
			Section: "Grace",
			Text:    strings.Repeat(fmt.Sprintf("Grace is favour number %d. ", i), 20),
		})
	}
	return out
}

func TestCatechismShortQueryRejectedByBinding(t *testing.T) {
	searcher := &MockSearcher{}
	cmd := NewCatechism(searcher, new(MockSender), "catechism")

	_, err := cmd.Spec().Bind(map[string]any{"query": "go"})
	require.Error(t, err)
	assert.True(t, isValidation(err))
	assert.Equal(t, 0, searcher.calls)
}

func TestCatechismShortQueryRejectedBeforeLookup(t *testing.T) {
	ms := new(MockSender)
	cmd := NewCatechism(service.NewCatechism(nil), ms, "catechism")

	inv := &domain.Invocation{ID: "1", Args: domain.NewArgs(map[string]any{"query": "go"})}

	ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

	err := cmd.Respond(t.Context(), time.Second, inv)
	require.Error(t, err)
	assert.Equal(t, "search terms must be at least 3 characters long", err.Error())
	ms.AssertExpectations(t)
}

func TestCatechismMissingDocument(t *testing.T) {
	ms := new(MockSender)
	cmd := NewCatechism(service.NewCatechism(nil), ms, "catechism")

	inv := bind(t, cmd, map[string]any{"query": "grace"})

	ms.On("SendReply", mock.Anything, inv, domain.Reply{Body: catechismUnavailable, Ephemeral: true}).Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	ms.AssertExpectations(t)
}

func TestCatechismPages(t *testing.T) {
	searcher := &MockSearcher{passages: longPassages()}

	var first domain.Reply
	ms := new(MockSender)
	ms.On("SendReply", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { first = args.Get(2).(domain.Reply) }).
		Return(nil).Once()

	cmd := NewCatechism(searcher, ms, "catechism")
	require.NoError(t, cmd.Respond(t.Context(), time.Second, bind(t, cmd, map[string]any{"query": "grace"})))

	assert.LessOrEqual(t, len([]rune(first.Body)), domain.PageBudget)
	assert.True(t, strings.HasPrefix(first.Footer, "Page 1 of "))
	assert.Contains(t, first.Footer, "use page:2 for more")

	total := len(service.Paginate(renderPassages(searcher.passages), domain.PageBudget))
	require.Greater(t, total, 1)

	inv := bind(t, cmd, map[string]any{"query": "grace", "page": total + 1})
	ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

	err := cmd.Respond(t.Context(), time.Second, inv)
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("page %d doesn't exist, pick a page from 1 to %d", total+1, total), err.Error())
	ms.AssertExpectations(t)
}

func TestCatechismNoMatches(t *testing.T) {
	ms := new(MockSender)
	cmd := NewCatechism(&MockSearcher{passages: []domain.Passage{}}, ms, "catechism")

	inv := bind(t, cmd, map[string]any{"query": "zebra"})
	ms.On("SendReply", mock.Anything, inv, domain.TextReply(`Nothing in the catechism matches "zebra".`)).Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	ms.AssertExpectations(t)
}
