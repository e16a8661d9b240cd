package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"siggibot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func sentences(n int) string {
	var sb strings.Builder
	for i := range n {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("This is sentence number ")
		sb.WriteString(strings.Repeat("x", i%13))
		sb.WriteString(" which talks about grace and faith.")
	}
	return sb.String()
}

func TestPaginateShortTextIsSinglePage(t *testing.T) {
	text := "Short text. Two sentences."
	pages := Paginate(text, domain.PageBudget)

	require.Len(t, pages, 1)
	assert.Equal(t, text, pages[0])
}

func TestPaginateExactlyBudget(t *testing.T) {
	text := strings.Repeat("a", 100)
	pages := Paginate(text, 100)

	require.Len(t, pages, 1)
	assert.Equal(t, text, pages[0])
}

func TestPaginateSplitsOnSentences(t *testing.T) {
	text := sentences(120)
	pages := Paginate(text, domain.PageBudget)

	require.Greater(t, len(pages), 1)
	for _, p := range pages {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), domain.PageBudget)
		assert.True(t, strings.HasSuffix(p, "faith."), "page should end on a sentence: %q", p[len(p)-20:])
		assert.True(t, strings.HasPrefix(p, "This is"))
	}

	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(strings.Join(pages, " ")), " "))
}

func TestPaginateKeepsParagraphBreaks(t *testing.T) {
	text := strings.Repeat("First paragraph has words\n\n", 10)
	pages := Paginate(text, 60)

	require.Greater(t, len(pages), 1)
	assert.Contains(t, pages[0], "\n\n")
	assert.Equal(t, squash(text), squash(strings.Join(pages, "")))
}

func TestPaginateHardCutsLongSentence(t *testing.T) {
	long := strings.Repeat("word ", 100) + "end."
	text := "Intro sentence. " + long + " Outro sentence."
	pages := Paginate(text, 80)

	require.Greater(t, len(pages), 3)
	for _, p := range pages {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 80)
		assert.NotEmpty(t, p)
	}
	assert.Equal(t, squash(text), squash(strings.Join(pages, "")))
}

func TestPaginateHardCutWithoutSpaces(t *testing.T) {
	text := strings.Repeat("ü", 250)
	pages := Paginate(text, 100)

	require.Len(t, pages, 3)
	assert.Equal(t, 100, utf8.RuneCountInString(pages[0]))
	assert.Equal(t, 50, utf8.RuneCountInString(pages[2]))
	assert.Equal(t, text, strings.Join(pages, ""))
}

func TestPagesGet(t *testing.T) {
	pages := Pages{"one", "two", "three"}

	tests := []struct {
		page    int
		want    string
		wantErr string
	}{
		{page: 1, want: "one"},
		{page: 3, want: "three"},
		{page: 0, wantErr: "page 0 doesn't exist, pick a page from 1 to 3"},
		{page: 4, wantErr: "page 4 doesn't exist, pick a page from 1 to 3"},
		{page: -1, wantErr: "page -1 doesn't exist, pick a page from 1 to 3"},
	}

	for _, tc := range tests {
		got, err := pages.Get(tc.page)
		if tc.wantErr != "" {
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tc.wantErr, err.Error())
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := Pages{"only"}.Get(2)
	require.EqualError(t, err, "page 2 doesn't exist, there is only 1 page")
}
