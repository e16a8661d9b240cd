package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"siggibot/internal/core/domain"
)

// Pages is text split into bounded chunks. It holds no cursor: callers ask for a page by number.
type Pages []string

// Get returns page n, counting from 1.
func (p Pages) Get(n int) (string, error) {
	if n < 1 || n > len(p) {
		if len(p) == 1 {
			return "", domain.NewValidationError("page %d doesn't exist, there is only 1 page", n)
		}
		return "", domain.NewValidationError("page %d doesn't exist, pick a page from 1 to %d", n, len(p))
	}

	return p[n-1], nil
}

type segment struct {
	sep  string
	text string
}

// Paginate splits text into pages of at most budget characters. Text that fits is returned untouched as a
// single page. Longer text is broken between sentences; a sentence that alone exceeds the budget is cut.
func Paginate(text string, budget int) Pages {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= budget {
		return Pages{text}
	}

	var pages Pages
	var current strings.Builder
	length := 0

	flush := func() {
		if current.Len() > 0 {
			pages = append(pages, current.String())
			current.Reset()
			length = 0
		}
	}

	for _, seg := range splitSentences(text) {
		n := utf8.RuneCountInString(seg.text)

		if n > budget {
			flush()
			pages = append(pages, hardCut(seg.text, budget)...)
			continue
		}

		sepLen := 0
		if length > 0 {
			sepLen = utf8.RuneCountInString(seg.sep)
		}

		if length+sepLen+n > budget {
			flush()
			sepLen = 0
		}

		if sepLen > 0 {
			current.WriteString(seg.sep)
		}

		current.WriteString(seg.text)
		length += sepLen + n
	}

	flush()

	return pages
}

// splitSentences breaks text after sentence punctuation and at line breaks, keeping the whitespace that
// separated each sentence from the previous one.
func splitSentences(text string) []segment {
	rs := []rune(text)

	var segs []segment
	start := 0
	sep := ""

	for i := 0; i < len(rs); {
		if !unicode.IsSpace(rs[i]) {
			i++
			continue
		}

		j := i
		for j < len(rs) && unicode.IsSpace(rs[j]) {
			j++
		}

		ws := string(rs[i:j])
		if i > start && (endsSentence(rs[start:i]) || strings.ContainsRune(ws, '\n')) {
			segs = append(segs, segment{sep: sep, text: string(rs[start:i])})
			sep = ws
			start = j
		}

		i = j
	}

	if start < len(rs) {
		segs = append(segs, segment{sep: sep, text: string(rs[start:])})
	}

	return segs
}

func endsSentence(rs []rune) bool {
	i := len(rs) - 1
	for i >= 0 && strings.ContainsRune(`"'”’)]`, rs[i]) {
		i--
	}

	return i >= 0 && strings.ContainsRune(".!?…", rs[i])
}

// hardCut splits an over-long sentence, preferring the last space in the second half of each chunk.
func hardCut(text string, budget int) []string {
	rs := []rune(text)

	var chunks []string
	for len(rs) > budget {
		cut := budget
		for k := budget; k > budget/2; k-- {
			if unicode.IsSpace(rs[k]) {
				cut = k
				break
			}
		}

		chunks = append(chunks, strings.TrimRightFunc(string(rs[:cut]), unicode.IsSpace))

		rest := rs[cut:]
		for len(rest) > 0 && unicode.IsSpace(rest[0]) {
			rest = rest[1:]
		}
		rs = rest
	}

	if len(rs) > 0 {
		chunks = append(chunks, string(rs))
	}

	return chunks
}
