package sender

import (
	"strings"

	"siggibot/internal/core/domain"
)

// RenderText flattens a reply for platforms without rich embeds.
func RenderText(reply domain.Reply) string {
	var parts []string

	if reply.Title != "" {
		parts = append(parts, "**"+reply.Title+"**")
	}

	if reply.Body != "" {
		parts = append(parts, reply.Body)
	}

	if len(reply.Fields) > 0 {
		lines := make([]string, 0, len(reply.Fields))
		for _, f := range reply.Fields {
			lines = append(lines, f.Name+": "+f.Value)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if url, ok := reply.URL.Get(); ok {
		parts = append(parts, url)
	}

	if reply.Footer != "" {
		parts = append(parts, "· "+reply.Footer)
	}

	return strings.Join(parts, "\n\n")
}

// chunk splits text into pieces of at most limit runes, preferring to break at a newline.
func chunk(text string, limit int) []string {
	rs := []rune(text)
	if len(rs) <= limit {
		return []string{text}
	}

	var out []string
	for len(rs) > limit {
		cut := limit
		for k := limit; k > limit/2; k-- {
			if rs[k-1] == '\n' {
				cut = k
				break
			}
		}

		out = append(out, strings.TrimRight(string(rs[:cut]), "\n"))
		rs = rs[cut:]
	}

	if len(rs) > 0 {
		out = append(out, string(rs))
	}

	return out
}
