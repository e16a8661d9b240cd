package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"siggibot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

var ErrEmptyDocument = errors.New("reference document has no nodes")

// LoadReferenceDocument reads the reference document tree from a file path or URL. An empty path yields a
// nil document, which the catechism command reports as unavailable.
func LoadReferenceDocument(ctx context.Context, path string) (domain.ReferenceDocument, error) {
	if path == "" {
		log.Warn().Msg("no reference document configured")
		return nil, nil
	}

	buf, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var doc domain.ReferenceDocument
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("error parsing reference document %s: %w", path, err)
	}

	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}

	log.Info().Str("path", path).Int("nodes", countNodes(doc)).Msg("loaded reference document")

	return doc, nil
}

func countNodes(doc domain.ReferenceDocument) int {
	var walk func(n *domain.ReferenceNode) int
	walk = func(n *domain.ReferenceNode) int {
		if n == nil {
			return 0
		}

		total := 1
		for _, c := range n.Children {
			total += walk(c)
		}
		return total
	}

	total := 0
	for _, n := range doc {
		total += walk(n)
	}

	return total
}
