package domain

// ReferenceNode is one titled node of the reference document. Paragraphs and children are keyed by their
// numeric identifiers, written as strings in the JSON source.
type ReferenceNode struct {
	Title      string                    `json:"title"`
	Paragraphs map[string]string         `json:"paragraphs,omitempty"`
	Children   map[string]*ReferenceNode `json:"children,omitempty"`
}

// ReferenceDocument is the static, read-only tree loaded once at start.
type ReferenceDocument map[string]*ReferenceNode
