package analyze

import (
	"strings"
)

// EmbedPath is the chain of interfaces through which an ancestor was reached.
// Examples:
//   - "settings.Example" for the top-level interface
//   - "settings.Example > base.Base > base.Legacy" for a transitive ancestor
type EmbedPath struct {
	parts []string
}

// NewEmbedPath creates a new EmbedPath from the top-level interface.
func NewEmbedPath(root TypeID) EmbedPath {
	return EmbedPath{parts: []string{root.Short()}}
}

// Embed appends an ancestor to the path.
func (p EmbedPath) Embed(id TypeID) EmbedPath {
	return EmbedPath{
		parts: append(append([]string{}, p.parts...), id.Short()),
	}
}

// Depth returns the number of embedding steps from the root.
func (p EmbedPath) Depth() int {
	return max(len(p.parts)-1, 0)
}

// String returns the full path string.
func (p EmbedPath) String() string {
	return strings.Join(p.parts, " > ")
}
