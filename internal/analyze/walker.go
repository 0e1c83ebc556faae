package analyze

import (
	"context"

	"prefs-generator/internal/common"
	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/logctx"
)

// Marker interfaces of the runtime package. They describe generated
// lifecycle methods, not settings, and are never traversed.
var markerInterfaces = []TypeID{
	{PkgPath: common.RuntimePkgPath, Name: "Actions"},
	{PkgPath: common.RuntimePkgPath, Name: "CacheActions"},
}

// MethodRef is one method reached during traversal.
type MethodRef struct {
	// Owner is the interface that declares the method.
	Owner  *InterfaceInfo
	Method MethodInfo
	// Path is how Owner was reached from the top-level interface.
	Path EmbedPath
}

// Walker enumerates the methods of an interface and its ancestors.
type Walker struct {
	resolver Resolver
	excluded map[TypeID]bool
}

// NewWalker creates a Walker resolving ancestors with resolver.
func NewWalker(resolver Resolver) *Walker {
	excluded := make(map[TypeID]bool, len(markerInterfaces))
	for _, id := range markerInterfaces {
		excluded[id] = true
	}

	return &Walker{
		resolver: resolver,
		excluded: excluded,
	}
}

// IsMarker reports whether id is one of the runtime marker interfaces.
func (w *Walker) IsMarker(id TypeID) bool {
	return w.excluded[id]
}

// Traverse returns the methods of top and of every ancestor, depth-first:
// own methods first, then each embedded interface in declaration order.
// Each ancestor is visited once even when it is embedded along several paths.
//
// An unresolvable ancestor raises one E002 attributed to top and its branch
// is skipped; embedded elements that are not named interfaces raise E001.
func (w *Walker) Traverse(ctx context.Context, top *InterfaceInfo, sink diagnostic.Sink) []MethodRef {
	t := &traversal{
		walker:  w,
		top:     top,
		sink:    sink,
		visited: map[TypeID]bool{top.ID: true},
	}

	t.visit(ctx, top, NewEmbedPath(top.ID))

	return t.refs
}

type traversal struct {
	walker  *Walker
	top     *InterfaceInfo
	sink    diagnostic.Sink
	visited map[TypeID]bool
	refs    []MethodRef
}

func (t *traversal) visit(ctx context.Context, info *InterfaceInfo, path EmbedPath) {
	for _, m := range info.Methods {
		t.refs = append(t.refs, MethodRef{Owner: info, Method: m, Path: path})
	}

	topLoc := diagnostic.Location{Interface: t.top.ID.String(), Pos: t.top.Pos}

	for _, embed := range info.Embeds {
		if embed.ID.IsZero() {
			diagnostic.Errorf(t.sink, diagnostic.CodeUnrecognizedMethod,
				diagnostic.Location{Interface: t.top.ID.String(), Pos: embed.Pos},
				"embedded element %s in %s is not a named interface", embed.Expr, info.ID.Short())

			continue
		}

		if t.walker.excluded[embed.ID] || t.visited[embed.ID] {
			continue
		}

		t.visited[embed.ID] = true
		next := path.Embed(embed.ID)

		ancestor, err := t.walker.resolver.Resolve(ctx, embed.ID)
		if err != nil {
			diagnostic.Errorf(t.sink, diagnostic.CodeUnresolvedAncestor, topLoc,
				"ancestor %s (via %s) could not be loaded: %v", embed.ID, next, err)

			continue
		}

		logctx.FromContext(ctx).Debug("resolved ancestor",
			"interface", t.top.ID.String(),
			"ancestor", embed.ID.String(),
			"origin", ancestor.Origin.String(),
			"depth", next.Depth())

		t.visit(ctx, ancestor, next)
	}
}
