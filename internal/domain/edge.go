package domain

// Edge is a transition between two vertices within one Model. Edges are
// immutable once built by the loader; they reference their endpoints by id,
// never by pointer, so the Model stays the sole owner of both vertices and
// edges.
type Edge struct {
	id             string
	name           string
	guard          string
	actions        []string
	requirements   []string
	sourceVertexID string
	targetVertexID string
}

// NewEdge constructs an Edge. guard may be empty, meaning the edge is always
// selectable.
func NewEdge(id, name, guard, sourceVertexID, targetVertexID string, actions, requirements []string) *Edge {
	return &Edge{
		id:             id,
		name:           name,
		guard:          guard,
		sourceVertexID: sourceVertexID,
		targetVertexID: targetVertexID,
		actions:        append([]string(nil), actions...),
		requirements:   append([]string(nil), requirements...),
	}
}

// ID returns the edge id, unique within its Model.
func (e *Edge) ID() string { return e.id }

// Name returns the display label, possibly empty.
func (e *Edge) Name() string { return e.name }

// Guard returns the guard expression, empty if the edge is unconditionally
// selectable.
func (e *Edge) Guard() string { return e.guard }

// HasGuard reports whether the edge carries a guard expression.
func (e *Edge) HasGuard() bool { return e.guard != "" }

// Actions returns the ordered actions executed, with side effects, when the
// edge is traversed.
func (e *Edge) Actions() []string { return e.actions }

// Requirements returns the informational requirement labels.
func (e *Edge) Requirements() []string { return e.requirements }

// SourceVertexID returns the id of the edge's origin vertex.
func (e *Edge) SourceVertexID() string { return e.sourceVertexID }

// TargetVertexID returns the id of the edge's destination vertex.
func (e *Edge) TargetVertexID() string { return e.targetVertexID }
