package domain

// Vertex is an observable state of the system under test. Immutable once
// built by the loader; a Machine never mutates a Vertex, only
// the Context's visited counters and variables that reference it by id.
type Vertex struct {
	id           string
	name         string
	sharedState  string
	actions      []string
	requirements []string
}

// NewVertex constructs a Vertex. actions and requirements are copied to keep
// the Vertex immutable against later mutation of the caller's slices.
func NewVertex(id, name, sharedState string, actions, requirements []string) *Vertex {
	return &Vertex{
		id:           id,
		name:         name,
		sharedState:  sharedState,
		actions:      append([]string(nil), actions...),
		requirements: append([]string(nil), requirements...),
	}
}

// ID returns the vertex id, unique within its Model.
func (v *Vertex) ID() string { return v.id }

// Name returns the display label, possibly empty.
func (v *Vertex) Name() string { return v.name }

// SharedState returns the shared-state label, empty if the vertex carries
// none.
func (v *Vertex) SharedState() string { return v.sharedState }

// Actions returns the ordered actions executed, with side effects, when the
// vertex is entered.
func (v *Vertex) Actions() []string { return v.actions }

// Requirements returns the informational requirement labels. The engine
// never enforces these.
func (v *Vertex) Requirements() []string { return v.requirements }
