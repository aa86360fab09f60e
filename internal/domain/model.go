package domain

import "fmt"

// Model is a directed graph of vertices and edges. Vertices and edges are
// keyed by id, never referenced by pointer from one another — the Model is
// the sole owner, and edges address their endpoints by id.
//
// Insertion order is tracked alongside each map so that every iteration helper
// (Vertices, Edges, OutEdges) is a pure function of the order elements were
// added by the loader, which is itself a pure function of the input JSON
// document's array order.
type Model struct {
	id            string
	name          string
	generatorExpr string
	actions       []string

	vertexOrder []string
	vertices    map[string]*Vertex

	edgeOrder []string
	edges     map[string]*Edge
}

// NewModel constructs an empty Model ready to receive vertices and edges via
// AddVertex/AddEdge.
func NewModel(id, name, generatorExpr string, actions []string) *Model {
	return &Model{
		id:            id,
		name:          name,
		generatorExpr: generatorExpr,
		actions:       append([]string(nil), actions...),
		vertices:      make(map[string]*Vertex),
		edges:         make(map[string]*Edge),
	}
}

// ID returns the model id, unique across its ModelSet.
func (m *Model) ID() string { return m.id }

// Name returns the display name, possibly empty.
func (m *Model) Name() string { return m.name }

// GeneratorExpr returns the model's informational generator string. The
// default implementation always attaches the random/100%-edge-coverage
// generator regardless of this field's contents; parsing it into a selectable
// strategy is left open for a future generator registry.
func (m *Model) GeneratorExpr() string { return m.generatorExpr }

// Actions returns the model-level initialization actions, run once on reset.
func (m *Model) Actions() []string { return m.actions }

// AddVertex registers a vertex. Returns a LoadError if the id collides with
// an existing vertex or edge id in this model.
func (m *Model) AddVertex(v *Vertex) error {
	if _, exists := m.vertices[v.ID()]; exists {
		return NewEngineError(ErrLoad, fmt.Sprintf("duplicate vertex id %q in model %q", v.ID(), m.id), nil)
	}
	if _, exists := m.edges[v.ID()]; exists {
		return NewEngineError(ErrLoad, fmt.Sprintf("element id %q in model %q collides across vertices and edges", v.ID(), m.id), nil)
	}
	m.vertices[v.ID()] = v
	m.vertexOrder = append(m.vertexOrder, v.ID())
	return nil
}

// AddEdge registers an edge. Returns a LoadError if the id collides with an
// existing vertex or edge id in this model. Endpoints are not checked here;
// ValidateEndpoints does that once every vertex has been added, as ReadJSON
// (internal/modelio) does after adding a model's vertices and edges.
func (m *Model) AddEdge(e *Edge) error {
	if _, exists := m.edges[e.ID()]; exists {
		return NewEngineError(ErrLoad, fmt.Sprintf("duplicate edge id %q in model %q", e.ID(), m.id), nil)
	}
	if _, exists := m.vertices[e.ID()]; exists {
		return NewEngineError(ErrLoad, fmt.Sprintf("element id %q in model %q collides across vertices and edges", e.ID(), m.id), nil)
	}
	m.edges[e.ID()] = e
	m.edgeOrder = append(m.edgeOrder, e.ID())
	return nil
}

// Vertex looks up a vertex by id.
func (m *Model) Vertex(id string) (*Vertex, bool) {
	v, ok := m.vertices[id]
	return v, ok
}

// Edge looks up an edge by id.
func (m *Model) Edge(id string) (*Edge, bool) {
	e, ok := m.edges[id]
	return e, ok
}

// HasElement reports whether id names either a vertex or an edge of this
// model, and which.
func (m *Model) HasElement(id string) (kind ElementKind, ok bool) {
	if _, exists := m.vertices[id]; exists {
		return KindVertex, true
	}
	if _, exists := m.edges[id]; exists {
		return KindEdge, true
	}
	return "", false
}

// Vertices returns every vertex in insertion order.
func (m *Model) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(m.vertexOrder))
	for _, id := range m.vertexOrder {
		out = append(out, m.vertices[id])
	}
	return out
}

// Edges returns every edge in insertion order.
func (m *Model) Edges() []*Edge {
	out := make([]*Edge, 0, len(m.edgeOrder))
	for _, id := range m.edgeOrder {
		out = append(out, m.edges[id])
	}
	return out
}

// OutEdges returns every edge whose source is vertexID, in deterministic
// insertion order.
func (m *Model) OutEdges(vertexID string) []*Edge {
	out := make([]*Edge, 0)
	for _, id := range m.edgeOrder {
		e := m.edges[id]
		if e.SourceVertexID() == vertexID {
			out = append(out, e)
		}
	}
	return out
}

// ValidateEndpoints checks that every edge's endpoints refer to existing
// vertex ids within this model.
func (m *Model) ValidateEndpoints() error {
	for _, id := range m.edgeOrder {
		e := m.edges[id]
		if _, ok := m.vertices[e.SourceVertexID()]; !ok {
			return NewEngineError(ErrLoad, fmt.Sprintf("edge %q in model %q has dangling source vertex %q", e.ID(), m.id, e.SourceVertexID()), nil)
		}
		if _, ok := m.vertices[e.TargetVertexID()]; !ok {
			return NewEngineError(ErrLoad, fmt.Sprintf("edge %q in model %q has dangling target vertex %q", e.ID(), m.id, e.TargetVertexID()), nil)
		}
	}
	return nil
}

// ShortestPath returns the sequence of vertex ids on a shortest path from
// fromVertexID to toVertexID (breadth-first, edges traversed in each
// vertex's out_edges order so the result is a pure function of the model's
// insertion order). Returns a ConfigError-coded EngineError if either endpoint
// is not a vertex of this model, or a nil, non-error result if no path
// exists. It is a read-only query and does not participate in stepping.
func (m *Model) ShortestPath(fromVertexID, toVertexID string) ([]string, error) {
	if _, ok := m.vertices[fromVertexID]; !ok {
		return nil, NewEngineError(ErrConfig, fmt.Sprintf("shortest path: unknown start vertex %q", fromVertexID), nil)
	}
	if _, ok := m.vertices[toVertexID]; !ok {
		return nil, NewEngineError(ErrConfig, fmt.Sprintf("shortest path: unknown end vertex %q", toVertexID), nil)
	}
	if fromVertexID == toVertexID {
		return []string{fromVertexID}, nil
	}

	visited := map[string]bool{fromVertexID: true}
	prev := map[string]string{}
	queue := []string{fromVertexID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range m.OutEdges(cur) {
			next := e.TargetVertexID()
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == toVertexID {
				return recreatePath(prev, fromVertexID, toVertexID), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, nil
}

func recreatePath(prev map[string]string, from, to string) []string {
	path := []string{to}
	for path[len(path)-1] != from {
		path = append(path, prev[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ElementKind distinguishes a vertex position from an edge position.
type ElementKind string

const (
	KindVertex ElementKind = "vertex"
	KindEdge   ElementKind = "edge"
)
