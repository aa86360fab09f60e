// Package modelctx implements the per-model Execution Context and declares
// the narrow interfaces (Engine, Generator) that let a Context's attached
// generator reach back into the owning Machine without an import cycle
// between this package and internal/walkgen/internal/machine.
//
// Context state is a plain, non-event-sourced state object: direct
// Set/Get-shaped mutation, no event log, no aggregate-command indirection —
// matching a single-writer, synchronous execution model.
package modelctx

import (
	"fmt"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// Engine is the narrow read surface a Generator needs from the Machine that
// owns it: topology lookups and the Machine's own deterministic RNG. The RNG
// is a Machine field, never a process-wide global.
type Engine interface {
	OutEdges(modelID, vertexID string) []*domain.Edge
	SharedStatePositions(label string) []domain.Position
	// Intn returns a uniformly distributed integer in [0, n) drawn from
	// the Machine's seeded RNG.
	Intn(n int) int
}

// Generator is the capability set a walk-generation strategy provides: pick
// the next position, report fulfilment, and identify the strategy's kind.
type Generator interface {
	Pick(engine Engine, c *Context, current domain.Position) (domain.Position, error)
	Fulfilled(c *Context) bool
	Kind() string
}

// Context is the per-model execution state the Machine owns and mutates.
// Contexts do not own models — they hold a read-only handle. A Machine is
// the Context's sole writer.
type Context struct {
	ModelID        string
	Model          *domain.Model
	Variables      *domain.VariableSet
	Visited        map[string]uint
	CoverageTarget float64
	Gen            Generator
}

// New constructs a Context for model, with an empty variable bag, no visited
// counters yet (populated by ResetVisited), and the default coverage target
// of 1.0.
func New(modelID string, model *domain.Model, gen Generator) *Context {
	return &Context{
		ModelID:        modelID,
		Model:          model,
		Variables:      domain.NewVariableSet(),
		Visited:        make(map[string]uint),
		CoverageTarget: 1.0,
		Gen:            gen,
	}
}

// ResetVisited (re)initializes Visited with a zero count for every vertex
// and edge of the owning model.
func (c *Context) ResetVisited() {
	c.Visited = make(map[string]uint, len(c.Model.Vertices())+len(c.Model.Edges()))
	for _, v := range c.Model.Vertices() {
		c.Visited[v.ID()] = 0
	}
	for _, e := range c.Model.Edges() {
		c.Visited[e.ID()] = 0
	}
}

// MarkVisited increments the visited count for elementID. Returns a
// StateError if elementID is not a key of Visited — should not happen after
// a proper ResetVisited.
func (c *Context) MarkVisited(elementID string) error {
	if _, ok := c.Visited[elementID]; !ok {
		return domain.NewEngineError(domain.ErrState, fmt.Sprintf("element %q not present in context %q's visited map", elementID, c.ModelID), nil)
	}
	c.Visited[elementID]++
	return nil
}

// VisitedFraction computes |{k : visited[k] > 0}| / |visited|.
func (c *Context) VisitedFraction() float64 {
	if len(c.Visited) == 0 {
		return 1.0
	}
	covered := 0
	for _, n := range c.Visited {
		if n > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(c.Visited))
}

// Fulfilled reports whether this context's coverage target is met AND its
// attached generator's own stop conditions are satisfied. A generator's
// fulfilled? is a conjunction over stop conditions; the context additionally
// requires its own coverage_target be met.
func (c *Context) Fulfilled() bool {
	if c.VisitedFraction() < c.CoverageTarget {
		return false
	}
	if c.Gen == nil {
		return true
	}
	return c.Gen.Fulfilled(c)
}

// EdgeCoverage returns |{e : visited[e] > 0}| / |edges|.
func (c *Context) EdgeCoverage() float64 {
	edges := c.Model.Edges()
	if len(edges) == 0 {
		return 1.0
	}
	covered := 0
	for _, e := range edges {
		if c.Visited[e.ID()] > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(edges))
}

// VertexCoverage returns |{v : visited[v] > 0}| / |vertices|, symmetric to
// EdgeCoverage.
func (c *Context) VertexCoverage() float64 {
	vertices := c.Model.Vertices()
	if len(vertices) == 0 {
		return 1.0
	}
	covered := 0
	for _, v := range vertices {
		if c.Visited[v.ID()] > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(vertices))
}
