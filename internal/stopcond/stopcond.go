// Package stopcond implements the Stop Condition capability set:
// { fulfilled?(context) -> bool, kind() -> tag }. EdgeCoverage is the
// mandatory built-in; VertexCoverage and the AND/OR/ReachedVertex/TimeBound
// compositions are optional extension points.
package stopcond

import (
	"time"

	"github.com/graphwalker/graphwalker-go/internal/modelctx"
)

// StopCondition is the capability set a stopping criterion must implement.
type StopCondition interface {
	Fulfilled(c *modelctx.Context) bool
	Kind() string
}

// EdgeCoverage is fulfilled when |{e : visited[e] > 0}| / |edges| >=
// Fraction. This is the mandatory built-in every implementation must
// support.
type EdgeCoverage struct {
	Fraction float64
}

func NewEdgeCoverage(fraction float64) EdgeCoverage { return EdgeCoverage{Fraction: fraction} }

func (e EdgeCoverage) Fulfilled(c *modelctx.Context) bool { return c.EdgeCoverage() >= e.Fraction }

func (e EdgeCoverage) Kind() string { return "edge_coverage" }

// VertexCoverage is fulfilled when |{v : visited[v] > 0}| / |vertices| >=
// Fraction, symmetric to EdgeCoverage.
type VertexCoverage struct {
	Fraction float64
}

func NewVertexCoverage(fraction float64) VertexCoverage { return VertexCoverage{Fraction: fraction} }

func (v VertexCoverage) Fulfilled(c *modelctx.Context) bool { return c.VertexCoverage() >= v.Fraction }

func (v VertexCoverage) Kind() string { return "vertex_coverage" }

// And is fulfilled when every child condition is fulfilled.
type And struct {
	Conditions []StopCondition
}

func (a And) Fulfilled(c *modelctx.Context) bool {
	for _, cond := range a.Conditions {
		if !cond.Fulfilled(c) {
			return false
		}
	}
	return true
}

func (a And) Kind() string { return "and" }

// Or is fulfilled when at least one child condition is fulfilled. An Or with
// no child conditions is fulfilled.
type Or struct {
	Conditions []StopCondition
}

func (o Or) Fulfilled(c *modelctx.Context) bool {
	for _, cond := range o.Conditions {
		if cond.Fulfilled(c) {
			return true
		}
	}
	return len(o.Conditions) == 0
}

func (o Or) Kind() string { return "or" }

// ReachedVertex is fulfilled once the named vertex has been visited at least
// once.
type ReachedVertex struct {
	VertexID string
}

func (r ReachedVertex) Fulfilled(c *modelctx.Context) bool { return c.Visited[r.VertexID] > 0 }

func (r ReachedVertex) Kind() string { return "reached_vertex" }

// TimeBound is fulfilled once Deadline has passed. It is seeded with a fixed
// deadline rather than a duration so its Fulfilled check never calls
// time.Now() from inside the engine's otherwise-deterministic stepping path
// except through this one explicitly time-based extension point.
type TimeBound struct {
	Deadline time.Time
}

func (t TimeBound) Fulfilled(c *modelctx.Context) bool { return !time.Now().Before(t.Deadline) }

func (t TimeBound) Kind() string { return "time" }
