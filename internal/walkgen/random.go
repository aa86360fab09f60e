// Package walkgen implements the Generator strategies that pick a Context's
// next position. Random is the mandatory built-in.
package walkgen

import (
	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/eval"
	"github.com/graphwalker/graphwalker-go/internal/modelctx"
	"github.com/graphwalker/graphwalker-go/internal/stopcond"
)

// Random is the mandatory generator algorithm: shared-state jump candidates
// plus guard-qualified out-edges, picked uniformly at random via the owning
// Machine's RNG.
type Random struct {
	StopConditions []stopcond.StopCondition
	Evaluator      *eval.Evaluator
	Log            zerolog.Logger
}

// NewRandom constructs the default generator attached to every context on
// load: random selection with a mandatory 100% edge-coverage stop
// condition.
func NewRandom(evaluator *eval.Evaluator, log zerolog.Logger, conditions ...stopcond.StopCondition) *Random {
	if len(conditions) == 0 {
		conditions = []stopcond.StopCondition{stopcond.NewEdgeCoverage(1.0)}
	}
	return &Random{StopConditions: conditions, Evaluator: evaluator, Log: log}
}

// Pick implements the generator's selection algorithm.
func (r *Random) Pick(engine modelctx.Engine, c *modelctx.Context, current domain.Position) (domain.Position, error) {
	vertex, ok := c.Model.Vertex(current.ElementID)
	if !ok {
		return domain.Position{}, domain.NewEngineError(domain.ErrState, "generator invoked on a non-vertex position", nil)
	}

	var candidates []domain.Position

	if label := vertex.SharedState(); label != "" {
		for _, pos := range engine.SharedStatePositions(label) {
			if pos.Equal(current) {
				continue
			}
			candidates = append(candidates, pos)
		}
	}

	for _, e := range engine.OutEdges(current.ModelID, current.ElementID) {
		if !e.HasGuard() {
			candidates = append(candidates, domain.Position{ModelID: current.ModelID, ElementID: e.ID()})
			continue
		}
		ok, err := r.Evaluator.EvalBool(c.Variables, e.Guard())
		if err != nil {
			// Any evaluation error — compile failure, type mismatch, or a
			// missing variable — makes the edge selectable rather than
			// excluded, and is logged at Warn with the guard and edge id.
			r.Log.Warn().Str("guard", e.Guard()).Str("element", e.ID()).Err(err).Msg("guard evaluation failed, treating edge as selectable")
			candidates = append(candidates, domain.Position{ModelID: current.ModelID, ElementID: e.ID()})
			continue
		}
		if ok {
			candidates = append(candidates, domain.Position{ModelID: current.ModelID, ElementID: e.ID()})
		}
	}

	if len(candidates) == 0 {
		return domain.Position{}, domain.NewEngineError(domain.ErrCulDeSac, "vertex "+current.ElementID+" has no selectable successor", nil)
	}

	idx := engine.Intn(len(candidates))
	return candidates[idx], nil
}

// Fulfilled is the conjunction over the generator's stop conditions.
func (r *Random) Fulfilled(c *modelctx.Context) bool {
	for _, cond := range r.StopConditions {
		if !cond.Fulfilled(c) {
			return false
		}
	}
	return true
}

// Kind identifies this strategy for introspection.
func (r *Random) Kind() string { return "random" }
