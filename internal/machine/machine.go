// Package machine implements the Machine: the orchestrator that owns every
// Context, the current position, the walk Profile, and the deterministic
// RNG, and drives load -> reset -> step* -> done.
package machine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/eval"
	"github.com/graphwalker/graphwalker-go/internal/modelctx"
	"github.com/graphwalker/graphwalker-go/internal/walkgen"
)

// Status enumerates the Machine's lifecycle states.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusEnded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "NotStarted"
	case StatusRunning:
		return "Running"
	case StatusEnded:
		return "Ended"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Machine is not safe for concurrent use; the Online Session
// (internal/session) is the only component that wraps it behind a mutex.
type Machine struct {
	log       zerolog.Logger
	evaluator *eval.Evaluator
	tracer    trace.Tracer

	set          *domain.ModelSet
	contexts     map[string]*modelctx.Context
	contextOrder []string

	startPos   domain.Position
	currentPos domain.Position
	status     Status
	profile    domain.Profile

	rng       *rand.Rand
	seedValue uint64
	runID     string
}

// New constructs an empty Machine (status NotStarted). log is used for every
// structured log line the engine emits, including permissive
// guard-evaluation warnings.
func New(log zerolog.Logger) *Machine {
	return &Machine{
		log:       log,
		evaluator: eval.New(log),
		tracer:    otel.Tracer("graphwalker-go/machine"),
		status:    StatusNotStarted,
		rng:       rand.New(rand.NewSource(1)),
	}
}

// Status returns the Machine's current lifecycle state.
func (m *Machine) Status() Status { return m.status }

// Profile returns the walk's recorded Steps so far.
func (m *Machine) Profile() *domain.Profile { return &m.profile }

// Seed configures the deterministic RNG. It must be called before
// Reset/Walk for a reproducible Profile.
func (m *Machine) Seed(seed uint64) {
	m.seedValue = seed
	m.rng = rand.New(rand.NewSource(int64(seed)))
}

// Intn draws a uniformly distributed integer in [0, n) from the Machine's
// RNG. It implements modelctx.Engine for the generator's Pick step. The RNG
// is a Machine field, never a process-wide global.
func (m *Machine) Intn(n int) int { return m.rng.Intn(n) }

// OutEdges implements modelctx.Engine by delegating to the loaded ModelSet.
func (m *Machine) OutEdges(modelID, vertexID string) []*domain.Edge {
	model, ok := m.set.Model(modelID)
	if !ok {
		return nil
	}
	return model.OutEdges(vertexID)
}

// SharedStatePositions implements modelctx.Engine by delegating to the
// loaded ModelSet.
func (m *Machine) SharedStatePositions(label string) []domain.Position {
	return m.set.SharedStatePositions(label)
}

// LoadModels validates the loaded ModelSet and, on success, builds one
// Context per model with the default random/100%-edge-coverage generator.
// On validation failure the Machine is left untouched — NotStarted, with no
// contexts added.
func (m *Machine) LoadModels(set *domain.ModelSet) error {
	set.BuildSharedIndex()
	if err := set.ValidateInvariants(); err != nil {
		return err
	}

	contexts := make(map[string]*modelctx.Context, len(set.Models()))
	order := make([]string, 0, len(set.Models()))
	for _, mdl := range set.Models() {
		gen := walkgen.NewRandom(m.evaluator, m.log)
		contexts[mdl.ID()] = modelctx.New(mdl.ID(), mdl, gen)
		order = append(order, mdl.ID())
	}

	m.set = set
	m.contexts = contexts
	m.contextOrder = order
	m.startPos = domain.Position{ElementID: set.StartElementID}
	return nil
}

// Reset transitions the Machine to Running, or to Failed on any reset error
// (no models loaded, a failed model action, or an unresolvable start
// element).
func (m *Machine) Reset() error {
	m.runID = uuid.NewString()
	m.log.Info().Str("runId", m.runID).Uint64("seed", m.seedValue).Msg("resetting machine")

	if m.set == nil {
		m.status = StatusFailed
		return domain.NewEngineError(domain.ErrConfig, "no models loaded", nil)
	}

	for _, id := range m.contextOrder {
		ctx := m.contexts[id]
		ctx.Variables.Clear()
		for _, action := range ctx.Model.Actions() {
			if err := m.evaluator.Bind(ctx.Variables, action); err != nil {
				m.status = StatusFailed
				return domain.NewEngineError(domain.ErrAction, fmt.Sprintf("model %q initialization action failed", id), err)
			}
		}
	}

	if m.startPos.ElementID == "" {
		m.status = StatusFailed
		return domain.NewEngineError(domain.ErrConfig, "startElementId is empty", nil)
	}

	matches := m.set.Resolve(m.startPos.ElementID)
	if len(matches) != 1 {
		m.status = StatusFailed
		return domain.NewEngineError(domain.ErrConfig, fmt.Sprintf("startElementId %q does not resolve to exactly one element (found %d)", m.startPos.ElementID, len(matches)), nil)
	}
	m.startPos.ModelID = matches[0].ModelID

	for _, id := range m.contextOrder {
		m.contexts[id].ResetVisited()
	}

	m.currentPos = m.startPos
	m.status = StatusRunning
	return nil
}

// Step advances the walk by exactly one position: log, mutate visited,
// execute actions, compute next position. Preconditions:
// Status() == StatusRunning.
func (m *Machine) Step() (*domain.Step, error) {
	if m.status != StatusRunning {
		return nil, domain.NewEngineError(domain.ErrState, fmt.Sprintf("step() called while status is %s, expected Running", m.status), nil)
	}

	_, span := m.tracer.Start(context.Background(), "engine.step", trace.WithAttributes(
		attribute.String("position.model_id", m.currentPos.ModelID),
		attribute.String("position.element_id", m.currentPos.ElementID),
	))
	defer span.End()

	p := m.currentPos
	model, ok := m.set.Model(p.ModelID)
	if !ok {
		m.status = StatusFailed
		return nil, domain.NewEngineError(domain.ErrState, fmt.Sprintf("current position names unknown model %q", p.ModelID), nil)
	}
	ctx := m.contexts[p.ModelID]

	modelName, elementName, actions := resolveElement(model, p.ElementID)
	step := domain.Step{
		ModelName:   modelName,
		ElementName: elementName,
		Position:    p,
		Data:        m.evaluator.Iter(ctx.Variables),
	}
	m.profile.Append(step)

	if err := ctx.MarkVisited(p.ElementID); err != nil {
		m.status = StatusFailed
		return &step, err
	}

	for _, action := range actions {
		if err := m.evaluator.Bind(ctx.Variables, action); err != nil {
			m.status = StatusFailed
			return &step, domain.NewEngineError(domain.ErrAction, fmt.Sprintf("action on %q failed", p.ElementID), err)
		}
	}

	next, err := m.computeNext(model, p, ctx)
	if err != nil {
		m.status = StatusFailed
		return &step, err
	}
	m.currentPos = next

	return &step, nil
}

func (m *Machine) computeNext(model *domain.Model, p domain.Position, ctx *modelctx.Context) (domain.Position, error) {
	if edge, ok := model.Edge(p.ElementID); ok {
		return domain.Position{ModelID: p.ModelID, ElementID: edge.TargetVertexID()}, nil
	}
	if ctx.Gen == nil {
		return domain.Position{}, domain.NewEngineError(domain.ErrConfig, fmt.Sprintf("context %q has no attached generator", p.ModelID), nil)
	}
	return ctx.Gen.Pick(m, ctx, p)
}

func resolveElement(model *domain.Model, elementID string) (modelName, elementName string, actions []string) {
	modelName = model.Name()
	if e, ok := model.Edge(elementID); ok {
		return modelName, e.Name(), e.Actions()
	}
	if v, ok := model.Vertex(elementID); ok {
		return modelName, v.Name(), v.Actions()
	}
	return modelName, "", nil
}

// Fulfilled reports whether every context has met its coverage target and
// its generator's stop conditions. The Machine as a whole is fulfilled when
// all of its contexts are.
func (m *Machine) Fulfilled() bool {
	for _, id := range m.contextOrder {
		if !m.contexts[id].Fulfilled() {
			return false
		}
	}
	return true
}

// RunID returns the identifier generated by the most recent Reset call. It
// appears on the reset log line; it is not stored in the Profile.
func (m *Machine) RunID() string { return m.runID }
