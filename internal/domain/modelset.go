package domain

import "fmt"

// ModelSet is the immutable, load-once collection of Models sharing a single
// start element and a shared-state namespace. Once constructed by the
// loader, lookups (OutEdges is on Model; Resolve and SharedStatePositions
// live here) take shared access only — no mutation post-load.
type ModelSet struct {
	StartElementID string

	modelOrder []string
	models     map[string]*Model

	// sharedIndex maps a shared-state label to the ordered list of
	// Positions carrying it, built once by BuildSharedIndex after every
	// model has been added.
	sharedIndex map[string][]Position
}

// NewModelSet constructs an empty ModelSet. Models are added with AddModel,
// then BuildSharedIndex is called once loading completes.
func NewModelSet(startElementID string) *ModelSet {
	return &ModelSet{
		StartElementID: startElementID,
		models:         make(map[string]*Model),
		sharedIndex:    make(map[string][]Position),
	}
}

// AddModel registers a model. Returns a LoadError if its id collides with an
// already-registered model.
func (s *ModelSet) AddModel(m *Model) error {
	if _, exists := s.models[m.ID()]; exists {
		return NewEngineError(ErrLoad, fmt.Sprintf("duplicate model id %q", m.ID()), nil)
	}
	s.models[m.ID()] = m
	s.modelOrder = append(s.modelOrder, m.ID())
	return nil
}

// Model looks up a model by id.
func (s *ModelSet) Model(id string) (*Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Models returns every model in insertion order.
func (s *ModelSet) Models() []*Model {
	out := make([]*Model, 0, len(s.modelOrder))
	for _, id := range s.modelOrder {
		out = append(out, s.models[id])
	}
	return out
}

// Resolve locates the model and kind (vertex or edge) that elementID names.
// A valid ModelSet resolves the start element to exactly one (model_id,
// kind) pair; Resolve itself returns every match it finds so the caller
// (Machine.Reset) can detect and reject ambiguity.
func (s *ModelSet) Resolve(elementID string) []ResolvedElement {
	var matches []ResolvedElement
	for _, id := range s.modelOrder {
		m := s.models[id]
		if kind, ok := m.HasElement(elementID); ok {
			matches = append(matches, ResolvedElement{ModelID: id, Kind: kind})
		}
	}
	return matches
}

// ResolvedElement is one (model_id, kind) match produced by Resolve.
type ResolvedElement struct {
	ModelID string
	Kind    ElementKind
}

// BuildSharedIndex computes the shared-state index: every vertex carrying a
// non-empty SharedState label, across all models, is added — in (model
// order, vertex order) — to that label's Position list.
func (s *ModelSet) BuildSharedIndex() {
	s.sharedIndex = make(map[string][]Position)
	for _, mid := range s.modelOrder {
		m := s.models[mid]
		for _, v := range m.Vertices() {
			if v.SharedState() == "" {
				continue
			}
			label := v.SharedState()
			s.sharedIndex[label] = append(s.sharedIndex[label], Position{ModelID: mid, ElementID: v.ID()})
		}
	}
}

// SharedStatePositions returns the ordered Positions carrying shared-state
// label, or nil if the label is unused.
func (s *ModelSet) SharedStatePositions(label string) []Position {
	return s.sharedIndex[label]
}

// ValidateInvariants checks structural well-formedness beyond what's already
// enforced incrementally by AddVertex/AddEdge/AddModel: dangling edge
// endpoints and start-element resolution.
func (s *ModelSet) ValidateInvariants() error {
	if len(s.models) == 0 {
		return NewEngineError(ErrConfig, "model set has no models", nil)
	}
	for _, m := range s.models {
		if err := m.ValidateEndpoints(); err != nil {
			return err
		}
	}
	if s.StartElementID == "" {
		return NewEngineError(ErrConfig, "startElementId is empty", nil)
	}
	matches := s.Resolve(s.StartElementID)
	if len(matches) == 0 {
		return NewEngineError(ErrConfig, fmt.Sprintf("startElementId %q does not resolve to any element", s.StartElementID), nil)
	}
	if len(matches) > 1 {
		return NewEngineError(ErrConfig, fmt.Sprintf("startElementId %q resolves to %d elements, expected exactly one", s.StartElementID, len(matches)), nil)
	}
	return nil
}
