// Package modelio implements the thin plumbing around the core engine:
// reading a model set from its JSON wire document, writing it back out, and
// writing the textual (DOT) graph description.
package modelio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// wireVertex/wireEdge/wireModel/wireDocument mirror the model document's
// JSON shape exactly (camelCase on the wire).
type wireVertex struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	SharedState  string   `json:"sharedState,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Actions      []string `json:"actions,omitempty"`
}

type wireEdge struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	Guard          string   `json:"guard,omitempty"`
	SourceVertexID string   `json:"sourceVertexId"`
	TargetVertexID string   `json:"targetVertexId"`
	Requirements   []string `json:"requirements,omitempty"`
	Actions        []string `json:"actions,omitempty"`
}

type wireModel struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Generator string       `json:"generator,omitempty"`
	Actions   []string     `json:"actions,omitempty"`
	Vertices  []wireVertex `json:"vertices"`
	Edges     []wireEdge   `json:"edges"`
}

type wireDocument struct {
	StartElementID string      `json:"startElementId"`
	Models         []wireModel `json:"models"`
}

// ReadJSONFile reads a model document from path and builds a ModelSet,
// failing with a LoadError for duplicate model ids, duplicate element ids
// within a model, or dangling edge endpoints, and with a ConfigError for a
// missing startElementId or one that does not resolve to exactly one
// element.
func ReadJSONFile(path string) (*domain.ModelSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewEngineError(domain.ErrLoad, fmt.Sprintf("failed to read %q", path), err)
	}
	return ReadJSON(raw)
}

// ReadJSON parses raw JSON bytes in the model document's wire shape into a
// ModelSet.
func ReadJSON(raw []byte) (*domain.ModelSet, error) {
	var doc wireDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.NewEngineError(domain.ErrLoad, "malformed model document", err)
	}

	set := domain.NewModelSet(doc.StartElementID)
	for _, wm := range doc.Models {
		model := domain.NewModel(wm.ID, wm.Name, wm.Generator, wm.Actions)
		for _, wv := range wm.Vertices {
			v := domain.NewVertex(wv.ID, wv.Name, wv.SharedState, wv.Actions, wv.Requirements)
			if err := model.AddVertex(v); err != nil {
				return nil, err
			}
		}
		for _, we := range wm.Edges {
			e := domain.NewEdge(we.ID, we.Name, we.Guard, we.SourceVertexID, we.TargetVertexID, we.Actions, we.Requirements)
			if err := model.AddEdge(e); err != nil {
				return nil, err
			}
		}
		if err := model.ValidateEndpoints(); err != nil {
			return nil, err
		}
		if err := set.AddModel(model); err != nil {
			return nil, err
		}
	}

	set.BuildSharedIndex()
	if err := set.ValidateInvariants(); err != nil {
		return nil, err
	}
	return set, nil
}

// WriteJSON serializes set back into the wire shape, pretty-printed,
// preserving each collection's deterministic insertion order.
func WriteJSON(w io.Writer, set *domain.ModelSet) error {
	doc := wireDocument{StartElementID: set.StartElementID}
	for _, m := range set.Models() {
		wm := wireModel{ID: m.ID(), Name: m.Name(), Generator: m.GeneratorExpr(), Actions: m.Actions()}
		for _, v := range m.Vertices() {
			wm.Vertices = append(wm.Vertices, wireVertex{
				ID: v.ID(), Name: v.Name(), SharedState: v.SharedState(),
				Requirements: v.Requirements(), Actions: v.Actions(),
			})
		}
		for _, e := range m.Edges() {
			wm.Edges = append(wm.Edges, wireEdge{
				ID: e.ID(), Name: e.Name(), Guard: e.Guard(),
				SourceVertexID: e.SourceVertexID(), TargetVertexID: e.TargetVertexID(),
				Requirements: e.Requirements(), Actions: e.Actions(),
			})
		}
		doc.Models = append(doc.Models, wm)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return domain.NewEngineError(domain.ErrConfig, "failed to write model document", err)
	}
	return nil
}
