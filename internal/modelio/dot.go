package modelio

import (
	"fmt"
	"io"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// WriteDOT writes one digraph per model: each vertex becomes a labelled node
// ("<id> [label=\"<name>\nid: <id>\"]"), each edge an arrow annotated with
// its name, id, optional guard, and optional action lines. Iteration is over
// the Model's insertion order, so output order is deterministic.
//
// Reading DOT back into a ModelSet is intentionally not implemented.
func WriteDOT(w io.Writer, set *domain.ModelSet) error {
	for _, m := range set.Models() {
		if err := writeModelDOT(w, m); err != nil {
			return domain.NewEngineError(domain.ErrConfig, "failed to write dot output", err)
		}
	}
	return nil
}

func writeModelDOT(w io.Writer, m *domain.Model) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n", m.Name()); err != nil {
		return err
	}

	for _, v := range m.Vertices() {
		if _, err := fmt.Fprintf(w, "  %s [label=\"%s\\nid: %s\"]\n", v.ID(), v.Name(), v.ID()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, e := range m.Edges() {
		label := fmt.Sprintf("%s\\nid: %s", e.Name(), e.ID())
		if e.HasGuard() {
			label += fmt.Sprintf("\\nGuard: %s", e.Guard())
		}
		for _, action := range e.Actions() {
			label += fmt.Sprintf("\\nAction: %s", action)
		}
		if _, err := fmt.Fprintf(w, "  %s -> %s [label=\"%s\"]\n", e.SourceVertexID(), e.TargetVertexID(), label); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}
