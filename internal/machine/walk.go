package machine

import (
	"context"
	"encoding/json"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// Walk is the offline driver: Reset, then repeatedly Step until every
// context is fulfilled, emitting each Step's JSON form to sink. On any error
// the Machine is left Failed and the error is returned.
func (m *Machine) Walk(sink io.Writer) error {
	ctx, span := m.tracer.Start(context.Background(), "engine.walk")
	defer span.End()
	_ = ctx

	if err := m.Reset(); err != nil {
		return err
	}

	encoder := json.NewEncoder(sink)

	for {
		if m.Fulfilled() {
			m.status = StatusEnded
			span.SetAttributes(attribute.Int("profile.steps", m.profile.Len()))
			return nil
		}

		step, err := m.Step()
		if step != nil {
			if encErr := encoder.Encode(step); encErr != nil {
				m.log.Error().Err(encErr).Msg("failed to encode step to sink")
			}
		}
		if err != nil {
			return err
		}
	}
}

// WalkProfile runs Walk with its JSON stream discarded and returns the
// resulting Profile directly, for callers (such as tests) that want the
// Steps without going through a byte stream.
func (m *Machine) WalkProfile() (*domain.Profile, error) {
	if err := m.Walk(io.Discard); err != nil {
		return m.Profile(), err
	}
	return m.Profile(), nil
}
