package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/machine"
)

func buildSessionMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m := domain.NewModel("m1", "M", "", nil)
	assert.NoError(t, m.AddVertex(domain.NewVertex("v1", "", "", nil, nil)))
	assert.NoError(t, m.AddVertex(domain.NewVertex("v2", "", "", nil, nil)))
	assert.NoError(t, m.AddEdge(domain.NewEdge("e1", "", "", "v1", "v2", nil, nil)))
	assert.NoError(t, m.AddEdge(domain.NewEdge("e2", "", "", "v2", "v1", nil, nil)))

	set := domain.NewModelSet("v1")
	assert.NoError(t, set.AddModel(m))

	engine := machine.New(zerolog.Nop())
	assert.NoError(t, engine.LoadModels(set))
	return engine
}

func TestSession_HasNext_FalseBeforeReset(t *testing.T) {
	sess := New(buildSessionMachine(t))
	assert.False(t, sess.HasNext())
}

func TestSession_GetNext_BeforeResetIsTransportError(t *testing.T) {
	sess := New(buildSessionMachine(t))
	_, err := sess.GetNext()
	assert.Error(t, err)
	code, _ := domain.Code(err)
	assert.Equal(t, domain.ErrTransport, code)
}

func TestSession_ResetThenGetNext(t *testing.T) {
	sess := New(buildSessionMachine(t))
	assert.NoError(t, sess.Reset())
	assert.True(t, sess.HasNext())

	step, err := sess.GetNext()
	assert.NoError(t, err)
	assert.Equal(t, "v1", step.Position.ElementID)
}

func TestSession_GetNext_UntilFulfilled(t *testing.T) {
	sess := New(buildSessionMachine(t))
	assert.NoError(t, sess.Reset())

	count := 0
	for sess.HasNext() {
		_, err := sess.GetNext()
		assert.NoError(t, err)
		count++
		if count > 100 {
			t.Fatal("session did not reach fulfilment within 100 steps")
		}
	}
	assert.True(t, count > 0)
}
