package machine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// buildLoopModelSet builds a single-model ModelSet: v1 -(e1)-> v2 -(e2)-> v1,
// with no guards or actions, so a coverage-based Walk terminates once every
// vertex and edge has been visited.
func buildLoopModelSet(t *testing.T) *domain.ModelSet {
	t.Helper()
	m := domain.NewModel("m1", "Loop", "", nil)
	assert.NoError(t, m.AddVertex(domain.NewVertex("v1", "Start", "", nil, nil)))
	assert.NoError(t, m.AddVertex(domain.NewVertex("v2", "Mid", "", nil, nil)))
	assert.NoError(t, m.AddEdge(domain.NewEdge("e1", "Forward", "", "v1", "v2", nil, nil)))
	assert.NoError(t, m.AddEdge(domain.NewEdge("e2", "Back", "", "v2", "v1", nil, nil)))

	set := domain.NewModelSet("v1")
	assert.NoError(t, set.AddModel(m))
	return set
}

func newTestMachine() *Machine {
	return New(zerolog.Nop())
}

func TestMachine_LoadModels_Invalid(t *testing.T) {
	m := newTestMachine()
	set := domain.NewModelSet("ghost")

	err := m.LoadModels(set)
	assert.Error(t, err)
	assert.Equal(t, StatusNotStarted, m.Status())
}

func TestMachine_Step_WithoutResetIsStateError(t *testing.T) {
	m := newTestMachine()
	set := buildLoopModelSet(t)
	assert.NoError(t, m.LoadModels(set))

	_, err := m.Step()
	assert.Error(t, err)
	code, _ := domain.Code(err)
	assert.Equal(t, domain.ErrState, code)
}

func TestMachine_Reset_TransitionsToRunning(t *testing.T) {
	m := newTestMachine()
	set := buildLoopModelSet(t)
	assert.NoError(t, m.LoadModels(set))
	assert.NoError(t, m.Reset())
	assert.Equal(t, StatusRunning, m.Status())
	assert.NotEmpty(t, m.RunID())
}

func TestMachine_Step_RecordsStepAndAdvancesPosition(t *testing.T) {
	m := newTestMachine()
	m.Seed(42)
	set := buildLoopModelSet(t)
	assert.NoError(t, m.LoadModels(set))
	assert.NoError(t, m.Reset())

	step, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, "v1", step.Position.ElementID)
	assert.Equal(t, "Start", step.ElementName)

	step2, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, "e1", step2.Position.ElementID)

	assert.Equal(t, 2, m.Profile().Len())
}

func TestMachine_Walk_TerminatesOnFullEdgeCoverage(t *testing.T) {
	m := newTestMachine()
	m.Seed(7)
	set := buildLoopModelSet(t)
	assert.NoError(t, m.LoadModels(set))

	profile, err := m.WalkProfile()
	assert.NoError(t, err)
	assert.Equal(t, StatusEnded, m.Status())
	assert.True(t, profile.Len() > 0)

	visitedEdges := map[string]bool{}
	for _, step := range profile.Steps {
		visitedEdges[step.Position.ElementID] = true
	}
	assert.True(t, visitedEdges["e1"])
	assert.True(t, visitedEdges["e2"])
}

func TestMachine_SameSeed_ProducesSameWalk(t *testing.T) {
	set1 := buildLoopModelSet(t)
	m1 := newTestMachine()
	m1.Seed(99)
	assert.NoError(t, m1.LoadModels(set1))
	p1, err := m1.WalkProfile()
	assert.NoError(t, err)

	set2 := buildLoopModelSet(t)
	m2 := newTestMachine()
	m2.Seed(99)
	assert.NoError(t, m2.LoadModels(set2))
	p2, err := m2.WalkProfile()
	assert.NoError(t, err)

	assert.Equal(t, len(p1.Steps), len(p2.Steps))
	for i := range p1.Steps {
		assert.Equal(t, p1.Steps[i].Position, p2.Steps[i].Position)
	}
}

func TestMachine_CulDeSac_EndsInFailed(t *testing.T) {
	m := newTestMachine()
	isolated := domain.NewModel("m1", "Isolated", "", nil)
	assert.NoError(t, isolated.AddVertex(domain.NewVertex("v1", "", "", nil, nil)))
	set := domain.NewModelSet("v1")
	assert.NoError(t, set.AddModel(isolated))
	assert.NoError(t, m.LoadModels(set))
	assert.NoError(t, m.Reset())

	_, err := m.Step()
	assert.Error(t, err)
	assert.Equal(t, StatusFailed, m.Status())
	code, _ := domain.Code(err)
	assert.Equal(t, domain.ErrCulDeSac, code)
}
