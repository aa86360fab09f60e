package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildSampleModel() *Model {
	m := NewModel("m1", "Login", "random(edge_coverage(100))", nil)
	_ = m.AddVertex(NewVertex("v_start", "Start", "", nil, nil))
	_ = m.AddVertex(NewVertex("v_loggedin", "LoggedIn", "shared_login", nil, nil))
	_ = m.AddEdge(NewEdge("e_login", "Login", "", "v_start", "v_loggedin", nil, nil))
	_ = m.AddEdge(NewEdge("e_logout", "Logout", "", "v_loggedin", "v_start", nil, nil))
	return m
}

func TestModel_AddVertex_DuplicateID(t *testing.T) {
	m := buildSampleModel()
	err := m.AddVertex(NewVertex("v_start", "Dup", "", nil, nil))
	assert.Error(t, err)
	code, ok := Code(err)
	assert.True(t, ok)
	assert.Equal(t, ErrLoad, code)
}

func TestModel_AddEdge_CollidesWithVertexID(t *testing.T) {
	m := buildSampleModel()
	err := m.AddEdge(NewEdge("v_start", "Bad", "", "v_start", "v_loggedin", nil, nil))
	assert.Error(t, err)
}

func TestModel_OutEdges_PreservesInsertionOrder(t *testing.T) {
	m := NewModel("m1", "M", "", nil)
	_ = m.AddVertex(NewVertex("a", "", "", nil, nil))
	_ = m.AddVertex(NewVertex("b", "", "", nil, nil))
	_ = m.AddEdge(NewEdge("e2", "", "", "a", "b", nil, nil))
	_ = m.AddEdge(NewEdge("e1", "", "", "a", "b", nil, nil))

	out := m.OutEdges("a")
	assert.Len(t, out, 2)
	assert.Equal(t, "e2", out[0].ID())
	assert.Equal(t, "e1", out[1].ID())
}

func TestModel_ValidateEndpoints_DanglingTarget(t *testing.T) {
	m := NewModel("m1", "M", "", nil)
	_ = m.AddVertex(NewVertex("a", "", "", nil, nil))
	_ = m.AddEdge(NewEdge("e1", "", "", "a", "ghost", nil, nil))

	err := m.ValidateEndpoints()
	assert.Error(t, err)
}

func TestModel_ShortestPath(t *testing.T) {
	m := buildSampleModel()

	path, err := m.ShortestPath("v_start", "v_loggedin")
	assert.NoError(t, err)
	assert.Equal(t, []string{"v_start", "v_loggedin"}, path)

	same, err := m.ShortestPath("v_start", "v_start")
	assert.NoError(t, err)
	assert.Equal(t, []string{"v_start"}, same)
}

func TestModel_ShortestPath_UnknownVertex(t *testing.T) {
	m := buildSampleModel()
	_, err := m.ShortestPath("v_start", "ghost")
	assert.Error(t, err)
}

func TestModel_ShortestPath_NoPath(t *testing.T) {
	m := NewModel("m1", "M", "", nil)
	_ = m.AddVertex(NewVertex("a", "", "", nil, nil))
	_ = m.AddVertex(NewVertex("b", "", "", nil, nil))

	path, err := m.ShortestPath("a", "b")
	assert.NoError(t, err)
	assert.Nil(t, path)
}
