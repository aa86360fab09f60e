package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTwoModelSet(t *testing.T) *ModelSet {
	t.Helper()

	m1 := NewModel("login", "Login", "", nil)
	assert.NoError(t, m1.AddVertex(NewVertex("v_start", "Start", "", nil, nil)))
	assert.NoError(t, m1.AddVertex(NewVertex("v_in", "In", "logged_in", nil, nil)))
	assert.NoError(t, m1.AddEdge(NewEdge("e_login", "Login", "", "v_start", "v_in", nil, nil)))

	m2 := NewModel("account", "Account", "", nil)
	assert.NoError(t, m2.AddVertex(NewVertex("v_home", "Home", "logged_in", nil, nil)))

	set := NewModelSet("v_start")
	assert.NoError(t, set.AddModel(m1))
	assert.NoError(t, set.AddModel(m2))
	return set
}

func TestModelSet_AddModel_Duplicate(t *testing.T) {
	set := buildTwoModelSet(t)
	dup := NewModel("login", "Login2", "", nil)
	err := set.AddModel(dup)
	assert.Error(t, err)
	code, _ := Code(err)
	assert.Equal(t, ErrLoad, code)
}

func TestModelSet_Resolve_SingleMatch(t *testing.T) {
	set := buildTwoModelSet(t)
	matches := set.Resolve("v_start")
	assert.Len(t, matches, 1)
	assert.Equal(t, "login", matches[0].ModelID)
	assert.Equal(t, KindVertex, matches[0].Kind)
}

func TestModelSet_BuildSharedIndex_CrossModel(t *testing.T) {
	set := buildTwoModelSet(t)
	set.BuildSharedIndex()

	positions := set.SharedStatePositions("logged_in")
	assert.Len(t, positions, 2)
	assert.Equal(t, Position{ModelID: "login", ElementID: "v_in"}, positions[0])
	assert.Equal(t, Position{ModelID: "account", ElementID: "v_home"}, positions[1])
}

func TestModelSet_SharedStatePositions_UnknownLabel(t *testing.T) {
	set := buildTwoModelSet(t)
	set.BuildSharedIndex()
	assert.Nil(t, set.SharedStatePositions("nope"))
}

func TestModelSet_ValidateInvariants_AmbiguousStart(t *testing.T) {
	m1 := NewModel("m1", "M1", "", nil)
	_ = m1.AddVertex(NewVertex("dup", "", "", nil, nil))
	m2 := NewModel("m2", "M2", "", nil)
	_ = m2.AddVertex(NewVertex("dup", "", "", nil, nil))

	set := NewModelSet("dup")
	_ = set.AddModel(m1)
	_ = set.AddModel(m2)

	err := set.ValidateInvariants()
	assert.Error(t, err)
	code, _ := Code(err)
	assert.Equal(t, ErrConfig, code)
}

func TestModelSet_ValidateInvariants_MissingStart(t *testing.T) {
	set := buildTwoModelSet(t)
	set.StartElementID = "ghost"
	err := set.ValidateInvariants()
	assert.Error(t, err)
}

func TestModelSet_ValidateInvariants_OK(t *testing.T) {
	set := buildTwoModelSet(t)
	assert.NoError(t, set.ValidateInvariants())
}
