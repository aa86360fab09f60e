package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

func TestBind_SimpleAssignment(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()

	err := e.Bind(vars, "count = 1")
	assert.NoError(t, err)

	v, _ := vars.Get("count")
	assert.Equal(t, 1, v)
}

func TestBind_CompoundAssignment_Int(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()
	vars.Set("count", 5)

	err := e.Bind(vars, "count += 3")
	assert.NoError(t, err)

	v, _ := vars.Get("count")
	assert.Equal(t, int64(8), v)
}

func TestBind_CompoundAssignment_UndefinedVariable(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()

	err := e.Bind(vars, "count += 3")
	assert.Error(t, err)
}

func TestBind_MultipleStatements(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()

	err := e.Bind(vars, "a = 1; b = 2; a += b")
	assert.NoError(t, err)

	a, _ := vars.Get("a")
	assert.Equal(t, int64(3), a)
}

func TestBind_DoesNotMistakeComparisonForAssignment(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()
	vars.Set("count", 5)

	err := e.Bind(vars, "count == 5")
	assert.NoError(t, err)

	v, _ := vars.Get("count")
	assert.Equal(t, 5, v, "a comparison statement must not mutate the compared variable")
}

func TestBind_StringAssignment(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()

	err := e.Bind(vars, `name = "alice"`)
	assert.NoError(t, err)

	v, _ := vars.Get("name")
	assert.Equal(t, "alice", v)
}

func TestBind_DivisionByZero(t *testing.T) {
	e := newTestEvaluator()
	vars := domain.NewVariableSet()
	vars.Set("count", 10)

	err := e.Bind(vars, "count /= 0")
	assert.Error(t, err)
}

func TestFindTopLevelOp_IgnoresNestedEquals(t *testing.T) {
	idx := findTopLevelOp(`name = f("a=b")`, "=")
	assert.Equal(t, 5, idx)
}
