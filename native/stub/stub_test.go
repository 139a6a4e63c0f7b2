package stub

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensolv/gomilp/native"
)

func newProblem(t *testing.T) *Problem {
	t.Helper()

	env := NewEnv()
	p, err := env.NewProblem("p")
	require.NoError(t, err)

	return p.(*Problem)
}

func addTwoVars(t *testing.T, p *Problem) {
	t.Helper()

	st := p.AddVars(
		[]float64{1, 2},
		[]float64{0, 0},
		[]float64{10, 10},
		[]native.VarType{native.Continuous, native.Continuous},
		[]string{"x", "y"},
	)
	require.True(t, st.OK())
}

func TestRegisteredAsBackend(t *testing.T) {
	env, err := native.Open("stub")
	require.NoError(t, err)

	_, err = env.NewProblem("p")
	require.NoError(t, err)
	env.Release()

	_, err = env.NewProblem("late")
	assert.Error(t, err, "released environment must refuse new problems")
}

func TestAddVarsRejectsMismatchedBuffers(t *testing.T) {
	p := newProblem(t)

	st := p.AddVars([]float64{1, 2}, []float64{0}, []float64{10, 10},
		[]native.VarType{native.Continuous, native.Continuous}, []string{"x", "y"})
	assert.Equal(t, StatusBadInput, st)
	assert.Empty(t, p.Obj, "failed batch must not mutate state")
}

func TestAddConstrRejectsOutOfRangeColumn(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	st := p.AddConstr([]int32{0, 2}, []float64{1, 1}, native.LessEqual, 5, "bad")
	assert.Equal(t, StatusBadInput, st)
	assert.Empty(t, p.RowStart)
}

func TestAddConstrsValidatesRowPointers(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	// First row pointer must be zero.
	st := p.AddConstrs([]int32{1, 2}, []int32{0, 1}, []float64{1, 1},
		[]native.Sense{native.LessEqual, native.LessEqual}, []float64{1, 1}, []string{"", ""})
	assert.Equal(t, StatusBadInput, st)

	// Row pointers must be non-decreasing.
	st = p.AddConstrs([]int32{0, 2, 1}, []int32{0, 1, 0}, []float64{1, 1, 1},
		[]native.Sense{native.LessEqual, native.LessEqual, native.LessEqual},
		[]float64{1, 1, 1}, []string{"", "", ""})
	assert.Equal(t, StatusBadInput, st)

	assert.Empty(t, p.RowStart)
}

func TestAddConstrsOffsetsRowPointers(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	st := p.AddConstr([]int32{0}, []float64{1}, native.LessEqual, 3, "first")
	require.True(t, st.OK())

	st = p.AddConstrs([]int32{0, 1}, []int32{0, 1}, []float64{1, -1},
		[]native.Sense{native.GreaterEqual, native.Equal}, []float64{0, 0}, []string{"a", "b"})
	require.True(t, st.OK())

	// The batch's relative row pointers are shifted past the existing
	// nonzeros.
	if diff := cmp.Diff([]int32{0, 1, 2}, p.RowStart); diff != "" {
		t.Errorf("row pointers:\n%s", diff)
	}
	assert.Equal(t, []int32{0, 0, 1}, p.ColIndex)
}

func TestOptimizeEvaluatesCandidatePoint(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	// x + y <= 10 holds at the clamped origin.
	require.True(t, p.AddConstr([]int32{0, 1}, []float64{1, 1}, native.LessEqual, 10, "").OK())
	require.True(t, p.Optimize().OK())

	status, st := p.IntAttr(native.AttrStatus)
	require.True(t, st.OK())
	assert.Equal(t, native.SolveOptimal, status)

	obj, st := p.DoubleAttr(native.AttrObjVal)
	require.True(t, st.OK())
	assert.Equal(t, 0.0, obj)
}

func TestOptimizeRespectsLowerBounds(t *testing.T) {
	p := newProblem(t)

	// lb=2 pins the candidate point at x=2, so the objective is 3*2.
	require.True(t, p.AddVar(3, 2, 10, native.Continuous, "x").OK())
	require.True(t, p.Optimize().OK())

	obj, st := p.DoubleAttr(native.AttrObjVal)
	require.True(t, st.OK())
	assert.Equal(t, 6.0, obj)
}

func TestOptimizeReportsInfeasibleCandidate(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	require.True(t, p.AddConstr([]int32{0}, []float64{1}, native.GreaterEqual, 5, "").OK())
	require.True(t, p.Optimize().OK())

	status, st := p.IntAttr(native.AttrStatus)
	require.True(t, st.OK())
	assert.Equal(t, native.SolveInfeasible, status)

	_, st = p.DoubleAttr(native.AttrObjVal)
	assert.Equal(t, StatusNotAvailable, st)
}

func TestAttrsBeforeOptimize(t *testing.T) {
	p := newProblem(t)
	addTwoVars(t, p)

	status, st := p.IntAttr(native.AttrStatus)
	require.True(t, st.OK())
	assert.Equal(t, native.SolveLoaded, status)

	numVars, st := p.IntAttr(native.AttrNumVars)
	require.True(t, st.OK())
	assert.Equal(t, int32(2), numVars)

	_, st = p.IntAttr(native.IntAttr("NoSuchAttr"))
	assert.Equal(t, StatusBadInput, st)

	_, st = p.DoubleAttr(native.AttrObjVal)
	assert.Equal(t, StatusNotAvailable, st)
}

func TestForcedFailuresAreOneShot(t *testing.T) {
	p := newProblem(t)
	p.FailNext = map[string]native.Status{"update": 42}

	assert.Equal(t, native.Status(42), p.Update())
	assert.True(t, p.Update().OK())
	assert.Equal(t, 1, p.Updates)
}

func TestReleasedProblemRefusesCalls(t *testing.T) {
	p := newProblem(t)
	p.Release()

	assert.Equal(t, StatusReleased, p.AddVar(1, 0, 1, native.Continuous, "x"))
	assert.Equal(t, StatusReleased, p.Update())
	assert.Equal(t, StatusReleased, p.Optimize())
	_, st := p.IntAttr(native.AttrStatus)
	assert.Equal(t, StatusReleased, st)
}
