package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensolv/gomilp"
	"github.com/opensolv/gomilp/native"
	"github.com/opensolv/gomilp/native/stub"
)

const productionProblem = `{
	"name": "production",
	"direction": "minimize",
	"variables": [
		{"name": "x", "type": "continuous", "objective": 2, "lower": 0, "upper": 10},
		{"name": "y", "type": "continuous", "objective": 3, "lower": 0, "upper": 10}
	],
	"constraints": [
		{"name": "capacity", "terms": [
			{"variable": "x", "coefficient": 1},
			{"variable": "y", "coefficient": 1}
		], "sense": "<=", "rhs": 10}
	]
}`

func TestParseProblem(t *testing.T) {
	pf, err := parseProblem([]byte(productionProblem))
	require.NoError(t, err)

	assert.Equal(t, "production", pf.Name)
	assert.Len(t, pf.Variables, 2)
	assert.Len(t, pf.Constraints, 1)

	dir, err := pf.direction()
	require.NoError(t, err)
	assert.Equal(t, gomilp.Minimize, dir)
}

func TestParseProblemRejectsGarbage(t *testing.T) {
	_, err := parseProblem([]byte("{not json"))
	require.Error(t, err)

	_, err = parseProblem([]byte(`{"name": "empty"}`))
	require.Error(t, err, "a problem without variables is rejected")
}

func TestBuildModel(t *testing.T) {
	pf, err := parseProblem([]byte(productionProblem))
	require.NoError(t, err)

	env := stub.NewEnv()
	model, err := buildModel(pf, env)
	require.NoError(t, err)
	defer model.Close()

	assert.Equal(t, 2, model.VariableCount())
	assert.Equal(t, 1, model.ConstraintCount())

	prob := env.Problems[0]
	assert.Equal(t, native.SenseMinimize, prob.ModelSense)
	assert.Equal(t, []float64{2, 3}, prob.Obj)
	assert.Equal(t, []string{"x", "y"}, prob.VarNames)
	assert.Equal(t, []int32{0, 1}, prob.ColIndex)
	assert.Equal(t, []float64{10}, prob.Rhs)

	require.NoError(t, model.Optimize())
	status, err := model.Status()
	require.NoError(t, err)
	assert.Equal(t, native.SolveOptimal, status)
}

func TestBuildModelDefaultsBounds(t *testing.T) {
	pf, err := parseProblem([]byte(`{
		"variables": [{"name": "x", "objective": 1}]
	}`))
	require.NoError(t, err)

	env := stub.NewEnv()
	model, err := buildModel(pf, env)
	require.NoError(t, err)
	defer model.Close()

	prob := env.Problems[0]
	assert.Equal(t, []float64{0}, prob.Lb)
	assert.True(t, prob.Ub[0] > 1e100, "upper bound defaults to +inf")
	assert.Equal(t, []native.VarType{native.Continuous}, prob.Types)
}

func TestBuildModelRejectsBadInput(t *testing.T) {
	env := stub.NewEnv()

	cases := []struct {
		name string
		json string
	}{
		{"unknown type", `{"variables": [{"name": "x", "type": "complex"}]}`},
		{"duplicate variable", `{"variables": [{"name": "x"}, {"name": "x"}]}`},
		{"unknown direction", `{"direction": "sideways", "variables": [{"name": "x"}]}`},
		{"unknown sense", `{"variables": [{"name": "x"}],
			"constraints": [{"terms": [{"variable": "x", "coefficient": 1}], "sense": "<>", "rhs": 1}]}`},
		{"unknown constraint variable", `{"variables": [{"name": "x"}],
			"constraints": [{"terms": [{"variable": "ghost", "coefficient": 1}], "sense": "<=", "rhs": 1}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pf, err := parseProblem([]byte(tc.json))
			require.NoError(t, err)

			_, err = buildModel(pf, env)
			assert.Error(t, err)
		})
	}
}
