package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/opensolv/gomilp"
	"github.com/opensolv/gomilp/native"
)

// problemFile is the JSON schema of a problem description.
//
// Bounds default to [0, +inf), the usual LP convention. Senses accept
// "<=", ">=", "=" and variable types "continuous", "integer", "binary".
type problemFile struct {
	Name        string           `json:"name"`
	Direction   string           `json:"direction"`
	Variables   []variableSpec   `json:"variables"`
	Constraints []constraintSpec `json:"constraints"`
}

type variableSpec struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Objective float64  `json:"objective"`
	Lower     *float64 `json:"lower"`
	Upper     *float64 `json:"upper"`
}

type constraintSpec struct {
	Name  string     `json:"name"`
	Terms []termSpec `json:"terms"`
	Sense string     `json:"sense"`
	RHS   float64    `json:"rhs"`
}

type termSpec struct {
	Variable    string  `json:"variable"`
	Coefficient float64 `json:"coefficient"`
}

func parseProblem(data []byte) (*problemFile, error) {
	var pf problemFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing problem: %w", err)
	}
	if len(pf.Variables) == 0 {
		return nil, fmt.Errorf("problem declares no variables")
	}

	return &pf, nil
}

func (pf *problemFile) direction() (gomilp.Direction, error) {
	switch pf.Direction {
	case "minimize", "min", "":
		return gomilp.Minimize, nil
	case "maximize", "max":
		return gomilp.Maximize, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", pf.Direction)
	}
}

func variableType(s string) (gomilp.VariableType, error) {
	switch s {
	case "continuous", "":
		return gomilp.ContinuousVariable, nil
	case "integer":
		return gomilp.IntegerVariable, nil
	case "binary":
		return gomilp.BinaryVariable, nil
	default:
		return 0, fmt.Errorf("unknown variable type %q", s)
	}
}

func constraintSense(s string) (gomilp.ConstraintSense, error) {
	switch s {
	case "<=", "le":
		return gomilp.LessEqual, nil
	case ">=", "ge":
		return gomilp.GreaterEqual, nil
	case "=", "==", "eq":
		return gomilp.Equal, nil
	default:
		return 0, fmt.Errorf("unknown constraint sense %q", s)
	}
}

// buildModel translates the problem description into a committed model.
// The returned model has been updated; the caller owns it and must
// Close it.
func buildModel(pf *problemFile, env native.Env) (*gomilp.Model, error) {
	model, err := gomilp.NewModel(pf.Name, env)
	if err != nil {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			model.Close()
		}
	}()

	byName := make(map[string]*gomilp.Variable, len(pf.Variables))
	for _, vs := range pf.Variables {
		vtype, err := variableType(vs.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vs.Name, err)
		}
		if _, dup := byName[vs.Name]; dup {
			return nil, fmt.Errorf("duplicate variable name %q", vs.Name)
		}

		lb, ub := 0.0, math.Inf(1)
		if vs.Lower != nil {
			lb = *vs.Lower
		}
		if vs.Upper != nil {
			ub = *vs.Upper
		}

		v := gomilp.NewVariable(vs.Name, vtype, vs.Objective, lb, ub)
		if err := model.AddVariable(v); err != nil {
			return nil, err
		}
		byName[vs.Name] = v
	}

	// Commit variables first so constraint rows can resolve indices.
	if err := model.Update(); err != nil {
		return nil, err
	}

	for _, cs := range pf.Constraints {
		sense, err := constraintSense(cs.Sense)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", cs.Name, err)
		}

		expr := gomilp.NewLinearExpression()
		for _, t := range cs.Terms {
			v, found := byName[t.Variable]
			if !found {
				return nil, fmt.Errorf("constraint %q references unknown variable %q", cs.Name, t.Variable)
			}
			expr.AddTerm(v, t.Coefficient)
		}

		if err := model.AddConstraint(gomilp.NewConstraint(expr, sense, cs.RHS, cs.Name)); err != nil {
			return nil, err
		}
	}

	if err := model.Update(); err != nil {
		return nil, err
	}

	dir, err := pf.direction()
	if err != nil {
		return nil, err
	}
	if err := model.SetDirection(dir); err != nil {
		return nil, err
	}

	ok = true

	return model, nil
}
