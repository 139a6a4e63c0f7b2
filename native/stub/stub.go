/*
Copyright © 2026 The gomilp authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package stub is a pure-Go engine backend used by the test suite and
// for CLI dry runs. It is not a solver: it records every call, checks
// the shape of the buffers it receives, and on Optimize merely evaluates
// one deterministic candidate point (each variable at its bound-clamped
// zero), reporting Optimal if that point happens to be feasible and
// Infeasible otherwise.
//
// Importing the package registers it as backend "stub".
package stub

import (
	"errors"
	"fmt"
	"math"

	"github.com/opensolv/gomilp/native"
)

const feasTol = 1e-9

// Engine-style failure codes returned by the stub.
const (
	StatusBadInput     native.Status = 10003
	StatusNotAvailable native.Status = 10005
	StatusReleased     native.Status = 10007
)

func init() {
	native.Register("stub", func() (native.Env, error) { return NewEnv(), nil })
}

// Env is a stub environment. The zero value is not usable; call NewEnv.
type Env struct {
	released bool

	// Problems holds every problem created from this environment, in
	// creation order, for test inspection.
	Problems []*Problem
}

// NewEnv returns a fresh stub environment.
func NewEnv() *Env {
	return &Env{}
}

// NewProblem implements native.Env.
func (e *Env) NewProblem(name string) (native.Problem, error) {
	if e.released {
		return nil, errors.New("stub: environment already released")
	}

	p := &Problem{
		Name:       name,
		ModelSense: native.SenseMinimize,
		status:     native.SolveLoaded,
	}
	e.Problems = append(e.Problems, p)

	return p, nil
}

// Release implements native.Env.
func (e *Env) Release() {
	e.released = true
}

// Problem records everything the builder hands to the engine. All
// exported fields are for test inspection.
type Problem struct {
	Name string

	// Calls is the ordered log of engine entry points hit, each with its
	// batch size where one applies, e.g. "addvars(3)".
	Calls []string

	// FailNext forces the next call of the named entry point ("addvar",
	// "addvars", "addconstr", "addconstrs", "update", "optimize",
	// "computeiis", "write", "setintattr") to return the given status
	// without touching state. Entries are consumed on use.
	FailNext map[string]native.Status

	// Committed columns, parallel.
	Obj      []float64
	Lb       []float64
	Ub       []float64
	Types    []native.VarType
	VarNames []string

	// Committed rows in CSR form: row i owns
	// ColIndex[RowStart[i]:RowStart[i+1]] (last row runs to the end).
	RowStart    []int32
	ColIndex    []int32
	Coeff       []float64
	Senses      []native.Sense
	Rhs         []float64
	ConstrNames []string

	ModelSense int32
	Files      []string
	Updates    int
	IISRuns    int
	Released   bool

	status      int32
	objVal      float64
	hasSolution bool
}

func (p *Problem) record(call string) {
	p.Calls = append(p.Calls, call)
}

func (p *Problem) fail(op string) (native.Status, bool) {
	if p.Released {
		return StatusReleased, true
	}
	if st, ok := p.FailNext[op]; ok {
		delete(p.FailNext, op)
		return st, true
	}

	return 0, false
}

// AddVar implements native.Problem.
func (p *Problem) AddVar(obj, lb, ub float64, vtype native.VarType, name string) native.Status {
	p.record("addvar")
	if st, forced := p.fail("addvar"); forced {
		return st
	}

	p.appendVar(obj, lb, ub, vtype, name)

	return 0
}

// AddVars implements native.Problem.
func (p *Problem) AddVars(obj, lb, ub []float64, vtypes []native.VarType, names []string) native.Status {
	p.record(fmt.Sprintf("addvars(%d)", len(obj)))
	if st, forced := p.fail("addvars"); forced {
		return st
	}
	if len(lb) != len(obj) || len(ub) != len(obj) || len(vtypes) != len(obj) || len(names) != len(obj) {
		return StatusBadInput
	}

	for i := range obj {
		p.appendVar(obj[i], lb[i], ub[i], vtypes[i], names[i])
	}

	return 0
}

func (p *Problem) appendVar(obj, lb, ub float64, vtype native.VarType, name string) {
	p.Obj = append(p.Obj, obj)
	p.Lb = append(p.Lb, lb)
	p.Ub = append(p.Ub, ub)
	p.Types = append(p.Types, vtype)
	p.VarNames = append(p.VarNames, name)
}

// AddConstr implements native.Problem.
func (p *Problem) AddConstr(colIndex []int32, coeff []float64, sense native.Sense, rhs float64, name string) native.Status {
	p.record(fmt.Sprintf("addconstr(%d)", len(colIndex)))
	if st, forced := p.fail("addconstr"); forced {
		return st
	}
	if len(coeff) != len(colIndex) || !p.validCols(colIndex) {
		return StatusBadInput
	}

	p.RowStart = append(p.RowStart, int32(len(p.ColIndex)))
	p.ColIndex = append(p.ColIndex, colIndex...)
	p.Coeff = append(p.Coeff, coeff...)
	p.Senses = append(p.Senses, sense)
	p.Rhs = append(p.Rhs, rhs)
	p.ConstrNames = append(p.ConstrNames, name)

	return 0
}

// AddConstrs implements native.Problem.
func (p *Problem) AddConstrs(rowStart, colIndex []int32, coeff []float64, senses []native.Sense, rhs []float64, names []string) native.Status {
	p.record(fmt.Sprintf("addconstrs(%d)", len(rowStart)))
	if st, forced := p.fail("addconstrs"); forced {
		return st
	}

	n := len(rowStart)
	if len(senses) != n || len(rhs) != n || len(names) != n {
		return StatusBadInput
	}
	if len(coeff) != len(colIndex) || !p.validCols(colIndex) {
		return StatusBadInput
	}
	for i, start := range rowStart {
		if int(start) > len(colIndex) {
			return StatusBadInput
		}
		if i == 0 && start != 0 {
			return StatusBadInput
		}
		if i > 0 && start < rowStart[i-1] {
			return StatusBadInput
		}
	}

	offset := int32(len(p.ColIndex))
	for _, start := range rowStart {
		p.RowStart = append(p.RowStart, offset+start)
	}
	p.ColIndex = append(p.ColIndex, colIndex...)
	p.Coeff = append(p.Coeff, coeff...)
	p.Senses = append(p.Senses, senses...)
	p.Rhs = append(p.Rhs, rhs...)
	p.ConstrNames = append(p.ConstrNames, names...)

	return 0
}

func (p *Problem) validCols(colIndex []int32) bool {
	for _, c := range colIndex {
		if c < 0 || int(c) >= len(p.Obj) {
			return false
		}
	}

	return true
}

// Update implements native.Problem.
func (p *Problem) Update() native.Status {
	p.record("update")
	if st, forced := p.fail("update"); forced {
		return st
	}
	p.Updates++

	return 0
}

// Optimize implements native.Problem. The candidate point is each
// variable at its bound-clamped zero; no search whatsoever happens.
func (p *Problem) Optimize() native.Status {
	p.record("optimize")
	if st, forced := p.fail("optimize"); forced {
		return st
	}

	x := make([]float64, len(p.Obj))
	for i := range x {
		x[i] = math.Min(math.Max(0, p.Lb[i]), p.Ub[i])
	}

	if p.feasible(x) {
		obj := 0.0
		for i, c := range p.Obj {
			obj += c * x[i]
		}
		p.objVal = obj
		p.hasSolution = true
		p.status = native.SolveOptimal
	} else {
		p.hasSolution = false
		p.status = native.SolveInfeasible
	}

	return 0
}

func (p *Problem) feasible(x []float64) bool {
	for row := range p.RowStart {
		end := len(p.ColIndex)
		if row+1 < len(p.RowStart) {
			end = int(p.RowStart[row+1])
		}

		lhs := 0.0
		for i := int(p.RowStart[row]); i < end; i++ {
			lhs += p.Coeff[i] * x[p.ColIndex[i]]
		}

		switch p.Senses[row] {
		case native.LessEqual:
			if lhs > p.Rhs[row]+feasTol {
				return false
			}
		case native.GreaterEqual:
			if lhs < p.Rhs[row]-feasTol {
				return false
			}
		case native.Equal:
			if math.Abs(lhs-p.Rhs[row]) > feasTol {
				return false
			}
		}
	}

	return true
}

// IntAttr implements native.Problem.
func (p *Problem) IntAttr(attr native.IntAttr) (int32, native.Status) {
	if p.Released {
		return 0, StatusReleased
	}

	switch attr {
	case native.AttrStatus:
		return p.status, 0
	case native.AttrModelSense:
		return p.ModelSense, 0
	case native.AttrNumVars:
		return int32(len(p.Obj)), 0
	case native.AttrNumConstrs:
		return int32(len(p.RowStart)), 0
	default:
		return 0, StatusBadInput
	}
}

// DoubleAttr implements native.Problem.
func (p *Problem) DoubleAttr(attr native.DoubleAttr) (float64, native.Status) {
	if p.Released {
		return 0, StatusReleased
	}

	switch attr {
	case native.AttrObjVal:
		if !p.hasSolution {
			return 0, StatusNotAvailable
		}
		return p.objVal, 0
	default:
		return 0, StatusBadInput
	}
}

// SetIntAttr implements native.Problem.
func (p *Problem) SetIntAttr(attr native.IntAttr, value int32) native.Status {
	p.record(fmt.Sprintf("setintattr(%s)", attr))
	if st, forced := p.fail("setintattr"); forced {
		return st
	}

	switch attr {
	case native.AttrModelSense:
		p.ModelSense = value
		return 0
	default:
		return StatusBadInput
	}
}

// ComputeIIS implements native.Problem.
func (p *Problem) ComputeIIS() native.Status {
	p.record("computeiis")
	if st, forced := p.fail("computeiis"); forced {
		return st
	}
	p.IISRuns++

	return 0
}

// Write implements native.Problem. Nothing is written anywhere; the
// filename is only recorded.
func (p *Problem) Write(filename string) native.Status {
	p.record(fmt.Sprintf("write(%s)", filename))
	if st, forced := p.fail("write"); forced {
		return st
	}
	p.Files = append(p.Files, filename)

	return 0
}

// Release implements native.Problem.
func (p *Problem) Release() {
	p.Released = true
}
