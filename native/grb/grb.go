//go:build gurobi

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

package grb

// #cgo LDFLAGS: -lgurobi110
// #include <gurobi_c.h>
// #include <stdlib.h>
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/opensolv/gomilp/native"
)

func init() {
	native.Register("gurobi", Open)
}

// Env wraps a GRBenv. License resolution happens inside GRBloadenv and
// is not configurable here.
type Env struct {
	env *C.GRBenv
}

// Open loads a Gurobi environment.
func Open() (native.Env, error) {
	var env *C.GRBenv
	if ret := C.GRBloadenv(&env, nil); ret != 0 {
		return nil, fmt.Errorf("grb: loading environment: status %d", int(ret))
	}

	return &Env{env: env}, nil
}

// NewProblem implements native.Env.
func (e *Env) NewProblem(name string) (native.Problem, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var model *C.GRBmodel
	if ret := C.GRBnewmodel(e.env, &model, cName, 0, nil, nil, nil, nil, nil); ret != 0 {
		return nil, fmt.Errorf("grb: creating model %q: status %d", name, int(ret))
	}

	return &Problem{model: model}, nil
}

// Release implements native.Env.
func (e *Env) Release() {
	C.GRBfreeenv(e.env)
	e.env = nil
}

// Problem wraps a GRBmodel.
type Problem struct {
	model *C.GRBmodel
}

// cName returns a C string for name, or nil for the empty string.
// Callers free the result with freeName.
func cName(name string) *C.char {
	if name == "" {
		return nil
	}

	return C.CString(name)
}

func freeName(c *C.char) {
	if c != nil {
		C.free(unsafe.Pointer(c))
	}
}

func cNames(names []string) ([]*C.char, func()) {
	arr := make([]*C.char, len(names))
	for i, n := range names {
		arr[i] = cName(n)
	}

	return arr, func() {
		for _, c := range arr {
			freeName(c)
		}
	}
}

func cInts(vals []int32) []C.int {
	out := make([]C.int, len(vals))
	for i, v := range vals {
		out[i] = C.int(v)
	}

	return out
}

func cDoubles(vals []float64) []C.double {
	out := make([]C.double, len(vals))
	for i, v := range vals {
		out[i] = C.double(v)
	}

	return out
}

func cVarTypes(vals []native.VarType) []C.char {
	out := make([]C.char, len(vals))
	for i, v := range vals {
		out[i] = C.char(v)
	}

	return out
}

func cSenses(vals []native.Sense) []C.char {
	out := make([]C.char, len(vals))
	for i, v := range vals {
		out[i] = C.char(v)
	}

	return out
}

// AddVar implements native.Problem.
func (p *Problem) AddVar(obj, lb, ub float64, vtype native.VarType, name string) native.Status {
	n := cName(name)
	defer freeName(n)

	return native.Status(C.GRBaddvar(p.model, 0, nil, nil,
		C.double(obj), C.double(lb), C.double(ub), C.char(vtype), n))
}

// AddVars implements native.Problem.
func (p *Problem) AddVars(obj, lb, ub []float64, vtypes []native.VarType, names []string) native.Status {
	cnames, free := cNames(names)
	defer free()

	cObj := cDoubles(obj)
	cLb := cDoubles(lb)
	cUb := cDoubles(ub)
	cTypes := cVarTypes(vtypes)

	return native.Status(C.GRBaddvars(p.model, C.int(len(obj)), 0, nil, nil, nil,
		&cObj[0], &cLb[0], &cUb[0], &cTypes[0], &cnames[0]))
}

// AddConstr implements native.Problem.
func (p *Problem) AddConstr(colIndex []int32, coeff []float64, sense native.Sense, rhs float64, name string) native.Status {
	n := cName(name)
	defer freeName(n)

	var (
		cInd  *C.int
		cVal  *C.double
		cind  = cInts(colIndex)
		ccoef = cDoubles(coeff)
	)
	if len(cind) > 0 {
		cInd = &cind[0]
		cVal = &ccoef[0]
	}

	return native.Status(C.GRBaddconstr(p.model, C.int(len(colIndex)), cInd, cVal,
		C.char(sense), C.double(rhs), n))
}

// AddConstrs implements native.Problem.
func (p *Problem) AddConstrs(rowStart, colIndex []int32, coeff []float64, senses []native.Sense, rhs []float64, names []string) native.Status {
	cnames, free := cNames(names)
	defer free()

	var (
		cBeg    = cInts(rowStart)
		cInd    *C.int
		cVal    *C.double
		cind    = cInts(colIndex)
		ccoef   = cDoubles(coeff)
		cSen    = cSenses(senses)
		cRhs    = cDoubles(rhs)
	)
	if len(cind) > 0 {
		cInd = &cind[0]
		cVal = &ccoef[0]
	}

	return native.Status(C.GRBaddconstrs(p.model, C.int(len(rowStart)), C.int(len(colIndex)),
		&cBeg[0], cInd, cVal, &cSen[0], &cRhs[0], &cnames[0]))
}

// Update implements native.Problem.
func (p *Problem) Update() native.Status {
	return native.Status(C.GRBupdatemodel(p.model))
}

// Optimize implements native.Problem.
func (p *Problem) Optimize() native.Status {
	return native.Status(C.GRBoptimize(p.model))
}

// IntAttr implements native.Problem.
func (p *Problem) IntAttr(attr native.IntAttr) (int32, native.Status) {
	cAttr := C.CString(string(attr))
	defer C.free(unsafe.Pointer(cAttr))

	var val C.int
	ret := C.GRBgetintattr(p.model, cAttr, &val)

	return int32(val), native.Status(ret)
}

// DoubleAttr implements native.Problem.
func (p *Problem) DoubleAttr(attr native.DoubleAttr) (float64, native.Status) {
	cAttr := C.CString(string(attr))
	defer C.free(unsafe.Pointer(cAttr))

	var val C.double
	ret := C.GRBgetdblattr(p.model, cAttr, &val)

	return float64(val), native.Status(ret)
}

// SetIntAttr implements native.Problem.
func (p *Problem) SetIntAttr(attr native.IntAttr, value int32) native.Status {
	cAttr := C.CString(string(attr))
	defer C.free(unsafe.Pointer(cAttr))

	return native.Status(C.GRBsetintattr(p.model, cAttr, C.int(value)))
}

// ComputeIIS implements native.Problem.
func (p *Problem) ComputeIIS() native.Status {
	return native.Status(C.GRBcomputeIIS(p.model))
}

// Write implements native.Problem.
func (p *Problem) Write(filename string) native.Status {
	cFile := C.CString(filename)
	defer C.free(unsafe.Pointer(cFile))

	return native.Status(C.GRBwrite(p.model, cFile))
}

// Release implements native.Problem.
func (p *Problem) Release() {
	C.GRBfreemodel(p.model)
	p.model = nil
}
