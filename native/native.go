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

// Package native defines the boundary between the model builder and a
// solver engine. Engines expose a C-style surface: flat parallel buffers,
// byte-coded variable types and constraint senses, and integer status
// returns where zero means success. Implementations live in subpackages
// and register themselves by name so callers can select one at runtime.
package native

// Status is the return convention shared by all mutating engine calls.
// Zero means success; any other value is an engine-defined failure code.
type Status int32

// OK reports whether the call succeeded.
func (s Status) OK() bool {
	return s == 0
}

// VarType describes the domain of a decision variable.
type VarType byte

const (
	Continuous VarType = 'C'
	Integer    VarType = 'I'
	Binary     VarType = 'B'
)

// Sense is the relational operator of a linear constraint.
type Sense byte

const (
	LessEqual    Sense = '<'
	GreaterEqual Sense = '>'
	Equal        Sense = '='
)

// IntAttr and DoubleAttr name the scalar attributes a Problem exposes.
type (
	IntAttr    string
	DoubleAttr string
)

const (
	AttrStatus     IntAttr = "Status"
	AttrModelSense IntAttr = "ModelSense"
	AttrNumVars    IntAttr = "NumVars"
	AttrNumConstrs IntAttr = "NumConstrs"

	AttrObjVal DoubleAttr = "ObjVal"
)

// Values of AttrModelSense.
const (
	SenseMinimize int32 = 1
	SenseMaximize int32 = -1
)

// Values of AttrStatus after an optimize call.
const (
	SolveLoaded     int32 = 1
	SolveOptimal    int32 = 2
	SolveInfeasible int32 = 3
	SolveInfOrUnbd  int32 = 4
	SolveUnbounded  int32 = 5
	SolveInProgress int32 = 14
)

// Env is a licensed solver context. It is the factory for Problem handles
// and owns engine-global configuration.
type Env interface {
	// NewProblem creates an empty problem in this environment.
	NewProblem(name string) (Problem, error)

	// Release frees the environment. Problems created from it must be
	// released first.
	Release()
}

// Problem is one optimization problem held by the engine.
//
// Batched add calls must be atomic: a non-zero Status guarantees the
// engine state is unchanged, so the caller may safely retry with the
// same buffers. Backends that cannot provide this must not be
// registered.
//
// An empty name stands for "no name"; backends translate it to the
// engine's notion of an absent name.
type Problem interface {
	// AddVar appends one column.
	AddVar(obj, lb, ub float64, vtype VarType, name string) Status

	// AddVars appends len(obj) columns. All slices must have equal length.
	AddVars(obj, lb, ub []float64, vtypes []VarType, names []string) Status

	// AddConstr appends one row with the given sparse coefficients.
	AddConstr(colIndex []int32, coeff []float64, sense Sense, rhs float64, name string) Status

	// AddConstrs appends len(rowStart) rows in CSR form: row i owns the
	// entries colIndex[rowStart[i]:rowStart[i+1]] (the final row runs to
	// the end of colIndex). senses, rhs and names are parallel to rowStart.
	AddConstrs(rowStart, colIndex []int32, coeff []float64, senses []Sense, rhs []float64, names []string) Status

	// Update makes all previous modifications visible to queries and to
	// the optimizer.
	Update() Status

	// Optimize runs the engine's solve. Blocks for the full duration.
	Optimize() Status

	// IntAttr and DoubleAttr read scalar attributes. A non-zero Status
	// means the attribute is unknown or not available in the current
	// problem state.
	IntAttr(attr IntAttr) (int32, Status)
	DoubleAttr(attr DoubleAttr) (float64, Status)

	// SetIntAttr writes a scalar integer attribute.
	SetIntAttr(attr IntAttr, value int32) Status

	// ComputeIIS computes an irreducible inconsistent subsystem for an
	// infeasible problem.
	ComputeIIS() Status

	// Write dumps the problem to a file; the engine picks the format from
	// the filename extension.
	Write(filename string) Status

	// Release frees the problem handle. Further calls on a released
	// handle are undefined.
	Release()
}
