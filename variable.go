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

package gomilp

import (
	"math"

	"github.com/opensolv/gomilp/native"
)

// VariableType describes the domain of a decision variable.
type VariableType byte

const (
	ContinuousVariable = VariableType(native.Continuous)
	IntegerVariable    = VariableType(native.Integer)
	BinaryVariable     = VariableType(native.Binary)
)

// Variable is a decision variable descriptor. It is immutable after
// construction; a Variable carries no committed index of its own — the
// owning Model tracks index assignment, see Model.VariableIndex.
//
// The same descriptor may be admitted to more than one Model; each model
// assigns it an index independently.
type Variable struct {
	name  string
	vtype VariableType
	obj   float64
	lb    float64
	ub    float64
}

// NewVariable builds a variable descriptor with all attributes given.
// For BinaryVariable the bounds arguments are ignored and fixed to [0, 1].
func NewVariable(name string, vtype VariableType, obj, lb, ub float64) *Variable {
	if vtype == BinaryVariable {
		lb, ub = 0, 1
	}

	return &Variable{
		name:  name,
		vtype: vtype,
		obj:   obj,
		lb:    lb,
		ub:    ub,
	}
}

// NewContinuousVariable is a convenience constructor for an unbounded
// continuous variable with an objective coefficient of 1.
func NewContinuousVariable(name string) *Variable {
	return NewVariable(name, ContinuousVariable, 1, math.Inf(-1), math.Inf(1))
}

// NewIntegerVariable is a convenience constructor for an unbounded
// integer variable with an objective coefficient of 1.
func NewIntegerVariable(name string) *Variable {
	return NewVariable(name, IntegerVariable, 1, math.Inf(-1), math.Inf(1))
}

// NewBinaryVariable is a convenience constructor for a binary variable
// with an objective coefficient of 1.
func NewBinaryVariable(name string) *Variable {
	return NewVariable(name, BinaryVariable, 1, 0, 1)
}

// Name returns the name provided upon construction.
func (v *Variable) Name() string {
	return v.name
}

// Type returns the variable's domain type.
func (v *Variable) Type() VariableType {
	return v.vtype
}

// ObjectiveCoefficient returns the variable's weight in the objective
// function.
func (v *Variable) ObjectiveCoefficient() float64 {
	return v.obj
}

// Bounds returns the lower and upper bounds of the variable.
func (v *Variable) Bounds() (lower, upper float64) {
	return v.lb, v.ub
}
