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

import "github.com/opensolv/gomilp/native"

// ConstraintSense is the relational operator comparing a linear
// expression against its right-hand side.
type ConstraintSense byte

const (
	LessEqual    = ConstraintSense(native.LessEqual)
	GreaterEqual = ConstraintSense(native.GreaterEqual)
	Equal        = ConstraintSense(native.Equal)
)

// Constraint relates a linear expression to a right-hand-side scalar.
// Like Variable it is immutable after construction; the expression is
// copied, so later AddTerm calls on the original do not leak in.
type Constraint struct {
	expr  *LinearExpression
	sense ConstraintSense
	rhs   float64
	name  string
}

// NewConstraint builds a constraint "expr sense rhs" with an optional
// name (empty for none).
func NewConstraint(expr *LinearExpression, sense ConstraintSense, rhs float64, name string) *Constraint {
	return &Constraint{
		expr:  expr.clone(),
		sense: sense,
		rhs:   rhs,
		name:  name,
	}
}

// Name returns the name provided upon construction.
func (c *Constraint) Name() string {
	return c.name
}

// Sense returns the constraint's relational operator.
func (c *Constraint) Sense() ConstraintSense {
	return c.sense
}

// RHS returns the constraint's right-hand-side scalar.
func (c *Constraint) RHS() float64 {
	return c.rhs
}

// Expression returns a copy of the constraint's linear expression.
func (c *Constraint) Expression() *LinearExpression {
	return c.expr.clone()
}
