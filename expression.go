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

import "fmt"

type linearTerm struct {
	variable *Variable
	coeff    float64
}

// LinearExpression is a weighted sum of decision variables. Terms keep
// their insertion order and each variable appears at most once: adding a
// term for a variable already present merges the coefficients.
type LinearExpression struct {
	terms []linearTerm
	pos   map[*Variable]int
}

// NewLinearExpression returns an empty expression.
func NewLinearExpression() *LinearExpression {
	return &LinearExpression{
		pos: make(map[*Variable]int),
	}
}

// Sum builds an expression from parallel slices of variables and their
// coefficients, in the given order.
func Sum(vars []*Variable, coefs []float64) (*LinearExpression, error) {
	if len(vars) != len(coefs) {
		return nil, fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	expr := NewLinearExpression()
	for i, v := range vars {
		expr.AddTerm(v, coefs[i])
	}

	return expr, nil
}

// AddTerm adds coeff*variable to the expression and returns the
// expression to allow chaining. If the variable is already present the
// coefficients are summed.
func (e *LinearExpression) AddTerm(variable *Variable, coeff float64) *LinearExpression {
	if i, ok := e.pos[variable]; ok {
		e.terms[i].coeff += coeff
		return e
	}

	if e.pos == nil {
		e.pos = make(map[*Variable]int)
	}
	e.pos[variable] = len(e.terms)
	e.terms = append(e.terms, linearTerm{variable: variable, coeff: coeff})

	return e
}

// Len returns the number of distinct terms.
func (e *LinearExpression) Len() int {
	return len(e.terms)
}

// Coefficient returns the coefficient of the given variable and whether
// the variable appears in the expression at all.
func (e *LinearExpression) Coefficient(variable *Variable) (float64, bool) {
	i, ok := e.pos[variable]
	if !ok {
		return 0, false
	}

	return e.terms[i].coeff, true
}

// Variables returns the expression's variables in term order.
func (e *LinearExpression) Variables() []*Variable {
	vars := make([]*Variable, len(e.terms))
	for i, t := range e.terms {
		vars[i] = t.variable
	}

	return vars
}

func (e *LinearExpression) clone() *LinearExpression {
	c := &LinearExpression{
		terms: make([]linearTerm, len(e.terms)),
		pos:   make(map[*Variable]int, len(e.pos)),
	}
	copy(c.terms, e.terms)
	for v, i := range e.pos {
		c.pos[v] = i
	}

	return c
}
