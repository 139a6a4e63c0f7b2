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

/*
Package gomilp is a model-building layer for linear and mixed-integer
programming. Variables and constraints are declared incrementally,
committed in bulk to a native solver engine, and the solve outcome is
read back through attribute queries.

Additions are deferred: AddVariable and AddConstraint only enqueue, and
Update flushes the queues into the engine — variables first, then
constraints, so constraint rows can be encoded against committed
variable indices. Optimize updates implicitly.

As an example, minimizing 2x + 3y subject to x + y ≤ 10 with
0 ≤ x, y ≤ 10:

	env, err := native.Open("gurobi")
	if err != nil {
		log.Fatal(err)
	}
	defer env.Release()

	model, err := gomilp.NewModel("production", env)
	if err != nil {
		log.Fatal(err)
	}
	defer model.Close()

	x := gomilp.NewVariable("x", gomilp.ContinuousVariable, 2, 0, 10)
	y := gomilp.NewVariable("y", gomilp.ContinuousVariable, 3, 0, 10)
	model.AddVariable(x)
	model.AddVariable(y)

	expr, _ := gomilp.Sum([]*gomilp.Variable{x, y}, []float64{1, 1})
	model.AddConstraint(gomilp.NewConstraint(expr, gomilp.LessEqual, 10, "capacity"))

	model.SetDirection(gomilp.Minimize)
	if err := model.Optimize(); err != nil {
		log.Fatal(err)
	}

	if status, _ := model.Status(); status == native.SolveOptimal {
		z, _ := model.ObjectiveValue()
		fmt.Printf("z = %f\n", z)
	}

A Model is not safe for concurrent use; callers sharing one across
goroutines must serialize access externally.
*/
package gomilp

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opensolv/gomilp/logger"
	"github.com/opensolv/gomilp/native"
)

// Direction is the optimization direction of a model.
type Direction int32

const (
	Minimize = Direction(native.SenseMinimize)
	Maximize = Direction(native.SenseMaximize)
)

// Model owns one native problem handle and the bookkeeping around it:
// the committed variable and constraint sequences (append-only, index =
// position) and the pending queues drained by Update.
type Model struct {
	mu     sync.RWMutex
	name   string
	prob   native.Problem
	logger zerolog.Logger
	closed bool

	vars    []*Variable
	constrs []*Constraint
	index   map[*Variable]int32

	pendingVars    []*Variable
	pendingConstrs []*Constraint

	added map[any]struct{}
}

// NewModel creates an empty model in the given environment. The model
// owns its native handle; call Close when done. A finalizer backstops
// handles whose Close was forgotten, but release timing is then up to
// the garbage collector.
func NewModel(name string, env native.Env, opts ...Option) (*Model, error) {
	prob, err := env.NewProblem(name)
	if err != nil {
		return nil, fmt.Errorf("creating native problem: %w", err)
	}

	model := &Model{
		name:   name,
		prob:   prob,
		logger: logger.Logger().With().Str("model", name).Logger(),
		index:  make(map[*Variable]int32),
		added:  make(map[any]struct{}),
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			prob.Release()
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	runtime.SetFinalizer(model, func(m *Model) { _ = m.Close() })

	return model, nil
}

// Close releases the native handle. It is idempotent; all other
// operations on a closed model fail with ErrClosed.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	runtime.SetFinalizer(m, nil)
	m.prob.Release()

	return nil
}

// Name returns the name provided upon instantiation of the model.
func (m *Model) Name() string {
	return m.name
}

/* Entity admission */

// AddVariable enqueues a variable for the next Update. Nothing reaches
// the engine until then. The same descriptor cannot be added to one
// model twice.
func (m *Model) AddVariable(v *Variable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if v == nil {
		return ErrNilEntity
	}
	if _, dup := m.added[v]; dup {
		return fmt.Errorf("variable %q: %w", v.name, ErrAlreadyAdded)
	}

	m.added[v] = struct{}{}
	m.pendingVars = append(m.pendingVars, v)

	return nil
}

// AddConstraint enqueues a constraint for the next Update. Every
// variable referenced by its expression must be committed (flushed by a
// prior or the same Update) by the time the constraint is flushed.
func (m *Model) AddConstraint(c *Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if c == nil {
		return ErrNilEntity
	}
	if _, dup := m.added[c]; dup {
		return fmt.Errorf("constraint %q: %w", c.name, ErrAlreadyAdded)
	}

	m.added[c] = struct{}{}
	m.pendingConstrs = append(m.pendingConstrs, c)

	return nil
}

/* Flushing */

// Update commits all pending variables, then all pending constraints,
// then tells the engine to refresh its view of the problem. A batch of
// one uses the engine's scalar entry point; larger batches use the
// vectorized one — the resulting model state is identical either way.
//
// Each phase's queue is cleared only after the engine reports success
// for it. Since batched adds are atomic per the native.Problem
// contract, a failed Update may be retried as-is.
func (m *Model) Update() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.update()
}

func (m *Model) update() error {
	if m.closed {
		return ErrClosed
	}

	if err := m.flushVariables(); err != nil {
		return err
	}
	if err := m.flushConstraints(); err != nil {
		return err
	}

	if st := m.prob.Update(); !st.OK() {
		return nativeErr("update model", st)
	}

	return nil
}

func (m *Model) flushVariables() error {
	n := len(m.pendingVars)

	switch {
	case n == 0:
		return nil
	case n == 1:
		v := m.pendingVars[0]
		if st := m.prob.AddVar(v.obj, v.lb, v.ub, native.VarType(v.vtype), v.name); !st.OK() {
			return nativeErr("add variable", st)
		}
	default:
		obj := make([]float64, n)
		lb := make([]float64, n)
		ub := make([]float64, n)
		vtypes := make([]native.VarType, n)
		names := make([]string, n)
		for i, v := range m.pendingVars {
			obj[i] = v.obj
			lb[i] = v.lb
			ub[i] = v.ub
			vtypes[i] = native.VarType(v.vtype)
			names[i] = v.name
		}

		if st := m.prob.AddVars(obj, lb, ub, vtypes, names); !st.OK() {
			return nativeErr("add variables", st)
		}
	}

	for _, v := range m.pendingVars {
		m.index[v] = int32(len(m.vars))
		m.vars = append(m.vars, v)
	}
	m.pendingVars = nil

	m.logger.Debug().Int("count", n).Msg("committed pending variables")

	return nil
}

func (m *Model) flushConstraints() error {
	n := len(m.pendingConstrs)
	if n == 0 {
		return nil
	}

	// CSR row encoding over all pending constraints. Index resolution
	// happens before any engine call, so an unbound reference leaves the
	// queue and the engine untouched.
	nz := 0
	for _, c := range m.pendingConstrs {
		nz += c.expr.Len()
	}

	rowStart := make([]int32, n)
	colIndex := make([]int32, 0, nz)
	coeff := make([]float64, 0, nz)
	senses := make([]native.Sense, n)
	rhs := make([]float64, n)
	names := make([]string, n)

	for i, c := range m.pendingConstrs {
		rowStart[i] = int32(len(colIndex))
		for _, t := range c.expr.terms {
			idx, ok := m.index[t.variable]
			if !ok {
				return fmt.Errorf("constraint %q references variable %q: %w", c.name, t.variable.name, ErrUnboundVariable)
			}
			colIndex = append(colIndex, idx)
			coeff = append(coeff, t.coeff)
		}
		senses[i] = native.Sense(c.sense)
		rhs[i] = c.rhs
		names[i] = c.name
	}

	if n == 1 {
		if st := m.prob.AddConstr(colIndex, coeff, senses[0], rhs[0], names[0]); !st.OK() {
			return nativeErr("add constraint", st)
		}
	} else {
		if st := m.prob.AddConstrs(rowStart, colIndex, coeff, senses, rhs, names); !st.OK() {
			return nativeErr("add constraints", st)
		}
	}

	m.constrs = append(m.constrs, m.pendingConstrs...)
	m.pendingConstrs = nil

	m.logger.Debug().Int("count", n).Int("nonzeros", nz).Msg("committed pending constraints")

	return nil
}

/* Solve & query */

// SetDirection sets whether the objective is minimized or maximized.
func (m *Model) SetDirection(dir Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if st := m.prob.SetIntAttr(native.AttrModelSense, int32(dir)); !st.OK() {
		return nativeErr("set direction", st)
	}

	return nil
}

// Optimize updates the model, then runs the engine's solve. The call
// blocks until the engine returns, which on hard problems is unbounded;
// no timeout is imposed here.
func (m *Model) Optimize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.update(); err != nil {
		return err
	}

	m.logger.Debug().
		Int("variables", len(m.vars)).
		Int("constraints", len(m.constrs)).
		Msg("optimizing")

	if st := m.prob.Optimize(); !st.OK() {
		return nativeErr("optimize", st)
	}

	return nil
}

// Status returns the engine's raw solve-status code (see the
// native.Solve* constants for the common values). No interpretation is
// applied here.
func (m *Model) Status() (int32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrClosed
	}
	code, st := m.prob.IntAttr(native.AttrStatus)
	if !st.OK() {
		return 0, nativeErr("read status", st)
	}

	return code, nil
}

// ObjectiveValue returns the objective function's value. It is only
// meaningful after an Optimize that reached a solution; before that the
// engine reports the attribute as unavailable and a NativeError is
// returned rather than a silent zero.
func (m *Model) ObjectiveValue() (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrClosed
	}
	val, st := m.prob.DoubleAttr(native.AttrObjVal)
	if !st.OK() {
		return 0, nativeErr("read objective value", st)
	}

	return val, nil
}

// ComputeIIS asks the engine for an irreducible inconsistent subsystem,
// the usual diagnostic after an infeasible solve.
func (m *Model) ComputeIIS() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if st := m.prob.ComputeIIS(); !st.OK() {
		return nativeErr("compute IIS", st)
	}

	return nil
}

// Write dumps the model to a file. The engine chooses the format from
// the filename's extension.
func (m *Model) Write(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if st := m.prob.Write(filename); !st.OK() {
		return nativeErr("write model", st)
	}

	return nil
}

/* Committed-state accessors */

// VariableCount returns the number of committed variables.
func (m *Model) VariableCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.vars)
}

// ConstraintCount returns the number of committed constraints.
func (m *Model) ConstraintCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.constrs)
}

// Variables returns a new slice with the committed variables in index
// order.
func (m *Model) Variables() []*Variable {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vars := make([]*Variable, len(m.vars))
	copy(vars, m.vars)

	return vars
}

// Constraints returns a new slice with the committed constraints in
// commit order.
func (m *Model) Constraints() []*Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	constrs := make([]*Constraint, len(m.constrs))
	copy(constrs, m.constrs)

	return constrs
}

// VariableIndex returns the committed index of v within the model. The
// second return is false while v is pending or unknown to the model.
// A committed index never changes and is never reused.
func (m *Model) VariableIndex(v *Variable) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.index[v]

	return int(idx), ok
}
