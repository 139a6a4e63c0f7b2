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
	"errors"
	"fmt"

	"github.com/opensolv/gomilp/native"
)

var (
	// ErrClosed is returned by any operation on a closed model.
	ErrClosed = errors.New("model is closed")

	// ErrUnboundVariable is returned when a constraint references a
	// variable that has no committed index in the model, either because
	// it was never admitted or because it is still pending.
	ErrUnboundVariable = errors.New("variable is not committed to the model")

	// ErrAlreadyAdded is returned when the same Variable or Constraint
	// value is admitted to a model twice.
	ErrAlreadyAdded = errors.New("already added to the model")

	// ErrNilEntity is returned when a nil Variable or Constraint is
	// admitted.
	ErrNilEntity = errors.New("nil variable or constraint")
)

// NativeError reports a non-zero status returned by the solver engine.
// The raw code is preserved so callers can tell engine failure classes
// apart; its meaning is engine-defined.
type NativeError struct {
	Op   string
	Code native.Status
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: solver returned status %d", e.Op, e.Code)
}

func nativeErr(op string, code native.Status) error {
	return &NativeError{Op: op, Code: code}
}
