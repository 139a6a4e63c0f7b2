// Package grb is the Gurobi engine backend. It needs the Gurobi runtime
// and is only compiled when building with -tags gurobi; without the tag,
// Open fails with ErrUnavailable and no backend is registered.
//
// When compiled in, importing the package registers it as backend
// "gurobi".
package grb

import "errors"

// ErrUnavailable is returned by Open when the package was built without
// the gurobi tag.
var ErrUnavailable = errors.New("grb: gurobi backend not compiled in (build with -tags gurobi)")
