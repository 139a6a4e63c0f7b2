//go:build !gurobi

package grb

import "github.com/opensolv/gomilp/native"

// Open reports the backend as unavailable in builds without the gurobi
// tag.
func Open() (native.Env, error) {
	return nil, ErrUnavailable
}
