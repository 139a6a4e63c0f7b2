package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opensolv/gomilp/logger"
	"github.com/opensolv/gomilp/native"
)

var (
	backend    string
	writePath  string
	computeIIS bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <problem.json>",
	Short: "Build and optimize a problem description",
	Long: `Reads a JSON problem description, builds the model through the selected
engine backend, optimizes it and reports the outcome. The "stub" backend
performs no real optimization and is only useful for validating problem
files.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&backend, "backend", "gurobi", "Engine backend to solve with")
	solveCmd.Flags().StringVar(&writePath, "write", "", "Also write the native model to this file")
	solveCmd.Flags().BoolVar(&computeIIS, "iis", false, "Compute an IIS when the model is infeasible")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	pf, err := parseProblem(data)
	if err != nil {
		return err
	}

	env, err := native.Open(backend)
	if err != nil {
		return err
	}
	defer env.Release()

	model, err := buildModel(pf, env)
	if err != nil {
		return err
	}
	defer model.Close()

	log.Info().
		Str("backend", backend).
		Int("variables", model.VariableCount()).
		Int("constraints", model.ConstraintCount()).
		Msg("model built")

	if writePath != "" {
		if err := model.Write(writePath); err != nil {
			return err
		}
		log.Info().Str("file", writePath).Msg("model written")
	}

	if err := model.Optimize(); err != nil {
		return err
	}

	status, err := model.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch status {
	case native.SolveOptimal:
		obj, err := model.ObjectiveValue()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "status: optimal\nobjective: %g\n", obj)
	case native.SolveInfeasible:
		fmt.Fprintln(out, "status: infeasible")
		if computeIIS {
			if err := model.ComputeIIS(); err != nil {
				return err
			}
			fmt.Fprintln(out, "IIS computed")
		}
	case native.SolveUnbounded:
		fmt.Fprintln(out, "status: unbounded")
	default:
		fmt.Fprintf(out, "status: %d\n", status)
	}

	return nil
}
